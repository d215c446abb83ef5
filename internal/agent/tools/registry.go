package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
)

// Action names (closed set). Dispatch validates against these before any
// lookup happens.
const (
	ActionSearchArtworks  = "search_artworks"
	ActionSearchEditions  = "search_editions"
	ActionSearchLocations = "search_locations"
	ActionSearchHistory   = "search_history"
	ActionGetStatistics   = "get_statistics"

	ActionGenerateUpdateConfirmation = "generate_update_confirmation"
	ActionExecuteEditionUpdate       = "execute_edition_update"
	ActionImportArtworkFromURL       = "import_artwork_from_url"
	ActionExportArtworks             = "export_artworks"
)

// Tool is one named, schema-validated action callable by the model.
type Tool struct {
	Name        string
	Description string
	// Parameters is a JSON-schema object describing the tool input.
	Parameters map[string]interface{}
	Execute    func(ctx context.Context, args map[string]interface{}) (interface{}, error)
	// Summarize condenses a result before it is echoed back into the
	// model's context. Nil means the full result is marshalled.
	Summarize func(result interface{}) string
}

// Registry maps action names to tools.
type Registry map[string]Tool

// NewRegistry returns the full tool catalog, including mutating tools.
// Used by the authenticated first-party chat surface.
func NewRegistry(tc *Context) Registry {
	reg := Registry{}
	for _, t := range []Tool{
		searchArtworksTool(tc),
		searchEditionsTool(tc),
		searchLocationsTool(tc),
		searchHistoryTool(tc),
		statisticsTool(tc),
		generateUpdateConfirmationTool(tc),
		executeEditionUpdateTool(tc),
		importArtworkFromURLTool(tc),
		exportArtworksTool(tc),
	} {
		reg[t.Name] = t
	}
	return reg
}

// readOnlyActions is the explicit allow-list for the external query
// endpoint. It must never include a tool that mutates storage, deletes
// data, or triggers a side-effecting fetch.
var readOnlyActions = []string{
	ActionSearchArtworks,
	ActionSearchEditions,
	ActionSearchLocations,
	ActionSearchHistory,
	ActionGetStatistics,
}

// ReadOnlyActions returns a copy of the allow-list.
func ReadOnlyActions() []string {
	return append([]string(nil), readOnlyActions...)
}

// NewReadOnlyRegistry returns only the allow-listed search/statistics
// tools.
func NewReadOnlyRegistry(tc *Context) Registry {
	full := NewRegistry(tc)
	reg := Registry{}
	for _, name := range readOnlyActions {
		if t, ok := full[name]; ok {
			reg[name] = t
		}
	}
	return reg
}

// InvalidActionError is returned when a caller names an action outside
// the active registry.
type InvalidActionError struct {
	Action string
	Valid  []string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("INVALID_ACTION: unknown action %q, valid actions: %s", e.Action, strings.Join(e.Valid, ", "))
}

// Dispatch runs the named tool. Unknown actions are the only dispatch
// error; tool execution failures are recovered into a structured
// {"error": ...} result so the model can react conversationally.
func Dispatch(ctx context.Context, reg Registry, action string, args map[string]interface{}) (interface{}, error) {
	tool, ok := reg[action]
	if !ok {
		return nil, &InvalidActionError{Action: action, Valid: ActionNames(reg)}
	}
	if args == nil {
		args = map[string]interface{}{}
	}

	result, err := tool.Execute(ctx, args)
	if err != nil {
		log.Printf("tool %s failed: %v", action, err)
		return map[string]interface{}{"error": err.Error()}, nil
	}
	return result, nil
}

// ActionNames returns the sorted action names of a registry.
func ActionNames(reg Registry) []string {
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schemas renders the registry in the function-calling format the llm
// package expects, sorted by name for a stable tool order.
func Schemas(reg Registry) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(reg))
	for _, name := range ActionNames(reg) {
		t := reg[name]
		out = append(out, map[string]interface{}{
			"type": "function",
			"function": map[string]interface{}{
				"name":        t.Name,
				"description": t.Description,
				"parameters":  t.Parameters,
			},
		})
	}
	return out
}

// SummarizeResult produces the condensed text echoed back into the model
// context for a tool result.
func SummarizeResult(reg Registry, action string, result interface{}) string {
	if t, ok := reg[action]; ok && t.Summarize != nil {
		return t.Summarize(result)
	}
	return marshalSummary(result)
}

func marshalSummary(result interface{}) string {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("%v", result)
	}
	return string(data)
}

// errResult is the shared shape for recoverable tool-level failures.
func errResult(msg string) map[string]interface{} {
	return map[string]interface{}{"error": msg}
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
