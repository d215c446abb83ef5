package tools

import (
	"context"
	"fmt"

	"inventory-app/internal/agent/expand"
	"inventory-app/internal/domain/inventory"
	"inventory-app/internal/i18n"
)

// Export scopes.
const (
	ExportScopeAll      = "all"
	ExportScopeSingle   = "single"
	ExportScopeSelected = "selected"
)

// ExportRequest is the resolved export descriptor. Rendering is the
// exporter's job; this tool only settles scope unambiguously.
type ExportRequest struct {
	Scope      string   `json:"scope"`
	ArtworkIDs []string `json:"artwork_ids,omitempty"`
	Format     string   `json:"format"`
	Options    struct {
		IncludeEditions bool `json:"include_editions"`
		IncludeHistory  bool `json:"include_history"`
	} `json:"options"`
}

type exportResult struct {
	ExportRequest *ExportRequest      `json:"export_request,omitempty"`
	Candidates    []inventory.Artwork `json:"candidates,omitempty"`
	Message       string              `json:"message,omitempty"`
}

func exportArtworksTool(tc *Context) Tool {
	return Tool{
		Name: ActionExportArtworks,
		Description: "Resolve an export request into a structured descriptor. Scope by artwork " +
			"title, explicit artwork ids, or everything. Returns a disambiguation list when a " +
			"title matches several artworks.",
		Parameters: objectSchema(map[string]interface{}{
			"title_query": map[string]interface{}{"type": "string", "description": "Artwork title to export, any language"},
			"artwork_ids": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"format": map[string]interface{}{
				"type": "string", "enum": []string{"markdown", "pdf"},
			},
			"include_editions": map[string]interface{}{"type": "boolean"},
			"include_history":  map[string]interface{}{"type": "boolean"},
		}),
		Execute: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			format := argString(args, "format")
			if format == "" {
				format = "markdown"
			}
			if format != "markdown" && format != "pdf" {
				return errResult(fmt.Sprintf("invalid format %q", format)), nil
			}

			req := &ExportRequest{Format: format}
			req.Options.IncludeEditions = argBool(args, "include_editions")
			req.Options.IncludeHistory = argBool(args, "include_history")

			if ids := argStringSlice(args, "artwork_ids"); len(ids) > 0 {
				var count int64
				err := userArtworksQuery(tc.DB, tc.UserID).Where("artworks.id IN ?", ids).Count(&count).Error
				if err != nil {
					return nil, err
				}
				if count != int64(len(ids)) {
					return errResult(i18n.T(tc.Locale, "artwork.not_found")), nil
				}
				req.ArtworkIDs = ids
				if len(ids) == 1 {
					req.Scope = ExportScopeSingle
				} else {
					req.Scope = ExportScopeSelected
				}
				return exportResult{ExportRequest: req}, nil
			}

			if query := argString(args, "title_query"); query != "" {
				variants := expand.Expand(ctx, tc.ExpansionClient, query)

				var matches []inventory.Artwork
				err := bilingualTitleFilter(userArtworksQuery(tc.DB, tc.UserID), variants).
					Order("artworks.created_at DESC").Limit(artworkPageLimit).Find(&matches).Error
				if err != nil {
					return nil, err
				}

				switch len(matches) {
				case 0:
					return exportResult{Message: i18n.T(tc.Locale, "export.no_match", query)}, nil
				case 1:
					req.Scope = ExportScopeSingle
					req.ArtworkIDs = []string{matches[0].ID}
					return exportResult{ExportRequest: req}, nil
				default:
					// Multiple candidates: let the caller pick instead of guessing.
					return exportResult{
						Candidates: matches,
						Message:    i18n.T(tc.Locale, "export.multiple_matches", query),
					}, nil
				}
			}

			req.Scope = ExportScopeAll
			return exportResult{ExportRequest: req}, nil
		},
		Summarize: func(result interface{}) string {
			r, ok := result.(exportResult)
			if !ok {
				return marshalSummary(result)
			}
			if r.ExportRequest != nil {
				return fmt.Sprintf("Export resolved: scope=%s ids=%v format=%s",
					r.ExportRequest.Scope, r.ExportRequest.ArtworkIDs, r.ExportRequest.Format)
			}
			if len(r.Candidates) > 0 {
				s := r.Message
				for _, a := range r.Candidates {
					s += fmt.Sprintf(" [id=%s title=%q]", a.ID, a.Title)
				}
				return s
			}
			return r.Message
		},
	}
}
