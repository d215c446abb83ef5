// Package expand broadens a literal search term into translated and
// synonymous variants via a secondary model call.
package expand

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"inventory-app/internal/llm"
)

// maxVariants caps how many variants a single expansion may contribute
// to a filter.
const maxVariants = 6

const expandPrompt = `You expand inventory search terms. Given the term below
(possibly Chinese or English), return a JSON array of up to 5 short query
variants: translations between Chinese and English, singular/plural forms,
and common synonyms. Return ONLY the JSON array, no prose.

Term: %s`

// Expand returns an ordered, sanitized set of query variants for term.
// The sanitized original term always comes first. Expansion failure is
// never fatal: if client is nil or the model call fails, the result is
// just the sanitized original.
func Expand(ctx context.Context, client llm.Client, term string) []string {
	original := SanitizeLike(strings.TrimSpace(term))
	variants := []string{original}
	if original == "" {
		return variants
	}
	if client == nil {
		return variants
	}

	raw, err := client.Complete(ctx, fmt.Sprintf(expandPrompt, term))
	if err != nil {
		log.Println("search expansion failed, using literal term:", err)
		return variants
	}

	for _, v := range parseVariants(raw) {
		s := SanitizeLike(strings.TrimSpace(v))
		if s == "" || contains(variants, s) {
			continue
		}
		variants = append(variants, s)
		if len(variants) >= maxVariants {
			break
		}
	}
	return variants
}

// parseVariants pulls a JSON string array out of a model reply, tolerating
// surrounding prose or code fences.
func parseVariants(raw string) []string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil
	}

	var out []string
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return nil
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
