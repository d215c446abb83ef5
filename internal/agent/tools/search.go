package tools

import (
	"context"
	"fmt"

	"inventory-app/internal/agent/expand"
	"inventory-app/internal/domain/inventory"
	"inventory-app/internal/i18n"
)

const (
	artworkPageLimit  = 10
	editionPageLimit  = 20
	locationPageLimit = 10
	historyPageLimit  = 50
)

type artworkSearchResult struct {
	Artworks []inventory.Artwork `json:"artworks"`
	Count    int                 `json:"count"`
	Message  string              `json:"message,omitempty"`
}

func searchArtworksTool(tc *Context) Tool {
	return Tool{
		Name: ActionSearchArtworks,
		Description: "Search the user's artworks. Free-text query matches English and Chinese " +
			"titles and is automatically expanded with translations and synonyms. " +
			"Optional exact filters: year, type.",
		Parameters: objectSchema(map[string]interface{}{
			"query": map[string]interface{}{"type": "string", "description": "Free-text title search, any language"},
			"year":  map[string]interface{}{"type": "string", "description": "Exact creation year"},
			"type":  map[string]interface{}{"type": "string", "description": "Artwork type, e.g. painting, video, sculpture"},
		}),
		Execute: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			q := userArtworksQuery(tc.DB, tc.UserID)

			if query := argString(args, "query"); query != "" {
				variants := expand.Expand(ctx, tc.ExpansionClient, query)
				q = bilingualTitleFilter(q, variants)
			}
			if year := argString(args, "year"); year != "" {
				q = q.Where("artworks.year = ?", year)
			}
			if typ := argString(args, "type"); typ != "" {
				q = q.Where("artworks.type = ?", typ)
			}

			var rows []inventory.Artwork
			if err := q.Order("artworks.created_at DESC").Limit(artworkPageLimit).Find(&rows).Error; err != nil {
				return nil, err
			}

			result := artworkSearchResult{Artworks: rows, Count: len(rows)}
			if len(rows) == 0 {
				result.Artworks = []inventory.Artwork{}
				result.Message = i18n.T(tc.Locale, "search.no_artworks")
			}
			return result, nil
		},
		Summarize: func(result interface{}) string {
			r, ok := result.(artworkSearchResult)
			if !ok {
				return marshalSummary(result)
			}
			if r.Count == 0 {
				return r.Message
			}
			s := fmt.Sprintf("Found %d artworks:", r.Count)
			for _, a := range r.Artworks {
				s += fmt.Sprintf(" [id=%s title=%q year=%s]", a.ID, a.Title, a.Year)
			}
			return s
		},
	}
}

type editionSearchResult struct {
	Editions []inventory.Edition `json:"editions"`
	Count    int                 `json:"count"`
	Message  string              `json:"message,omitempty"`
}

func searchEditionsTool(tc *Context) Tool {
	return Tool{
		Name: ActionSearchEditions,
		Description: "Search editions (physical instances of artworks). Filter by artwork title, " +
			"exact artwork id, status, or location id.",
		Parameters: objectSchema(map[string]interface{}{
			"artwork_query": map[string]interface{}{"type": "string", "description": "Artwork title search, any language"},
			"artwork_id":    map[string]interface{}{"type": "string", "description": "Exact artwork id"},
			"status": map[string]interface{}{
				"type": "string", "enum": inventory.EditionStatuses,
				"description": "Edition status",
			},
			"location_id": map[string]interface{}{"type": "string", "description": "Exact location id"},
		}),
		Execute: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			if status := argString(args, "status"); status != "" && !inventory.ValidStatus(status) {
				return errResult(fmt.Sprintf("invalid status %q", status)), nil
			}

			q := userEditionsQuery(tc.DB, tc.UserID)
			if query := argString(args, "artwork_query"); query != "" {
				variants := expand.Expand(ctx, tc.ExpansionClient, query)
				q = bilingualTitleFilter(q, variants)
			}
			if id := argString(args, "artwork_id"); id != "" {
				q = q.Where("editions.artwork_id = ?", id)
			}
			if status := argString(args, "status"); status != "" {
				q = q.Where("editions.status = ?", status)
			}
			if id := argString(args, "location_id"); id != "" {
				q = q.Where("editions.location_id = ?", id)
			}

			var rows []inventory.Edition
			err := q.Preload("Artwork").Preload("Location").
				Order("editions.created_at DESC").Limit(editionPageLimit).Find(&rows).Error
			if err != nil {
				return nil, err
			}

			result := editionSearchResult{Editions: rows, Count: len(rows)}
			if len(rows) == 0 {
				result.Editions = []inventory.Edition{}
				result.Message = i18n.T(tc.Locale, "search.no_editions")
			}
			return result, nil
		},
		Summarize: func(result interface{}) string {
			r, ok := result.(editionSearchResult)
			if !ok {
				return marshalSummary(result)
			}
			if r.Count == 0 {
				return r.Message
			}
			s := fmt.Sprintf("Found %d editions:", r.Count)
			for _, e := range r.Editions {
				title := ""
				if e.Artwork != nil {
					title = e.Artwork.Title
				}
				s += fmt.Sprintf(" [id=%s artwork=%q number=%s status=%s]", e.ID, title, e.EditionNumber, e.Status)
			}
			return s
		},
	}
}

type locationSearchResult struct {
	Locations []inventory.Location `json:"locations"`
	Count     int                  `json:"count"`
	Message   string               `json:"message,omitempty"`
}

func searchLocationsTool(tc *Context) Tool {
	return Tool{
		Name:        ActionSearchLocations,
		Description: "Search the user's locations (galleries, museums, studios). Free-text query matches name, city and country.",
		Parameters: objectSchema(map[string]interface{}{
			"query": map[string]interface{}{"type": "string", "description": "Free-text search across name, city, country"},
			"kind": map[string]interface{}{
				"type": "string",
				"enum": []string{inventory.LocationGallery, inventory.LocationMuseum, inventory.LocationStudio, inventory.LocationOther},
			},
		}),
		Execute: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			q := userLocationsQuery(tc.DB, tc.UserID)

			if query := argString(args, "query"); query != "" {
				p := "%" + expand.SanitizeLike(query) + "%"
				q = q.Where(`LOWER(locations.name) LIKE LOWER(?) ESCAPE '\' OR LOWER(locations.city) LIKE LOWER(?) ESCAPE '\' OR LOWER(locations.country) LIKE LOWER(?) ESCAPE '\'`, p, p, p)
			}
			if kind := argString(args, "kind"); kind != "" {
				q = q.Where("locations.kind = ?", kind)
			}

			var rows []inventory.Location
			if err := q.Order("locations.name ASC").Limit(locationPageLimit).Find(&rows).Error; err != nil {
				return nil, err
			}

			result := locationSearchResult{Locations: rows, Count: len(rows)}
			if len(rows) == 0 {
				result.Locations = []inventory.Location{}
				result.Message = i18n.T(tc.Locale, "search.no_locations")
			}
			return result, nil
		},
	}
}

type historySearchResult struct {
	History []inventory.EditionHistory `json:"history"`
	Count   int                        `json:"count"`
	Message string                     `json:"message,omitempty"`
}

func searchHistoryTool(tc *Context) Tool {
	return Tool{
		Name: ActionSearchHistory,
		Description: "Search edition history entries (status changes, sales, consignments...). " +
			"Filter by edition id, artwork title, action, or date range.",
		Parameters: objectSchema(map[string]interface{}{
			"edition_id":    map[string]interface{}{"type": "string", "description": "Exact edition id"},
			"artwork_query": map[string]interface{}{"type": "string", "description": "Artwork title search, any language"},
			"action": map[string]interface{}{
				"type": "string", "enum": inventory.HistoryActions,
			},
			"from": map[string]interface{}{"type": "string", "description": "Earliest date, YYYY-MM-DD"},
			"to":   map[string]interface{}{"type": "string", "description": "Latest date, YYYY-MM-DD"},
		}),
		Execute: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			if action := argString(args, "action"); action != "" && !inventory.ValidAction(action) {
				return errResult(fmt.Sprintf("invalid action %q", action)), nil
			}

			q := userHistoryQuery(tc.DB, tc.UserID)

			// An artwork-title search resolves to the set of edition ids to
			// filter by. Zero matches short-circuit with an explicit answer
			// instead of running the history query against an empty id set.
			if query := argString(args, "artwork_query"); query != "" {
				variants := expand.Expand(ctx, tc.ExpansionClient, query)

				var artworkIDs []string
				aq := bilingualTitleFilter(userArtworksQuery(tc.DB, tc.UserID), variants)
				if err := aq.Pluck("artworks.id", &artworkIDs).Error; err != nil {
					return nil, err
				}
				if len(artworkIDs) == 0 {
					return historySearchResult{
						History: []inventory.EditionHistory{},
						Message: i18n.T(tc.Locale, "history.no_artwork_match", query),
					}, nil
				}

				var editionIDs []string
				eq := tc.DB.Model(&inventory.Edition{}).Where("editions.artwork_id IN ?", artworkIDs)
				if err := eq.Pluck("editions.id", &editionIDs).Error; err != nil {
					return nil, err
				}
				if len(editionIDs) == 0 {
					return historySearchResult{
						History: []inventory.EditionHistory{},
						Message: i18n.T(tc.Locale, "history.no_edition_match"),
					}, nil
				}

				q = q.Where("edition_histories.edition_id IN ?", editionIDs)
			}

			if id := argString(args, "edition_id"); id != "" {
				q = q.Where("edition_histories.edition_id = ?", id)
			}
			if action := argString(args, "action"); action != "" {
				q = q.Where("edition_histories.action = ?", action)
			}
			if from := argString(args, "from"); from != "" {
				t, err := parseDate(from)
				if err != nil {
					return errResult(err.Error()), nil
				}
				q = q.Where("edition_histories.created_at >= ?", t)
			}
			if to := argString(args, "to"); to != "" {
				t, err := parseDateCeil(to)
				if err != nil {
					return errResult(err.Error()), nil
				}
				q = q.Where("edition_histories.created_at < ?", t)
			}

			var rows []inventory.EditionHistory
			if err := q.Order("edition_histories.created_at DESC").Limit(historyPageLimit).Find(&rows).Error; err != nil {
				return nil, err
			}

			result := historySearchResult{History: rows, Count: len(rows)}
			if len(rows) == 0 {
				result.History = []inventory.EditionHistory{}
				result.Message = i18n.T(tc.Locale, "history.no_results")
			}
			return result, nil
		},
		Summarize: func(result interface{}) string {
			r, ok := result.(historySearchResult)
			if !ok {
				return marshalSummary(result)
			}
			if r.Count == 0 {
				return r.Message
			}
			s := fmt.Sprintf("Found %d history entries:", r.Count)
			for _, h := range r.History {
				s += fmt.Sprintf(" [edition=%s action=%s at=%s]", h.EditionID, h.Action, h.CreatedAt.Format("2006-01-02"))
			}
			return s
		},
	}
}
