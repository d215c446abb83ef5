package tools

import (
	"context"
	"fmt"

	"inventory-app/internal/i18n"
)

type statisticsResult struct {
	Type          string           `json:"type"`
	TotalArtworks int64            `json:"total_artworks"`
	TotalEditions int64            `json:"total_editions"`
	Buckets       map[string]int64 `json:"buckets,omitempty"`
	Empty         bool             `json:"empty,omitempty"`
	Message       string           `json:"message,omitempty"`
}

func statisticsTool(tc *Context) Tool {
	return Tool{
		Name: ActionGetStatistics,
		Description: "Aggregate inventory counts. type=overview gives totals, " +
			"type=by_status breaks editions down per status, type=by_location per location.",
		Parameters: objectSchema(map[string]interface{}{
			"type": map[string]interface{}{
				"type": "string",
				"enum": []string{"overview", "by_status", "by_location"},
			},
		}, "type"),
		Execute: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			statsType := argString(args, "type")
			switch statsType {
			case "overview", "by_status", "by_location":
			default:
				return errResult(fmt.Sprintf("invalid statistics type %q", statsType)), nil
			}

			var totalArtworks, totalEditions int64
			if err := userArtworksQuery(tc.DB, tc.UserID).Count(&totalArtworks).Error; err != nil {
				return nil, err
			}
			if err := userEditionsQuery(tc.DB, tc.UserID).Count(&totalEditions).Error; err != nil {
				return nil, err
			}

			result := statisticsResult{
				Type:          statsType,
				TotalArtworks: totalArtworks,
				TotalEditions: totalEditions,
			}

			// A truly empty inventory gets a distinguished answer instead of
			// an ambiguous zero-count object.
			if totalArtworks == 0 && totalEditions == 0 {
				result.Empty = true
				result.Message = i18n.T(tc.Locale, "stats.empty")
				return result, nil
			}

			switch statsType {
			case "by_status":
				buckets, err := countEditionsBy(tc, "editions.status")
				if err != nil {
					return nil, err
				}
				result.Buckets = buckets
			case "by_location":
				buckets, err := countEditionsByLocation(tc)
				if err != nil {
					return nil, err
				}
				result.Buckets = buckets
			}
			return result, nil
		},
		Summarize: func(result interface{}) string {
			r, ok := result.(statisticsResult)
			if !ok {
				return marshalSummary(result)
			}
			if r.Empty {
				return r.Message
			}
			s := fmt.Sprintf("%d artworks, %d editions", r.TotalArtworks, r.TotalEditions)
			for k, v := range r.Buckets {
				s += fmt.Sprintf("; %s: %d", k, v)
			}
			return s
		},
	}
}

type bucketRow struct {
	Bucket string
	Count  int64
}

func countEditionsBy(tc *Context, column string) (map[string]int64, error) {
	var rows []bucketRow
	err := userEditionsQuery(tc.DB, tc.UserID).
		Select(column + " AS bucket, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]int64, len(rows))
	for _, r := range rows {
		buckets[r.Bucket] += r.Count
	}
	return buckets, nil
}

func countEditionsByLocation(tc *Context) (map[string]int64, error) {
	var rows []bucketRow
	err := userEditionsQuery(tc.DB, tc.UserID).
		Joins("LEFT JOIN locations ON locations.id = editions.location_id").
		Select("COALESCE(locations.name, '') AS bucket, COUNT(*) AS count").
		Group("COALESCE(locations.name, '')").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Editions without a named location accumulate into one
	// locale-specific bucket.
	unknown := i18n.T(tc.Locale, "stats.unknown_location")
	buckets := make(map[string]int64, len(rows))
	for _, r := range rows {
		key := r.Bucket
		if key == "" {
			key = unknown
		}
		buckets[key] += r.Count
	}
	return buckets, nil
}
