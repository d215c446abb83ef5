package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"inventory-app/internal/domain/inventory"

	"github.com/microcosm-cc/bluemonday"
)

const (
	importFetchTimeout = 20 * time.Second
	importBodyLimit    = 512 * 1024
	importTextLimit    = 12_000
)

var imgSrcPattern = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["']`)

const extractionPrompt = `Extract artwork metadata from this web page text.
Return ONLY a JSON object with these keys (empty string when unknown):
{"title": "", "title_zh": "", "year": "", "type": "", "dimensions": "", "materials": "", "duration": ""}

Page URL: %s
Page text:
%s`

// extractedArtwork is the structured metadata the extraction model returns.
type extractedArtwork struct {
	Title      string `json:"title"`
	TitleZh    string `json:"title_zh"`
	Year       string `json:"year"`
	Type       string `json:"type"`
	Dimensions string `json:"dimensions"`
	Materials  string `json:"materials"`
	Duration   string `json:"duration"`
}

func importArtworkFromURLTool(tc *Context) Tool {
	return Tool{
		Name: ActionImportArtworkFromURL,
		Description: "Import artwork metadata from a web page URL. Creates a new artwork or " +
			"updates the existing one that already points at this URL.",
		Parameters: objectSchema(map[string]interface{}{
			"url": map[string]interface{}{"type": "string", "description": "Web page URL to import from"},
		}, "url"),
		Execute: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			pageURL := argString(args, "url")
			if pageURL == "" {
				return errResult("url is required"), nil
			}
			if _, err := url.ParseRequestURI(pageURL); err != nil {
				return errResult(fmt.Sprintf("invalid url: %v", err)), nil
			}
			if tc.ExtractionClient == nil {
				return errResult("no extraction model configured"), nil
			}

			html, err := fetchPage(ctx, pageURL)
			if err != nil {
				return errResult(fmt.Sprintf("failed to fetch page: %v", err)), nil
			}

			meta, err := extractMetadata(ctx, tc, pageURL, html)
			if err != nil {
				return errResult(fmt.Sprintf("extraction failed: %v", err)), nil
			}
			if meta.Title == "" && meta.TitleZh == "" {
				return errResult("could not extract an artwork title from the page"), nil
			}

			thumbnail := selectThumbnail(pageURL, html)

			target, err := findImportTarget(tc, pageURL, meta)
			if err != nil {
				return nil, err
			}

			if target != nil {
				cols := map[string]interface{}{
					"title":      meta.Title,
					"title_zh":   meta.TitleZh,
					"year":       meta.Year,
					"type":       meta.Type,
					"dimensions": meta.Dimensions,
					"materials":  meta.Materials,
					"duration":   meta.Duration,
					"source_url": pageURL,
				}
				if thumbnail != "" {
					// Mirrored into permanent storage by a separate async job.
					cols["thumbnail_url"] = thumbnail
				}
				if err := tc.DB.Model(&inventory.Artwork{}).Where("id = ?", target.ID).Updates(cols).Error; err != nil {
					return nil, err
				}
				var updated inventory.Artwork
				if err := tc.DB.First(&updated, "id = ?", target.ID).Error; err != nil {
					return nil, err
				}
				return map[string]interface{}{"action": "updated", "artwork": updated}, nil
			}

			artwork := inventory.Artwork{
				UserID:       tc.UserID,
				Title:        meta.Title,
				TitleZh:      meta.TitleZh,
				Year:         meta.Year,
				Type:         meta.Type,
				Dimensions:   meta.Dimensions,
				Materials:    meta.Materials,
				Duration:     meta.Duration,
				SourceURL:    pageURL,
				ThumbnailURL: thumbnail,
			}
			if err := tc.DB.Create(&artwork).Error; err != nil {
				return nil, err
			}
			return map[string]interface{}{"action": "created", "artwork": artwork}, nil
		},
		Summarize: func(result interface{}) string {
			r, ok := result.(map[string]interface{})
			if !ok {
				return marshalSummary(result)
			}
			if msg, ok := r["error"].(string); ok {
				return msg
			}
			action, _ := r["action"].(string)
			if artwork, ok := r["artwork"].(inventory.Artwork); ok {
				return fmt.Sprintf("Artwork %s: id=%s title=%q", action, artwork.ID, artwork.Title)
			}
			return marshalSummary(result)
		},
	}
}

// findImportTarget implements the dedup policy. URL match wins; a title
// match only counts when the URLs do not conflict, so an unrelated
// artwork that merely shares a title is never silently overwritten.
func findImportTarget(tc *Context, pageURL string, meta *extractedArtwork) (*inventory.Artwork, error) {
	// (a) exact source_url match, only when unambiguous.
	var byURL []inventory.Artwork
	err := userArtworksQuery(tc.DB, tc.UserID).
		Where("artworks.source_url = ?", pageURL).
		Limit(2).Find(&byURL).Error
	if err != nil {
		return nil, err
	}
	if len(byURL) == 1 {
		return &byURL[0], nil
	}

	// (b) exact bilingual-title match, guarded against conflicting URLs.
	var byTitle []inventory.Artwork
	err = userArtworksQuery(tc.DB, tc.UserID).
		Where("artworks.title = ? AND artworks.title_zh = ?", meta.Title, meta.TitleZh).
		Limit(2).Find(&byTitle).Error
	if err != nil {
		return nil, err
	}
	if len(byTitle) == 1 {
		existing := byTitle[0]
		if pageURL == "" || existing.SourceURL == "" || existing.SourceURL == pageURL {
			return &existing, nil
		}
	}

	return nil, nil
}

func fetchPage(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, importFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "inventory-app/1.0")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, importBodyLimit))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func extractMetadata(ctx context.Context, tc *Context, pageURL, html string) (*extractedArtwork, error) {
	text := bluemonday.StrictPolicy().Sanitize(html)
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > importTextLimit {
		text = text[:importTextLimit]
	}

	raw, err := tc.ExtractionClient.Complete(ctx, fmt.Sprintf(extractionPrompt, pageURL, text))
	if err != nil {
		return nil, err
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in extraction response")
	}

	var meta extractedArtwork
	if err := json.Unmarshal([]byte(raw[start:end+1]), &meta); err != nil {
		return nil, err
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.TitleZh = strings.TrimSpace(meta.TitleZh)
	return &meta, nil
}

// selectThumbnail picks the best candidate image from the page:
// first non-icon raster image, resolved to an absolute URL.
func selectThumbnail(pageURL, html string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	for _, match := range imgSrcPattern.FindAllStringSubmatch(html, -1) {
		src := strings.TrimSpace(match[1])
		if src == "" || strings.HasPrefix(src, "data:") {
			continue
		}
		lower := strings.ToLower(src)
		if strings.HasSuffix(lower, ".svg") ||
			strings.Contains(lower, "icon") ||
			strings.Contains(lower, "logo") ||
			strings.Contains(lower, "sprite") {
			continue
		}

		ref, err := url.Parse(src)
		if err != nil {
			continue
		}
		return base.ResolveReference(ref).String()
	}
	return ""
}
