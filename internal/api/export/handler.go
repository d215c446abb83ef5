package export

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"inventory-app/database"
	"inventory-app/internal/agent/tools"
	"inventory-app/internal/domain/inventory"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// POST /export
//
// Accepts the resolved export descriptor (as produced by the
// export_artworks tool) and renders it. Only markdown rendering is
// implemented; pdf is accepted by the descriptor but not rendered here.
func ExportArtworks(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req tools.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Format != "" && req.Format != "markdown" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only markdown export is available"})
		return
	}

	q := database.DB.Model(&inventory.Artwork{}).
		Where("artworks.user_id = ? AND artworks.deleted_at IS NULL", userID)

	switch req.Scope {
	case tools.ExportScopeSingle, tools.ExportScopeSelected:
		if len(req.ArtworkIDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "artwork_ids required for scope " + req.Scope})
			return
		}
		q = q.Where("artworks.id IN ?", req.ArtworkIDs)
	case tools.ExportScopeAll, "":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope"})
		return
	}

	if req.Options.IncludeEditions || req.Options.IncludeHistory {
		q = q.Preload("Editions", func(db *gorm.DB) *gorm.DB {
			return db.Order("edition_number ASC")
		}).Preload("Editions.Location")
	}
	if req.Options.IncludeHistory {
		q = q.Preload("Editions.History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	}

	var artworks []inventory.Artwork
	if err := q.Order("artworks.created_at DESC").Find(&artworks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}

	doc := renderMarkdown(artworks, req.Options.IncludeEditions, req.Options.IncludeHistory)

	c.Header("Content-Disposition", `attachment; filename="inventory-export.md"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc))
}

func renderMarkdown(artworks []inventory.Artwork, withEditions, withHistory bool) string {
	var b strings.Builder

	b.WriteString("# Inventory Export\n\n")
	b.WriteString(fmt.Sprintf("Generated %s — %d artwork(s)\n", time.Now().Format("2006-01-02"), len(artworks)))

	for _, a := range artworks {
		b.WriteString("\n## " + artworkHeading(a) + "\n\n")
		writeField(&b, "Year", a.Year)
		writeField(&b, "Type", a.Type)
		writeField(&b, "Dimensions", a.Dimensions)
		writeField(&b, "Materials", a.Materials)
		writeField(&b, "Duration", a.Duration)
		writeField(&b, "Source", a.SourceURL)

		if !withEditions && !withHistory {
			continue
		}

		for _, e := range a.Editions {
			b.WriteString(fmt.Sprintf("\n### Edition %s\n\n", editionLabel(e)))
			writeField(&b, "Status", e.Status)
			if e.Location != nil {
				writeField(&b, "Location", e.Location.Name)
			}
			writeField(&b, "Condition", e.Condition)
			writeField(&b, "Storage", e.StorageDetail)
			if e.SalePrice != nil {
				writeField(&b, "Sale", fmt.Sprintf("%.2f %s", *e.SalePrice, e.SaleCurrency))
			}
			writeField(&b, "Buyer", e.Buyer)

			if withHistory && len(e.History) > 0 {
				b.WriteString("\n| Date | Action | Party | Note |\n|---|---|---|---|\n")
				for _, h := range e.History {
					b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
						h.CreatedAt.Format("2006-01-02"), h.Action, h.RelatedParty, h.Note))
				}
			}
		}
	}

	return b.String()
}

func artworkHeading(a inventory.Artwork) string {
	switch {
	case a.Title != "" && a.TitleZh != "":
		return a.Title + " / " + a.TitleZh
	case a.TitleZh != "":
		return a.TitleZh
	default:
		return a.Title
	}
}

func editionLabel(e inventory.Edition) string {
	if e.EditionNumber != "" {
		return e.EditionNumber
	}
	return e.ID
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(fmt.Sprintf("- **%s:** %s\n", label, value))
}
