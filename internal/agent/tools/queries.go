package tools

import (
	"strings"

	"inventory-app/internal/domain/inventory"

	"gorm.io/gorm"
)

// Ownership-scoped base queries. Every read goes through one of these,
// so soft-deleted artworks and other users' records never surface.

func userArtworksQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&inventory.Artwork{}).
		Where("artworks.user_id = ? AND artworks.deleted_at IS NULL", userID)
}

func userEditionsQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&inventory.Edition{}).
		Joins("JOIN artworks ON artworks.id = editions.artwork_id").
		Where("artworks.user_id = ? AND artworks.deleted_at IS NULL", userID)
}

func userLocationsQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&inventory.Location{}).
		Where("locations.user_id = ?", userID)
}

// History is scoped transitively: edition -> artwork -> user.
func userHistoryQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&inventory.EditionHistory{}).
		Joins("JOIN editions ON editions.id = edition_histories.edition_id").
		Joins("JOIN artworks ON artworks.id = editions.artwork_id").
		Where("artworks.user_id = ? AND artworks.deleted_at IS NULL", userID)
}

// bilingualTitleFilter OR-combines already-sanitized variants across the
// English and Chinese title columns.
func bilingualTitleFilter(q *gorm.DB, variants []string) *gorm.DB {
	var clauses []string
	var vals []interface{}
	for _, v := range variants {
		if v == "" {
			continue
		}
		p := "%" + strings.ToLower(v) + "%"
		clauses = append(clauses, `LOWER(artworks.title) LIKE ? ESCAPE '\' OR LOWER(artworks.title_zh) LIKE ? ESCAPE '\'`)
		vals = append(vals, p, p)
	}
	if len(clauses) == 0 {
		return q
	}
	return q.Where("("+strings.Join(clauses, " OR ")+")", vals...)
}
