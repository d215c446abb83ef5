package artworks

import (
	"gorm.io/gorm"

	"inventory-app/internal/domain/inventory"
)

func userArtworksQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&inventory.Artwork{}).
		Where("artworks.user_id = ? AND artworks.deleted_at IS NULL", userID)
}
