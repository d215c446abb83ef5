package artworks

import (
	"net/http"
	"time"

	"inventory-app/database"
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

// ------------------------------
// GET /artworks
// ------------------------------
func ListArtworks(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var list []inventory.Artwork
	err := userArtworksQuery(database.DB, userID).
		Preload("Editions", func(db *gorm.DB) *gorm.DB {
			return db.Order("edition_number ASC")
		}).
		Preload("Editions.Location").
		Order("artworks.created_at DESC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load artworks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"artworks": list})
}

// ------------------------------
// GET /artworks/:id
// ------------------------------
func GetArtworkByID(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var artwork inventory.Artwork
	err := userArtworksQuery(database.DB, userID).
		Preload("Editions", func(db *gorm.DB) *gorm.DB {
			return db.Order("edition_number ASC")
		}).
		Preload("Editions.Location").
		Preload("Editions.History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("artworks.id = ?", c.Param("id")).
		First(&artwork).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	c.JSON(http.StatusOK, artwork)
}

// ------------------------------
// POST /artworks
// ------------------------------
func CreateArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	artwork := inventory.Artwork{
		UserID:       userID,
		Title:        req.Title,
		TitleZh:      req.TitleZh,
		Year:         req.Year,
		Type:         req.Type,
		Dimensions:   req.Dimensions,
		Materials:    req.Materials,
		Duration:     req.Duration,
		SourceURL:    req.SourceURL,
		ThumbnailURL: req.ThumbnailURL,
	}

	if err := database.DB.Create(&artwork).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create artwork", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, artwork)
}

// ------------------------------
// PUT /artworks/:id
// ------------------------------
func UpdateArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req UpdateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var artwork inventory.Artwork
	err := userArtworksQuery(database.DB, userID).
		Where("artworks.id = ?", c.Param("id")).
		First(&artwork).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.TitleZh != nil {
		updates["title_zh"] = *req.TitleZh
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Dimensions != nil {
		updates["dimensions"] = *req.Dimensions
	}
	if req.Materials != nil {
		updates["materials"] = *req.Materials
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.SourceURL != nil {
		updates["source_url"] = *req.SourceURL
	}
	if req.ThumbnailURL != nil {
		updates["thumbnail_url"] = *req.ThumbnailURL
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, artwork)
		return
	}

	if err := database.DB.Model(&artwork).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update artwork"})
		return
	}

	c.JSON(http.StatusOK, artwork)
}

// ------------------------------
// DELETE /artworks/:id  (soft delete)
// ------------------------------
func DeleteArtwork(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var artwork inventory.Artwork
	err := userArtworksQuery(database.DB, userID).
		Where("artworks.id = ?", c.Param("id")).
		First(&artwork).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	now := time.Now()
	if err := database.DB.Model(&artwork).Update("deleted_at", &now).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete artwork"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
