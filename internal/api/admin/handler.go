package admin

import (
	"net/http"

	"inventory-app/database"
	"inventory-app/internal/domain/inventory"
	"inventory-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Lastname     string `json:"lastname"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	IsVerified   bool   `json:"is_verified"`
	Locale       string `json:"locale"`
	ArtworkCount int64  `json:"artwork_count"`
	EditionCount int64  `json:"edition_count"`
}

type AdminStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalArtworks int64 `json:"total_artworks"`
	TotalEditions int64 `json:"total_editions"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard 👑",
	})
}

func ListAllUsers(c *gin.Context) {
	var all []users.User
	err := database.DB.Find(&all).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range all {
		var artworkCount, editionCount int64
		database.DB.Model(&inventory.Artwork{}).
			Where("user_id = ? AND deleted_at IS NULL", u.ID).
			Count(&artworkCount)
		database.DB.Model(&inventory.Edition{}).
			Joins("JOIN artworks ON artworks.id = editions.artwork_id").
			Where("artworks.user_id = ? AND artworks.deleted_at IS NULL", u.ID).
			Count(&editionCount)

		adminUsers = append(adminUsers, AdminUser{
			ID:           u.ID,
			Name:         u.Name,
			Lastname:     u.Lastname,
			Email:        u.Email,
			Role:         u.Role,
			IsVerified:   u.IsVerified,
			Locale:       u.Locale,
			ArtworkCount: artworkCount,
			EditionCount: editionCount,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func GetUserDetails(c *gin.Context) {
	id := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var artworks []inventory.Artwork
	database.DB.Preload("Editions").
		Where("user_id = ? AND deleted_at IS NULL", user.ID).
		Order("created_at DESC").
		Find(&artworks)

	c.JSON(http.StatusOK, gin.H{
		"user": AdminUser{
			ID:         user.ID,
			Name:       user.Name,
			Lastname:   user.Lastname,
			Email:      user.Email,
			Role:       user.Role,
			IsVerified: user.IsVerified,
			Locale:     user.Locale,
		},
		"artworks": artworks,
	})
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	if err := database.DB.Model(&users.User{}).Count(&stats.TotalUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	database.DB.Model(&inventory.Artwork{}).Where("deleted_at IS NULL").Count(&stats.TotalArtworks)
	database.DB.Model(&inventory.Edition{}).
		Joins("JOIN artworks ON artworks.id = editions.artwork_id").
		Where("artworks.deleted_at IS NULL").
		Count(&stats.TotalEditions)

	c.JSON(http.StatusOK, stats)
}
