package locations

import (
	"net/http"

	"inventory-app/database"
	"inventory-app/internal/domain/inventory"

	"github.com/gin-gonic/gin"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

type locationRequest struct {
	Kind    string `json:"kind" binding:"required"`
	Name    string `json:"name" binding:"required"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func validKind(k string) bool {
	switch k {
	case inventory.LocationGallery, inventory.LocationMuseum, inventory.LocationStudio, inventory.LocationOther:
		return true
	}
	return false
}

// ------------------------------
// GET /locations
// ------------------------------
func ListLocations(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var list []inventory.Location
	err := database.DB.
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load locations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"locations": list})
}

// ------------------------------
// POST /locations
// ------------------------------
func CreateLocation(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validKind(req.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location kind"})
		return
	}

	location := inventory.Location{
		UserID:  userID,
		Kind:    req.Kind,
		Name:    req.Name,
		City:    req.City,
		Country: req.Country,
	}

	if err := database.DB.Create(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location"})
		return
	}

	c.JSON(http.StatusCreated, location)
}

// ------------------------------
// PUT /locations/:id
// ------------------------------
func UpdateLocation(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validKind(req.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location kind"})
		return
	}

	var location inventory.Location
	err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&location).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	updates := map[string]interface{}{
		"kind":    req.Kind,
		"name":    req.Name,
		"city":    req.City,
		"country": req.Country,
	}
	if err := database.DB.Model(&location).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}

	c.JSON(http.StatusOK, location)
}

// ------------------------------
// DELETE /locations/:id
// ------------------------------
func DeleteLocation(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var location inventory.Location
	err := database.DB.
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&location).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	// Editions pointing here fall back to no location (FK is SET NULL).
	if err := database.DB.Delete(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
