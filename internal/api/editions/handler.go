package editions

import (
	"net/http"

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

func userEditionQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&inventory.Edition{}).
		Joins("JOIN artworks ON artworks.id = editions.artwork_id").
		Where("artworks.user_id = ? AND artworks.deleted_at IS NULL", userID)
}

// ------------------------------
// POST /artworks/:id/editions
// ------------------------------
func CreateEdition(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req CreateEditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = inventory.StatusInStudio
	}
	if !inventory.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var artwork inventory.Artwork
	err := database.DB.
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", c.Param("id"), userID).
		First(&artwork).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Artwork not found"})
		return
	}

	edition := inventory.Edition{
		ArtworkID:     artwork.ID,
		EditionNumber: req.EditionNumber,
		Status:        status,
		LocationID:    req.LocationID,
		Condition:     req.Condition,
		StorageDetail: req.StorageDetail,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&edition).Error; err != nil {
			return err
		}
		entry := inventory.EditionHistory{
			EditionID: edition.ID,
			Action:    inventory.ActionCreated,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create edition", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, edition)
}

// ------------------------------
// PUT /editions/:id
// ------------------------------
func UpdateEdition(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req UpdateEditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var edition inventory.Edition
	err := userEditionQuery(database.DB, userID).
		Where("editions.id = ?", c.Param("id")).
		First(&edition).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Edition not found"})
		return
	}

	updates := map[string]interface{}{}
	actions := []string{}

	if req.Status != nil {
		if !inventory.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		if *req.Status != edition.Status {
			updates["status"] = *req.Status
			switch {
			case *req.Status == inventory.StatusSold:
				actions = append(actions, inventory.ActionSold)
			case *req.Status == inventory.StatusAtGallery:
				actions = append(actions, inventory.ActionConsigned)
			case *req.Status == inventory.StatusInStudio &&
				(edition.Status == inventory.StatusAtGallery || edition.Status == inventory.StatusAtMuseum):
				actions = append(actions, inventory.ActionReturned)
			default:
				actions = append(actions, inventory.ActionStatusChange)
			}
		}
	}
	if req.EditionNumber != nil && *req.EditionNumber != edition.EditionNumber {
		updates["edition_number"] = *req.EditionNumber
		actions = append(actions, inventory.ActionNumberAssigned)
	}
	if req.LocationID != nil {
		updates["location_id"] = req.LocationID
		actions = append(actions, inventory.ActionLocationChange)
	}
	if req.Condition != nil && *req.Condition != edition.Condition {
		updates["condition"] = *req.Condition
		actions = append(actions, inventory.ActionConditionUpdate)
	}
	if req.SalePrice != nil {
		updates["sale_price"] = req.SalePrice
	}
	if req.SaleCurrency != nil {
		updates["sale_currency"] = *req.SaleCurrency
	}
	if req.Buyer != nil {
		updates["buyer"] = *req.Buyer
	}
	if req.StorageDetail != nil {
		updates["storage_detail"] = *req.StorageDetail
	}

	dateCols := map[string]*string{
		"sale_date":         req.SaleDate,
		"consignment_start": req.ConsignmentStart,
		"consignment_end":   req.ConsignmentEnd,
		"loan_start":        req.LoanStart,
		"loan_end":          req.LoanEnd,
	}
	for col, raw := range dateCols {
		if raw == nil {
			continue
		}
		t, ok := parseDay(*raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date for " + col})
			return
		}
		updates[col] = t
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, edition)
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&edition).Updates(updates).Error; err != nil {
			return err
		}
		buyer := ""
		if req.Buyer != nil {
			buyer = *req.Buyer
		}
		for _, action := range actions {
			entry := inventory.EditionHistory{
				EditionID:    edition.ID,
				Action:       action,
				RelatedParty: buyer,
				Note:         req.Note,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update edition"})
		return
	}

	c.JSON(http.StatusOK, edition)
}

// ------------------------------
// DELETE /editions/:id
// ------------------------------
func DeleteEdition(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var edition inventory.Edition
	err := userEditionQuery(database.DB, userID).
		Where("editions.id = ?", c.Param("id")).
		First(&edition).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Edition not found"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("edition_id = ?", edition.ID).Delete(&inventory.EditionHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&edition).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete edition"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ------------------------------
// GET /editions/:id/history
// ------------------------------
func GetEditionHistory(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var edition inventory.Edition
	err := userEditionQuery(database.DB, userID).
		Where("editions.id = ?", c.Param("id")).
		First(&edition).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Edition not found"})
		return
	}

	var history []inventory.EditionHistory
	if err := database.DB.
		Where("edition_id = ?", edition.ID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
