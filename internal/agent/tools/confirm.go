package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory-app/internal/domain/inventory"
	"inventory-app/internal/i18n"

	"gorm.io/gorm"
)

// editionUpdates is the parsed partial-update payload shared by both
// phases of the confirmation protocol.
type editionUpdates struct {
	Status        *string
	LocationID    *string
	SalePrice     *float64
	SaleCurrency  *string
	Buyer         *string
	SaleDate      *time.Time
	Condition     *string
	StorageDetail *string

	ConsignmentStart *time.Time
	ConsignmentEnd   *time.Time
	LoanStart        *time.Time
	LoanEnd          *time.Time
}

func (u *editionUpdates) empty() bool {
	return u.Status == nil && u.LocationID == nil && u.SalePrice == nil &&
		u.SaleCurrency == nil && u.Buyer == nil && u.SaleDate == nil &&
		u.Condition == nil && u.StorageDetail == nil &&
		u.ConsignmentStart == nil && u.ConsignmentEnd == nil &&
		u.LoanStart == nil && u.LoanEnd == nil
}

// columns renders the update as a gorm column map.
func (u *editionUpdates) columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	if u.LocationID != nil {
		cols["location_id"] = *u.LocationID
	}
	if u.SalePrice != nil {
		cols["sale_price"] = *u.SalePrice
	}
	if u.SaleCurrency != nil {
		cols["sale_currency"] = *u.SaleCurrency
	}
	if u.Buyer != nil {
		cols["buyer"] = *u.Buyer
	}
	if u.SaleDate != nil {
		cols["sale_date"] = *u.SaleDate
	}
	if u.Condition != nil {
		cols["condition"] = *u.Condition
	}
	if u.StorageDetail != nil {
		cols["storage_detail"] = *u.StorageDetail
	}
	if u.ConsignmentStart != nil {
		cols["consignment_start"] = *u.ConsignmentStart
	}
	if u.ConsignmentEnd != nil {
		cols["consignment_end"] = *u.ConsignmentEnd
	}
	if u.LoanStart != nil {
		cols["loan_start"] = *u.LoanStart
	}
	if u.LoanEnd != nil {
		cols["loan_end"] = *u.LoanEnd
	}
	return cols
}

func parseEditionUpdates(raw map[string]interface{}) (*editionUpdates, error) {
	u := &editionUpdates{}
	if raw == nil {
		return u, nil
	}

	if s := argString(raw, "status"); s != "" {
		if !inventory.ValidStatus(s) {
			return nil, fmt.Errorf("invalid status %q", s)
		}
		u.Status = &s
	}
	if s := argString(raw, "location_id"); s != "" {
		u.LocationID = &s
	}
	if f, ok := argFloat(raw, "sale_price"); ok {
		u.SalePrice = &f
	}
	if s := argString(raw, "sale_currency"); s != "" {
		u.SaleCurrency = &s
	}
	if s := argString(raw, "buyer"); s != "" {
		u.Buyer = &s
	}
	if s := argString(raw, "condition"); s != "" {
		u.Condition = &s
	}
	if s := argString(raw, "storage_detail"); s != "" {
		u.StorageDetail = &s
	}

	for key, dst := range map[string]**time.Time{
		"sale_date":         &u.SaleDate,
		"consignment_start": &u.ConsignmentStart,
		"consignment_end":   &u.ConsignmentEnd,
		"loan_start":        &u.LoanStart,
		"loan_end":          &u.LoanEnd,
	} {
		if s := argString(raw, key); s != "" {
			t, err := parseDate(s)
			if err != nil {
				return nil, err
			}
			*dst = &t
		}
	}

	return u, nil
}

// ConfirmationCard is the ephemeral phase-1 preview. It is never
// persisted: authority to apply lives entirely in the caller re-submitting
// the same edition id and payload to execute_edition_update.
type ConfirmationCard struct {
	RequiresConfirmation bool                   `json:"requires_confirmation"`
	EditionID            string                 `json:"edition_id"`
	ArtworkTitle         string                 `json:"artwork_title"`
	ArtworkTitleZh       string                 `json:"artwork_title_zh,omitempty"`
	EditionNumber        string                 `json:"edition_number,omitempty"`
	Current              map[string]interface{} `json:"current"`
	Proposed             map[string]interface{} `json:"proposed"`
	Reason               string                 `json:"reason"`
}

func generateUpdateConfirmationTool(tc *Context) Tool {
	return Tool{
		Name: ActionGenerateUpdateConfirmation,
		Description: "Preview an edition update as a confirmation card WITHOUT changing anything. " +
			"Always call this first for any edition change; only call execute_edition_update " +
			"after the user explicitly confirms the card.",
		Parameters: objectSchema(map[string]interface{}{
			"edition_id": map[string]interface{}{"type": "string"},
			"updates":    editionUpdatesSchema(),
			"reason":     map[string]interface{}{"type": "string", "description": "Human-readable reason for the change"},
		}, "edition_id", "updates"),
		Execute: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			editionID := argString(args, "edition_id")
			if editionID == "" {
				return errResult("edition_id is required"), nil
			}
			updates, err := parseEditionUpdates(argMap(args, "updates"))
			if err != nil {
				return errResult(err.Error()), nil
			}
			if updates.empty() {
				return errResult("updates must contain at least one field"), nil
			}

			edition, err := loadUserEdition(tc, editionID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errResult(i18n.T(tc.Locale, "edition.not_found")), nil
			}
			if err != nil {
				return nil, err
			}

			reason := argString(args, "reason")
			if reason == "" {
				reason = i18n.T(tc.Locale, "confirm.reason_default")
			}

			return buildConfirmationCard(edition, updates, reason), nil
		},
	}
}

func executeEditionUpdateTool(tc *Context) Tool {
	return Tool{
		Name: ActionExecuteEditionUpdate,
		Description: "Apply a previously confirmed edition update. Only call this after the user " +
			"has confirmed the card from generate_update_confirmation, re-submitting the same " +
			"edition id and updates.",
		Parameters: objectSchema(map[string]interface{}{
			"edition_id": map[string]interface{}{"type": "string"},
			"updates":    editionUpdatesSchema(),
			"reason":     map[string]interface{}{"type": "string"},
		}, "edition_id", "updates"),
		Execute: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			editionID := argString(args, "edition_id")
			if editionID == "" {
				return errResult("edition_id is required"), nil
			}
			updates, err := parseEditionUpdates(argMap(args, "updates"))
			if err != nil {
				return errResult(err.Error()), nil
			}
			if updates.empty() {
				return errResult("updates must contain at least one field"), nil
			}

			edition, err := loadUserEdition(tc, editionID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errResult(i18n.T(tc.Locale, "edition.not_found")), nil
			}
			if err != nil {
				return nil, err
			}

			action := deriveHistoryAction(edition, updates)
			note := argString(args, "reason")
			relatedParty := ""
			if updates.Buyer != nil {
				relatedParty = *updates.Buyer
			}

			err = tc.DB.Transaction(func(tx *gorm.DB) error {
				if err := tx.Model(&inventory.Edition{}).
					Where("id = ?", edition.ID).
					Updates(updates.columns()).Error; err != nil {
					return err
				}

				entry := inventory.EditionHistory{
					EditionID:    edition.ID,
					Action:       action,
					RelatedParty: relatedParty,
					Note:         note,
				}
				return tx.Create(&entry).Error
			})
			if err != nil {
				return nil, err
			}

			updated, err := loadUserEdition(tc, editionID)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{
				"updated": true,
				"edition": updated,
				"action":  action,
			}, nil
		},
		Summarize: func(result interface{}) string {
			r, ok := result.(map[string]interface{})
			if !ok {
				return marshalSummary(result)
			}
			if msg, ok := r["error"].(string); ok {
				return msg
			}
			edition, _ := r["edition"].(*inventory.Edition)
			action, _ := r["action"].(string)
			if edition == nil {
				return marshalSummary(result)
			}
			return fmt.Sprintf("Edition %s updated (history action %s), status now %s", edition.ID, action, edition.Status)
		},
	}
}

func editionUpdatesSchema() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"status":            map[string]interface{}{"type": "string", "enum": inventory.EditionStatuses},
		"location_id":       map[string]interface{}{"type": "string"},
		"sale_price":        map[string]interface{}{"type": "number"},
		"sale_currency":     map[string]interface{}{"type": "string"},
		"buyer":             map[string]interface{}{"type": "string"},
		"sale_date":         map[string]interface{}{"type": "string", "description": "YYYY-MM-DD"},
		"condition":         map[string]interface{}{"type": "string"},
		"storage_detail":    map[string]interface{}{"type": "string"},
		"consignment_start": map[string]interface{}{"type": "string", "description": "YYYY-MM-DD, only for at_gallery"},
		"consignment_end":   map[string]interface{}{"type": "string", "description": "YYYY-MM-DD, only for at_gallery"},
		"loan_start":        map[string]interface{}{"type": "string", "description": "YYYY-MM-DD, only for at_museum"},
		"loan_end":          map[string]interface{}{"type": "string", "description": "YYYY-MM-DD, only for at_museum"},
	})
}

func loadUserEdition(tc *Context, editionID string) (*inventory.Edition, error) {
	var edition inventory.Edition
	err := userEditionsQuery(tc.DB, tc.UserID).
		Where("editions.id = ?", editionID).
		Preload("Artwork").
		Preload("Location").
		First(&edition).Error
	if err != nil {
		return nil, err
	}
	return &edition, nil
}

// buildConfirmationCard snapshots the fields the update touches. Which
// date-range pair shows up follows the proposed status: consignment dates
// belong to at_gallery, loan dates to at_museum.
func buildConfirmationCard(edition *inventory.Edition, updates *editionUpdates, reason string) ConfirmationCard {
	card := ConfirmationCard{
		RequiresConfirmation: true,
		EditionID:            edition.ID,
		EditionNumber:        edition.EditionNumber,
		Current:              map[string]interface{}{},
		Proposed:             map[string]interface{}{},
		Reason:               reason,
	}
	if edition.Artwork != nil {
		card.ArtworkTitle = edition.Artwork.Title
		card.ArtworkTitleZh = edition.Artwork.TitleZh
	}

	put := func(field string, current, proposed interface{}) {
		card.Current[field] = current
		card.Proposed[field] = proposed
	}

	if updates.Status != nil {
		put("status", edition.Status, *updates.Status)
	}
	if updates.LocationID != nil {
		currentName := ""
		if edition.Location != nil {
			currentName = edition.Location.Name
		}
		put("location_id", edition.LocationID, *updates.LocationID)
		card.Current["location_name"] = currentName
	}
	if updates.SalePrice != nil {
		put("sale_price", edition.SalePrice, *updates.SalePrice)
	}
	if updates.SaleCurrency != nil {
		put("sale_currency", edition.SaleCurrency, *updates.SaleCurrency)
	}
	if updates.Buyer != nil {
		put("buyer", edition.Buyer, *updates.Buyer)
	}
	if updates.SaleDate != nil {
		put("sale_date", edition.SaleDate, *updates.SaleDate)
	}
	if updates.Condition != nil {
		put("condition", edition.Condition, *updates.Condition)
	}
	if updates.StorageDetail != nil {
		put("storage_detail", edition.StorageDetail, *updates.StorageDetail)
	}

	proposedStatus := edition.Status
	if updates.Status != nil {
		proposedStatus = *updates.Status
	}
	if proposedStatus == inventory.StatusAtGallery {
		if updates.ConsignmentStart != nil {
			put("consignment_start", edition.ConsignmentStart, *updates.ConsignmentStart)
		}
		if updates.ConsignmentEnd != nil {
			put("consignment_end", edition.ConsignmentEnd, *updates.ConsignmentEnd)
		}
	}
	if proposedStatus == inventory.StatusAtMuseum {
		if updates.LoanStart != nil {
			put("loan_start", edition.LoanStart, *updates.LoanStart)
		}
		if updates.LoanEnd != nil {
			put("loan_end", edition.LoanEnd, *updates.LoanEnd)
		}
	}

	return card
}

// deriveHistoryAction picks the history action the applied update
// represents.
func deriveHistoryAction(edition *inventory.Edition, updates *editionUpdates) string {
	newStatus := ""
	if updates.Status != nil {
		newStatus = *updates.Status
	}

	switch {
	case newStatus == inventory.StatusSold:
		return inventory.ActionSold
	case newStatus == inventory.StatusAtGallery,
		updates.ConsignmentStart != nil, updates.ConsignmentEnd != nil:
		return inventory.ActionConsigned
	case newStatus == inventory.StatusInStudio &&
		(edition.Status == inventory.StatusAtGallery || edition.Status == inventory.StatusAtMuseum):
		return inventory.ActionReturned
	case newStatus != "":
		return inventory.ActionStatusChange
	case updates.LocationID != nil:
		return inventory.ActionLocationChange
	case updates.SalePrice != nil, updates.SaleCurrency != nil,
		updates.Buyer != nil, updates.SaleDate != nil:
		// Sale-detail edits amend the sale record.
		return inventory.ActionSold
	case updates.LoanStart != nil, updates.LoanEnd != nil:
		// Loan terms are placement terms, same as consignment dates.
		return inventory.ActionConsigned
	default:
		// Condition and storage-detail edits.
		return inventory.ActionConditionUpdate
	}
}
