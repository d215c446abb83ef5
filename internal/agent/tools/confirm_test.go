package tools

import (
	"context"
	"testing"

	"inventory-app/internal/domain/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUpdateConfirmationDoesNotWrite(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "回声")
	e := seedEdition(t, tc.DB, a.ID, "1/3", inventory.StatusInStudio)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionGenerateUpdateConfirmation,
		map[string]interface{}{
			"edition_id": e.ID,
			"updates": map[string]interface{}{
				"status": inventory.StatusSold,
				"buyer":  "Collector Chen",
			},
			"reason": "sold at fair",
		})
	require.NoError(t, err)

	card, ok := result.(ConfirmationCard)
	require.True(t, ok)
	assert.True(t, card.RequiresConfirmation)
	assert.Equal(t, e.ID, card.EditionID)
	assert.Equal(t, "Echo", card.ArtworkTitle)
	assert.Equal(t, "回声", card.ArtworkTitleZh)
	assert.Equal(t, inventory.StatusInStudio, card.Current["status"])
	assert.Equal(t, inventory.StatusSold, card.Proposed["status"])
	assert.Equal(t, "sold at fair", card.Reason)

	// Phase 1 must leave storage untouched.
	var stored inventory.Edition
	require.NoError(t, tc.DB.First(&stored, "id = ?", e.ID).Error)
	assert.Equal(t, inventory.StatusInStudio, stored.Status)
	assert.Empty(t, stored.Buyer)

	var historyCount int64
	tc.DB.Model(&inventory.EditionHistory{}).Count(&historyCount)
	assert.Zero(t, historyCount)
}

func TestConfirmationCardDateRangesFollowProposedStatus(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "")
	e := seedEdition(t, tc.DB, a.ID, "1/3", inventory.StatusInStudio)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionGenerateUpdateConfirmation,
		map[string]interface{}{
			"edition_id": e.ID,
			"updates": map[string]interface{}{
				"status":            inventory.StatusAtGallery,
				"consignment_start": "2026-09-01",
				"consignment_end":   "2026-12-01",
				"loan_start":        "2026-09-01",
			},
		})
	require.NoError(t, err)

	card := result.(ConfirmationCard)
	assert.Contains(t, card.Proposed, "consignment_start")
	assert.Contains(t, card.Proposed, "consignment_end")
	// Loan dates belong to at_museum and must not surface for a gallery move.
	assert.NotContains(t, card.Proposed, "loan_start")
}

func TestExecuteEditionUpdateAppliesAndRecordsHistory(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "")
	e := seedEdition(t, tc.DB, a.ID, "1/3", inventory.StatusInStudio)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExecuteEditionUpdate,
		map[string]interface{}{
			"edition_id": e.ID,
			"updates": map[string]interface{}{
				"status":        inventory.StatusSold,
				"buyer":         "Collector Chen",
				"sale_price":    8000.0,
				"sale_currency": "EUR",
				"sale_date":     "2026-08-15",
			},
			"reason": "confirmed by user",
		})
	require.NoError(t, err)

	m, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, m["updated"])
	assert.Equal(t, inventory.ActionSold, m["action"])

	var stored inventory.Edition
	require.NoError(t, tc.DB.First(&stored, "id = ?", e.ID).Error)
	assert.Equal(t, inventory.StatusSold, stored.Status)
	assert.Equal(t, "Collector Chen", stored.Buyer)
	require.NotNil(t, stored.SalePrice)
	assert.Equal(t, 8000.0, *stored.SalePrice)

	var entries []inventory.EditionHistory
	require.NoError(t, tc.DB.Where("edition_id = ?", e.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, inventory.ActionSold, entries[0].Action)
	assert.Equal(t, "Collector Chen", entries[0].RelatedParty)
	assert.Equal(t, "confirmed by user", entries[0].Note)
}

func TestExecuteEditionUpdateUnknownEdition(t *testing.T) {
	tc := newTestContext(t)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExecuteEditionUpdate,
		map[string]interface{}{
			"edition_id": "00000000-0000-0000-0000-000000000000",
			"updates":    map[string]interface{}{"status": inventory.StatusSold},
		})
	require.NoError(t, err)

	m, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Edition not found.", m["error"])
}

func TestExecuteEditionUpdateOtherUsersEdition(t *testing.T) {
	tc := newTestContext(t)
	other := seedArtwork(t, tc.DB, 2, "Not Mine", "")
	e := seedEdition(t, tc.DB, other.ID, "1/1", inventory.StatusInStudio)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExecuteEditionUpdate,
		map[string]interface{}{
			"edition_id": e.ID,
			"updates":    map[string]interface{}{"status": inventory.StatusSold},
		})
	require.NoError(t, err)

	m := result.(map[string]interface{})
	assert.Equal(t, "Edition not found.", m["error"])

	var stored inventory.Edition
	require.NoError(t, tc.DB.First(&stored, "id = ?", e.ID).Error)
	assert.Equal(t, inventory.StatusInStudio, stored.Status)
}

func TestDeriveHistoryActionReturned(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "")
	e := seedEdition(t, tc.DB, a.ID, "1/3", inventory.StatusAtGallery)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExecuteEditionUpdate,
		map[string]interface{}{
			"edition_id": e.ID,
			"updates":    map[string]interface{}{"status": inventory.StatusInStudio},
		})
	require.NoError(t, err)

	m := result.(map[string]interface{})
	assert.Equal(t, inventory.ActionReturned, m["action"])
}

func TestDeriveHistoryActionFieldOnlyUpdates(t *testing.T) {
	cases := []struct {
		name    string
		updates map[string]interface{}
		want    string
	}{
		{"sale price only", map[string]interface{}{"sale_price": 9500.0}, inventory.ActionSold},
		{"buyer only", map[string]interface{}{"buyer": "Collector Wu"}, inventory.ActionSold},
		{"storage detail only", map[string]interface{}{"storage_detail": "crate B, shelf 2"}, inventory.ActionConditionUpdate},
		{"condition only", map[string]interface{}{"condition": "minor frame scuff"}, inventory.ActionConditionUpdate},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tc := newTestContext(t)
			a := seedArtwork(t, tc.DB, 1, "Echo", "")
			e := seedEdition(t, tc.DB, a.ID, "1/3", inventory.StatusSold)

			result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExecuteEditionUpdate,
				map[string]interface{}{
					"edition_id": e.ID,
					"updates":    c.updates,
				})
			require.NoError(t, err)

			m := result.(map[string]interface{})
			assert.Equal(t, c.want, m["action"])

			var entries []inventory.EditionHistory
			require.NoError(t, tc.DB.Where("edition_id = ?", e.ID).Find(&entries).Error)
			require.Len(t, entries, 1)
			assert.Equal(t, c.want, entries[0].Action)
		})
	}
}

func TestUpdatesMustNotBeEmpty(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "")
	e := seedEdition(t, tc.DB, a.ID, "1/3", inventory.StatusInStudio)

	for _, action := range []string{ActionGenerateUpdateConfirmation, ActionExecuteEditionUpdate} {
		result, err := Dispatch(context.Background(), NewRegistry(tc), action,
			map[string]interface{}{
				"edition_id": e.ID,
				"updates":    map[string]interface{}{},
			})
		require.NoError(t, err)
		m, ok := result.(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, m["error"], "at least one field")
	}
}
