package tools

import (
	"context"
	"testing"

	"inventory-app/internal/domain/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEmptyInventory(t *testing.T) {
	tc := newTestContext(t)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionGetStatistics,
		map[string]interface{}{"type": "overview"})
	require.NoError(t, err)

	r := result.(statisticsResult)
	assert.True(t, r.Empty)
	assert.Equal(t, "The inventory is empty: no artworks or editions recorded yet.", r.Message)
	assert.Zero(t, r.TotalArtworks)
	assert.Zero(t, r.TotalEditions)
}

func TestStatisticsByStatus(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "")
	seedEdition(t, tc.DB, a.ID, "1/3", inventory.StatusInStudio)
	seedEdition(t, tc.DB, a.ID, "2/3", inventory.StatusInStudio)
	seedEdition(t, tc.DB, a.ID, "3/3", inventory.StatusSold)

	// Another user's editions must not leak into the buckets.
	b := seedArtwork(t, tc.DB, 2, "Other", "")
	seedEdition(t, tc.DB, b.ID, "1/1", inventory.StatusSold)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionGetStatistics,
		map[string]interface{}{"type": "by_status"})
	require.NoError(t, err)

	r := result.(statisticsResult)
	assert.Equal(t, int64(1), r.TotalArtworks)
	assert.Equal(t, int64(3), r.TotalEditions)
	assert.Equal(t, map[string]int64{
		inventory.StatusInStudio: 2,
		inventory.StatusSold:     1,
	}, r.Buckets)
}

func TestStatisticsByLocationUnknownBucket(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "")
	loc := seedLocation(t, tc.DB, 1, inventory.LocationGallery, "White Cube")

	placed := seedEdition(t, tc.DB, a.ID, "1/2", inventory.StatusAtGallery)
	require.NoError(t, tc.DB.Model(&inventory.Edition{}).
		Where("id = ?", placed.ID).Update("location_id", loc.ID).Error)
	seedEdition(t, tc.DB, a.ID, "2/2", inventory.StatusInStudio)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionGetStatistics,
		map[string]interface{}{"type": "by_location"})
	require.NoError(t, err)

	r := result.(statisticsResult)
	assert.Equal(t, map[string]int64{
		"White Cube":       1,
		"Unknown location": 1,
	}, r.Buckets)
}

func TestStatisticsInvalidType(t *testing.T) {
	tc := newTestContext(t)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionGetStatistics,
		map[string]interface{}{"type": "by_moon_phase"})
	require.NoError(t, err)

	m, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, m["error"], "invalid statistics type")
}
