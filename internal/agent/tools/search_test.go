package tools

import (
	"context"
	"testing"
	"time"

	"inventory-app/internal/domain/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchArtworksScoping(t *testing.T) {
	tc := newTestContext(t)

	mine := seedArtwork(t, tc.DB, 1, "Sunrise Over Harbor", "海港日出")
	seedArtwork(t, tc.DB, 2, "Sunrise Elsewhere", "")

	deleted := seedArtwork(t, tc.DB, 1, "Sunrise Deleted", "")
	now := time.Now()
	require.NoError(t, tc.DB.Model(&inventory.Artwork{}).
		Where("id = ?", deleted.ID).Update("deleted_at", &now).Error)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionSearchArtworks,
		map[string]interface{}{"query": "sunrise"})
	require.NoError(t, err)

	r, ok := result.(artworkSearchResult)
	require.True(t, ok)
	require.Equal(t, 1, r.Count)
	assert.Equal(t, mine.ID, r.Artworks[0].ID)
}

func TestSearchArtworksChineseTitle(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Sunrise Over Harbor", "海港日出")

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionSearchArtworks,
		map[string]interface{}{"query": "日出"})
	require.NoError(t, err)

	r := result.(artworkSearchResult)
	require.Equal(t, 1, r.Count)
	assert.Equal(t, a.ID, r.Artworks[0].ID)
}

func TestSearchArtworksExpansionVariants(t *testing.T) {
	tc := newTestContext(t)
	tc.ExpansionClient = &stubLLM{reply: `["sunrise", "日出"]`}

	a := seedArtwork(t, tc.DB, 1, "", "海港日出")

	// The literal term matches nothing; only the expanded variant does.
	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionSearchArtworks,
		map[string]interface{}{"query": "dawn"})
	require.NoError(t, err)

	r := result.(artworkSearchResult)
	require.Equal(t, 1, r.Count)
	assert.Equal(t, a.ID, r.Artworks[0].ID)
}

func TestSearchArtworksEmptyResultMessage(t *testing.T) {
	tc := newTestContext(t)
	tc.Locale = "zh"

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionSearchArtworks,
		map[string]interface{}{"query": "nothing here"})
	require.NoError(t, err)

	r := result.(artworkSearchResult)
	assert.Equal(t, 0, r.Count)
	assert.NotNil(t, r.Artworks)
	assert.Equal(t, "没有找到符合条件的作品。", r.Message)
}

func TestSearchArtworksLiteralWildcardQuery(t *testing.T) {
	tc := newTestContext(t)
	seedArtwork(t, tc.DB, 1, "Sunrise Over Harbor", "")
	weird := seedArtwork(t, tc.DB, 1, "100% Cotton", "")

	// "%" in the query must match literally, not as a wildcard.
	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionSearchArtworks,
		map[string]interface{}{"query": "100%"})
	require.NoError(t, err)

	r := result.(artworkSearchResult)
	require.Equal(t, 1, r.Count)
	assert.Equal(t, weird.ID, r.Artworks[0].ID)
}

func TestSearchEditionsByStatus(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "")
	seedEdition(t, tc.DB, a.ID, "1/3", inventory.StatusInStudio)
	sold := seedEdition(t, tc.DB, a.ID, "2/3", inventory.StatusSold)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionSearchEditions,
		map[string]interface{}{"status": "sold"})
	require.NoError(t, err)

	r := result.(editionSearchResult)
	require.Equal(t, 1, r.Count)
	assert.Equal(t, sold.ID, r.Editions[0].ID)
	require.NotNil(t, r.Editions[0].Artwork)
	assert.Equal(t, "Echo", r.Editions[0].Artwork.Title)
}

func TestSearchEditionsInvalidStatus(t *testing.T) {
	tc := newTestContext(t)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionSearchEditions,
		map[string]interface{}{"status": "teleported"})
	require.NoError(t, err)

	m, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, m["error"], "invalid status")
}

func TestSearchLocations(t *testing.T) {
	tc := newTestContext(t)
	seedLocation(t, tc.DB, 1, inventory.LocationGallery, "White Cube")
	seedLocation(t, tc.DB, 1, inventory.LocationStudio, "Main Studio")
	seedLocation(t, tc.DB, 2, inventory.LocationGallery, "White Wall")

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionSearchLocations,
		map[string]interface{}{"query": "white"})
	require.NoError(t, err)

	r := result.(locationSearchResult)
	require.Equal(t, 1, r.Count)
	assert.Equal(t, "White Cube", r.Locations[0].Name)
}

func TestSearchHistoryNoArtworkMatch(t *testing.T) {
	tc := newTestContext(t)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionSearchHistory,
		map[string]interface{}{"artwork_query": "ghost"})
	require.NoError(t, err)

	r := result.(historySearchResult)
	assert.Equal(t, 0, r.Count)
	assert.Contains(t, r.Message, `"ghost"`)
}

func TestSearchHistoryEndDateCoversWholeDay(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "")
	e := seedEdition(t, tc.DB, a.ID, "1/3", inventory.StatusInStudio)

	evening := time.Date(2026, 8, 15, 18, 30, 0, 0, time.UTC)
	require.NoError(t, tc.DB.Create(&inventory.EditionHistory{
		EditionID: e.ID,
		Action:    inventory.ActionSold,
		CreatedAt: evening,
	}).Error)
	require.NoError(t, tc.DB.Create(&inventory.EditionHistory{
		EditionID: e.ID,
		Action:    inventory.ActionCreated,
		CreatedAt: evening.AddDate(0, 0, 1),
	}).Error)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionSearchHistory,
		map[string]interface{}{"from": "2026-08-15", "to": "2026-08-15"})
	require.NoError(t, err)

	r := result.(historySearchResult)
	require.Equal(t, 1, r.Count)
	assert.Equal(t, inventory.ActionSold, r.History[0].Action)
}

func TestSearchHistoryByArtworkTitle(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "")
	e := seedEdition(t, tc.DB, a.ID, "1/3", inventory.StatusInStudio)
	require.NoError(t, tc.DB.Create(&inventory.EditionHistory{
		EditionID: e.ID,
		Action:    inventory.ActionCreated,
	}).Error)

	other := seedArtwork(t, tc.DB, 1, "Other", "")
	oe := seedEdition(t, tc.DB, other.ID, "1/1", inventory.StatusInStudio)
	require.NoError(t, tc.DB.Create(&inventory.EditionHistory{
		EditionID: oe.ID,
		Action:    inventory.ActionCreated,
	}).Error)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionSearchHistory,
		map[string]interface{}{"artwork_query": "echo"})
	require.NoError(t, err)

	r := result.(historySearchResult)
	require.Equal(t, 1, r.Count)
	assert.Equal(t, e.ID, r.History[0].EditionID)
}
