package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportScopeAll(t *testing.T) {
	tc := newTestContext(t)
	seedArtwork(t, tc.DB, 1, "Echo", "")

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExportArtworks,
		map[string]interface{}{"include_editions": true})
	require.NoError(t, err)

	r := result.(exportResult)
	require.NotNil(t, r.ExportRequest)
	assert.Equal(t, ExportScopeAll, r.ExportRequest.Scope)
	assert.Equal(t, "markdown", r.ExportRequest.Format)
	assert.True(t, r.ExportRequest.Options.IncludeEditions)
	assert.False(t, r.ExportRequest.Options.IncludeHistory)
}

func TestExportSingleTitleMatch(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "回声")
	seedArtwork(t, tc.DB, 1, "Other", "")

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExportArtworks,
		map[string]interface{}{"title_query": "echo"})
	require.NoError(t, err)

	r := result.(exportResult)
	require.NotNil(t, r.ExportRequest)
	assert.Equal(t, ExportScopeSingle, r.ExportRequest.Scope)
	assert.Equal(t, []string{a.ID}, r.ExportRequest.ArtworkIDs)
}

func TestExportDisambiguatesMultipleMatches(t *testing.T) {
	tc := newTestContext(t)
	seedArtwork(t, tc.DB, 1, "Echo I", "")
	seedArtwork(t, tc.DB, 1, "Echo II", "")

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExportArtworks,
		map[string]interface{}{"title_query": "echo"})
	require.NoError(t, err)

	r := result.(exportResult)
	assert.Nil(t, r.ExportRequest)
	assert.Len(t, r.Candidates, 2)
	assert.Contains(t, r.Message, `"echo"`)
}

func TestExportNoMatch(t *testing.T) {
	tc := newTestContext(t)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExportArtworks,
		map[string]interface{}{"title_query": "ghost"})
	require.NoError(t, err)

	r := result.(exportResult)
	assert.Nil(t, r.ExportRequest)
	assert.Empty(t, r.Candidates)
	assert.Contains(t, r.Message, "nothing to export")
}

func TestExportExplicitIDs(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "")
	b := seedArtwork(t, tc.DB, 1, "Other", "")

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExportArtworks,
		map[string]interface{}{"artwork_ids": []interface{}{a.ID, b.ID}, "format": "markdown"})
	require.NoError(t, err)

	r := result.(exportResult)
	require.NotNil(t, r.ExportRequest)
	assert.Equal(t, ExportScopeSelected, r.ExportRequest.Scope)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, r.ExportRequest.ArtworkIDs)
}

func TestExportUnknownIDRejected(t *testing.T) {
	tc := newTestContext(t)
	a := seedArtwork(t, tc.DB, 1, "Echo", "")

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExportArtworks,
		map[string]interface{}{"artwork_ids": []interface{}{a.ID, "00000000-0000-0000-0000-000000000000"}})
	require.NoError(t, err)

	m, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Artwork not found.", m["error"])
}

func TestExportInvalidFormat(t *testing.T) {
	tc := newTestContext(t)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionExportArtworks,
		map[string]interface{}{"format": "docx"})
	require.NoError(t, err)

	m := result.(map[string]interface{})
	assert.Contains(t, m["error"], "invalid format")
}
