package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory-app/internal/domain/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<html><head><title>Sunrise Over Harbor</title></head>
<body>
<img src="/assets/logo.svg">
<img src="/images/sunrise-full.jpg">
<h1>Sunrise Over Harbor / 海港日出</h1>
<p>Oil on canvas, 2024, 120 x 90 cm</p>
</body></html>`

const sampleExtraction = `{"title": "Sunrise Over Harbor", "title_zh": "海港日出",
"year": "2024", "type": "painting", "dimensions": "120 x 90 cm",
"materials": "Oil on canvas", "duration": ""}`

func newImportServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestImportArtworkCreates(t *testing.T) {
	tc := newTestContext(t)
	tc.ExtractionClient = &stubLLM{reply: sampleExtraction}
	srv := newImportServer(t)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionImportArtworkFromURL,
		map[string]interface{}{"url": srv.URL + "/work"})
	require.NoError(t, err)

	m, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "created", m["action"])

	artwork, ok := m["artwork"].(inventory.Artwork)
	require.True(t, ok)
	assert.Equal(t, "Sunrise Over Harbor", artwork.Title)
	assert.Equal(t, "海港日出", artwork.TitleZh)
	assert.Equal(t, "2024", artwork.Year)
	assert.Equal(t, srv.URL+"/work", artwork.SourceURL)
	// The svg logo must be skipped in favor of the raster image.
	assert.Equal(t, srv.URL+"/images/sunrise-full.jpg", artwork.ThumbnailURL)
}

func TestImportArtworkDedupByURL(t *testing.T) {
	tc := newTestContext(t)
	tc.ExtractionClient = &stubLLM{reply: sampleExtraction}
	srv := newImportServer(t)

	for i := 0; i < 2; i++ {
		_, err := Dispatch(context.Background(), NewRegistry(tc), ActionImportArtworkFromURL,
			map[string]interface{}{"url": srv.URL + "/work"})
		require.NoError(t, err)
	}

	var count int64
	tc.DB.Model(&inventory.Artwork{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestImportArtworkDedupByTitle(t *testing.T) {
	tc := newTestContext(t)
	tc.ExtractionClient = &stubLLM{reply: sampleExtraction}
	srv := newImportServer(t)

	// Same bilingual title, no source URL yet: the import should adopt it.
	existing := seedArtwork(t, tc.DB, 1, "Sunrise Over Harbor", "海港日出")

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionImportArtworkFromURL,
		map[string]interface{}{"url": srv.URL + "/work"})
	require.NoError(t, err)

	m := result.(map[string]interface{})
	assert.Equal(t, "updated", m["action"])

	artwork := m["artwork"].(inventory.Artwork)
	assert.Equal(t, existing.ID, artwork.ID)
	assert.Equal(t, srv.URL+"/work", artwork.SourceURL)

	var count int64
	tc.DB.Model(&inventory.Artwork{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestImportArtworkTitleMatchWithConflictingURLCreatesNew(t *testing.T) {
	tc := newTestContext(t)
	tc.ExtractionClient = &stubLLM{reply: sampleExtraction}
	srv := newImportServer(t)

	conflicting := inventory.Artwork{
		UserID: 1, Title: "Sunrise Over Harbor", TitleZh: "海港日出",
		SourceURL: "https://elsewhere.example/other-work",
	}
	require.NoError(t, tc.DB.Create(&conflicting).Error)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionImportArtworkFromURL,
		map[string]interface{}{"url": srv.URL + "/work"})
	require.NoError(t, err)

	m := result.(map[string]interface{})
	assert.Equal(t, "created", m["action"])

	var count int64
	tc.DB.Model(&inventory.Artwork{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestImportArtworkWithoutExtractionModel(t *testing.T) {
	tc := newTestContext(t)
	srv := newImportServer(t)

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionImportArtworkFromURL,
		map[string]interface{}{"url": srv.URL + "/work"})
	require.NoError(t, err)

	m := result.(map[string]interface{})
	assert.Equal(t, "no extraction model configured", m["error"])
}

func TestImportArtworkInvalidURL(t *testing.T) {
	tc := newTestContext(t)
	tc.ExtractionClient = &stubLLM{reply: sampleExtraction}

	result, err := Dispatch(context.Background(), NewRegistry(tc), ActionImportArtworkFromURL,
		map[string]interface{}{"url": "not a url"})
	require.NoError(t, err)

	m := result.(map[string]interface{})
	assert.Contains(t, m["error"], "invalid url")
}
