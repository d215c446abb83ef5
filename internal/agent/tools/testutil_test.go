package tools

import (
	"context"
	"testing"

	"inventory-app/internal/domain/inventory"
	"inventory-app/internal/llm"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&inventory.Artwork{},
		&inventory.Edition{},
		&inventory.Location{},
		&inventory.EditionHistory{},
	))
	return db
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	return NewContext(newTestDB(t), 1, nil, nil, "en")
}

func seedArtwork(t *testing.T, db *gorm.DB, userID uint, title, titleZh string) inventory.Artwork {
	t.Helper()
	a := inventory.Artwork{UserID: userID, Title: title, TitleZh: titleZh}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func seedEdition(t *testing.T, db *gorm.DB, artworkID, number, status string) inventory.Edition {
	t.Helper()
	e := inventory.Edition{ArtworkID: artworkID, EditionNumber: number, Status: status}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func seedLocation(t *testing.T, db *gorm.DB, userID uint, kind, name string) inventory.Location {
	t.Helper()
	l := inventory.Location{UserID: userID, Kind: kind, Name: name}
	require.NoError(t, db.Create(&l).Error)
	return l
}

// stubLLM satisfies llm.Client for tools that call a secondary model.
type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Complete(_ context.Context, _ string) (string, error) {
	return s.reply, s.err
}

func (s *stubLLM) CompleteWithRequest(_ context.Context, _ *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.reply}, nil
}

func (s *stubLLM) GetModelName() string { return "stub" }
