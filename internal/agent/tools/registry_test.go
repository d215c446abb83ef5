package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOnlyRegistryContainsOnlySearchTools(t *testing.T) {
	reg := NewReadOnlyRegistry(newTestContext(t))

	assert.ElementsMatch(t, []string{
		ActionSearchArtworks,
		ActionSearchEditions,
		ActionSearchLocations,
		ActionSearchHistory,
		ActionGetStatistics,
	}, ActionNames(reg))

	_, hasWrite := reg[ActionExecuteEditionUpdate]
	assert.False(t, hasWrite)
	_, hasImport := reg[ActionImportArtworkFromURL]
	assert.False(t, hasImport)
}

func TestDispatchUnknownAction(t *testing.T) {
	reg := NewReadOnlyRegistry(newTestContext(t))

	_, err := Dispatch(context.Background(), reg, "drop_all_tables", nil)
	require.Error(t, err)

	var invalid *InvalidActionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "drop_all_tables", invalid.Action)
	assert.ElementsMatch(t, ReadOnlyActions(), invalid.Valid)
	assert.Contains(t, err.Error(), "INVALID_ACTION")
}

func TestDispatchMutatingActionRejectedOnReadOnlyRegistry(t *testing.T) {
	reg := NewReadOnlyRegistry(newTestContext(t))

	// The action exists in the full catalog but must not be reachable here.
	_, err := Dispatch(context.Background(), reg, ActionExecuteEditionUpdate, map[string]interface{}{
		"edition_id": "whatever",
		"updates":    map[string]interface{}{"status": "sold"},
	})
	var invalid *InvalidActionError
	require.ErrorAs(t, err, &invalid)
}

func TestFullRegistryCatalog(t *testing.T) {
	reg := NewRegistry(newTestContext(t))
	assert.Len(t, reg, 9)

	schemas := Schemas(reg)
	require.Len(t, schemas, 9)
	for _, s := range schemas {
		assert.Equal(t, "function", s["type"])
		fn, ok := s["function"].(map[string]interface{})
		require.True(t, ok)
		assert.NotEmpty(t, fn["name"])
		assert.NotEmpty(t, fn["description"])
		assert.NotNil(t, fn["parameters"])
	}
}

func TestDispatchRecoversExecutionErrors(t *testing.T) {
	reg := Registry{
		"boom": {
			Name: "boom",
			Execute: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
				return nil, errors.New("db exploded")
			},
		},
	}

	result, err := Dispatch(context.Background(), reg, "boom", nil)
	require.NoError(t, err)
	m, ok := result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "db exploded", m["error"])
}
