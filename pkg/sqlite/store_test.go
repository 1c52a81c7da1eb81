package sqlite_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PikeCameron/recipebox/pkg/sqlite"
	"github.com/PikeCameron/recipebox/pkg/types"
)

func TestPublicStoreLifecycle(t *testing.T) {
	cfg := types.Config{DataDir: t.TempDir()}

	store, err := sqlite.Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, store.Reset(sqlite.DefaultSeed()))

	// Reset closes the store.
	_, err = store.Fetch()
	assert.True(t, errors.Is(err, types.ErrStoreClosed))

	store, err = sqlite.Open(cfg, nil)
	require.NoError(t, err)
	defer store.Close()

	id, err := store.Add("Omelette", 1, []string{"eggs", "cheese"})
	require.NoError(t, err)

	row, found, err := store.Get(id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Breakfast", row.Category)
	assert.Equal(t, []string{"eggs", "cheese"}, row.IngredientNames())

	_, err = store.Add("Omelette", 2, nil)
	assert.ErrorIs(t, err, types.ErrConstraintViolation)
}
