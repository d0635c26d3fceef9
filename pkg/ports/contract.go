package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticehq/lattice/pkg/domain"
)

// RunDocumentStoreContract runs a suite of tests verifying that a
// DocumentStore implementation adheres to the interface contract.
// Adapter test packages call this against their concrete store.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	docID := "contract-test-doc-" + time.Now().Format("20060102150405")

	page := &domain.Page{
		ID:   docID,
		Slug: "contract",
		Steps: []domain.Step{
			{ID: "s1", Name: "Welcome", Frames: []domain.Frame{}},
		},
		Settings: map[string]any{"theme": "light"},
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, docID, page)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, page.ID, loaded.ID)
		assert.Equal(t, "contract", loaded.Slug)
		require.Len(t, loaded.Steps, 1)
		assert.Equal(t, "Welcome", loaded.Steps[0].Name)
	})

	t.Run("Load isolation", func(t *testing.T) {
		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		loaded.Slug = "mutated"

		again, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, "contract", again.Slug, "store must not leak caller mutations")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-doc")
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, docID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, docID))
		_, err := store.Load(ctx, docID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})
}
