package inventory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFromFile(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "estoque.txt")
	snapshotPath := filepath.Join(dir, "products.json")

	seed := "12 Caderno 20 folhas 5.50\nBorracha.\nab\n3 Lápis ?\n"
	require.NoError(t, os.WriteFile(seedPath, []byte(seed), 0o644))

	store := NewMemoryStore()
	im := NewImporter(store, nil)

	n, err := im.SeedFromFile(context.Background(), seedPath, snapshotPath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	products, err := store.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Borracha", products[0].Name)
	assert.Equal(t, 1, products[0].Quantity)

	// Snapshot holds the same records in interchange form.
	raw, err := os.ReadFile(snapshotPath)
	require.NoError(t, err)
	var doc snapshot
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, []Record{
		{Quantity: 12, Name: "Caderno 20 folhas", Price: 5.50},
		{Quantity: 1, Name: "Borracha", Price: 0},
		{Quantity: 3, Name: "Lápis ?", Price: 0},
	}, doc.Products)
}

func TestSeedFromFileSkipsNonEmptyStore(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "estoque.txt")
	require.NoError(t, os.WriteFile(seedPath, []byte("Caneta azul 1.50\n"), 0o644))

	store := NewMemoryStore()
	_, err := store.CreateProduct(context.Background(), Product{Name: "Existing", Quantity: 1})
	require.NoError(t, err)

	n, err := NewImporter(store, nil).SeedFromFile(context.Background(), seedPath, "")
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := store.CountProducts(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSeedFromFileMissingFile(t *testing.T) {
	store := NewMemoryStore()

	n, err := NewImporter(store, nil).SeedFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), "")
	require.NoError(t, err)
	assert.Zero(t, n)
}
