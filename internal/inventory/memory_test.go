package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSearchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.CreateProduct(ctx, Product{Name: "Caderno 20 folhas", Quantity: 12, Price: 5.50})
	require.NoError(t, err)
	_, err = store.CreateProduct(ctx, Product{Name: "Borracha", Quantity: 3, Price: 1.00})
	require.NoError(t, err)

	got, err := store.SearchProducts(ctx, "CADER")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Caderno 20 folhas", got[0].Name)
}

func TestMemoryStoreListSortsByName(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, name := range []string{"Tesoura", "Apontador", "Caneta"} {
		_, err := store.CreateProduct(ctx, Product{Name: name, Quantity: 1})
		require.NoError(t, err)
	}

	got, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Apontador", got[0].Name)
	assert.Equal(t, "Caneta", got[1].Name)
	assert.Equal(t, "Tesoura", got[2].Name)
}

func TestMemoryStoreListTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p, err := store.CreateProduct(ctx, Product{Name: "Caderno", Quantity: 10})
	require.NoError(t, err)

	quantities := []int{1, 2, 3}
	for _, q := range quantities {
		_, err := store.AdjustQuantity(ctx, p.ID, TransactionAdd, q)
		require.NoError(t, err)
	}

	got, err := store.ListTransactions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].Quantity)
	assert.Equal(t, 1, got[2].Quantity)

	limited, err := store.ListTransactions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, 3, limited[0].Quantity)
}

func TestMemoryStoreReplaceAllResetsCatalog(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p, err := store.CreateProduct(ctx, Product{Name: "Velho", Quantity: 1})
	require.NoError(t, err)
	_, err = store.AdjustQuantity(ctx, p.ID, TransactionAdd, 1)
	require.NoError(t, err)

	err = store.ReplaceAll(ctx, []Record{
		{Quantity: 12, Name: "Caderno 20 folhas", Price: 5.50},
	})
	require.NoError(t, err)

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Caderno 20 folhas", products[0].Name)

	txs, err := store.ListTransactions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestMemoryStoreDashboardSortsLowStockTiesByName(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, p := range []Product{
		{Name: "Tesoura", Quantity: 2, Price: 7.90},
		{Name: "Apontador", Quantity: 2, Price: 1.50},
		{Name: "Borracha", Quantity: 1, Price: 1.00},
		{Name: "Caderno", Quantity: 10, Price: 5.50},
	} {
		_, err := store.CreateProduct(ctx, p)
		require.NoError(t, err)
	}

	stats, err := store.DashboardStats(ctx)
	require.NoError(t, err)

	require.Len(t, stats.LowStock, 3)
	assert.Equal(t, "Borracha", stats.LowStock[0].Name)
	assert.Equal(t, "Apontador", stats.LowStock[1].Name)
	assert.Equal(t, "Tesoura", stats.LowStock[2].Name)
}

func TestMemoryStoreUpdateMissingProduct(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.UpdateProduct(ctx, Product{ID: 42, Name: "Fantasma"})
	assert.ErrorIs(t, err, ErrProductNotFound)

	err = store.DeleteProduct(ctx, 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
