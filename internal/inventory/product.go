// Package inventory contains the domain model for the stock-control
// application: products, stock transactions, the text-file parser that
// seeds the catalog, and the Store interface the web layer persists
// through.
package inventory

import (
	"context"
	"errors"
	"time"
)

// LowStockThreshold is the quantity below which a product is flagged
// on the dashboard.
const LowStockThreshold = 5

// ErrProductNotFound is returned by Store implementations when the
// requested product does not exist.
var ErrProductNotFound = errors.New("product not found")

// Product is a catalog entry with its current stock level.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// TotalValue returns the stock value of this product (quantity * price).
func (p Product) TotalValue() float64 {
	return float64(p.Quantity) * p.Price
}

// TransactionType identifies the direction of a stock movement.
type TransactionType string

const (
	// TransactionAdd is a stock-in movement.
	TransactionAdd TransactionType = "add"
	// TransactionRemove is a stock-out movement.
	TransactionRemove TransactionType = "remove"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionAdd || t == TransactionRemove
}

// Transaction is a recorded stock movement against a product.
type Transaction struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Type        TransactionType `json:"type"`
	Quantity    int             `json:"quantity"`
	Date        time.Time       `json:"date"`
}

// DashboardStats aggregates the figures shown on the dashboard page.
type DashboardStats struct {
	TotalProducts      int64
	TotalValue         float64
	LowStock           []Product
	MostExpensive      []Product
	RecentTransactions []Transaction
}

// Store is the persistence port for products and transactions.
// Implementations must be safe for concurrent use.
type Store interface {
	// ListProducts returns all products ordered by name.
	ListProducts(ctx context.Context) ([]Product, error)

	// SearchProducts returns products whose name contains query
	// (case-insensitive), ordered by name. An empty query matches all.
	SearchProducts(ctx context.Context, query string) ([]Product, error)

	// GetProduct returns a single product, or ErrProductNotFound.
	GetProduct(ctx context.Context, id int64) (Product, error)

	// CreateProduct inserts a product and returns it with its assigned ID.
	CreateProduct(ctx context.Context, p Product) (Product, error)

	// UpdateProduct overwrites name, quantity and price of an existing
	// product. Returns ErrProductNotFound if the ID does not exist.
	UpdateProduct(ctx context.Context, p Product) error

	// DeleteProduct removes a product and its transactions.
	DeleteProduct(ctx context.Context, id int64) error

	// AdjustQuantity applies a stock movement and records a transaction.
	// Stock-out movements clamp the resulting quantity at zero. Both
	// writes happen atomically. Returns ErrProductNotFound if the
	// product does not exist.
	AdjustQuantity(ctx context.Context, id int64, typ TransactionType, quantity int) (Product, error)

	// ListTransactions returns recorded movements newest first, with the
	// product name joined in. limit <= 0 means no limit.
	ListTransactions(ctx context.Context, limit int) ([]Transaction, error)

	// CountProducts returns the number of products in the store.
	CountProducts(ctx context.Context) (int64, error)

	// BulkInsert appends products preserving the given order.
	BulkInsert(ctx context.Context, records []Record) error

	// ReplaceAll deletes every product (and dependent transactions) and
	// inserts the given records in order.
	ReplaceAll(ctx context.Context, records []Record) error

	// DashboardStats computes the dashboard aggregates.
	DashboardStats(ctx context.Context) (DashboardStats, error)
}
