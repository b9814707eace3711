package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidInput marks request data the service refuses to persist.
// Handlers map it to a 400 response.
var ErrInvalidInput = errors.New("invalid input")

// Service provides the business operations behind the web layer. It
// validates input and delegates persistence to the Store.
type Service struct {
	store Store
}

// NewService creates a Service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Products returns the full catalog ordered by name.
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	return s.store.ListProducts(ctx)
}

// Search returns products matching query by name, case-insensitively.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	return s.store.SearchProducts(ctx, strings.TrimSpace(query))
}

// Product returns a single product by ID.
func (s *Service) Product(ctx context.Context, id int64) (Product, error) {
	return s.store.GetProduct(ctx, id)
}

// CreateProduct validates and inserts a new product.
func (s *Service) CreateProduct(ctx context.Context, name string, quantity int, price float64) (Product, error) {
	p := Product{Name: strings.TrimSpace(name), Quantity: quantity, Price: price}
	if err := validateProduct(p); err != nil {
		return Product{}, err
	}
	return s.store.CreateProduct(ctx, p)
}

// UpdateProduct validates and overwrites an existing product.
func (s *Service) UpdateProduct(ctx context.Context, id int64, name string, quantity int, price float64) error {
	p := Product{ID: id, Name: strings.TrimSpace(name), Quantity: quantity, Price: price}
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.store.UpdateProduct(ctx, p)
}

// DeleteProduct removes a product and its transaction history.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}

// RecordMovement applies a stock-in or stock-out movement and records the
// transaction. Stock-out never takes the quantity below zero.
func (s *Service) RecordMovement(ctx context.Context, id int64, typ TransactionType, quantity int) (Product, error) {
	if !typ.Valid() {
		return Product{}, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, typ)
	}
	if quantity <= 0 {
		return Product{}, fmt.Errorf("%w: movement quantity must be positive", ErrInvalidInput)
	}
	return s.store.AdjustQuantity(ctx, id, typ, quantity)
}

// Transactions returns the movement history, newest first.
func (s *Service) Transactions(ctx context.Context) ([]Transaction, error) {
	return s.store.ListTransactions(ctx, 0)
}

// Dashboard returns the aggregates for the dashboard page.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	return s.store.DashboardStats(ctx)
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	ImportID string `json:"import_id"`
	Imported int    `json:"imported"`
}

// Import replaces the whole catalog with the given records, the operation
// behind the /api/import endpoint. Records must carry a non-empty name and
// non-negative quantity and price.
func (s *Service) Import(ctx context.Context, records []Record) (ImportResult, error) {
	for i, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			return ImportResult{}, fmt.Errorf("%w: product %d has an empty name", ErrInvalidInput, i+1)
		}
		if rec.Quantity < 0 {
			return ImportResult{}, fmt.Errorf("%w: product %d has a negative quantity", ErrInvalidInput, i+1)
		}
		if rec.Price < 0 {
			return ImportResult{}, fmt.Errorf("%w: product %d has a negative price", ErrInvalidInput, i+1)
		}
	}

	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return ImportResult{}, fmt.Errorf("replace products: %w", err)
	}

	return ImportResult{
		ImportID: uuid.New().String(),
		Imported: len(records),
	}, nil
}

// validateProduct checks the fields shared by create and update.
func validateProduct(p Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	return nil
}
