package inventory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is a Store backed by process memory. It is the storage used
// in tests and for local development without a database.
type MemoryStore struct {
	mu           sync.RWMutex
	products     map[int64]Product
	transactions []Transaction
	nextProduct  int64
	nextTx       int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:    make(map[int64]Product),
		nextProduct: 1,
		nextTx:      1,
	}
}

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) ListProducts(ctx context.Context) ([]Product, error) {
	return s.SearchProducts(ctx, "")
}

func (s *MemoryStore) SearchProducts(_ context.Context, query string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if query == "" || strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) GetProduct(_ context.Context, id int64) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

func (s *MemoryStore) CreateProduct(_ context.Context, p Product) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextProduct
	s.nextProduct++
	s.products[p.ID] = p
	return p, nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[p.ID]; !ok {
		return ErrProductNotFound
	}
	s.products[p.ID] = p
	return nil
}

func (s *MemoryStore) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(s.products, id)

	kept := s.transactions[:0]
	for _, tx := range s.transactions {
		if tx.ProductID != id {
			kept = append(kept, tx)
		}
	}
	s.transactions = kept
	return nil
}

func (s *MemoryStore) AdjustQuantity(_ context.Context, id int64, typ TransactionType, quantity int) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}

	if typ == TransactionAdd {
		p.Quantity += quantity
	} else {
		p.Quantity -= quantity
		if p.Quantity < 0 {
			p.Quantity = 0
		}
	}
	s.products[id] = p

	s.transactions = append(s.transactions, Transaction{
		ID:          s.nextTx,
		ProductID:   id,
		ProductName: p.Name,
		Type:        typ,
		Quantity:    quantity,
		Date:        time.Now(),
	})
	s.nextTx++

	return p, nil
}

func (s *MemoryStore) ListTransactions(_ context.Context, limit int) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Transaction, 0, len(s.transactions))
	for i := len(s.transactions) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		tx := s.transactions[i]
		if p, ok := s.products[tx.ProductID]; ok {
			tx.ProductName = p.Name
		}
		out = append(out, tx)
	}
	return out, nil
}

func (s *MemoryStore) CountProducts(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.products)), nil
}

func (s *MemoryStore) BulkInsert(_ context.Context, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertLocked(records)
	return nil
}

func (s *MemoryStore) ReplaceAll(_ context.Context, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make(map[int64]Product, len(records))
	s.transactions = nil
	s.insertLocked(records)
	return nil
}

func (s *MemoryStore) insertLocked(records []Record) {
	for _, rec := range records {
		p := Product{
			ID:       s.nextProduct,
			Name:     rec.Name,
			Quantity: rec.Quantity,
			Price:    rec.Price,
		}
		s.nextProduct++
		s.products[p.ID] = p
	}
}

func (s *MemoryStore) DashboardStats(ctx context.Context) (DashboardStats, error) {
	s.mu.RLock()
	products := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	s.mu.RUnlock()

	stats := DashboardStats{TotalProducts: int64(len(products))}
	for _, p := range products {
		stats.TotalValue += p.TotalValue()
		if p.Quantity < LowStockThreshold {
			stats.LowStock = append(stats.LowStock, p)
		}
	}
	sort.Slice(stats.LowStock, func(i, j int) bool {
		if stats.LowStock[i].Quantity != stats.LowStock[j].Quantity {
			return stats.LowStock[i].Quantity < stats.LowStock[j].Quantity
		}
		return stats.LowStock[i].Name < stats.LowStock[j].Name
	})

	sort.Slice(products, func(i, j int) bool {
		if products[i].Price != products[j].Price {
			return products[i].Price > products[j].Price
		}
		return products[i].Name < products[j].Name
	})
	if len(products) > 5 {
		products = products[:5]
	}
	stats.MostExpensive = products

	recent, err := s.ListTransactions(ctx, 10)
	if err != nil {
		return DashboardStats{}, err
	}
	stats.RecentTransactions = recent

	return stats, nil
}
