package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnoronha42/flor-de-maria-supply/internal/inventory"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL-backed inventory store.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store over an established connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ inventory.Store = (*Store)(nil)

const productColumns = "id, name, quantity, price"

func (s *Store) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	return s.SearchProducts(ctx, "")
}

func (s *Store) SearchProducts(ctx context.Context, query string) ([]inventory.Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE name ILIKE $1 ORDER BY name, id`,
		"%"+query+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (s *Store) GetProduct(ctx context.Context, id int64) (inventory.Product, error) {
	var p inventory.Product
	err := s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Quantity, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.Product{}, inventory.ErrProductNotFound
	}
	if err != nil {
		return inventory.Product{}, fmt.Errorf("query product %d: %w", id, err)
	}
	return p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p inventory.Product) (inventory.Product, error) {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO products (name, quantity, price) VALUES ($1, $2, $3) RETURNING id`,
		p.Name, p.Quantity, p.Price,
	).Scan(&p.ID)
	if err != nil {
		return inventory.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p inventory.Product) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET name = $1, quantity = $2, price = $3 WHERE id = $4`,
		p.Name, p.Quantity, p.Price, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrProductNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	// Transactions reference the product, remove them first.
	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE product_id = $1`, id); err != nil {
		return fmt.Errorf("delete transactions for product %d: %w", id, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrProductNotFound
	}

	return tx.Commit(ctx)
}

func (s *Store) AdjustQuantity(ctx context.Context, id int64, typ inventory.TransactionType, quantity int) (inventory.Product, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return inventory.Product{}, fmt.Errorf("begin adjust: %w", err)
	}
	defer tx.Rollback(ctx)

	var p inventory.Product
	err = tx.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id,
	).Scan(&p.ID, &p.Name, &p.Quantity, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.Product{}, inventory.ErrProductNotFound
	}
	if err != nil {
		return inventory.Product{}, fmt.Errorf("lock product %d: %w", id, err)
	}

	if typ == inventory.TransactionAdd {
		p.Quantity += quantity
	} else {
		p.Quantity -= quantity
		if p.Quantity < 0 {
			p.Quantity = 0
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE products SET quantity = $1 WHERE id = $2`, p.Quantity, id,
	); err != nil {
		return inventory.Product{}, fmt.Errorf("update quantity for product %d: %w", id, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO transactions (product_id, type, quantity, date) VALUES ($1, $2, $3, now())`,
		id, string(typ), quantity,
	); err != nil {
		return inventory.Product{}, fmt.Errorf("record transaction for product %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return inventory.Product{}, fmt.Errorf("commit adjust: %w", err)
	}
	return p, nil
}

func (s *Store) ListTransactions(ctx context.Context, limit int) ([]inventory.Transaction, error) {
	query := `SELECT t.id, t.product_id, p.name, t.type, t.quantity, t.date
		FROM transactions t
		JOIN products p ON t.product_id = p.id
		ORDER BY t.id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (s *Store) BulkInsert(ctx context.Context, records []inventory.Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertRecords(ctx, tx, records); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) ReplaceAll(ctx context.Context, records []inventory.Record) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	if err := insertRecords(ctx, tx, records); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// insertRecords batches the inserts over one round trip per batch.
func insertRecords(ctx context.Context, tx pgx.Tx, records []inventory.Record) error {
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			`INSERT INTO products (name, quantity, price) VALUES ($1, $2, $3)`,
			rec.Name, rec.Quantity, rec.Price,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert product %d (%s): %w", i+1, records[i].Name, err)
		}
	}
	return nil
}

func (s *Store) DashboardStats(ctx context.Context) (inventory.DashboardStats, error) {
	var stats inventory.DashboardStats

	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity * price), 0) FROM products`,
	).Scan(&stats.TotalProducts, &stats.TotalValue)
	if err != nil {
		return inventory.DashboardStats{}, fmt.Errorf("query totals: %w", err)
	}

	lowRows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE quantity < $1 ORDER BY quantity, name`,
		inventory.LowStockThreshold,
	)
	if err != nil {
		return inventory.DashboardStats{}, fmt.Errorf("query low stock: %w", err)
	}
	stats.LowStock, err = scanProducts(lowRows)
	lowRows.Close()
	if err != nil {
		return inventory.DashboardStats{}, err
	}

	expRows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY price DESC, name LIMIT 5`,
	)
	if err != nil {
		return inventory.DashboardStats{}, fmt.Errorf("query most expensive: %w", err)
	}
	stats.MostExpensive, err = scanProducts(expRows)
	expRows.Close()
	if err != nil {
		return inventory.DashboardStats{}, err
	}

	stats.RecentTransactions, err = s.ListTransactions(ctx, 10)
	if err != nil {
		return inventory.DashboardStats{}, err
	}

	return stats, nil
}

func scanProducts(rows pgx.Rows) ([]inventory.Product, error) {
	var out []inventory.Product
	for rows.Next() {
		var p inventory.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}

func scanTransactions(rows pgx.Rows) ([]inventory.Transaction, error) {
	var out []inventory.Transaction
	for rows.Next() {
		var (
			tx  inventory.Transaction
			typ string
		)
		if err := rows.Scan(&tx.ID, &tx.ProductID, &tx.ProductName, &typ, &tx.Quantity, &tx.Date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Type = inventory.TransactionType(typ)
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}
