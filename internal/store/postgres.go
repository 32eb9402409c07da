// Package store implements the inventory persistence port on PostgreSQL
// using pgx. It owns the schema bootstrap and the mapping from driver errors
// to the core error taxonomy.
package store

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harsh-gohil-129/inventory-management-app/internal/core"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaks.
const uniqueViolation = "23505"

// Postgres is the pgx-backed implementation of core.Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// New creates a Postgres store over an existing connection pool.
func New(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Bootstrap creates the products and inventory_history tables if they do not
// exist yet. Run once at startup.
func (s *Postgres) Bootstrap(ctx context.Context) error {
	const products = `
		CREATE TABLE IF NOT EXISTS products (
			id       BIGSERIAL PRIMARY KEY,
			name     TEXT UNIQUE NOT NULL,
			category TEXT NOT NULL,
			brand    TEXT NOT NULL DEFAULT '',
			price    BIGINT NOT NULL,
			stock    BIGINT NOT NULL,
			image    TEXT NOT NULL DEFAULT ''
		)`
	const history = `
		CREATE TABLE IF NOT EXISTS inventory_history (
			id           BIGSERIAL PRIMARY KEY,
			product_id   BIGINT NOT NULL,
			old_quantity BIGINT NOT NULL,
			new_quantity BIGINT NOT NULL,
			change_date  TIMESTAMPTZ NOT NULL,
			user_info    TEXT NOT NULL
		)`

	if _, err := s.pool.Exec(ctx, products); err != nil {
		return fmt.Errorf("create products table: %w", mapError(err))
	}
	if _, err := s.pool.Exec(ctx, history); err != nil {
		return fmt.Errorf("create inventory_history table: %w", mapError(err))
	}
	return nil
}

func (s *Postgres) GetProduct(ctx context.Context, id int64) (*core.Product, error) {
	const q = `SELECT id, name, category, brand, price, stock, image FROM products WHERE id = $1`

	var p core.Product
	err := s.pool.QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.Brand, &p.Price, &p.Stock, &p.Image,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (s *Postgres) GetProductByName(ctx context.Context, name string) (*core.Product, error) {
	const q = `SELECT id, name, category, brand, price, stock, image FROM products WHERE name = $1`

	var p core.Product
	err := s.pool.QueryRow(ctx, q, name).Scan(
		&p.ID, &p.Name, &p.Category, &p.Brand, &p.Price, &p.Stock, &p.Image,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (s *Postgres) InsertProduct(ctx context.Context, p *core.Product) (int64, error) {
	const q = `
		INSERT INTO products (name, category, brand, price, stock, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := s.pool.QueryRow(ctx, q, p.Name, p.Category, p.Brand, p.Price, p.Stock, p.Image).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &core.ConflictError{Name: p.Name}
		}
		return 0, mapError(err)
	}
	return id, nil
}

func (s *Postgres) UpdateProduct(ctx context.Context, id int64, fields core.UpdateProductInput) (int64, error) {
	const q = `
		UPDATE products
		SET name = $1, category = $2, brand = $3, price = $4, stock = $5
		WHERE id = $6`

	tag, err := s.pool.Exec(ctx, q, fields.Name, fields.Category, fields.Brand, fields.Price, fields.Stock, id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &core.ConflictError{Name: fields.Name}
		}
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

func (s *Postgres) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return 0, mapError(err)
	}
	return tag.RowsAffected(), nil
}

func (s *Postgres) ListProducts(ctx context.Context) ([]core.Product, error) {
	const q = `SELECT id, name, category, brand, price, stock, image FROM products`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var products []core.Product
	for rows.Next() {
		var p core.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Brand, &p.Price, &p.Stock, &p.Image); err != nil {
			return nil, mapError(err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

func (s *Postgres) AppendHistory(ctx context.Context, rec *core.HistoryRecord) (int64, error) {
	const q = `
		INSERT INTO inventory_history (product_id, old_quantity, new_quantity, change_date, user_info)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := s.pool.QueryRow(ctx, q,
		rec.ProductID, rec.OldQuantity, rec.NewQuantity, rec.ChangeDate, rec.UserInfo,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (s *Postgres) ListHistory(ctx context.Context, productID int64) ([]core.HistoryRecord, error) {
	const q = `
		SELECT id, product_id, old_quantity, new_quantity, change_date, user_info
		FROM inventory_history
		WHERE product_id = $1
		ORDER BY change_date DESC, id DESC`

	rows, err := s.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var records []core.HistoryRecord
	for rows.Next() {
		var rec core.HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.OldQuantity, &rec.NewQuantity, &rec.ChangeDate, &rec.UserInfo); err != nil {
			return nil, mapError(err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return records, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// mapError classifies driver errors. Connection-level faults become
// core.TransientError so callers (the import reconciler in particular) can
// tell "stop the batch" from "skip the row". Context cancellation passes
// through untouched.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var netErr net.Error
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.As(err, &netErr) || pgconn.SafeToRetry(err) {
		return &core.TransientError{Err: err}
	}
	return err
}
