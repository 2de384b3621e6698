// Package postgres implements the storage interfaces backed by PostgreSQL,
// as an alternative to the flat-file store for deployments that already run
// a database.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/shoplite/shoplite/internal/app/domain/order"
	"github.com/shoplite/shoplite/internal/app/domain/product"
	"github.com/shoplite/shoplite/internal/app/domain/user"
	"github.com/shoplite/shoplite/internal/app/storage"
)

const uniqueViolation = "23505"

// Store implements the storage interfaces over a *sql.DB.
type Store struct {
	db  *sql.DB
	ids storage.IDSource
}

var _ storage.ProductStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)
var _ storage.OrderStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the tables if they do not exist. Statements are
// idempotent so the call is safe on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS shop_products (
			pos BIGSERIAL,
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL,
			image TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS shop_users (
			pos BIGSERIAL,
			id BIGINT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS shop_orders (
			pos BIGSERIAL,
			id BIGINT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			items JSONB NOT NULL,
			address TEXT NOT NULL,
			total NUMERIC(12,2) NOT NULL,
			date TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// --- ProductStore -----------------------------------------------------------

func (s *Store) ListProducts(ctx context.Context) ([]product.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, image
		FROM shop_products
		ORDER BY pos
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var (
			p     product.Product
			price string
		)
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Image); err != nil {
			return nil, err
		}
		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *Store) ReplaceProducts(ctx context.Context, products []product.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shop_products`); err != nil {
		return err
	}
	for _, p := range products {
		if p.ID == 0 {
			p.ID = s.ids.Next()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO shop_products (id, name, price, image)
			VALUES ($1, $2, $3, $4)
		`, p.ID, p.Name, p.Price.String(), p.Image); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// --- UserStore --------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == 0 {
		u.ID = s.ids.Next()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shop_users (id, email, password_hash)
		VALUES ($1, $2, $3)
	`, u.ID, u.Email, u.PasswordHash)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return user.User{}, storage.ErrDuplicateEmail
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash
		FROM shop_users
		WHERE email = $1
	`, email)

	var u user.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]user.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, password_hash
		FROM shop_users
		ORDER BY pos
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// --- OrderStore -------------------------------------------------------------

func (s *Store) CreateOrder(ctx context.Context, ord order.Order) (order.Order, error) {
	if ord.ID == 0 {
		ord.ID = s.ids.Next()
	}
	if ord.Date.IsZero() {
		ord.Date = time.Now().UTC()
	}

	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return order.Order{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO shop_orders (id, user_id, items, address, total, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ord.ID, ord.UserID, itemsJSON, ord.Address, ord.Total.String(), ord.Date)
	if err != nil {
		return order.Order{}, err
	}
	return ord, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]order.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, items, address, total, date
		FROM shop_orders
		ORDER BY pos
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var (
			ord      order.Order
			itemsRaw []byte
			total    string
		)
		if err := rows.Scan(&ord.ID, &ord.UserID, &itemsRaw, &ord.Address, &total, &ord.Date); err != nil {
			return nil, err
		}
		if len(itemsRaw) > 0 {
			if err := json.Unmarshal(itemsRaw, &ord.Items); err != nil {
				return nil, err
			}
		}
		if ord.Total, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		result = append(result, ord)
	}
	return result, rows.Err()
}
