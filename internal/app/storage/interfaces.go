package storage

import (
	"context"
	"errors"

	"github.com/shoplite/shoplite/internal/app/domain/order"
	"github.com/shoplite/shoplite/internal/app/domain/product"
	"github.com/shoplite/shoplite/internal/app/domain/user"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when a user with the same email already
// exists. Email matching is case-sensitive.
var ErrDuplicateEmail = errors.New("email already registered")

// ProductStore persists the product catalog.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
	ReplaceProducts(ctx context.Context, products []product.Product) error
}

// UserStore persists user records.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
}

// OrderStore persists order records. Orders are append-only.
type OrderStore interface {
	CreateOrder(ctx context.Context, ord order.Order) (order.Order, error)
	ListOrders(ctx context.Context) ([]order.Order, error)
}
