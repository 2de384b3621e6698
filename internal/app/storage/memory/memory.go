// Package memory provides a thread-safe in-memory implementation of the
// storage interfaces. It is intended for tests and prototyping and
// deliberately keeps the implementation simple.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shoplite/shoplite/internal/app/domain/order"
	"github.com/shoplite/shoplite/internal/app/domain/product"
	"github.com/shoplite/shoplite/internal/app/domain/user"
	"github.com/shoplite/shoplite/internal/app/storage"
)

// Store keeps every collection in process memory.
type Store struct {
	mu       sync.RWMutex
	ids      storage.IDSource
	products []product.Product
	users    []user.User
	orders   []order.Order
}

var _ storage.ProductStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)
var _ storage.OrderStore = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// ProductStore implementation ------------------------------------------------

func (s *Store) ListProducts(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]product.Product(nil), s.products...), nil
}

func (s *Store) ReplaceProducts(_ context.Context, products []product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append([]product.Product(nil), products...)
	return nil
}

// UserStore implementation ---------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return user.User{}, storage.ErrDuplicateEmail
		}
	}

	if u.ID == 0 {
		u.ID = s.ids.Next()
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, storage.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]user.User(nil), s.users...), nil
}

// OrderStore implementation --------------------------------------------------

func (s *Store) CreateOrder(_ context.Context, ord order.Order) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ord.ID == 0 {
		ord.ID = s.ids.Next()
	}
	if ord.Date.IsZero() {
		ord.Date = time.Now().UTC()
	}
	ord.Items = append([]order.Item(nil), ord.Items...)

	s.orders = append(s.orders, ord)
	return cloneOrder(ord), nil
}

func (s *Store) ListOrders(_ context.Context) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]order.Order, 0, len(s.orders))
	for _, ord := range s.orders {
		result = append(result, cloneOrder(ord))
	}
	return result, nil
}

func cloneOrder(ord order.Order) order.Order {
	ord.Items = append([]order.Item(nil), ord.Items...)
	return ord
}
