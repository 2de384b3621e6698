// Package jsonfile implements the storage interfaces over flat JSON files,
// one array file per collection under a data directory.
//
// Reads are fail-soft for files that do not exist yet: a missing collection
// file yields an empty collection. A file that exists but cannot be read or
// parsed is surfaced as a storage error instead of being silently masked.
// Writes rewrite the whole collection through a temp-file-then-rename, so a
// crash mid-write never leaves a half-written file behind. A per-collection
// mutex serializes the read-modify-write cycle, so concurrent requests
// cannot lose each other's updates.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shoplite/shoplite/internal/app/domain/order"
	"github.com/shoplite/shoplite/internal/app/domain/product"
	"github.com/shoplite/shoplite/internal/app/domain/user"
	"github.com/shoplite/shoplite/internal/app/storage"
	"github.com/shoplite/shoplite/internal/apperr"
	"github.com/shoplite/shoplite/pkg/logger"
)

const (
	productsFile = "products.json"
	usersFile    = "users.json"
	ordersFile   = "orders.json"
)

// collection guards one JSON array file.
type collection struct {
	mu   sync.Mutex
	path string
}

// Store persists each collection to its own pretty-printed JSON array file.
type Store struct {
	log      *logger.Logger
	ids      storage.IDSource
	products collection
	users    collection
	orders   collection
}

var _ storage.ProductStore = (*Store)(nil)
var _ storage.UserStore = (*Store)(nil)
var _ storage.OrderStore = (*Store)(nil)

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.NewDefault("jsonfile")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{
		log:      log,
		products: collection{path: filepath.Join(dir, productsFile)},
		users:    collection{path: filepath.Join(dir, usersFile)},
		orders:   collection{path: filepath.Join(dir, ordersFile)},
	}, nil
}

// load reads the collection file into dst. A file that does not exist yet
// leaves dst untouched (empty collection).
func (s *Store) load(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		s.log.WithError(err).Errorf("read %s", path)
		return apperr.Storage("Failed to read stored data.", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.log.WithError(err).Errorf("parse %s", path)
		return apperr.Storage("Stored data is corrupted.", err)
	}
	return nil
}

// save rewrites the collection file atomically.
func (s *Store) save(path string, src interface{}) error {
	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return apperr.Storage("Failed to encode stored data.", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		s.log.WithError(err).Errorf("create temp file in %s", dir)
		return apperr.Storage("Failed to write stored data.", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperr.Storage("Failed to write stored data.", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperr.Storage("Failed to write stored data.", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return apperr.Storage("Failed to write stored data.", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		s.log.WithError(err).Errorf("rename %s", tmpName)
		return apperr.Storage("Failed to write stored data.", err)
	}
	return nil
}

// ProductStore implementation ------------------------------------------------

func (s *Store) ListProducts(_ context.Context) ([]product.Product, error) {
	s.products.mu.Lock()
	defer s.products.mu.Unlock()

	var products []product.Product
	if err := s.load(s.products.path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) ReplaceProducts(_ context.Context, products []product.Product) error {
	s.products.mu.Lock()
	defer s.products.mu.Unlock()

	if products == nil {
		products = []product.Product{}
	}
	return s.save(s.products.path, products)
}

// UserStore implementation ---------------------------------------------------

func (s *Store) CreateUser(_ context.Context, u user.User) (user.User, error) {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	users := []user.User{}
	if err := s.load(s.users.path, &users); err != nil {
		return user.User{}, err
	}

	for _, existing := range users {
		if existing.Email == u.Email {
			return user.User{}, storage.ErrDuplicateEmail
		}
	}

	if u.ID == 0 {
		u.ID = s.ids.Next()
	}
	users = append(users, u)

	if err := s.save(s.users.path, users); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	var users []user.User
	if err := s.load(s.users.path, &users); err != nil {
		return user.User{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, storage.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()

	var users []user.User
	if err := s.load(s.users.path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// OrderStore implementation --------------------------------------------------

func (s *Store) CreateOrder(_ context.Context, ord order.Order) (order.Order, error) {
	s.orders.mu.Lock()
	defer s.orders.mu.Unlock()

	orders := []order.Order{}
	if err := s.load(s.orders.path, &orders); err != nil {
		return order.Order{}, err
	}

	if ord.ID == 0 {
		ord.ID = s.ids.Next()
	}
	if ord.Date.IsZero() {
		ord.Date = time.Now().UTC()
	}
	orders = append(orders, ord)

	if err := s.save(s.orders.path, orders); err != nil {
		return order.Order{}, err
	}
	return ord, nil
}

func (s *Store) ListOrders(_ context.Context) ([]order.Order, error) {
	s.orders.mu.Lock()
	defer s.orders.mu.Unlock()

	var orders []order.Order
	if err := s.load(s.orders.path, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
