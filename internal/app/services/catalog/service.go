// Package catalog exposes the product collection read-only.
package catalog

import (
	"context"

	"github.com/shoplite/shoplite/internal/app/domain/product"
	"github.com/shoplite/shoplite/internal/app/storage"
	"github.com/shoplite/shoplite/pkg/logger"
)

// Service serves the product catalog. There is no write path: products are
// seeded out of band and immutable from the API's perspective.
type Service struct {
	store storage.ProductStore
	log   *logger.Logger
}

// New constructs a catalog service.
func New(store storage.ProductStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("catalog")
	}
	return &Service{store: store, log: log}
}

// List returns every product. No filtering or pagination.
func (s *Service) List(ctx context.Context) ([]product.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []product.Product{}
	}
	return products, nil
}
