// Package orders implements checkout and the admin order listing.
package orders

import (
	"context"
	"sort"

	"github.com/shoplite/shoplite/internal/app/domain/order"
	"github.com/shoplite/shoplite/internal/app/metrics"
	"github.com/shoplite/shoplite/internal/app/storage"
	"github.com/shoplite/shoplite/pkg/logger"
)

// Service manages order records.
type Service struct {
	store storage.OrderStore
	log   *logger.Logger
}

// New constructs an order service.
func New(store storage.OrderStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("orders")
	}
	return &Service{store: store, log: log}
}

// Place persists the submitted cart snapshot. The store assigns the id and
// creation timestamp; everything else, including the client-computed total
// and the asserted userId, is stored as supplied.
func (s *Service) Place(ctx context.Context, ord order.Order) (order.Order, error) {
	created, err := s.store.CreateOrder(ctx, ord)
	if err != nil {
		return order.Order{}, err
	}

	metrics.RecordOrderPlaced(len(created.Items))
	s.log.Infof("order %d placed for user %d", created.ID, created.UserID)
	return created, nil
}

// List returns every order, most recent first. Orders with equal timestamps
// keep their insertion order so the listing is deterministic.
func (s *Service) List(ctx context.Context) ([]order.Order, error) {
	result, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	if result == nil {
		result = []order.Order{}
	}
	return result, nil
}
