package app

import (
	"github.com/shoplite/shoplite/internal/app/services/accounts"
	"github.com/shoplite/shoplite/internal/app/services/catalog"
	"github.com/shoplite/shoplite/internal/app/services/orders"
	"github.com/shoplite/shoplite/internal/app/storage"
	"github.com/shoplite/shoplite/internal/app/storage/memory"
	"github.com/shoplite/shoplite/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to a
// shared in-memory implementation.
type Stores struct {
	Products storage.ProductStore
	Users    storage.UserStore
	Orders   storage.OrderStore
}

// Application ties the domain services together.
type Application struct {
	log *logger.Logger

	Catalog  *catalog.Service
	Accounts *accounts.Service
	Orders   *orders.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	var mem *memory.Store
	defaultStore := func() *memory.Store {
		if mem == nil {
			mem = memory.New()
		}
		return mem
	}
	if stores.Products == nil {
		stores.Products = defaultStore()
	}
	if stores.Users == nil {
		stores.Users = defaultStore()
	}
	if stores.Orders == nil {
		stores.Orders = defaultStore()
	}

	return &Application{
		log:      log,
		Catalog:  catalog.New(stores.Products, log.WithComponent("catalog")),
		Accounts: accounts.New(stores.Users, log.WithComponent("accounts")),
		Orders:   orders.New(stores.Orders, log.WithComponent("orders")),
	}, nil
}
