// Package runtime wires configuration, storage and the HTTP server into a
// runnable application.
package runtime

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	app "github.com/shoplite/shoplite/internal/app"
	"github.com/shoplite/shoplite/internal/app/httpapi"
	"github.com/shoplite/shoplite/internal/app/metrics"
	"github.com/shoplite/shoplite/internal/app/storage/jsonfile"
	"github.com/shoplite/shoplite/internal/app/storage/postgres"
	"github.com/shoplite/shoplite/internal/config"
	"github.com/shoplite/shoplite/internal/middleware"
	"github.com/shoplite/shoplite/pkg/logger"
)

// Application wires core dependencies and manages the HTTP server lifecycle.
type Application struct {
	cfg        *config.Config
	log        *logger.Logger
	httpServer *http.Server
	db         *sql.DB
}

// NewApplication constructs a new application instance with default wiring.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePrefix: cfg.Logging.FilePrefix,
	})

	stores, db, err := buildStores(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("configure stores: %w", err)
	}

	application, err := app.New(stores, log)
	if err != nil {
		return nil, err
	}

	handler := httpapi.NewHandler(application)
	chain := metrics.InstrumentHandler(handler)
	chain = middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst, log).Handler(chain)
	chain = middleware.NewCORSMiddleware(cfg.HTTP.Origins()).Handler(chain)
	chain = middleware.Logging(log)(chain)
	chain = middleware.RequestID(chain)

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{
		cfg:        cfg,
		log:        log,
		httpServer: httpSrv,
		db:         db,
	}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.log.Infof("HTTP server listening on %s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully shuts down the HTTP server.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.WithError(err).Warn("error closing database connection")
		}
	}

	return nil
}

// buildStores selects the persistence backend: PostgreSQL when a DSN is
// configured, otherwise flat JSON files under the data directory.
func buildStores(cfg *config.Config, log *logger.Logger) (app.Stores, *sql.DB, error) {
	if cfg.Database.DSN != "" {
		db, err := openDatabase(cfg.Database)
		if err != nil {
			return app.Stores{}, nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return app.Stores{}, nil, fmt.Errorf("ensure schema: %w", err)
		}

		store := postgres.New(db)
		log.Info("using postgres storage backend")
		return app.Stores{Products: store, Users: store, Orders: store}, db, nil
	}

	store, err := jsonfile.New(cfg.Data.Dir, log.WithComponent("jsonfile"))
	if err != nil {
		return app.Stores{}, nil, err
	}
	log.Infof("using flat-file storage backend in %s", cfg.Data.Dir)
	return app.Stores{Products: store, Users: store, Orders: store}, nil, nil
}

func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
