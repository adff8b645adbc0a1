package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/fieldservice-backend/internal/adapter/kafka"
	"github.com/heartmarshall/fieldservice-backend/internal/config"
	"github.com/heartmarshall/fieldservice-backend/internal/metrics"
	"github.com/heartmarshall/fieldservice-backend/internal/service/fieldops"
	"github.com/heartmarshall/fieldservice-backend/internal/service/inventory"
	"github.com/heartmarshall/fieldservice-backend/internal/service/views"
	"github.com/heartmarshall/fieldservice-backend/internal/viewcache"
)

// Services bundles the services of one process. Views is the mutation
// notifier for the write services.
type Services struct {
	Views     *views.Service
	FieldOps  *fieldops.Service
	Inventory *inventory.Service
}

// NewServices wires the services on top of an opened backend. obs may be nil.
func NewServices(logger *slog.Logger, cfg config.ViewsConfig, b *Backend, obs viewcache.Observer) *Services {
	v := views.NewService(logger, cfg, b.Customers, b.Technicians, b.Jobs, b.Invoices, b.Items, obs)

	ops := fieldops.NewService(logger, fieldops.Repos{
		Customers:   b.Customers,
		Technicians: b.Technicians,
		Jobs:        b.Jobs,
		Invoices:    b.Invoices,
		Items:       b.Items,
	}, v, b.Tx)

	inv := inventory.NewService(logger, b.Items, b.Jobs, v, b.Tx)

	return &Services{Views: v, FieldOps: ops, Inventory: inv}
}

// Run is the application entry point. It loads configuration, opens the
// store, wires the services and serves HTTP until ctx is cancelled. When
// enabled, the kafka mutation listener runs alongside the server; either
// one failing stops the other.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("store", cfg.Store.Driver),
	)

	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	var (
		m   *metrics.Metrics
		obs viewcache.Observer
	)
	if cfg.Metrics.Enabled {
		m = metrics.New()
		obs = m
	}

	svc := NewServices(logger, cfg.Views, backend, obs)

	if cfg.Store.SeedDemo {
		if _, err := SeedDemo(ctx, logger, svc.FieldOps, svc.Inventory, time.Now()); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewRouter(logger, cfg, backend, svc, m),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var listener *kafka.Listener
	if cfg.Kafka.Enabled {
		listener, err = kafka.NewListener(logger, cfg.Kafka, svc.Views)
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return serve(gctx, logger, srv, cfg.Server.ShutdownTimeout)
	})
	if listener != nil {
		g.Go(func() error {
			return listener.Run(gctx)
		})
	}

	err = g.Wait()
	logger.Info("application stopped")
	return err
}

// serve runs srv until ctx is done, then shuts it down within timeout.
func serve(ctx context.Context, logger *slog.Logger, srv *http.Server, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
