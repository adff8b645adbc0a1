// Command seeder loads the demo data set into the configured store. An
// already populated store is left untouched. It is intended to be run once
// against a fresh database, not as part of the main server.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/fieldservice-backend/internal/app"
	"github.com/heartmarshall/fieldservice-backend/internal/config"
)

func main() {
	configPath := flag.String("config", "", "config file (default $CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.Store.Driver != config.DriverPostgres {
		logger.Warn("seeding a memory store has no lasting effect", slog.String("store", cfg.Store.Driver))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	backend, err := app.OpenBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer backend.Close()

	svc := app.NewServices(logger, cfg.Views, backend, nil)

	counts, err := app.SeedDemo(ctx, logger, svc.FieldOps, svc.Inventory, time.Now())
	if err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if counts.Skipped() {
		logger.Info("store already populated, nothing seeded")
	}
}
