// Command reconcile replays stock usage records against inventory levels
// and reports items whose stored stock has drifted. Usage records are the
// source of truth: with -repair, drifting items are reset to baseline minus
// recorded usage. It is intended to be invoked by an external cron job.
//
// When kafka is enabled, repairs are published to the mutation topic so
// running servers invalidate their inventory views.
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

	"github.com/heartmarshall/fieldservice-backend/internal/adapter/kafka"
	"github.com/heartmarshall/fieldservice-backend/internal/app"
	"github.com/heartmarshall/fieldservice-backend/internal/config"
	"github.com/heartmarshall/fieldservice-backend/internal/service/inventory"
)

func main() {
	repair := flag.Bool("repair", false, "reset drifting items to the expected stock level")
	configPath := flag.String("config", "", "config file (default $CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	backend, err := app.OpenBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer backend.Close()

	svc := app.NewServices(logger, cfg.Views, backend, nil).Inventory

	if cfg.Kafka.Enabled {
		pub, err := kafka.NewPublisher(logger, cfg.Kafka)
		if err != nil {
			logger.Error("create kafka publisher", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pub.Close()
		svc = inventory.NewService(logger, backend.Items, backend.Jobs, pub, backend.Tx)
	}

	res, err := svc.Reconcile(ctx, *repair)
	if err != nil {
		logger.Error("reconcile failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, d := range res.Drift {
		logger.Warn("stock drift",
			slog.String("item_id", d.ItemID.String()),
			slog.String("item", d.ItemName),
			slog.Int("recorded", d.Recorded),
			slog.Int("expected", d.Expected),
			slog.Int("total_used", d.TotalUsed),
		)
	}
	for _, u := range res.Dangling {
		logger.Warn("usage references unknown item",
			slog.String("usage_id", u.ID.String()),
			slog.String("item_id", u.ItemID.String()),
		)
	}

	logger.Info("reconcile completed",
		slog.Bool("repair", *repair),
		slog.Int("checked", res.Checked),
		slog.Int("drifting", len(res.Drift)),
		slog.Int("dangling", len(res.Dangling)),
		slog.Int("repaired", len(res.Repaired)),
		slog.Int("skipped", len(res.Skipped)),
	)
}
