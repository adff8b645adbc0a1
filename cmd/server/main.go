// Command server runs the field-service admin backend: the derived-view
// HTTP API over the configured entity store, plus the optional kafka
// mutation listener. It stops gracefully on SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/fieldservice-backend/internal/app"
)

func main() {
	// A missing .env is fine; configuration may come from the environment alone.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
