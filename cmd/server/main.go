// Package main implements the ticklist server, which owns the
// authoritative todo list and serves it over HTTP.
//
// The server is the system of record in the ticklist setup:
//   - Holds the list in a thread-safe in-memory store
//   - Assigns every todo its permanent id
//   - Applies bulk operations atomically
//   - Maps store errors onto the HTTP error contract
//
// Configuration is layered: built-in defaults, then an optional YAML
// file named by TICKLIST_CONFIG, then TICKLIST_* environment variables.
// The keys that matter here:
//   - TICKLIST_CONFIG: Path to a config file (optional)
//   - TICKLIST_LISTEN: Listen address (default ":8080")
//   - TICKLIST_SHUTDOWN_TIMEOUT: Graceful shutdown budget (default 10s)
//   - TICKLIST_SEED_FILE: JSON file of todos loaded at startup (optional)
//
// Example usage:
//
//	# Start the server
//	TICKLIST_LISTEN=:8080 ./server
//
//	# Add a todo
//	curl -X POST localhost:8080/todos -d '{"title":"buy milk"}'
//
//	# Toggle everything
//	curl -X POST localhost:8080/todos/toggle_all -d '{"completed":true}'
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dreamware/ticklist/internal/api"
	"github.com/dreamware/ticklist/internal/config"
	"github.com/dreamware/ticklist/internal/storage"
	"github.com/dreamware/ticklist/internal/todo"
)

// logFatal is a variable to allow mocking log.Fatal in tests.
// This indirection enables test code to intercept fatal errors
// without actually terminating the test process.
var logFatal = log.Fatalf

func main() {
	cfg, err := config.Load(getenv("TICKLIST_CONFIG", ""))
	if err != nil {
		logFatal("config: %v", err)
	}

	store := storage.NewMemoryList()
	if cfg.Server.SeedFile != "" {
		n, err := seed(store, cfg.Server.SeedFile)
		if err != nil {
			logFatal("seed: %v", err)
		}
		log.Printf("seeded %d todos from %s", n, cfg.Server.SeedFile)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           api.NewServer(store).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("ticklist server listening on %s", cfg.Server.Listen)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logFatal("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	log.Println("ticklist server stopped")
}

// seed loads todos from a JSON array of items. Ids in the file are
// ignored: the store assigns its own, so seeded and live todos share
// one id space.
func seed(store storage.ListStore, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var items []todo.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	for _, it := range items {
		created, err := store.Create(it.Title)
		if err != nil {
			return 0, fmt.Errorf("seed %q: %w", it.Title, err)
		}
		if it.Completed {
			if _, err := store.Toggle(created.ID); err != nil {
				return 0, err
			}
		}
	}
	return len(items), nil
}

// getenv returns the environment value for k, or def when unset
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
