package main

import (
	"bufio"
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"todo-service/internal/cache"
	"todo-service/internal/config"
	"todo-service/internal/controller"
	"todo-service/internal/database"
	"todo-service/internal/events"
	"todo-service/internal/routes"
	"todo-service/internal/store"
	"todo-service/pkg/logger"
)

func main() {
	loadEnvFile(".env")

	ctx := context.Background()
	cfg := config.Get()

	st, err := buildStore(ctx)
	if err != nil {
		logger.Error(ctx, "Store initialization failed", "error", err)
		os.Exit(1)
	}

	// Pre-warm optional layers (no-ops unless configured)
	cache.Client(ctx)
	events.Producer(ctx)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Router(controller.New(st)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort, "backend", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown error", "error", err)
	}
	logger.Info(ctx, "Server stopped")
}

// buildStore constructs the configured backend. The rest of the service only
// ever sees the store.Store interface.
func buildStore(ctx context.Context) (store.Store, error) {
	cfg := config.Get()
	if cfg.StoreBackend == "memory" {
		logger.Info(ctx, "Using in-memory store")
		return store.NewMemory(), nil
	}
	db, driver, err := database.Open(ctx)
	if err != nil {
		return nil, err
	}
	if err := database.CreateSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return store.NewSQL(db, driver), nil
}

// loadEnvFile reads a .env file and sets env vars (only if not already set).
func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			val = strings.Trim(val, `"`)
		} else if strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
			val = strings.Trim(val, "'")
		}
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}
