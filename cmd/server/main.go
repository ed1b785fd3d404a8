/*
main.go - Reference backend entry point

PURPOSE:
  Initializes and starts the reference HR backend. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse environment config
  2. Initialize SQLite store, seed when requested
  3. Create API handler and auth layer
  4. Configure HTTP router
  5. Start server with graceful shutdown

ENVIRONMENT:
  PORT         HTTP server port (default: 8080)
  DB_PATH      SQLite database path (default: hrview.db, ":memory:" works)
  JWT_SECRET   Token signing secret (required outside dev)
  ADMIN_USER   Login username (default: hr.admin)
  ADMIN_PASS   Login password (default: hunter2, dev only)
  SEED         "true" resets and loads the sample dataset on boot
  LOG_LEVEL    logrus level (default: info)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Dev run with seeded in-memory database
  DB_PATH=":memory:" SEED=true ./server

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carelink/hrview/api"
	"github.com/carelink/hrview/store/sqlite"
)

type config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	DBPath    string `env:"DB_PATH" envDefault:"hrview.db"`
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	AdminUser string `env:"ADMIN_USER" envDefault:"hr.admin"`
	AdminPass string `env:"ADMIN_PASS" envDefault:"hunter2"`
	Seed      bool   `env:"SEED" envDefault:"false"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logrus.WithError(err).Fatal("failed to parse environment")
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	if cfg.Seed {
		if err := store.Reset(context.Background()); err != nil {
			log.WithError(err).Fatal("failed to reset database")
		}
		if err := api.Seed(context.Background(), store); err != nil {
			log.WithError(err).Fatal("failed to seed database")
		}
		log.Info("sample dataset loaded")
	}

	auth := api.NewAuth(cfg.JWTSecret, map[string]string{cfg.AdminUser: cfg.AdminPass})
	handler := api.NewHandler(store, log)
	router := api.NewRouter(handler, auth)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("addr", server.Addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}
