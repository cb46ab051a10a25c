package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/anirbanjana883/question-traker/config"
	"github.com/anirbanjana883/question-traker/handlers"
	"github.com/anirbanjana883/question-traker/middleware"
	"github.com/anirbanjana883/question-traker/seed"
	"github.com/anirbanjana883/question-traker/store"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	env := config.Load()
	slog.SetDefault(newLogger(env))

	if err := env.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	gateway, closeGateway, err := openGateway(ctx, env)
	if err != nil {
		slog.Error("failed to open persistence", "driver", env.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeGateway()

	var seeder store.Seeder
	if env.SeedFile != "" {
		seeder = seed.FileSeeder{Path: env.SeedFile}
	}

	sheetStore, err := store.New(ctx, gateway, seeder)
	if err != nil {
		slog.Error("failed to initialise sheet store", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         env.Addr(),
		Handler:      newHandler(&handlers.SheetHandler{Store: sheetStore}, env.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "driver", env.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newMux creates the HTTP router.
func newMux(h *handlers.SheetHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handlers.Healthz)
	h.Register(mux)
	return mux
}

func newHandler(h *handlers.SheetHandler, origins []string) http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Requested-With", "X-Request-ID", "Accept", "Origin"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(newMux(h))

	return middleware.RequestLogger(middleware.Recover(corsHandler))
}

// openGateway builds the persistence backend named by SHEET_STORE_DRIVER.
// The returned func releases its connections.
func openGateway(ctx context.Context, env config.Environment) (store.Gateway, func(), error) {
	switch env.StoreDriver {
	case config.DriverFile:
		return store.NewFileGateway(env.DataFile), func() {}, nil
	case config.DriverSQLite, config.DriverPostgres:
		db, err := config.OpenDatabase(env.StoreDriver, env.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return store.NewGormGateway(db), closeDB, nil
	case config.DriverRedis:
		gw, err := store.NewRedisGateway(ctx, env.RedisURL, env.RedisKey)
		if err != nil {
			return nil, nil, err
		}
		return gw, func() { _ = gw.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown driver %q", env.StoreDriver)
}

func newLogger(env config.Environment) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(env.LogLevel)}
	if strings.EqualFold(env.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
