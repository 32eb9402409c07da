package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/harsh-gohil-129/inventory-management-app/internal/cache"
	"github.com/harsh-gohil-129/inventory-management-app/internal/config"
	"github.com/harsh-gohil-129/inventory-management-app/internal/core"
	"github.com/harsh-gohil-129/inventory-management-app/internal/images"
	"github.com/harsh-gohil-129/inventory-management-app/internal/logging"
	"github.com/harsh-gohil-129/inventory-management-app/internal/store"
	"github.com/harsh-gohil-129/inventory-management-app/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"cache_enabled", cfg.Cache.RedisAddr != "",
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Parse and configure connection pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	// Connect to database
	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		dbName := strings.TrimPrefix(u.Path, "/")
		slog.Info("connected to database", "name", dbName)
	} else {
		slog.Info("connected to database")
	}

	db := store.New(pool)

	// Ensure the product and stock-history tables exist
	if err := db.Bootstrap(ctx); err != nil {
		slog.Error("failed to bootstrap schema", "error", err)
		os.Exit(1)
	}
	slog.Info("schema ready")

	// Optional Redis product-list cache; the service runs fine without it
	var listCache core.ListCache
	if cfg.Cache.RedisAddr != "" {
		productCache := cache.New(cfg.Cache.RedisAddr, cfg.Cache.TTL)
		if err := productCache.Ping(ctx); err != nil {
			slog.Warn("redis unreachable, continuing without cache",
				"addr", cfg.Cache.RedisAddr, "error", err)
		} else {
			slog.Info("product cache connected", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
			listCache = productCache
			defer productCache.Close()
		}
	}

	uploader, err := images.NewLocalUploader(cfg.Uploads.Dir, "/static/uploads")
	if err != nil {
		slog.Error("failed to prepare uploads directory", "error", err, "dir", cfg.Uploads.Dir)
		os.Exit(1)
	}

	service := core.NewService(db, listCache)

	// Create server with config
	server := web.NewServer(service, uploader, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
