// Package main is the entry point for the Stockroom server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stockroom/internal/barcode"
	"stockroom/internal/cache"
	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/handlers"
	"stockroom/internal/middleware"
	"stockroom/internal/pin"
	"stockroom/internal/procedures"
	"stockroom/internal/render"
	"stockroom/internal/router"
	"stockroom/internal/session"
	"stockroom/internal/storage"
	"stockroom/internal/store"
	"stockroom/web"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db, cfg.DevOwnerPIN); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	categoryStore := store.NewCategoryStore(db)
	itemStore := store.NewItemStore(db)
	stockLogStore := store.NewStockLogStore(db)
	staffStore := store.NewStaffStore(db)
	ownerPINStore := store.NewOwnerPINStore(db)
	pdfStore := store.NewPdfStore(db)

	procClient := procedures.NewClient(db)
	verifier := pin.NewVerifier(ownerPINStore)
	categories := cache.NewCategoryCache(valkeyClient, categoryStore, cache.DefaultCategoryTTL)
	resolver := barcode.NewResolver(procClient)

	// Object storage is optional; without it the document library is
	// read-only.
	var objects handlers.ObjectStore
	if cfg.HasStorage() {
		storageClient, err := storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		objects = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 storage not configured, document uploads disabled")
	}

	pages := handlers.NewPages(renderer, categories, categoryStore, itemStore, resolver, sessionStore, pdfStore, objects != nil)
	modals := handlers.NewModals(renderer, procClient, staffStore, itemStore, categories, stockLogStore, verifier)
	api := handlers.NewAPI(pdfStore, objects, verifier, staffStore)

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		slog.Error("failed to open static assets", "error", err)
		os.Exit(1)
	}

	// JSON routes carry the owner PIN, so they are throttled per IP.
	limiter := middleware.NewRateLimiter(30, time.Minute)
	defer limiter.Stop()

	r := router.New(sessionStore, pages, modals, api, limiter, static, secureCookies)

	// WriteTimeout covers PDF uploads of up to 25 MB.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
