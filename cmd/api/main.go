package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dulces-storefront/internal/catalog"
	"dulces-storefront/internal/config"
	"dulces-storefront/internal/httpserver"
	authsvc "dulces-storefront/internal/service/auth"
	cartsvc "dulces-storefront/internal/service/cart"
	checkoutsvc "dulces-storefront/internal/service/checkout"
	"dulces-storefront/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err)
	}

	store, err := storage.OpenSQLite(cfg.StoragePath)
	if err != nil {
		sugar.Fatalw("open storage", "error", err, "path", cfg.StoragePath)
	}
	defer store.Close()

	cat := catalog.New()
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
		if err != nil {
			sugar.Fatalw("load catalog", "error", err, "path", cfg.CatalogPath)
		}
	}

	ctx := context.Background()
	auth := authsvc.New(ctx, store, sugar)
	cart := cartsvc.New(ctx, store, sugar)
	flow := checkoutsvc.New(ctx, cart, auth, store, sugar)

	srv, err := httpserver.New(cfg.HTTPAddr, sugar, httpserver.Deps{
		Catalog:  cat,
		Cart:     cart,
		Checkout: flow,
		Auth:     auth,
	}, cfg.AllowedOrigins)
	if err != nil {
		sugar.Fatalw("init server", "error", err)
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, runCtx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		sugar.Infow("starting storefront server", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
