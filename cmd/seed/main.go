package main

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dulces-storefront/internal/config"
	"dulces-storefront/internal/domain"
	"dulces-storefront/internal/storage"
)

// Seeds a demo identity into local storage for manual testing.
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

	user := domain.User{
		Email: "demo@dulcesmarce.cl",
		Name:  "Marcela Demo",
		Phone: "+56 9 1234 5678",
		Addresses: []domain.Address{
			{
				ID:      uuid.NewString(),
				Title:   "Casa",
				Region:  "Metropolitana",
				Commune: "Santiago",
				Address: "Av. Siempre Viva 742",
			},
			{
				ID:      uuid.NewString(),
				Title:   "Oficina",
				Region:  "Metropolitana",
				Commune: "Providencia",
				Address: "Av. Providencia 1234, Of 505",
			},
		},
	}

	raw, err := json.Marshal(user)
	if err != nil {
		sugar.Fatalw("encode demo user", "error", err)
	}
	if err := store.Put(context.Background(), "user", raw); err != nil {
		sugar.Fatalw("seed demo user", "error", err)
	}

	sugar.Infow("seed applied", "email", user.Email, "path", cfg.StoragePath)
}
