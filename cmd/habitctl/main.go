package main

import (
	"context"
	"log"
	"os"

	"github.com/comitanigiacomo/kanso-history/internal/adapters/color"
	"github.com/comitanigiacomo/kanso-history/internal/bootstrap"
	"github.com/comitanigiacomo/kanso-history/internal/config"
	"github.com/comitanigiacomo/kanso-history/internal/core/services"
)

// openConfiguredStore opens the history of userID on the backend the
// environment selects, the same one the API server uses.
func openConfiguredStore(ctx context.Context, userID string) (*services.HistoryStore, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	backend, err := bootstrap.OpenBackend(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	store := services.NewHistoryStore(backend.StorageFor(userID), color.NewRandomAssigner())
	store.LoadHistory(ctx)
	return store, backend.Close, nil
}

func main() {
	c := newCLI(openConfiguredStore)
	err := c.rootCmd().Execute()
	if cerr := c.Close(); cerr != nil {
		log.Printf("[STORAGE] Close failed: %v", cerr)
	}
	if err != nil {
		os.Exit(1)
	}
}
