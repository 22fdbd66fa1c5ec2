package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/urea-quest/internal/config"
	istorage "github.com/jwebster45206/urea-quest/internal/storage"
	"github.com/jwebster45206/urea-quest/pkg/storage"
)

const (
	redisRetries    = 5
	redisRetryDelay = 2 * time.Second
)

// defaultSlot is used when SAVE_SLOT is unset and no earlier save exists.
var defaultSlot = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urea-quest/default-slot"))

// openStore builds the configured save backend.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Warn("Using in-memory storage, progress is lost on exit")
		return storage.NewMockStorage(), nil

	case config.BackendRedis:
		store, err := istorage.NewRedisStorage(cfg.RedisURL, log)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForConnection(ctx, redisRetries, redisRetryDelay); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis unavailable: %w", err)
		}
		return store, nil

	case config.BackendSQLite:
		return istorage.OpenSQLite(cfg.SQLitePath, log)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// slotLister is implemented by backends that can enumerate their saves.
type slotLister interface {
	Slots(ctx context.Context) ([]uuid.UUID, error)
}

// pickSlot returns the configured slot, else the most recently saved
// one, else the default slot.
func pickSlot(ctx context.Context, cfg *config.Config, store storage.Storage) uuid.UUID {
	if slot := cfg.Slot(); slot != uuid.Nil {
		return slot
	}
	if lister, ok := store.(slotLister); ok {
		if slots, err := lister.Slots(ctx); err == nil && len(slots) > 0 {
			return slots[0]
		}
	}
	return defaultSlot
}
