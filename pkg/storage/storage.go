package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/urea-quest/pkg/game"
)

// Storage persists game snapshots by save slot.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Snapshot operations. Loading a slot that was never saved returns
	// (nil, nil).
	SaveSnapshot(ctx context.Context, id uuid.UUID, snap *game.Snapshot) error
	LoadSnapshot(ctx context.Context, id uuid.UUID) (*game.Snapshot, error)
	DeleteSnapshot(ctx context.Context, id uuid.UUID) error
}

// Every store can feed a session restore.
var _ game.SnapshotLoader = (Storage)(nil)
