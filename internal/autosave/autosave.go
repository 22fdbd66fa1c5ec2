// Package autosave writes the session to its save slot at a fixed
// interval from the console's update loop.
package autosave

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/urea-quest/pkg/game"
	"github.com/jwebster45206/urea-quest/pkg/storage"
)

const (
	DefaultInterval = 30 * time.Second
	saveTimeout     = 5 * time.Second
)

// SnapshotSaver is the part of storage.Storage the saver needs.
type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, id uuid.UUID, snap *game.Snapshot) error
}

// Saver skips writes when nothing changed since the last save.
type Saver struct {
	store    SnapshotSaver
	slot     uuid.UUID
	interval time.Duration
	last     time.Time
	digest   []byte
	log      *slog.Logger
}

func New(store SnapshotSaver, slot uuid.UUID, interval time.Duration, log *slog.Logger) *Saver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Saver{store: store, slot: slot, interval: interval, log: log}
}

func (s *Saver) Interval() time.Duration {
	return s.interval
}

// Due reports whether the interval has passed since the last save.
func (s *Saver) Due(now time.Time) bool {
	return s.last.IsZero() || now.Sub(s.last) >= s.interval
}

// Save writes snap unless it matches the last saved snapshot. It reports
// whether a write happened.
func (s *Saver) Save(ctx context.Context, snap *game.Snapshot) (bool, error) {
	digest, err := digestOf(snap)
	if err != nil {
		return false, err
	}
	now := time.Now()
	if bytes.Equal(digest, s.digest) {
		s.last = now
		s.log.Debug("Autosave skipped, nothing changed", "slot", s.slot)
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	if err := s.store.SaveSnapshot(ctx, s.slot, snap); err != nil {
		return false, fmt.Errorf("autosave failed: %w", err)
	}
	s.last = now
	s.digest = digest
	s.log.Info("Game saved", "slot", s.slot)
	return true, nil
}

// digestOf hashes everything but the save time.
func digestOf(snap *game.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}
	c := *snap
	c.SavedAt = time.Time{}
	data, err := storage.EncodeSnapshot(&c)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	return sum[:], nil
}
