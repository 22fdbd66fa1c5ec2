package game

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/urea-quest/pkg/narrative"
	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

// SnapshotVersion is written into every snapshot. Snapshots of another
// version are rejected, not migrated.
const SnapshotVersion = 1

var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// Snapshot is the plain-data form of a session, as saved to a slot.
type Snapshot struct {
	Version     int             `json:"version"`
	ID          uuid.UUID       `json:"id"`
	SavedAt     time.Time       `json:"saved_at"`
	Inventory   map[string]int  `json:"inventory"`
	ActiveQuest *quest.Active   `json:"active_quest,omitempty"`
	Flags       map[string]bool `json:"flags,omitempty"`
	World       WorldState      `json:"world"`
}

// WorldState is the part of the world that changes during play.
type WorldState struct {
	Player    world.Vec3        `json:"player"`
	Area      string            `json:"area"`
	BarrierUp bool              `json:"barrier_up"`
	Items     []world.Placement `json:"items,omitempty"`
}

// SnapshotLoader reads a saved snapshot by slot id. A missing slot is
// (nil, nil).
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, id uuid.UUID) (*Snapshot, error)
}

// Snapshot captures the session for saving.
func (s *Session) Snapshot() *Snapshot {
	pos, area := s.World.Player()
	return &Snapshot{
		Version:     SnapshotVersion,
		ID:          s.ID,
		SavedAt:     time.Now().UTC(),
		Inventory:   s.Inventory.Items(),
		ActiveQuest: s.Quests.Active(),
		Flags:       maps.Clone(s.flags),
		World: WorldState{
			Player:    pos,
			Area:      area,
			BarrierUp: s.World.BarrierUp(),
			Items:     s.World.Resources(),
		},
	}
}

// Restore replaces the session state with snap. Nothing is changed when
// snap is rejected.
func (s *Session) Restore(snap *Snapshot) error {
	if snap == nil {
		return errors.New("nil snapshot")
	}
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
	}
	if err := s.Quests.Restore(snap.ActiveQuest); err != nil {
		return fmt.Errorf("failed to restore quest: %w", err)
	}
	if snap.Flags[FlagQuestCompleted] {
		s.Quests.MarkFinished()
	}

	if snap.ID != uuid.Nil {
		s.ID = snap.ID
	}
	s.Inventory.Restore(snap.Inventory)
	s.flags = maps.Clone(snap.Flags)
	if s.flags == nil {
		s.flags = make(map[string]bool)
	}
	s.World.Reset()
	s.World.RestoreResources(snap.World.Items)
	s.World.SetBarrier(snap.World.BarrierUp)
	s.World.PlacePlayer(snap.World.Player, snap.World.Area)

	s.Trivia.Abandon()
	s.dialogue, s.speaker, s.interacting = nil, nil, false
	s.out.Drain()
	s.logger.Info("Session restored", "session_id", s.ID, "saved_at", snap.SavedAt)
	return nil
}

// Reset returns the session to a fresh game, keeping its id.
func (s *Session) Reset() {
	_ = s.Quests.Restore(nil)
	s.Inventory.Restore(nil)
	clear(s.flags)
	s.World.Reset()
	s.Trivia.Abandon()
	s.dialogue, s.speaker, s.interacting = nil, nil, false
}

// LoadFrom restores the slot id through loader. A missing slot starts a
// fresh game. A corrupt or unreadable slot also starts a fresh game, tells
// the player, and returns the error for logging.
func (s *Session) LoadFrom(ctx context.Context, loader SnapshotLoader, id uuid.UUID) error {
	s.ID = id
	snap, err := loader.LoadSnapshot(ctx, id)
	if err == nil && snap == nil {
		s.logger.Info("No saved game, starting fresh", "session_id", id)
		s.Reset()
		return nil
	}
	if err == nil {
		err = s.Restore(snap)
	}
	if err != nil {
		s.logger.Warn("Failed to load saved game", "session_id", id, "error", err)
		s.Reset()
		s.ID = id
		s.out.Push(narrative.Feedback("Your saved game could not be loaded. Starting a new game."))
		return err
	}
	s.out.Push(narrative.Feedback("Welcome back! " + s.objectiveLine()))
	return nil
}

// Objective is the line shown for the current quest state.
func (s *Session) Objective() string {
	return s.objectiveLine()
}

func (s *Session) objectiveLine() string {
	if _, active := s.Quests.Current(); !active && s.Quests.Finished() {
		return "You've completed the urea cycle."
	}
	return "Current objective: " + s.Quests.Objective()
}
