package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/urea-quest/pkg/game"
	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/storage"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

func openTestSQLite(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "saves", "urea.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStorage_SaveLoadDelete(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))

	s := progressedSession(t)
	require.NoError(t, store.SaveSnapshot(ctx, s.ID, s.Snapshot()))

	// saving again overwrites the slot
	carbon, _ := s.World.Get("co2")
	s.Interact(carbon)
	require.NoError(t, store.SaveSnapshot(ctx, s.ID, s.Snapshot()))

	loaded, err := store.LoadSnapshot(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, quest.MakeBicarbonate, loaded.ActiveQuest.State)
	assert.Equal(t, map[string]int{world.ItemWater: 1, world.ItemCO2: 1}, loaded.Inventory)

	slots, err := store.Slots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{s.ID}, slots)

	require.NoError(t, store.DeleteSnapshot(ctx, s.ID))
	loaded, err = store.LoadSnapshot(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSQLiteStorage_CorruptSlotStartsFresh(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()

	id := uuid.New()
	_, err := store.db.ExecContext(ctx,
		`INSERT INTO snapshots (slot, data, saved_at) VALUES (?, ?, ?)`,
		id.String(), []byte(`not json`), "2026-01-01T00:00:00Z")
	require.NoError(t, err)

	_, err = store.LoadSnapshot(ctx, id)
	assert.ErrorIs(t, err, storage.ErrInvalidSnapshot)

	s := game.New(quest.MustDefault(), nil)
	assert.Error(t, s.LoadFrom(ctx, store, id))
	_, active := s.Quests.Current()
	assert.False(t, active)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("", testLogger())
	assert.Error(t, err)
}
