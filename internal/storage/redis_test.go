package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/urea-quest/pkg/game"
	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/storage"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	store, err := NewRedisStorage("redis://"+mr.Addr(), testLogger())
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis storage: %v", err)
	}
	return store, mr
}

// progressedSession starts the quest and draws water.
func progressedSession(t *testing.T) *game.Session {
	t.Helper()
	s := game.New(quest.MustDefault(), nil)
	hepa, _ := s.World.Get(world.NPCHepa)
	s.Interact(hepa)
	s.Choose(0)
	well, _ := s.World.Get("well")
	s.Interact(well)
	return s
}

func TestRedisStorage_SaveLoadDelete(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	s := progressedSession(t)
	require.NoError(t, store.SaveSnapshot(ctx, s.ID, s.Snapshot()))

	key := "savegame:" + s.ID.String()
	assert.True(t, mr.Exists(key))
	assert.Zero(t, mr.TTL(key), "saves never expire")

	loaded, err := store.LoadSnapshot(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, s.Inventory.Items(), loaded.Inventory)
	assert.Equal(t, quest.CollectCO2, loaded.ActiveQuest.State)

	restored := game.New(quest.MustDefault(), nil)
	require.NoError(t, restored.LoadFrom(ctx, store, s.ID))
	assert.Equal(t, 1, restored.Inventory.Count(world.ItemWater))

	require.NoError(t, store.DeleteSnapshot(ctx, s.ID))
	assert.False(t, mr.Exists(key))
}

func TestRedisStorage_MissingSlot(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()

	loaded, err := store.LoadSnapshot(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_CorruptSlot(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()

	id := uuid.New()
	require.NoError(t, mr.Set("savegame:"+id.String(), `{"version":"one"}`))

	_, err := store.LoadSnapshot(context.Background(), id)
	assert.ErrorIs(t, err, storage.ErrInvalidSnapshot)
}

func TestRedisStorage_WaitForConnection(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.WaitForConnection(ctx, 3, 10*time.Millisecond))

	mr.Close()
	assert.Error(t, store.WaitForConnection(ctx, 2, 10*time.Millisecond))
}

func TestNewRedisStorage_BadURL(t *testing.T) {
	_, err := NewRedisStorage("not a url", testLogger())
	assert.Error(t, err)
}
