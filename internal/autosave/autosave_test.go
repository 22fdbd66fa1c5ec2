package autosave

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

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

type failingStore struct{}

func (failingStore) SaveSnapshot(context.Context, uuid.UUID, *game.Snapshot) error {
	return errors.New("disk full")
}

func TestSaver_Due(t *testing.T) {
	s := New(storage.NewMockStorage(), uuid.New(), time.Minute, testLogger())
	now := time.Now()
	assert.True(t, s.Due(now), "never saved")

	_, err := s.Save(context.Background(), game.New(quest.MustDefault(), nil).Snapshot())
	require.NoError(t, err)
	assert.False(t, s.Due(time.Now().Add(30*time.Second)))
	assert.True(t, s.Due(time.Now().Add(2*time.Minute)))
}

func TestSaver_SkipsUnchangedSnapshots(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()
	sess := game.New(quest.MustDefault(), nil)
	s := New(store, sess.ID, 0, testLogger())
	assert.Equal(t, DefaultInterval, s.Interval())

	saved, err := s.Save(ctx, sess.Snapshot())
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = s.Save(ctx, sess.Snapshot())
	require.NoError(t, err)
	assert.False(t, saved, "only the save time differs")

	hepa, _ := sess.World.Get(world.NPCHepa)
	sess.Interact(hepa)
	sess.Choose(0)
	saved, err = s.Save(ctx, sess.Snapshot())
	require.NoError(t, err)
	assert.True(t, saved)

	loaded, err := store.LoadSnapshot(ctx, sess.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.ActiveQuest)
	assert.Equal(t, quest.GatherWater, loaded.ActiveQuest.State)
}

func TestSaver_StoreError(t *testing.T) {
	s := New(failingStore{}, uuid.New(), time.Minute, testLogger())
	saved, err := s.Save(context.Background(), game.New(quest.MustDefault(), nil).Snapshot())
	assert.Error(t, err)
	assert.False(t, saved)
	assert.True(t, s.Due(time.Now()), "a failed save is retried")

	_, err = s.Save(context.Background(), nil)
	assert.Error(t, err)
}
