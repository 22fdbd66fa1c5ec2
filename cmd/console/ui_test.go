package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/urea-quest/internal/autosave"
	"github.com/jwebster45206/urea-quest/internal/config"
	"github.com/jwebster45206/urea-quest/pkg/game"
	"github.com/jwebster45206/urea-quest/pkg/quest"
	"github.com/jwebster45206/urea-quest/pkg/storage"
	"github.com/jwebster45206/urea-quest/pkg/trivia"
	"github.com/jwebster45206/urea-quest/pkg/world"
)

func newTestUI(t *testing.T) (ConsoleUI, *storage.MockStorage, uuid.UUID) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{FeedbackDuration: time.Second, InteractRadius: 3}
	store := storage.NewMockStorage()
	slot := uuid.New()

	session := game.New(quest.MustDefault(), log)
	require.NoError(t, session.LoadFrom(context.Background(), store, slot))
	saver := autosave.New(store, slot, time.Minute, log)

	ui := NewConsoleUI(cfg, session, saver, log)
	next, _ := ui.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(ConsoleUI), store, slot
}

func press(t *testing.T, m ConsoleUI, keys ...string) ConsoleUI {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		m = next.(ConsoleUI)
	}
	return m
}

func TestConsoleUI_AcceptQuest(t *testing.T) {
	m, _, _ := newTestUI(t)
	m.session.World.PlacePlayer(world.Vec3{X: 0.5}, world.AreaMitochondria)

	m = press(t, m, "e")
	dlg, open := m.session.Dialogue()
	require.True(t, open)
	assert.Equal(t, "Professor Hepa", dlg.Speaker)
	assert.Contains(t, m.View(), "1. Accept quest")

	m = press(t, m, "1")
	st, active := m.session.Quests.Current()
	require.True(t, active)
	assert.Equal(t, quest.GatherWater, st)
	assert.NotEmpty(t, m.history)
}

func TestConsoleUI_MovementBlockedByDialogue(t *testing.T) {
	m, _, _ := newTestUI(t)
	m.session.World.PlacePlayer(world.Vec3{X: 0.5}, world.AreaMitochondria)

	m = press(t, m, "d")
	pos, _ := m.session.World.Player()
	assert.Equal(t, 1.5, pos.X)

	m = press(t, m, "a", "e", "d")
	pos, _ = m.session.World.Player()
	assert.Equal(t, 0.5, pos.X, "dialogue freezes movement")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ConsoleUI)
	assert.False(t, m.session.Interacting())
	m = press(t, m, "w")
	pos, _ = m.session.World.Player()
	assert.Equal(t, -1.0, pos.Z)
}

func TestConsoleUI_InventoryCommandIsLogged(t *testing.T) {
	m, _, _ := newTestUI(t)
	before := len(m.history)

	m = press(t, m, "i")
	require.Len(t, m.history, before+1)
	assert.Equal(t, "Your inventory is empty.", m.history[len(m.history)-1].Text)
	assert.Equal(t, "Your inventory is empty.", m.toast)
}

func TestConsoleUI_TickAutosaves(t *testing.T) {
	m, store, slot := newTestUI(t)
	m.session.World.PlacePlayer(world.Vec3{X: 0.5}, world.AreaMitochondria)
	m = press(t, m, "e", "1")

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(ConsoleUI)
	assert.NotNil(t, cmd, "ticks keep running")

	snap, err := store.LoadSnapshot(context.Background(), slot)
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.NotNil(t, snap.ActiveQuest)
	assert.Equal(t, quest.GatherWater, snap.ActiveQuest.State)
	assert.Equal(t, "Game saved.", m.toast)
}

func TestConsoleUI_StaleCooldownIsIgnored(t *testing.T) {
	m, _, _ := newTestUI(t)
	def := m.session.Definition()
	require.NoError(t, m.session.Quests.Restore(&quest.Active{DefinitionID: def.ID, State: quest.RiverChallenge}))
	vera, _ := m.session.World.Get(world.NPCVera)
	m.session.Interact(vera)
	require.True(t, m.session.Choose(0).StartTrivia)

	key := func(i int) tea.KeyMsg {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{rune('1' + i)}}
	}
	update := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(ConsoleUI)
		return cmd
	}

	require.NotNil(t, update(key(def.Trivia[0].Correct)), "a correct answer schedules the continue")
	first := continueTriviaMsg{index: m.session.Trivia.Index()}

	update(tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, trivia.PhaseAsking, m.session.Trivia.Phase())
	require.NotNil(t, update(key(def.Trivia[1].Correct)))
	require.Equal(t, trivia.PhaseCooldown, m.session.Trivia.Phase())

	update(first)
	assert.Equal(t, trivia.PhaseCooldown, m.session.Trivia.Phase(), "the earlier timer must not end this cooldown")

	update(continueTriviaMsg{index: m.session.Trivia.Index()})
	assert.Equal(t, trivia.PhaseAsking, m.session.Trivia.Phase())
}

func TestConsoleUI_QuitModal(t *testing.T) {
	m, _, _ := newTestUI(t)

	m = press(t, m, "q")
	require.True(t, m.showQuitModal)
	assert.Contains(t, m.View(), "Quit Game?")

	m = press(t, m, "n")
	assert.False(t, m.showQuitModal)

	m = press(t, m, "q")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPickSlot(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMockStorage()

	assert.Equal(t, defaultSlot, pickSlot(ctx, &config.Config{}, store))

	slot := uuid.New()
	assert.Equal(t, slot, pickSlot(ctx, &config.Config{SaveSlot: slot.String()}, store))
}
