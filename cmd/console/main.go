package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/urea-quest/internal/autosave"
	"github.com/jwebster45206/urea-quest/internal/config"
	"github.com/jwebster45206/urea-quest/internal/logger"
	"github.com/jwebster45206/urea-quest/pkg/game"
	"github.com/jwebster45206/urea-quest/pkg/quest"
)

const shutdownSaveTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logFile.Close() // Ignore error in defer
	}()
	log := logger.Setup(cfg, logFile)

	def, err := loadDefinition(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load quest: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open %s storage: %v\n", cfg.StorageBackend, err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	slot := pickSlot(ctx, cfg, store)
	log = logger.WithSlot(log, slot)

	session := game.New(def, log)
	session.World.SetInteractRadius(cfg.InteractRadius)
	if err := session.LoadFrom(ctx, store, slot); err != nil {
		logger.WithError(log, err).Error("Saved game could not be loaded")
	}

	saver := autosave.New(store, slot, cfg.AutosaveInterval, log)
	ui := NewConsoleUI(cfg, session, saver, log)

	p := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	saveCtx, cancel := context.WithTimeout(ctx, shutdownSaveTimeout)
	defer cancel()
	if _, err := saver.Save(saveCtx, session.Snapshot()); err != nil {
		logger.WithError(log, err).Error("Final save failed")
		fmt.Fprintf(os.Stderr, "Failed to save your game: %v\n", err)
	}
}

func loadDefinition(cfg *config.Config) (*quest.Definition, error) {
	if cfg.QuestFile == "" {
		return quest.Default()
	}
	slog.Info("Loading quest file", "path", cfg.QuestFile)
	return quest.LoadFile(cfg.QuestFile, true)
}
