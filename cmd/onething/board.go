package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"onething/cmd/onething/ui"
	"onething/internal/config"
	"onething/internal/logging"
	"onething/internal/tasks"
	"onething/internal/translator"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// newStore builds the in-memory board, seeded with the samples if asked.
func newStore(seed bool, now time.Time) (*tasks.Store, error) {
	store := tasks.NewStore(tasks.WithLogger(logging.Get(logging.CategoryStore)))
	if seed {
		if err := tasks.SeedSamples(store, now); err != nil {
			return nil, fmt.Errorf("failed to seed samples: %w", err)
		}
	}
	return store, nil
}

// runBoard opens the interactive board.
func runBoard(cmd *cobra.Command, args []string) error {
	store, err := newStore(cfg.Board.SeedSamples, time.Now())
	if err != nil {
		return err
	}
	tr, err := translator.New(cfg.UI.Language, logging.Get(logging.CategoryUI))
	if err != nil {
		return err
	}

	model := ui.New(ui.Options{
		Store:      store,
		Translator: tr,
		Theme:      ui.ThemeByName(cfg.UI.Theme),
		WordWrap:   cfg.UI.WordWrap,
		ShowHelp:   cfg.UI.ShowHelp,
		Logger:     logging.Get(logging.CategoryUI),
		DragLogger: logging.Get(logging.CategoryDrag),
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(gctx))

	watcher, err := config.NewWatcher(configPath, func(c *config.Config) {
		p.Send(ui.ConfigReloadedMsg{Config: c})
	}, logging.Get(logging.CategoryConfig))
	if err != nil {
		return err
	}
	if err := watcher.Start(gctx); err != nil {
		// The board works without live reload.
		logger.Warn("config reload disabled", zap.Error(err))
	}

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		watcher.Stop()
		return nil
	})

	logger.Info("board opened", zap.Int("tasks", store.Len()))
	if err := g.Wait(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	logger.Info("board closed")
	return nil
}
