package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/edtag/internal/adapter"
	"github.com/mmcdole/edtag/internal/annotate"
	"github.com/mmcdole/edtag/internal/tui"
)

// runAnnotate starts an interactive annotation session
func runAnnotate(ctx context.Context, opts *rootOptions) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("annotation needs an interactive terminal")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// Check if configured
	if !cfg.IsConfigured() {
		if err := runSetupForm(cfg); err != nil {
			return err
		}
	}

	s, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	viewer := adapter.NewViewer(cfg.Viewer, s.logger)
	machine := annotate.NewMachine(ctx, s.nav, viewer, cfg.Viewer.URLTemplate, s.logger)
	machine.Start(ctx, cfg.Annotate.ResumeLastEntered)

	annotated, total := s.nav.Progress()
	s.logger.Info("starting TUI", "images", total, "annotated", annotated, "index", s.nav.Index())

	p := tea.NewProgram(
		tui.NewModel(ctx, machine, s.logger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		s.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
