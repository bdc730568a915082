package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songsite/internal/shared"
	"github.com/desertthunder/songsite/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal catalog browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, closer, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer closer.Close()
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	store := r.catalogStore()
	if err := store.Rebuild(); err != nil {
		return err
	}

	model := ui.NewModel(ctx, store, r.resolver(ctx))
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
