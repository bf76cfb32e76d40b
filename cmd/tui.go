package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/evloca/internal/formatter"
	"github.com/desertthunder/evloca/internal/shared"
	"github.com/desertthunder/evloca/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive client at --path.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Logs go to a file so they don't interfere with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.UI.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	renderer, err := formatter.NewRenderer(r.config.UI.Theme, 80)
	if err != nil {
		return err
	}

	loading := &ui.Loading{}
	r.client.SetLoading(loading)

	model := ui.NewModel(ctx, ui.Options{
		Client:        r.client,
		Session:       r.session,
		Loading:       loading,
		Renderer:      renderer,
		Logger:        fileLogger,
		ToastDuration: r.config.UI.ToastDuration(),
		Initial:       cmd.String("path"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
