package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/stratos/internal/shared"
	"github.com/desertthunder/stratos/internal/ui"
	"github.com/urfave/cli/v3"
)

// Replay loads the configured default match and opens the interactive replay.
//
// Loading happens before the terminal is taken over so a match without tracking data fails with
// a plain error and no UI.
func (r *Runner) Replay(ctx context.Context, cmd *cli.Command) error {
	replay, err := r.load(ctx, r.query(0))
	if err != nil {
		return err
	}

	if err := r.redirectLogs(); err != nil {
		return err
	}
	return r.runProgram(ui.NewReplayModel(replay, ui.OptionsFromConfig(r.config), r.logger))
}

// ReplayMatch opens the interactive replay and loads the match inside it, showing progress.
func (r *Runner) ReplayMatch(ctx context.Context, cmd *cli.Command) error {
	model, err := r.matchModel(ctx, int(cmd.Int("match-id")))
	if err != nil {
		return err
	}
	return r.runProgram(model)
}

// matchModel builds a model that loads matchID once started. Logs are redirected before the
// loader exists; it logs from inside the running program.
func (r *Runner) matchModel(ctx context.Context, matchID int) (*ui.Model, error) {
	if err := r.redirectLogs(); err != nil {
		return nil, err
	}
	loader, err := r.loader()
	if err != nil {
		return nil, err
	}
	return ui.NewModel(ctx, loader, r.query(matchID), ui.OptionsFromConfig(r.config), r.logger), nil
}

// redirectLogs sends logs to the configured file so they do not interfere with TUI rendering.
func (r *Runner) redirectLogs() error {
	fileLogger, f, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)
	r.logFile = f
	return nil
}

func (r *Runner) runProgram(model *ui.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return model.Err()
}
