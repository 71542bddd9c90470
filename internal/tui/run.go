package tui

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/elevateui/internal/alert"
	"github.com/jmylchreest/elevateui/internal/config"
)

// RunOptions configures the TUI.
type RunOptions struct {
	Config     *config.Config
	Manager    *alert.Manager
	ConfigPath string // Path to watch for changes (empty = no watching)
	Logger     *slog.Logger
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
// While it runs, changes to ConfigPath are applied to the manager.
func Run(ctx context.Context, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mgr := opts.Manager
	if mgr == nil {
		mgr = alert.NewManager(alert.WithLogger(logger))
	}
	if opts.Config != nil {
		mgr.SetSettings(opts.Config.AlertSettings())
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(opts.Config, mgr)
	defer mgr.Unsubscribe(m.events)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)

	if opts.ConfigPath != "" {
		wait := m.cfg.Debounce.Wait.Duration()
		w := config.NewWatcher(opts.ConfigPath, wait, func(cfg *config.Config) {
			p.Send(ConfigReloadedMsg{Config: cfg})
		}, logger)

		g.Go(func() error {
			// A watcher failure leaves the TUI running without reloads.
			if err := w.Run(gctx); err != nil {
				logger.Warn("config watcher stopped", "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	return g.Wait()
}
