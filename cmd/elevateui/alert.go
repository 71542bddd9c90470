package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/elevateui/internal/adapter/output"
	"github.com/jmylchreest/elevateui/internal/alert"
	"github.com/jmylchreest/elevateui/internal/debounce"
	"github.com/jmylchreest/elevateui/internal/model"
)

var alertOpts struct {
	severity   string
	container  string
	duration   time.Duration
	persistent bool
	noWait     bool
	stdin      bool
	format     string
	template   string
}

var alertCmd = &cobra.Command{
	Use:   "alert [message...]",
	Short: "Show alerts and follow them until they are dismissed",
	Long: `Show an alert in a container and print the container.

Unless --no-wait is given, elevateui then stays until every timed alert has
expired, printing each removal as it happens. Persistent alerts never expire,
so a persistent alert returns immediately.

With --stdin, every non-empty input line becomes an alert. The container is
printed once input goes quiet for the configured debounce wait, so a burst of
lines produces one listing.

Examples:
  # Show a warning for two seconds
  elevateui alert --severity warning --duration 2s "Your session expires soon"

  # Render the container markup without waiting
  elevateui alert --no-wait --format html "Profile saved"

  # Stream alerts from another program
  tail -f events.log | elevateui alert --stdin --container sidebar`,
	RunE: runAlert,
}

func init() {
	rootCmd.AddCommand(alertCmd)

	alertCmd.Flags().StringVarP(&alertOpts.severity, "severity", "s", "",
		"Alert severity (info, success, warning, danger; default from config)")
	alertCmd.Flags().StringVar(&alertOpts.container, "container", "",
		"Container id (default from config)")
	alertCmd.Flags().DurationVarP(&alertOpts.duration, "duration", "d", 0,
		"Auto-dismiss after this long (default from config)")
	alertCmd.Flags().BoolVarP(&alertOpts.persistent, "persistent", "p", false,
		"Keep the alert until it is dismissed")
	alertCmd.Flags().BoolVar(&alertOpts.noWait, "no-wait", false,
		"Exit after printing instead of waiting for expiry")
	alertCmd.Flags().BoolVar(&alertOpts.stdin, "stdin", false,
		"Read one alert message per line from stdin")
	alertCmd.Flags().StringVarP(&alertOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml, html, ids)")
	alertCmd.Flags().StringVar(&alertOpts.template, "template", "",
		"Go template for each alert in plain format")
}

func runAlert(cmd *cobra.Command, args []string) error {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" && !alertOpts.stdin {
		return errors.New("a message is required (or use --stdin)")
	}

	showOpts, err := alertShowOptions(cmd)
	if err != nil {
		return err
	}

	c := getConfig()
	mgr := alert.NewManager(
		alert.WithLogger(logger),
		alert.WithSettings(c.AlertSettings()),
	)
	defer mgr.Close()

	fmtOpts := output.DefaultFormatterOptions()
	fmtOpts.Template = alertOpts.template
	formatter := output.NewFormatter(output.FormatType(alertOpts.format), fmtOpts)

	p := &alertPrinter{
		w:           cmd.OutOrStdout(),
		formatter:   formatter,
		formatEvent: eventFormatter(formatter, fmtOpts),
		mgr:         mgr,
	}

	if alertOpts.stdin {
		err = showFromReader(cmd.InOrStdin(), mgr, p, showOpts, c.Debounce.Wait.Duration())
	} else {
		var h *alert.Handle
		h, err = mgr.Show(message, showOpts...)
		if err == nil {
			p.markTouched(h.Alert().ContainerID)
			err = p.printContainers()
		}
	}
	if err != nil {
		return err
	}

	if alertOpts.noWait {
		return nil
	}

	events := mgr.Subscribe()
	if mgr.Expiring() == 0 {
		return nil
	}
	return p.follow(cmd.Context(), events)
}

// alertShowOptions converts flags that were explicitly set into Show
// options. Unset flags leave the configured defaults in place.
func alertShowOptions(cmd *cobra.Command) ([]alert.ShowOption, error) {
	var opts []alert.ShowOption

	if cmd.Flags().Changed("severity") {
		sev, err := model.ParseSeverity(alertOpts.severity)
		if err != nil {
			return nil, err
		}
		opts = append(opts, alert.WithSeverity(sev))
	}
	if alertOpts.container != "" {
		opts = append(opts, alert.InContainer(alertOpts.container))
	}

	switch {
	case alertOpts.persistent:
		opts = append(opts, alert.Persistent())
	case cmd.Flags().Changed("duration"):
		opts = append(opts, alert.For(alertOpts.duration))
	}
	return opts, nil
}

// showFromReader shows one alert per input line and prints the touched
// containers after each burst of input.
func showFromReader(r io.Reader, mgr *alert.Manager, p *alertPrinter, opts []alert.ShowOption, wait time.Duration) error {
	printer := debounce.New(func(struct{}) {
		if err := p.printContainers(); err != nil {
			logger.Warn("failed to print containers", "error", err)
		}
	}, wait)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h, err := mgr.Show(line, opts...)
		if err != nil {
			printer.Cancel()
			return err
		}
		p.markTouched(h.Alert().ContainerID)
		printer.Call(struct{}{})
	}

	// Print whatever the last burst left pending before following expiry.
	printer.Flush()
	return scanner.Err()
}

// eventFormatter returns a per-event writer for formats that have one.
func eventFormatter(f output.Formatter, opts output.FormatterOptions) func(io.Writer, alert.Event) error {
	switch ef := f.(type) {
	case *output.JSONFormatter:
		return ef.FormatEvent
	case *output.PlainFormatter:
		return ef.FormatEvent
	default:
		return output.NewPlainFormatter(opts).FormatEvent
	}
}

// alertPrinter serialises writes from the debounced printer and the event
// follower.
type alertPrinter struct {
	mu          sync.Mutex
	w           io.Writer
	formatter   output.Formatter
	formatEvent func(io.Writer, alert.Event) error
	mgr         *alert.Manager
	touched     []string
}

func (p *alertPrinter) markTouched(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !slices.Contains(p.touched, id) {
		p.touched = append(p.touched, id)
	}
}

func (p *alertPrinter) printContainers() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	snaps := make([]alert.Snapshot, 0, len(p.touched))
	for _, id := range p.touched {
		snaps = append(snaps, p.mgr.Snapshot(id))
	}
	return p.formatter.Format(p.w, snaps)
}

func (p *alertPrinter) printEvent(ev alert.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.formatEvent(p.w, ev)
}

// follow prints removal events until no timed alert remains or ctx ends.
// Slow subscribers may miss events, so the expiry count is also polled.
func (p *alertPrinter) follow(ctx context.Context, events <-chan alert.Event) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if p.mgr.Expiring() == 0 {
				return p.drain(events)
			}
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type != alert.EventRemoved {
				continue
			}
			if err := p.printEvent(ev); err != nil {
				return err
			}
			if p.mgr.Expiring() == 0 {
				return p.drain(events)
			}
		}
	}
}

// drain prints removal events already queued on events.
func (p *alertPrinter) drain(events <-chan alert.Event) error {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == alert.EventRemoved {
				if err := p.printEvent(ev); err != nil {
					return err
				}
			}
		default:
			return nil
		}
	}
}
