// Package tui provides the BubbleTea-based alert page for the terminal.
package tui

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/elevateui/internal/alert"
	"github.com/jmylchreest/elevateui/internal/config"
	"github.com/jmylchreest/elevateui/internal/model"
	"github.com/jmylchreest/elevateui/internal/timer"
)

var sampleMessages = map[model.Severity]string{
	model.SeverityInfo:    "New study materials are available",
	model.SeveritySuccess: "Your profile was saved",
	model.SeverityWarning: "Your session expires soon",
	model.SeverityDanger:  "Upload failed, please try again",
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headingStyle = lipgloss.NewStyle().Bold(true)

	containerStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)

	focusedContainerStyle = containerStyle.BorderForeground(lipgloss.Color("12"))

	severityStyles = map[model.Severity]lipgloss.Style{
		model.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		model.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		model.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		model.SeverityDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
)

// Model is the main TUI model.
type Model struct {
	cfg     *config.Config
	manager *alert.Manager
	clock   timer.Clock

	help help.Model
	keys KeyMap

	// State
	containers []string
	focus      int
	persistent bool
	showHelp   bool
	shown      int
	width      int
	height     int
	ready      bool

	// Status message
	statusMsg string
	statusErr bool

	events <-chan alert.Event
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the clock used for relative times.
func WithClock(c timer.Clock) Option {
	return func(m *Model) {
		m.clock = c
	}
}

// New creates a TUI model over manager and subscribes to its events.
func New(cfg *config.Config, manager *alert.Manager, opts ...Option) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := Model{
		cfg:      cfg,
		manager:  manager,
		clock:    timer.RealClock(),
		help:     help.New(),
		keys:     DefaultKeyMap(),
		showHelp: cfg.TUI.ShowHelp,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.help.ShowAll = m.showHelp
	m.events = manager.Subscribe()
	m.containers = m.containerIDs()

	return m
}

// ConfigReloadedMsg delivers a reloaded configuration to a running program.
type ConfigReloadedMsg struct {
	Config *config.Config
}

type alertEventMsg struct {
	event alert.Event
}

type tickMsg time.Time

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// Init starts listening for alert events and the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent, m.tick())
}

// waitForEvent blocks until the manager publishes an event.
func (m Model) waitForEvent() tea.Msg {
	ev, ok := <-m.events
	if !ok {
		return nil
	}
	return alertEventMsg{event: ev}
}

func (m Model) tick() tea.Cmd {
	d := m.cfg.TUI.Refresh.Duration()
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case alertEventMsg:
		m.containers = m.containerIDs()
		return m, m.waitForEvent

	case tickMsg:
		// Redraw so relative times stay current.
		return m, m.tick()

	case ConfigReloadedMsg:
		if msg.Config == nil {
			return m, nil
		}
		m.cfg = msg.Config
		m.manager.SetSettings(msg.Config.AlertSettings())
		m.containers = m.containerIDs()
		return m, status("Configuration reloaded", false)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Copied to clipboard", false)
	}

	return m, nil
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Info):
		return m.showSample(model.SeverityInfo)
	case key.Matches(msg, m.keys.Success):
		return m.showSample(model.SeveritySuccess)
	case key.Matches(msg, m.keys.Warning):
		return m.showSample(model.SeverityWarning)
	case key.Matches(msg, m.keys.Danger):
		return m.showSample(model.SeverityDanger)

	case key.Matches(msg, m.keys.Dismiss):
		alerts := m.manager.Alerts(m.Focused())
		if len(alerts) == 0 {
			return m, status("Nothing to dismiss", false)
		}
		m.manager.Dismiss(alerts[len(alerts)-1].ID)
		return m, status("Alert dismissed", false)

	case key.Matches(msg, m.keys.Clear):
		n := m.manager.Clear(m.Focused())
		return m, status(fmt.Sprintf("Cleared %d alerts from %s", n, m.Focused()), false)

	case key.Matches(msg, m.keys.TogglePersistent):
		m.persistent = !m.persistent
		if m.persistent {
			return m, status("New alerts persist until dismissed", false)
		}
		return m, status("New alerts auto-dismiss", false)

	case key.Matches(msg, m.keys.NextContainer):
		if len(m.containers) > 0 {
			m.focus = (m.focus + 1) % len(m.containers)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevContainer):
		if len(m.containers) > 0 {
			m.focus = (m.focus - 1 + len(m.containers)) % len(m.containers)
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyJSON):
		data, err := json.MarshalIndent(m.manager.Snapshot(m.Focused()), "", "  ")
		if err != nil {
			return m, status("Failed to marshal JSON: "+err.Error(), true)
		}
		return m, m.copyToClipboard(string(data))

	case key.Matches(msg, m.keys.CopyYAML):
		data, err := yaml.Marshal(m.manager.Snapshot(m.Focused()))
		if err != nil {
			return m, status("Failed to marshal YAML: "+err.Error(), true)
		}
		return m, m.copyToClipboard(string(data))
	}

	return m, nil
}

// showSample shows a canned alert of the given severity in the focused
// container.
func (m Model) showSample(sev model.Severity) (tea.Model, tea.Cmd) {
	opts := []alert.ShowOption{alert.WithSeverity(sev), alert.InContainer(m.Focused())}
	if m.persistent {
		opts = append(opts, alert.Persistent())
	}

	m.shown++
	if _, err := m.manager.Show(fmt.Sprintf("%s (#%d)", sampleMessages[sev], m.shown), opts...); err != nil {
		return m, status("Show failed: "+err.Error(), true)
	}
	m.containers = m.containerIDs()
	return m, nil
}

// Focused returns the id of the focused container.
func (m Model) Focused() string {
	if m.focus < len(m.containers) {
		return m.containers[m.focus]
	}
	return m.manager.Settings().ContainerID
}

// Persistent reports whether new alerts are shown without auto-dismiss.
func (m Model) Persistent() bool {
	return m.persistent
}

// containerIDs lists the default container, the configured containers and
// any container created since, without duplicates.
func (m Model) containerIDs() []string {
	ids := []string{m.manager.Settings().ContainerID}
	ids = append(ids, m.cfg.TUI.Containers...)
	ids = append(ids, m.manager.Registry().IDs()...)

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	command := m.cfg.Clipboard.Command
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text, command)}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder

	mode := "auto-dismiss"
	if m.persistent {
		mode = "persistent"
	}
	b.WriteString(titleStyle.Render("elevateui alerts"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d visible, new alerts: %s", m.manager.Len(), mode)))
	b.WriteString("\n")

	for i, id := range m.containers {
		b.WriteString(m.viewContainer(id, i == m.focus))
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		b.WriteString(statusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewContainer(id string, focused bool) string {
	alerts := m.manager.Alerts(id)
	now := m.clock.Now()

	lines := []string{headingStyle.Render(fmt.Sprintf("%s (%d)", id, len(alerts)))}
	if len(alerts) == 0 {
		lines = append(lines, dimStyle.Render("no alerts"))
	}
	for i := range alerts {
		a := &alerts[i]
		label := severityStyles[a.Severity].Render(fmt.Sprintf("%-7s", a.Severity))
		lines = append(lines, label+" "+a.Message+" "+dimStyle.Render(expiryLabel(a, now)))
	}

	style := containerStyle
	if focused {
		style = focusedContainerStyle
	}
	if m.width > 4 {
		style = style.Width(m.width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// expiryLabel describes an alert's age and remaining lifetime.
func expiryLabel(a *model.Alert, now time.Time) string {
	if a.IsPersistent() {
		return "(" + a.RelativeTime(now) + ", persistent)"
	}
	left := a.Remaining(now).Round(time.Second)
	return fmt.Sprintf("(%s, %s left)", a.RelativeTime(now), left)
}
