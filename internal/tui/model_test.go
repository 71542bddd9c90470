package tui

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/elevateui/internal/alert"
	"github.com/jmylchreest/elevateui/internal/config"
	"github.com/jmylchreest/elevateui/internal/model"
	"github.com/jmylchreest/elevateui/internal/timer/timertest"
)

func newTestModel(t *testing.T) (Model, *alert.Manager, *timertest.Clock) {
	t.Helper()
	clock := timertest.NewClock()
	mgr := alert.NewManager(
		alert.WithClock(clock),
		alert.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	t.Cleanup(func() { _ = mgr.Close() })

	m := New(config.DefaultConfig(), mgr, WithClock(clock))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), mgr, clock
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	return next.(Model), cmd
}

func statusText(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(statusMsg)
	require.True(t, ok, "expected a status message")
	return msg.text
}

func TestModel_Containers(t *testing.T) {
	m, _, _ := newTestModel(t)

	assert.Equal(t, []string{"alert-container", "sidebar"}, m.containers)
	assert.Equal(t, "alert-container", m.Focused())

	m, _ = press(t, m, "tab")
	assert.Equal(t, "sidebar", m.Focused())
	m, _ = press(t, m, "tab")
	assert.Equal(t, "alert-container", m.Focused())
	m, _ = press(t, m, "shift+tab")
	assert.Equal(t, "sidebar", m.Focused())
}

func TestModel_ShowSampleExpires(t *testing.T) {
	m, mgr, clock := newTestModel(t)

	m, cmd := press(t, m, "w")
	assert.Nil(t, cmd)

	alerts := mgr.Alerts("alert-container")
	require.Len(t, alerts, 1)
	assert.Equal(t, model.SeverityWarning, alerts[0].Severity)
	assert.Equal(t, "Your session expires soon (#1)", alerts[0].Message)
	assert.Equal(t, alert.DefaultDuration, alerts[0].Duration)

	clock.Advance(alert.DefaultDuration)
	assert.Empty(t, mgr.Alerts("alert-container"))
	assert.Equal(t, 1, m.shown)
}

func TestModel_TogglePersistent(t *testing.T) {
	m, mgr, clock := newTestModel(t)

	m, cmd := press(t, m, "p")
	assert.True(t, m.Persistent())
	assert.Equal(t, "New alerts persist until dismissed", statusText(t, cmd))

	m, _ = press(t, m, "d")
	clock.Advance(time.Minute)

	alerts := mgr.Alerts("alert-container")
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].IsPersistent())
	assert.Equal(t, model.SeverityDanger, alerts[0].Severity)

	m, cmd = press(t, m, "p")
	assert.False(t, m.Persistent())
	assert.Equal(t, "New alerts auto-dismiss", statusText(t, cmd))
}

func TestModel_DismissNewest(t *testing.T) {
	m, mgr, _ := newTestModel(t)

	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "i")
	m, _ = press(t, m, "s")
	require.Len(t, mgr.Alerts("sidebar"), 2)

	m, cmd := press(t, m, "x")
	assert.Equal(t, "Alert dismissed", statusText(t, cmd))
	remaining := mgr.Alerts("sidebar")
	require.Len(t, remaining, 1)
	assert.Equal(t, model.SeverityInfo, remaining[0].Severity)

	m, _ = press(t, m, "x")
	_, cmd = press(t, m, "x")
	assert.Equal(t, "Nothing to dismiss", statusText(t, cmd))
	assert.Empty(t, mgr.Alerts("sidebar"))
}

func TestModel_Clear(t *testing.T) {
	m, mgr, _ := newTestModel(t)

	m, _ = press(t, m, "i")
	m, _ = press(t, m, "w")
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "i")

	m, _ = press(t, m, "shift+tab")
	_, cmd := press(t, m, "X")
	assert.Equal(t, "Cleared 2 alerts from alert-container", statusText(t, cmd))
	assert.Empty(t, mgr.Alerts("alert-container"))
	assert.Len(t, mgr.Alerts("sidebar"), 1)
}

func TestModel_ConfigReloaded(t *testing.T) {
	m, mgr, clock := newTestModel(t)

	cfg := config.DefaultConfig()
	cfg.Alerts.Container = "flash"
	cfg.Alerts.Duration = 0
	cfg.TUI.Containers = nil

	next, cmd := m.Update(ConfigReloadedMsg{Config: cfg})
	m = next.(Model)
	assert.Equal(t, "Configuration reloaded", statusText(t, cmd))
	assert.Equal(t, "flash", mgr.Settings().ContainerID)
	assert.Equal(t, []string{"flash"}, m.containers)

	_, err := mgr.Show("from elsewhere")
	require.NoError(t, err)
	clock.Advance(time.Hour)
	assert.Len(t, mgr.Alerts("flash"), 1, "duration 0 persists")

	next, _ = m.Update(alertEventMsg{})
	assert.Equal(t, []string{"flash"}, next.(Model).containers)
}

func TestModel_NewContainerAppearsAfterEvent(t *testing.T) {
	m, mgr, _ := newTestModel(t)

	_, err := mgr.Show("elsewhere", alert.InContainer("footer"))
	require.NoError(t, err)

	next, cmd := m.Update(alertEventMsg{})
	assert.NotNil(t, cmd, "keeps listening for events")
	assert.Equal(t, []string{"alert-container", "sidebar", "footer"}, next.(Model).containers)
}

func TestModel_StatusLifecycle(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, cmd := m.Update(statusMsg{text: "hello"})
	m = next.(Model)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "hello")

	next, _ = m.Update(clearStatusMsg{})
	assert.NotContains(t, next.(Model).View(), "hello")

	_, cmd = m.Update(copyResultMsg{err: assert.AnError})
	assert.Contains(t, statusText(t, cmd), "Copy failed")
}

func TestModel_View(t *testing.T) {
	m, _, clock := newTestModel(t)

	m, _ = press(t, m, "p")
	m, _ = press(t, m, "s")
	m, _ = press(t, m, "p")
	m, _ = press(t, m, "i")
	clock.Advance(2 * time.Second)

	view := m.View()
	assert.Contains(t, view, "elevateui alerts")
	assert.Contains(t, view, "2 visible")
	assert.Contains(t, view, "alert-container (2)")
	assert.Contains(t, view, "Your profile was saved (#1)")
	assert.Contains(t, view, "(2 seconds ago, persistent)")
	assert.Contains(t, view, "New study materials are available (#2)")
	assert.Contains(t, view, "(2 seconds ago, 3s left)")
	assert.Contains(t, view, "sidebar (0)")
	assert.Contains(t, view, "no alerts")
}

func TestModel_ViewBeforeResize(t *testing.T) {
	clock := timertest.NewClock()
	mgr := alert.NewManager(alert.WithClock(clock))
	t.Cleanup(func() { _ = mgr.Close() })

	assert.Equal(t, "Initializing...", New(nil, mgr).View())
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.True(t, m.help.ShowAll)

	m, _ = press(t, m, "?")
	assert.False(t, m.help.ShowAll)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestExpiryLabel(t *testing.T) {
	now := timertest.Epoch
	a := &model.Alert{CreatedAt: now, Duration: 5 * time.Second, ExpiresAt: now.Add(5 * time.Second)}

	assert.Equal(t, "(now, 5s left)", expiryLabel(a, now))
	assert.Equal(t, "(1 second ago, 4s left)", expiryLabel(a, now.Add(time.Second)))
	assert.Equal(t, "(now, persistent)", expiryLabel(&model.Alert{CreatedAt: now}, now))
}

func TestDetectClipboardCommand_Configured(t *testing.T) {
	assert.Equal(t, "pbcopy", detectClipboardCommand("pbcopy"))
}
