package alert

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jmylchreest/elevateui/internal/model"
	"github.com/jmylchreest/elevateui/internal/timer/timertest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestManager(t *testing.T, opts ...Option) (*Manager, *timertest.Clock) {
	t.Helper()
	clock := timertest.NewClock()
	base := []Option{
		WithClock(clock),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	m := NewManager(append(base, opts...)...)
	t.Cleanup(func() { _ = m.Close() })
	return m, clock
}

func ids(alerts []model.Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.ID
	}
	return out
}

func TestManager_ShowDefaults(t *testing.T) {
	m, clock := newTestManager(t)

	h, err := m.Show("hello")
	require.NoError(t, err)

	a := h.Alert()
	assert.Equal(t, "hello", a.Message)
	assert.Equal(t, model.SeverityInfo, a.Severity)
	assert.Equal(t, DefaultContainerID, a.ContainerID)
	assert.Equal(t, 5*time.Second, a.Duration)
	assert.Equal(t, clock.Now(), a.CreatedAt)
	assert.True(t, h.Visible())
	assert.Equal(t, []string{DefaultContainerID}, m.Registry().IDs())
}

func TestManager_AutoDismiss(t *testing.T) {
	m, clock := newTestManager(t)

	h, err := m.Show("hi", WithSeverity(model.SeverityInfo), InContainer("c1"), For(200*time.Millisecond))
	require.NoError(t, err)

	c, ok := m.Registry().Lookup("c1")
	require.True(t, ok)
	assert.True(t, c.Contains(h.ID()), "present immediately after Show")

	clock.Advance(199 * time.Millisecond)
	assert.True(t, c.Contains(h.ID()))

	clock.Advance(time.Millisecond)
	assert.False(t, c.Contains(h.ID()), "absent once the duration elapses")
	assert.False(t, h.Visible())
	assert.Equal(t, 0, m.Len())
}

func TestManager_ManualDismissIsIdempotent(t *testing.T) {
	m, clock := newTestManager(t)
	events := m.Subscribe()

	h, err := m.Show("bye", InContainer("c1"), For(time.Second))
	require.NoError(t, err)
	<-events // shown

	assert.True(t, h.Dismiss())
	assert.False(t, h.Dismiss(), "second dismiss is a no-op")
	assert.False(t, m.Dismiss(h.ID()))
	assert.Equal(t, 0, clock.Pending(), "dismiss stops the expiry timer")

	// Letting the original deadline pass must not remove anything else.
	other, err := m.Show("other", InContainer("c1"), Persistent())
	require.NoError(t, err)
	clock.Advance(2 * time.Second)
	assert.True(t, other.Visible())

	ev := <-events
	assert.Equal(t, EventRemoved, ev.Type)
	assert.Equal(t, model.ReasonDismissed, ev.Alert.RemoveReason)
	assert.Equal(t, h.ID(), ev.Alert.ID)

	ev = <-events
	assert.Equal(t, EventShown, ev.Type, "no second removal event for the dismissed alert")
	assert.Equal(t, other.ID(), ev.Alert.ID)
}

func TestManager_ExpiryThenDismissIsNoop(t *testing.T) {
	m, clock := newTestManager(t)

	h, err := m.Show("soon", For(100*time.Millisecond))
	require.NoError(t, err)

	clock.Advance(100 * time.Millisecond)
	assert.False(t, h.Visible())
	assert.False(t, h.Dismiss())
}

func TestManager_PersistMode(t *testing.T) {
	m, clock := newTestManager(t)

	h, err := m.Show("x", WithSeverity(model.SeverityWarning), InContainer("c1"), For(0))
	require.NoError(t, err)
	assert.True(t, h.Alert().IsPersistent())
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(24 * time.Hour)
	assert.True(t, h.Visible())

	assert.True(t, h.Dismiss())
	assert.False(t, h.Visible())
}

func TestManager_NegativeDurationPersists(t *testing.T) {
	m, clock := newTestManager(t)

	h, err := m.Show("x", For(-time.Second))
	require.NoError(t, err)
	clock.Advance(time.Hour)
	assert.True(t, h.Visible())
}

func TestManager_ContainerReuse(t *testing.T) {
	m, _ := newTestManager(t)

	first, err := m.Show("one", InContainer("c1"))
	require.NoError(t, err)
	second, err := m.Show("two", InContainer("c1"))
	require.NoError(t, err)
	third, err := m.Show("three", InContainer("c2"))
	require.NoError(t, err)

	c1, ok := m.Registry().Lookup("c1")
	require.True(t, ok)
	assert.Equal(t, []string{first.ID(), second.ID()}, ids(c1.Alerts()), "call order preserved")

	c2, ok := m.Registry().Lookup("c2")
	require.True(t, ok)
	assert.NotSame(t, c1, c2)
	assert.Equal(t, []string{third.ID()}, ids(c2.Alerts()))
	assert.Equal(t, []string{"c1", "c2"}, m.Registry().IDs())
}

func TestManager_IndependentTimers(t *testing.T) {
	m, clock := newTestManager(t)

	short, err := m.Show("short", For(100*time.Millisecond))
	require.NoError(t, err)
	long, err := m.Show("long", For(300*time.Millisecond))
	require.NoError(t, err)

	clock.Advance(150 * time.Millisecond)
	assert.False(t, short.Visible())
	assert.True(t, long.Visible())

	clock.Advance(150 * time.Millisecond)
	assert.False(t, long.Visible())
}

func TestManager_SeverityDoesNotAffectLifecycle(t *testing.T) {
	m, clock := newTestManager(t)

	var handles []*Handle
	for _, sev := range model.Severities() {
		h, err := m.Show(sev.String(), WithSeverity(sev), For(time.Second))
		require.NoError(t, err)
		handles = append(handles, h)
	}

	clock.Advance(time.Second)
	for _, h := range handles {
		assert.False(t, h.Visible(), h.Alert().Severity.String())
	}
}

func TestManager_InvalidSeverity(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Show("bad", WithSeverity(model.Severity(99)))
	assert.ErrorIs(t, err, model.ErrInvalidSeverity)
	assert.Equal(t, 0, m.Registry().Len(), "no container created for a rejected alert")
}

func TestManager_EmptyContainerFallsBackToDefault(t *testing.T) {
	m, _ := newTestManager(t)

	h, err := m.Show("x", InContainer(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultContainerID, h.Alert().ContainerID)
}

func TestManager_CancelExpiry(t *testing.T) {
	m, clock := newTestManager(t)

	h, err := m.Show("keep me", For(time.Second))
	require.NoError(t, err)

	assert.True(t, h.CancelExpiry())
	assert.False(t, h.CancelExpiry())
	assert.Equal(t, 0, m.Expiring())

	clock.Advance(time.Minute)
	assert.True(t, h.Visible())

	a, ok := m.Lookup(h.ID())
	require.True(t, ok)
	assert.True(t, a.IsPersistent())

	persistent, err := m.Show("already persistent", Persistent())
	require.NoError(t, err)
	assert.False(t, persistent.CancelExpiry())
}

func TestManager_Clear(t *testing.T) {
	m, clock := newTestManager(t)

	for range 3 {
		_, err := m.Show("a", InContainer("c1"), For(time.Second))
		require.NoError(t, err)
	}
	keep, err := m.Show("b", InContainer("c2"))
	require.NoError(t, err)

	assert.Equal(t, 3, m.Clear("c1"))
	assert.Equal(t, 0, m.Clear("c1"))
	assert.Equal(t, 0, m.Clear("missing"))
	assert.Empty(t, m.Alerts("c1"))
	assert.True(t, keep.Visible())

	clock.Advance(time.Minute)
	assert.Equal(t, 2, m.Registry().Len(), "containers persist after clear")
}

func TestManager_MaxPerContainerEvictsOldest(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxPerContainer = 2
	m, _ := newTestManager(t, WithSettings(settings))
	events := m.Subscribe()

	a, err := m.Show("a")
	require.NoError(t, err)
	b, err := m.Show("b")
	require.NoError(t, err)
	c, err := m.Show("c")
	require.NoError(t, err)

	assert.False(t, a.Visible())
	assert.Equal(t, []string{b.ID(), c.ID()}, ids(m.Alerts(DefaultContainerID)))

	var evicted []model.Alert
	for range 4 {
		ev := <-events
		if ev.Type == EventRemoved {
			evicted = append(evicted, ev.Alert)
		}
	}
	require.Len(t, evicted, 1)
	assert.Equal(t, a.ID(), evicted[0].ID)
	assert.Equal(t, model.ReasonEvicted, evicted[0].RemoveReason)
}

func TestManager_SetSettings(t *testing.T) {
	m, _ := newTestManager(t)

	m.SetSettings(Settings{
		Severity:    model.SeverityDanger,
		ContainerID: "errors",
		Duration:    time.Minute,
	})

	h, err := m.Show("boom")
	require.NoError(t, err)
	assert.Equal(t, model.SeverityDanger, h.Alert().Severity)
	assert.Equal(t, "errors", h.Alert().ContainerID)
	assert.Equal(t, time.Minute, h.Alert().Duration)
	assert.Equal(t, "errors", m.Settings().ContainerID)
}

func TestManager_EventsCarryRemoval(t *testing.T) {
	m, clock := newTestManager(t)
	events := m.Subscribe()

	h, err := m.Show("tick", For(time.Second))
	require.NoError(t, err)
	clock.Advance(time.Second)

	shown := <-events
	removed := <-events
	assert.Equal(t, EventShown, shown.Type)
	assert.Equal(t, "shown", shown.Type.String())
	assert.Equal(t, EventRemoved, removed.Type)
	assert.Equal(t, h.ID(), removed.Alert.ID)
	assert.Equal(t, model.ReasonExpired, removed.Alert.RemoveReason)
	assert.Equal(t, clock.Now(), removed.Alert.RemovedAt)
}

func TestManager_Unsubscribe(t *testing.T) {
	m, _ := newTestManager(t)
	events := m.Subscribe()
	m.Unsubscribe(events)

	_, ok := <-events
	assert.False(t, ok, "channel closed on unsubscribe")

	_, err := m.Show("after unsubscribe")
	require.NoError(t, err)
}

func TestManager_Close(t *testing.T) {
	m, clock := newTestManager(t)
	events := m.Subscribe()

	h, err := m.Show("x", For(time.Second))
	require.NoError(t, err)
	<-events

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	assert.Equal(t, 0, clock.Pending())

	_, ok := <-events
	assert.False(t, ok)

	_, err = m.Show("late")
	assert.ErrorIs(t, err, ErrManagerClosed)
	assert.True(t, h.Visible(), "close leaves visible alerts in place")
	assert.True(t, h.Dismiss())
}

func TestManager_Reset(t *testing.T) {
	m, clock := newTestManager(t)

	_, err := m.Show("x", InContainer("c1"), For(time.Second))
	require.NoError(t, err)
	m.Reset()

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Registry().Len())
	assert.Equal(t, 0, clock.Pending())

	_, err = m.Show("y", InContainer("c1"))
	require.NoError(t, err)
	assert.Len(t, m.Alerts("c1"), 1)
}

func TestManager_Snapshots(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Show("one", InContainer("c1"))
	require.NoError(t, err)
	_, err = m.Show("two", InContainer("c2"))
	require.NoError(t, err)

	snaps := m.Snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, "c1", snaps[0].ID)
	assert.Equal(t, "one", snaps[0].Alerts[0].Message)
	assert.Equal(t, "c2", snaps[1].ID)

	assert.Empty(t, m.Snapshot("nope").Alerts)
}

func TestManager_RealClock(t *testing.T) {
	m := NewManager(WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer m.Close()

	h, err := m.Show("real", InContainer("c1"), For(50*time.Millisecond))
	require.NoError(t, err)
	assert.True(t, h.Visible())

	assert.Eventually(t, func() bool { return !h.Visible() }, 2*time.Second, 5*time.Millisecond)
	assert.False(t, h.Dismiss())
}
