package alert

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jmylchreest/elevateui/internal/model"
	"github.com/jmylchreest/elevateui/internal/timer"
)

// Defaults applied by Show when no option overrides them.
const (
	DefaultContainerID = "alert-container"
	DefaultDuration    = 5 * time.Second
	DefaultSeverity    = model.SeverityInfo
)

// ErrManagerClosed is returned by Show after Close.
var ErrManagerClosed = errors.New("alert manager is closed")

// Settings are the defaults used by Show.
type Settings struct {
	Severity    model.Severity
	ContainerID string
	Duration    time.Duration // 0 = persist until dismissed

	// MaxPerContainer evicts the oldest alerts once a container holds more
	// than this many. 0 = unlimited.
	MaxPerContainer int
}

// DefaultSettings returns the stock defaults: info, "alert-container", 5s.
func DefaultSettings() Settings {
	return Settings{
		Severity:    DefaultSeverity,
		ContainerID: DefaultContainerID,
		Duration:    DefaultDuration,
	}
}

// EventType identifies a manager event.
type EventType int

const (
	// EventShown is published after an alert is appended to its container.
	EventShown EventType = iota
	// EventRemoved is published after an alert leaves its container.
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventShown:
		return "shown"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event reports an alert lifecycle transition. For EventRemoved the alert
// carries RemovedAt and RemoveReason.
type Event struct {
	Type  EventType
	Alert model.Alert
}

// Option configures a Manager.
type Option func(*Manager)

// WithRegistry shares a container registry with the manager.
func WithRegistry(r *Registry) Option {
	return func(m *Manager) {
		m.registry = r
	}
}

// WithClock sets the clock used for timestamps and expiry timers.
func WithClock(c timer.Clock) Option {
	return func(m *Manager) {
		m.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithSettings replaces the defaults used by Show.
func WithSettings(s Settings) Option {
	return func(m *Manager) {
		m.settings = s
	}
}

type entry struct {
	alert     *model.Alert
	container *Container
	expiry    *timer.Slot // nil for persistent alerts
}

// Manager shows alerts and retires them on dismiss or expiry.
// It is safe for concurrent use.
type Manager struct {
	registry *Registry
	clock    timer.Clock
	logger   *slog.Logger

	mu       sync.Mutex
	settings Settings
	entries  map[string]*entry
	closed   bool

	subMu       sync.Mutex
	subscribers []chan Event
}

// NewManager creates a manager with its own registry unless one is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		settings: DefaultSettings(),
		entries:  make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = NewRegistry()
	}
	if m.clock == nil {
		m.clock = timer.RealClock()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Registry returns the container registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Settings returns the current defaults.
func (m *Manager) Settings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// SetSettings replaces the defaults for subsequent Show calls. Visible
// alerts keep the duration they were shown with.
func (m *Manager) SetSettings(s Settings) {
	m.mu.Lock()
	old := m.settings
	m.settings = s
	m.mu.Unlock()

	m.logger.Debug("alert settings updated",
		"old_duration", old.Duration,
		"new_duration", s.Duration,
		"container", s.ContainerID,
		"max_per_container", s.MaxPerContainer,
	)
}

// Show appends a new alert to its container and, when its duration is
// positive, schedules its removal. The returned handle can dismiss it.
func (m *Manager) Show(message string, opts ...ShowOption) (*Handle, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrManagerClosed
	}

	req := request{
		severity:    m.settings.Severity,
		containerID: m.settings.ContainerID,
		duration:    m.settings.Duration,
	}
	for _, opt := range opts {
		opt(&req)
	}
	if req.containerID == "" {
		req.containerID = DefaultContainerID
	}

	a, err := model.NewAlert(message, req.severity, req.containerID, req.duration, m.clock.Now())
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	c := m.registry.Container(a.ContainerID)
	c.append(a)
	e := &entry{alert: a, container: c}
	m.entries[a.ID] = e

	if a.Duration > 0 {
		id := a.ID
		e.expiry = timer.NewSlot(m.clock)
		e.expiry.Schedule(a.Duration, func() {
			m.remove(id, model.ReasonExpired)
		})
	}

	events := []Event{{Type: EventShown, Alert: *a}}
	if limit := m.settings.MaxPerContainer; limit > 0 {
		for _, id := range c.ids() {
			if c.Len() <= limit {
				break
			}
			if ev, ok := m.removeLocked(id, model.ReasonEvicted); ok {
				events = append(events, ev)
			}
		}
	}
	m.mu.Unlock()

	m.logger.Debug("showed alert",
		"id", a.ID,
		"container", a.ContainerID,
		"severity", a.Severity,
		"duration", a.Duration,
	)
	m.publish(events...)

	return &Handle{m: m, alert: *a}, nil
}

// Dismiss removes the alert as if its close control had been activated.
// It returns false, without error, when the alert is already gone.
func (m *Manager) Dismiss(id string) bool {
	return m.remove(id, model.ReasonDismissed)
}

// CancelExpiry turns a timed alert into a persistent one. It returns false
// when the alert is gone or had no pending expiry.
func (m *Manager) CancelExpiry(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok || e.expiry == nil || !e.expiry.Cancel() {
		return false
	}
	e.expiry = nil
	e.alert.Duration = 0
	e.alert.ExpiresAt = time.Time{}
	return true
}

// Clear removes every alert in the container and returns how many were removed.
func (m *Manager) Clear(containerID string) int {
	c, ok := m.registry.Lookup(containerID)
	if !ok {
		return 0
	}

	m.mu.Lock()
	var events []Event
	for _, id := range c.ids() {
		if ev, ok := m.removeLocked(id, model.ReasonCleared); ok {
			events = append(events, ev)
		}
	}
	m.mu.Unlock()

	m.publish(events...)
	return len(events)
}

// Lookup returns a visible alert by id.
func (m *Manager) Lookup(id string) (model.Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return model.Alert{}, false
	}
	return *e.alert, true
}

// Visible reports whether the alert is still in its container.
func (m *Manager) Visible(id string) bool {
	m.mu.Lock()
	e, ok := m.entries[id]
	m.mu.Unlock()
	return ok && e.container.Contains(id)
}

// Alerts returns the visible alerts of a container, oldest first. Unknown
// containers yield nil.
func (m *Manager) Alerts(containerID string) []model.Alert {
	c, ok := m.registry.Lookup(containerID)
	if !ok {
		return nil
	}
	return c.Alerts()
}

// Snapshot captures one container.
func (m *Manager) Snapshot(containerID string) Snapshot {
	return Snapshot{ID: containerID, Alerts: m.Alerts(containerID)}
}

// Snapshots captures every container in creation order.
func (m *Manager) Snapshots() []Snapshot {
	ids := m.registry.IDs()
	out := make([]Snapshot, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.Snapshot(id))
	}
	return out
}

// Len returns the number of visible alerts across all containers.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Expiring returns the number of visible alerts with a pending expiry.
func (m *Manager) Expiring() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, e := range m.entries {
		if e.expiry != nil {
			n++
		}
	}
	return n
}

// Subscribe returns a channel that receives lifecycle events. Events are
// dropped for subscribers that fall behind.
func (m *Manager) Subscribe() <-chan Event {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	ch := make(chan Event, 32)
	m.subscribers = append(m.subscribers, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (m *Manager) Unsubscribe(ch <-chan Event) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// Reset stops all expiry timers and forgets every alert and container.
// Subscriptions are kept.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTimersLocked()
	m.entries = make(map[string]*entry)
	m.registry.Reset()
}

// Close stops all expiry timers and closes subscriber channels. Visible
// alerts stay in their containers.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.stopTimersLocked()
	m.mu.Unlock()

	m.subMu.Lock()
	for _, ch := range m.subscribers {
		close(ch)
	}
	m.subscribers = nil
	m.subMu.Unlock()

	return nil
}

func (m *Manager) remove(id string, reason model.RemoveReason) bool {
	m.mu.Lock()
	ev, ok := m.removeLocked(id, reason)
	m.mu.Unlock()

	if !ok {
		return false
	}

	m.logger.Debug("removed alert",
		"id", id,
		"container", ev.Alert.ContainerID,
		"reason", reason,
	)
	m.publish(ev)
	return true
}

// removeLocked performs the guarded removal. Caller must hold m.mu.
func (m *Manager) removeLocked(id string, reason model.RemoveReason) (Event, bool) {
	e, ok := m.entries[id]
	if !ok {
		return Event{}, false
	}
	delete(m.entries, id)

	if e.expiry != nil && reason != model.ReasonExpired {
		e.expiry.Cancel()
	}
	if !e.container.remove(id) {
		return Event{}, false
	}

	e.alert.RemovedAt = m.clock.Now()
	e.alert.RemoveReason = reason
	return Event{Type: EventRemoved, Alert: *e.alert}, true
}

func (m *Manager) stopTimersLocked() {
	for _, e := range m.entries {
		if e.expiry != nil {
			e.expiry.Cancel()
		}
	}
}

func (m *Manager) publish(events ...Event) {
	if len(events) == 0 {
		return
	}

	m.subMu.Lock()
	defer m.subMu.Unlock()

	for _, ev := range events {
		for _, ch := range m.subscribers {
			select {
			case ch <- ev:
			default:
				// Subscriber is behind, skip
			}
		}
	}
}
