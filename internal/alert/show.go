package alert

import (
	"time"

	"github.com/jmylchreest/elevateui/internal/model"
)

type request struct {
	severity    model.Severity
	containerID string
	duration    time.Duration
}

// ShowOption overrides a default for a single Show call.
type ShowOption func(*request)

// WithSeverity sets the presentation category.
func WithSeverity(s model.Severity) ShowOption {
	return func(r *request) {
		r.severity = s
	}
}

// InContainer places the alert in the named container.
func InContainer(id string) ShowOption {
	return func(r *request) {
		r.containerID = id
	}
}

// For sets the auto-dismiss duration. Zero or negative persists the alert
// until it is dismissed.
func For(d time.Duration) ShowOption {
	return func(r *request) {
		r.duration = d
	}
}

// Persistent disables auto-dismiss.
func Persistent() ShowOption {
	return For(0)
}

// Handle refers to one shown alert.
type Handle struct {
	m     *Manager
	alert model.Alert
}

// ID returns the alert id.
func (h *Handle) ID() string {
	return h.alert.ID
}

// Alert returns the alert as it was when shown.
func (h *Handle) Alert() model.Alert {
	return h.alert
}

// Dismiss removes the alert. Repeated calls are no-ops returning false.
func (h *Handle) Dismiss() bool {
	return h.m.Dismiss(h.alert.ID)
}

// CancelExpiry keeps the alert until it is dismissed.
func (h *Handle) CancelExpiry() bool {
	return h.m.CancelExpiry(h.alert.ID)
}

// Visible reports whether the alert is still shown.
func (h *Handle) Visible() bool {
	return h.m.Visible(h.alert.ID)
}

// Snapshot is a point-in-time copy of one container.
type Snapshot struct {
	ID     string        `json:"id" yaml:"id"`
	Alerts []model.Alert `json:"alerts" yaml:"alerts"`
}
