// Package model defines the core data structures for elevateui.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
)

// Severity selects how an alert is presented. It has no effect on lifecycle.
type Severity int

// Severity levels, in increasing order of attention.
const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityDanger
)

// SeverityNames maps severities to the names used in class names and config.
var SeverityNames = map[Severity]string{
	SeverityInfo:    "info",
	SeveritySuccess: "success",
	SeverityWarning: "warning",
	SeverityDanger:  "danger",
}

// Severities lists every valid severity in order.
func Severities() []Severity {
	return []Severity{SeverityInfo, SeveritySuccess, SeverityWarning, SeverityDanger}
}

// ParseSeverity parses a severity name, ignoring case and surrounding space.
func ParseSeverity(s string) (Severity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for sev, n := range SeverityNames {
		if n == name {
			return sev, nil
		}
	}
	return SeverityInfo, fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
}

// Valid reports whether s is one of the defined severities.
func (s Severity) Valid() bool {
	_, ok := SeverityNames[s]
	return ok
}

func (s Severity) String() string {
	if name, ok := SeverityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// ClassName returns the class attribute value for an alert of this severity.
func (s Severity) ClassName() string {
	return "alert alert-" + s.String()
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeverity, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// RemoveReason records why an alert left its container.
type RemoveReason string

const (
	ReasonDismissed RemoveReason = "dismissed" // close control activated
	ReasonExpired   RemoveReason = "expired"   // auto-dismiss timer fired
	ReasonCleared   RemoveReason = "cleared"   // container cleared
	ReasonEvicted   RemoveReason = "evicted"   // pushed out by the container limit
)

// Alert is a transient message shown in a container.
type Alert struct {
	ID          string        `json:"id" yaml:"id"`
	Message     string        `json:"message" yaml:"message"`
	Severity    Severity      `json:"severity" yaml:"severity"`
	ContainerID string        `json:"container_id" yaml:"container_id"`
	Duration    time.Duration `json:"duration" yaml:"duration"` // 0 = persist until dismissed
	CreatedAt   time.Time     `json:"created_at" yaml:"created_at"`
	ExpiresAt   time.Time     `json:"expires_at,omitzero" yaml:"expires_at,omitempty"`

	RemovedAt    time.Time    `json:"removed_at,omitzero" yaml:"removed_at,omitempty"`
	RemoveReason RemoveReason `json:"remove_reason,omitempty" yaml:"remove_reason,omitempty"`
}

// Validation errors.
var (
	ErrEmptyID          = errors.New("alert id cannot be empty")
	ErrEmptyContainerID = errors.New("container id cannot be empty")
	ErrInvalidSeverity  = errors.New("severity must be one of info, success, warning, danger")
	ErrNegativeDuration = errors.New("duration cannot be negative")
)

// NewAlert creates an alert with a generated ULID. A negative duration is
// treated as zero, meaning the alert persists until dismissed.
func NewAlert(message string, severity Severity, containerID string, duration time.Duration, now time.Time) (*Alert, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	if duration < 0 {
		duration = 0
	}

	a := &Alert{
		ID:          id.String(),
		Message:     message,
		Severity:    severity,
		ContainerID: containerID,
		Duration:    duration,
		CreatedAt:   now,
	}
	if duration > 0 {
		a.ExpiresAt = now.Add(duration)
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks that the alert has all required fields.
func (a Alert) Validate() error {
	if a.ID == "" {
		return ErrEmptyID
	}
	if a.ContainerID == "" {
		return ErrEmptyContainerID
	}
	if !a.Severity.Valid() {
		return ErrInvalidSeverity
	}
	if a.Duration < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// IsPersistent reports whether the alert stays until manually dismissed.
func (a Alert) IsPersistent() bool {
	return a.Duration <= 0
}

// IsRemoved reports whether the alert has left its container.
func (a Alert) IsRemoved() bool {
	return !a.RemovedAt.IsZero()
}

// RelativeTime describes when the alert was created relative to now,
// e.g. "3 seconds ago".
func (a Alert) RelativeTime(now time.Time) string {
	return humanize.RelTime(a.CreatedAt, now, "ago", "from now")
}

// Remaining returns the time left before auto-dismiss. Persistent alerts
// return 0.
func (a Alert) Remaining(now time.Time) time.Duration {
	if a.ExpiresAt.IsZero() {
		return 0
	}
	if left := a.ExpiresAt.Sub(now); left > 0 {
		return left
	}
	return 0
}
