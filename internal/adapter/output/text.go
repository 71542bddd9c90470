package output

import (
	"strings"
	"time"

	"github.com/jmylchreest/elevateui/internal/model"
)

// remaining describes how long an alert has left, e.g. "4s left".
func remaining(a *model.Alert, now time.Time) string {
	if a.IsPersistent() {
		return "persistent"
	}
	left := a.Remaining(now).Round(time.Second)
	if left <= 0 {
		return "expiring"
	}
	return left.String() + " left"
}

// sanitizeMessage cleans up message text for single-line display.
func sanitizeMessage(msg string, maxLen int) string {
	msg = strings.ReplaceAll(msg, "\r", "")
	msg = strings.ReplaceAll(msg, "\n", " ")

	// Collapse multiple spaces
	msg = strings.Join(strings.Fields(msg), " ")

	return truncate(msg, maxLen)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
