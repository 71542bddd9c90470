package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/elevateui/internal/alert"
)

// IDsFormatter outputs just the alert IDs, one per line, in display order.
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes alert IDs to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, containers []alert.Snapshot) error {
	for _, snap := range containers {
		for _, a := range snap.Alerts {
			if _, err := fmt.Fprintln(w, a.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
