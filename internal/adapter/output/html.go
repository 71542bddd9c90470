package output

import (
	"io"

	"github.com/jmylchreest/elevateui/internal/alert"
	"github.com/jmylchreest/elevateui/internal/render"
)

// HTMLFormatter writes the alert container markup used on the page.
type HTMLFormatter struct{}

// NewHTMLFormatter creates a new HTML formatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Format writes one alert container element per snapshot.
func (f *HTMLFormatter) Format(w io.Writer, containers []alert.Snapshot) error {
	for _, snap := range containers {
		if err := render.AlertContainer(w, snap); err != nil {
			return err
		}
	}
	return nil
}
