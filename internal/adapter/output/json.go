package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/elevateui/internal/alert"
)

// JSONFormatter formats containers as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes containers as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, containers []alert.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(nonNil(containers))
}

// FormatEvent writes a single manager event as one line of JSON.
func (f *JSONFormatter) FormatEvent(w io.Writer, ev alert.Event) error {
	return json.NewEncoder(w).Encode(struct {
		Type  string `json:"type"`
		Alert any    `json:"alert"`
	}{Type: ev.Type.String(), Alert: ev.Alert})
}

func nonNil(containers []alert.Snapshot) []alert.Snapshot {
	if containers == nil {
		return []alert.Snapshot{}
	}
	return containers
}
