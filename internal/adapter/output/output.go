// Package output provides output formatters for alert containers.
package output

import (
	"io"
	"time"

	"github.com/jmylchreest/elevateui/internal/alert"
)

// Formatter formats container snapshots for output.
type Formatter interface {
	// Format writes the formatted containers to the writer.
	Format(w io.Writer, containers []alert.Snapshot) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatHTML  FormatType = "html"
	FormatIDs   FormatType = "ids"
)

// FormatTypes lists every supported format, for flag help.
func FormatTypes() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatHTML, FormatIDs}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatHTML:
		return NewHTMLFormatter()
	case FormatIDs:
		return NewIDsFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template      string           // Custom per-alert template for plain format
	ShowIndex     bool             // Show 1-based index prefix
	ShowTime      bool             // Show relative creation time
	ShowContainer bool             // Print a header line per container
	MessageMaxLen int              // Maximum message length (0 = unlimited)
	Now           func() time.Time // Reference time for relative times (nil = time.Now)
}

// DefaultFormatterOptions returns sensible defaults for terminal output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:     true,
		ShowTime:      true,
		ShowContainer: true,
		MessageMaxLen: 120,
	}
}

func (o FormatterOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
