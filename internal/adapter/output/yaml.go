package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/elevateui/internal/alert"
)

// YAMLFormatter formats containers as a YAML document.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes containers as a YAML sequence.
func (f *YAMLFormatter) Format(w io.Writer, containers []alert.Snapshot) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(nonNil(containers)); err != nil {
		return err
	}
	return encoder.Close()
}
