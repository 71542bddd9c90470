package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/elevateui/internal/alert"
	"github.com/jmylchreest/elevateui/internal/model"
)

// PlainFormatter formats alerts as plain text, one line per alert.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes containers as plain text.
func (f *PlainFormatter) Format(w io.Writer, containers []alert.Snapshot) error {
	index := 0
	for _, snap := range containers {
		if f.opts.ShowContainer {
			if _, err := fmt.Fprintf(w, "%s (%d)\n", snap.ID, len(snap.Alerts)); err != nil {
				return err
			}
		}
		for i := range snap.Alerts {
			index++
			line := f.formatLine(index, &snap.Alerts[i])
			if f.opts.ShowContainer {
				line = "  " + line
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatEvent writes a single manager event as one line.
func (f *PlainFormatter) FormatEvent(w io.Writer, ev alert.Event) error {
	a := ev.Alert
	line := fmt.Sprintf("%s %s [%s] %s", ev.Type, a.ContainerID, a.Severity, sanitizeMessage(a.Message, f.opts.MessageMaxLen))
	if ev.Type == alert.EventRemoved && a.RemoveReason != "" {
		line += " (" + string(a.RemoveReason) + ")"
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// formatLine formats a single alert line.
func (f *PlainFormatter) formatLine(index int, a *model.Alert) string {
	now := f.opts.now()

	// Use custom template if available
	if f.template != nil {
		var buf strings.Builder
		data := templateData{
			Index:        index,
			Alert:        a,
			RelativeTime: a.RelativeTime(now),
		}
		if err := f.template.Execute(&buf, data); err == nil {
			return buf.String()
		}
	}

	// Default format: [index] [severity] message (time, remaining)
	var sb strings.Builder

	if f.opts.ShowIndex {
		fmt.Fprintf(&sb, "[%d] ", index)
	}

	fmt.Fprintf(&sb, "%-7s %s", a.Severity, sanitizeMessage(a.Message, f.opts.MessageMaxLen))

	if f.opts.ShowTime {
		fmt.Fprintf(&sb, " (%s, %s)", a.RelativeTime(now), remaining(a, now))
	}

	return sb.String()
}

// templateData provides data for custom templates.
type templateData struct {
	Index        int
	Alert        *model.Alert
	RelativeTime string
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": truncate,
		"severityIcon": func(s model.Severity) string {
			switch s {
			case model.SeveritySuccess:
				return "+"
			case model.SeverityWarning:
				return "!"
			case model.SeverityDanger:
				return "x"
			default:
				return "i"
			}
		},
	}
}
