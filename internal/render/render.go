// Package render produces the page markup and display values around the
// alert containers: navigation state, file previews, charts, dates, modal
// and menu state, and scroll reveal classes.
//
// Every renderer is a function of its inputs. Rendering the same input twice
// yields the same output.
package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/jmylchreest/elevateui/internal/alert"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

// AlertContainer writes the markup for one alert container. Messages are
// escaped as text.
func AlertContainer(w io.Writer, snap alert.Snapshot) error {
	return templates.ExecuteTemplate(w, "alert-container", snap)
}

// FilePreview writes the preview shown after a file is chosen for upload.
func FilePreview(w io.Writer, name string, size int64) error {
	return templates.ExecuteTemplate(w, "file-preview", struct {
		Name string
		Size string
	}{Name: name, Size: FormatFileSize(size)})
}

// Tooltip writes a tooltip element. When shown is true it carries the
// "show" class used on hover.
func Tooltip(w io.Writer, text string, shown bool) error {
	class := "tooltip"
	if shown {
		class += " show"
	}
	return templates.ExecuteTemplate(w, "tooltip", struct {
		Class string
		Text  string
	}{Class: class, Text: text})
}

// Nav writes the menu toggle and navigation links with the active class
// applied for currentPath. A nil menu renders closed.
func Nav(w io.Writer, currentPath string, links []NavLink, menu *Menu) error {
	if menu == nil {
		menu = &Menu{}
	}
	return templates.ExecuteTemplate(w, "nav", struct {
		Class        string
		AriaExpanded string
		Links        []NavLink
	}{
		Class:        menu.NavClass(),
		AriaExpanded: menu.AriaExpanded(),
		Links:        MarkActive(currentPath, links),
	})
}
