package render

import "strings"

// NavLink is one navigation entry.
type NavLink struct {
	Href   string
	Label  string
	Active bool
}

// Class returns the class attribute for the link.
func (l NavLink) Class() string {
	if l.Active {
		return "nav-link active"
	}
	return "nav-link"
}

// IsActiveLink reports whether href should be highlighted for currentPath:
// an exact match, or a path prefix for any href other than the site root.
// An empty href is never active.
func IsActiveLink(currentPath, href string) bool {
	if href == "" {
		return false
	}
	if currentPath == href {
		return true
	}
	return href != "/" && strings.HasPrefix(currentPath, href)
}

// MarkActive returns a copy of links with Active set for currentPath.
func MarkActive(currentPath string, links []NavLink) []NavLink {
	out := make([]NavLink, len(links))
	for i, l := range links {
		l.Active = IsActiveLink(currentPath, l.Href)
		out[i] = l
	}
	return out
}
