package render

import "strconv"

// BodyClassMenuOpen is applied to the page body while the mobile menu is open.
const BodyClassMenuOpen = "menu-open"

// Menu is the mobile navigation toggle. The zero value is closed.
// It is not safe for concurrent use.
type Menu struct {
	active bool
}

// Toggle flips the menu and returns the new state.
func (m *Menu) Toggle() bool {
	m.active = !m.active
	return m.active
}

// ClickOutside closes the menu in response to a click outside both the menu
// and its toggle. It reports whether the menu was open.
func (m *Menu) ClickOutside() bool {
	if !m.active {
		return false
	}
	m.active = false
	return true
}

// Active reports whether the menu is open.
func (m *Menu) Active() bool {
	return m.active
}

// AriaExpanded returns the aria-expanded value for the toggle button.
func (m *Menu) AriaExpanded() string {
	return strconv.FormatBool(m.active)
}

// NavClass returns the class attribute for the nav element.
func (m *Menu) NavClass() string {
	if m.active {
		return "main-nav active"
	}
	return "main-nav"
}

// BodyClass returns BodyClassMenuOpen while the menu is open.
func (m *Menu) BodyClass() string {
	if m.active {
		return BodyClassMenuOpen
	}
	return ""
}
