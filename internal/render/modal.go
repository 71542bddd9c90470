package render

import (
	"sort"
	"sync"
)

// Modal event names, dispatched when a modal changes visibility.
const (
	EventModalOpen  = "modal:open"
	EventModalClose = "modal:close"
)

// BodyClassModalOpen is applied to the page body while any modal is open.
const BodyClassModalOpen = "modal-open"

// ModalEvent reports a visibility change.
type ModalEvent struct {
	ID   string
	Name string // EventModalOpen or EventModalClose
}

// Modals tracks which registered modals are open. Unknown ids are ignored.
type Modals struct {
	mu       sync.Mutex
	known    map[string]bool
	open     map[string]bool
	onChange func(ModalEvent)
}

// NewModals registers the given modal ids, all initially closed.
func NewModals(ids ...string) *Modals {
	m := &Modals{
		known: make(map[string]bool),
		open:  make(map[string]bool),
	}
	for _, id := range ids {
		m.known[id] = true
	}
	return m
}

// OnChange sets a callback invoked after every visibility change.
func (m *Modals) OnChange(fn func(ModalEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Register adds a modal id.
func (m *Modals) Register(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.known[id] = true
}

// Open shows a modal. It reports whether the state changed.
func (m *Modals) Open(id string) bool {
	return m.set(id, true)
}

// Close hides a modal. It reports whether the state changed.
func (m *Modals) Close(id string) bool {
	return m.set(id, false)
}

// IsOpen reports whether the modal is open.
func (m *Modals) IsOpen(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open[id]
}

// OpenIDs returns the open modal ids, sorted.
func (m *Modals) OpenIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.open))
	for id := range m.open {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BodyClass returns BodyClassModalOpen while any modal is open.
func (m *Modals) BodyClass() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.open) > 0 {
		return BodyClassModalOpen
	}
	return ""
}

// Display returns the CSS display value for the modal.
func (m *Modals) Display(id string) string {
	if m.IsOpen(id) {
		return "block"
	}
	return "none"
}

func (m *Modals) set(id string, open bool) bool {
	m.mu.Lock()
	if !m.known[id] || m.open[id] == open {
		m.mu.Unlock()
		return false
	}
	if open {
		m.open[id] = true
	} else {
		delete(m.open, id)
	}
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		name := EventModalClose
		if open {
			name = EventModalOpen
		}
		fn(ModalEvent{ID: id, Name: name})
	}
	return true
}
