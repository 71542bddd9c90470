package alert

import (
	"sync"

	"github.com/jmylchreest/elevateui/internal/model"
)

// Container holds the alerts currently visible in one named region, in the
// order they were shown.
type Container struct {
	id string

	mu     sync.RWMutex
	alerts []*model.Alert
}

// ID returns the container identifier.
func (c *Container) ID() string {
	return c.id
}

// Alerts returns a snapshot of the visible alerts, oldest first.
func (c *Container) Alerts() []model.Alert {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Alert, len(c.alerts))
	for i, a := range c.alerts {
		out[i] = *a
	}
	return out
}

// Len returns the number of visible alerts.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.alerts)
}

// Contains reports whether the alert is still in the container.
func (c *Container) Contains(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexLocked(id) >= 0
}

func (c *Container) append(a *model.Alert) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append(c.alerts, a)
}

// remove takes the alert out of the container. It returns false when the
// alert is no longer present.
func (c *Container) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexLocked(id)
	if idx < 0 {
		return false
	}
	c.alerts = append(c.alerts[:idx], c.alerts[idx+1:]...)
	return true
}

func (c *Container) ids() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, len(c.alerts))
	for i, a := range c.alerts {
		ids[i] = a.ID
	}
	return ids
}

func (c *Container) indexLocked(id string) int {
	for i, a := range c.alerts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Registry maps container identifiers to containers. Containers are
// created lazily on first use and live until Reset.
type Registry struct {
	mu         sync.Mutex
	containers map[string]*Container
	order      []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		containers: make(map[string]*Container),
	}
}

// Container returns the container for id, creating it if it does not exist.
func (r *Registry) Container(id string) *Container {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.containers[id]; ok {
		return c
	}
	c := &Container{id: id}
	r.containers[id] = c
	r.order = append(r.order, id)
	return c
}

// Lookup returns the container for id without creating it.
func (r *Registry) Lookup(id string) (*Container, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.containers[id]
	return c, ok
}

// IDs returns container identifiers in creation order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of containers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.containers)
}

// Reset forgets every container.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.containers = make(map[string]*Container)
	r.order = nil
}
