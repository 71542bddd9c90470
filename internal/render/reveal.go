package render

import (
	"sync"
	"time"
)

// RevealThreshold is the visible fraction at which an element animates in.
const RevealThreshold = 0.1

// AnimationStagger separates the fade-in of consecutive elements.
const AnimationStagger = 100 * time.Millisecond

// AnimationDelays returns the staggered fade-in delay for n elements.
func AnimationDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = time.Duration(i) * AnimationStagger
	}
	return out
}

// Reveal tracks scroll-triggered animation. Elements are observed until they
// first become visible enough, then get the "animated" class and are no
// longer observed.
type Reveal struct {
	mu       sync.Mutex
	observed map[string]bool
	animated map[string]bool
}

// NewReveal observes the given element ids.
func NewReveal(ids ...string) *Reveal {
	r := &Reveal{
		observed: make(map[string]bool),
		animated: make(map[string]bool),
	}
	for _, id := range ids {
		r.observed[id] = true
	}
	return r
}

// Intersect records that id is visible at ratio. It reports whether the
// element animated as a result.
func (r *Reveal) Intersect(id string, ratio float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.observed[id] || ratio < RevealThreshold {
		return false
	}
	delete(r.observed, id)
	r.animated[id] = true
	return true
}

// RevealAll animates every observed element at once. It is the fallback when
// visibility cannot be tracked.
func (r *Reveal) RevealAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.observed)
	for id := range r.observed {
		r.animated[id] = true
	}
	r.observed = make(map[string]bool)
	return n
}

// Observing returns how many elements are still waiting to animate.
func (r *Reveal) Observing() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.observed)
}

// Class returns the class attribute for id.
func (r *Reveal) Class(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.animated[id] {
		return "animate-on-scroll animated"
	}
	return "animate-on-scroll"
}
