package overlay

import (
	"sync"

	"github.com/tagnology/embed-go/internal/shared/types"
)

// jitterTolerance is the per-field change below which a new rectangle is
// considered equal to the last published one.
const jitterTolerance = 1.0

// Tracker remembers the last published rectangle for one widget and
// filters out float-jitter updates.
type Tracker struct {
	mu        sync.Mutex
	last      types.Rect
	published bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Publish records the rectangle and reports whether downstream consumers
// should be notified. The first rectangle always publishes; later ones
// publish only when some field moved by more than one unit.
func (t *Tracker) Publish(rect types.Rect) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.published && rect.Within(t.last, jitterTolerance) {
		return false
	}
	t.last = rect
	t.published = true
	return true
}

// Last returns the most recently published rectangle.
func (t *Tracker) Last() (types.Rect, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.published
}

// Reset forgets the published rectangle so the next Publish always fires.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = types.Rect{}
	t.published = false
}
