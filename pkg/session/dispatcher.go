package session

import (
	"github.com/Dicklesworthstone/rangeslider/pkg/geometry"
)

// Listener receives document-level pointer events. Either func may be nil.
type Listener struct {
	Move func(geometry.Point)
	Up   func(geometry.Point)
}

// Subscription is a removable listener registration
type Subscription interface {
	Release()
}

// Surface is what a host provides to the engine: the current track
// geometry and a place to subscribe for global pointer events.
type Surface interface {
	// TrackRect returns the track bounds, or false if the track is not laid
	// out yet.
	TrackRect() (geometry.Rect, bool)
	// Subscribe registers l for every pointer move/up until released.
	Subscribe(l Listener) Subscription
}

type entry struct {
	id uint64
	l  Listener
}

// Dispatcher fans out host pointer events to subscribed listeners. Hosts
// forward every pointer move and release they see, wherever it happens, so
// a release outside the widget still reaches an active session.
type Dispatcher struct {
	entries []entry
	nextID  uint64
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers l and returns a handle that removes it
func (d *Dispatcher) Subscribe(l Listener) Subscription {
	d.nextID++
	d.entries = append(d.entries, entry{id: d.nextID, l: l})
	return &handle{id: d.nextID, d: d}
}

// Move delivers a pointer move to all listeners
func (d *Dispatcher) Move(p geometry.Point) {
	for _, e := range d.snapshot() {
		if e.l.Move != nil && d.live(e.id) {
			e.l.Move(p)
		}
	}
}

// Up delivers a pointer release to all listeners
func (d *Dispatcher) Up(p geometry.Point) {
	for _, e := range d.snapshot() {
		if e.l.Up != nil && d.live(e.id) {
			e.l.Up(p)
		}
	}
}

// Len returns the number of live subscriptions
func (d *Dispatcher) Len() int {
	return len(d.entries)
}

// snapshot copies the entries so listeners may release themselves while
// being called.
func (d *Dispatcher) snapshot() []entry {
	if len(d.entries) == 0 {
		return nil
	}
	out := make([]entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// live reports whether id has not been released during the current fan-out
func (d *Dispatcher) live(id uint64) bool {
	for i := range d.entries {
		if d.entries[i].id == id {
			return true
		}
	}
	return false
}

func (d *Dispatcher) remove(id uint64) {
	for i := range d.entries {
		if d.entries[i].id == id {
			copy(d.entries[i:], d.entries[i+1:])
			d.entries[len(d.entries)-1] = entry{}
			d.entries = d.entries[:len(d.entries)-1]
			return
		}
	}
}

type handle struct {
	id uint64
	d  *Dispatcher
}

// Release removes the listener. Safe to call more than once.
func (h *handle) Release() {
	if h.d == nil {
		return
	}
	h.d.remove(h.id)
	h.d = nil
}
