// Package session tracks a single pointer drag on a slider thumb.
//
// A Session subscribes to the host's global pointer events when it begins
// and releases that subscription on pointer-up or when End is called,
// whichever comes first. The track rectangle is captured once at press so
// moves never re-query layout.
package session

import (
	"github.com/Dicklesworthstone/rangeslider/pkg/geometry"
)

// State is the drag lifecycle state
type State int

const (
	Idle State = iota
	Pressed
	Dragging
)

// String returns a human-readable state name
func (s State) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// NoThumb marks the absence of an active thumb
const NoThumb = -1

// MoveFunc is called for every pointer move while the session is live
type MoveFunc func(thumb int, p geometry.Point, track geometry.Rect)

// Session is one press-drag-release interaction
type Session struct {
	surface  Surface
	sub      Subscription
	thumb    int
	track    geometry.Rect
	hasTrack bool
	state    State
	onMove   MoveFunc
	onEnd    func()
}

// Begin starts a session for thumb on the given surface. onMove and onEnd
// may be nil. The returned session is in the Pressed state.
func Begin(surface Surface, thumb int, onMove MoveFunc, onEnd func()) *Session {
	s := &Session{
		surface: surface,
		thumb:   thumb,
		state:   Pressed,
		onMove:  onMove,
		onEnd:   onEnd,
	}
	s.track, s.hasTrack = surface.TrackRect()
	s.sub = surface.Subscribe(Listener{
		Move: s.handleMove,
		Up:   s.handleUp,
	})
	return s
}

// State returns the current lifecycle state
func (s *Session) State() State {
	if s == nil {
		return Idle
	}
	return s.state
}

// Active reports whether the session has not ended
func (s *Session) Active() bool {
	return s != nil && s.state != Idle
}

// Thumb returns the dragged thumb index, or NoThumb once ended
func (s *Session) Thumb() int {
	if !s.Active() {
		return NoThumb
	}
	return s.thumb
}

// Track returns the rectangle captured for this session
func (s *Session) Track() (geometry.Rect, bool) {
	return s.track, s.hasTrack
}

// End releases the subscription and returns to Idle. Safe to call more
// than once; onEnd fires only the first time.
func (s *Session) End() {
	if !s.Active() {
		return
	}
	s.state = Idle
	if s.sub != nil {
		s.sub.Release()
		s.sub = nil
	}
	if s.onEnd != nil {
		s.onEnd()
	}
}

func (s *Session) handleMove(p geometry.Point) {
	if !s.Active() {
		return
	}
	if !s.hasTrack {
		// Track was not mounted at press; try again this frame.
		s.track, s.hasTrack = s.surface.TrackRect()
		if !s.hasTrack {
			return
		}
	}
	s.state = Dragging
	if s.onMove != nil {
		s.onMove(s.thumb, p, s.track)
	}
}

func (s *Session) handleUp(geometry.Point) {
	s.End()
}
