// Package store holds the current value of a slider.
//
// A Store is either uncontrolled (it owns the value) or controlled (the
// caller owns the value and passes it in through Reconcile before every
// render). Both modes share one code path: reads always go through the
// reconciled value.
//
// Controlled mode caveat: Commit still proposes values to the change
// callback, but the displayed value stays whatever the caller last passed
// to Reconcile. A caller whose callback does not feed the proposal back
// will see the thumb snap back after every move.
package store

import (
	"github.com/Dicklesworthstone/rangeslider/pkg/model"
)

// ChangeFunc receives every committed value
type ChangeFunc func(model.Value)

// Store holds a scalar or pair value inside a range
type Store struct {
	rng        model.Range
	pair       bool
	internal   model.Value
	controlled *model.Value
	onChange   ChangeFunc
}

// New creates a store. initial is sanitized into the range; pair selects
// range mode. onChange may be nil.
func New(rng model.Range, pair bool, initial model.Value, onChange ChangeFunc) *Store {
	s := &Store{
		rng:      rng.Normalize(),
		pair:     pair,
		onChange: onChange,
	}
	s.internal = s.Sanitize(initial)
	return s
}

// Range returns the normalized range
func (s *Store) Range() model.Range {
	return s.rng
}

// IsPair reports range mode
func (s *Store) IsPair() bool {
	return s.pair
}

// Controlled reports whether the value is externally owned
func (s *Store) Controlled() bool {
	return s.controlled != nil
}

// Reconfigure changes the range and mode, re-sanitizing the held values.
func (s *Store) Reconfigure(rng model.Range, pair bool) {
	s.rng = rng.Normalize()
	s.pair = pair
	s.internal = s.Sanitize(s.internal)
	if s.controlled != nil {
		v := s.Sanitize(*s.controlled)
		s.controlled = &v
	}
}

// Reconcile sets the externally owned value. nil switches back to
// uncontrolled mode, keeping the last internal value.
func (s *Store) Reconcile(controlled *model.Value) {
	if controlled == nil {
		s.controlled = nil
		return
	}
	v := s.Sanitize(*controlled)
	s.controlled = &v
}

// Value returns the displayed value: the controlled value when set,
// otherwise the internal one.
func (s *Store) Value() model.Value {
	if s.controlled != nil {
		return *s.controlled
	}
	return s.internal
}

// SetValue sanitizes v and stores it as the internal value
func (s *Store) SetValue(v model.Value) model.Value {
	s.internal = s.Sanitize(v)
	return s.internal
}

// Commit stores v like SetValue and reports it to the change callback when
// it differs from the displayed value. Returns whether the callback fired.
func (s *Store) Commit(v model.Value) bool {
	prev := s.Value()
	next := s.SetValue(v)
	if next == prev {
		return false
	}
	if s.onChange != nil {
		s.onChange(next)
	}
	return true
}

// Propose computes the value that results from moving thumb i to raw,
// without storing it. The raw value is clamped into the range; in range
// mode a thumb is pinned to the other thumb instead of crossing it.
func (s *Store) Propose(thumb int, raw float64) model.Value {
	cur := s.Value()
	x := s.rng.Clamp(raw)
	if !s.pair {
		return model.Scalar(x)
	}
	if thumb == 1 {
		if x < cur.Low() {
			x = cur.Low()
		}
		return model.Pair(cur.Low(), x)
	}
	if x > cur.High() {
		x = cur.High()
	}
	return model.Pair(x, cur.High())
}

// Sanitize coerces v into the store's mode and range. A scalar in range
// mode becomes [v, v]; a pair in single mode becomes its low end. A
// reversed pair is reordered.
func (s *Store) Sanitize(v model.Value) model.Value {
	if !s.pair {
		return model.Scalar(s.rng.Clamp(v.Low()))
	}
	lo, hi := s.rng.Clamp(v.Low()), s.rng.Clamp(v.High())
	if lo > hi {
		lo, hi = hi, lo
	}
	return model.Pair(lo, hi)
}

// Default returns the uncontrolled starting value for a range: Min for a
// single thumb, [Min, Max] for a pair.
func Default(rng model.Range, pair bool) model.Value {
	rng = rng.Normalize()
	if pair {
		return model.Pair(rng.Min, rng.Max)
	}
	return model.Scalar(rng.Min)
}
