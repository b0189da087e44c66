// Package slider is the range-slider engine: it ties the geometry mapper,
// the value store and the drag session together behind the operations a
// host UI calls.
//
// An Engine is not safe for concurrent use. Hosts call it from their single
// UI loop (bubbletea's Update in this module).
package slider

import (
	"github.com/Dicklesworthstone/rangeslider/pkg/geometry"
	"github.com/Dicklesworthstone/rangeslider/pkg/model"
	"github.com/Dicklesworthstone/rangeslider/pkg/session"
	"github.com/Dicklesworthstone/rangeslider/pkg/store"
)

// Config is the caller-supplied configuration surface
type Config struct {
	Min  float64
	Max  float64
	Step float64

	// Value makes the slider controlled: the caller owns the value and must
	// pass the accepted value back through Configure. nil means uncontrolled.
	Value *model.Value
	// DefaultValue seeds an uncontrolled slider. nil means Min, or
	// [Min, Max] in range mode.
	DefaultValue *model.Value

	Range       bool
	Orientation model.Orientation
	Disabled    bool

	// OnChange is called with every committed value, continuously during
	// a drag.
	OnChange func(model.Value)
}

// Domain returns the configured range
func (c Config) Domain() model.Range {
	return model.Range{Min: c.Min, Max: c.Max, Step: c.Step}
}

// Engine is one slider instance
type Engine struct {
	cfg     Config
	rng     model.Range
	surface session.Surface
	store   *store.Store
	active  *session.Session
}

// New creates an engine bound to a host surface
func New(surface session.Surface, cfg Config) *Engine {
	rng := cfg.Domain().Normalize()
	initial := store.Default(rng, cfg.Range)
	if cfg.DefaultValue != nil {
		initial = *cfg.DefaultValue
	}
	e := &Engine{
		cfg:     cfg,
		rng:     rng,
		surface: surface,
	}
	e.store = store.New(rng, cfg.Range, initial, e.emit)
	e.store.Reconcile(cfg.Value)
	return e
}

// Configure applies new props, as a re-render would. The controlled value
// is reconciled, range and mode changes re-sanitize the held value, and
// disabling the slider ends any drag in progress.
func (e *Engine) Configure(cfg Config) {
	rng := cfg.Domain().Normalize()
	if rng != e.rng || cfg.Range != e.cfg.Range {
		if cfg.Range != e.cfg.Range {
			e.endSession()
		}
		e.store.Reconfigure(rng, cfg.Range)
	}
	if cfg.Disabled {
		e.endSession()
	}
	e.cfg = cfg
	e.rng = rng
	e.store.Reconcile(cfg.Value)
}

// Config returns the current configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Domain returns the normalized range in use
func (e *Engine) Domain() model.Range {
	return e.rng
}

// OnThumbPointerDown starts a drag on thumb. It is ignored while disabled,
// while another drag is live, or for a thumb index the mode does not have.
func (e *Engine) OnThumbPointerDown(thumb int, _ geometry.Point) bool {
	if e.cfg.Disabled || e.active.Active() {
		return false
	}
	if thumb < 0 || thumb >= e.thumbCount() {
		return false
	}
	e.active = session.Begin(e.surface, thumb, e.handleMove, e.handleEnd)
	return true
}

// OnTrackPointerDown commits the value under p immediately. Only single
// mode supports it: with two thumbs it is ambiguous which one should move.
func (e *Engine) OnTrackPointerDown(p geometry.Point) bool {
	if e.cfg.Disabled || e.cfg.Range || e.active.Active() {
		return false
	}
	track, ok := e.surface.TrackRect()
	if !ok {
		return false
	}
	raw := geometry.PositionToValue(p, track, e.cfg.Orientation, e.rng)
	return e.store.Commit(e.store.Propose(0, raw))
}

// Nudge moves thumb by steps (negative moves down) and commits the result.
func (e *Engine) Nudge(thumb, steps int) bool {
	if e.cfg.Disabled || steps == 0 {
		return false
	}
	if thumb < 0 || thumb >= e.thumbCount() {
		return false
	}
	cur := e.store.Value().Thumb(thumb)
	raw := geometry.StepFrom(cur, steps, e.rng)
	return e.store.Commit(e.store.Propose(thumb, raw))
}

// Set commits a typed-in value. Each thumb snaps to the step grid and the
// pair is sanitized the same way a controlled value is.
func (e *Engine) Set(v model.Value) bool {
	if e.cfg.Disabled {
		return false
	}
	if v.IsPair() {
		v = model.Pair(geometry.Quantize(v.Low(), e.rng), geometry.Quantize(v.High(), e.rng))
	} else {
		v = model.Scalar(geometry.Quantize(v.Low(), e.rng))
	}
	return e.store.Commit(v)
}

// CurrentValue returns the value to render
func (e *Engine) CurrentValue() model.Value {
	return e.store.Value()
}

// CurrentPositions returns one percentage per thumb
func (e *Engine) CurrentPositions() []float64 {
	thumbs := e.store.Value().Thumbs()
	out := make([]float64, len(thumbs))
	for i, v := range thumbs {
		out[i] = geometry.ValueToPosition(v, e.rng)
	}
	return out
}

// State returns the drag state
func (e *Engine) State() session.State {
	return e.active.State()
}

// ActiveThumb returns the dragged thumb or session.NoThumb
func (e *Engine) ActiveThumb() int {
	return e.active.Thumb()
}

// Controlled reports whether the caller owns the value
func (e *Engine) Controlled() bool {
	return e.store.Controlled()
}

// Close ends any drag in progress. Hosts call it when the slider goes away.
func (e *Engine) Close() {
	e.endSession()
}

func (e *Engine) thumbCount() int {
	if e.cfg.Range {
		return 2
	}
	return 1
}

func (e *Engine) handleMove(thumb int, p geometry.Point, track geometry.Rect) {
	if e.cfg.Disabled {
		return
	}
	raw := geometry.PositionToValue(p, track, e.cfg.Orientation, e.rng)
	e.store.Commit(e.store.Propose(thumb, raw))
}

func (e *Engine) handleEnd() {
	e.active = nil
}

func (e *Engine) endSession() {
	if e.active != nil {
		e.active.End()
	}
	e.active = nil
}

func (e *Engine) emit(v model.Value) {
	if e.cfg.OnChange != nil {
		e.cfg.OnChange(v)
	}
}
