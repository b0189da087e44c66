// Package geometry maps pointer coordinates on a slider track to domain
// values and back. Everything here is a pure function.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Dicklesworthstone/rangeslider/pkg/model"
)

// Point is a pointer coordinate in host (document) space
type Point struct {
	X float64
	Y float64
}

// Rect is the bounding rectangle of a track in host space
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside the rectangle (edges inclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Fraction projects p onto the primary axis of the track and returns the
// normalized position in [0,1]. The pointer may be outside the track during
// a drag, so the result is clamped. Vertical tracks are inverted: the low
// end is at the bottom.
func Fraction(p Point, track Rect, o model.Orientation) float64 {
	var f float64
	switch o {
	case model.Vertical:
		if track.Height <= 0 {
			return 0
		}
		f = 1 - (p.Y-track.Y)/track.Height
	default:
		if track.Width <= 0 {
			return 0
		}
		f = (p.X - track.X) / track.Width
	}
	return clampUnit(f)
}

// ValueAt interpolates a fraction into the range and quantizes it
func ValueAt(fraction float64, r model.Range) float64 {
	r = r.Normalize()
	raw := r.Min + clampUnit(fraction)*r.Span()
	return Quantize(raw, r)
}

// PositionToValue maps a pointer coordinate to a quantized domain value
func PositionToValue(p Point, track Rect, o model.Orientation, r model.Range) float64 {
	return ValueAt(Fraction(p, track, o), r)
}

// ValueToPosition returns the percentage (0..100) of v along the range.
// It is not clamped; callers rendering out-of-domain values get positions
// outside the track.
func ValueToPosition(v float64, r model.Range) float64 {
	r = r.Normalize()
	return (v - r.Min) / r.Span() * 100
}

// Quantize snaps raw to the nearest Min + k*Step and clamps the result to
// [Min, Max]. When the span is not a multiple of Step, Max is an extra snap
// point: values past the last full step snap to whichever of the two is
// closer, and nothing overshoots Max.
func Quantize(raw float64, r model.Range) float64 {
	r = r.Normalize()
	if math.IsNaN(raw) {
		return r.Min
	}
	raw = r.Clamp(raw)
	k := math.Round((raw - r.Min) / r.Step)
	q := model.RoundTo(r.Min+k*r.Step, precision(r))
	if q >= r.Max || r.Max-raw < math.Abs(raw-q) {
		return r.Max
	}
	return r.Clamp(q)
}

// StepFrom moves v by whole steps along the grid Min + k*Step. A value
// between grid points (such as an uneven Max) first moves to the adjacent
// grid point in the direction of travel.
func StepFrom(v float64, steps int, r model.Range) float64 {
	r = r.Normalize()
	const slack = 1e-9
	idx := (r.Clamp(v) - r.Min) / r.Step
	var k float64
	switch {
	case steps > 0:
		k = math.Floor(idx+slack) + float64(steps)
	case steps < 0:
		k = math.Ceil(idx-slack) + float64(steps)
	default:
		return Quantize(v, r)
	}
	target := r.Min + k*r.Step
	if target >= r.Max {
		return r.Max
	}
	if target <= r.Min {
		return r.Min
	}
	return model.RoundTo(target, precision(r))
}

// Ticks returns n evenly spaced quantized values covering the range,
// always including Min and Max. n below 2 yields both endpoints.
func Ticks(r model.Range, n int) []float64 {
	r = r.Normalize()
	if n < 2 {
		n = 2
	}
	ticks := floats.Span(make([]float64, n), r.Min, r.Max)
	for i := range ticks {
		ticks[i] = Quantize(ticks[i], r)
	}
	return ticks
}

// precision is the number of decimals a quantized value can carry
func precision(r model.Range) int {
	d := model.Decimals(r.Step)
	if md := model.Decimals(r.Min); md > d {
		d = md
	}
	return d
}

func clampUnit(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
