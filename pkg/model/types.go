package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidRange is returned when a range violates Min < Max or Step > 0.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidOrientation is returned for an unknown orientation name.
	ErrInvalidOrientation = errors.New("invalid orientation")
)

// Orientation selects which pointer axis drives the value
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the config name of the orientation
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	default:
		return "horizontal"
	}
}

// ParseOrientation parses "horizontal" / "vertical" (case-insensitive).
// An empty string means horizontal.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	default:
		return Horizontal, fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (o *Orientation) UnmarshalText(text []byte) error {
	parsed, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// Range is the value domain of a slider
type Range struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// Validate reports whether the range has finite bounds with Min < Max and
// Step > 0.
func (r Range) Validate() error {
	if !finite(r.Min) || !finite(r.Max) || !finite(r.Step) {
		return fmt.Errorf("%w: min, max and step must be finite, got %v, %v, %v", ErrInvalidRange, r.Min, r.Max, r.Step)
	}
	if r.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %v", ErrInvalidRange, r.Step)
	}
	if r.Min >= r.Max {
		return fmt.Errorf("%w: min (%v) must be less than max (%v)", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Normalize returns a range that always satisfies Validate. A non-positive
// or non-finite step becomes 1 and a non-finite Min becomes 0. A span that
// is empty or unbounded is widened to one step.
func (r Range) Normalize() Range {
	if !finite(r.Step) || r.Step <= 0 {
		r.Step = 1
	}
	if !finite(r.Min) {
		r.Min = 0
	}
	if !finite(r.Max) || r.Max <= r.Min {
		r.Max = r.Min + r.Step
	}
	return r
}

// Span returns Max - Min
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Clamp limits v to [Min, Max]. NaN maps to Min.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) || v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Value is either a single number or an ordered [Low, High] pair.
// The zero Value is the scalar 0.
type Value struct {
	low  float64
	high float64
	pair bool
}

// Scalar creates a single-thumb value
func Scalar(v float64) Value {
	return Value{low: v, high: v}
}

// Pair creates a two-thumb value. The arguments are stored as given;
// ordering is enforced by the value store, not here.
func Pair(low, high float64) Value {
	return Value{low: low, high: high, pair: true}
}

// IsPair returns true for range-mode values
func (v Value) IsPair() bool { return v.pair }

// Scalar returns the single value (the low end for pairs)
func (v Value) Scalar() float64 { return v.low }

// Low returns the low end
func (v Value) Low() float64 { return v.low }

// High returns the high end (equal to Low for scalars)
func (v Value) High() float64 { return v.high }

// Thumbs returns one entry per thumb: [v] or [low, high].
func (v Value) Thumbs() []float64 {
	if v.pair {
		return []float64{v.low, v.high}
	}
	return []float64{v.low}
}

// Thumb returns the value of thumb i. Index 1 on a scalar returns the scalar.
func (v Value) Thumb(i int) float64 {
	if i == 1 {
		return v.high
	}
	return v.low
}

// WithThumb returns a copy with thumb i replaced
func (v Value) WithThumb(i int, x float64) Value {
	if !v.pair {
		return Scalar(x)
	}
	if i == 1 {
		v.high = x
	} else {
		v.low = x
	}
	return v
}

// String formats the value as "v" or "[lo, hi]"
func (v Value) String() string {
	if v.pair {
		return fmt.Sprintf("[%s, %s]", FormatNumber(v.low), FormatNumber(v.high))
	}
	return FormatNumber(v.low)
}

// ValueFromSlice builds a Value from a config list: one element is a
// scalar, two or more elements are a pair of the first two.
func ValueFromSlice(vals []float64) (Value, bool) {
	switch len(vals) {
	case 0:
		return Value{}, false
	case 1:
		return Scalar(vals[0]), true
	default:
		return Pair(vals[0], vals[1]), true
	}
}
