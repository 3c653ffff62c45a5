// Package numeric provides the fixed-precision [0,1] value type used
// throughout the reasoning core for frequency, confidence, priority,
// durability and quality, plus the probabilistic combinators over it.
package numeric

import "fmt"

// scale is the fixed-point precision: 4 decimal digits.
const scale = 10000

// ShortFloat is a value in [0,1] stored with 4-digit fixed-point precision.
type ShortFloat struct {
	v int32 // v/scale is the represented value
}

// New constructs a ShortFloat from a float64 in [0,1]. It returns an error
// (never a silently clamped value) when the input is out of range, per
// spec §7 "invalid numeric range".
func New(value float64) (ShortFloat, error) {
	if value < 0 || value > 1 {
		return ShortFloat{}, fmt.Errorf("shortfloat: value %f out of range [0,1]", value)
	}
	return ShortFloat{v: int32(value*scale + 0.5)}, nil
}

// Clamp constructs a ShortFloat from a float64, clamping out-of-range
// inputs into [0,1]. Callers that must never fail (e.g. internal truth
// arithmetic where accumulated rounding can nudge a value a hair outside
// the interval) use this instead of New.
func Clamp(value float64) ShortFloat {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	return ShortFloat{v: int32(value*scale + 0.5)}
}

// Value returns the float64 representation.
func (s ShortFloat) Value() float64 {
	return float64(s.v) / scale
}

// String implements fmt.Stringer, printing with 4-digit precision.
func (s ShortFloat) String() string {
	return fmt.Sprintf("%.4f", s.Value())
}

// ProbOR computes the probabilistic OR (noisy-or) of two values:
// a ∨ b = 1 - (1-a)(1-b). Commutative and monotone: probOR(a,b) ≥ max(a,b).
func ProbOR(a, b ShortFloat) ShortFloat {
	av, bv := a.Value(), b.Value()
	return Clamp(1 - (1-av)*(1-bv))
}

// ProbAND computes the probabilistic AND (product) of two values.
func ProbAND(a, b ShortFloat) ShortFloat {
	return Clamp(a.Value() * b.Value())
}

// Average computes the arithmetic mean of two values.
func Average(a, b ShortFloat) ShortFloat {
	return Clamp((a.Value() + b.Value()) / 2)
}

// Max returns the larger of two values.
func Max(a, b ShortFloat) ShortFloat {
	if a.Value() >= b.Value() {
		return a
	}
	return b
}
