// Package truth implements the Truth value and the truth functions of
// spec §3/§4.5: revision, eternalization, projection, expectation and the
// evidence-weight conversions.
package truth

import (
	"math"

	"nars-core/internal/numeric"
)

// DefaultHorizon is the default evidential horizon k (spec §3, k ∈ ℕ>0).
const DefaultHorizon = 1

// Epsilon guards divisions where confidence approaches 1.
const Epsilon = 1e-6

// Value is a (frequency, confidence) pair with an implicit evidential
// horizon k.
type Value struct {
	Frequency  numeric.ShortFloat
	Confidence numeric.ShortFloat
	Horizon    int
}

// New constructs a Truth value, defaulting the horizon to DefaultHorizon
// when k <= 0.
func New(f, c float64, k int) (Value, error) {
	freq, err := numeric.New(f)
	if err != nil {
		return Value{}, err
	}
	conf, err := numeric.New(c)
	if err != nil {
		return Value{}, err
	}
	if k <= 0 {
		k = DefaultHorizon
	}
	return Value{Frequency: freq, Confidence: conf, Horizon: k}, nil
}

// Expectation computes E = c*(f-0.5) + 0.5.
func (v Value) Expectation() float64 {
	c := v.Confidence.Value()
	f := v.Frequency.Value()
	return c*(f-0.5) + 0.5
}

// WeightPositive returns w+ = k*f*c/(1-c).
func (v Value) WeightPositive() float64 {
	c := v.Confidence.Value()
	if 1-c < Epsilon {
		return math.Inf(1)
	}
	return float64(v.Horizon) * v.Frequency.Value() * c / (1 - c)
}

// WeightNegative returns w- = k*(1-f)*c/(1-c).
func (v Value) WeightNegative() float64 {
	c := v.Confidence.Value()
	if 1-c < Epsilon {
		return math.Inf(1)
	}
	return float64(v.Horizon) * (1 - v.Frequency.Value()) * c / (1 - c)
}

// Weight returns the total evidence weight w = w+ + w-.
func (v Value) Weight() float64 {
	return v.WeightPositive() + v.WeightNegative()
}

// FromWeights is the inverse of the weight functions: given w+, w and a
// horizon k, recovers (f, c). f = w+/w (0.5 when w=0); c = w/(w+k) (0 when
// w=0).
func FromWeights(wPlus, w float64, k int) Value {
	var f, c float64
	if w <= 0 {
		f, c = 0.5, 0
	} else {
		f = wPlus / w
		c = w / (w + float64(k))
	}
	return Value{
		Frequency:  numeric.Clamp(f),
		Confidence: numeric.Clamp(c),
		Horizon:    k,
	}
}

// Revision combines two independent beliefs by evidence-weight addition
// (spec §4.5 revision): w+ = w+1+w+2, w = w1+w2, f=w+/w, c=w/(w+k).
func Revision(t1, t2 Value) Value {
	wPlus := t1.WeightPositive() + t2.WeightPositive()
	wNeg := t1.WeightNegative() + t2.WeightNegative()
	w := wPlus + wNeg
	k := t1.Horizon
	if k <= 0 {
		k = t2.Horizon
	}
	return FromWeights(wPlus, w, k)
}

// Eternalize moves a temporal truth to the atemporal layer: f unchanged,
// c ← c/(c+k).
func Eternalize(t Value) Value {
	c := t.Confidence.Value()
	k := float64(t.Horizon)
	newC := c / (c + k)
	return Value{
		Frequency:  t.Frequency,
		Confidence: numeric.Clamp(newC),
		Horizon:    t.Horizon,
	}
}

// Projection moves a temporal truth from sourceTime to targetTime as
// observed at currentTime (spec §4.5 projection).
func Projection(t Value, sourceTime, currentTime, targetTime int64) Value {
	v := math.Abs(float64(sourceTime - targetTime))

	lo, hi := sourceTime, targetTime
	if lo > hi {
		lo, hi = hi, lo
	}

	var s float64
	if currentTime >= lo && currentTime <= hi {
		s = 0.5
	} else {
		d1 := math.Abs(float64(sourceTime - currentTime))
		d2 := math.Abs(float64(targetTime - currentTime))
		s = math.Min(d1, d2)
	}

	c := t.Confidence.Value()
	newC := c * (2 * s / (2*s + v))
	return Value{
		Frequency:  t.Frequency,
		Confidence: numeric.Clamp(newC),
		Horizon:    t.Horizon,
	}
}

// ToQuality computes q = max(E, (1-E)*0.75), used as a belief's
// contribution to derived budget quality (spec §4.5 truth-to-quality).
func ToQuality(t Value) float64 {
	e := t.Expectation()
	return math.Max(e, (1-e)*0.75)
}
