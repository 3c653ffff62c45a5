package truth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectationMidpointAtHalfConfidence(t *testing.T) {
	v, err := New(1.0, 0.5, DefaultHorizon)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, v.Expectation(), 1e-9)
}

func TestWeightRoundTripsThroughFromWeights(t *testing.T) {
	v, err := New(0.9, 0.9, DefaultHorizon)
	require.NoError(t, err)
	wp := v.WeightPositive()
	w := v.Weight()
	back := FromWeights(wp, w, DefaultHorizon)
	assert.InDelta(t, v.Frequency.Value(), back.Frequency.Value(), 1e-6)
	assert.InDelta(t, v.Confidence.Value(), back.Confidence.Value(), 1e-6)
}

func TestRevisionOfIdenticalBeliefsRaisesConfidence(t *testing.T) {
	v1, _ := New(1.0, 0.9, DefaultHorizon)
	v2, _ := New(1.0, 0.9, DefaultHorizon)
	merged := Revision(v1, v2)
	assert.Greater(t, merged.Confidence.Value(), v1.Confidence.Value())
	assert.InDelta(t, 1.0, merged.Frequency.Value(), 1e-6)
}

func TestRevisionOfConflictingBeliefsPullsFrequencyToMiddle(t *testing.T) {
	v1, _ := New(1.0, 0.9, DefaultHorizon)
	v2, _ := New(0.0, 0.9, DefaultHorizon)
	merged := Revision(v1, v2)
	assert.InDelta(t, 0.5, merged.Frequency.Value(), 1e-6)
}

func TestEternalizeReducesConfidenceMonotonically(t *testing.T) {
	v, _ := New(0.8, 0.9, DefaultHorizon)
	eternal := Eternalize(v)
	assert.Less(t, eternal.Confidence.Value(), v.Confidence.Value())
	assert.Equal(t, v.Frequency.Value(), eternal.Frequency.Value())
}

func TestProjectionAtSourceTimeIsIdentity(t *testing.T) {
	v, _ := New(0.8, 0.9, DefaultHorizon)
	projected := Projection(v, 10, 10, 10)
	assert.InDelta(t, v.Confidence.Value(), projected.Confidence.Value(), 1e-9)
}

func TestProjectionDecaysConfidenceWithDistance(t *testing.T) {
	v, _ := New(0.8, 0.9, DefaultHorizon)
	near := Projection(v, 0, 0, 1)
	far := Projection(v, 0, 0, 100)
	assert.Greater(t, near.Confidence.Value(), far.Confidence.Value())
}

func TestToQualityFavorsHighExpectation(t *testing.T) {
	strong, _ := New(1.0, 0.9, DefaultHorizon)
	weak, _ := New(0.5, 0.1, DefaultHorizon)
	assert.Greater(t, ToQuality(strong), ToQuality(weak))
}

func TestWeightPositiveInfiniteAtFullConfidence(t *testing.T) {
	v, _ := New(1.0, 1.0, DefaultHorizon)
	assert.True(t, math.IsInf(v.WeightPositive(), 1))
}
