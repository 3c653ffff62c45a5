package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsOutOfRange(t *testing.T) {
	_, err := New(1.5)
	require.Error(t, err)

	_, err = New(-0.1)
	require.Error(t, err)

	v, err := New(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v.Value(), 1e-4)
}

func TestProbORCommutativeAndMonotone(t *testing.T) {
	a, _ := New(0.3)
	b, _ := New(0.7)

	ab := ProbOR(a, b)
	ba := ProbOR(b, a)
	assert.InDelta(t, ab.Value(), ba.Value(), 1e-4)
	assert.GreaterOrEqual(t, ab.Value()+1e-9, a.Value())
	assert.GreaterOrEqual(t, ab.Value()+1e-9, b.Value())
}

func TestProbORIdentities(t *testing.T) {
	zero, _ := New(0)
	one, _ := New(1)
	half, _ := New(0.5)

	assert.InDelta(t, half.Value(), ProbOR(half, zero).Value(), 1e-4)
	assert.InDelta(t, 1.0, ProbOR(half, one).Value(), 1e-4)
}
