package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickAdvancesByOne(t *testing.T) {
	c := New(1)
	assert.EqualValues(t, 0, c.Now())
	assert.EqualValues(t, 1, c.Tick())
	assert.EqualValues(t, 2, c.Tick())
	assert.EqualValues(t, 2, c.Now())
}

func TestNextSerialMonotonic(t *testing.T) {
	c := New(1)
	first := c.NextSerial()
	second := c.NextSerial()
	assert.Less(t, first, second)
}

func TestNarIDStableWithinContext(t *testing.T) {
	c := New(42)
	id1 := c.NarID()
	id2 := c.NarID()
	assert.Equal(t, id1, id2)
}
