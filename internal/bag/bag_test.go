package bag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nars-core/internal/budget"
)

func TestPutInThenPickOutRoundTrips(t *testing.T) {
	b := New[string](DefaultConfig(10))
	bud, err := budget.New(0.8, 0.5, 0.5)
	require.NoError(t, err)

	overflow, hadOverflow := b.PutIn("k1", "v1", bud)
	assert.False(t, hadOverflow)
	assert.Nil(t, overflow)

	e, ok := b.PickOut("k1")
	require.True(t, ok)
	assert.Equal(t, "v1", e.Value)
}

func TestPeekDoesNotRemove(t *testing.T) {
	b := New[string](DefaultConfig(10))
	bud, _ := budget.New(0.5, 0.5, 0.5)
	b.PutIn("k1", "v1", bud)

	_, ok := b.Peek("k1")
	require.True(t, ok)
	assert.Equal(t, 1, b.Len())
}

func TestCapacityOneRejectsLowerPriorityNewItem(t *testing.T) {
	b := New[string](DefaultConfig(1))
	high, _ := budget.New(0.9, 0.5, 0.5)
	low, _ := budget.New(0.1, 0.5, 0.5)

	b.PutIn("high", "high", high)
	overflow, hadOverflow := b.PutIn("low", "low", low)
	assert.True(t, hadOverflow)
	require.NotNil(t, overflow)
	assert.Equal(t, "low", overflow.Value)

	e, ok := b.Peek("high")
	require.True(t, ok)
	assert.Equal(t, "high", e.Value)
}

func TestCapacityOneAcceptsHigherPriorityAndEvictsPrevious(t *testing.T) {
	b := New[string](DefaultConfig(1))
	low, _ := budget.New(0.1, 0.5, 0.5)
	high, _ := budget.New(0.9, 0.5, 0.5)

	b.PutIn("low", "low", low)
	evicted, hadOverflow := b.PutIn("high", "high", high)
	assert.True(t, hadOverflow)
	require.NotNil(t, evicted)
	assert.Equal(t, "low", evicted.Value)

	_, ok := b.Peek("high")
	assert.True(t, ok)
}

func TestTakeOutOnEmptyBagReturnsFalse(t *testing.T) {
	b := New[string](DefaultConfig(10))
	_, ok := b.TakeOut()
	assert.False(t, ok)
}

func TestTakeOutEventuallyDrainsAllItems(t *testing.T) {
	b := New[string](DefaultConfig(100))
	for i := 0; i < 20; i++ {
		bud, _ := budget.New(0.5, 0.5, 0.5)
		b.PutIn(string(rune('a'+i)), string(rune('a'+i)), bud)
	}

	seen := map[string]bool{}
	for i := 0; i < 5000 && len(seen) < 20; i++ {
		e, ok := b.TakeOut()
		if !ok {
			break
		}
		seen[e.Key] = true
		bud, _ := budget.New(0.5, 0.5, 0.5)
		b.PutIn(e.Key, e.Value, bud)
	}
	assert.Len(t, seen, 20)
}

func TestMassTracksLevelPlusOnePerItem(t *testing.T) {
	b := New[string](DefaultConfig(10))
	bud, _ := budget.New(1.0, 0.5, 0.5)
	b.PutIn("k", "v", bud)
	assert.Equal(t, int64(TotalLevels), b.Mass())
}

func TestPutInMergesExistingKeyBudget(t *testing.T) {
	b := New[string](DefaultConfig(10))
	first, _ := budget.New(0.2, 0.3, 0.9)
	second, _ := budget.New(0.8, 0.1, 0.1)

	b.PutIn("k", "v1", first)
	b.PutIn("k", "v2", second)

	e, ok := b.Peek("k")
	require.True(t, ok)
	assert.InDelta(t, 0.8, e.Budget.Priority.Value(), 1e-6)
	assert.InDelta(t, 0.3, e.Budget.Durability.Value(), 1e-6)
	assert.InDelta(t, 0.9, e.Budget.Quality.Value(), 1e-6)
}
