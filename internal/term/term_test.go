package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomComplexityAndName(t *testing.T) {
	bird := NewAtom("bird")
	assert.Equal(t, "bird", bird.Name())
	assert.Equal(t, 1, bird.Complexity())
	assert.False(t, bird.HasVar(NoVar))
}

func TestVariableKinds(t *testing.T) {
	x := NewVariable(Independent, "x")
	assert.Equal(t, "$x", x.Name())
	assert.True(t, x.HasVar(Independent))
	assert.False(t, x.HasVar(Dependent))
}

func TestStatementEquality(t *testing.T) {
	bird := NewAtom("bird")
	fly := NewAtom("fly")
	s1 := NewStatement(bird, Inheritance, fly)
	s2 := NewStatement(NewAtom("bird"), Inheritance, NewAtom("fly"))
	assert.True(t, Equal(s1, s2))
	assert.Equal(t, "<bird --> fly>", s1.Name())
	assert.Equal(t, 3, s1.Complexity())
}

func TestCommutativeCompoundCanonicalizesOrder(t *testing.T) {
	a := NewAtom("a")
	b := NewAtom("b")
	c1 := NewCompound(Conjunction, a, b)
	c2 := NewCompound(Conjunction, b, a)
	assert.Equal(t, c1.Name(), c2.Name())
}

func TestCompoundArityPanicsOnViolation(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
	}()
	NewCompound(Negation, NewAtom("a"), NewAtom("b"))
}

func TestFindPathLocatesNestedSubterm(t *testing.T) {
	bird := NewAtom("bird")
	fly := NewAtom("fly")
	stmt := NewStatement(bird, Inheritance, fly)

	path, found := FindPath(bird, stmt)
	require.True(t, found)
	assert.Len(t, path, 2)
	assert.Equal(t, stmt.Name(), path[0].Name())
	assert.Equal(t, bird.Name(), path[1].Name())

	_, found = FindPath(NewAtom("cat"), stmt)
	assert.False(t, found)
}

func TestNegationDepth(t *testing.T) {
	a := NewAtom("a")
	n1 := NewCompound(Negation, a)
	n2 := NewCompound(Negation, n1)
	assert.Equal(t, 0, NegationDepth(a))
	assert.Equal(t, 1, NegationDepth(n1))
	assert.Equal(t, 2, NegationDepth(n2))
}

func TestDistinctSubtermsDeduplicates(t *testing.T) {
	bird := NewAtom("bird")
	stmt := NewStatement(bird, Inheritance, bird)
	subs := DistinctSubterms(stmt)
	// stmt + bird, deduplicated even though bird appears twice
	assert.Len(t, subs, 2)
}
