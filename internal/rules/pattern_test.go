package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAtomAndVariable(t *testing.T) {
	atom, err := Parse("bird")
	require.NoError(t, err)
	assert.Equal(t, KindAtom, atom.Kind)

	v, err := Parse("A")
	require.NoError(t, err)
	assert.Equal(t, KindVar, v.Kind)
}

func TestParseStatementRoundTripsStringForm(t *testing.T) {
	p, err := Parse("<bird --> fly>")
	require.NoError(t, err)
	assert.Equal(t, "<bird --> fly>", p.String())
}

func TestParseNegation(t *testing.T) {
	p, err := Parse("(--, bird)")
	require.NoError(t, err)
	assert.Equal(t, KindNegation, p.Kind)
	assert.Equal(t, "(--,bird)", p.String())
}

func TestIsVariableTokenRecognizesUppercaseLead(t *testing.T) {
	assert.True(t, IsVariableToken("A"))
	assert.True(t, IsVariableToken("?X"))
	assert.False(t, IsVariableToken("bird"))
}

func TestNegationDepthCounts(t *testing.T) {
	p, _ := Parse("(--, (--, bird))")
	assert.Equal(t, 2, p.NegationDepth())
}

func TestIsReflexiveInheritanceDetectsSameSubjectPredicate(t *testing.T) {
	p, _ := Parse("<bird --> bird>")
	assert.True(t, p.IsReflexiveInheritance())
	q, _ := Parse("<bird --> fly>")
	assert.False(t, q.IsReflexiveInheritance())
}
