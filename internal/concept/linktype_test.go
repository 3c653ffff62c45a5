package concept

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nars-core/internal/term"
)

func TestClassifyLinkSelfWhenIdentical(t *testing.T) {
	bird := term.NewAtom("bird")
	assert.Equal(t, Self, ClassifyLink(bird, bird, true))
}

func TestClassifyLinkComponentStatementForInheritanceEndpoint(t *testing.T) {
	bird := term.NewAtom("bird")
	fly := term.NewAtom("fly")
	stmt := term.NewStatement(bird, term.Inheritance, fly)
	assert.Equal(t, ComponentStatement, ClassifyLink(bird, stmt, false))
}

func TestClassifyLinkComponentConditionForHigherOrderEndpoint(t *testing.T) {
	bird := term.NewAtom("bird")
	fly := term.NewAtom("fly")
	stmt := term.NewStatement(bird, term.Implication, fly)
	assert.Equal(t, ComponentCondition, ClassifyLink(bird, stmt, false))
}

func TestClassifyLinkCompoundWhenTargetIsCompound(t *testing.T) {
	a := term.NewAtom("a")
	b := term.NewAtom("b")
	compound := term.NewCompound(term.Conjunction, a, b)
	assert.Equal(t, Compound, ClassifyLink(a, compound, false))
}

func TestClassifyLinkCompoundConditionWhenHigherOrderSourceNotFoundInTarget(t *testing.T) {
	cat := term.NewAtom("cat")
	bird := term.NewAtom("bird")
	fly := term.NewAtom("fly")
	implication := term.NewStatement(bird, term.Implication, fly)
	assert.Equal(t, CompoundCondition, ClassifyLink(implication, cat, false))
}
