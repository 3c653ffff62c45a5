package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nars-core/internal/budget"
	"nars-core/internal/clock"
	"nars-core/internal/stamp"
	"nars-core/internal/term"
	"nars-core/internal/truth"
)

func newTestStamp(ctx *clock.Context) stamp.Value {
	return stamp.New(ctx, clock.Eternal, stamp.TenseNone)
}

func TestJudgmentNameIncludesTruth(t *testing.T) {
	ctx := clock.New(1)
	bird := term.NewAtom("bird")
	fly := term.NewAtom("fly")
	stmt := term.NewStatement(bird, term.Inheritance, fly)
	tv, err := truth.New(0.9, 0.9, truth.DefaultHorizon)
	require.NoError(t, err)

	j := NewJudgment(stmt, tv, newTestStamp(ctx))
	assert.Contains(t, j.Name(), "<bird --> fly>")
	assert.Contains(t, j.Name(), ".")
}

func TestQuestionHasNoTruth(t *testing.T) {
	ctx := clock.New(1)
	bird := term.NewAtom("bird")
	q := NewQuestion(bird, newTestStamp(ctx))
	assert.Nil(t, q.Truth)
	assert.Equal(t, Question, q.Punctuation)
}

func TestIsRevisableForInheritanceStatement(t *testing.T) {
	ctx := clock.New(1)
	bird := term.NewAtom("bird")
	fly := term.NewAtom("fly")
	stmt := term.NewStatement(bird, term.Inheritance, fly)
	tv, _ := truth.New(0.9, 0.9, truth.DefaultHorizon)
	j := NewJudgment(stmt, tv, newTestStamp(ctx))
	assert.True(t, j.IsRevisable())
}

func TestIsRevisableFalseForQuestion(t *testing.T) {
	ctx := clock.New(1)
	q := NewQuestion(term.NewAtom("bird"), newTestStamp(ctx))
	assert.False(t, q.IsRevisable())
}

func TestIsRevisableFalseWhenDependentVariablePresent(t *testing.T) {
	ctx := clock.New(1)
	x := term.NewVariable(term.Dependent, "x")
	fly := term.NewAtom("fly")
	stmt := term.NewStatement(x, term.Implication, fly)
	tv, _ := truth.New(0.9, 0.9, truth.DefaultHorizon)
	j := NewJudgment(stmt, tv, newTestStamp(ctx))
	assert.False(t, j.IsRevisable())
}

func TestBestSolutionRoundTrips(t *testing.T) {
	ctx := clock.New(1)
	q := NewQuestion(term.NewAtom("bird"), newTestStamp(ctx))
	assert.Nil(t, q.BestSolution())

	tv, _ := truth.New(0.9, 0.9, truth.DefaultHorizon)
	answer := NewJudgment(term.NewAtom("bird"), tv, newTestStamp(ctx))
	q.SetBestSolution(answer)
	assert.Same(t, answer, q.BestSolution())
}

func TestTaskKeyMatchesSentenceName(t *testing.T) {
	ctx := clock.New(1)
	tv, _ := truth.New(0.9, 0.9, truth.DefaultHorizon)
	j := NewJudgment(term.NewAtom("bird"), tv, newTestStamp(ctx))
	b, _ := budget.New(0.8, 0.5, 0.5)
	task := &Task{Sentence: j, Budget: b, Type: Input}
	assert.Equal(t, j.Name(), task.Key())
}
