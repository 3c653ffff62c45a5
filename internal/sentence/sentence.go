// Package sentence implements the Sentence and Task wrappers of spec §3:
// judgments and questions over a term, and the Task envelope the
// reasoning core actually moves through memory.
package sentence

import (
	"nars-core/internal/budget"
	"nars-core/internal/stamp"
	"nars-core/internal/term"
	"nars-core/internal/truth"
)

// Punctuation marks a sentence's kind, mirrored from the Narsese surface
// syntax (spec §6): `.` judgment, `?` question, `!` goal.
type Punctuation rune

const (
	Judgment Punctuation = '.'
	Question Punctuation = '?'
	Goal     Punctuation = '!'
)

// Value is a term paired with its punctuation, an optional truth (absent
// for questions) and a stamp, plus a mutable best-solution slot used by
// question answering (spec §3 Sentence, §4.3 trySolution).
type Value struct {
	Term        term.Term
	Punctuation Punctuation
	Truth       *truth.Value
	Stamp       stamp.Value

	bestSolution *Value
}

// NewJudgment builds a judgment sentence.
func NewJudgment(t term.Term, tv truth.Value, st stamp.Value) *Value {
	return &Value{Term: t, Punctuation: Judgment, Truth: &tv, Stamp: st}
}

// NewQuestion builds a question sentence (no truth value).
func NewQuestion(t term.Term, st stamp.Value) *Value {
	return &Value{Term: t, Punctuation: Question, Stamp: st}
}

// NewGoal builds a goal sentence.
func NewGoal(t term.Term, tv truth.Value, st stamp.Value) *Value {
	return &Value{Term: t, Punctuation: Goal, Truth: &tv, Stamp: st}
}

// Name is the sentence's printable form and the key under which a Task
// wrapping it is stored (spec §3 Task "keyed by the sentence's printable
// form").
func (s *Value) Name() string {
	suffix := string(rune(s.Punctuation))
	if s.Truth != nil {
		suffix += " %" + s.Truth.Frequency.String() + ";" + s.Truth.Confidence.String() + "%"
	}
	return s.Term.Name() + suffix
}

// IsRevisable reports whether this judgment may participate in local
// revision (spec §3 "Judgments are revisable iff copula is --> or <=> or
// the term contains no dependent variable"). Non-judgments are never
// revisable.
func (s *Value) IsRevisable() bool {
	if s.Punctuation != Judgment {
		return false
	}
	if stmt, ok := s.Term.(term.Statement); ok {
		switch stmt.Copula() {
		case term.Inheritance, term.Equivalence:
			return true
		}
	}
	return !s.Term.HasVar(term.Dependent)
}

// BestSolution returns the sentence currently recorded as this
// question's best-known answer, or nil if none has been found yet.
func (s *Value) BestSolution() *Value {
	return s.bestSolution
}

// SetBestSolution records a new best-known answer.
func (s *Value) SetBestSolution(answer *Value) {
	s.bestSolution = answer
}

// TaskType distinguishes tasks entered directly from Narsese input from
// tasks produced by the rule engine (spec §3 Task).
type TaskType int

const (
	Input TaskType = iota
	Derived
)

// Task is the envelope that moves through Memory and the bags: a
// sentence, the attention budget controlling its lifetime, its
// provenance kind, and an achievement score set by local revision
// (spec §3, §4.4).
type Task struct {
	Sentence    *Value
	Budget      budget.Value
	Type        TaskType
	Achievement float64
}

// Key returns the string this task is stored and looked up by.
func (t *Task) Key() string {
	return t.Sentence.Name()
}
