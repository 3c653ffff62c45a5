// Package concept implements the per-term memory item of spec §3/§4.4:
// a Concept's belief/question/goal lists, its task-link and term-link
// sub-bags, local revision, and the link-typing and novelty-gating
// helpers that drive attention fan-out.
package concept

import (
	"math"

	"nars-core/internal/bag"
	"nars-core/internal/budget"
	"nars-core/internal/clock"
	"nars-core/internal/sentence"
	"nars-core/internal/stamp"
	"nars-core/internal/term"
	"nars-core/internal/truth"

	"nars-core/pkg/ringbag"
)

// Capacity and threshold constants named in spec §6.
const (
	BeliefsMax             = 28
	QuestionsMax           = 5
	GoalsMax               = 7
	BudgetThreshold        = 0.01
	RevisionMaxOccDistance = 10
	TermLinkRecordLength   = 10
	NoveltyHorizon         = 100000

	// ComplexityUnit scales solution-quality's complexity penalty. The
	// source material references "complexity·COMPLEXITY_UNIT" under an
	// eighth root without naming a value; 1 leaves the penalty as the
	// bare eighth root of complexity.
	ComplexityUnit = 1.0

	taskLinkBagCapacity = 100
	termLinkBagCapacity = 100
)

// Value is a concept: the per-term memory item owning bounded belief,
// question and goal lists plus link sub-bags (spec §3 Concept).
type Value struct {
	Term term.Term

	beliefs   []*sentence.Value
	questions []*sentence.Value
	goals     []*sentence.Value

	TaskLinks *bag.Bag[*TaskLink]
	TermLinks *bag.Bag[*TermLink]
}

// New creates an empty Concept for t.
func New(t term.Term) *Value {
	return &Value{
		Term:      t,
		TaskLinks: bag.New[*TaskLink](bag.DefaultConfig(taskLinkBagCapacity)),
		TermLinks: bag.New[*TermLink](bag.DefaultConfig(termLinkBagCapacity)),
	}
}

// Name returns the concept's key, always equal to its term's canonical
// name (spec §3 invariant "Concept.name == Concept.term.canonicalName").
func (c *Value) Name() string {
	return c.Term.Name()
}

// Beliefs returns the concept's current belief list.
func (c *Value) Beliefs() []*sentence.Value { return c.beliefs }

// Questions returns the concept's current (unanswered) question list.
func (c *Value) Questions() []*sentence.Value { return c.questions }

// AddQuestion appends a question, shifting out the oldest on overflow
// (spec §4.4 "Questions are bounded by CONCEPT_QUESTIONS_MAX via FIFO
// shift-on-overflow").
func (c *Value) AddQuestion(q *sentence.Value) {
	c.questions = append(c.questions, q)
	if len(c.questions) > QuestionsMax {
		c.questions = c.questions[1:]
	}
}

// AddGoal appends a goal, shifting out the oldest on overflow.
func (c *Value) AddGoal(g *sentence.Value) {
	c.goals = append(c.goals, g)
	if len(c.goals) > GoalsMax {
		c.goals = c.goals[1:]
	}
}

// TaskLink is a directed edge from a Concept to a Task (spec §3).
type TaskLink struct {
	Source *Value
	Target *sentence.Task
	Budget budget.Value
	Type   LinkType
	Path   []term.Term

	recency *ringbag.Tracker[string]
}

// NewTaskLink constructs a TaskLink and its recency-tracking map for
// novelty gating.
func NewTaskLink(source *Value, target *sentence.Task, b budget.Value, lt LinkType, path []term.Term) *TaskLink {
	return &TaskLink{
		Source:  source,
		Target:  target,
		Budget:  b,
		Type:    lt,
		Path:    path,
		recency: ringbag.New[string](TermLinkRecordLength),
	}
}

// Key identifies a task-link within its source concept's sub-bag.
func (tl *TaskLink) Key() string {
	return tl.Target.Key()
}

// TermLink is a directed edge between two Concepts (spec §3).
type TermLink struct {
	Source *Value
	Target *Value
	Budget budget.Value
	Type   LinkType
	Path   []term.Term
}

// Key identifies a term-link within its source concept's sub-bag.
func (tl *TermLink) Key() string {
	return tl.Target.Name()
}

// IsNovel implements spec §4.7 novelty gating: a (taskLink, termLink)
// pair is novel unless the term-link's target term equals the
// task-link's own target term, or the pair was already recorded within
// TermLinkRecordLength cycles of now.
func IsNovel(tl *TaskLink, tlk *TermLink, now int64) bool {
	if term.Equal(tlk.Target.Term, tl.Target.Sentence.Term) {
		return false
	}
	key := tlk.Key()
	if last, ok := tl.recency.LastSeen(key); ok && now < last+TermLinkRecordLength {
		return false
	}
	tl.recency.Record(key, now)
	return true
}

// SelectCandidate returns the belief in list with the highest solution
// quality against newTask's sentence (rated by confidence), or nil if
// list is empty (spec §4.3/§4.4 selectCandidate).
func SelectCandidate(newTask *sentence.Task, list []*sentence.Value) *sentence.Value {
	var best *sentence.Value
	bestQuality := -1.0
	for _, candidate := range list {
		q := SolutionQuality(newTask.Sentence, candidate, true)
		if q > bestQuality {
			bestQuality = q
			best = candidate
		}
	}
	return best
}

// SolutionQuality implements spec §4.3's solution-quality function: 0 if
// punctuation mismatches and the solution carries a query variable, or
// the solution has no truth; otherwise confidence (when rateOfConfidence)
// or expectation scaled down by the eighth root of the solution's
// complexity.
func SolutionQuality(problem, solution *sentence.Value, rateOfConfidence bool) float64 {
	if solution.Truth == nil {
		return 0
	}
	if solution.Punctuation != problem.Punctuation && solution.Term.HasVar(term.Query) {
		return 0
	}
	if rateOfConfidence {
		return solution.Truth.Confidence.Value()
	}
	complexity := float64(solution.Term.Complexity()) * ComplexityUnit
	return solution.Truth.Expectation() / math.Pow(complexity, 1.0/8.0)
}

// ProcessJudgment implements Concept.processJudgment (spec §4.4): checks
// for duplicate evidence against the best existing candidate belief,
// revises when eligible, and appends the (possibly revised) task's
// sentence to the belief list when its budget clears BudgetThreshold.
func (c *Value) ProcessJudgment(ctx *clock.Context, newTask *sentence.Task) {
	candidate := SelectCandidate(newTask, c.beliefs)

	if candidate != nil && sameEvidence(newTask.Sentence, candidate) {
		return
	}

	result := newTask
	if candidate != nil && revisableWith(newTask.Sentence, candidate) {
		revised := LocalRevision(ctx, newTask, candidate)
		if candidate.Truth != nil {
			revised.Achievement = math.Abs(revised.Sentence.Truth.Expectation() - candidate.Truth.Expectation())
		} else {
			revised.Achievement = revised.Sentence.Truth.Expectation()
		}
		result = revised
	}

	if result.Budget.Summary() > BudgetThreshold {
		c.addBelief(result.Sentence)
	}
}

func sameEvidence(a, b *sentence.Value) bool {
	return a.Stamp.OccurrenceTime == b.Stamp.OccurrenceTime && sameEvidenceSet(a.Stamp, b.Stamp)
}

func sameEvidenceSet(a, b stamp.Value) bool {
	if len(a.Evidence) != len(b.Evidence) {
		return false
	}
	for i := range a.Evidence {
		if a.Evidence[i] != b.Evidence[i] {
			return false
		}
	}
	return true
}

// revisableWith reports whether newSentence may be locally revised
// against existing (spec §4.4): both eternal or within
// RevisionMaxOccDistance cycles of each other; both sentences
// individually revisable; same temporal order (or either unspecified);
// and no evidential overlap.
func revisableWith(newSentence, existing *sentence.Value) bool {
	if !newSentence.IsRevisable() || !existing.IsRevisable() {
		return false
	}
	if stamp.Overlaps(newSentence.Stamp, existing.Stamp) {
		return false
	}
	bothEternal := newSentence.Stamp.IsEternal() && existing.Stamp.IsEternal()
	if !bothEternal {
		if newSentence.Stamp.IsEternal() != existing.Stamp.IsEternal() {
			return false
		}
		dist := newSentence.Stamp.OccurrenceTime - existing.Stamp.OccurrenceTime
		if dist < 0 {
			dist = -dist
		}
		if dist > RevisionMaxOccDistance {
			return false
		}
	}
	if newSentence.Stamp.Tense != stamp.TenseNone && existing.Stamp.Tense != stamp.TenseNone {
		if newSentence.Stamp.Tense != existing.Stamp.Tense {
			return false
		}
	}
	return true
}

// LocalRevision implements Concept.localRevision (spec §4.4): combines
// task and belief via the truth/budget/stamp revision functions,
// producing a new derived Task wrapping a new Judgment.
func LocalRevision(ctx *clock.Context, task *sentence.Task, belief *sentence.Value) *sentence.Task {
	combinedTruth := truth.Revision(*task.Sentence.Truth, *belief.Truth)
	combinedStamp := stamp.Revise(ctx, task.Sentence.Stamp, belief.Stamp, stamp.ReviseOptions{})

	revOut := budget.ReviseRevision(task.Budget, nil, nil, budget.RevisionInputs{
		TruthTask:    task.Sentence.Truth,
		TruthBelief:  belief.Truth,
		TruthDerived: &combinedTruth,
	})

	newSentence := sentence.NewJudgment(task.Sentence.Term, combinedTruth, combinedStamp)
	return &sentence.Task{
		Sentence: newSentence,
		Budget:   revOut.Derived,
		Type:     sentence.Derived,
	}
}

func (c *Value) addBelief(s *sentence.Value) {
	c.beliefs = append(c.beliefs, s)
	if len(c.beliefs) > BeliefsMax {
		lowest := 0
		lowestQuality := math.Inf(1)
		for i, b := range c.beliefs {
			if b.Truth == nil {
				continue
			}
			q := truth.ToQuality(*b.Truth)
			if q < lowestQuality {
				lowestQuality = q
				lowest = i
			}
		}
		c.beliefs = append(c.beliefs[:lowest], c.beliefs[lowest+1:]...)
	}
}
