// Package budget implements the Budget value and budget functions of
// spec §3/§4.5: priority, durability, quality, forgetting, activation and
// the revision arithmetic that redistributes attention when a derivation
// fires.
package budget

import (
	"math"

	"nars-core/internal/numeric"
	"nars-core/internal/truth"
)

// Value is a (priority, durability, quality) triple, all in [0,1].
type Value struct {
	Priority   numeric.ShortFloat
	Durability numeric.ShortFloat
	Quality    numeric.ShortFloat
}

// New constructs a Budget, validating each component is a legal ShortFloat.
func New(priority, durability, quality float64) (Value, error) {
	p, err := numeric.New(priority)
	if err != nil {
		return Value{}, err
	}
	d, err := numeric.New(durability)
	if err != nil {
		return Value{}, err
	}
	q, err := numeric.New(quality)
	if err != nil {
		return Value{}, err
	}
	return Value{Priority: p, Durability: d, Quality: q}, nil
}

// Summary computes s = d·(p+q)/2 (spec §3 Budget).
func (b Value) Summary() float64 {
	p, d, q := b.Priority.Value(), b.Durability.Value(), b.Quality.Value()
	return d * (p + q) / 2
}

// AboveThreshold reports whether mean(p,d,q) exceeds 0.001, the minimum
// attention level at which a budget is considered non-degenerate
// (spec §3 Budget "above-threshold").
func (b Value) AboveThreshold() bool {
	p, d, q := b.Priority.Value(), b.Durability.Value(), b.Quality.Value()
	return (p+d+q)/3 > 0.001

}

// Forget applies the bag's put-back decay (spec §4.1): let q* =
// quality·qualityFloor; if |p-q*| < relThreshold do nothing; else
// p ← q* + (p-q*)·durability^(1/(decayRate·|p-q*|)).
func Forget(b Value, decayRate, qualityFloor, relThreshold float64) Value {
	p := b.Priority.Value()
	qStar := b.Quality.Value() * qualityFloor
	diff := p - qStar
	if math.Abs(diff) < relThreshold {
		return b
	}
	d := b.Durability.Value()
	exponent := 1 / (decayRate * math.Abs(diff))
	newP := qStar + diff*math.Pow(d, exponent)
	return Value{
		Priority:   numeric.Clamp(newP),
		Durability: b.Durability,
		Quality:    b.Quality,
	}
}

// Activate raises priority via probabilistic-OR and durability via
// arithmetic mean when a concept is reselected (spec §4.5
// BudgetFunctions.activate); quality is left unchanged.
func Activate(b, increment Value) Value {
	return Value{
		Priority:   numeric.ProbOR(b.Priority, increment.Priority),
		Durability: numeric.Average(b.Durability, increment.Durability),
		Quality:    b.Quality,
	}
}

// Merge combines two budgets of the same key observed via independent
// put-ins (spec §4.1 put-in of a duplicate): priority ← new priority
// (caller passes the incoming budget as b2), durability ← max, quality
// ← max.
func Merge(existing, incoming Value) Value {
	return Value{
		Priority:   incoming.Priority,
		Durability: numeric.Max(existing.Durability, incoming.Durability),
		Quality:    numeric.Max(existing.Quality, incoming.Quality),
	}
}

// RevisionInputs carries the optional truth values consulted by
// ReviseRevision; nil means "absent" (spec §4.5 parameters marked `?`).
type RevisionInputs struct {
	TruthTask    *truth.Value
	TruthBelief  *truth.Value
	TruthDerived *truth.Value
}

// RevisionOutputs bundles the (possibly) updated budgets BudgetFunctions
// .revision computes. TaskLink and TermLink are nil when the
// corresponding input budget was nil.
type RevisionOutputs struct {
	Derived  Value
	Task     Value
	TaskLink *Value
	TermLink *Value
}

func expectationOrZero(t *truth.Value) float64 {
	if t == nil {
		return 0
	}
	return t.Expectation()
}

func confidenceOrZero(t *truth.Value) float64 {
	if t == nil {
		return 0
	}
	return t.Confidence.Value()
}

// ReviseRevision implements BudgetFunctions.revision (spec §4.5): it
// redistributes priority and durability across the task, and optionally
// the task-link and term-link that produced a derivation, based on how
// surprising the derived truth was relative to its parents, and computes
// the derived task's own budget.
func ReviseRevision(taskBudget Value, taskLinkBudget, termLinkBudget *Value, in RevisionInputs) RevisionOutputs {
	dTask := math.Abs(expectationOrZero(in.TruthTask) - expectationOrZero(in.TruthDerived))

	updatedTask := Value{
		Priority:   numeric.ProbAND(taskBudget.Priority, numeric.Clamp(1-dTask)),
		Durability: numeric.ProbAND(taskBudget.Durability, numeric.Clamp(1-dTask)),
		Quality:    taskBudget.Quality,
	}

	var outTaskLink *Value
	if taskLinkBudget != nil {
		updated := Value{
			Priority:   numeric.ProbAND(updatedTask.Priority, numeric.Clamp(dTask)),
			Durability: numeric.ProbAND(updatedTask.Durability, numeric.Clamp(dTask)),
			Quality:    taskLinkBudget.Quality,
		}
		outTaskLink = &updated
	}

	var outTermLink *Value
	if termLinkBudget != nil {
		dBelief := math.Abs(expectationOrZero(in.TruthBelief) - expectationOrZero(in.TruthDerived))
		updated := Value{
			Priority:   numeric.ProbAND(termLinkBudget.Priority, numeric.Clamp(1-dBelief)),
			Durability: numeric.ProbAND(termLinkBudget.Durability, numeric.Clamp(1-dBelief)),
			Quality:    termLinkBudget.Quality,
		}
		outTermLink = &updated
	}

	maxParentConfidence := math.Max(confidenceOrZero(in.TruthTask), confidenceOrZero(in.TruthBelief))
	derivedConfidence := confidenceOrZero(in.TruthDerived)
	priorityGain := derivedConfidence - maxParentConfidence

	derived := Value{
		Priority:   numeric.ProbOR(numeric.Clamp(priorityGain), updatedTask.Priority),
		Durability: numeric.Average(numeric.Clamp(priorityGain), updatedTask.Durability),
		Quality:    numeric.Clamp(truth.ToQuality(derefOrZero(in.TruthDerived))),
	}

	return RevisionOutputs{
		Derived:  derived,
		Task:     updatedTask,
		TaskLink: outTaskLink,
		TermLink: outTermLink,
	}
}

func derefOrZero(t *truth.Value) truth.Value {
	if t == nil {
		return truth.Value{}
	}
	return *t
}

// ForJudgment builds the initial budget of a freshly parsed judgment
// task: priority and durability come from the Narsese budget clause (or
// its defaults), quality is the truth's own expectation-derived quality
// (spec §4.5 truth-to-quality), so a confident belief starts with a
// higher quality floor than a shaky one.
func ForJudgment(priority, durability float64, t truth.Value) Value {
	return Value{
		Priority:   numeric.Clamp(priority),
		Durability: numeric.Clamp(durability),
		Quality:    numeric.Clamp(truth.ToQuality(t)),
	}
}

// Distribute splits a parent budget across n children produced by a
// single fan-out step (e.g. createTermLinks), dividing priority and
// durability by sqrt(n). Each child gets less than the parent, but the
// children's combined priority is sqrt(n) times the parent's, so it
// grows with n rather than staying within the parent's.
func Distribute(parent Value, n int) Value {
	if n <= 1 {
		return parent
	}
	scale := 1.0 / math.Sqrt(float64(n))
	return Value{
		Priority:   numeric.Clamp(parent.Priority.Value() * scale),
		Durability: numeric.Clamp(parent.Durability.Value() * scale),
		Quality:    parent.Quality,
	}
}
