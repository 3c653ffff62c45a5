// Package metrics tracks reasoner-cycle counters: how many cycles ran,
// how many judgments/questions/goals were processed, how many
// derivations the rule engine produced, and how many tasks were
// dropped to resource saturation (spec §7's "soft-recoverable" bag
// overflow case). Nothing in internal/reasoner or internal/memory
// requires a *Collector to function — it is an optional attachment a
// host can read for introspection, the same role internal/persist
// plays for storage.
package metrics

import "sync/atomic"

// Collector accumulates reasoner-cycle counters. The zero value is
// ready to use; all operations are safe for concurrent use.
type Collector struct {
	cyclesRun           atomic.Int64
	judgmentsProcessed  atomic.Int64
	questionsProcessed  atomic.Int64
	goalsProcessed      atomic.Int64
	derivationsProduced atomic.Int64
	derivationsDropped  atomic.Int64
	tasksOverflowed     atomic.Int64
}

// New returns an empty Collector.
func New() *Collector {
	return &Collector{}
}

// RecordCycle records that one working cycle ran.
func (c *Collector) RecordCycle() {
	if c == nil {
		return
	}
	c.cyclesRun.Add(1)
}

// RecordJudgment records a judgment task reaching Memory.Input.
func (c *Collector) RecordJudgment() {
	if c == nil {
		return
	}
	c.judgmentsProcessed.Add(1)
}

// RecordQuestion records a question task reaching Memory.Input.
func (c *Collector) RecordQuestion() {
	if c == nil {
		return
	}
	c.questionsProcessed.Add(1)
}

// RecordGoal records a goal task reaching Memory.Input.
func (c *Collector) RecordGoal() {
	if c == nil {
		return
	}
	c.goalsProcessed.Add(1)
}

// RecordDerivation records a rule-engine conclusion that parsed and
// was reinjected as a task.
func (c *Collector) RecordDerivation() {
	if c == nil {
		return
	}
	c.derivationsProduced.Add(1)
}

// RecordDroppedDerivation records a rule-engine conclusion that failed
// to parse back into Narsese and was discarded.
func (c *Collector) RecordDroppedDerivation() {
	if c == nil {
		return
	}
	c.derivationsDropped.Add(1)
}

// RecordTaskOverflow records a task dropped because a bag was at
// capacity (spec §7 resource saturation).
func (c *Collector) RecordTaskOverflow() {
	if c == nil {
		return
	}
	c.tasksOverflowed.Add(1)
}

// Stats returns a snapshot of every counter.
func (c *Collector) Stats() map[string]int64 {
	if c == nil {
		return map[string]int64{}
	}
	return map[string]int64{
		"cycles_run":           c.cyclesRun.Load(),
		"judgments_processed":  c.judgmentsProcessed.Load(),
		"questions_processed":  c.questionsProcessed.Load(),
		"goals_processed":      c.goalsProcessed.Load(),
		"derivations_produced": c.derivationsProduced.Load(),
		"derivations_dropped":  c.derivationsDropped.Load(),
		"tasks_overflowed":     c.tasksOverflowed.Load(),
	}
}

// DerivationDropRate returns the fraction of derivations that failed
// to parse back into Narsese, or 0 if none were produced or dropped.
func (c *Collector) DerivationDropRate() float64 {
	if c == nil {
		return 0
	}
	produced := c.derivationsProduced.Load()
	dropped := c.derivationsDropped.Load()
	total := produced + dropped
	if total == 0 {
		return 0
	}
	return float64(dropped) / float64(total)
}
