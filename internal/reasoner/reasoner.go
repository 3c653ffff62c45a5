// Package reasoner implements the working-cycle control loop of spec
// §4.9: one cycle selects a concept, selects one of its task-links,
// asserts the link's target term as a fact, runs a single-shot
// derivation pass, and reinjects every surviving conclusion through
// Memory.input before advancing the logical clock.
package reasoner

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"nars-core/internal/budget"
	"nars-core/internal/clock"
	"nars-core/internal/concept"
	"nars-core/internal/memory"
	"nars-core/internal/metrics"
	"nars-core/internal/narsese"
	"nars-core/internal/rules"
	"nars-core/internal/sentence"
)

// Result is what inputNarsese returns to the host (spec §6 host entry
// point inputNarsese).
type Result struct {
	OK       bool
	Task     *sentence.Task
	Overflow bool
	Answers  []*sentence.Value
	Err      error
}

// Reasoner wires a Memory, a logical Context and a loaded ruleset
// together behind the working-cycle control loop. facts accumulates the
// canonical term strings asserted by successive cycles (spec §4.9 step
// 4) so the rule engine's single-shot pass — which never feeds its own
// conclusions back within one call — still sees everything asserted by
// earlier cycles.
type Reasoner struct {
	Mem     *memory.Memory
	Ctx     *clock.Context
	Rules   []rules.Rule
	Metrics *metrics.Collector
	log     *log.Logger

	facts    []string
	factSeen map[string]bool
}

// New constructs a Reasoner over an empty Memory bound to ctx, with its
// own metrics Collector.
func New(ctx *clock.Context, ruleset []rules.Rule, logger *log.Logger) *Reasoner {
	if logger == nil {
		logger = log.Default()
	}
	return &Reasoner{
		Mem:      memory.New(ctx, logger),
		Ctx:      ctx,
		Rules:    ruleset,
		Metrics:  metrics.New(),
		log:      logger,
		factSeen: make(map[string]bool),
	}
}

// InputNarsese implements the inputNarsese(text) host entry point (spec
// §6): if text is purely numeric, runs that many cycles; otherwise
// parses text as a Task, routes it through Memory.Input, advances the
// clock once, and returns the answers produced.
func (r *Reasoner) InputNarsese(text string) Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{OK: false, Err: fmt.Errorf("reasoner: empty input")}
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		for i := 0; i < n; i++ {
			r.Cycle()
		}
		return Result{OK: true}
	}

	task, err := narsese.Parse(r.Ctx, trimmed)
	if err != nil {
		return Result{OK: false, Err: err}
	}
	r.recordTaskKind(task.Sentence.Punctuation)

	answers := r.Mem.Input(task)
	r.Ctx.Tick()

	return Result{OK: true, Task: task, Answers: answers}
}

// recordTaskKind updates the judgment/question/goal counters for a
// task about to be fed into Memory.Input.
func (r *Reasoner) recordTaskKind(p sentence.Punctuation) {
	switch p {
	case sentence.Judgment:
		r.Metrics.RecordJudgment()
	case sentence.Question:
		r.Metrics.RecordQuestion()
	case sentence.Goal:
		r.Metrics.RecordGoal()
	}
}

// Cycle runs one working cycle (spec §4.9):
//  1. take out a Concept; end the cycle if the bag is empty.
//  2. take out one of its task-links; put the concept back and end if
//     it has none.
//  3. put the task-link straight back (it decays via forgetting).
//  4. assert the task-link's target term as a fact, plus the target of
//     every term-link on the concept that the task-link has not
//     recently been paired with (novelty gating, spec §4.7) — this is
//     the taskLink-to-termLink consideration that brings a term-link's
//     neighbouring concept into the same derivation pass rather than
//     just the task-link's own term.
//  5. run single-shot derivation.
//  6. reinject every surviving conclusion as a new Task through
//     Memory.Input, advancing the clock once per derivation.
//  7. put the concept back.
func (r *Reasoner) Cycle() {
	r.Metrics.RecordCycle()

	c, cBudget, ok := r.Mem.TakeOutConcept()
	if !ok {
		return
	}

	entry, ok := c.TaskLinks.TakeOut()
	if !ok {
		r.Mem.PutBackConcept(c, cBudget)
		return
	}
	tl := entry.Value
	c.TaskLinks.PutBack(tl.Key(), tl, entry.Budget)

	r.assertFact(tl.Target.Sentence.Term.Name())

	now := r.Ctx.Now()
	c.TermLinks.Walk(func(_ string, tlk *concept.TermLink, _ budget.Value) {
		if concept.IsNovel(tl, tlk, now) {
			r.assertFact(tlk.Target.Term.Name())
		}
	})

	explanations := rules.Derive(r.facts, r.Rules)

	for _, exp := range explanations {
		text := exp.Conclusion + string(tl.Target.Sentence.Punctuation)
		task, err := narsese.Parse(r.Ctx, text)
		if err != nil {
			r.log.Printf("reasoner: dropping unparseable derivation %q: %v", text, err)
			r.Metrics.RecordDroppedDerivation()
			continue
		}
		r.Metrics.RecordDerivation()
		r.recordTaskKind(task.Sentence.Punctuation)
		r.Mem.Input(task)
		r.Ctx.Tick()
	}

	r.Mem.PutBackConcept(c, cBudget)
}

// assertFact adds fact to the running fact set once, so repeated
// assertions across cycles (the same task-link or term-link target
// reappearing) don't grow the rule engine's premise set without bound.
func (r *Reasoner) assertFact(fact string) {
	if r.factSeen[fact] {
		return
	}
	r.factSeen[fact] = true
	r.facts = append(r.facts, fact)
}
