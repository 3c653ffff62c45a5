// Package memory implements the Memory façade of spec §4.3: concept
// lookup/generation, judgment and question dispatch, and the task-link/
// term-link fan-out that wires a newly input task into the concept
// network.
package memory

import (
	"log"
	"sync"

	"nars-core/internal/bag"
	"nars-core/internal/budget"
	"nars-core/internal/clock"
	"nars-core/internal/concept"
	"nars-core/internal/numeric"
	"nars-core/internal/sentence"
	"nars-core/internal/term"
)

// Capacity constants named in spec §6.
const (
	ConceptBagCapacity = 10000

	// GlobalTaskBagCapacity is not named explicitly in spec §6 (only the
	// per-concept task-link/term-link bags are sized there); 1000 keeps
	// the auxiliary bag well above typical working-set size without
	// letting it grow unbounded.
	GlobalTaskBagCapacity = 1000
)

// Memory is the top-level reasoning façade: a concept bag plus the
// global task auxiliary bag (spec §4.3).
type Memory struct {
	mu sync.RWMutex

	ctx *clock.Context
	log *log.Logger

	concepts    *bag.Bag[*concept.Value]
	globalTasks *bag.Bag[*sentence.Task]

	working *concept.Value
}

// New constructs an empty Memory bound to ctx's logical clock.
func New(ctx *clock.Context, logger *log.Logger) *Memory {
	if logger == nil {
		logger = log.Default()
	}
	return &Memory{
		ctx:         ctx,
		log:         logger,
		concepts:    bag.New[*concept.Value](bag.DefaultConfig(ConceptBagCapacity)),
		globalTasks: bag.New[*sentence.Task](bag.DefaultConfig(GlobalTaskBagCapacity)),
	}
}

// Input implements Memory.input (spec §4.3): derives a conceptualization
// budget from the task, looks up or creates the task's Concept, routes
// judgments through Concept.ProcessJudgment and questions through the
// yes/no or Wh dispatcher, then fans the task out into task-links and
// term-links. Returns any answers produced synchronously.
func (m *Memory) Input(task *sentence.Task) []*sentence.Value {
	m.mu.Lock()
	defer m.mu.Unlock()

	simplicity := term.Simplicity(task.Sentence.Term)
	conceptBudget := budget.Value{
		Priority:   task.Budget.Priority,
		Durability: task.Budget.Durability,
		Quality:    numeric.Clamp(simplicity),
	}

	c := m.pickOrGenerateConcept(task.Sentence.Term, conceptBudget)
	m.working = c

	var answers []*sentence.Value

	switch task.Sentence.Punctuation {
	case sentence.Judgment:
		c.ProcessJudgment(m.ctx, task)
	case sentence.Question:
		if task.Sentence.Term.HasVar(term.Query) {
			if answer := m.processWhQuestion(task.Sentence, c, &task.Budget); answer != nil {
				answers = append(answers, answer)
			}
		} else {
			if answer := m.processYesNoQuestion(task.Sentence, c, &task.Budget); answer != nil {
				answers = append(answers, answer)
			}
		}
	case sentence.Goal:
		c.AddGoal(task.Sentence)
	}

	m.globalTasks.PutIn(task.Key(), task, task.Budget)
	m.createTaskLinks(task)
	m.createTermLinks(task)

	return answers
}

// pickOrGenerateConcept implements Memory.pickOrGenerateConcept (spec
// §4.3): on a hit, the concept's budget is refreshed by probabilistic-OR
// on priority/durability and max on quality; on a miss, a new Concept is
// created with the provided budget.
func (m *Memory) pickOrGenerateConcept(t term.Term, b budget.Value) *concept.Value {
	name := t.Name()
	if entry, ok := m.concepts.PickOut(name); ok {
		merged := budget.Value{
			Priority:   numeric.ProbOR(entry.Budget.Priority, b.Priority),
			Durability: numeric.ProbOR(entry.Budget.Durability, b.Durability),
			Quality:    numeric.Max(entry.Budget.Quality, b.Quality),
		}
		m.concepts.PutIn(name, entry.Value, merged)
		return entry.Value
	}

	c := concept.New(t)
	m.concepts.PutIn(name, c, b)
	return c
}

// ConceptAt looks up a concept by its term's canonical name without
// disturbing its bag position (a host inspection entry point, spec §6).
func (m *Memory) ConceptAt(name string) (*concept.Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conceptAtLocked(name)
}

// conceptAtLocked is the lock-free body of ConceptAt. Callers must
// already hold m.mu (read or write) — used from within Input's own
// write-locked call graph, where RWMutex's non-reentrancy rules out
// calling ConceptAt itself.
func (m *Memory) conceptAtLocked(name string) (*concept.Value, bool) {
	entry, ok := m.concepts.Peek(name)
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

// ConceptBagSnapshot returns every concept name currently held, for host
// inspection (spec §6 conceptBagSnapshot()).
func (m *Memory) ConceptBagSnapshot() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return snapshotKeys[*concept.Value](m.concepts)
}

// GlobalTaskBagSnapshot returns every pending task key, for host
// inspection (spec §6 globalTaskBagSnapshot()).
func (m *Memory) GlobalTaskBagSnapshot() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return snapshotKeys[*sentence.Task](m.globalTasks)
}

// TakeOutConcept removes and returns one concept plus its current
// budget via the bag's probabilistic level selection, for the
// reasoner's working cycle (spec §4.9 step 1). The caller is expected
// to put the concept back with PutBackConcept once the cycle is done
// with it.
func (m *Memory) TakeOutConcept() (*concept.Value, budget.Value, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.concepts.TakeOut()
	if !ok {
		return nil, budget.Value{}, false
	}
	return entry.Value, entry.Budget, true
}

// PutBackConcept reinserts a concept with forgetting applied, for the
// reasoner's working cycle (spec §4.9 step 7).
func (m *Memory) PutBackConcept(c *concept.Value, b budget.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.concepts.PutBack(c.Name(), c, b)
}

// Working returns the concept most recently touched by Input or the
// reasoner's working cycle.
func (m *Memory) Working() *concept.Value {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.working
}

// createTaskLinks implements Memory.createTaskLinks (spec §4.3): for
// every distinct subterm of the task's term, a Concept is created (or
// reused) and a TaskLink from that Concept to the task is installed,
// with the fan-out budget split across all participating subterms.
func (m *Memory) createTaskLinks(task *sentence.Task) {
	subterms := term.DistinctSubterms(task.Sentence.Term)
	share := budget.Distribute(task.Budget, len(subterms))

	for _, sub := range subterms {
		c := m.pickOrGenerateConcept(sub, share)
		path, _ := term.FindPath(sub, task.Sentence.Term)
		lt := concept.ClassifyLink(sub, task.Sentence.Term, true)
		tl := concept.NewTaskLink(c, task, share, lt, path)
		c.TaskLinks.PutIn(tl.Key(), tl, share)
	}
}

// createTermLinks implements Memory.createTermLinks (spec §4.3):
// ancestor-descendant pairs along the task's term tree get Concepts on
// both ends and bidirectional TermLinks between them.
func (m *Memory) createTermLinks(task *sentence.Task) {
	pairs := term.AncestorDescendantPairs(task.Sentence.Term)
	share := budget.Distribute(task.Budget, len(pairs)*2)

	for _, pair := range pairs {
		ancestor, descendant := pair[0], pair[1]
		ancestorConcept := m.pickOrGenerateConcept(ancestor, share)
		descendantConcept := m.pickOrGenerateConcept(descendant, share)

		forward := concept.ClassifyLink(descendant, ancestor, false)
		backward := concept.ClassifyLink(ancestor, descendant, false)

		fwdPath, _ := term.FindPath(descendant, ancestor)
		bwdPath, _ := term.FindPath(ancestor, descendant)

		fwd := &concept.TermLink{Source: ancestorConcept, Target: descendantConcept, Budget: share, Type: forward, Path: fwdPath}
		bwd := &concept.TermLink{Source: descendantConcept, Target: ancestorConcept, Budget: share, Type: backward, Path: bwdPath}

		ancestorConcept.TermLinks.PutIn(fwd.Key(), fwd, share)
		descendantConcept.TermLinks.PutIn(bwd.Key(), bwd, share)
	}
}

// processYesNoQuestion implements Memory.processYesNoQuestion (spec
// §4.3): records the question, then tries the best candidate belief as
// a solution.
func (m *Memory) processYesNoQuestion(query *sentence.Value, c *concept.Value, taskBudget *budget.Value) *sentence.Value {
	c.AddQuestion(query)
	candidate := concept.SelectCandidate(&sentence.Task{Sentence: query}, c.Beliefs())
	if candidate == nil {
		return nil
	}
	return m.trySolution(query, candidate, taskBudget, c)
}

// processWhQuestion implements Memory.processWhQuestion (spec §4.3):
// for each non-query subterm of the query, walk that subterm's
// concept's task-links to reach neighbouring concepts, attempt to
// unify the query term against each neighbour's term, and try every
// belief of a concept whose term matches as a solution.
func (m *Memory) processWhQuestion(query *sentence.Value, c *concept.Value, taskBudget *budget.Value) *sentence.Value {
	c.AddQuestion(query)

	var best *sentence.Value
	for _, sub := range term.DistinctSubterms(query.Term) {
		if sub.HasVar(term.Query) {
			continue
		}
		subConcept, ok := m.conceptAtLocked(sub.Name())
		if !ok {
			continue
		}
		subConcept.TaskLinks.Walk(func(_ string, tl *concept.TaskLink, _ budget.Value) {
			targetConcept, ok := m.conceptAtLocked(tl.Target.Sentence.Term.Name())
			if !ok {
				return
			}
			if _, matched := unifyTerm(query.Term, targetConcept.Term, map[string]term.Term{}); !matched {
				return
			}
			for _, belief := range targetConcept.Beliefs() {
				if answer := m.trySolution(query, belief, taskBudget, targetConcept); answer != nil {
					best = answer
				}
			}
		})
	}
	return best
}

// trySolution implements Memory.trySolution (spec §4.3): adopts belief
// as the query's best solution if none exists yet, or if it strictly
// improves on the current best by solution-quality; rewards the belief's
// concept and damps the query task's own priority accordingly. taskBudget
// and solutionConcept may be nil (the synthetic Task built for
// SelectCandidate has no real Budget to reward against).
func (m *Memory) trySolution(query, belief *sentence.Value, taskBudget *budget.Value, solutionConcept *concept.Value) *sentence.Value {
	current := query.BestSolution()
	if current == nil {
		query.SetBestSolution(belief)
		m.rewardSolution(query, belief, taskBudget, solutionConcept)
		return belief
	}

	oldQuality := concept.SolutionQuality(query, current, false)
	newQuality := concept.SolutionQuality(query, belief, false)
	if newQuality <= oldQuality {
		return nil
	}

	query.SetBestSolution(belief)
	m.rewardSolution(query, belief, taskBudget, solutionConcept)
	return belief
}

// rewardSolution implements the budget side of spec §4.3's
// trySolution: the question's own priority is damped in proportion to
// how confident the new solution is (a well-answered question need not
// keep competing for attention), while the concept that supplied the
// belief has its bag priority activated in proportion to that same
// confidence (spec §4.5 BudgetFunctions.activate), rewarding the part
// of memory that produced a useful answer.
func (m *Memory) rewardSolution(query, belief *sentence.Value, taskBudget *budget.Value, solutionConcept *concept.Value) {
	quality := numeric.Clamp(concept.SolutionQuality(query, belief, true))

	if taskBudget != nil {
		taskBudget.Priority = numeric.ProbAND(taskBudget.Priority, numeric.Clamp(1-quality.Value()))
	}

	if solutionConcept != nil {
		entry, ok := m.concepts.Peek(solutionConcept.Name())
		if !ok {
			return
		}
		increment := budget.Value{Priority: quality, Durability: quality, Quality: quality}
		m.concepts.PutIn(solutionConcept.Name(), solutionConcept, budget.Activate(entry.Budget, increment))
	}
}

// snapshotKeys walks every level of a bag and returns its keys in
// arbitrary order, without removing anything. Declared generically so
// both the concept bag and the task bag can reuse it.
func snapshotKeys[V any](b *bag.Bag[V]) []string {
	var keys []string
	b.Walk(func(key string, _ V, _ budget.Value) {
		keys = append(keys, key)
	})
	return keys
}
