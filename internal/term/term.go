// Package term implements the polymorphic term tree of spec §3: atoms,
// compound terms and statements, compared structurally by canonical name.
//
// Terms are represented as a tagged variant (Go interface with a closed set
// of implementations) rather than an inheritance hierarchy, per spec §9.
// Canonical name is the sole identity used for equality; Go's built-in
// string equality gives us interning for free when callers pool terms.
package term

import (
	"sort"
	"strings"
)

// VarKind enumerates the three Narsese variable kinds.
type VarKind int

const (
	// NoVar marks a term containing no variable.
	NoVar VarKind = iota
	// Independent is the `$` variable kind.
	Independent
	// Dependent is the `#` variable kind.
	Dependent
	// Query is the `?` variable kind.
	Query
)

// Term is the common interface implemented by Atom, CompoundTerm and
// Statement. All implementations are value types compared by Name().
type Term interface {
	// Name is the canonical printable form, and the sole identity used
	// for equality.
	Name() string
	// Complexity is 1 for an Atom, 1+sum(children complexity) otherwise.
	Complexity() int
	// HasVar reports whether this term or any descendant carries a
	// variable of the given kind (NoVar matches "any variable kind").
	HasVar(kind VarKind) bool
	// Subterms enumerates this term's direct children, empty for Atom.
	Subterms() []Term
}

// Equal compares two terms structurally by canonical name.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name() == b.Name()
}

// Atom is a term with no internal structure: a plain name, or a variable
// token (`$x`, `#x`, `?x`).
type Atom struct {
	name string
	kind VarKind
}

// NewAtom constructs a plain (non-variable) atom.
func NewAtom(name string) Atom {
	return Atom{name: name, kind: NoVar}
}

// NewVariable constructs a variable atom of the given kind.
func NewVariable(kind VarKind, name string) Atom {
	prefix := "$"
	switch kind {
	case Dependent:
		prefix = "#"
	case Query:
		prefix = "?"
	}
	return Atom{name: prefix + name, kind: kind}
}

func (a Atom) Name() string             { return a.name }
func (a Atom) Complexity() int          { return 1 }
func (a Atom) Subterms() []Term         { return nil }
func (a Atom) Kind() VarKind            { return a.kind }
func (a Atom) IsVariable() bool         { return a.kind != NoVar }
func (a Atom) HasVar(kind VarKind) bool {
	if a.kind == NoVar {
		return false
	}
	if kind == NoVar {
		return true
	}
	return a.kind == kind
}

// Connector enumerates the compound-term connectors of spec §3.
type Connector string

const (
	Conjunction      Connector = "&&"
	Disjunction      Connector = "||"
	Negation         Connector = "--"
	Product          Connector = "*"
	ParallelEvents   Connector = "&|"
	SequentialEvents Connector = "&/"
	IntExt           Connector = "|" // extensional intersection
	IntInt           Connector = "&" // intensional intersection
	ExtDiff          Connector = "-"
	IntDiff          Connector = "~"
	ExtImage         Connector = "/"
	IntImage         Connector = "\\"
	ExtSet           Connector = "{}"
	IntSet           Connector = "[]"
)

// arity constrains how many children a connector accepts.
type arity int

const (
	aritySingle   arity = iota // exactly one child
	arityDouble                // exactly two children
	arityMultiple              // two or more children
)

// connectorMeta describes arity and commutativity per connector.
type connectorMeta struct {
	arity         arity
	commutative   bool
	temporal      bool
}

var connectorTable = map[Connector]connectorMeta{
	Conjunction:      {arityMultiple, true, false},
	Disjunction:      {arityMultiple, true, false},
	Negation:         {aritySingle, false, false},
	Product:          {arityMultiple, false, false},
	ParallelEvents:   {arityMultiple, true, true},
	SequentialEvents: {arityMultiple, false, true},
	IntExt:           {arityMultiple, true, false},
	IntInt:           {arityMultiple, true, false},
	ExtDiff:          {arityDouble, false, false},
	IntDiff:          {arityDouble, false, false},
	ExtImage:         {arityMultiple, false, false},
	IntImage:         {arityMultiple, false, false},
	ExtSet:           {arityMultiple, true, false},
	IntSet:           {arityMultiple, true, false},
}

// IsCommutative reports whether a connector's children are order-independent.
func (c Connector) IsCommutative() bool {
	return connectorTable[c].commutative
}

// IsTemporal reports whether a connector carries temporal semantics.
func (c Connector) IsTemporal() bool {
	return connectorTable[c].temporal
}

// CompoundTerm is a connector applied to an ordered sequence of children.
type CompoundTerm struct {
	connector Connector
	children  []Term
	name      string
}

// NewCompound builds a CompoundTerm, validating the connector's arity rule
// and canonicalizing child order for commutative connectors so that
// structurally-equal compounds produce the same canonical name.
func NewCompound(connector Connector, children ...Term) CompoundTerm {
	meta := connectorTable[connector]
	switch meta.arity {
	case aritySingle:
		if len(children) != 1 {
			panic("term: connector " + string(connector) + " requires exactly one child")
		}
	case arityDouble:
		if len(children) != 2 {
			panic("term: connector " + string(connector) + " requires exactly two children")
		}
	case arityMultiple:
		if len(children) < 2 {
			panic("term: connector " + string(connector) + " requires at least two children")
		}
	}

	ordered := make([]Term, len(children))
	copy(ordered, children)
	if meta.commutative {
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].Name() < ordered[j].Name()
		})
	}

	names := make([]string, len(ordered))
	for i, c := range ordered {
		names[i] = c.Name()
	}
	name := "(" + string(connector) + "," + strings.Join(names, ",") + ")"
	switch connector {
	case ExtSet:
		name = "{" + strings.Join(names, ",") + "}"
	case IntSet:
		name = "[" + strings.Join(names, ",") + "]"
	}

	return CompoundTerm{connector: connector, children: ordered, name: name}
}

func (c CompoundTerm) Name() string      { return c.name }
func (c CompoundTerm) Connector() Connector { return c.connector }
func (c CompoundTerm) Subterms() []Term  { return c.children }

func (c CompoundTerm) Complexity() int {
	total := 1
	for _, child := range c.children {
		total += child.Complexity()
	}
	return total
}

func (c CompoundTerm) HasVar(kind VarKind) bool {
	for _, child := range c.children {
		if child.HasVar(kind) {
			return true
		}
	}
	return false
}

// Copula enumerates the statement copulas of spec §3.
type Copula string

const (
	Inheritance       Copula = "-->"
	Similarity        Copula = "<->"
	Instance          Copula = "{--"
	Property          Copula = "--]"
	InstanceProperty  Copula = "{-]"
	Implication       Copula = "==>"
	Equivalence       Copula = "<=>"
	PredictiveImpl    Copula = "=/>"
	ConcurrentImpl    Copula = "=|>"
	RetrospectiveImpl Copula = "=\\>"
	PredictiveEquiv   Copula = "</>"
	ConcurrentEquiv   Copula = "<|>"
)

// higherOrderCopulas are the temporal/implication/equivalence family;
// all others are first-order (inheritance/similarity family).
var higherOrderCopulas = map[Copula]bool{
	Implication:       true,
	Equivalence:       true,
	PredictiveImpl:    true,
	ConcurrentImpl:    true,
	RetrospectiveImpl: true,
	PredictiveEquiv:   true,
	ConcurrentEquiv:   true,
}

// IsHigherOrder reports whether a copula belongs to the
// temporal/implication/equivalence family (as opposed to first-order
// inheritance/similarity).
func (c Copula) IsHigherOrder() bool {
	return higherOrderCopulas[c]
}

// Statement is a (subject, copula, predicate) triple.
type Statement struct {
	subject   Term
	copula    Copula
	predicate Term
	name      string
}

// NewStatement builds a Statement term.
func NewStatement(subject Term, copula Copula, predicate Term) Statement {
	return Statement{
		subject:   subject,
		copula:    copula,
		predicate: predicate,
		name:      "<" + subject.Name() + " " + string(copula) + " " + predicate.Name() + ">",
	}
}

func (s Statement) Name() string        { return s.name }
func (s Statement) Subject() Term       { return s.subject }
func (s Statement) Copula() Copula      { return s.copula }
func (s Statement) Predicate() Term     { return s.predicate }
func (s Statement) Subterms() []Term    { return []Term{s.subject, s.predicate} }

func (s Statement) Complexity() int {
	return 1 + s.subject.Complexity() + s.predicate.Complexity()
}

func (s Statement) HasVar(kind VarKind) bool {
	return s.subject.HasVar(kind) || s.predicate.HasVar(kind)
}

// Simplicity is 1/complexity, used as the default quality for newly
// generated concepts (spec §4.3 Memory.input).
func Simplicity(t Term) float64 {
	c := t.Complexity()
	if c <= 0 {
		return 1
	}
	return 1.0 / float64(c)
}

// DistinctSubterms returns every distinct subterm of t (including t itself),
// deduplicated by canonical name, in a stable pre-order traversal.
func DistinctSubterms(t Term) []Term {
	seen := map[string]bool{}
	var out []Term
	var walk func(Term)
	walk = func(cur Term) {
		if seen[cur.Name()] {
			return
		}
		seen[cur.Name()] = true
		out = append(out, cur)
		for _, child := range cur.Subterms() {
			walk(child)
		}
	}
	walk(t)
	return out
}

// FindPath performs a depth-first search for source inside target,
// returning the chain of terms from target down to source (inclusive at
// both ends) and true if found. Used by the link-typing algorithm
// (spec §4.6) to classify the structural relationship between two terms.
func FindPath(source, target Term) ([]Term, bool) {
	if Equal(source, target) {
		return []Term{target}, true
	}
	for _, child := range target.Subterms() {
		if path, ok := FindPath(source, child); ok {
			return append([]Term{target}, path...), true
		}
	}
	return nil, false
}

// NegationDepth counts nested Negation connectors from the root of t.
func NegationDepth(t Term) int {
	depth := 0
	cur := t
	for {
		c, ok := cur.(CompoundTerm)
		if !ok || c.Connector() != Negation {
			return depth
		}
		depth++
		cur = c.Subterms()[0]
	}
}

// AncestorDescendantPairs enumerates every (ancestor, descendant) pair in
// t's term tree, excluding (t, t) itself, used to build term-links per
// spec §4.3 createTermLinks.
func AncestorDescendantPairs(t Term) [][2]Term {
	var pairs [][2]Term
	var walk func(Term, []Term)
	walk = func(cur Term, ancestors []Term) {
		chain := append(append([]Term{}, ancestors...), cur)
		for _, child := range cur.Subterms() {
			for _, ancestor := range chain {
				pairs = append(pairs, [2]Term{ancestor, child})
			}
			walk(child, chain)
		}
	}
	walk(t, nil)
	return pairs
}
