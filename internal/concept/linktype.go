package concept

import "nars-core/internal/term"

// LinkType classifies the structural relationship a TaskLink or TermLink
// records between its source and target term (spec §4.6).
type LinkType int

const (
	Self LinkType = iota
	Component
	Compound
	ComponentStatement
	CompoundStatement
	ComponentCondition
	CompoundCondition
	Transform
)

// ClassifyLink implements the link-typing algorithm of spec §4.6: given
// a source and target term, and whether transform-links are enabled for
// this link kind (true for task-links, false for term-links), it
// returns the structural LinkType connecting them.
func ClassifyLink(source, target term.Term, enableTransform bool) LinkType {
	path, found := term.FindPath(source, target)
	if found {
		if term.Equal(source, target) {
			return Self
		}
		if stmt, ok := target.(term.Statement); ok {
			if len(path) >= 3 && enableTransform && isTransformChain(path) {
				return Transform
			}
			higherOrder := stmt.Copula().IsHigherOrder()
			isEndpoint := term.Equal(source, stmt.Subject()) || term.Equal(source, stmt.Predicate())
			if higherOrder && isEndpoint {
				return ComponentCondition
			}
			return ComponentStatement
		}
		if _, ok := target.(term.CompoundTerm); ok {
			return Compound
		}
		return Compound
	}

	if stmt, ok := source.(term.Statement); ok {
		if stmt.Copula().IsHigherOrder() {
			if term.Equal(source, target) {
				return CompoundStatement
			}
			return CompoundCondition
		}
		return ComponentStatement
	}
	if _, ok := source.(term.CompoundTerm); ok {
		return Compound
	}
	return Compound
}

// isTransformChain reports whether path[len-3] (the grandparent, relative to
// the deepest element) is a Statement and path[len-2] (the parent) is a
// Compound whose connector is a product or image — the shape spec §4.6
// requires for a TRANSFORM classification.
func isTransformChain(path []term.Term) bool {
	n := len(path)
	grandparent := path[n-3]
	parent := path[n-2]

	if _, ok := grandparent.(term.Statement); !ok {
		return false
	}
	compound, ok := parent.(term.CompoundTerm)
	if !ok {
		return false
	}
	switch compound.Connector() {
	case term.Product, term.ExtImage, term.IntImage:
		return true
	}
	return false
}
