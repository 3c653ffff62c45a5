package memory

import "nars-core/internal/term"

// unifyTerm structurally matches a query term (which may carry `?`
// query-variables) against a concrete candidate term, accumulating
// variable bindings. Used by processWhQuestion (spec §4.3) to bind a
// query's `?x` against the matching subterm of a remembered belief.
func unifyTerm(query, candidate term.Term, sub map[string]term.Term) (map[string]term.Term, bool) {
	if atom, ok := query.(term.Atom); ok && atom.Kind() == term.Query {
		if bound, exists := sub[atom.Name()]; exists {
			if bound.Name() != candidate.Name() {
				return nil, false
			}
			return sub, true
		}
		sub[atom.Name()] = candidate
		return sub, true
	}

	switch qt := query.(type) {
	case term.Atom:
		if candidate.Name() != qt.Name() {
			return nil, false
		}
		return sub, true
	case term.Statement:
		ct, ok := candidate.(term.Statement)
		if !ok || ct.Copula() != qt.Copula() {
			return nil, false
		}
		next, ok := unifyTerm(qt.Subject(), ct.Subject(), sub)
		if !ok {
			return nil, false
		}
		return unifyTerm(qt.Predicate(), ct.Predicate(), next)
	case term.CompoundTerm:
		ct, ok := candidate.(term.CompoundTerm)
		if !ok || ct.Connector() != qt.Connector() || len(ct.Subterms()) != len(qt.Subterms()) {
			return nil, false
		}
		next := sub
		for i, child := range qt.Subterms() {
			var ok bool
			next, ok = unifyTerm(child, ct.Subterms()[i], next)
			if !ok {
				return nil, false
			}
		}
		return next, true
	default:
		return nil, false
	}
}
