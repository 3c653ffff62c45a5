package rules

// Substitution maps a rule-language variable name to the pattern it is
// bound to.
type Substitution map[string]*Pattern

// clone returns a shallow copy of s, used so a failed unification
// attempt never mutates the substitution seen by the caller.
func (s Substitution) clone() Substitution {
	out := make(Substitution, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Deref follows variable bindings transitively until it reaches a
// non-variable pattern or an unbound variable (spec §4.8 "dereferencing
// chases bindings transitively").
func Deref(p *Pattern, sub Substitution) *Pattern {
	for p.Kind == KindVar {
		bound, ok := sub[p.Name]
		if !ok {
			return p
		}
		p = bound
	}
	return p
}

// occurs reports whether variable name appears anywhere inside p, after
// dereferencing through sub — the occurs-check that keeps unification
// from building an infinite pattern.
func occurs(name string, p *Pattern, sub Substitution) bool {
	p = Deref(p, sub)
	switch p.Kind {
	case KindVar:
		return p.Name == name
	case KindNegation:
		return occurs(name, p.Inner, sub)
	case KindStatement:
		return occurs(name, p.Subject, sub) || occurs(name, p.Predicate, sub)
	default:
		return false
	}
}

// Unify attempts to unify a and b under sub, returning the extended
// substitution on success. It is a first-order syntactic unifier with
// occurs-check over {Atom, Variable, Statement, Negation} (spec §4.8).
func Unify(a, b *Pattern, sub Substitution) (Substitution, bool) {
	a = Deref(a, sub)
	b = Deref(b, sub)

	if a.Kind == KindVar {
		return bindVar(a.Name, b, sub)
	}
	if b.Kind == KindVar {
		return bindVar(b.Name, a, sub)
	}

	if a.Kind != b.Kind {
		return nil, false
	}

	switch a.Kind {
	case KindAtom:
		if a.Name != b.Name {
			return nil, false
		}
		return sub, true
	case KindNegation:
		return Unify(a.Inner, b.Inner, sub)
	case KindStatement:
		if a.Copula != b.Copula {
			return nil, false
		}
		next, ok := Unify(a.Subject, b.Subject, sub)
		if !ok {
			return nil, false
		}
		return Unify(a.Predicate, b.Predicate, next)
	default:
		return nil, false
	}
}

func bindVar(name string, value *Pattern, sub Substitution) (Substitution, bool) {
	if value.Kind == KindVar && value.Name == name {
		return sub, true
	}
	if occurs(name, value, sub) {
		return nil, false
	}
	next := sub.clone()
	next[name] = value
	return next, true
}

// Instantiate replaces every variable in template with its binding in
// sub, producing a ground pattern suitable for rendering into a
// conclusion string. Variables left unbound are passed through as-is.
func Instantiate(template *Pattern, sub Substitution) *Pattern {
	switch template.Kind {
	case KindVar:
		bound := Deref(template, sub)
		if bound.Kind == KindVar {
			return bound
		}
		return Instantiate(bound, sub)
	case KindNegation:
		return Negation(Instantiate(template.Inner, sub))
	case KindStatement:
		return Stmt(Instantiate(template.Subject, sub), template.Copula, Instantiate(template.Predicate, sub))
	default:
		return template
	}
}
