package rules

import "fmt"

// Explanation records one surviving derivation: the conclusion produced,
// which named rule (and whether its inverse variant) fired, the
// premises matched, and the substitution used (spec §4.8).
type Explanation struct {
	Conclusion      string
	RuleName        string
	Inverse         bool
	PremisesMatched []string
	Substitution    Substitution
}

// Derive runs a single-shot derivation pass over facts (spec §4.8): the
// fact snapshot is fixed for the whole call (derived conclusions are not
// fed back in), every rule is tried against every ordered combination of
// matching facts, guard-filtered, deduplicated per (rule, premises)
// signature, and returned as Explanations for conclusions not already
// present in facts.
func Derive(facts []string, ruleset []Rule) []Explanation {
	factPatterns := make([]*Pattern, len(facts))
	factSet := make(map[string]bool, len(facts))
	for i, f := range facts {
		p, err := Parse(f)
		if err != nil {
			continue
		}
		factPatterns[i] = p
		factSet[f] = true
	}

	var out []Explanation
	fired := make(map[string]bool)

	for _, rule := range ruleset {
		switch len(rule.Premises) {
		case 1:
			deriveUnary(rule, facts, factPatterns, factSet, fired, &out)
		case 2:
			deriveBinary(rule, facts, factPatterns, factSet, fired, &out)
		}
	}

	return out
}

func deriveUnary(rule Rule, facts []string, factPatterns []*Pattern, factSet map[string]bool, fired map[string]bool, out *[]Explanation) {
	for i, fp := range factPatterns {
		if fp == nil {
			continue
		}
		sub, ok := Unify(rule.Premises[0], fp, Substitution{})
		if !ok {
			continue
		}
		signature := fmt.Sprintf("%s|%t|%s", rule.Name, rule.Inverse, facts[i])
		if fired[signature] {
			continue
		}

		conclusion := Instantiate(rule.Conclusion, sub)
		if !passesGuards(rule, conclusion, []*Pattern{fp}) {
			continue
		}
		fired[signature] = true

		name := conclusion.String()
		if factSet[name] {
			continue
		}
		*out = append(*out, Explanation{
			Conclusion:      name,
			RuleName:        rule.Name,
			Inverse:         rule.Inverse,
			PremisesMatched: []string{facts[i]},
			Substitution:    sub,
		})
	}
}

func deriveBinary(rule Rule, facts []string, factPatterns []*Pattern, factSet map[string]bool, fired map[string]bool, out *[]Explanation) {
	for i, fi := range factPatterns {
		if fi == nil {
			continue
		}
		for j, fj := range factPatterns {
			if i == j || fj == nil {
				continue
			}
			sub, ok := Unify(rule.Premises[0], fi, Substitution{})
			if !ok {
				continue
			}
			sub, ok = Unify(rule.Premises[1], fj, sub)
			if !ok {
				continue
			}

			signature := fmt.Sprintf("%s|%t|%s|%s", rule.Name, rule.Inverse, facts[i], facts[j])
			if fired[signature] {
				continue
			}

			conclusion := Instantiate(rule.Conclusion, sub)
			if !passesGuards(rule, conclusion, []*Pattern{fi, fj}) {
				continue
			}
			fired[signature] = true

			name := conclusion.String()
			if factSet[name] {
				continue
			}
			*out = append(*out, Explanation{
				Conclusion:      name,
				RuleName:        rule.Name,
				Inverse:         rule.Inverse,
				PremisesMatched: []string{facts[i], facts[j]},
				Substitution:    sub,
			})
		}
	}
}

// passesGuards implements spec §4.8's guard filters: reject reflexive
// `<X --> X>` conclusions; reject conclusions whose negation depth
// exceeds 1; for the rule named "negative", skip premises that are
// already negations (no double negation introduction).
func passesGuards(rule Rule, conclusion *Pattern, premises []*Pattern) bool {
	if conclusion.IsReflexiveInheritance() {
		return false
	}
	if conclusion.NegationDepth() > 1 {
		return false
	}
	if rule.Name == "negative" {
		for _, p := range premises {
			if p.Kind == KindNegation {
				return false
			}
		}
	}
	return true
}
