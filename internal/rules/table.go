package rules

import (
	"fmt"
	"strings"
)

// Rule is a single entry from a rule-table block (spec §6): one or two
// premise patterns, a conclusion template, a name, and whether this is
// the "inverse variant" (marked by a trailing `'` on the name).
type Rule struct {
	Premises   []*Pattern
	Conclusion *Pattern
	Name       string
	Inverse    bool
	Source     string // the original line, kept for diagnostics
}

// ParseTable parses one rule-table block's text (spec §6): lines
// starting with `#` or `'` are comments; blank lines are skipped; every
// other line must be a one-premise `P |- C .name[']` or two-premise
// `{P1. P2} |- C .name[']` rule. A malformed line fails the whole block
// (spec §7 "loading is atomic per block").
func ParseTable(text string) ([]Rule, error) {
	var out []Rule
	for lineNo, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "'") {
			continue
		}
		rule, err := parseRuleLine(line)
		if err != nil {
			return nil, fmt.Errorf("rules: line %d: %w", lineNo+1, err)
		}
		rule.Source = line
		out = append(out, *rule)
	}
	return out, nil
}

func parseRuleLine(line string) (*Rule, error) {
	sepIdx := strings.Index(line, "|-")
	if sepIdx < 0 {
		return nil, fmt.Errorf("missing '|-' separator in rule %q", line)
	}
	premiseText := strings.TrimSpace(line[:sepIdx])
	rest := strings.TrimSpace(line[sepIdx+2:])

	conclusionText, name, inverse, err := splitConclusionAndName(rest)
	if err != nil {
		return nil, err
	}

	premises, err := parsePremises(premiseText)
	if err != nil {
		return nil, err
	}
	conclusion, err := Parse(conclusionText)
	if err != nil {
		return nil, fmt.Errorf("conclusion: %w", err)
	}

	return &Rule{Premises: premises, Conclusion: conclusion, Name: name, Inverse: inverse}, nil
}

// splitConclusionAndName separates "<conclusion pattern> .name" (or
// ".name'" for the inverse variant) on the trailing dot.
func splitConclusionAndName(rest string) (conclusion, name string, inverse bool, err error) {
	lastDot := strings.LastIndex(rest, ".")
	if lastDot < 0 {
		return "", "", false, fmt.Errorf("missing '.name' suffix in %q", rest)
	}
	conclusion = strings.TrimSpace(rest[:lastDot])
	name = strings.TrimSpace(rest[lastDot+1:])
	if strings.HasSuffix(name, "'") {
		inverse = true
		name = strings.TrimSuffix(name, "'")
	}
	if name == "" {
		return "", "", false, fmt.Errorf("empty rule name in %q", rest)
	}
	return conclusion, name, inverse, nil
}

func parsePremises(text string) ([]*Pattern, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		inner := text[1 : len(text)-1]
		parts := strings.SplitN(inner, ".", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("two-premise rule must have exactly two premises in %q", text)
		}
		p1, err := Parse(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("premise 1: %w", err)
		}
		p2, err := Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("premise 2: %w", err)
		}
		return []*Pattern{p1, p2}, nil
	}

	p, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("premise: %w", err)
	}
	return []*Pattern{p}, nil
}
