// Package narsese implements the minimum Narsese surface grammar of
// spec §6: a pure string→Task function, kept deliberately separate
// from memory/reasoner so the reasoning core never depends on a
// parser, only on the *sentence.Task type it produces.
package narsese

import (
	"fmt"
	"strconv"
	"strings"

	"nars-core/internal/budget"
	"nars-core/internal/clock"
	"nars-core/internal/sentence"
	"nars-core/internal/stamp"
	"nars-core/internal/term"
	"nars-core/internal/truth"
)

// Defaults named in spec §6.
const (
	DefaultJudgmentPriority   = 0.8
	DefaultJudgmentDurability = 0.5
	DefaultJudgmentConfidence = 0.9
	DefaultQuestionPriority   = 0.9
	DefaultQuestionDurability = 0.9
	DefaultGoalPriority       = 0.9
	DefaultGoalDurability     = 0.5
)

var knownCopulas = []term.Copula{
	term.PredictiveImpl, term.ConcurrentImpl, term.RetrospectiveImpl,
	term.PredictiveEquiv, term.ConcurrentEquiv,
	term.Instance, term.Property, term.InstanceProperty,
	term.Inheritance, term.Similarity, term.Implication, term.Equivalence,
}

// Parse reads one `[budget] sentence` input (spec §6) and produces the
// Task it denotes, stamping it against ctx's logical clock.
func Parse(ctx *clock.Context, text string) (*sentence.Task, error) {
	p := &parser{input: strings.TrimSpace(text)}

	explicitBudget, hasBudget, err := p.parseBudget()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	punct, err := p.parsePunctuation()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	tense := p.parseTense()

	p.skipSpace()
	freq, conf, k, hasTruth, err := p.parseTruth()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, &ParseError{Input: text, Message: "trailing input after sentence"}
	}

	var occurrenceTime int64 = clock.Eternal
	if tense != stamp.TenseNone && tense != stamp.TenseEternal {
		occurrenceTime = ctx.Now()
	}
	st := stamp.New(ctx, occurrenceTime, tense)

	var s *sentence.Value
	var defaultPriority, defaultDurability float64

	switch punct {
	case sentence.Judgment:
		if !hasTruth {
			freq, conf, k = 1.0, DefaultJudgmentConfidence, truth.DefaultHorizon
		}
		tv, err := truth.New(freq, conf, k)
		if err != nil {
			return nil, fmt.Errorf("narsese: invalid truth: %w", err)
		}
		s = sentence.NewJudgment(t, tv, st)
		defaultPriority, defaultDurability = DefaultJudgmentPriority, DefaultJudgmentDurability
	case sentence.Question:
		s = sentence.NewQuestion(t, st)
		defaultPriority, defaultDurability = DefaultQuestionPriority, DefaultQuestionDurability
	case sentence.Goal:
		if !hasTruth {
			freq, conf, k = 1.0, DefaultJudgmentConfidence, truth.DefaultHorizon
		}
		tv, err := truth.New(freq, conf, k)
		if err != nil {
			return nil, fmt.Errorf("narsese: invalid truth: %w", err)
		}
		s = sentence.NewGoal(t, tv, st)
		defaultPriority, defaultDurability = DefaultGoalPriority, DefaultGoalDurability
	}

	var b budget.Value
	if hasBudget {
		b = explicitBudget
	} else {
		quality := 0.5
		if s.Truth != nil {
			quality = truth.ToQuality(*s.Truth)
		}
		b, err = budget.New(defaultPriority, defaultDurability, quality)
		if err != nil {
			return nil, fmt.Errorf("narsese: invalid default budget: %w", err)
		}
	}

	return &sentence.Task{Sentence: s, Budget: b, Type: sentence.Input}, nil
}

// ParseError reports a Narsese-syntax failure (spec §7 parse failure).
type ParseError struct {
	Input   string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("narsese: parse error: %s (input: %q)", e.Message, e.Input)
}

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

// parseBudget reads an optional `$priority;durability;quality$` prefix.
func (p *parser) parseBudget() (budget.Value, bool, error) {
	if p.peek() != '$' {
		return budget.Value{}, false, nil
	}
	start := p.pos + 1
	end := strings.IndexByte(p.input[start:], '$')
	if end < 0 {
		return budget.Value{}, false, &ParseError{Input: p.input, Message: "unterminated budget"}
	}
	fields := strings.Split(p.input[start:start+end], ";")
	if len(fields) != 3 {
		return budget.Value{}, false, &ParseError{Input: p.input, Message: "budget requires exactly 3 fields"}
	}
	vals := make([]float64, 3)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return budget.Value{}, false, &ParseError{Input: p.input, Message: "budget field not numeric"}
		}
		vals[i] = v
	}
	p.pos = start + end + 1
	b, err := budget.New(vals[0], vals[1], vals[2])
	if err != nil {
		return budget.Value{}, false, fmt.Errorf("narsese: invalid budget: %w", err)
	}
	return b, true, nil
}

func (p *parser) parsePunctuation() (sentence.Punctuation, error) {
	if p.pos >= len(p.input) {
		return 0, &ParseError{Input: p.input, Message: "missing punctuation"}
	}
	switch p.input[p.pos] {
	case '.':
		p.pos++
		return sentence.Judgment, nil
	case '?':
		p.pos++
		return sentence.Question, nil
	case '!':
		p.pos++
		return sentence.Goal, nil
	default:
		return 0, &ParseError{Input: p.input, Message: "expected one of . ? !"}
	}
}

var tenseTokens = map[string]stamp.Tense{
	":/:":  stamp.TenseFuture,
	":|:":  stamp.TensePresent,
	":\\:": stamp.TensePast,
	":-:":  stamp.TenseEternal,
}

func (p *parser) parseTense() stamp.Tense {
	for tok, tense := range tenseTokens {
		if strings.HasPrefix(p.input[p.pos:], tok) {
			p.pos += len(tok)
			return tense
		}
	}
	return stamp.TenseNone
}

// parseTruth reads an optional `%frequency[;confidence[;k]]%` suffix.
func (p *parser) parseTruth() (freq, conf float64, k int, ok bool, err error) {
	if p.peek() != '%' {
		return 0, 0, 0, false, nil
	}
	start := p.pos + 1
	end := strings.IndexByte(p.input[start:], '%')
	if end < 0 {
		return 0, 0, 0, false, &ParseError{Input: p.input, Message: "unterminated truth value"}
	}
	fields := strings.Split(p.input[start:start+end], ";")
	if len(fields) < 1 || len(fields) > 3 {
		return 0, 0, 0, false, &ParseError{Input: p.input, Message: "truth value requires 1 to 3 fields"}
	}
	freq, perr := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if perr != nil {
		return 0, 0, 0, false, &ParseError{Input: p.input, Message: "truth frequency not numeric"}
	}
	conf = DefaultJudgmentConfidence
	k = truth.DefaultHorizon
	if len(fields) >= 2 {
		conf, perr = strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if perr != nil {
			return 0, 0, 0, false, &ParseError{Input: p.input, Message: "truth confidence not numeric"}
		}
	}
	if len(fields) == 3 {
		kv, perr := strconv.Atoi(strings.TrimSpace(fields[2]))
		if perr != nil {
			return 0, 0, 0, false, &ParseError{Input: p.input, Message: "truth k_evidence not an integer"}
		}
		k = kv
	}
	p.pos = start + end + 1
	return freq, conf, k, true, nil
}

// parseTerm reads an atom, variable, negation, statement or compound
// term, in the same canonical shapes term.Term.Name() prints, so a
// derived conclusion can always be re-parsed (spec §4.9 step 6).
func (p *parser) parseTerm() (term.Term, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, &ParseError{Input: p.input, Message: "unexpected end of input"}
	}
	switch p.input[p.pos] {
	case '<':
		return p.parseStatement()
	case '(':
		return p.parseParenTerm()
	case '{':
		return p.parseSet('{', '}', term.ExtSet)
	case '[':
		return p.parseSet('[', ']', term.IntSet)
	default:
		return p.parseAtomOrVariable()
	}
}

func (p *parser) parseStatement() (term.Term, error) {
	p.pos++ // consume '<'
	subject, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	copula, err := p.parseCopula()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	predicate, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != '>' {
		return nil, &ParseError{Input: p.input, Message: "expected closing '>'"}
	}
	p.pos++
	return term.NewStatement(subject, copula, predicate), nil
}

func (p *parser) parseCopula() (term.Copula, error) {
	for _, c := range knownCopulas {
		if strings.HasPrefix(p.input[p.pos:], string(c)) {
			p.pos += len(c)
			return c, nil
		}
	}
	return "", &ParseError{Input: p.input, Message: "unrecognized copula"}
}

// parseParenTerm handles `(--,inner)` negation and `(connector,c1,c2,...)`
// compound terms.
func (p *parser) parseParenTerm() (term.Term, error) {
	p.pos++ // consume '('
	p.skipSpace()

	if strings.HasPrefix(p.input[p.pos:], string(term.Negation)) {
		p.pos += len(term.Negation)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
		}
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, &ParseError{Input: p.input, Message: "expected closing ')'"}
		}
		p.pos++
		return term.NewCompound(term.Negation, inner), nil
	}

	connector, err := p.parseConnectorToken()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != ',' {
		return nil, &ParseError{Input: p.input, Message: "expected ',' after connector"}
	}
	p.pos++

	var children []term.Term
	for {
		p.skipSpace()
		child, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	p.skipSpace()
	if p.peek() != ')' {
		return nil, &ParseError{Input: p.input, Message: "expected closing ')'"}
	}
	p.pos++
	return term.NewCompound(connector, children...), nil
}

var connectorTokens = []term.Connector{
	term.Conjunction, term.Disjunction, term.ParallelEvents, term.SequentialEvents,
	term.Product, term.ExtImage, term.IntImage, term.IntExt, term.IntInt,
	term.ExtDiff, term.IntDiff,
}

func (p *parser) parseConnectorToken() (term.Connector, error) {
	for _, c := range connectorTokens {
		if strings.HasPrefix(p.input[p.pos:], string(c)) {
			p.pos += len(c)
			return c, nil
		}
	}
	return "", &ParseError{Input: p.input, Message: "unrecognized connector"}
}

func (p *parser) parseSet(open, close byte, connector term.Connector) (term.Term, error) {
	p.pos++ // consume open bracket
	var children []term.Term
	for {
		p.skipSpace()
		child, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		p.skipSpace()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	p.skipSpace()
	if p.peek() != close {
		return nil, &ParseError{Input: p.input, Message: "expected closing bracket"}
	}
	p.pos++
	return term.NewCompound(connector, children...), nil
}

func (p *parser) parseAtomOrVariable() (term.Term, error) {
	kind := term.NoVar
	switch p.peek() {
	case '$':
		kind = term.Independent
		p.pos++
	case '#':
		kind = term.Dependent
		p.pos++
	case '?':
		kind = term.Query
		p.pos++
	}

	start := p.pos
	for p.pos < len(p.input) && isAtomRune(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, &ParseError{Input: p.input, Message: "expected atom or variable name"}
	}
	name := p.input[start:p.pos]
	if kind == term.NoVar {
		return term.NewAtom(name), nil
	}
	return term.NewVariable(kind, name), nil
}

func isAtomRune(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
