// Package errcode classifies the host-facing failure kinds spec §7
// enumerates into stable ERR_NxxxN constants, so a host integration can
// match on category instead of sniffing error text.
//
// Codes are organized into categories:
//   - 1xxx: parse errors (malformed Narsese, malformed rule table)
//   - 2xxx: validation errors (invalid numeric range, empty input)
//   - 3xxx: resource saturation (bag overflow)
package errcode

// Parse errors (1xxx).
const (
	// ErrNarseseParse indicates inputNarsese's text could not be parsed
	// as a sentence (spec §7 "parse failure").
	ErrNarseseParse = "ERR_1001_NARSESE_PARSE"
	// ErrRuleTableMalformed indicates a rule-table line was neither a
	// comment nor a valid rule (spec §7 "rule table malformed").
	ErrRuleTableMalformed = "ERR_1002_RULE_TABLE_MALFORMED"
)

// Validation errors (2xxx).
const (
	// ErrEmptyInput indicates inputNarsese was called with no text
	// (spec §7 "empty input").
	ErrEmptyInput = "ERR_2001_EMPTY_INPUT"
	// ErrInvalidRange indicates a ShortFloat, Truth or Budget field fell
	// outside [0,1] (spec §7 "invalid numeric range").
	ErrInvalidRange = "ERR_2002_INVALID_RANGE"
)

// Resource errors (3xxx).
const (
	// ErrBagOverflow indicates a put-in evicted or rejected an item
	// (spec §7 "resource saturation"); this is soft-recoverable and
	// surfaced only for host visibility, never thrown.
	ErrBagOverflow = "ERR_3001_BAG_OVERFLOW"
)

// Category returns the category name for a code, derived from its
// leading digit.
func Category(code string) string {
	if len(code) < 8 {
		return "unknown"
	}
	switch code[4] {
	case '1':
		return "parse"
	case '2':
		return "validation"
	case '3':
		return "resource"
	default:
		return "unknown"
	}
}
