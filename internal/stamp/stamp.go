// Package stamp implements the evidential Stamp of spec §3/§4.5: the
// evidence base that prevents circular self-revision, tense and
// occurrence time, and the interleaving merge used by the revision rule.
package stamp

import "nars-core/internal/clock"

// Tense marks how a sentence's occurrence time relates to the moment it
// was spoken, per spec §3.
type Tense int

const (
	// TenseNone marks an eternal (eventless) sentence constructed with no
	// tense specified.
	TenseNone Tense = iota
	TenseEternal
	TensePast
	TensePresent
	TenseFuture
)

// Duration is the default temporal offset a sequential/predictive copula
// adds between two revised stamps' occurrence times (spec §6 DURATION=5).
const Duration = 5

// EvidenceEntry identifies a single input event: which NARS instance
// produced it (NarID) and that instance's monotonically increasing
// input-serial.
type EvidenceEntry struct {
	NarID  int64
	Serial int64
}

// MaxEvidenceLength bounds the evidence base so that it eventually
// forgets its oldest ancestry rather than growing without limit (spec
// §3 "MAX_EVIDENTIAL_BASE_LENGTH=20000").
const MaxEvidenceLength = 20000

// Value carries a sentence's provenance: the evidence base (every input
// event that contributed, directly or by revision, to this belief),
// creation time, occurrence time (or clock.Eternal) and tense.
type Value struct {
	Evidence       []EvidenceEntry
	CreationTime   int64
	OccurrenceTime int64
	Tense          Tense
}

// New creates a fresh stamp for a just-input sentence, consuming exactly
// one evidence-base entry from the context.
func New(ctx *clock.Context, occurrenceTime int64, tense Tense) Value {
	return Value{
		Evidence:       []EvidenceEntry{{NarID: ctx.NarID(), Serial: ctx.NextSerial()}},
		CreationTime:   ctx.Now(),
		OccurrenceTime: occurrenceTime,
		Tense:          tense,
	}
}

// IsEternal reports whether this stamp carries no occurrence time.
func (s Value) IsEternal() bool {
	return s.OccurrenceTime == clock.Eternal
}

// Overlaps reports whether two stamps share any evidence-base entry —
// the revision rule must refuse to combine overlapping stamps, since
// doing so would double-count shared ancestry (spec §4.4 "no stamp-base
// overlap"). Symmetric by construction.
func Overlaps(a, b Value) bool {
	seen := make(map[EvidenceEntry]bool, len(a.Evidence))
	for _, e := range a.Evidence {
		seen[e] = true
	}
	for _, e := range b.Evidence {
		if seen[e] {
			return true
		}
	}
	return false
}

// ReviseOptions carries the temporal-interval parameters StampFunctions
// .revision applies on top of a plain evidence merge (spec §4.5): an
// interval added to the merged occurrence time (+Duration for `&/`,
// `=/>`, `</>`; -Duration for `=\>`; 0 for non-temporal copulas),
// optionally negated by ReverseOrder, plus an arbitrary TimeBias.
type ReviseOptions struct {
	Interval     int64
	ReverseOrder bool
	TimeBias     int64
}

// Revise implements StampFunctions.revision (spec §4.5): interleaves the
// two evidential bases (zip-then-flatten), truncates to
// MaxEvidenceLength, stamps creationTime at the context's current
// logical time, and sets occurrenceTime to the max of the two parents'
// (when both are non-eternal) shifted by opts' interval/bias.
func Revise(ctx *clock.Context, a, b Value, opts ReviseOptions) Value {
	merged := interleave(a.Evidence, b.Evidence)

	var occurrence int64 = clock.Eternal
	tense := TenseNone
	if !a.IsEternal() && !b.IsEternal() {
		occurrence = a.OccurrenceTime
		if b.OccurrenceTime > occurrence {
			occurrence = b.OccurrenceTime
		}
		interval := opts.Interval
		if opts.ReverseOrder {
			interval = -interval
		}
		occurrence += interval + opts.TimeBias
		tense = a.Tense
	}

	return Value{
		Evidence:       merged,
		CreationTime:   ctx.Now(),
		OccurrenceTime: occurrence,
		Tense:          tense,
	}
}

// Merge is the plain (non-temporal) evidence-base merge, for parent
// sentences that carry no interval/bias: equivalent to Revise with a
// zero-valued ReviseOptions, which is the call Concept's LocalRevision
// makes directly.
func Merge(ctx *clock.Context, a, b Value) Value {
	return Revise(ctx, a, b, ReviseOptions{})
}

func interleave(a, b []EvidenceEntry) []EvidenceEntry {
	merged := make([]EvidenceEntry, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		if i < len(a) {
			merged = append(merged, a[i])
			i++
		}
		if j < len(b) {
			merged = append(merged, b[j])
			j++
		}
	}
	if len(merged) > MaxEvidenceLength {
		merged = merged[:MaxEvidenceLength]
	}
	return merged
}

// Eternalized returns a copy of s with its occurrence time cleared, used
// when a temporal belief is folded into the atemporal layer (spec §4.5
// eternalization, paired with truth.Eternalize).
func Eternalized(s Value) Value {
	return Value{
		Evidence:       s.Evidence,
		CreationTime:   s.CreationTime,
		OccurrenceTime: clock.Eternal,
		Tense:          TenseNone,
	}
}
