package stamp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nars-core/internal/clock"
)

func TestNewStampConsumesOneEvidenceEntry(t *testing.T) {
	ctx := clock.New(1)
	s := New(ctx, clock.Eternal, TenseNone)
	assert.Len(t, s.Evidence, 1)
	assert.True(t, s.IsEternal())
}

func TestOverlapsDetectsSharedEvidence(t *testing.T) {
	ctx := clock.New(1)
	a := New(ctx, clock.Eternal, TenseNone)
	b := a
	c := New(ctx, clock.Eternal, TenseNone)
	assert.True(t, Overlaps(a, b))
	assert.False(t, Overlaps(a, c))
}

func TestOverlapsIsSymmetric(t *testing.T) {
	ctx := clock.New(1)
	a := New(ctx, clock.Eternal, TenseNone)
	b := New(ctx, clock.Eternal, TenseNone)
	assert.Equal(t, Overlaps(a, b), Overlaps(b, a))
}

func TestMergeInterleavesEvidence(t *testing.T) {
	ctx := clock.New(1)
	a := New(ctx, clock.Eternal, TenseNone)
	b := New(ctx, clock.Eternal, TenseNone)
	merged := Merge(ctx, a, b)
	assert.Len(t, merged.Evidence, 2)
	assert.Equal(t, a.Evidence[0], merged.Evidence[0])
	assert.Equal(t, b.Evidence[0], merged.Evidence[1])
}

func TestMergeTruncatesToMaxEvidenceLength(t *testing.T) {
	ctx := clock.New(1)
	a := Value{OccurrenceTime: clock.Eternal}
	b := Value{OccurrenceTime: clock.Eternal}
	for i := 0; i < MaxEvidenceLength; i++ {
		a.Evidence = append(a.Evidence, EvidenceEntry{NarID: ctx.NarID(), Serial: ctx.NextSerial()})
		b.Evidence = append(b.Evidence, EvidenceEntry{NarID: ctx.NarID(), Serial: ctx.NextSerial()})
	}
	merged := Merge(ctx, a, b)
	assert.Len(t, merged.Evidence, MaxEvidenceLength)
}

func TestMergeStampsCreationAtCurrentClock(t *testing.T) {
	ctx := clock.New(1)
	a := New(ctx, clock.Eternal, TenseNone)
	b := New(ctx, clock.Eternal, TenseNone)
	ctx.Tick()
	ctx.Tick()
	merged := Merge(ctx, a, b)
	assert.EqualValues(t, ctx.Now(), merged.CreationTime)
}

func TestMergeEternalWhenEitherParentEternal(t *testing.T) {
	ctx := clock.New(1)
	a := New(ctx, clock.Eternal, TenseNone)
	b := New(ctx, 20, TensePresent)
	merged := Merge(ctx, a, b)
	assert.True(t, merged.IsEternal())
}

func TestReviseTakesMaxOccurrenceAndAppliesInterval(t *testing.T) {
	ctx := clock.New(1)
	a := New(ctx, 10, TensePresent)
	b := New(ctx, 12, TensePresent)
	revised := Revise(ctx, a, b, ReviseOptions{Interval: Duration})
	assert.EqualValues(t, 12+Duration, revised.OccurrenceTime)
}

func TestReviseNegatesIntervalOnReverseOrder(t *testing.T) {
	ctx := clock.New(1)
	a := New(ctx, 10, TensePresent)
	b := New(ctx, 12, TensePresent)
	revised := Revise(ctx, a, b, ReviseOptions{Interval: Duration, ReverseOrder: true})
	assert.EqualValues(t, 12-Duration, revised.OccurrenceTime)
}

func TestEternalizedClearsOccurrenceTime(t *testing.T) {
	ctx := clock.New(1)
	s := New(ctx, 42, TensePresent)
	e := Eternalized(s)
	assert.True(t, e.IsEternal())
	assert.Equal(t, TenseNone, e.Tense)
}
