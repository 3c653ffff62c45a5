package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveEmptyFactsProducesNoExplanations(t *testing.T) {
	table, err := ParseTable("{<A --> B>. <B --> C>} |- <A --> C> .deduction\n")
	require.NoError(t, err)
	out := Derive(nil, table)
	assert.Empty(t, out)
}

func TestDeriveProducesDeductionAndSkipsReflexive(t *testing.T) {
	table, err := ParseTable("{<A --> B>. <B --> C>} |- <A --> C> .deduction\n")
	require.NoError(t, err)

	facts := []string{"<bird --> fly>", "<fly --> animal>"}
	out := Derive(facts, table)

	require.Len(t, out, 1)
	assert.Equal(t, "<bird --> animal>", out[0].Conclusion)

	for _, e := range out {
		assert.NotEqual(t, "<bird --> bird>", e.Conclusion)
	}
}

func TestDeriveDeduplicatesPerRuleAndPremiseSignature(t *testing.T) {
	table, err := ParseTable("<A --> B> |- <B --> A> .conversion\n<A --> B> |- <B --> A> .conversion\n")
	require.NoError(t, err)
	facts := []string{"<bird --> fly>"}
	out := Derive(facts, table)
	require.Len(t, out, 1)
	assert.Equal(t, "<fly --> bird>", out[0].Conclusion)
}

func TestDeriveNegativeGuardSkipsAlreadyNegatedPremise(t *testing.T) {
	table, err := ParseTable("A |- (--, A) .negative\n")
	require.NoError(t, err)
	facts := []string{"(--,bird)"}
	out := Derive(facts, table)
	assert.Empty(t, out)
}

func TestDeriveGuardRejectsDeepNegation(t *testing.T) {
	table, err := ParseTable("A |- (--, (--, (--, A))) .triple\n")
	require.NoError(t, err)
	facts := []string{"bird"}
	out := Derive(facts, table)
	assert.Empty(t, out)
}
