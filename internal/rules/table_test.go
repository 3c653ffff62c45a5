package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableSkipsCommentsAndBlankLines(t *testing.T) {
	table, err := ParseTable("# a comment\n' also a comment\n\n<A --> B> |- <A --> B> .identity\n")
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "identity", table[0].Name)
}

func TestParseTableTwoPremiseDeduction(t *testing.T) {
	table, err := ParseTable("{<A --> B>. <B --> C>} |- <A --> C> .deduction\n")
	require.NoError(t, err)
	require.Len(t, table, 1)
	require.Len(t, table[0].Premises, 2)
	assert.Equal(t, "deduction", table[0].Name)
}

func TestParseTableInverseVariant(t *testing.T) {
	table, err := ParseTable("<A --> B> |- <B --> A> .conversion'\n")
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.True(t, table[0].Inverse)
	assert.Equal(t, "conversion", table[0].Name)
}

func TestParseTableMalformedLineFailsWholeBlock(t *testing.T) {
	_, err := ParseTable("<A --> B> |- <A --> B> .ok\nnot a rule at all\n")
	assert.Error(t, err)
}
