package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownPresets(t *testing.T) {
	for _, name := range Names() {
		p := Lookup(name)
		require.NotNil(t, p, "preset %q should be registered", name)
		assert.Equal(t, name, p.Name)
	}
}

func TestLookupUnknownPreset(t *testing.T) {
	assert.Nil(t, Lookup("oracle"))
}

func TestPostgresQuotingAndPlaceholder(t *testing.T) {
	p := Lookup("postgres")
	require.NotNil(t, p)
	assert.Equal(t, `"`, p.QuoteStart)
	assert.Equal(t, `"`, p.QuoteEnd)
	assert.Equal(t, PlaceholderIndexed, p.Placeholder)
	assert.Equal(t, "$", p.ParameterSymbol)
	assert.Equal(t, NormalizeLowercase, p.Normalization)
}

func TestMySQLUsesBacktickQuoting(t *testing.T) {
	p := Lookup("mysql")
	require.NotNil(t, p)
	assert.Equal(t, "`", p.QuoteStart)
	assert.Equal(t, "`", p.QuoteEnd)
	assert.Equal(t, PlaceholderAnonymous, p.Placeholder)
	assert.Equal(t, "?", p.ParameterSymbol)
}

func TestSQLServerUsesBracketQuotingAndNamedParameters(t *testing.T) {
	p := Lookup("sqlserver")
	require.NotNil(t, p)
	assert.Equal(t, "[", p.QuoteStart)
	assert.Equal(t, "]", p.QuoteEnd)
	assert.Equal(t, PlaceholderNamed, p.Placeholder)
	assert.Equal(t, "@", p.ParameterSymbol)
	assert.Equal(t, NormalizePreserveInsensitive, p.Normalization)
}

func TestSQLiteSharesPostgresQuotingButIsAnonymous(t *testing.T) {
	p := Lookup("sqlite")
	require.NotNil(t, p)
	assert.Equal(t, `"`, p.QuoteStart)
	assert.Equal(t, PlaceholderAnonymous, p.Placeholder)
}
