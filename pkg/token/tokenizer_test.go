package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeKeywordFusion(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		value string
	}{
		{"group by", "GROUP BY x", "group by"},
		{"order by", "ORDER BY x", "order by"},
		{"is not distinct from", "IS NOT DISTINCT FROM b", "is not distinct from"},
		{"natural left outer join", "NATURAL LEFT OUTER JOIN b", "natural left outer join"},
		{"for no key update", "FOR NO KEY UPDATE", "for no key update"},
		{"unbounded preceding", "UNBOUNDED PRECEDING", "unbounded preceding"},
		{"current row", "CURRENT ROW", "current row"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexemes, err := Tokenize(tt.sql)
			require.NoError(t, err)
			require.NotEmpty(t, lexemes)
			assert.Equal(t, Keyword, lexemes[0].Kind)
			assert.Equal(t, tt.value, lexemes[0].Value)
		})
	}
}

func TestTokenizeDoesNotOverFuse(t *testing.T) {
	lexemes, err := Tokenize("NOT EXISTS (SELECT 1)")
	require.NoError(t, err)
	require.True(t, len(lexemes) >= 2)
	assert.Equal(t, "not", lexemes[0].Value)
	assert.Equal(t, "exists", lexemes[1].Value)
}

func TestTokenizeQuotedIdentifierBypassesKeywords(t *testing.T) {
	lexemes, err := Tokenize(`SELECT "select" FROM t`)
	require.NoError(t, err)
	require.Len(t, lexemes, 4)
	assert.Equal(t, Identifier, lexemes[1].Kind)
	assert.True(t, lexemes[1].Quoted)
	assert.Equal(t, "select", lexemes[1].Value)
}

func TestTokenizeFunctionIdent(t *testing.T) {
	lexemes, err := Tokenize("count(*)")
	require.NoError(t, err)
	require.NotEmpty(t, lexemes)
	assert.Equal(t, FunctionIdent, lexemes[0].Kind)
	assert.Equal(t, "count", lexemes[0].Value)
}

func TestTokenizeParameters(t *testing.T) {
	tests := []struct {
		name  string
		sql   string
		value string
	}{
		{"positional dollar", "$1", "$1"},
		{"named colon", ":id", ":id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexemes, err := Tokenize(tt.sql)
			require.NoError(t, err)
			require.Len(t, lexemes, 1)
			assert.Equal(t, Parameter, lexemes[0].Kind)
			assert.Equal(t, tt.value, lexemes[0].Value)
		})
	}
}

func TestTokenizeStringEscaping(t *testing.T) {
	lexemes, err := Tokenize(`'it''s'`)
	require.NoError(t, err)
	require.Len(t, lexemes, 1)
	assert.Equal(t, "it's", lexemes[0].Value)
}

func TestTokenizeUnterminatedStringError(t *testing.T) {
	_, err := Tokenize(`SELECT 'oops`)
	require.Error(t, err)
	var tErr *TokenizeError
	require.ErrorAs(t, err, &tErr)
}

func TestTokenizeDoubleColonCastOperator(t *testing.T) {
	lexemes, err := Tokenize("a::int")
	require.NoError(t, err)
	require.Len(t, lexemes, 3)
	assert.Equal(t, Operator, lexemes[1].Kind)
	assert.Equal(t, "::", lexemes[1].Value)
}

func TestTokenizeLineAndBlockComments(t *testing.T) {
	// Comments accumulate onto the next lexeme's Leading slice, in the order
	// they were encountered, since the tokenizer never looks backward.
	lexemes, err := Tokenize("SELECT 1 -- note\n/* block */ FROM t")
	require.NoError(t, err)
	require.Len(t, lexemes, 4)
	require.Len(t, lexemes[2].Leading, 2)
	assert.Equal(t, LineComment, lexemes[2].Leading[0].Kind)
	assert.Equal(t, BlockComment, lexemes[2].Leading[1].Kind)
}

func TestTokenizeTrailingCommentAtEOF(t *testing.T) {
	lexemes, err := Tokenize("SELECT 1 -- done")
	require.NoError(t, err)
	require.Len(t, lexemes, 2)
	require.Len(t, lexemes[1].Trailing, 1)
	assert.Equal(t, LineComment, lexemes[1].Trailing[0].Kind)
}
