package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/relsql/relsql/pkg/parser"
)

func mustFormat(t *testing.T, sql string, opts Options) (string, any) {
	t.Helper()
	f, err := New(opts)
	require.NoError(t, err)
	got, params, err := f.FormatSQL(sql)
	require.NoError(t, err)
	return got, params
}

func TestFormat_DefaultsQuoteAndLowercase(t *testing.T) {
	got, params := mustFormat(t, "SELECT * FROM users", Options{})
	assert.Equal(t, `select * from "users"`, got)
	assert.Empty(t, params)
}

func TestFormat_IndexedParameters(t *testing.T) {
	sql := "SELECT u.id, u.name FROM users u WHERE u.id = :userId"
	style := ParameterStyleIndexed
	symbol := "$"
	got, params := mustFormat(t, sql, Options{ParameterStyle: &style, ParameterSymbol: &symbol})
	assert.Equal(t, `select "u"."id", "u"."name" from "users" as "u" where "u"."id" = $1`, got)

	bag, ok := params.([]ParamBinding)
	require.True(t, ok)
	require.Len(t, bag, 1)
	assert.Equal(t, "userId", bag[0].Name)
	assert.Equal(t, 1, bag[0].Index)
}

func TestFormat_ValuesQueryRoundTrip(t *testing.T) {
	got, _ := mustFormat(t, "values (1,'a',true), (2,'b',null)", Options{})
	assert.Equal(t, `values (1, 'a', true), (2, 'b', null)`, got)
}

func TestFormat_CaseExprKeywordCaseLower(t *testing.T) {
	sql := "SELECT CASE WHEN age > 18 THEN 'adult' ELSE 'minor' END"
	got, _ := mustFormat(t, sql, Options{KeywordCase: KeywordCaseLower})
	assert.Equal(t, `select case when "age" > 18 then 'adult' else 'minor' end`, got)
}

func TestFormat_CTEOnelineDependencyMarksOnlyLeaves(t *testing.T) {
	sql := `WITH base_users AS (SELECT id FROM users WHERE active = true), ` +
		`enriched AS (SELECT b.id FROM base_users b) SELECT * FROM enriched`
	got, _ := mustFormat(t, sql, Options{Newline: "\n", CTEOnelineDependency: true})

	assert.Contains(t, got, "/* import enriched.cte.sql */")
	assert.Contains(t, got, "\"base_users\" as (\n")
}

func TestDecodeOptions_YAMLRoundTrip(t *testing.T) {
	doc := []byte(`
preset: mysql
keywordCase: upper
commaBreak: after
andBreak: before
parameterStyle: named
newline: "\n"
indentSize: 4
exportComment: true
`)
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(doc, &raw))

	opts, err := DecodeOptions(raw)
	require.NoError(t, err)
	assert.Equal(t, "mysql", opts.Preset)
	assert.Equal(t, KeywordCaseUpper, opts.KeywordCase)
	assert.Equal(t, BreakAfter, opts.CommaBreak)
	assert.Equal(t, BreakBefore, opts.AndBreak)
	require.NotNil(t, opts.ParameterStyle)
	assert.Equal(t, ParameterStyleNamed, *opts.ParameterStyle)
	assert.Equal(t, 4, opts.IndentSize)
	assert.True(t, opts.ExportComment)
}

func TestFormatter_UnknownPresetRejected(t *testing.T) {
	_, err := New(Options{Preset: "not-a-real-preset"})
	require.Error(t, err)
}

func TestFormat_ParameterStabilityAcrossRepeatedOccurrence(t *testing.T) {
	sql := "SELECT * FROM users WHERE id = :id OR parent_id = :id"
	got, params := mustFormat(t, sql, Options{})
	assert.Equal(t, `select * from "users" where "id" = $1 or "parent_id" = $1`, got)

	bag, ok := params.([]ParamBinding)
	require.True(t, ok)
	require.Len(t, bag, 1)
}

func TestFormat_PrettyPrintIndentsClauses(t *testing.T) {
	sql := "SELECT id, name FROM users WHERE active = true ORDER BY name"
	got, _ := mustFormat(t, sql, Options{Newline: "\n", IndentChar: " ", IndentSize: 2})
	assert.Equal(t, "select \"id\", \"name\"\n  from \"users\"\n  where \"active\" = true\n  order by \"name\"", got)
}

func TestParseSelectStillProducesFormattableTree(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT 1")
	require.NoError(t, err)
	f, err := New(Options{})
	require.NoError(t, err)
	got, _, err := f.Format(stmt)
	require.NoError(t, err)
	assert.Equal(t, "select 1", got)
}
