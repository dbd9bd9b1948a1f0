package parser_test

import (
	"testing"

	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleSelect(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT id, name AS n FROM users WHERE id = 1")
	require.NoError(t, err)
	require.NotNil(t, stmt)

	body, ok := stmt.Query.(*core.SimpleSelect)
	require.True(t, ok)
	require.Len(t, body.Select.Items, 2)
	assert.Equal(t, "n", body.Select.Items[1].Alias)

	col, ok := body.Select.Items[0].Expr.(*core.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, "id", col.Name)

	require.NotNil(t, body.From)
	table, ok := body.From.Source.(*core.TableSource)
	require.True(t, ok)
	assert.Equal(t, "users", table.Name)

	require.NotNil(t, body.Where)
	_, ok = body.Where.Expr.(*core.BinaryExpr)
	assert.True(t, ok)
}

func TestParseSelectStar(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT * FROM t")
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	_, ok := body.Select.Items[0].Expr.(*core.StarExpr)
	assert.True(t, ok)
}

func TestParseQualifiedStar(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT t.* FROM t")
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	star := body.Select.Items[0].Expr.(*core.StarExpr)
	assert.Equal(t, "t", star.Table)
}

func TestParseDistinct(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT DISTINCT id FROM t")
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	assert.True(t, body.Select.Distinct)
}

func TestParseGroupByHaving(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT dept, count(*) FROM emp GROUP BY dept HAVING count(*) > 1")
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	require.NotNil(t, body.GroupBy)
	require.Len(t, body.GroupBy.Items, 1)
	require.NotNil(t, body.Having)
}

func TestParseOrderByLimitOffset(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT id FROM t ORDER BY id DESC NULLS LAST LIMIT 10 OFFSET 5")
	require.NoError(t, err)
	require.NotNil(t, stmt.Order)
	require.Len(t, stmt.Order.Items, 1)
	assert.True(t, stmt.Order.Items[0].Desc)
	require.NotNil(t, stmt.Order.Items[0].NullsFirst)
	assert.False(t, *stmt.Order.Items[0].NullsFirst)
	require.NotNil(t, stmt.Limit)
	require.NotNil(t, stmt.Offset)
}

func TestParseFetchClause(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT id FROM t FETCH FIRST 5 ROWS ONLY")
	require.NoError(t, err)
	require.NotNil(t, stmt.Fetch)
	assert.False(t, stmt.Fetch.WithTies)
}

func TestParseFetchWithTies(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT id FROM t ORDER BY id FETCH FIRST 5 ROWS WITH TIES")
	require.NoError(t, err)
	require.NotNil(t, stmt.Fetch)
	assert.True(t, stmt.Fetch.WithTies)
}

func TestParseForUpdateNoWait(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT id FROM t FOR UPDATE OF t NOWAIT")
	require.NoError(t, err)
	require.NotNil(t, stmt.For)
	assert.Equal(t, core.ForUpdate, stmt.For.Strength)
	assert.Equal(t, []string{"t"}, stmt.For.Tables)
	assert.Equal(t, core.ForNoWait, stmt.For.Wait)
}

func TestParseForKeyShareSkipLocked(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT id FROM t FOR KEY SHARE SKIP LOCKED")
	require.NoError(t, err)
	require.NotNil(t, stmt.For)
	assert.Equal(t, core.ForKeyShare, stmt.For.Strength)
	assert.Equal(t, core.ForSkipLocked, stmt.For.Wait)
}

func TestParseUnionChain(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT id FROM a UNION ALL SELECT id FROM b UNION SELECT id FROM c")
	require.NoError(t, err)
	outer, ok := stmt.Query.(*core.BinarySelect)
	require.True(t, ok)
	assert.Equal(t, core.SetUnion, outer.Op)
	inner, ok := outer.Left.(*core.BinarySelect)
	require.True(t, ok)
	assert.Equal(t, core.SetUnionAll, inner.Op)
	assert.True(t, inner.All)
}

func TestParseValues(t *testing.T) {
	stmt, err := parser.ParseSelect("VALUES (1, 'a'), (2, 'b')")
	require.NoError(t, err)
	vq, ok := stmt.Query.(*core.ValuesQuery)
	require.True(t, ok)
	require.Len(t, vq.Rows, 2)
	assert.Len(t, vq.Rows[0], 2)
}

func TestParseWithClauseRecursive(t *testing.T) {
	sql := `WITH RECURSIVE counter(n) AS (
		SELECT 1
		UNION ALL
		SELECT n + 1 FROM counter WHERE n < 5
	)
	SELECT n FROM counter`
	stmt, err := parser.ParseSelect(sql)
	require.NoError(t, err)
	require.NotNil(t, stmt.With)
	assert.True(t, stmt.With.Recursive)
	require.Len(t, stmt.With.Tables, 1)
	assert.Equal(t, "counter", stmt.With.Tables[0].Name)
	assert.Equal(t, []string{"n"}, stmt.With.Tables[0].Columns)
}

func TestParseCTEMaterializedHint(t *testing.T) {
	stmt, err := parser.ParseSelect("WITH x AS MATERIALIZED (SELECT 1) SELECT * FROM x")
	require.NoError(t, err)
	require.Len(t, stmt.With.Tables, 1)
	assert.Equal(t, core.MaterializedYes, stmt.With.Tables[0].Materialized)
}

func TestParseError(t *testing.T) {
	_, err := parser.ParseSelect("SELECT FROM")
	require.Error(t, err)
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "primary expression", perr.Context)
}
