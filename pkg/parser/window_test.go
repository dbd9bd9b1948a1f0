package parser_test

import (
	"testing"

	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindowFunctionOver(t *testing.T) {
	sql := "SELECT row_number() OVER (PARTITION BY dept ORDER BY salary DESC) FROM emp"
	stmt, err := parser.ParseSelect(sql)
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	fn, ok := body.Select.Items[0].Expr.(*core.FuncCall)
	require.True(t, ok)
	require.NotNil(t, fn.Window)
	require.Len(t, fn.Window.PartitionBy, 1)
	require.NotNil(t, fn.Window.OrderBy)
	assert.True(t, fn.Window.OrderBy.Items[0].Desc)
}

func TestParseWindowNamedRef(t *testing.T) {
	sql := "SELECT sum(x) OVER w FROM t WINDOW w AS (PARTITION BY g)"
	stmt, err := parser.ParseSelect(sql)
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	fn := body.Select.Items[0].Expr.(*core.FuncCall)
	require.NotNil(t, fn.Window)
	assert.Equal(t, "w", fn.Window.Ref)

	require.NotNil(t, body.Window)
	require.Len(t, body.Window.Windows, 1)
	assert.Equal(t, "w", body.Window.Windows[0].Name)
}

func TestParseWindowFrameBetween(t *testing.T) {
	sql := "SELECT sum(x) OVER (ORDER BY t ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t"
	stmt, err := parser.ParseSelect(sql)
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	fn := body.Select.Items[0].Expr.(*core.FuncCall)
	require.NotNil(t, fn.Window.Frame)
	assert.Equal(t, core.FrameRows, fn.Window.Frame.Unit)
	assert.Equal(t, core.FrameUnboundedPreceding, fn.Window.Frame.Start.Kind)
	require.NotNil(t, fn.Window.Frame.End)
	assert.Equal(t, core.FrameCurrentRow, fn.Window.Frame.End.Kind)
}

func TestParseWithinGroupOrderedSetAggregate(t *testing.T) {
	sql := "SELECT percentile_cont(0.5) WITHIN GROUP (ORDER BY salary) FROM emp"
	stmt, err := parser.ParseSelect(sql)
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	fn := body.Select.Items[0].Expr.(*core.FuncCall)
	require.NotNil(t, fn.WithinGroup)
	require.Len(t, fn.WithinGroup.Items, 1)
}

func TestParseFuncCallFilterClause(t *testing.T) {
	sql := "SELECT count(*) FILTER (WHERE active) FROM users"
	stmt, err := parser.ParseSelect(sql)
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	fn := body.Select.Items[0].Expr.(*core.FuncCall)
	require.NotNil(t, fn.Filter)
	assert.True(t, fn.Star)
}
