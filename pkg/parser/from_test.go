package parser_test

import (
	"testing"

	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNaturalJoinVariants(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		wantKind core.JoinKind
		natural  bool
	}{
		{"natural inner join", "SELECT * FROM t1 NATURAL JOIN t2", core.JoinInner, true},
		{"natural left join", "SELECT * FROM t1 NATURAL LEFT JOIN t2", core.JoinLeft, true},
		{"natural right join", "SELECT * FROM t1 NATURAL RIGHT JOIN t2", core.JoinRight, true},
		{"natural full outer join", "SELECT * FROM t1 NATURAL FULL OUTER JOIN t2", core.JoinFull, true},
		{"plain inner join", "SELECT * FROM t1 INNER JOIN t2 ON t1.id = t2.id", core.JoinInner, false},
		{"left outer join", "SELECT * FROM t1 LEFT OUTER JOIN t2 ON t1.id = t2.id", core.JoinLeft, false},
		{"cross join", "SELECT * FROM t1 CROSS JOIN t2", core.JoinCross, false},
		{"comma join", "SELECT * FROM t1, t2", core.JoinComma, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := parser.ParseSelect(tt.sql)
			require.NoError(t, err)
			body := stmt.Query.(*core.SimpleSelect)
			require.Len(t, body.From.Joins, 1)

			join := body.From.Joins[0]
			assert.Equal(t, tt.wantKind, join.Kind)
			assert.Equal(t, tt.natural, join.Natural)
		})
	}
}

func TestParseJoinUsing(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT * FROM orders JOIN customers USING (customer_id)")
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	require.Len(t, body.From.Joins, 1)
	assert.Equal(t, []string{"customer_id"}, body.From.Joins[0].Using)
	assert.Nil(t, body.From.Joins[0].Condition)
}

func TestParseDerivedTable(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT * FROM (SELECT id FROM t) AS sub(x)")
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	sub, ok := body.From.Source.(*core.SubQuerySource)
	require.True(t, ok)
	assert.Equal(t, "sub", sub.Alias)
	assert.Equal(t, []string{"x"}, sub.Columns)
	require.NotNil(t, sub.Query)
}

func TestParseLateralFunctionSource(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT * FROM t, LATERAL unnest(t.arr) AS u")
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	require.Len(t, body.From.Joins, 1)
	fn, ok := body.From.Joins[0].Source.(*core.FunctionSource)
	require.True(t, ok)
	assert.True(t, fn.Lateral)
	assert.Equal(t, "u", fn.Alias)
	assert.Equal(t, "unnest", fn.Call.Name)
}

func TestParseMultiJoinChain(t *testing.T) {
	sql := "SELECT * FROM a JOIN b ON a.id = b.a_id LEFT JOIN c ON b.id = c.b_id"
	stmt, err := parser.ParseSelect(sql)
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	require.Len(t, body.From.Joins, 2)
	assert.Equal(t, core.JoinInner, body.From.Joins[0].Kind)
	assert.Equal(t, core.JoinLeft, body.From.Joins[1].Kind)
}

func TestParseSchemaQualifiedTable(t *testing.T) {
	stmt, err := parser.ParseSelect("SELECT * FROM myschema.mytable m")
	require.NoError(t, err)
	body := stmt.Query.(*core.SimpleSelect)
	tbl, ok := body.From.Source.(*core.TableSource)
	require.True(t, ok)
	assert.Equal(t, []string{"myschema"}, tbl.Qualifiers)
	assert.Equal(t, "mytable", tbl.Name)
	assert.Equal(t, "m", tbl.Alias)
}
