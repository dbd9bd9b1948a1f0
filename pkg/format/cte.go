package format

import (
	"github.com/relsql/relsql/internal/dag"
	"github.com/relsql/relsql/pkg/core"
)

// cteLeaves computes the "render as one-liner" set for cteOnelineDependency
// mode: the WITH clause's dependency graph, built by scanning every common
// table's body for unqualified references to sibling common tables, fed into
// internal/dag. A common table is a leaf iff no sibling common table
// references it -- in-degree zero over the full graph, per the binding
// leaf-ness decision this package documents in DESIGN.md -- regardless of
// whether the outer query also selects from it.
//
// ok is false when the dependency graph is cyclic (only reachable through
// mutual references between sibling CTEs; a CTE's own recursive
// self-reference is filtered out before it ever reaches the graph). The
// tracer has no sound topological ordering to offer in that case, so the
// caller is expected to fall back to no one-liner treatment at all rather
// than trust a leaf set computed over a graph that isn't actually a DAG.
func cteLeaves(with *core.WithClause) (leaves map[string]bool, ok bool) {
	names := make(map[string]bool, len(with.Tables))
	for _, ct := range with.Tables {
		names[ct.Name] = true
	}

	g := dag.NewGraph()
	for _, ct := range with.Tables {
		g.AddNode(ct.Name, ct)
	}
	for _, ct := range with.Tables {
		for _, ref := range collectTableNames(ct.Query, names) {
			if ref == ct.Name {
				continue
			}
			// ct references ref: ref is depended on by ct, so ref is the
			// dag parent and ct its dependent child.
			_ = g.AddEdge(ref, ct.Name)
		}
	}

	if hasCycle, _ := g.HasCycle(); hasCycle {
		return nil, false
	}
	// TopologicalSort is the tracer's soundness check as much as its
	// output: a graph HasCycle already cleared always sorts, so this
	// only ever fails if the two disagree with each other.
	if _, err := g.TopologicalSort(); err != nil {
		return nil, false
	}

	result := make(map[string]bool)
	for _, name := range g.GetLeaves() {
		result[name] = true
	}
	return result, true
}

// collectTableNames walks stmt for unqualified table names in FROM-clause
// sources, function-source arguments, join conditions, select items, WHERE
// and HAVING, following subqueries reached through IN, EXISTS, BETWEEN,
// CASE, binary and unary expressions, function arguments and parentheses.
// Subqueries elsewhere (GROUP BY, ORDER BY, LIMIT/OFFSET, WINDOW, IS, LIKE,
// CAST, AT TIME ZONE, FILTER, window specs) are not searched. Names shadowed
// by a WITH clause nested inside stmt itself are excluded -- a reference to an inner CTE
// that happens to share a name with an outer sibling must not be mistaken
// for a reference to that sibling.
func collectTableNames(stmt core.Stmt, siblingNames map[string]bool) []string {
	var names []string
	walkStmtTables(stmt, siblingNames, nil, &names)
	return names
}

// shadow holds the CTE names bound by WITH clauses nested inside the
// statement currently being walked; siblings names shadowed this way are
// excluded from the collected reference list.
func walkStmtTables(stmt core.Stmt, siblingNames map[string]bool, shadow map[string]bool, out *[]string) {
	switch s := stmt.(type) {
	case *core.SelectStmt:
		if s.With != nil {
			inner := make(map[string]bool, len(shadow)+len(s.With.Tables))
			for k := range shadow {
				inner[k] = true
			}
			for _, ct := range s.With.Tables {
				inner[ct.Name] = true
			}
			for _, ct := range s.With.Tables {
				walkStmtTables(ct.Query, siblingNames, inner, out)
			}
			shadow = inner
		}
		walkStmtTables(s.Query, siblingNames, shadow, out)
	case *core.SimpleSelect:
		if s.From != nil {
			walkTableRefTables(s.From.Source, siblingNames, shadow, out)
			for _, j := range s.From.Joins {
				walkTableRefTables(j.Source, siblingNames, shadow, out)
				if j.Condition != nil {
					walkExprTables(j.Condition, siblingNames, shadow, out)
				}
			}
		}
		if s.Select != nil {
			for _, item := range s.Select.Items {
				walkExprTables(item.Expr, siblingNames, shadow, out)
			}
		}
		if s.Where != nil {
			walkExprTables(s.Where.Expr, siblingNames, shadow, out)
		}
		if s.Having != nil {
			walkExprTables(s.Having.Expr, siblingNames, shadow, out)
		}
	case *core.BinarySelect:
		walkStmtTables(s.Left, siblingNames, shadow, out)
		walkStmtTables(s.Right, siblingNames, shadow, out)
	case *core.ValuesQuery:
		// no table sources
	}
}

func walkTableRefTables(ref core.TableRef, siblingNames map[string]bool, shadow map[string]bool, out *[]string) {
	switch r := ref.(type) {
	case *core.TableSource:
		if len(r.Qualifiers) == 0 && siblingNames[r.Name] && !shadow[r.Name] {
			*out = append(*out, r.Name)
		}
	case *core.SubQuerySource:
		walkStmtTables(r.Query, siblingNames, shadow, out)
	case *core.FunctionSource:
		if r.Call != nil {
			for _, a := range r.Call.Args {
				walkExprTables(a, siblingNames, shadow, out)
			}
		}
	}
}

func walkExprTables(e core.Expr, siblingNames map[string]bool, shadow map[string]bool, out *[]string) {
	switch ex := e.(type) {
	case *core.InlineQuery:
		walkStmtTables(ex.Query, siblingNames, shadow, out)
	case *core.ExistsExpr:
		walkStmtTables(ex.Query, siblingNames, shadow, out)
	case *core.InExpr:
		if ex.Subquery != nil {
			walkStmtTables(ex.Subquery, siblingNames, shadow, out)
		}
		for _, item := range ex.List {
			walkExprTables(item, siblingNames, shadow, out)
		}
	case *core.BinaryExpr:
		walkExprTables(ex.Left, siblingNames, shadow, out)
		walkExprTables(ex.Right, siblingNames, shadow, out)
	case *core.UnaryExpr:
		walkExprTables(ex.Expr, siblingNames, shadow, out)
	case *core.ParenExpr:
		walkExprTables(ex.Inner, siblingNames, shadow, out)
	case *core.CaseExpr:
		if ex.Subject != nil {
			walkExprTables(ex.Subject, siblingNames, shadow, out)
		}
		for _, w := range ex.Whens {
			walkExprTables(w.When, siblingNames, shadow, out)
			walkExprTables(w.Then, siblingNames, shadow, out)
		}
		if ex.Else != nil {
			walkExprTables(ex.Else, siblingNames, shadow, out)
		}
	case *core.BetweenExpr:
		walkExprTables(ex.Value, siblingNames, shadow, out)
		walkExprTables(ex.Low, siblingNames, shadow, out)
		walkExprTables(ex.High, siblingNames, shadow, out)
	case *core.FuncCall:
		for _, a := range ex.Args {
			walkExprTables(a, siblingNames, shadow, out)
		}
	}
}
