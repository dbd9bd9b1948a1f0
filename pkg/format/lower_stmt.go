package format

import (
	"fmt"

	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/preset"
)

// lowerer holds the state a single Format call threads through the AST:
// the resolved preset driving identifier quoting, the caller's Options, the
// parameter identity tracker, and any FormatErrors accumulated along the
// way. It carries no cache across calls -- a fresh lowerer is built per
// Formatter.Format invocation.
type lowerer struct {
	r      preset.Resolved
	opts   Options
	params *paramTracker
	errs   []error
}

func newLowerer(r preset.Resolved, opts Options, params *paramTracker) *lowerer {
	return &lowerer{r: r, opts: opts, params: params}
}

func (l *lowerer) fail(node, detail string) {
	l.errs = append(l.errs, newFormatError(node, detail))
}

func (l *lowerer) qident(name string) *PrintToken {
	return ident(quoteIdent(name, l.r))
}

func (l *lowerer) qualifiedName(qualifiers []string, name string) *PrintToken {
	if len(qualifiers) == 0 {
		return l.qident(name)
	}
	parts := make([]*PrintToken, 0, len(qualifiers)*2+1)
	for _, q := range qualifiers {
		parts = append(parts, l.qident(q), dot())
	}
	parts = append(parts, l.qident(name))
	return container(ContainerNone, parts...)
}

// attachComments moves a clause's leading source comments onto the keyword
// token that opens it, the shape emitLeaf's ExportComment handling and
// isClauseKeyword's strictCommentPlacement check both expect.
func (l *lowerer) attachComments(t *PrintToken, n core.NodeInfo) *PrintToken {
	for _, c := range n.LeadingComments {
		t.Attached = append(t.Attached, commentTok(c.Text))
	}
	return t
}

func (l *lowerer) lowerStmt(s core.Stmt) *PrintToken {
	switch v := s.(type) {
	case *core.SelectStmt:
		return l.lowerSelectStmt(v)
	case *core.SimpleSelect:
		return l.lowerSimpleSelect(v)
	case *core.BinarySelect:
		return l.lowerBinarySelect(v)
	case *core.ValuesQuery:
		return l.lowerValuesQuery(v)
	default:
		l.fail("Stmt", fmt.Sprintf("unsupported statement type %T", s))
		return container(ContainerNone)
	}
}

func (l *lowerer) lowerSelectStmt(s *core.SelectStmt) *PrintToken {
	var children []*PrintToken
	if s.With != nil {
		children = append(children, l.lowerWithClause(s.With))
	}
	children = append(children, l.lowerStmt(s.Query))
	if s.Order != nil {
		children = append(children, l.lowerOrderBy(s.Order))
	}
	if s.Limit != nil {
		children = append(children, l.lowerLimit(s.Limit))
	}
	if s.Offset != nil {
		children = append(children, l.lowerOffset(s.Offset))
	}
	if s.Fetch != nil {
		children = append(children, l.lowerFetch(s.Fetch))
	}
	if s.For != nil {
		children = append(children, l.lowerFor(s.For))
	}
	return container(ContainerNone, children...)
}

// lowerWithClause applies the CTE one-liner policy: cteOneline forces every
// common table to render as a one-liner; cteOnelineDependency instead
// consults the dependency tracer and marks exactly its leaves, injecting one
// `/* import name.cte.sql */` comment per leaf right after WITH. When both
// flags are set, cteOneline wins outright, per the spec's stated precedence.
// A cyclic WITH graph (only reachable through mutual CTE references, since a
// CTE's own recursive self-reference is never treated as an edge) disables
// one-liner treatment for cteOnelineDependency entirely -- the dependency
// tracer has nothing sound to report, so no leaf is marked and no import
// comment is injected.
func (l *lowerer) lowerWithClause(w *core.WithClause) *PrintToken {
	var leaves map[string]bool
	if l.opts.CTEOnelineDependency && !l.opts.CTEOneline {
		if acyclicLeaves, ok := cteLeaves(w); ok {
			leaves = acyclicLeaves
		}
	}

	withKw := kw("with")
	if w.Recursive {
		withKw = kw("with recursive")
	}
	l.attachComments(withKw, w.NodeInfo)
	children := []*PrintToken{withKw}

	if leaves != nil {
		for _, ct := range w.Tables {
			if leaves[ct.Name] {
				children = append(children, importComment(ct.Name))
			}
		}
	}
	for i, ct := range w.Tables {
		if i > 0 {
			children = append(children, comma())
		}
		children = append(children, l.lowerCommonTable(ct, leaves))
	}
	return container(ContainerWith, children...)
}

func (l *lowerer) lowerCommonTable(ct *core.CommonTable, leaves map[string]bool) *PrintToken {
	parts := []*PrintToken{l.qident(ct.Name)}
	if len(ct.Columns) > 0 {
		parts = append(parts, openParen())
		for i, c := range ct.Columns {
			if i > 0 {
				parts = append(parts, comma())
			}
			parts = append(parts, l.qident(c))
		}
		parts = append(parts, closeParen())
	}
	parts = append(parts, kw("as"))
	switch ct.Materialized {
	case core.MaterializedYes:
		parts = append(parts, kw("materialized"))
	case core.MaterializedNo:
		parts = append(parts, kw("not materialized"))
	}
	parts = append(parts, openParen(), l.lowerStmt(ct.Query), closeParen())

	t := container(ContainerCommonTable, parts...)
	if l.opts.CTEOneline || (leaves != nil && leaves[ct.Name]) {
		t.oneline = true
	}
	return t
}

func (l *lowerer) lowerSimpleSelect(s *core.SimpleSelect) *PrintToken {
	var children []*PrintToken
	if s.Select != nil {
		children = append(children, l.lowerSelectClause(s.Select))
	}
	if s.From != nil {
		children = append(children, l.lowerFromClause(s.From))
	}
	if s.Where != nil {
		children = append(children, l.lowerWhereClause(s.Where))
	}
	if s.GroupBy != nil {
		children = append(children, l.lowerGroupBy(s.GroupBy))
	}
	if s.Having != nil {
		children = append(children, l.lowerHaving(s.Having))
	}
	if s.Window != nil {
		children = append(children, l.lowerWindowClause(s.Window))
	}
	return container(ContainerNone, children...)
}

func (l *lowerer) lowerSelectClause(sc *core.SelectClause) *PrintToken {
	selectKw := kw("select")
	l.attachComments(selectKw, sc.NodeInfo)
	children := []*PrintToken{selectKw}
	if sc.Distinct {
		children = append(children, kw("distinct"))
	}
	for i, item := range sc.Items {
		if i > 0 {
			children = append(children, comma())
		}
		children = append(children, l.lowerSelectItem(item))
	}
	return container(ContainerSelect, children...)
}

func (l *lowerer) lowerSelectItem(item core.SelectItem) *PrintToken {
	parts := []*PrintToken{l.lowerExpr(item.Expr)}
	if item.Alias != "" {
		parts = append(parts, kw("as"), l.qident(item.Alias))
	}
	return container(ContainerSelectItem, parts...)
}

func (l *lowerer) lowerFromClause(f *core.FromClause) *PrintToken {
	fromKw := kw("from")
	l.attachComments(fromKw, f.NodeInfo)
	children := []*PrintToken{fromKw, l.lowerTableRef(f.Source)}
	for _, j := range f.Joins {
		children = append(children, l.lowerJoin(j))
	}
	return container(ContainerFrom, children...)
}

// joinPrefixWords renders JoinInner as bare "join": the parser folds both
// "join" and "inner join" spellings into JoinInner, losing which the user
// wrote, so the formatter always prefers the shorter canonical spelling.
func joinPrefixWords(k core.JoinKind) string {
	switch k {
	case core.JoinLeft:
		return "left join"
	case core.JoinRight:
		return "right join"
	case core.JoinFull:
		return "full join"
	case core.JoinCross:
		return "cross join"
	default:
		return "join"
	}
}

func (l *lowerer) lowerJoin(j *core.Join) *PrintToken {
	if j.Kind == core.JoinComma {
		commaTok := tight(&PrintToken{Kind: OperatorTok, Text: ","}, true, false)
		return container(ContainerJoin, commaTok, l.lowerTableRef(j.Source))
	}

	var parts []*PrintToken
	if j.Natural {
		parts = append(parts, kw("natural"))
	}
	if j.Lateral {
		parts = append(parts, kw("lateral"))
	}
	parts = append(parts, kw(joinPrefixWords(j.Kind)), l.lowerTableRef(j.Source))
	if j.Condition != nil {
		parts = append(parts, kw("on"), l.lowerExpr(j.Condition))
	} else if len(j.Using) > 0 {
		parts = append(parts, kw("using"), openParen())
		for i, c := range j.Using {
			if i > 0 {
				parts = append(parts, comma())
			}
			parts = append(parts, l.qident(c))
		}
		parts = append(parts, closeParen())
	}
	return container(ContainerJoin, parts...)
}

func (l *lowerer) lowerTableRef(ref core.TableRef) *PrintToken {
	switch r := ref.(type) {
	case *core.TableSource:
		parts := []*PrintToken{l.qualifiedName(r.Qualifiers, r.Name)}
		if r.Alias != "" {
			parts = append(parts, kw("as"), l.qident(r.Alias))
		}
		return container(ContainerNone, parts...)
	case *core.SubQuerySource:
		var parts []*PrintToken
		if r.Lateral {
			parts = append(parts, kw("lateral"))
		}
		parts = append(parts, openParen(), l.lowerStmt(r.Query), closeParen())
		if r.Alias != "" {
			parts = append(parts, kw("as"), l.qident(r.Alias))
		}
		if len(r.Columns) > 0 {
			parts = append(parts, openParen())
			for i, c := range r.Columns {
				if i > 0 {
					parts = append(parts, comma())
				}
				parts = append(parts, l.qident(c))
			}
			parts = append(parts, closeParen())
		}
		return container(ContainerSubQuerySource, parts...)
	case *core.FunctionSource:
		var parts []*PrintToken
		if r.Lateral {
			parts = append(parts, kw("lateral"))
		}
		parts = append(parts, l.lowerExpr(r.Call))
		if r.Alias != "" {
			parts = append(parts, kw("as"), l.qident(r.Alias))
		}
		if len(r.Columns) > 0 {
			parts = append(parts, openParen())
			for i, c := range r.Columns {
				if i > 0 {
					parts = append(parts, comma())
				}
				parts = append(parts, l.qident(c))
			}
			parts = append(parts, closeParen())
		}
		return container(ContainerFunctionSource, parts...)
	default:
		l.fail("TableRef", fmt.Sprintf("unsupported table ref type %T", ref))
		return container(ContainerNone)
	}
}

func (l *lowerer) lowerWhereClause(w *core.WhereClause) *PrintToken {
	whereKw := kw("where")
	l.attachComments(whereKw, w.NodeInfo)
	return container(ContainerWhere, whereKw, l.lowerExpr(w.Expr))
}

func (l *lowerer) lowerGroupBy(g *core.GroupByClause) *PrintToken {
	groupKw := kw("group by")
	l.attachComments(groupKw, g.NodeInfo)
	children := []*PrintToken{groupKw}
	for i, e := range g.Items {
		if i > 0 {
			children = append(children, comma())
		}
		children = append(children, l.lowerExpr(e))
	}
	return container(ContainerGroupBy, children...)
}

func (l *lowerer) lowerHaving(h *core.HavingClause) *PrintToken {
	havingKw := kw("having")
	l.attachComments(havingKw, h.NodeInfo)
	return container(ContainerHaving, havingKw, l.lowerExpr(h.Expr))
}

// lowerOrderBy is shared by the trailing top-level ORDER BY, FuncCall's
// WITHIN GROUP, and WindowSpec's own ORDER BY -- all three carry the same
// OrderByClause shape.
func (l *lowerer) lowerOrderBy(o *core.OrderByClause) *PrintToken {
	orderKw := kw("order by")
	l.attachComments(orderKw, o.NodeInfo)
	children := []*PrintToken{orderKw}
	for i, item := range o.Items {
		if i > 0 {
			children = append(children, comma())
		}
		children = append(children, l.lowerOrderItem(item))
	}
	return container(ContainerOrderBy, children...)
}

func (l *lowerer) lowerOrderItem(item core.OrderItem) *PrintToken {
	parts := []*PrintToken{l.lowerExpr(item.Expr)}
	if item.Desc {
		parts = append(parts, kw("desc"))
	}
	if item.NullsFirst != nil {
		if *item.NullsFirst {
			parts = append(parts, kw("nulls first"))
		} else {
			parts = append(parts, kw("nulls last"))
		}
	}
	return container(ContainerNone, parts...)
}

func (l *lowerer) lowerWindowClause(w *core.WindowClause) *PrintToken {
	windowKw := kw("window")
	l.attachComments(windowKw, w.NodeInfo)
	children := []*PrintToken{windowKw}
	for i, nw := range w.Windows {
		if i > 0 {
			children = append(children, comma())
		}
		children = append(children, container(ContainerNone,
			l.qident(nw.Name), kw("as"), openParen(), l.lowerWindowSpecBody(nw.Spec), closeParen()))
	}
	return container(ContainerWindow, children...)
}

func (l *lowerer) lowerLimit(c *core.LimitClause) *PrintToken {
	limitKw := kw("limit")
	l.attachComments(limitKw, c.NodeInfo)
	return container(ContainerLimit, limitKw, l.lowerExpr(c.Count))
}

func (l *lowerer) lowerOffset(c *core.OffsetClause) *PrintToken {
	offsetKw := kw("offset")
	l.attachComments(offsetKw, c.NodeInfo)
	return container(ContainerOffset, offsetKw, l.lowerExpr(c.Count))
}

func (l *lowerer) lowerFetch(c *core.FetchClause) *PrintToken {
	parts := []*PrintToken{kw("fetch first")}
	if c.Count != nil {
		parts = append(parts, l.lowerExpr(c.Count))
		if c.Percent {
			parts = append(parts, kw("percent"))
		}
		parts = append(parts, kw("rows"))
	} else {
		parts = append(parts, kw("row"))
	}
	if c.WithTies {
		parts = append(parts, kw("with ties"))
	} else {
		parts = append(parts, kw("only"))
	}
	return container(ContainerFetch, parts...)
}

var forStrengthWord = map[core.ForStrength]string{
	core.ForUpdate:      "update",
	core.ForNoKeyUpdate: "no key update",
	core.ForShare:       "share",
	core.ForKeyShare:    "key share",
}

func (l *lowerer) lowerFor(c *core.ForClause) *PrintToken {
	parts := []*PrintToken{kw("for"), kw(forStrengthWord[c.Strength])}
	if len(c.Tables) > 0 {
		parts = append(parts, kw("of"))
		for i, t := range c.Tables {
			if i > 0 {
				parts = append(parts, comma())
			}
			parts = append(parts, l.qident(t))
		}
	}
	switch c.Wait {
	case core.ForNoWait:
		parts = append(parts, kw("nowait"))
	case core.ForSkipLocked:
		parts = append(parts, kw("skip locked"))
	}
	return container(ContainerFor, parts...)
}

// setOpWord already folds ALL into the word for SetUnionAll, making
// BinarySelect.All redundant with Op == SetUnionAll; the formatter reads
// Op alone and ignores All (see DESIGN.md).
var setOpWord = map[core.SetOpType]string{
	core.SetUnion:     "union",
	core.SetUnionAll:  "union all",
	core.SetIntersect: "intersect",
	core.SetExcept:    "except",
}

func (l *lowerer) lowerBinarySelect(v *core.BinarySelect) *PrintToken {
	word := setOpWord[v.Op]
	if v.ByName {
		word += " by name"
	}
	return container(ContainerBinarySelect, l.lowerStmt(v.Left), kw(word), l.lowerStmt(v.Right))
}

func (l *lowerer) lowerValuesQuery(v *core.ValuesQuery) *PrintToken {
	children := []*PrintToken{kw("values")}
	for i, row := range v.Rows {
		if i > 0 {
			children = append(children, comma())
		}
		rowParts := []*PrintToken{openParen()}
		for j, e := range row {
			if j > 0 {
				rowParts = append(rowParts, comma())
			}
			rowParts = append(rowParts, l.lowerExpr(e))
		}
		rowParts = append(rowParts, closeParen())
		children = append(children, container(ContainerNone, rowParts...))
	}
	return container(ContainerValues, children...)
}
