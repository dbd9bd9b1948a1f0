package parser

import (
	"strings"

	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/token"
)

// parseSelectStmt parses a complete top-level query: an optional WITH
// prefix, a set-operation chain of query bodies, and the clauses that bind
// to the query as a whole (ORDER BY, LIMIT, OFFSET, FETCH, FOR).
func (p *Parser) parseSelectStmt() *core.SelectStmt {
	start := p.cur()
	stmt := &core.SelectStmt{}

	if p.isKeyword("with") {
		stmt.With = p.parseWithClause()
	}

	stmt.Query = p.parseSetOpChain()

	if p.isKeyword("order by") {
		stmt.Order = p.parseOrderBy()
	}
	if p.matchKeyword("limit") {
		stmt.Limit = &core.LimitClause{Count: p.parseExpression()}
	}
	if p.matchKeyword("offset") {
		stmt.Offset = &core.OffsetClause{Count: p.parseExpression()}
	}
	if p.isKeyword("fetch first") || p.isKeyword("fetch next") {
		stmt.Fetch = p.parseFetchClause()
	}
	if _, ok := forStrengthPhrases[p.cur().Value]; ok && p.is(token.Keyword) {
		stmt.For = p.parseForClause()
	}

	stmt.NodeInfo = p.span(start)
	return stmt
}

func (p *Parser) parseWithClause() *core.WithClause {
	start := p.cur()
	p.advance() // with
	with := &core.WithClause{}
	if p.matchKeyword("recursive") {
		with.Recursive = true
	}
	for {
		with.Tables = append(with.Tables, p.parseCommonTable())
		if !p.matchKind(token.Comma) {
			break
		}
	}
	with.NodeInfo = p.span(start)
	return with
}

func (p *Parser) parseCommonTable() *core.CommonTable {
	start := p.cur()
	ct := &core.CommonTable{Name: p.identifierName("CTE name")}

	if p.matchKind(token.OpenParen) {
		for {
			ct.Columns = append(ct.Columns, p.identifierName("CTE column list"))
			if !p.matchKind(token.Comma) {
				break
			}
		}
		p.expectKind(token.CloseParen, "CTE column list")
	}

	p.expectKeyword("as", "common table expression")

	switch {
	case p.matchKeyword("materialized"):
		ct.Materialized = core.MaterializedYes
	case p.matchKeyword("not materialized"):
		ct.Materialized = core.MaterializedNo
	}

	p.expectKind(token.OpenParen, "common table expression")
	ct.Query = p.parseSelectStmt()
	p.expectKind(token.CloseParen, "common table expression")

	ct.NodeInfo = p.span(start)
	return ct
}

// parseSetOpChain parses a chain of query bodies joined by UNION/INTERSECT/
// EXCEPT, left-associative: `a UNION b UNION c` parses as
// BinarySelect{Left: BinarySelect{Left: a, Right: b}, Right: c}.
func (p *Parser) parseSetOpChain() core.Stmt {
	start := p.cur()
	left := p.parseQueryBody()

	for {
		var op core.SetOpType
		switch {
		case p.isKeyword("union all"):
			op = core.SetUnionAll
			p.advance()
		case p.isKeyword("union"):
			op = core.SetUnion
			p.advance()
		case p.isKeyword("intersect"):
			op = core.SetIntersect
			p.advance()
			p.matchKeyword("all")
		case p.isKeyword("except"):
			op = core.SetExcept
			p.advance()
			p.matchKeyword("all")
		default:
			return left
		}
		byName := p.matchKeyword("by") // rare "BY NAME" tail; tolerated if present
		if byName && p.is(token.Identifier) && strings.EqualFold(p.cur().Value, "name") {
			p.advance()
		}
		right := p.parseQueryBody()
		left = &core.BinarySelect{NodeInfo: p.span(start), Left: left, Op: op, All: op == core.SetUnionAll, ByName: byName, Right: right}
	}
}

func (p *Parser) parseQueryBody() core.Stmt {
	switch {
	case p.isKeyword("select"):
		return p.parseSimpleSelect()
	case p.isKeyword("values"):
		return p.parseValuesQuery()
	case p.is(token.OpenParen):
		p.advance()
		inner := p.parseSelectStmt()
		p.expectKind(token.CloseParen, "parenthesized query")
		return inner
	default:
		p.fail("SELECT, VALUES, or (", "query body")
		return nil
	}
}

func (p *Parser) parseValuesQuery() *core.ValuesQuery {
	start := p.cur()
	p.advance() // values
	vq := &core.ValuesQuery{}
	for {
		p.expectKind(token.OpenParen, "VALUES row")
		if p.is(token.CloseParen) {
			vq.Rows = append(vq.Rows, nil)
		} else {
			vq.Rows = append(vq.Rows, p.parseExpressionList())
		}
		p.expectKind(token.CloseParen, "VALUES row")
		if !p.matchKind(token.Comma) {
			break
		}
	}
	vq.NodeInfo = p.span(start)
	return vq
}

func (p *Parser) parseSimpleSelect() *core.SimpleSelect {
	start := p.cur()
	p.advance() // select
	s := &core.SimpleSelect{Select: p.parseSelectClause()}

	if p.matchKeyword("from") {
		s.From = p.parseFromClause()
	}
	if p.matchKeyword("where") {
		whereStart := p.lexemes[p.pos-1]
		expr := p.parseExpression()
		s.Where = &core.WhereClause{NodeInfo: p.span(whereStart), Expr: expr}
	}
	if p.isKeyword("group by") {
		s.GroupBy = p.parseGroupByClause()
	}
	if p.matchKeyword("having") {
		havingStart := p.lexemes[p.pos-1]
		expr := p.parseExpression()
		s.Having = &core.HavingClause{NodeInfo: p.span(havingStart), Expr: expr}
	}
	if p.isKeyword("window") {
		s.Window = p.parseWindowClause()
	}

	s.NodeInfo = p.span(start)
	return s
}

func (p *Parser) parseSelectClause() *core.SelectClause {
	start := p.cur()
	sc := &core.SelectClause{}
	if p.matchKeyword("distinct") {
		sc.Distinct = true
	} else {
		p.matchKeyword("all")
	}
	for {
		sc.Items = append(sc.Items, p.parseSelectItem())
		if !p.matchKind(token.Comma) {
			break
		}
	}
	sc.NodeInfo = p.span(start)
	return sc
}

func (p *Parser) parseSelectItem() core.SelectItem {
	item := core.SelectItem{Expr: p.parseExpression()}
	switch {
	case p.matchKeyword("as"):
		item.Alias = p.identifierName("select item alias")
	case p.is(token.Identifier) && !p.isReservedAtClauseBoundary():
		item.Alias = p.advance().Value
	}
	return item
}

// isReservedAtClauseBoundary reports whether the current identifier-shaped
// lexeme is actually a bare word that should never be swallowed as an
// implicit alias (there are none among plain identifiers; keywords never
// reach here since they carry Kind==Keyword, not Identifier).
func (p *Parser) isReservedAtClauseBoundary() bool {
	return false
}

func (p *Parser) parseGroupByClause() *core.GroupByClause {
	start := p.cur()
	p.advance() // group by (fused phrase)
	gb := &core.GroupByClause{Items: p.parseExpressionList()}
	gb.NodeInfo = p.span(start)
	return gb
}

func (p *Parser) parseOrderByClause() *core.OrderByClause {
	oc := &core.OrderByClause{}
	for {
		oc.Items = append(oc.Items, p.parseOrderItem())
		if !p.matchKind(token.Comma) {
			break
		}
	}
	return oc
}

func (p *Parser) parseOrderBy() *core.OrderByClause {
	start := p.cur()
	p.advance() // order by (fused phrase)
	oc := p.parseOrderByClause()
	oc.NodeInfo = p.span(start)
	return oc
}

func (p *Parser) parseOrderItem() core.OrderItem {
	item := core.OrderItem{Expr: p.parseExpression()}
	switch {
	case p.matchKeyword("asc"):
		item.Desc = false
	case p.matchKeyword("desc"):
		item.Desc = true
	}
	switch {
	case p.matchKeyword("nulls first"):
		b := true
		item.NullsFirst = &b
	case p.matchKeyword("nulls last"):
		b := false
		item.NullsFirst = &b
	}
	return item
}

func (p *Parser) parseWindowClause() *core.WindowClause {
	start := p.cur()
	p.advance() // window
	wc := &core.WindowClause{}
	for {
		name := p.identifierName("named window")
		p.expectKeyword("as", "named window")
		spec := p.parseWindowSpec()
		wc.Windows = append(wc.Windows, core.NamedWindow{Name: name, Spec: spec})
		if !p.matchKind(token.Comma) {
			break
		}
	}
	wc.NodeInfo = p.span(start)
	return wc
}

func (p *Parser) parseFetchClause() *core.FetchClause {
	start := p.cur()
	p.advance() // fetch first / fetch next (fused phrase)
	fc := &core.FetchClause{}
	if !p.isKeyword("row") && !p.isKeyword("rows") {
		fc.Count = p.parseExpression()
	}
	if p.matchKeyword("percent") {
		fc.Percent = true
	}
	p.matchKeyword("row")
	p.matchKeyword("rows")
	switch {
	case p.matchKeyword("only"):
	case p.matchKeyword("with ties"):
		fc.WithTies = true
	}
	fc.NodeInfo = p.span(start)
	return fc
}

// forStrengthPhrases maps the fused "for ..." keyword phrases the tokenizer
// produces (FOR itself is only ever the head of one of these phrases in
// this grammar, so it never appears as a standalone lexeme here) to the
// locking strength they name.
var forStrengthPhrases = map[string]core.ForStrength{
	"for update":        core.ForUpdate,
	"for no key update": core.ForNoKeyUpdate,
	"for share":         core.ForShare,
	"for key share":     core.ForKeyShare,
}

func (p *Parser) parseForClause() *core.ForClause {
	start := p.cur()
	fc := &core.ForClause{}
	if strength, ok := forStrengthPhrases[p.cur().Value]; ok && p.is(token.Keyword) {
		p.advance()
		fc.Strength = strength
	} else {
		p.fail("UPDATE, SHARE, NO KEY UPDATE, or KEY SHARE", "FOR locking clause")
	}
	if p.matchKeyword("of") {
		for {
			fc.Tables = append(fc.Tables, p.identifierName("FOR ... OF table list"))
			if !p.matchKind(token.Comma) {
				break
			}
		}
	}
	switch {
	case p.matchKeyword("nowait"):
		fc.Wait = core.ForNoWait
	case p.isKeyword("skip"):
		p.advance()
		p.matchKeyword("locked")
		fc.Wait = core.ForSkipLocked
	}
	fc.NodeInfo = p.span(start)
	return fc
}
