package parser

import (
	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/token"
)

func (p *Parser) parseFromClause() *core.FromClause {
	start := p.cur()
	fc := &core.FromClause{Source: p.parseTableRef()}
	for {
		join := p.parseOptionalJoin()
		if join == nil {
			break
		}
		fc.Joins = append(fc.Joins, join)
	}
	fc.NodeInfo = p.span(start)
	return fc
}

// joinPhrases maps every fused JOIN keyword phrase the tokenizer produces
// (including the NATURAL-prefixed forms, which fuse as a single lexeme) to
// its join kind and whether it carries NATURAL semantics.
var joinPhrases = map[string]struct {
	kind    core.JoinKind
	natural bool
}{
	"join":                     {core.JoinInner, false},
	"inner join":               {core.JoinInner, false},
	"left join":                {core.JoinLeft, false},
	"left outer join":          {core.JoinLeft, false},
	"right join":               {core.JoinRight, false},
	"right outer join":         {core.JoinRight, false},
	"full join":                {core.JoinFull, false},
	"full outer join":          {core.JoinFull, false},
	"cross join":               {core.JoinCross, false},
	"natural join":             {core.JoinInner, true},
	"natural inner join":       {core.JoinInner, true},
	"natural left join":        {core.JoinLeft, true},
	"natural left outer join":  {core.JoinLeft, true},
	"natural right join":       {core.JoinRight, true},
	"natural right outer join": {core.JoinRight, true},
	"natural full join":        {core.JoinFull, true},
	"natural full outer join":  {core.JoinFull, true},
}

func (p *Parser) parseOptionalJoin() *core.Join {
	start := p.cur()

	if p.matchKind(token.Comma) {
		join := &core.Join{Kind: core.JoinComma}
		join.Source = p.parseTableRef()
		join.NodeInfo = p.span(start)
		return join
	}

	spec, ok := joinPhrases[p.cur().Value]
	if !ok || p.cur().Kind != token.Keyword {
		return nil
	}
	p.advance()

	join := &core.Join{Kind: spec.kind, Natural: spec.natural}
	join.Source = p.parseTableRef()

	switch {
	case p.matchKeyword("on"):
		join.Condition = p.parseExpression()
	case p.matchKeyword("using"):
		p.expectKind(token.OpenParen, "USING clause")
		for {
			join.Using = append(join.Using, p.identifierName("USING column list"))
			if !p.matchKind(token.Comma) {
				break
			}
		}
		p.expectKind(token.CloseParen, "USING clause")
	}

	join.NodeInfo = p.span(start)
	return join
}

func (p *Parser) parseTableRef() core.TableRef {
	start := p.cur()
	lateral := p.matchKeyword("lateral")

	if p.is(token.OpenParen) {
		p.advance()
		query := p.parseSelectStmt()
		p.expectKind(token.CloseParen, "derived table")
		src := &core.SubQuerySource{Query: query, Lateral: lateral}
		p.parseOptionalTableAliasWithColumns(&src.Alias, &src.Columns)
		src.NodeInfo = p.span(start)
		return src
	}

	name := p.identifierName("table reference")
	if p.is(token.OpenParen) {
		call := p.parseFuncCall(start, name).(*core.FuncCall)
		src := &core.FunctionSource{Call: call, Lateral: lateral}
		p.parseOptionalTableAliasWithColumns(&src.Alias, &src.Columns)
		src.NodeInfo = p.span(start)
		return src
	}

	qualifiers := []string{name}
	tableName := name
	for p.matchKind(token.Dot) {
		tableName = p.identifierName("table reference")
		qualifiers = append(qualifiers, tableName)
	}
	qualifiers = qualifiers[:len(qualifiers)-1]

	src := &core.TableSource{Qualifiers: qualifiers, Name: tableName}
	src.Alias = p.parseOptionalTableAlias()
	src.NodeInfo = p.span(start)
	return src
}

func (p *Parser) parseOptionalTableAlias() string {
	switch {
	case p.matchKeyword("as"):
		return p.identifierName("table alias")
	case p.is(token.Identifier):
		return p.advance().Value
	default:
		return ""
	}
}

func (p *Parser) parseOptionalTableAliasWithColumns(alias *string, columns *[]string) {
	*alias = p.parseOptionalTableAlias()
	if *alias != "" && p.matchKind(token.OpenParen) {
		for {
			*columns = append(*columns, p.identifierName("column alias list"))
			if !p.matchKind(token.Comma) {
				break
			}
		}
		p.expectKind(token.CloseParen, "column alias list")
	}
}
