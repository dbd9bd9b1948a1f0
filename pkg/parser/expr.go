package parser

import (
	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/token"
)

// parseExpression parses a full expression starting at the lowest
// precedence above precNone.
func (p *Parser) parseExpression() core.Expr {
	return p.parseExpressionPrec(precNone + 1)
}

func (p *Parser) parseExpressionPrec(minPrec int) core.Expr {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	for {
		prec := p.infixPrecedence()
		if prec < minPrec {
			break
		}
		left = p.parseInfix(left, prec)
		if left == nil {
			break
		}
	}
	return left
}

func (p *Parser) parsePrefix() core.Expr {
	start := p.cur()
	switch {
	case p.isKeyword("not"):
		p.advance()
		inner := p.parseExpressionPrec(precComparison)
		return &core.UnaryExpr{NodeInfo: p.span(start), Op: "not", Expr: inner}
	case p.is(token.Operator) && p.cur().Value == "-":
		p.advance()
		inner := p.parseExpressionPrec(precUnary)
		return &core.UnaryExpr{NodeInfo: p.span(start), Op: "-", Expr: inner}
	case p.is(token.Operator) && p.cur().Value == "+":
		p.advance()
		inner := p.parseExpressionPrec(precUnary)
		return &core.UnaryExpr{NodeInfo: p.span(start), Op: "+", Expr: inner}
	default:
		return p.parsePostfixed(p.parsePrimary())
	}
}

// parsePostfixed applies the highest-precedence postfix operators (`::`
// cast and `AT TIME ZONE`) to an already-parsed primary expression.
func (p *Parser) parsePostfixed(expr core.Expr) core.Expr {
	if expr == nil {
		return nil
	}
	start := p.startOf(expr)
	for {
		switch {
		case p.is(token.Operator) && p.cur().Value == "::":
			p.advance()
			typ := p.parseTypeRef()
			expr = &core.CastExpr{NodeInfo: p.span(start), Value: expr, Type: typ, Style: core.CastDoubleColon}
		case p.isKeyword("at time zone"):
			p.advance()
			zone := p.parseExpressionPrec(precPostfix)
			expr = &core.AtTimeZoneExpr{NodeInfo: p.span(start), Value: expr, Zone: zone}
		default:
			return expr
		}
	}
}

func (p *Parser) startOf(e core.Expr) *token.Lexeme {
	// Best-effort: NodeInfo already recorded the true start; the postfix
	// wrapper only needs a lexeme whose Pos() matches for span(), so
	// synthesize one from the expression's own recorded position.
	pos := e.Pos()
	return &token.Lexeme{Span: token.Span{Start: pos, End: pos}}
}

func (p *Parser) parseInfix(left core.Expr, prec int) core.Expr {
	start := p.startOf(left)
	cur := p.cur()

	if cur.Kind == token.Operator {
		op := p.advance().Value
		right := p.parseExpressionPrec(prec + 1)
		return &core.BinaryExpr{NodeInfo: p.span(start), Op: op, Left: left, Right: right}
	}

	switch cur.Value {
	case "and", "or":
		op := p.advance().Value
		right := p.parseExpressionPrec(prec + 1)
		return &core.BinaryExpr{NodeInfo: p.span(start), Op: op, Left: left, Right: right}
	case "is":
		return p.parseIsExpr(left, start)
	case "is not":
		return p.parseIsExprNegated(left, start)
	case "is distinct from":
		return p.parseIsDistinctFrom(left, start, false)
	case "is not distinct from":
		return p.parseIsDistinctFrom(left, start, true)
	case "in":
		p.advance()
		return p.parseInExpr(left, start, false)
	case "not in":
		p.advance()
		return p.parseInExpr(left, start, true)
	case "between":
		p.advance()
		return p.parseBetweenExpr(left, start, false)
	case "not between":
		p.advance()
		return p.parseBetweenExpr(left, start, true)
	case "like":
		p.advance()
		return p.parseLikeExpr(left, start, false, false, false)
	case "not like":
		p.advance()
		return p.parseLikeExpr(left, start, false, false, true)
	case "ilike":
		p.advance()
		return p.parseLikeExpr(left, start, true, false, false)
	case "not ilike":
		p.advance()
		return p.parseLikeExpr(left, start, true, false, true)
	case "similar to":
		p.advance()
		return p.parseLikeExpr(left, start, false, true, false)
	case "not similar to":
		p.advance()
		return p.parseLikeExpr(left, start, false, true, true)
	}
	return left
}

func (p *Parser) parseIsExpr(left core.Expr, start *token.Lexeme) core.Expr {
	p.advance() // consume "is"
	return p.parseIsTail(left, start, false)
}

func (p *Parser) parseIsExprNegated(left core.Expr, start *token.Lexeme) core.Expr {
	p.advance() // consume "is not"
	return p.parseIsTail(left, start, true)
}

func (p *Parser) parseIsTail(left core.Expr, start *token.Lexeme, negated bool) core.Expr {
	switch {
	case p.matchKeyword("null"):
		return &core.IsExpr{NodeInfo: p.span(start), Value: left, Target: core.IsNull, Negated: negated}
	case p.matchKeyword("true"):
		return &core.IsExpr{NodeInfo: p.span(start), Value: left, Target: core.IsTrue, Negated: negated}
	case p.matchKeyword("false"):
		return &core.IsExpr{NodeInfo: p.span(start), Value: left, Target: core.IsFalse, Negated: negated}
	default:
		p.fail("NULL, TRUE, or FALSE", "IS expression")
		return left
	}
}

func (p *Parser) parseIsDistinctFrom(left core.Expr, start *token.Lexeme, negated bool) core.Expr {
	p.advance() // consume the fused "is [not] distinct from" phrase
	operand := p.parseExpressionPrec(precComparison + 1)
	return &core.IsExpr{NodeInfo: p.span(start), Value: left, Target: core.IsDistinctFrom, Operand: operand, Negated: negated}
}

func (p *Parser) parseInExpr(left core.Expr, start *token.Lexeme, negated bool) core.Expr {
	p.expectKind(token.OpenParen, "IN expression")
	in := &core.InExpr{Value: left, Negated: negated}
	if p.isKeyword("select") || p.isKeyword("with") {
		in.Subquery = p.parseSelectStmt()
	} else {
		in.List = p.parseExpressionList()
	}
	p.expectKind(token.CloseParen, "IN expression")
	in.NodeInfo = p.span(start)
	return in
}

func (p *Parser) parseBetweenExpr(left core.Expr, start *token.Lexeme, negated bool) core.Expr {
	low := p.parseExpressionPrec(precAddition)
	p.expectKeyword("and", "BETWEEN expression")
	high := p.parseExpressionPrec(precAddition)
	return &core.BetweenExpr{NodeInfo: p.span(start), Value: left, Low: low, High: high, Negated: negated}
}

func (p *Parser) parseLikeExpr(left core.Expr, start *token.Lexeme, ilike, similar, negated bool) core.Expr {
	pattern := p.parseExpressionPrec(precAddition)
	like := &core.LikeExpr{Value: left, Pattern: pattern, ILike: ilike, Similar: similar, Negated: negated}
	if p.matchKeyword("escape") {
		like.Escape = p.parseExpressionPrec(precAddition)
	}
	like.NodeInfo = p.span(start)
	return like
}

func (p *Parser) parseExpressionList() []core.Expr {
	var exprs []core.Expr
	for {
		exprs = append(exprs, p.parseExpression())
		if !p.matchKind(token.Comma) {
			break
		}
	}
	return exprs
}
