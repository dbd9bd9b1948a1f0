package parser

import (
	"strings"

	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/token"
)

// parsePrimary parses a primary expression: literals, references, calls,
// and the keyword-introduced expression forms (CASE, CAST, EXISTS, ARRAY,
// INTERVAL, EXTRACT, POSITION, SUBSTRING, TRIM, OVERLAY).
func (p *Parser) parsePrimary() core.Expr {
	start := p.cur()

	switch {
	case p.is(token.LiteralNumber):
		v := p.advance().Value
		return &core.Literal{NodeInfo: p.span(start), Kind: core.LiteralNumber, Raw: v}
	case p.is(token.LiteralString):
		v := p.advance().Value
		return &core.Literal{NodeInfo: p.span(start), Kind: core.LiteralString, Raw: v}
	case p.is(token.Parameter):
		return p.parseParameter(start)
	case p.matchKeyword("true"):
		return &core.Literal{NodeInfo: p.span(start), Kind: core.LiteralBool, Raw: "true"}
	case p.matchKeyword("false"):
		return &core.Literal{NodeInfo: p.span(start), Kind: core.LiteralBool, Raw: "false"}
	case p.matchKeyword("null"):
		return &core.Literal{NodeInfo: p.span(start), Kind: core.LiteralNull, Raw: "null"}
	case p.isKeyword("case"):
		return p.parseCaseExpr(start)
	case p.isKeyword("cast"):
		return p.parseCastExpr(start)
	case p.isKeyword("array"):
		return p.parseArrayExpr(start)
	case p.isKeyword("interval"):
		return p.parseIntervalExpr(start)
	case p.isKeyword("extract"):
		return p.parseExtractExpr(start)
	case p.isKeyword("position"):
		return p.parsePositionExpr(start)
	case p.isKeyword("substring"):
		return p.parseSubstringExpr(start)
	case p.isKeyword("trim"):
		return p.parseTrimExpr(start)
	case p.isKeyword("overlay"):
		return p.parseOverlayExpr(start)
	case p.isKeyword("not") && p.peekIsKeyword(1, "exists"):
		p.advance() // not
		return p.parseExistsExpr(start, true)
	case p.isKeyword("exists"):
		return p.parseExistsExpr(start, false)
	case p.is(token.Identifier), p.is(token.FunctionIdent):
		return p.parseIdentifierExpr(start)
	case p.is(token.OpenParen):
		return p.parseParenOrSubquery(start)
	case p.is(token.Operator) && p.cur().Value == "*":
		p.advance()
		return &core.StarExpr{NodeInfo: p.span(start)}
	default:
		p.fail("expression", "primary expression")
		p.advance()
		return nil
	}
}

// parseParameter builds a Parameter node from a `:name` or `$N` lexeme,
// stripping the leading marker to recover the name or index, and assigns
// it a stable identity via p.paramIdentity: two occurrences that name the
// same binding (same name, or same index) within one parse share an ID,
// since the AST records identity by ID rather than by re-comparing
// name/index every time a transformer needs to tell two parameters apart.
func (p *Parser) parseParameter(start *token.Lexeme) core.Expr {
	lx := p.advance()
	body := lx.Value
	if len(body) > 0 {
		body = body[1:]
	}
	param := &core.Parameter{NodeInfo: p.span(start)}
	if body != "" && (body[0] < '0' || body[0] > '9') {
		param.Named = true
		param.Name = body
	} else {
		param.Index = atoiOrZero(body)
	}
	param.ID = p.paramIdentity(param)
	return param
}

func atoiOrZero(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// parseIdentifierExpr parses an identifier which resolves to a column
// reference, a qualified wildcard, or a function call.
func (p *Parser) parseIdentifierExpr(start *token.Lexeme) core.Expr {
	first := p.advance().Value

	if p.is(token.OpenParen) {
		return p.parseFuncCall(start, first)
	}

	parts := []string{first}
	for p.is(token.Dot) {
		p.advance()
		if p.is(token.Operator) && p.cur().Value == "*" {
			p.advance()
			return &core.StarExpr{NodeInfo: p.span(start), Table: strings.Join(parts, ".")}
		}
		parts = append(parts, p.identifierName("qualified reference"))
	}

	name := parts[len(parts)-1]
	qualifiers := parts[:len(parts)-1]
	return &core.ColumnRef{NodeInfo: p.span(start), Qualifiers: qualifiers, Name: name}
}

func (p *Parser) parseParenOrSubquery(start *token.Lexeme) core.Expr {
	p.advance() // (
	if p.isKeyword("select") || p.isKeyword("with") || p.isKeyword("values") {
		inner := p.parseSelectStmt()
		p.expectKind(token.CloseParen, "parenthesized subquery")
		return &core.InlineQuery{NodeInfo: p.span(start), Query: inner}
	}
	inner := p.parseExpression()
	p.expectKind(token.CloseParen, "parenthesized expression")
	return &core.ParenExpr{NodeInfo: p.span(start), Inner: inner}
}

func (p *Parser) parseExistsExpr(start *token.Lexeme, negated bool) core.Expr {
	p.advance() // exists
	p.expectKind(token.OpenParen, "EXISTS expression")
	query := p.parseSelectStmt()
	p.expectKind(token.CloseParen, "EXISTS expression")
	return &core.ExistsExpr{NodeInfo: p.span(start), Query: query, Negated: negated}
}

func (p *Parser) parseFuncCall(start *token.Lexeme, name string) core.Expr {
	p.advance() // (
	fn := &core.FuncCall{Name: strings.ToLower(name)}

	if p.is(token.Operator) && p.cur().Value == "*" {
		p.advance()
		fn.Star = true
	} else if !p.is(token.CloseParen) {
		if p.matchKeyword("distinct") {
			fn.Distinct = true
		}
		fn.Args = p.parseExpressionList()
	}
	p.expectKind(token.CloseParen, "function call arguments")

	if p.matchKeyword("filter") {
		p.expectKind(token.OpenParen, "FILTER clause")
		p.expectKeyword("where", "FILTER clause")
		fn.Filter = p.parseExpression()
		p.expectKind(token.CloseParen, "FILTER clause")
	}

	switch {
	case p.matchKeyword("over"):
		fn.Window = p.parseWindowSpec()
	case p.matchKeyword("within group"):
		p.expectKind(token.OpenParen, "WITHIN GROUP clause")
		p.expectKeyword("order by", "WITHIN GROUP clause")
		fn.WithinGroup = p.parseOrderByClause()
		p.expectKind(token.CloseParen, "WITHIN GROUP clause")
	}

	fn.NodeInfo = p.span(start)
	return fn
}

func (p *Parser) parseCaseExpr(start *token.Lexeme) core.Expr {
	p.advance() // case
	c := &core.CaseExpr{}
	if !p.isKeyword("when") {
		c.Subject = p.parseExpression()
	}
	for p.matchKeyword("when") {
		when := p.parseExpression()
		p.expectKeyword("then", "CASE expression")
		then := p.parseExpression()
		c.Whens = append(c.Whens, core.WhenClause{When: when, Then: then})
	}
	if p.matchKeyword("else") {
		c.Else = p.parseExpression()
	}
	p.expectKeyword("end", "CASE expression")
	c.NodeInfo = p.span(start)
	return c
}

func (p *Parser) parseCastExpr(start *token.Lexeme) core.Expr {
	p.advance() // cast
	p.expectKind(token.OpenParen, "CAST expression")
	value := p.parseExpression()
	p.expectKeyword("as", "CAST expression")
	typ := p.parseTypeRef()
	p.expectKind(token.CloseParen, "CAST expression")
	return &core.CastExpr{NodeInfo: p.span(start), Value: value, Type: typ, Style: core.CastAs}
}

// parseTypeRef parses a type name with an optional (precision[,scale])
// suffix. A WITH/WITHOUT TIME ZONE qualifier is recognised directly after
// TIMESTAMP or TIME, where the tokenizer fuses it into the type-name
// lexeme; one that follows a precision suffix is not.
func (p *Parser) parseTypeRef() *core.TypeRef {
	start := p.cur()
	name := p.identifierOrKeywordName("type name")
	typ := &core.TypeRef{Name: name}
	switch name {
	case "timestamp with time zone", "time with time zone":
		typ.Name, typ.Timezone = strings.Fields(name)[0], core.TimezoneWith
	case "timestamp without time zone", "time without time zone":
		typ.Name, typ.Timezone = strings.Fields(name)[0], core.TimezoneWithout
	}

	if p.matchKind(token.OpenParen) {
		precision := p.parseIntLiteral()
		typ.Precision = &precision
		if p.matchKind(token.Comma) {
			scale := p.parseIntLiteral()
			typ.Scale = &scale
		}
		p.expectKind(token.CloseParen, "type precision")
	}

	typ.NodeInfo = p.span(start)
	return typ
}

// identifierOrKeywordName accepts either a plain identifier or one of the
// multi-word type-name keyword phrases the tokenizer fuses (`double
// precision`, `character varying`).
func (p *Parser) identifierOrKeywordName(context string) string {
	if p.is(token.Identifier) || p.is(token.FunctionIdent) {
		return p.advance().Value
	}
	if p.is(token.Keyword) {
		return p.advance().Value
	}
	p.fail("type name", context)
	return ""
}

func (p *Parser) parseIntLiteral() int {
	if !p.is(token.LiteralNumber) {
		p.fail("integer literal", "type precision")
		return 0
	}
	return atoiOrZero(p.advance().Value)
}

func (p *Parser) parseArrayExpr(start *token.Lexeme) core.Expr {
	p.advance() // array
	p.expectKind(token.OpenBracket, "ARRAY literal")
	arr := &core.ArrayExpr{}
	if !p.is(token.CloseBracket) {
		arr.Elements = p.parseExpressionList()
	}
	p.expectKind(token.CloseBracket, "ARRAY literal")
	arr.NodeInfo = p.span(start)
	return arr
}

func (p *Parser) parseIntervalExpr(start *token.Lexeme) core.Expr {
	p.advance() // interval
	lit := p.expectKind(token.LiteralString, "INTERVAL literal")
	iv := &core.IntervalExpr{}
	if lit != nil {
		iv.Literal = lit.Value
	}
	if p.is(token.Keyword) {
		iv.Qualifier = p.advance().Value
	}
	iv.NodeInfo = p.span(start)
	return iv
}

func (p *Parser) parseExtractExpr(start *token.Lexeme) core.Expr {
	p.advance() // extract
	p.expectKind(token.OpenParen, "EXTRACT expression")
	field := p.identifierOrKeywordName("EXTRACT field")
	p.expectKeyword("from", "EXTRACT expression")
	from := p.parseExpression()
	p.expectKind(token.CloseParen, "EXTRACT expression")
	return &core.ExtractExpr{NodeInfo: p.span(start), Field: field, From: from}
}

func (p *Parser) parsePositionExpr(start *token.Lexeme) core.Expr {
	p.advance() // position
	p.expectKind(token.OpenParen, "POSITION expression")
	needle := p.parseExpressionPrec(precComparison + 1)
	p.expectKeyword("in", "POSITION expression")
	haystack := p.parseExpression()
	p.expectKind(token.CloseParen, "POSITION expression")
	return &core.PositionExpr{NodeInfo: p.span(start), Needle: needle, Haystack: haystack}
}

func (p *Parser) parseSubstringExpr(start *token.Lexeme) core.Expr {
	p.advance() // substring
	p.expectKind(token.OpenParen, "SUBSTRING expression")
	sub := &core.SubstringExpr{Target: p.parseExpressionPrec(precComparison + 1)}

	switch {
	case p.matchKind(token.Comma):
		sub.CommaForm = true
		sub.From = p.parseExpressionPrec(precComparison + 1)
		if p.matchKind(token.Comma) {
			sub.For = p.parseExpressionPrec(precComparison + 1)
		}
	case p.matchKeyword("from"):
		sub.From = p.parseExpressionPrec(precComparison + 1)
		if p.matchKeyword("for") {
			sub.For = p.parseExpressionPrec(precComparison + 1)
		}
	case p.matchKeyword("similar"):
		sub.Similar = true
		sub.Pattern = p.parseExpressionPrec(precComparison + 1)
		p.expectKeyword("escape", "SUBSTRING SIMILAR expression")
		sub.Escape = p.parseExpressionPrec(precComparison + 1)
	}

	p.expectKind(token.CloseParen, "SUBSTRING expression")
	sub.NodeInfo = p.span(start)
	return sub
}

func (p *Parser) parseTrimExpr(start *token.Lexeme) core.Expr {
	p.advance() // trim
	p.expectKind(token.OpenParen, "TRIM expression")
	trim := &core.TrimExpr{Side: core.TrimBoth}

	switch {
	case p.matchKeyword("leading"):
		trim.Side = core.TrimLeading
	case p.matchKeyword("trailing"):
		trim.Side = core.TrimTrailing
	case p.matchKeyword("both"):
		trim.Side = core.TrimBoth
	}

	first := p.parseExpressionPrec(precComparison + 1)
	if p.matchKeyword("from") {
		trim.Characters = first
		trim.Target = p.parseExpression()
	} else if p.matchKind(token.Comma) {
		trim.PostgresStyle = true
		trim.Target = first
		trim.Characters = p.parseExpression()
	} else {
		trim.Target = first
	}

	p.expectKind(token.CloseParen, "TRIM expression")
	trim.NodeInfo = p.span(start)
	return trim
}

func (p *Parser) parseOverlayExpr(start *token.Lexeme) core.Expr {
	p.advance() // overlay
	p.expectKind(token.OpenParen, "OVERLAY expression")
	ov := &core.OverlayExpr{Target: p.parseExpressionPrec(precComparison + 1)}
	p.expectKeyword("placing", "OVERLAY expression")
	ov.Placing = p.parseExpressionPrec(precComparison + 1)
	p.expectKeyword("from", "OVERLAY expression")
	ov.From = p.parseExpressionPrec(precComparison + 1)
	if p.matchKeyword("for") {
		ov.For = p.parseExpressionPrec(precComparison + 1)
	}
	p.expectKind(token.CloseParen, "OVERLAY expression")
	ov.NodeInfo = p.span(start)
	return ov
}
