package parser

import (
	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/token"
)

// parseWindowSpec parses either a bare reference to a named window
// (`OVER win`) or a full specification (`OVER (PARTITION BY ... ORDER BY
// ... frame)`). The two share a single AST shape: WindowSpec.Ref is set
// for the former and left empty for the latter.
func (p *Parser) parseWindowSpec() *core.WindowSpec {
	start := p.cur()
	if p.is(token.Identifier) {
		name := p.advance().Value
		return &core.WindowSpec{NodeInfo: p.span(start), Ref: name}
	}

	p.expectKind(token.OpenParen, "window specification")
	ws := &core.WindowSpec{}
	if p.is(token.Identifier) {
		ws.Ref = p.advance().Value
	}
	if p.isKeyword("partition by") {
		p.advance()
		ws.PartitionBy = p.parseExpressionList()
	}
	if p.isKeyword("order by") {
		p.advance()
		ws.OrderBy = p.parseOrderByClause()
	}
	if p.isKeyword("rows") || p.isKeyword("range") || p.isKeyword("groups") {
		ws.Frame = p.parseFrameSpec()
	}
	p.expectKind(token.CloseParen, "window specification")
	ws.NodeInfo = p.span(start)
	return ws
}

func (p *Parser) parseFrameSpec() *core.FrameSpec {
	fs := &core.FrameSpec{}
	switch {
	case p.matchKeyword("rows"):
		fs.Unit = core.FrameRows
	case p.matchKeyword("range"):
		fs.Unit = core.FrameRange
	case p.matchKeyword("groups"):
		fs.Unit = core.FrameGroups
	}

	if p.matchKeyword("between") {
		fs.Start = p.parseFrameBound()
		p.expectKeyword("and", "window frame")
		end := p.parseFrameBound()
		fs.End = &end
	} else {
		fs.Start = p.parseFrameBound()
	}
	return fs
}

func (p *Parser) parseFrameBound() core.FrameBound {
	switch {
	case p.isKeyword("unbounded preceding"):
		p.advance()
		return core.FrameBound{Kind: core.FrameUnboundedPreceding}
	case p.isKeyword("unbounded following"):
		p.advance()
		return core.FrameBound{Kind: core.FrameUnboundedFollowing}
	case p.isKeyword("current row"):
		p.advance()
		return core.FrameBound{Kind: core.FrameCurrentRow}
	default:
		offset := p.parseExpressionPrec(precAddition)
		switch {
		case p.matchKeyword("preceding"):
			return core.FrameBound{Kind: core.FramePreceding, Offset: offset}
		case p.matchKeyword("following"):
			return core.FrameBound{Kind: core.FrameFollowing, Offset: offset}
		default:
			p.fail("PRECEDING or FOLLOWING", "window frame bound")
			return core.FrameBound{Kind: core.FramePreceding, Offset: offset}
		}
	}
}
