package format

import "strings"

// printer is the stage-2 line printer: it walks a PrintToken tree produced
// by the lowering stage, maintaining a text buffer and an indentation
// level the way the teacher's Printer tracked depth/atLineStart, but
// generalized to a configurable indent char/size, newline string, keyword
// case, and comma/AND break policy instead of a fixed 2-space/uppercase
// rendering.
type printer struct {
	opts Options
	buf  strings.Builder
	prev *PrintToken
}

func newPrinter(opts Options) *printer {
	return &printer{opts: opts}
}

func (p *printer) print(root *PrintToken) string {
	p.emit(root, 0)
	return p.buf.String()
}

// breakLine starts a new line at depth, unless nothing has been written
// yet -- the very first clause of a statement always starts flush at
// column zero, regardless of how deeply nested its container kind is.
func (p *printer) breakLine(depth int) {
	if p.buf.Len() == 0 {
		p.prev = nil
		return
	}
	p.buf.WriteString(p.opts.Newline)
	if p.opts.IndentSize > 0 {
		p.buf.WriteString(strings.Repeat(p.opts.IndentChar, p.opts.IndentSize*depth))
	}
	p.prev = nil
}

// emit renders t at the given indent depth. depth is the depth new
// children of an indent-incrementing container should be written at; a
// leaf token ignores it except insofar as it was already used by its
// container to decide where to break to.
func (p *printer) emit(t *PrintToken, depth int) {
	if t == nil {
		return
	}
	if t.Kind != ContainerTok {
		p.emitLeaf(t)
		return
	}
	if t.oneline {
		p.emitOneline(t, depth)
		return
	}

	// A join clause and a CTE entry always start a new line in pretty
	// mode, but not when they are the very first thing their parent
	// container writes -- that break was already taken on the parent's
	// own entry.
	if (t.Container == ContainerJoin || t.Container == ContainerCommonTable) && p.opts.pretty() && p.prev != nil {
		p.breakLine(depth)
	}

	childDepth := depth
	if indentIncrementing[t.Container] && p.opts.pretty() {
		p.breakLine(depth + 1)
		childDepth = depth + 1
	}
	p.emitSeq(t.Children, childDepth)
}

// emitOneline renders a CommonTable container through a freshly instantiated
// sub-printer with newline forced to a single space, then splices the
// result back in as one leaf-like unit -- the "recursively instantiated
// formatter" the CTE one-liner policy calls for.
func (p *printer) emitOneline(t *PrintToken, depth int) {
	sub := newPrinter(p.opts)
	sub.opts.Newline = " "
	text := sub.print(&PrintToken{Kind: ContainerTok, Container: t.Container, Children: t.Children})

	leaf := &PrintToken{Kind: IdentifierTok, Text: text}
	if p.prev != nil && needsSpace(p.prev, leaf) {
		p.buf.WriteByte(' ')
	}
	p.buf.WriteString(text)
	p.prev = leaf
}

func (p *printer) emitSeq(children []*PrintToken, depth int) {
	for _, c := range children {
		switch {
		case c.Kind == CommaTok:
			p.emitComma(c, depth)
		case isAndKeyword(c):
			p.emitAnd(c, depth)
		default:
			p.emit(c, depth)
		}
		if c.structuralBreakAfter && p.opts.pretty() {
			p.breakLine(depth)
		}
	}
}

func isAndKeyword(t *PrintToken) bool {
	return t.Kind == KeywordTok && t.Text == "and"
}

func (p *printer) emitComma(c *PrintToken, depth int) {
	if !p.opts.pretty() || p.opts.CommaBreak == BreakNone {
		p.emitLeaf(c)
		return
	}
	switch p.opts.CommaBreak {
	case BreakBefore:
		p.breakLine(depth)
		p.emitLeaf(c)
	case BreakAfter:
		p.emitLeaf(c)
		p.breakLine(depth)
	}
}

func (p *printer) emitAnd(c *PrintToken, depth int) {
	if !p.opts.pretty() || p.opts.AndBreak == BreakNone {
		p.emitLeaf(c)
		return
	}
	switch p.opts.AndBreak {
	case BreakBefore:
		p.breakLine(depth)
		p.emitLeaf(c)
	case BreakAfter:
		p.emitLeaf(c)
		p.breakLine(depth)
	}
}

func (p *printer) emitLeaf(t *PrintToken) {
	if p.opts.ExportComment {
		for _, c := range t.Attached {
			if p.opts.StrictCommentPlacement && !isClauseKeyword(t) {
				continue
			}
			p.writeComment(c)
		}
	}

	text := p.renderText(t)
	if p.prev != nil && needsSpace(p.prev, t) {
		p.buf.WriteByte(' ')
	}
	p.buf.WriteString(text)
	p.prev = t
}

func (p *printer) writeComment(c *PrintToken) {
	p.buf.WriteString(c.Text)
	p.buf.WriteByte(' ')
	p.prev = nil
}

// isClauseKeyword approximates "attached to a clause-level keyword": the
// lowering stage only ever populates a keyword token's Attached slice from
// a clause container's own leading comments, so any keyword carrying
// attached comments at all satisfies strictCommentPlacement's restriction.
func isClauseKeyword(t *PrintToken) bool {
	return t.Kind == KeywordTok && len(t.Attached) > 0
}

func needsSpace(prev, cur *PrintToken) bool {
	if prev.tightAfter || cur.tightBefore {
		return false
	}
	if cur.Kind == CommaTok {
		return false
	}
	return true
}

func (p *printer) renderText(t *PrintToken) string {
	if t.Kind == KeywordTok {
		switch p.opts.KeywordCase {
		case KeywordCaseUpper:
			return strings.ToUpper(t.Text)
		case KeywordCaseLower:
			return strings.ToLower(t.Text)
		default:
			return t.Text
		}
	}
	return t.Text
}
