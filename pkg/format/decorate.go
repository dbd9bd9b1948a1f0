package format

import (
	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/token"
)

// Decorate attaches comments to AST nodes by source position, so a
// formatter pass driven purely by the tree still reproduces comments that
// sat between clauses in the original text. pkg/parser never attaches
// comments itself -- comments live on the Lexeme stream's Leading/Trailing
// fields, per token's tokenizer -- so a caller that wants exportComment
// support runs Decorate once, before Format, using CollectComments to
// flatten the lexeme stream's scattered comment slices into the ordered
// list Decorate expects.
func Decorate(stmt core.Stmt, comments []*token.Comment) core.Stmt {
	if len(comments) == 0 {
		return stmt
	}
	d := &decorator{comments: comments, used: make([]bool, len(comments))}
	d.decorateStmt(stmt)
	return stmt
}

// CollectComments flattens every comment attached to lexemes's Leading and
// Trailing slices into one span-ordered list, the shape Decorate consumes.
func CollectComments(lexemes []*token.Lexeme) []*token.Comment {
	var out []*token.Comment
	for _, lx := range lexemes {
		out = append(out, lx.Leading...)
		out = append(out, lx.Trailing...)
	}
	return out
}

type decorator struct {
	comments []*token.Comment
	used     []bool
}

func (d *decorator) decorateStmt(stmt core.Stmt) {
	switch s := stmt.(type) {
	case *core.SelectStmt:
		d.attachComments(&s.NodeInfo)
		if s.With != nil {
			d.decorateWith(s.With)
		}
		d.decorateStmt(s.Query)
		if s.Order != nil {
			d.attachComments(&s.Order.NodeInfo)
		}
	case *core.SimpleSelect:
		d.attachComments(&s.NodeInfo)
		if s.Select != nil {
			d.attachComments(&s.Select.NodeInfo)
		}
		if s.From != nil {
			d.decorateFrom(s.From)
		}
		if s.Where != nil {
			d.attachComments(&s.Where.NodeInfo)
		}
		if s.GroupBy != nil {
			d.attachComments(&s.GroupBy.NodeInfo)
		}
		if s.Having != nil {
			d.attachComments(&s.Having.NodeInfo)
		}
		if s.Window != nil {
			d.attachComments(&s.Window.NodeInfo)
		}
	case *core.BinarySelect:
		d.attachComments(&s.NodeInfo)
		d.decorateStmt(s.Left)
		d.decorateStmt(s.Right)
	case *core.ValuesQuery:
		d.attachComments(&s.NodeInfo)
	}
}

func (d *decorator) decorateWith(w *core.WithClause) {
	d.attachComments(&w.NodeInfo)
	for _, ct := range w.Tables {
		d.decorateStmt(ct.Query)
	}
}

func (d *decorator) decorateFrom(f *core.FromClause) {
	d.attachComments(&f.NodeInfo)
	d.decorateTableRef(f.Source)
	for _, j := range f.Joins {
		d.decorateTableRef(j.Source)
	}
}

func (d *decorator) decorateTableRef(ref core.TableRef) {
	switch r := ref.(type) {
	case *core.SubQuerySource:
		d.decorateStmt(r.Query)
	case *core.TableSource:
		d.attachComments(&r.NodeInfo)
	}
}

// attachComments assigns every unused comment that ends before node's span
// on an earlier line as leading, and every unused comment after it on the
// same line as trailing. It is called for statement, clause and
// table-source nodes, never for an expression node.
func (d *decorator) attachComments(node *core.NodeInfo) {
	if node == nil || !node.Span.IsValid() {
		return
	}
	span := node.Span
	for i, c := range d.comments {
		if d.used[i] {
			continue
		}
		if c.Span.End.Offset < span.Start.Offset && c.Span.End.Line < span.Start.Line {
			node.AddLeadingComment(c)
			d.used[i] = true
			continue
		}
		if c.Span.Start.Offset >= span.End.Offset && c.Span.Start.Line == span.End.Line {
			node.AddTrailingComment(c)
			d.used[i] = true
		}
	}
}
