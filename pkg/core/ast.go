// Package core defines the SQL abstract syntax tree: a tagged-variant node
// family covering every SELECT construct the parser family in pkg/parser
// recognizes. Nodes carry only syntactic information; there are no symbol
// tables here, and no node ever holds a pointer back to something that
// would make the tree non-acyclic.
package core

import "github.com/relsql/relsql/pkg/token"

// Node is the root of the AST type family. Every node knows its own
// source span.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// Expr is any node that can appear where a value expression is expected.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that can stand as a top-level query.
type Stmt interface {
	Node
	stmtNode()
}

// TableRef is any node that can appear in FROM-clause source position.
type TableRef interface {
	Node
	tableRefNode()
}

// NodeInfo is embedded by every concrete node to carry its span and any
// comments attached during the format package's comment-decoration pass.
type NodeInfo struct {
	Span             token.Span
	LeadingComments  []*token.Comment
	TrailingComments []*token.Comment
}

// Pos returns the node's starting position.
func (n *NodeInfo) Pos() token.Position { return n.Span.Start }

// End returns the node's ending position.
func (n *NodeInfo) End() token.Position { return n.Span.End }

// AddLeadingComment attaches a comment that precedes the node in source.
func (n *NodeInfo) AddLeadingComment(c *token.Comment) {
	n.LeadingComments = append(n.LeadingComments, c)
}

// AddTrailingComment attaches a comment that follows the node on the same line.
func (n *NodeInfo) AddTrailingComment(c *token.Comment) {
	n.TrailingComments = append(n.TrailingComments, c)
}
