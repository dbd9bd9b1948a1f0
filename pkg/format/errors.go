package format

import "fmt"

// FormatError reports an invariant violation in the tree passed to the
// formatter -- always a programmer error, never a consequence of malformed
// user input, since a tree that reaches this package already survived
// pkg/parser. Node names the offending construct (e.g. "FuncCall") and
// Detail states the violated invariant.
type FormatError struct {
	Node   string
	Detail string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error in %s: %s", e.Node, e.Detail)
}

func newFormatError(node, detail string) *FormatError {
	return &FormatError{Node: node, Detail: detail}
}
