package parser

import "github.com/relsql/relsql/pkg/token"

// Operator precedence, lowest to highest. Higher numbers bind tighter.
// This table is fixed across all four presets: the grammar itself never
// varies by target dialect, only the formatter's presentation of it does.
// Prefix NOT binds between AND and the comparison family: parsePrefix
// parses its operand at precComparison.
const (
	precNone = iota
	precOr
	precAnd
	precComparison // =, <>, <, >, <=, >=, IS, IN, BETWEEN, LIKE, ILIKE, SIMILAR TO
	precBitwise    // |, #, &
	precAddition   // +, -, ||
	precMultiply   // *, /, %
	precUnary      // unary -, +
	precExponent   // ^
	precPostfix    // ::, AT TIME ZONE
)

var binaryOperators = map[string]int{
	"=": precComparison, "<>": precComparison, "!=": precComparison,
	"<": precComparison, ">": precComparison, "<=": precComparison, ">=": precComparison,
	"|": precBitwise, "#": precBitwise, "&": precBitwise,
	"+": precAddition, "-": precAddition, "||": precAddition,
	"*": precMultiply, "/": precMultiply, "%": precMultiply,
	"^": precExponent,
}

// infixPrecedence returns the binding power of the current lexeme as an
// infix operator, or precNone if it isn't one.
func (p *Parser) infixPrecedence() int {
	cur := p.cur()
	switch cur.Kind {
	case token.Operator:
		if prec, ok := binaryOperators[cur.Value]; ok {
			return prec
		}
		return precNone
	case token.Keyword:
		switch cur.Value {
		case "or":
			return precOr
		case "and":
			return precAnd
		case "is", "in", "between", "like", "ilike", "not in", "not like",
			"not ilike", "not between", "similar to", "not similar to",
			"is not", "is distinct from", "is not distinct from":
			return precComparison
		}
	}
	return precNone
}
