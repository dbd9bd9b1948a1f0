// Package parser implements a family of cooperating recursive-descent
// routines over a lexeme stream produced by pkg/token, building the AST
// node family defined in pkg/core. There is exactly one grammar: unlike a
// dialect-pluggable parser, every preset in pkg/preset shares the same
// SELECT syntax, so this package has no clause registry or per-dialect
// handler table to consult.
package parser

import (
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/token"
)

// Options configures a Parser's diagnostic behavior. The zero value is
// valid and uses slog.Default().
type Options struct {
	Logger *slog.Logger
}

// Parser walks a fixed lexeme slice with an integer cursor (pos). Every
// parseX method advances pos itself; there is no backtracking, and the only
// lookahead is parsePrimary's one-lexeme peek for NOT EXISTS.
type Parser struct {
	lexemes  []*token.Lexeme
	pos      int
	errors   []error
	log      *slog.Logger
	paramIDs map[string]uuid.UUID
}

// New builds a Parser over sql's lexeme stream. It tokenizes eagerly, so a
// TokenizeError surfaces from New rather than from a later Parse call.
func New(sql string, opts Options) (*Parser, error) {
	lexemes, err := token.Tokenize(sql)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Parser{lexemes: lexemes, log: log}, nil
}

// ParseSelect parses sql as a single top-level query.
func ParseSelect(sql string) (*core.SelectStmt, error) {
	p, err := New(sql, Options{})
	if err != nil {
		return nil, err
	}
	stmt := p.parseSelectStmt()
	if err := p.firstError(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// paramIdentity returns the stable UUID for param's binding, assigning a
// fresh one the first time this parse encounters its name (named style) or
// index (positional style).
func (p *Parser) paramIdentity(param *core.Parameter) uuid.UUID {
	if p.paramIDs == nil {
		p.paramIDs = make(map[string]uuid.UUID)
	}
	key := "i:" + strconv.Itoa(param.Index)
	if param.Named {
		key = "n:" + param.Name
	}
	if id, ok := p.paramIDs[key]; ok {
		return id
	}
	id := uuid.New()
	p.paramIDs[key] = id
	return id
}

func (p *Parser) firstError() error {
	if len(p.errors) == 0 {
		return nil
	}
	return p.errors[0]
}

// ---------- cursor primitives ----------

func (p *Parser) cur() *token.Lexeme {
	if p.pos < len(p.lexemes) {
		return p.lexemes[p.pos]
	}
	return p.eofLexeme()
}

func (p *Parser) peekAt(offset int) *token.Lexeme {
	i := p.pos + offset
	if i < len(p.lexemes) {
		return p.lexemes[i]
	}
	return p.eofLexeme()
}

func (p *Parser) eofLexeme() *token.Lexeme {
	if len(p.lexemes) > 0 {
		last := p.lexemes[len(p.lexemes)-1]
		return &token.Lexeme{Kind: token.EOF, Span: token.Span{Start: last.Span.End, End: last.Span.End}}
	}
	return &token.Lexeme{Kind: token.EOF}
}

func (p *Parser) advance() *token.Lexeme {
	lx := p.cur()
	if p.pos < len(p.lexemes) {
		p.pos++
	}
	return lx
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) is(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) isKeyword(phrase string) bool {
	return p.cur().IsKeyword(phrase)
}

func (p *Parser) peekIsKeyword(offset int, phrase string) bool {
	return p.peekAt(offset).IsKeyword(phrase)
}

func (p *Parser) matchKind(kind token.Kind) bool {
	if p.is(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchKeyword(phrase string) bool {
	if p.isKeyword(phrase) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectKind(kind token.Kind, context string) *token.Lexeme {
	if p.is(kind) {
		return p.advance()
	}
	p.fail(kind.String(), context)
	return nil
}

func (p *Parser) expectKeyword(phrase, context string) bool {
	if p.matchKeyword(phrase) {
		return true
	}
	p.fail(phrase, context)
	return false
}

func (p *Parser) fail(expected, context string) {
	found := p.cur().Value
	if p.atEOF() {
		found = "end of input"
	}
	p.errors = append(p.errors, &ParseError{
		Offset:   p.cur().Pos().Offset,
		Expected: expected,
		Found:    found,
		Context:  context,
	})
	p.log.Debug("parse error", "context", context, "expected", expected, "found", found)
}

// span builds a NodeInfo spanning from a starting lexeme through the
// lexeme just consumed (p.pos-1).
func (p *Parser) span(start *token.Lexeme) core.NodeInfo {
	end := start.Span.End
	if p.pos > 0 {
		end = p.lexemes[p.pos-1].Span.End
	}
	return core.NodeInfo{Span: token.Span{Start: start.Pos(), End: end}}
}

func (p *Parser) identifierName(context string) string {
	if p.is(token.Identifier) || p.is(token.FunctionIdent) {
		return p.advance().Value
	}
	p.fail("identifier", context)
	return ""
}
