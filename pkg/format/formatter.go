package format

import (
	"log/slog"

	"go.uber.org/multierr"

	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/parser"
	"github.com/relsql/relsql/pkg/preset"
	"github.com/relsql/relsql/pkg/token"
)

// Formatter renders a parsed query back to SQL text under a fixed set of
// Options, resolved once at construction against a named preset the way
// pkg/parser resolves its own Options.Logger once in New.
type Formatter struct {
	opts   Options
	preset preset.Resolved
	log    *slog.Logger
}

// New resolves opts against its named preset (or "postgres" when Preset is
// empty) and returns a ready-to-use Formatter. A caller who passes an
// unknown preset name gets back the *preset.PresetError unchanged.
func New(opts Options) (*Formatter, error) {
	opts = opts.withDefaults()
	resolved, err := preset.Resolve(opts.Preset, opts.presetOverrides())
	if err != nil {
		return nil, err
	}
	return &Formatter{opts: opts, preset: resolved, log: opts.Logger}, nil
}

// Format renders query to SQL text and returns the parameter bag Formatter
// assigns to every distinct Parameter identity it encounters: an
// occurrence-ordered []ParamBinding under indexed/anonymous style, or a
// map[string]ParamBinding keyed by name under named style.
//
// Lowering records every FormatError it meets rather than stopping at the
// first one; they are combined via multierr and returned before anything
// is printed, since a caller debugging a broken tree wants the whole list
// at once.
func (f *Formatter) Format(query core.Stmt) (string, any, error) {
	params := newParamTracker(f.paramSymbol(), f.preset.Placeholder)
	if f.opts.ParameterStyle != nil {
		params.style = placeholderStyleFor(*f.opts.ParameterStyle)
	}

	l := newLowerer(f.preset, f.opts, params)
	root := l.lowerStmt(query)

	if err := multierr.Combine(l.errs...); err != nil {
		f.log.Debug("format: rejected tree", "error", err)
		return "", nil, err
	}

	p := newPrinter(f.opts)
	sql := p.print(root)
	f.log.Debug("format: rendered query", "length", len(sql))
	return sql, params.bag(), nil
}

// FormatSQL tokenizes, parses, and formats sql in one call, decorating the
// resulting tree with its own source comments first so exportComment has
// something to render. It is the parse-and-format convenience the teacher
// exposed as a standalone entry point rather than requiring every caller
// to wire tokenize/parse/decorate/format together by hand.
func (f *Formatter) FormatSQL(sql string) (string, any, error) {
	lexemes, err := token.Tokenize(sql)
	if err != nil {
		return "", nil, err
	}
	stmt, err := parser.ParseSelect(sql)
	if err != nil {
		return "", nil, err
	}
	Decorate(stmt, CollectComments(lexemes))
	return f.Format(stmt)
}

func (f *Formatter) paramSymbol() string {
	if f.opts.ParameterSymbol != nil {
		return *f.opts.ParameterSymbol
	}
	return f.preset.ParameterSymbol
}
