package format

// Kind tags the syntactic category of a PrintToken, the intermediate
// representation the lowering stage produces from a pkg/core AST and the
// line printer consumes to produce text.
type Kind int

// PrintToken kinds.
const (
	KeywordTok Kind = iota
	IdentifierTok
	LiteralTok
	OperatorTok
	CommaTok
	ParameterTok
	CommentTok
	ContainerTok
)

// ContainerKind tags a container PrintToken with the grammar production it
// represents. The line printer consults this to decide indentation and
// line-break behavior; a non-container token carries ContainerNone.
type ContainerKind int

// Container kinds, one per grammar production the printer treats specially.
const (
	ContainerNone ContainerKind = iota
	ContainerSelect
	ContainerFrom
	ContainerWhere
	ContainerGroupBy
	ContainerHaving
	ContainerOrderBy
	ContainerWindow
	ContainerLimit
	ContainerOffset
	ContainerFetch
	ContainerFor
	ContainerWith
	ContainerCommonTable
	ContainerValues
	ContainerJoin
	ContainerSubQuerySource
	ContainerFunctionSource
	ContainerCase
	ContainerCaseWhen
	ContainerBinarySelect
	ContainerSelectItem
	ContainerFuncArgs
	ContainerWindowSpec
	ContainerFrameSpec
	ContainerParen
)

// indentIncrementing is the set of container kinds that, in pretty-print
// mode (newline != " "), open on a new line one level deeper than their
// caller and restore the caller's level when they close. This is the exact
// set named by the formatter's stage-2 newline policy.
var indentIncrementing = map[ContainerKind]bool{
	ContainerSelect:         true,
	ContainerFrom:           true,
	ContainerWhere:          true,
	ContainerGroupBy:        true,
	ContainerHaving:         true,
	ContainerOrderBy:        true,
	ContainerWindow:         true,
	ContainerLimit:          true,
	ContainerOffset:         true,
	ContainerWith:           true,
	ContainerBinarySelect:   true,
	ContainerValues:         true,
	ContainerSubQuerySource: true,
	ContainerCase:           true,
}

// PrintToken is the stage-1 output: a leaf token carrying text, or a
// container node grouping child tokens under a grammar production. Children
// is only meaningful when Kind == ContainerTok. Attached holds comment
// tokens bound to a keyword (attachedKeywordTokens in the language-neutral
// spec) rather than floating freely in Children.
type PrintToken struct {
	Kind      Kind
	Text      string
	Container ContainerKind
	Children  []*PrintToken
	Attached  []*PrintToken

	// tightBefore/tightAfter suppress the printer's default single-space
	// join on the corresponding side of this token. They exist purely to
	// let punctuation (parens, dot, ::) glue to its neighbor without
	// growing the Kind vocabulary the spec defines.
	tightBefore bool
	tightAfter  bool

	// oneline marks a CommonTable container that must be rendered by a
	// recursively instantiated sub-printer with newline forced to " ",
	// per the CTE one-liner policy.
	oneline bool

	// structuralBreakAfter marks a token (an injected CTE import comment)
	// that must be followed by a line break in pretty mode regardless of
	// the surrounding comma/AND break configuration.
	structuralBreakAfter bool
}

func kw(text string) *PrintToken   { return &PrintToken{Kind: KeywordTok, Text: text} }
func ident(text string) *PrintToken { return &PrintToken{Kind: IdentifierTok, Text: text} }
func lit(text string) *PrintToken  { return &PrintToken{Kind: LiteralTok, Text: text} }
func op(text string) *PrintToken   { return &PrintToken{Kind: OperatorTok, Text: text} }
func comma() *PrintToken           { return &PrintToken{Kind: CommaTok, Text: ",", tightBefore: true} }
func param(text string) *PrintToken { return &PrintToken{Kind: ParameterTok, Text: text} }
func commentTok(text string) *PrintToken { return &PrintToken{Kind: CommentTok, Text: text} }

// importComment builds the `/* import <name>.cte.sql */` marker the
// cteOnelineDependency policy injects after WITH for each leaf common
// table, forcing its own line regardless of comma/AND break settings.
func importComment(cteName string) *PrintToken {
	c := commentTok("/* import " + cteName + ".cte.sql */")
	c.structuralBreakAfter = true
	return c
}

func tight(t *PrintToken, before, after bool) *PrintToken {
	t.tightBefore = t.tightBefore || before
	t.tightAfter = t.tightAfter || after
	return t
}

func container(kind ContainerKind, children ...*PrintToken) *PrintToken {
	return &PrintToken{Kind: ContainerTok, Container: kind, Children: children}
}

// openParen/closeParen/dot are the punctuation tokens the lowering stage
// reaches for whenever grouping or qualification needs an operator glyph
// with no surrounding whitespace.
func openParen() *PrintToken  { return tight(op("("), false, true) }
func closeParen() *PrintToken { return tight(op(")"), true, false) }
func dot() *PrintToken        { return tight(op("."), true, true) }

// callParen is openParen's tight-before variant: it hugs the token before
// it, for the function-call-like forms (a plain call, CAST, EXTRACT,
// POSITION, SUBSTRING, TRIM, OVERLAY, a type's precision) whose name or keyword must
// never be followed by a space before "(" -- unlike EXISTS(...), IN(...),
// FILTER(...), and OVER(...), which keep the space SQL convention gives them.
func callParen() *PrintToken { return tight(op("("), true, true) }
