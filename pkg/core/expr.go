package core

import "github.com/google/uuid"

// LiteralKind tags the payload shape of a Literal.
type LiteralKind int

// Literal kinds.
const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// Literal is a numeric, string, boolean, or null constant.
type Literal struct {
	NodeInfo
	Kind LiteralKind
	Raw  string
}

func (*Literal) exprNode() {}

// ColumnRef is a (possibly qualified) column reference, e.g. `t.id`.
type ColumnRef struct {
	NodeInfo
	Qualifiers []string
	Name       string
}

func (*ColumnRef) exprNode() {}

// StarExpr is a bare `*` or a qualified `t.*` wildcard. The parser produces
// it wherever a primary expression may stand and does not reject it outside
// select-item position.
type StarExpr struct {
	NodeInfo
	Table string // empty for a bare `*`
}

func (*StarExpr) exprNode() {}

// Parameter is a bound placeholder. ID gives every parameter node a stable
// identity that survives structural cloning. The parser gives every
// occurrence of the same binding (same name, or same index) within one
// parse the same ID, so the formatter recognises them as one binding
// without relying on Go pointer identity.
type Parameter struct {
	NodeInfo
	Name  string // for :name style; empty for positional
	Index int    // for $N style; 0 when not applicable
	Named bool
	ID    uuid.UUID
}

func (*Parameter) exprNode() {}

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	NodeInfo
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr is `op expr` (prefix only: -, +, NOT).
type UnaryExpr struct {
	NodeInfo
	Op   string
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// ParenExpr is a parenthesised expression that did not promote to a subquery.
type ParenExpr struct {
	NodeInfo
	Inner Expr
}

func (*ParenExpr) exprNode() {}

// InlineQuery is a SELECT used where a value is expected: a scalar
// subquery or an IN-list subquery.
type InlineQuery struct {
	NodeInfo
	Query Stmt
}

func (*InlineQuery) exprNode() {}

// ExistsExpr is `[NOT] EXISTS (subquery)`.
type ExistsExpr struct {
	NodeInfo
	Query   Stmt
	Negated bool
}

func (*ExistsExpr) exprNode() {}

// WhenClause is one `WHEN cond THEN result` arm of a CaseExpr.
type WhenClause struct {
	When Expr
	Then Expr
}

// CaseExpr is `CASE [subject] WHEN ... THEN ... [ELSE ...] END`.
type CaseExpr struct {
	NodeInfo
	Subject Expr // nil for the searched form
	Whens   []WhenClause
	Else    Expr
}

func (*CaseExpr) exprNode() {}

// BetweenExpr is `value [NOT] BETWEEN low AND high`.
type BetweenExpr struct {
	NodeInfo
	Value   Expr
	Low     Expr
	High    Expr
	Negated bool
}

func (*BetweenExpr) exprNode() {}

// InExpr is `value [NOT] IN (list)` or `value [NOT] IN (subquery)`.
type InExpr struct {
	NodeInfo
	Value    Expr
	List     []Expr
	Subquery Stmt
	Negated  bool
}

func (*InExpr) exprNode() {}

// IsTarget is what an IsExpr tests its value against.
type IsTarget int

// IS targets.
const (
	IsNull IsTarget = iota
	IsTrue
	IsFalse
	IsDistinctFrom
)

// IsExpr is `value IS [NOT] {NULL|TRUE|FALSE|DISTINCT FROM operand}`.
type IsExpr struct {
	NodeInfo
	Value   Expr
	Target  IsTarget
	Operand Expr // set only when Target == IsDistinctFrom
	Negated bool
}

func (*IsExpr) exprNode() {}

// LikeExpr is `value [NOT] {LIKE|ILIKE|SIMILAR TO} pattern [ESCAPE e]`.
type LikeExpr struct {
	NodeInfo
	Value   Expr
	Pattern Expr
	Escape  Expr
	ILike   bool
	Similar bool
	Negated bool
}

func (*LikeExpr) exprNode() {}

// CastStyle distinguishes `CAST(x AS T)` from the postfix `x::T` form.
type CastStyle int

// Cast styles.
const (
	CastAs CastStyle = iota
	CastDoubleColon
)

// CastExpr is `CAST(value AS type)` or `value::type`.
type CastExpr struct {
	NodeInfo
	Value Expr
	Type  *TypeRef
	Style CastStyle
}

func (*CastExpr) exprNode() {}

// TimezoneMode records whether a TypeRef carried a WITH/WITHOUT TIME ZONE
// qualifier.
type TimezoneMode int

// Timezone modes.
const (
	TimezoneNone TimezoneMode = iota
	TimezoneWith
	TimezoneWithout
)

// TypeRef names a SQL type, optionally with precision/scale and a timezone
// qualifier (`NUMERIC(10,2)`, `TIMESTAMP WITHOUT TIME ZONE`).
type TypeRef struct {
	NodeInfo
	Name      string
	Precision *int
	Scale     *int
	Timezone  TimezoneMode
}

func (*TypeRef) exprNode() {}

// ArrayExpr is `ARRAY[e1, e2, ...]`.
type ArrayExpr struct {
	NodeInfo
	Elements []Expr
}

func (*ArrayExpr) exprNode() {}

// IntervalExpr is `INTERVAL 'literal' [qualifier]`.
type IntervalExpr struct {
	NodeInfo
	Literal   string
	Qualifier string
}

func (*IntervalExpr) exprNode() {}

// ExtractExpr is `EXTRACT(field FROM source)`.
type ExtractExpr struct {
	NodeInfo
	Field string
	From  Expr
}

func (*ExtractExpr) exprNode() {}

// PositionExpr is `POSITION(needle IN haystack)`.
type PositionExpr struct {
	NodeInfo
	Needle   Expr
	Haystack Expr
}

func (*PositionExpr) exprNode() {}

// SubstringExpr is `SUBSTRING(...)` in either its comma form
// (`SUBSTRING(s, start, len)`) or its SQL-standard keyword form
// (`SUBSTRING(s FROM start FOR len)`, with an optional SIMILAR/ESCAPE
// pattern variant).
type SubstringExpr struct {
	NodeInfo
	Target    Expr
	From      Expr
	For       Expr
	Pattern   Expr
	Escape    Expr
	Similar   bool
	CommaForm bool
}

func (*SubstringExpr) exprNode() {}

// TrimSide is which side(s) TrimExpr strips characters from.
type TrimSide int

// Trim sides.
const (
	TrimBoth TrimSide = iota
	TrimLeading
	TrimTrailing
)

// TrimExpr is `TRIM([side] [characters FROM] target)`, or the PostgreSQL
// reversed argument-order form `TRIM(target, characters)`.
type TrimExpr struct {
	NodeInfo
	Side          TrimSide
	Characters    Expr
	Target        Expr
	PostgresStyle bool
}

func (*TrimExpr) exprNode() {}

// OverlayExpr is `OVERLAY(target PLACING placing FROM from [FOR forLen])`.
type OverlayExpr struct {
	NodeInfo
	Target  Expr
	Placing Expr
	From    Expr
	For     Expr
}

func (*OverlayExpr) exprNode() {}

// AtTimeZoneExpr is `value AT TIME ZONE zone`.
type AtTimeZoneExpr struct {
	NodeInfo
	Value Expr
	Zone  Expr
}

func (*AtTimeZoneExpr) exprNode() {}

// FrameUnit is a window frame's unit (ROWS/RANGE/GROUPS).
type FrameUnit int

// Frame units.
const (
	FrameRows FrameUnit = iota
	FrameRange
	FrameGroups
)

// FrameBoundKind tags one edge of a window frame.
type FrameBoundKind int

// Frame bound kinds.
const (
	FrameUnboundedPreceding FrameBoundKind = iota
	FramePreceding
	FrameCurrentRow
	FrameFollowing
	FrameUnboundedFollowing
)

// FrameBound is one edge (start or end) of a FrameSpec.
type FrameBound struct {
	Kind   FrameBoundKind
	Offset Expr // set only for Preceding/Following
}

// FrameSpec is a window frame clause, e.g. `ROWS BETWEEN UNBOUNDED
// PRECEDING AND CURRENT ROW`.
type FrameSpec struct {
	Unit  FrameUnit
	Start FrameBound
	End   *FrameBound // nil when the frame has only a start bound
}

// WindowSpec is the contents of an `OVER (...)` clause, or a bare named
// window reference (`OVER w`).
type WindowSpec struct {
	NodeInfo
	Ref         string // set when this is a bare named-window reference
	PartitionBy []Expr
	OrderBy     *OrderByClause
	Frame       *FrameSpec
}

func (*WindowSpec) exprNode() {}

// FuncCall is a function call, with the optional tail modifiers a call can
// carry: DISTINCT, FILTER (WHERE ...), and at most one of OVER (...) or
// WITHIN GROUP (ORDER BY ...).
type FuncCall struct {
	NodeInfo
	Name        string
	Distinct    bool
	Star        bool // COUNT(*)
	Args        []Expr
	Filter      Expr
	Window      *WindowSpec
	WithinGroup *OrderByClause
}

func (*FuncCall) exprNode() {}
