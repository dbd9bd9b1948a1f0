package format

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/relsql/relsql/pkg/core"
)

// lowerExpr dispatches an Expr node to its stage-1 PrintToken rendering. It
// never fails outright -- an unrecognized node records a FormatError on the
// lowerer and lowers to an empty container, so a single unsupported
// construct never panics the whole pass.
func (l *lowerer) lowerExpr(e core.Expr) *PrintToken {
	switch v := e.(type) {
	case *core.Literal:
		return l.lowerLiteral(v)
	case *core.ColumnRef:
		return l.qualifiedName(v.Qualifiers, v.Name)
	case *core.StarExpr:
		if v.Table == "" {
			return op("*")
		}
		return container(ContainerNone, l.qident(v.Table), dot(), op("*"))
	case *core.Parameter:
		return l.params.emit(v)
	case *core.BinaryExpr:
		return container(ContainerNone, l.lowerExpr(v.Left), binaryOpToken(v.Op), l.lowerExpr(v.Right))
	case *core.UnaryExpr:
		return l.lowerUnaryExpr(v)
	case *core.ParenExpr:
		return container(ContainerParen, openParen(), l.lowerExpr(v.Inner), closeParen())
	case *core.InlineQuery:
		return container(ContainerSubQuerySource, openParen(), l.lowerStmt(v.Query), closeParen())
	case *core.ExistsExpr:
		parts := []*PrintToken{}
		if v.Negated {
			parts = append(parts, kw("not"))
		}
		parts = append(parts, kw("exists"), openParen(), l.lowerStmt(v.Query), closeParen())
		return container(ContainerNone, parts...)
	case *core.CaseExpr:
		return l.lowerCaseExpr(v)
	case *core.BetweenExpr:
		parts := []*PrintToken{l.lowerExpr(v.Value)}
		if v.Negated {
			parts = append(parts, kw("not"))
		}
		parts = append(parts, kw("between"), l.lowerExpr(v.Low), kw("and"), l.lowerExpr(v.High))
		return container(ContainerNone, parts...)
	case *core.InExpr:
		return l.lowerInExpr(v)
	case *core.IsExpr:
		return l.lowerIsExpr(v)
	case *core.LikeExpr:
		return l.lowerLikeExpr(v)
	case *core.CastExpr:
		return l.lowerCastExpr(v)
	case *core.TypeRef:
		return l.lowerTypeRef(v)
	case *core.ArrayExpr:
		return l.lowerArrayExpr(v)
	case *core.IntervalExpr:
		parts := []*PrintToken{kw("interval"), lit(quoteStringLiteral(v.Literal))}
		if v.Qualifier != "" {
			parts = append(parts, kw(v.Qualifier))
		}
		return container(ContainerNone, parts...)
	case *core.ExtractExpr:
		return container(ContainerNone, kw("extract"), callParen(), kw(v.Field), kw("from"), l.lowerExpr(v.From), closeParen())
	case *core.PositionExpr:
		return container(ContainerNone, kw("position"), callParen(), l.lowerExpr(v.Needle), kw("in"), l.lowerExpr(v.Haystack), closeParen())
	case *core.SubstringExpr:
		return l.lowerSubstringExpr(v)
	case *core.TrimExpr:
		return l.lowerTrimExpr(v)
	case *core.OverlayExpr:
		parts := []*PrintToken{kw("overlay"), callParen(), l.lowerExpr(v.Target), kw("placing"), l.lowerExpr(v.Placing), kw("from"), l.lowerExpr(v.From)}
		if v.For != nil {
			parts = append(parts, kw("for"), l.lowerExpr(v.For))
		}
		parts = append(parts, closeParen())
		return container(ContainerNone, parts...)
	case *core.AtTimeZoneExpr:
		return container(ContainerNone, l.lowerExpr(v.Value), kw("at time zone"), l.lowerExpr(v.Zone))
	case *core.WindowSpec:
		if v.Ref != "" {
			return l.qident(v.Ref)
		}
		return l.lowerWindowSpecBody(v)
	case *core.FuncCall:
		return l.lowerFuncCall(v)
	default:
		l.fail("Expr", fmt.Sprintf("unsupported expression type %T", e))
		return container(ContainerNone)
	}
}

// lowerLiteral resolves the KeywordTok-vs-LiteralTok question for bool/null
// literals: their Raw text is the canonical lowercase keyword spelling the
// parser recorded, so they lower to keyword tokens and remain subject to
// keywordCase, matching how every other reserved word in the tree behaves.
// Numbers pass through verbatim; strings get their surrounding quotes and
// escaped-quote doubling put back, since the tokenizer already stripped
// both when it produced Literal.Raw.
func (l *lowerer) lowerLiteral(v *core.Literal) *PrintToken {
	switch v.Kind {
	case core.LiteralString:
		return lit(quoteStringLiteral(v.Raw))
	case core.LiteralBool, core.LiteralNull:
		return kw(v.Raw)
	default:
		return lit(v.Raw)
	}
}

func quoteStringLiteral(raw string) string {
	return "'" + strings.ReplaceAll(raw, "'", "''") + "'"
}

func binaryOpToken(o string) *PrintToken {
	if isAlphaOp(o) {
		return kw(o)
	}
	return &PrintToken{Kind: OperatorTok, Text: o}
}

func isAlphaOp(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func (l *lowerer) lowerUnaryExpr(v *core.UnaryExpr) *PrintToken {
	if isAlphaOp(v.Op) {
		return container(ContainerNone, kw(v.Op), l.lowerExpr(v.Expr))
	}
	opTok := tight(&PrintToken{Kind: OperatorTok, Text: v.Op}, false, true)
	return container(ContainerNone, opTok, l.lowerExpr(v.Expr))
}

func (l *lowerer) lowerCaseExpr(v *core.CaseExpr) *PrintToken {
	children := []*PrintToken{kw("case")}
	if v.Subject != nil {
		children = append(children, l.lowerExpr(v.Subject))
	}
	for _, w := range v.Whens {
		children = append(children, container(ContainerCaseWhen, kw("when"), l.lowerExpr(w.When), kw("then"), l.lowerExpr(w.Then)))
	}
	if v.Else != nil {
		children = append(children, kw("else"), l.lowerExpr(v.Else))
	}
	children = append(children, kw("end"))
	return container(ContainerCase, children...)
}

func (l *lowerer) lowerInExpr(v *core.InExpr) *PrintToken {
	parts := []*PrintToken{l.lowerExpr(v.Value)}
	if v.Negated {
		parts = append(parts, kw("not"))
	}
	parts = append(parts, kw("in"), openParen())
	if v.Subquery != nil {
		parts = append(parts, l.lowerStmt(v.Subquery))
	} else {
		for i, item := range v.List {
			if i > 0 {
				parts = append(parts, comma())
			}
			parts = append(parts, l.lowerExpr(item))
		}
	}
	parts = append(parts, closeParen())
	return container(ContainerNone, parts...)
}

func (l *lowerer) lowerIsExpr(v *core.IsExpr) *PrintToken {
	parts := []*PrintToken{l.lowerExpr(v.Value), kw("is")}
	if v.Negated {
		parts = append(parts, kw("not"))
	}
	switch v.Target {
	case core.IsNull:
		parts = append(parts, kw("null"))
	case core.IsTrue:
		parts = append(parts, kw("true"))
	case core.IsFalse:
		parts = append(parts, kw("false"))
	case core.IsDistinctFrom:
		parts = append(parts, kw("distinct from"), l.lowerExpr(v.Operand))
	}
	return container(ContainerNone, parts...)
}

func (l *lowerer) lowerLikeExpr(v *core.LikeExpr) *PrintToken {
	parts := []*PrintToken{l.lowerExpr(v.Value)}
	if v.Negated {
		parts = append(parts, kw("not"))
	}
	switch {
	case v.ILike:
		parts = append(parts, kw("ilike"))
	case v.Similar:
		parts = append(parts, kw("similar to"))
	default:
		parts = append(parts, kw("like"))
	}
	parts = append(parts, l.lowerExpr(v.Pattern))
	if v.Escape != nil {
		parts = append(parts, kw("escape"), l.lowerExpr(v.Escape))
	}
	return container(ContainerNone, parts...)
}

func (l *lowerer) lowerCastExpr(v *core.CastExpr) *PrintToken {
	if v.Style == core.CastDoubleColon {
		return container(ContainerNone, l.lowerExpr(v.Value), tight(op("::"), true, true), l.lowerTypeRef(v.Type))
	}
	return container(ContainerNone, kw("cast"), callParen(), l.lowerExpr(v.Value), kw("as"), l.lowerTypeRef(v.Type), closeParen())
}

func (l *lowerer) lowerTypeRef(t *core.TypeRef) *PrintToken {
	parts := []*PrintToken{kw(t.Name)}
	if t.Precision != nil {
		parts = append(parts, callParen(), lit(strconv.Itoa(*t.Precision)))
		if t.Scale != nil {
			parts = append(parts, comma(), lit(strconv.Itoa(*t.Scale)))
		}
		parts = append(parts, closeParen())
	}
	switch t.Timezone {
	case core.TimezoneWith:
		parts = append(parts, kw("with time zone"))
	case core.TimezoneWithout:
		parts = append(parts, kw("without time zone"))
	}
	return container(ContainerNone, parts...)
}

func (l *lowerer) lowerArrayExpr(v *core.ArrayExpr) *PrintToken {
	parts := []*PrintToken{kw("array"), tight(op("["), true, true)}
	for i, e := range v.Elements {
		if i > 0 {
			parts = append(parts, comma())
		}
		parts = append(parts, l.lowerExpr(e))
	}
	parts = append(parts, tight(op("]"), true, false))
	return container(ContainerNone, parts...)
}

func (l *lowerer) lowerSubstringExpr(v *core.SubstringExpr) *PrintToken {
	parts := []*PrintToken{kw("substring"), callParen(), l.lowerExpr(v.Target)}
	if v.CommaForm {
		if v.From != nil {
			parts = append(parts, comma(), l.lowerExpr(v.From))
		}
		if v.For != nil {
			parts = append(parts, comma(), l.lowerExpr(v.For))
		}
	} else {
		if v.From != nil {
			parts = append(parts, kw("from"), l.lowerExpr(v.From))
		}
		if v.For != nil {
			parts = append(parts, kw("for"), l.lowerExpr(v.For))
		}
		if v.Similar {
			parts = append(parts, kw("similar"), l.lowerExpr(v.Pattern), kw("escape"), l.lowerExpr(v.Escape))
		}
	}
	parts = append(parts, closeParen())
	return container(ContainerNone, parts...)
}

func (l *lowerer) lowerTrimExpr(v *core.TrimExpr) *PrintToken {
	if v.PostgresStyle {
		parts := []*PrintToken{kw("trim"), callParen(), l.lowerExpr(v.Target)}
		if v.Characters != nil {
			parts = append(parts, comma(), l.lowerExpr(v.Characters))
		}
		parts = append(parts, closeParen())
		return container(ContainerNone, parts...)
	}
	parts := []*PrintToken{kw("trim"), callParen()}
	switch v.Side {
	case core.TrimLeading:
		parts = append(parts, kw("leading"))
	case core.TrimTrailing:
		parts = append(parts, kw("trailing"))
	case core.TrimBoth:
		parts = append(parts, kw("both"))
	}
	if v.Characters != nil {
		parts = append(parts, l.lowerExpr(v.Characters))
	}
	parts = append(parts, kw("from"), l.lowerExpr(v.Target), closeParen())
	return container(ContainerNone, parts...)
}

func (l *lowerer) lowerWindowSpecBody(w *core.WindowSpec) *PrintToken {
	var parts []*PrintToken
	if len(w.PartitionBy) > 0 {
		parts = append(parts, kw("partition by"))
		for i, e := range w.PartitionBy {
			if i > 0 {
				parts = append(parts, comma())
			}
			parts = append(parts, l.lowerExpr(e))
		}
	}
	if w.OrderBy != nil {
		parts = append(parts, l.lowerOrderBy(w.OrderBy))
	}
	if w.Frame != nil {
		parts = append(parts, l.lowerFrameSpec(w.Frame))
	}
	return container(ContainerWindowSpec, parts...)
}

var frameUnitWord = map[core.FrameUnit]string{
	core.FrameRows:   "rows",
	core.FrameRange:  "range",
	core.FrameGroups: "groups",
}

func (l *lowerer) lowerFrameSpec(f *core.FrameSpec) *PrintToken {
	parts := []*PrintToken{kw(frameUnitWord[f.Unit])}
	if f.End != nil {
		parts = append(parts, kw("between"), l.lowerFrameBound(f.Start), kw("and"), l.lowerFrameBound(*f.End))
	} else {
		parts = append(parts, l.lowerFrameBound(f.Start))
	}
	return container(ContainerFrameSpec, parts...)
}

func (l *lowerer) lowerFrameBound(b core.FrameBound) *PrintToken {
	switch b.Kind {
	case core.FrameUnboundedPreceding:
		return kw("unbounded preceding")
	case core.FramePreceding:
		return container(ContainerNone, l.lowerExpr(b.Offset), kw("preceding"))
	case core.FrameCurrentRow:
		return kw("current row")
	case core.FrameFollowing:
		return container(ContainerNone, l.lowerExpr(b.Offset), kw("following"))
	case core.FrameUnboundedFollowing:
		return kw("unbounded following")
	default:
		return container(ContainerNone)
	}
}

func (l *lowerer) lowerFuncCall(fn *core.FuncCall) *PrintToken {
	if fn.Window != nil && fn.WithinGroup != nil {
		l.fail("FuncCall", "cannot set both an OVER window and a WITHIN GROUP clause on "+fn.Name)
	}

	children := []*PrintToken{ident(fn.Name), callParen()}
	if fn.Distinct {
		children = append(children, kw("distinct"))
	}
	if fn.Star {
		children = append(children, op("*"))
	} else {
		for i, a := range fn.Args {
			if i > 0 {
				children = append(children, comma())
			}
			children = append(children, l.lowerExpr(a))
		}
	}
	children = append(children, closeParen())

	if fn.Filter != nil {
		children = append(children, kw("filter"), openParen(), kw("where"), l.lowerExpr(fn.Filter), closeParen())
	}
	if fn.Window != nil {
		children = append(children, kw("over"))
		if fn.Window.Ref != "" {
			children = append(children, l.qident(fn.Window.Ref))
		} else {
			children = append(children, openParen(), l.lowerWindowSpecBody(fn.Window), closeParen())
		}
	}
	if fn.WithinGroup != nil {
		children = append(children, kw("within group"), openParen(), l.lowerOrderBy(fn.WithinGroup), closeParen())
	}
	return container(ContainerFuncArgs, children...)
}
