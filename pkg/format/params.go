package format

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/relsql/relsql/pkg/core"
	"github.com/relsql/relsql/pkg/preset"
)

// ParamBinding is one entry of a Formatter.Format parameter bag: the
// occurrence-order index (indexed/anonymous style) or original name (named
// style) of a single unique parameter identity. The core has no notion of
// an actual bound runtime value -- it is a syntax library, not an
// executor -- so a ParamBinding is a reference back to the occurrence, not
// a value.
type ParamBinding struct {
	Name  string
	Index int
}

// paramTracker assigns each unique core.Parameter identity (keyed by its
// uuid.UUID, not by Go pointer identity, since a cloned tree must still
// recognize repeated occurrences of "the same" parameter) a stable index on
// first encounter and renders its placeholder text per the resolved
// parameter style.
type paramTracker struct {
	style   preset.PlaceholderStyle
	symbol  string
	order   []uuid.UUID
	index   map[uuid.UUID]int
	binding map[uuid.UUID]ParamBinding
}

func newParamTracker(symbol string, style preset.PlaceholderStyle) *paramTracker {
	return &paramTracker{
		style:   style,
		symbol:  symbol,
		index:   make(map[uuid.UUID]int),
		binding: make(map[uuid.UUID]ParamBinding),
	}
}

// emit returns the PrintToken rendering p, assigning it a fresh index the
// first time this identity is seen.
func (pt *paramTracker) emit(p *core.Parameter) *PrintToken {
	idx, seen := pt.index[p.ID]
	if !seen {
		idx = len(pt.order) + 1
		pt.order = append(pt.order, p.ID)
		pt.index[p.ID] = idx
		pt.binding[p.ID] = ParamBinding{Name: p.Name, Index: idx}
	}

	switch pt.style {
	case preset.PlaceholderNamed:
		return param(pt.symbol + p.Name)
	case preset.PlaceholderAnonymous:
		return param(pt.symbol)
	default:
		return param(fmt.Sprintf("%s%d", pt.symbol, idx))
	}
}

// bag returns the parameter container Format returns: a name-keyed map
// under named style, an order-preserving array otherwise.
func (pt *paramTracker) bag() any {
	if pt.style == preset.PlaceholderNamed {
		m := make(map[string]ParamBinding, len(pt.order))
		for _, id := range pt.order {
			b := pt.binding[id]
			m[b.Name] = b
		}
		return m
	}
	arr := make([]ParamBinding, 0, len(pt.order))
	for _, id := range pt.order {
		arr = append(arr, pt.binding[id])
	}
	return arr
}
