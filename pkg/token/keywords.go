package token

import "strings"

// singleKeywords is the set of reserved words that are always keywords on
// their own. It is populated once in init() and never mutated afterward, so
// it is safe to read from any number of goroutines without synchronization.
var singleKeywords map[string]struct{}

// phraseTrie roots the multi-word keyword-phrase table. Each node's
// children are keyed by the next word in the phrase; terminal marks a node
// where the accumulated path is itself a complete, fusable phrase.
type phraseNode struct {
	children map[string]*phraseNode
	terminal bool
}

var phraseRoot *phraseNode

func init() {
	singleKeywords = make(map[string]struct{}, len(singleWords))
	for _, w := range singleWords {
		singleKeywords[w] = struct{}{}
	}

	phraseRoot = &phraseNode{children: make(map[string]*phraseNode)}
	for _, phrase := range multiWordPhrases {
		words := strings.Fields(phrase)
		node := phraseRoot
		for _, w := range words {
			child, ok := node.children[w]
			if !ok {
				child = &phraseNode{children: make(map[string]*phraseNode)}
				node.children[w] = child
			}
			node = child
		}
		node.terminal = true
		// The phrase's leading word must also be recognised as a keyword on
		// its own so the tokenizer knows to consult the trie at all.
		singleKeywords[words[0]] = struct{}{}
	}
}

// IsKeyword reports whether word (already lowercased) is a reserved word,
// either standalone or as the head of a multi-word phrase.
func IsKeyword(word string) bool {
	_, ok := singleKeywords[word]
	return ok
}

// LongestPhrase attempts to extend the reserved word head with as many of
// the following (already-lowercased) words as form the longest known
// keyword phrase. It returns the number of words consumed (at least 1 when
// head is itself a keyword, 0 otherwise).
func LongestPhrase(head string, following func(i int) (word string, ok bool)) int {
	node, ok := phraseRoot.children[head]
	if !ok {
		if IsKeyword(head) {
			return 1
		}
		return 0
	}
	consumed := 1
	best := 0
	if node.terminal {
		best = 1
	}
	i := 0
	for {
		w, ok := following(i)
		if !ok {
			break
		}
		child, ok := node.children[w]
		if !ok {
			break
		}
		node = child
		consumed++
		i++
		if node.terminal {
			best = consumed
		}
	}
	if best == 0 {
		best = 1
	}
	return best
}

// singleWords are reserved words recognised on their own. A word here that
// also heads an entry of multiWordPhrases is fused with its followers when
// that phrase follows it.
var singleWords = []string{
	"all", "and", "array", "as", "asc", "at",
	"between", "both", "by",
	"case", "cast", "collate", "cross", "current",
	"desc", "distinct",
	"else", "end", "escape", "except", "exists", "extract",
	"false", "fetch", "filter", "first", "following", "for", "from", "full",
	"group", "having",
	"ilike", "in", "inner", "interval", "intersect", "into", "is",
	"join",
	"lateral", "leading", "left", "like", "limit", "locked",
	"materialized",
	"natural", "next", "no", "not", "nowait", "null", "nulls",
	"of", "offset", "on", "only", "or", "order", "outer", "over", "overlay",
	"partition", "percent", "placing", "position", "preceding",
	"range", "recursive", "right", "row", "rows",
	"select", "share", "similar", "skip", "substring",
	"then", "trailing", "trim", "true",
	"unbounded", "union", "unique", "update", "using",
	"values",
	"when", "where", "window", "with", "within", "without",
	"zone",
}

// multiWordPhrases are reserved phrases fused into one Keyword lexeme.
// Order is irrelevant; the trie handles longest-match on its own.
var multiWordPhrases = []string{
	"group by",
	"order by",
	"partition by",
	"within group",
	"is not distinct from",
	"is distinct from",
	"is not",
	"not between",
	"not in",
	"not like",
	"not ilike",
	"not similar to",
	"similar to",
	"union all",
	"nulls first",
	"nulls last",
	"at time zone",
	"not materialized",
	"double precision",
	"character varying",
	"timestamp without time zone",
	"timestamp with time zone",
	"time without time zone",
	"time with time zone",
	"left join",
	"right join",
	"full join",
	"inner join",
	"cross join",
	"left outer join",
	"right outer join",
	"full outer join",
	"natural join",
	"natural left join",
	"natural right join",
	"natural full join",
	"natural inner join",
	"natural left outer join",
	"natural right outer join",
	"natural full outer join",
	"for update",
	"for share",
	"for no key update",
	"for key share",
	"fetch first",
	"fetch next",
	"with ties",
	"unbounded preceding",
	"unbounded following",
	"current row",
}
