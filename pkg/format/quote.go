package format

import (
	"regexp"
	"strings"

	"github.com/relsql/relsql/pkg/preset"
	"github.com/relsql/relsql/pkg/token"
)

// quoteIdent wraps name in the resolved preset's escape pair, doubling any
// embedded occurrence of the closing delimiter the way SQL identifier
// quoting always does. The formatter quotes every identifier it emits
// unconditionally; IsSafeUnquoted below is exposed for callers building
// their own presentation on top of a Resolved config, not consulted here.
func quoteIdent(name string, r preset.Resolved) string {
	escaped := strings.ReplaceAll(name, r.QuoteEnd, r.QuoteEscape)
	return r.QuoteStart + escaped + r.QuoteEnd
}

var simpleIdentRE = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsSafeUnquoted reports whether name could round-trip through the given
// preset without quoting: it must be a bare word matching the identifier
// grammar, it must not be a reserved keyword, and its casing must already
// match the preset's normalization strategy. It never affects Format's own
// output -- the formatter always quotes -- but is exposed as the concrete
// realization of the per-preset normalization metadata described in
// SUPPLEMENTED FEATURES.
func IsSafeUnquoted(name string, r preset.Resolved) bool {
	if !simpleIdentRE.MatchString(name) {
		return false
	}
	if token.IsKeyword(strings.ToLower(name)) {
		return false
	}
	switch r.Normalization {
	case preset.NormalizeLowercase:
		return name == strings.ToLower(name)
	case preset.NormalizeUppercase:
		return name == strings.ToUpper(name)
	default: // NormalizePreserveInsensitive
		return true
	}
}
