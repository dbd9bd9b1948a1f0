// Package preset holds the fixed, presentation-only dialect bundles the
// formatter consults for identifier quoting and parameter rendering. Each
// preset also records a keyword-casing preference, which pkg/format does
// not read; keyword case there comes only from format.Options.KeywordCase.
// Unlike a pluggable dialect registry, the set of presets
// is closed: postgres, mysql, sqlite, and sqlserver, each a pure-data value
// built once and shared without locking.
package preset

// PlaceholderStyle names how a Preset renders bound parameters.
type PlaceholderStyle int

// Placeholder styles.
const (
	// PlaceholderIndexed renders `$1`, `$2`, ... keyed by parameter identity.
	PlaceholderIndexed PlaceholderStyle = iota
	// PlaceholderAnonymous renders a single repeated symbol (`?`) with no
	// positional information.
	PlaceholderAnonymous
	// PlaceholderNamed renders `@name` (or similar) using the parameter's
	// own name.
	PlaceholderNamed
)

// Normalization names how a preset treats unquoted identifier casing.
// format.IsSafeUnquoted consults it to decide whether an identifier
// round-trips safely without quoting; Format itself always quotes. It never
// drives semantic resolution.
type Normalization int

// Normalization strategies.
const (
	// NormalizeLowercase folds unquoted identifiers to lowercase (PostgreSQL,
	// SQLite).
	NormalizeLowercase Normalization = iota
	// NormalizeUppercase folds unquoted identifiers to uppercase.
	NormalizeUppercase
	// NormalizePreserveInsensitive preserves the identifier's written case
	// for output but treats comparison as case-insensitive (SQL Server).
	NormalizePreserveInsensitive
)

// KeywordCase is a preset's preferred keyword rendering.
type KeywordCase int

// Keyword casing options.
const (
	KeywordUpper KeywordCase = iota
	KeywordLower
)

// Preset is a fixed, immutable bundle of formatter presentation defaults
// for one target dialect. Values are never mutated after construction; the
// package-level presets map built in init() is safe to read from any
// number of goroutines without synchronization.
type Preset struct {
	Name            string
	QuoteStart      string
	QuoteEnd        string
	QuoteEscape     string
	Placeholder     PlaceholderStyle
	ParameterSymbol string // "$" for indexed, "?" for anonymous, "@" for named
	Normalization   Normalization
	KeywordCasing   KeywordCase
}

var presets map[string]*Preset

func init() {
	presets = map[string]*Preset{
		"postgres": {
			Name:            "postgres",
			QuoteStart:      `"`,
			QuoteEnd:        `"`,
			QuoteEscape:     `""`,
			Placeholder:     PlaceholderIndexed,
			ParameterSymbol: "$",
			Normalization:   NormalizeLowercase,
			KeywordCasing:   KeywordUpper,
		},
		"sqlite": {
			Name:            "sqlite",
			QuoteStart:      `"`,
			QuoteEnd:        `"`,
			QuoteEscape:     `""`,
			Placeholder:     PlaceholderAnonymous,
			ParameterSymbol: "?",
			Normalization:   NormalizeLowercase,
			KeywordCasing:   KeywordUpper,
		},
		"mysql": {
			Name:            "mysql",
			QuoteStart:      "`",
			QuoteEnd:        "`",
			QuoteEscape:     "``",
			Placeholder:     PlaceholderAnonymous,
			ParameterSymbol: "?",
			Normalization:   NormalizeLowercase,
			KeywordCasing:   KeywordUpper,
		},
		"sqlserver": {
			Name:            "sqlserver",
			QuoteStart:      "[",
			QuoteEnd:        "]",
			QuoteEscape:     "]]",
			Placeholder:     PlaceholderNamed,
			ParameterSymbol: "@",
			Normalization:   NormalizePreserveInsensitive,
			KeywordCasing:   KeywordUpper,
		},
	}
}

// Lookup returns the named preset, or nil if name is not one of the four
// registered presets.
func Lookup(name string) *Preset {
	return presets[name]
}

// Names returns the registered preset names in a stable order, for use in
// PresetError messages and CLI help text.
func Names() []string {
	return []string{"postgres", "mysql", "sqlite", "sqlserver"}
}
