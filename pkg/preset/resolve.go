package preset

// defaultPresetName is used when a caller supplies no preset name at all.
const defaultPresetName = "postgres"

// Options carries the per-call overrides a caller may layer on top of a
// named preset. A nil field means "no override, defer to the preset".
type Options struct {
	Preset          string
	IdentifierStart *string
	IdentifierEnd   *string
	Placeholder     *PlaceholderStyle
	ParameterSymbol *string
	KeywordCasing   *KeywordCase
}

// Resolved is the fully merged, ready-to-use configuration a Formatter
// consults. It is a plain copy, never aliased back to a package-level
// Preset, so a caller mutating a Resolved value can never corrupt the
// shared preset table.
type Resolved struct {
	PresetName      string
	QuoteStart      string
	QuoteEnd        string
	QuoteEscape     string
	Placeholder     PlaceholderStyle
	ParameterSymbol string
	Normalization   Normalization
	KeywordCasing   KeywordCase
}

// Resolve merges explicit per-call overrides over a named preset's
// defaults, falling back to the postgres preset when name is empty. Merge
// order is: explicit override > named preset > built-in default. It
// returns a *PresetError when name is non-empty and not one of the four
// registered presets.
func Resolve(name string, overrides Options) (Resolved, error) {
	if name == "" {
		name = defaultPresetName
	}
	p := Lookup(name)
	if p == nil {
		return Resolved{}, &PresetError{Name: name}
	}

	r := Resolved{
		PresetName:      p.Name,
		QuoteStart:      p.QuoteStart,
		QuoteEnd:        p.QuoteEnd,
		QuoteEscape:     p.QuoteEscape,
		Placeholder:     p.Placeholder,
		ParameterSymbol: p.ParameterSymbol,
		Normalization:   p.Normalization,
		KeywordCasing:   p.KeywordCasing,
	}

	if overrides.IdentifierStart != nil {
		r.QuoteStart = *overrides.IdentifierStart
	}
	if overrides.IdentifierEnd != nil {
		r.QuoteEnd = *overrides.IdentifierEnd
		r.QuoteEscape = r.QuoteEnd + r.QuoteEnd
	}
	if overrides.Placeholder != nil {
		r.Placeholder = *overrides.Placeholder
	}
	if overrides.ParameterSymbol != nil {
		r.ParameterSymbol = *overrides.ParameterSymbol
	}
	if overrides.KeywordCasing != nil {
		r.KeywordCasing = *overrides.KeywordCasing
	}
	return r, nil
}
