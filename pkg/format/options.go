package format

import (
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
	"github.com/relsql/relsql/pkg/preset"
)

// KeywordCase controls how the line printer transforms keyword token text.
type KeywordCase int

// Keyword case modes.
const (
	KeywordCaseNone KeywordCase = iota
	KeywordCaseUpper
	KeywordCaseLower
)

// BreakMode controls where a comma or AND-operator token forces a line
// break in pretty-print mode.
type BreakMode int

// Break modes.
const (
	BreakNone BreakMode = iota
	BreakBefore
	BreakAfter
)

// ParameterStyle names how the formatter renders bound parameters,
// independent of any one preset's default.
type ParameterStyle int

// Parameter styles.
const (
	ParameterStyleIndexed ParameterStyle = iota
	ParameterStyleAnonymous
	ParameterStyleNamed
)

// Options is the full, explicit record a Formatter is built from. Every
// field the external interface recognizes is enumerated here; DecodeOptions
// rejects any other key, since its decoder is built with ErrorUnused.
type Options struct {
	Preset string `mapstructure:"preset"`

	IdentifierEscapeStart *string `mapstructure:"identifierEscapeStart"`
	IdentifierEscapeEnd   *string `mapstructure:"identifierEscapeEnd"`

	ParameterSymbol *string         `mapstructure:"parameterSymbol"`
	ParameterStyle  *ParameterStyle `mapstructure:"parameterStyle"`

	IndentChar string `mapstructure:"indentChar"`
	IndentSize int    `mapstructure:"indentSize"`
	Newline    string `mapstructure:"newline"`

	KeywordCase KeywordCase `mapstructure:"keywordCase"`
	CommaBreak  BreakMode   `mapstructure:"commaBreak"`
	AndBreak    BreakMode   `mapstructure:"andBreak"`

	ExportComment          bool `mapstructure:"exportComment"`
	StrictCommentPlacement bool `mapstructure:"strictCommentPlacement"`

	CTEOneline           bool `mapstructure:"cteOneline"`
	CTEOnelineDependency bool `mapstructure:"cteOnelineDependency"`

	Logger *slog.Logger `mapstructure:"-"`
}

// withDefaults returns a copy of opts with the zero-value fields the spec
// documents defaults for filled in. IndentChar/IndentSize/Newline all
// default so that the zero Options value renders everything on one line,
// matching "default newline is a single space".
func (o Options) withDefaults() Options {
	if o.IndentChar == "" {
		o.IndentChar = " "
	}
	if o.IndentSize == 0 {
		o.IndentSize = 2
	}
	if o.Newline == "" {
		o.Newline = " "
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// pretty reports whether the resolved newline string opts into multi-line
// output; a bare single space keeps the whole statement on one line.
func (o Options) pretty() bool {
	return o.Newline != " "
}

// presetOverrides projects the parts of Options that shadow a named
// preset's defaults into preset.Options, so a single call to preset.Resolve
// produces the merged, ready-to-use configuration.
func (o Options) presetOverrides() preset.Options {
	overrides := preset.Options{Preset: o.Preset}
	if o.IdentifierEscapeStart != nil {
		overrides.IdentifierStart = o.IdentifierEscapeStart
	}
	if o.IdentifierEscapeEnd != nil {
		overrides.IdentifierEnd = o.IdentifierEscapeEnd
	}
	if o.ParameterSymbol != nil {
		overrides.ParameterSymbol = o.ParameterSymbol
	}
	if o.ParameterStyle != nil {
		style := placeholderStyleFor(*o.ParameterStyle)
		overrides.Placeholder = &style
	}
	return overrides
}

func placeholderStyleFor(s ParameterStyle) preset.PlaceholderStyle {
	switch s {
	case ParameterStyleAnonymous:
		return preset.PlaceholderAnonymous
	case ParameterStyleNamed:
		return preset.PlaceholderNamed
	default:
		return preset.PlaceholderIndexed
	}
}

// DecodeOptions hydrates an Options record from a caller-supplied
// map[string]any, the shape produced by unmarshaling a YAML or JSON config
// document into a generic map. It never reads a file or an environment
// variable itself; the caller is responsible for producing the map.
func DecodeOptions(raw map[string]any) (Options, error) {
	var opts Options
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			decodeParameterStyleHook,
			decodeKeywordCaseHook,
			decodeBreakModeHook,
		),
	})
	if err != nil {
		return Options{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Options{}, err
	}
	return opts, nil
}
