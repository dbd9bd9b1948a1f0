package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsToPostgres(t *testing.T) {
	r, err := Resolve("", Options{})
	require.NoError(t, err)
	assert.Equal(t, "postgres", r.PresetName)
	assert.Equal(t, `"`, r.QuoteStart)
}

func TestResolveUnknownPresetReturnsPresetError(t *testing.T) {
	_, err := Resolve("oracle", Options{})
	require.Error(t, err)
	var presetErr *PresetError
	require.ErrorAs(t, err, &presetErr)
	assert.Equal(t, "oracle", presetErr.Name)
}

func TestResolveOverrideWinsOverPreset(t *testing.T) {
	start := "<"
	end := ">"
	r, err := Resolve("postgres", Options{
		IdentifierStart: &start,
		IdentifierEnd:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "<", r.QuoteStart)
	assert.Equal(t, ">", r.QuoteEnd)
	// Everything not overridden still comes from the named preset.
	assert.Equal(t, PlaceholderIndexed, r.Placeholder)
}

func TestResolvePlaceholderOverride(t *testing.T) {
	anon := PlaceholderAnonymous
	r, err := Resolve("postgres", Options{Placeholder: &anon})
	require.NoError(t, err)
	assert.Equal(t, PlaceholderAnonymous, r.Placeholder)
}
