package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbearak/rlsp/diag"
)

func TestParseEmptyInputReturnsDefaults(t *testing.T) {
	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), opts)
}

func TestParsePartialOverrideKeepsRemainingDefaults(t *testing.T) {
	raw := []byte(`{
		// only override the revalidation pacing
		"crossFile": {
			"maxRevalidationsPerTrigger": 5,
			"revalidationDebounceMs": 50,
		},
	}`)
	opts, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, 5, opts.CrossFile.MaxRevalidationsPerTrigger)
	assert.Equal(t, 50, opts.CrossFile.RevalidationDebounceMs)
	// Untouched keys keep their documented defaults.
	assert.Equal(t, 10, opts.CrossFile.MaxBackwardDepth)
	assert.Equal(t, 10, opts.CrossFile.MaxForwardDepth)
	assert.Equal(t, "end", opts.CrossFile.AssumeCallSite)
	assert.True(t, opts.CrossFile.IndexWorkspace)
	assert.True(t, opts.Diagnostics.UndefinedVariables)
	assert.True(t, opts.Packages.Enabled)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	assert.Error(t, err)
}

func TestFromInitializationOptionsNilReturnsDefaults(t *testing.T) {
	opts, err := FromInitializationOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), opts)
}

func TestFromInitializationOptionsDecodesMap(t *testing.T) {
	raw := map[string]any{
		"packages": map[string]any{
			"enabled":                false,
			"additionalLibraryPaths": []any{"/opt/r-libs"},
			"missingPackageSeverity": "error",
		},
	}
	opts, err := FromInitializationOptions(raw)
	require.NoError(t, err)

	assert.False(t, opts.Packages.Enabled)
	assert.Equal(t, []string{"/opt/r-libs"}, opts.Packages.AdditionalLibraryPaths)
	assert.Equal(t, diag.Error, opts.MissingPackageSeverity())
}

func TestSeverityAccessorsFallBackOnUnrecognizedValue(t *testing.T) {
	opts := Default()
	opts.CrossFile.MissingFileSeverity = "not-a-severity"
	assert.Equal(t, diag.Warning, opts.MissingFileSeverity())
}

func TestSeverityAccessorsParseConfiguredValue(t *testing.T) {
	opts := Default()
	opts.CrossFile.CircularDependencySeverity = "fatal"
	assert.Equal(t, diag.Fatal, opts.CircularDependencySeverity())
}
