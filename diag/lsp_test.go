package diag

import (
	"testing"

	"github.com/jbearak/rlsp/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLSPDiagnosticPositionsPassThrough(t *testing.T) {
	id := location.MustFileIDFromPath("/ws/main.R")
	span := location.Range(id, 2, 4, 2, 9)
	issue := NewIssue(Error, E_UNDEFINED_VARIABLE, `"x" is not defined`).
		WithSpan(span).
		Build()

	r := NewRenderer()
	d := r.LSPDiagnostic(issue)
	require.NotNil(t, d)
	assert.Equal(t, 2, d.Range.Start.Line)
	assert.Equal(t, 4, d.Range.Start.Character)
	assert.Equal(t, 2, d.Range.End.Line)
	assert.Equal(t, 9, d.Range.End.Character)
	assert.Equal(t, "E_UNDEFINED_VARIABLE", d.Code)
	assert.Equal(t, LSPSeverityError, d.Severity)
}

func TestLSPDiagnosticNilWithoutSpan(t *testing.T) {
	r := NewRenderer()
	issue := Issue{}
	assert.Nil(t, r.LSPDiagnostic(issue))
}

func TestLSPDiagnosticsSkipsInvalidAndReturnsEmptySlice(t *testing.T) {
	r := NewRenderer()
	result := OK()
	diags := r.LSPDiagnostics(result)
	assert.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestFileIDToURIForFileBacked(t *testing.T) {
	id := location.MustFileIDFromPath("/ws/main.R")
	uri := fileIDToURI(id)
	assert.Equal(t, "file:///ws/main.R", uri)
}

func TestFileIDToURIForSynthetic(t *testing.T) {
	id := location.NewSyntheticFileID("test://inline/main.R")
	assert.Equal(t, "test://inline/main.R", fileIDToURI(id))
}

func TestSeverityToLSP(t *testing.T) {
	assert.Equal(t, LSPSeverityError, SeverityToLSP(Fatal))
	assert.Equal(t, LSPSeverityError, SeverityToLSP(Error))
	assert.Equal(t, LSPSeverityWarning, SeverityToLSP(Warning))
	assert.Equal(t, LSPSeverityInformation, SeverityToLSP(Info))
	assert.Equal(t, LSPSeverityHint, SeverityToLSP(Hint))
}
