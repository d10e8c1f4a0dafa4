package metadata

import (
	"testing"

	"github.com/jbearak/rlsp/location"
	"github.com/stretchr/testify/assert"
)

func testFile() location.FileID {
	return location.NewSyntheticFileID("test://main.R")
}

func TestEmptyHasNoContent(t *testing.T) {
	md := Empty(testFile())
	assert.Equal(t, testFile(), md.File())
	assert.Nil(t, md.ForwardSources())
	assert.Nil(t, md.BackwardDirectives())
	assert.Nil(t, md.IgnoreMarkers())
}

func TestNewDefensiveCopies(t *testing.T) {
	sources := []ForwardSource{{RawPath: "u.R", Local: false}}
	md := New(testFile(), sources, nil, nil, nil, nil, nil, nil)

	sources[0].RawPath = "mutated.R"
	assert.Equal(t, "u.R", md.ForwardSources()[0].RawPath)
}

func TestForwardSourcesReturnsDefensiveCopy(t *testing.T) {
	md := New(testFile(), []ForwardSource{{RawPath: "u.R"}}, nil, nil, nil, nil, nil, nil)

	got := md.ForwardSources()
	got[0].RawPath = "mutated.R"
	assert.Equal(t, "u.R", md.ForwardSources()[0].RawPath)
}

func TestBackwardDirectiveHasCallSiteHint(t *testing.T) {
	withHint := BackwardDirective{RawParentPath: "../main.R", CallSiteLine: 10}
	withoutHint := BackwardDirective{RawParentPath: "../main.R", CallSiteLine: -1}

	assert.True(t, withHint.HasCallSiteHint())
	assert.False(t, withoutHint.HasCallSiteHint())
}

func TestIsIgnoredLineAndNextLine(t *testing.T) {
	md := New(testFile(), nil, nil, nil, nil, nil, nil, map[int]IgnoreKind{
		5: IgnoreLine,
		9: IgnoreNextLine,
	})

	assert.True(t, md.IsIgnored(5))
	assert.False(t, md.IsIgnored(6))
	assert.True(t, md.IsIgnored(10))
	assert.False(t, md.IsIgnored(9))
}

func TestLibraryScopeString(t *testing.T) {
	assert.Equal(t, "global", GlobalScope.String())
	assert.Equal(t, "function-local", FunctionLocalScope.String())
}
