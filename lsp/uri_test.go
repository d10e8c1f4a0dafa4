package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathToURIRoundTrip(t *testing.T) {
	paths := []string{
		"/simple/path.R",
		"/path with spaces/file.R",
		"/path/with/nested/dirs/script.R",
	}
	for _, p := range paths {
		uri := PathToURI(p)
		back, err := URIToPath(uri)
		assert.NoError(t, err)
		assert.Equal(t, p, back)
	}
}

func TestURIToPathRejectsNonFileScheme(t *testing.T) {
	_, err := URIToPath("https://example.com/a.R")
	assert.Error(t, err)
}

func TestIsRURI(t *testing.T) {
	assert.True(t, isRURI(PathToURI("/a/b.R")))
	assert.True(t, isRURI(PathToURI("/a/b.r")))
	assert.False(t, isRURI(PathToURI("/a/b.txt")))
	assert.False(t, isRURI("not a uri"))
}
