package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierAtExtractsWordAtCursor(t *testing.T) {
	text := "my.var <- 1\n"
	assert.Equal(t, "my.var", identifierAt(text, 3))
	assert.Equal(t, "my.var", identifierAt(text, 0))
	assert.Equal(t, "my.var", identifierAt(text, 6))
}

func TestIdentifierAtReturnsEmptyOutsideIdentifier(t *testing.T) {
	text := "x <- 1\n"
	assert.Equal(t, "", identifierAt(text, 1))
	assert.Equal(t, "", identifierAt(text, -1))
	assert.Equal(t, "", identifierAt(text, len(text)+5))
}

func TestIdentifierAtHandlesUnderscoreAndDigits(t *testing.T) {
	text := "foo_bar2 <- 1\n"
	assert.Equal(t, "foo_bar2", identifierAt(text, 4))
}
