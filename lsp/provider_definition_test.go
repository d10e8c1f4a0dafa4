package lsp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jbearak/rlsp/config"
	"github.com/jbearak/rlsp/location"
)

func TestTextDocumentDefinitionResolvesLocalVariable(t *testing.T) {
	s := NewServer(nil, Config{Options: config.Default()})
	root := t.TempDir()
	s.addRoot(root)

	path := filepath.Join(root, "a.R")
	file := location.MustFileIDFromPath(path)
	text := "x <- 1\ny <- x + 1\n"

	ws := s.workspaceFor(path)
	require.NotNil(t, ws)
	require.NoError(t, ws.DocumentOpened(context.Background(), file, text, 1))

	params := &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: PathToURI(path)},
			Position:     protocol.Position{Line: 1, Character: 5},
		},
	}

	result, err := s.textDocumentDefinition(nil, params)
	require.NoError(t, err)
	loc, ok := result.(protocol.Location)
	require.True(t, ok, "expected a protocol.Location, got %T", result)
	assert.Equal(t, PathToURI(path), loc.URI)
	assert.Equal(t, protocol.UInteger(0), loc.Range.Start.Line)
}

func TestTextDocumentDefinitionReturnsNilForUnknownIdentifier(t *testing.T) {
	s := NewServer(nil, Config{Options: config.Default()})
	root := t.TempDir()
	s.addRoot(root)

	path := filepath.Join(root, "a.R")
	file := location.MustFileIDFromPath(path)
	text := "x <- 1\n"

	ws := s.workspaceFor(path)
	require.NotNil(t, ws)
	require.NoError(t, ws.DocumentOpened(context.Background(), file, text, 1))

	params := &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: PathToURI(path)},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
	}

	result, err := s.textDocumentDefinition(nil, params)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestTextDocumentDefinitionIgnoresNonRFiles(t *testing.T) {
	s := NewServer(nil, Config{Options: config.Default()})
	params := &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.txt"},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
	}
	result, err := s.textDocumentDefinition(nil, params)
	require.NoError(t, err)
	assert.Nil(t, result)
}
