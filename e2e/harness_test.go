// Package e2e drives the server's public surfaces end to end: the LSP
// protocol handler for position-based providers, and the lower-level
// lsp.Workspace / scope.Resolver APIs directly for behavior that never
// reaches the protocol layer. It never reaches into unexported fields of
// the packages it tests, the same boundary the teacher's own e2e suite
// holds against its domain engine's public API.
package e2e

import (
	"path/filepath"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stretchr/testify/require"

	"github.com/jbearak/rlsp/lsp"
)

// newInitializedServer builds a single-root server and drives it through
// the real initialize/initialized handshake via its exported Handler, the
// way a client would. Defaults (crossFile.indexWorkspace among them) come
// from config.Default(); any fixture files that should be visible without
// an explicit didOpen must already exist on disk before this call, since
// indexWorkspace's initial scan runs synchronously inside Initialize.
func newInitializedServer(t *testing.T, root string) *protocol.Handler {
	t.Helper()

	s := lsp.NewServer(nil, lsp.Config{})
	handler := s.Handler()

	rootURI := lsp.PathToURI(root)
	_, err := handler.Initialize(nil, &protocol.InitializeParams{
		RootURI: &rootURI,
		WorkspaceFolders: []protocol.WorkspaceFolder{
			{URI: rootURI, Name: filepath.Base(root)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, handler.Initialized(nil, &protocol.InitializedParams{}))

	return handler
}

func openDoc(t *testing.T, handler *protocol.Handler, path, text string) {
	t.Helper()
	err := handler.TextDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        lsp.PathToURI(path),
			LanguageID: "r",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
}

func hoverAt(t *testing.T, handler *protocol.Handler, path string, line, char int) *protocol.Hover {
	t.Helper()
	hover, err := handler.TextDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: lsp.PathToURI(path)},
			Position: protocol.Position{
				Line:      protocol.UInteger(line),
				Character: protocol.UInteger(char),
			},
		},
	})
	require.NoError(t, err)
	return hover
}

func definitionAt(t *testing.T, handler *protocol.Handler, path string, line, char int) (protocol.Location, bool) {
	t.Helper()
	result, err := handler.TextDocumentDefinition(nil, &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: lsp.PathToURI(path)},
			Position: protocol.Position{
				Line:      protocol.UInteger(line),
				Character: protocol.UInteger(char),
			},
		},
	})
	require.NoError(t, err)
	if result == nil {
		return protocol.Location{}, false
	}
	loc, ok := result.(protocol.Location)
	return loc, ok
}
