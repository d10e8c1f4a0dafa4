package lsp

import (
	"context"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jbearak/rlsp/location"
)

// textDocumentDefinition handles textDocument/definition: it resolves
// the identifier under the cursor against scope.Resolver.ScopeAt and
// points at wherever that symbol's Define/Declare event lives. Returns
// nil, nil (no definition found) for package exports, since no
// SPEC_FULL.md component resolves a package's exported symbols to a
// file location.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := params.TextDocument.URI
	if !isRURI(uri) {
		return nil, nil
	}
	path, err := URIToPath(uri)
	if err != nil {
		return nil, nil
	}
	file, err := location.FileIDFromPath(path)
	if err != nil {
		return nil, nil
	}

	ws := s.workspaceFor(path)
	if ws == nil {
		return nil, nil
	}

	text, ok := ws.content.Get(file)
	if !ok {
		return nil, nil
	}

	byteOffset, ok := ws.content.ByteOffsetAt(file, int(params.Position.Line), int(params.Position.Character))
	if !ok {
		return nil, nil
	}
	word := identifierAt(text, byteOffset)
	if word == "" {
		return nil, nil
	}

	pos := location.NewPosition(int(params.Position.Line), int(params.Position.Character), byteOffset)
	result, err := ws.resolver.ScopeAt(context.Background(), file, pos)
	if err != nil {
		return nil, nil
	}

	sym, ok := result.Symbols[word]
	if !ok || sym.IsPackageExport() {
		return nil, nil
	}

	defFile := sym.DefiningFile
	defLine := sym.Position.Line
	defChar := sym.Position.Column
	endChar := defChar + len(sym.Name)

	return protocol.Location{
		URI: fileIDToURI(defFile),
		Range: protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(defLine), Character: protocol.UInteger(defChar)},
			End:   protocol.Position{Line: protocol.UInteger(defLine), Character: protocol.UInteger(endChar)},
		},
	}, nil
}
