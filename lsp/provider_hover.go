package lsp

import (
	"context"
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jbearak/rlsp/artifacts"
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/scope"
)

// textDocumentHover handles textDocument/hover, rendering the symbol
// kind and, for functions, the signature recorded at definition time.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
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
	if !ok {
		return nil, nil
	}

	value := hoverText(sym)
	kind := protocol.MarkupKindMarkdown
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: kind, Value: value},
	}, nil
}

func hoverText(sym scope.Symbol) string {
	if sym.IsPackageExport() {
		return fmt.Sprintf("```r\n%s\n```\nexported by package `%s`", sym.Name, sym.Package)
	}
	if sym.Kind == artifacts.KindFunction && sym.Signature != "" {
		return fmt.Sprintf("```r\n%s\n```", sym.Signature)
	}
	kind := "variable"
	if sym.Kind == artifacts.KindFunction {
		kind = "function"
	}
	if sym.Declared {
		return fmt.Sprintf("```r\n%s\n```\ndeclared %s", sym.Name, kind)
	}
	return fmt.Sprintf("```r\n%s\n```\n%s", sym.Name, kind)
}
