package lsp

import (
	"sort"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jbearak/rlsp/artifacts"
	"github.com/jbearak/rlsp/location"
)

// textDocumentDocumentSymbol handles textDocument/documentSymbol: it
// reports file's own exported interface (the names surviving to end of
// file, per component D), not its full internal timeline.
func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
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

	entry, ok := ws.Index().Lookup(file)
	if !ok {
		return nil, nil
	}

	iface := entry.Artifacts.ExportedInterface()
	names := make([]string, 0, len(iface))
	for name := range iface {
		names = append(names, name)
	}
	sort.Strings(names)

	symbols := make([]protocol.DocumentSymbol, 0, len(names))
	for _, name := range names {
		sym := iface[name]
		rng := symbolRange(sym)
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           symbolKindToLSP(sym.Kind),
			Range:          rng,
			SelectionRange: rng,
		})
	}
	return symbols, nil
}

// workspaceSymbol handles workspace/symbol: it scans every indexed
// file's exported interface for names matching params.Query (a
// case-insensitive substring match, same as the teacher's fuzzy-free
// fallback for schema symbol search).
func (s *Server) workspaceSymbol(_ *glsp.Context, params *protocol.WorkspaceSymbolParams) (any, error) {
	query := strings.ToLower(params.Query)

	s.mu.RLock()
	workspaces := make([]*Workspace, 0, len(s.workspaces))
	for _, ws := range s.workspaces {
		workspaces = append(workspaces, ws)
	}
	s.mu.RUnlock()

	var results []protocol.SymbolInformation
	for _, ws := range workspaces {
		for _, entry := range ws.Index().Entries() {
			for name, sym := range entry.Artifacts.ExportedInterface() {
				if query != "" && !strings.Contains(strings.ToLower(name), query) {
					continue
				}
				rng := symbolRange(sym)
				results = append(results, protocol.SymbolInformation{
					Name: name,
					Kind: symbolKindToLSP(sym.Kind),
					Location: protocol.Location{
						URI:   fileIDToURI(entry.File),
						Range: rng,
					},
				})
			}
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

func symbolRange(sym artifacts.Symbol) protocol.Range {
	line := sym.Position.Line
	if line < 0 {
		line = 0
	}
	col := sym.Position.Column
	if col < 0 {
		col = 0
	}
	end := col + len(sym.Name)
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)},
		End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(end)},
	}
}

func symbolKindToLSP(kind artifacts.SymbolKind) protocol.SymbolKind {
	if kind == artifacts.KindFunction {
		return protocol.SymbolKindFunction
	}
	return protocol.SymbolKindVariable
}
