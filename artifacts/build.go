package artifacts

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jbearak/rlsp/internal/rstmt"
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/metadata"
)

// ErrResolvedForwardMismatch is returned by Build when resolvedForward's
// length does not match md.ForwardSources(): the two must be the same
// slice in the same order, one resolution result per recorded call.
var ErrResolvedForwardMismatch = errors.New("artifacts: resolvedForward length does not match metadata forward sources")

// ResolvedChild is the path resolver's (component A's) verdict for one
// of a file's forward source() calls, supplied by the caller in the same
// order as metadata.CrossFileMetadata.ForwardSources(): Build does not
// resolve paths itself, keeping that responsibility with component A.
type ResolvedChild struct {
	File location.FileID
	OK   bool
}

// Build walks file's text once to find its own top-level Define events
// (assignments and assign() calls), then interleaves them with events
// transcribed directly from md (sources, library loads, working
// directory directives, declared symbols, removed symbols), sorts the
// combined timeline by line, and folds it into the exported interface
// and interface hash described in spec.md §4.D.
func Build(file location.FileID, text string, md metadata.CrossFileMetadata, resolvedForward []ResolvedChild) (ScopeArtifacts, error) {
	forwardSources := md.ForwardSources()
	if len(resolvedForward) != len(forwardSources) {
		return ScopeArtifacts{}, fmt.Errorf("%w: got %d, want %d", ErrResolvedForwardMismatch, len(resolvedForward), len(forwardSources))
	}

	var timeline []ScopeEvent

	for _, d := range findDefines(text) {
		timeline = append(timeline, d)
	}

	for _, rs := range md.RemovedSymbols() {
		timeline = append(timeline, ScopeEvent{Kind: EventRemove, Line: rs.Line, RemovedName: rs.Name})
	}

	for _, ds := range md.DeclaredSymbols() {
		kind := KindVariable
		if ds.IsFunction {
			kind = KindFunction
		}
		timeline = append(timeline, ScopeEvent{
			Kind: EventDeclare, Line: ds.Line,
			Symbol: Symbol{Name: ds.Name, Kind: kind, Position: location.NewPosition(ds.Line, 0, -1)},
		})
	}

	for _, wd := range md.WorkingDirectoryDirectives() {
		timeline = append(timeline, ScopeEvent{Kind: EventWorkingDirectory, Line: wd.Line, WorkingDirectory: wd.RawPath})
	}

	for _, ll := range md.LibraryLoads() {
		timeline = append(timeline, ScopeEvent{Kind: EventLibraryLoad, Line: ll.Line, Package: ll.Package, Scope: ll.Scope})
	}

	for i, fs := range forwardSources {
		rc := resolvedForward[i]
		timeline = append(timeline, ScopeEvent{
			Kind:        EventSourceCall,
			Line:        fs.CallSite.Line,
			Child:       rc.File,
			Resolved:    rc.OK,
			CallSite:    fs.CallSite,
			Local:       fs.Local,
			Chdir:       fs.Chdir,
			IsSysSource: fs.IsSysSource,
		})
	}

	sort.SliceStable(timeline, func(i, j int) bool { return timeline[i].Line < timeline[j].Line })

	exported, packages := computeExportedInterface(timeline)
	hash := computeInterfaceHash(exported, md.DeclaredSymbols(), packages)

	return ScopeArtifacts{
		file:              file,
		timeline:          timeline,
		exportedInterface: exported,
		exportedPackages:  packages,
		interfaceHash:     hash,
	}, nil
}

// findDefines runs component D's own top-level AST pass: assignment
// statements (`<-`, `<<-`, `=`) and `assign("name", expr)` calls. It does
// not look inside function bodies (rstmt.Split merges a function
// definition's body into its own enclosing statement), matching spec.md's
// non-goal of resolving inside function bodies beyond top-level scope.
func findDefines(text string) []ScopeEvent {
	var out []ScopeEvent
	for _, st := range rstmt.Split(text) {
		if st.IsEmpty() {
			continue
		}
		trimmed := st.Trimmed()

		if call, ok := rstmt.ParseCall(trimmed); ok && call.Name == "assign" {
			if len(call.Args) >= 1 {
				if name, ok := rstmt.StringLiteral(call.Args[0].Raw); ok && !metadata.IsReservedWord(name) {
					out = append(out, ScopeEvent{
						Kind: EventDefine, Line: st.Line,
						Symbol: Symbol{Name: name, Kind: KindVariable, Position: location.NewPosition(st.Line, 0, st.Byte)},
					})
				}
			}
			continue
		}

		assign, ok := rstmt.ParseAssignment(trimmed)
		if !ok || metadata.IsReservedWord(assign.Name) {
			continue
		}
		sym := Symbol{Name: assign.Name, Position: location.NewPosition(st.Line, 0, st.Byte)}
		if params, ok := rstmt.FunctionParams(assign.RHS); ok {
			sym.Kind = KindFunction
			sym.Signature = fmt.Sprintf("%s(%s)", assign.Name, params)
		} else {
			sym.Kind = KindVariable
		}
		out = append(out, ScopeEvent{Kind: EventDefine, Line: st.Line, Symbol: sym})
	}
	return out
}
