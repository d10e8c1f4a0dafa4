package artifacts

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/metadata"
)

// ScopeArtifacts is the complete per-file product of the Artifacts
// Builder: an ordered scope timeline, the file's exported interface, and
// a fingerprint of that interface. It is immutable once built; accessors
// return defensive copies.
type ScopeArtifacts struct {
	file              location.FileID
	timeline          []ScopeEvent
	exportedInterface map[string]Symbol
	exportedPackages  []string
	interfaceHash      uint64
}

// File returns the file this artifact set describes.
func (a ScopeArtifacts) File() location.FileID { return a.file }

// Timeline returns the ordered scope events, a defensive copy.
func (a ScopeArtifacts) Timeline() []ScopeEvent {
	if len(a.timeline) == 0 {
		return nil
	}
	out := make([]ScopeEvent, len(a.timeline))
	copy(out, a.timeline)
	return out
}

// ExportedInterface returns the name -> Symbol map of this file's own
// top-level definitions and declarations after folding the whole
// timeline (not including anything contributed by a source()d file — the
// Scope Resolver, component E, merges those in separately per call).
func (a ScopeArtifacts) ExportedInterface() map[string]Symbol {
	if len(a.exportedInterface) == 0 {
		return nil
	}
	out := make(map[string]Symbol, len(a.exportedInterface))
	for k, v := range a.exportedInterface {
		out[k] = v
	}
	return out
}

// ExportedPackages returns the sorted, deduplicated set of package names
// loaded by a global-scope library()/require()/loadNamespace() call in
// this file.
func (a ScopeArtifacts) ExportedPackages() []string {
	if len(a.exportedPackages) == 0 {
		return nil
	}
	out := make([]string, len(a.exportedPackages))
	copy(out, a.exportedPackages)
	return out
}

// InterfaceHash returns the stable fingerprint of the exported interface,
// declared symbols, and exported packages. It is independent of timeline
// order and source-call details, so unchanged hashes let the Cache Layer
// (component G) skip invalidating downstream consumers (spec.md §4.D,
// §4.G).
func (a ScopeArtifacts) InterfaceHash() uint64 { return a.interfaceHash }

// computeExportedInterface folds Define/Remove/Declare events into a
// running map in textual order (a later event overrides an earlier one
// by name, per spec.md §4.E's merge rule applied at the single-file
// level) and collects global-scope library loads separately.
func computeExportedInterface(timeline []ScopeEvent) (map[string]Symbol, []string) {
	exported := make(map[string]Symbol)
	packageSet := make(map[string]struct{})

	for _, ev := range timeline {
		switch ev.Kind {
		case EventDefine, EventDeclare:
			exported[ev.Symbol.Name] = ev.Symbol
		case EventRemove:
			delete(exported, ev.RemovedName)
		case EventLibraryLoad:
			if ev.Scope == metadata.GlobalScope {
				packageSet[ev.Package] = struct{}{}
			}
		}
	}

	if len(exported) == 0 {
		exported = nil
	}

	packages := make([]string, 0, len(packageSet))
	for p := range packageSet {
		packages = append(packages, p)
	}
	sort.Strings(packages)

	return exported, packages
}

// computeInterfaceHash folds sorted (name, kind, signature) triples from
// the exported map, sorted declared-symbol names, and sorted package
// names into a stable 64-bit fingerprint. It deliberately excludes
// timeline order and source-call details, matching spec.md §4.D. FNV-1a
// is the module's one standard-library hash choice (DESIGN.md): no
// third-party hashing library appears anywhere in the reference pack to
// ground an alternative on, and FNV-1a's only requirement here —
// deterministic, stable output for a canonical byte sequence — is
// exactly what the stdlib implementation guarantees.
func computeInterfaceHash(exported map[string]Symbol, declared []metadata.DeclaredSymbol, packages []string) uint64 {
	names := make([]string, 0, len(exported))
	for name := range exported {
		names = append(names, name)
	}
	sort.Strings(names)

	h := fnv.New64a()
	for _, name := range names {
		sym := exported[name]
		fmt.Fprintf(h, "D|%s|%s|%s\n", sym.Name, sym.Kind.String(), sym.Signature)
	}

	declaredNames := make([]string, 0, len(declared))
	for _, d := range declared {
		declaredNames = append(declaredNames, d.Name)
	}
	sort.Strings(declaredNames)
	for _, name := range declaredNames {
		fmt.Fprintf(h, "L|%s\n", name)
	}

	for _, pkg := range packages {
		fmt.Fprintf(h, "P|%s\n", pkg)
	}

	return h.Sum64()
}
