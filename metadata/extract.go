package metadata

import (
	"strings"

	"github.com/jbearak/rlsp/internal/rstmt"
	"github.com/jbearak/rlsp/location"
)

// reservedWords never produce a Define, Remove, or Declare event
// regardless of syntactic position (spec.md §4.D), so Extract filters
// them out of every symbol-name-bearing fact it emits.
var reservedWords = map[string]bool{
	"if": true, "else": true, "repeat": true, "while": true, "function": true,
	"for": true, "in": true, "next": true, "break": true,
	"TRUE": true, "FALSE": true, "NULL": true, "Inf": true, "NaN": true,
	"NA": true, "NA_integer_": true, "NA_real_": true, "NA_complex_": true, "NA_character_": true,
}

// IsReservedWord reports whether name is one of R's reserved words (the
// ones listed in spec.md §4.D), which never produce a Define, Remove, or
// Declare event regardless of syntactic position. Exported so the
// Artifacts Builder (component D), which finds its own Define events
// directly from assignment statements, can apply the same exclusion
// list without duplicating it.
func IsReservedWord(name string) bool {
	return reservedWords[name]
}

var sourceCallNames = map[string]bool{"source": true, "sys.source": true}
var libraryCallNames = map[string]bool{"library": true, "require": true, "loadNamespace": true}
var removeCallNames = map[string]bool{"rm": true, "remove": true}

// Extract runs the AST pass and the regex pass described in spec.md §4.B
// over file's text, producing its CrossFileMetadata. Extraction is side
// effect free and never fails outright: a file whose calls cannot be
// recognized simply contributes nothing for those calls (whatever
// directives and calls the two passes could still recognize still
// populate the result) rather than reporting a diagnostic, per §4.B.
func Extract(file location.FileID, text string) CrossFileMetadata {
	facts := scanDirectives(text)

	forwardSources := append([]ForwardSource(nil), facts.forwardSources...)
	for _, f := range rstmt.FindCalls(text, sourceCallNames) {
		if f.Depth != 0 {
			continue // top-level only, per §4.B
		}
		if fs, ok := parseSourceCall(f); ok {
			forwardSources = append(forwardSources, fs)
		}
	}

	var libraryLoads []LibraryLoad
	for _, f := range rstmt.FindCalls(text, libraryCallNames) {
		if ll, ok := parseLibraryCall(f); ok {
			libraryLoads = append(libraryLoads, ll)
		}
	}

	var removedSymbols []RemovedSymbol
	for _, f := range rstmt.FindCalls(text, removeCallNames) {
		if f.Depth != 0 {
			continue // top-level only, per §4.B
		}
		removedSymbols = append(removedSymbols, parseRemoveCall(f)...)
	}

	declaredSymbols := filterReservedDeclared(facts.declaredSymbols)

	return New(file, forwardSources, facts.backwardDirectives, facts.workingDirectories,
		declaredSymbols, removedSymbols, libraryLoads, facts.ignoreMarkers)
}

// parseSourceCall extracts a source()/sys.source() call's literal file
// argument (positional or file=) and its local=/chdir= literal flags.
// Dynamic arguments (anything not a string or, for the flags, a literal
// TRUE/FALSE) are silently skipped, per §4.B.
func parseSourceCall(f rstmt.Found) (ForwardSource, bool) {
	var rawPath string
	found := false
	positional := 0
	for _, a := range f.Call.Args {
		if a.Name == "" {
			if positional == 0 {
				if v, ok := rstmt.StringLiteral(a.Raw); ok {
					rawPath = v
					found = true
				}
			}
			positional++
			continue
		}
		if a.Name == "file" && !found {
			if v, ok := rstmt.StringLiteral(a.Raw); ok {
				rawPath = v
				found = true
			}
		}
	}
	if !found {
		return ForwardSource{}, false
	}

	var local, chdir bool
	for _, a := range f.Call.Args {
		switch a.Name {
		case "local":
			if v, ok := rstmt.BoolLiteral(a.Raw); ok {
				local = v
			}
		case "chdir":
			if v, ok := rstmt.BoolLiteral(a.Raw); ok {
				chdir = v
			}
		}
	}

	return ForwardSource{
		RawPath:     rawPath,
		CallSite:    location.NewPosition(f.Line, 0, f.Byte),
		Local:       local,
		Chdir:       chdir,
		IsSysSource: f.Call.Name == "sys.source",
	}, true
}

// parseLibraryCall recognizes a literal package name given either as a
// string literal ("dplyr") or R's unevaluated bareword form (dplyr), the
// common style for library()/require() calls.
func parseLibraryCall(f rstmt.Found) (LibraryLoad, bool) {
	var pkg string
	found := false
	positional := 0
	for _, a := range f.Call.Args {
		if a.Name == "" {
			if positional == 0 {
				if v, ok := literalOrBareword(a.Raw); ok {
					pkg = v
					found = true
				}
			}
			positional++
			continue
		}
		if a.Name == "package" && !found {
			if v, ok := literalOrBareword(a.Raw); ok {
				pkg = v
				found = true
			}
		}
	}
	if !found {
		return LibraryLoad{}, false
	}

	scope := GlobalScope
	if f.Depth != 0 {
		scope = FunctionLocalScope
	}
	return LibraryLoad{Package: pkg, Line: f.Line, Scope: scope}, true
}

func literalOrBareword(raw string) (string, bool) {
	if v, ok := rstmt.StringLiteral(raw); ok {
		return v, true
	}
	raw = strings.TrimSpace(raw)
	if isBarewordIdentifier(raw) {
		return raw, true
	}
	return "", false
}

func isBarewordIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		letter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		digit := c >= '0' && c <= '9'
		punct := c == '.' || c == '_'
		if !letter && !digit && !punct {
			return false
		}
		if i == 0 && digit {
			return false
		}
	}
	return true
}

// parseRemoveCall recognizes the rm()/remove() shapes enumerated in
// spec.md §6: positional bareword/string names, list = c("a","b") or a
// single string, and an explicit envir= that must name the global
// environment — anything else makes the call's target environment
// unknown, so the whole call is ignored.
func parseRemoveCall(f rstmt.Found) []RemovedSymbol {
	for _, a := range f.Call.Args {
		if a.Name == "envir" {
			v := strings.TrimSpace(a.Raw)
			if v != "globalenv()" && v != ".GlobalEnv" {
				return nil
			}
		}
	}

	var names []string
	for _, a := range f.Call.Args {
		switch a.Name {
		case "":
			if v, ok := literalOrBareword(a.Raw); ok {
				names = append(names, v)
			}
		case "list":
			if vs, ok := rstmt.StringListLiteral(a.Raw); ok {
				names = append(names, vs...)
			} else if v, ok := rstmt.StringLiteral(a.Raw); ok {
				names = append(names, v)
			}
		}
	}

	out := make([]RemovedSymbol, 0, len(names))
	for _, name := range names {
		if reservedWords[name] {
			continue
		}
		out = append(out, RemovedSymbol{Name: name, Line: f.Line})
	}
	return out
}

func filterReservedDeclared(decls []DeclaredSymbol) []DeclaredSymbol {
	if len(decls) == 0 {
		return nil
	}
	out := make([]DeclaredSymbol, 0, len(decls))
	for _, d := range decls {
		if reservedWords[d.Name] {
			continue
		}
		out = append(out, d)
	}
	return out
}
