// Package rlsp implements a language server for R source code, focused on
// cross-file scope resolution: following source()/sys.source() calls,
// @lsp-sourced-by directives, and library() loads across a workspace to
// determine which symbols are visible at any position.
//
// # Architecture Overview
//
// The module is organized leaf-first, mirroring the component list in
// SPEC_FULL.md §2:
//
//	Foundation tier (no internal dependencies):
//	  - location: canonical file identity, positions, spans
//	  - diag: structured diagnostics with stable error codes
//
//	Per-file facts:
//	  - metadata: CrossFileMetadata value types plus the AST/regex extractor
//	  - resolve: raw path string -> canonical location.FileID (component A)
//	  - artifacts: per-file scope timeline and exported interface (component D)
//
//	Cross-file engine:
//	  - depgraph: the directed file dependency graph (component C)
//	  - scope: position-aware, chain-bounded scope resolution (component E)
//	  - parentselect: authoritative-parent selection (component F)
//
//	Infrastructure:
//	  - cache: fingerprinted metadata/artifacts/parent-selection caches (component G)
//	  - content: open-buffer/disk file text provider (component H)
//	  - workspaceindex: background enumeration of closed files (component I)
//	  - revalidate: debounced change -> diagnostic fan-out engine (component J)
//
//	Surface:
//	  - config: initializationOptions -> typed configuration
//	  - lsp: the glsp-based language server
//	  - cmd/rlsp-lsp: stdio entry point
//
// # Entry point
//
//	import "github.com/jbearak/rlsp/lsp"
//
//	srv := lsp.NewServer(nil, lsp.Config{})
//	if err := srv.RunStdio(); err != nil {
//	    // transport error
//	}
package rlsp
