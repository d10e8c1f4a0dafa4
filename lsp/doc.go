// Package lsp implements a Language Server Protocol server for R source
// files, wiring components A-J (path resolution through revalidation)
// behind glsp the same way the teacher wires its YAMMM schema engine
// behind glsp: a thin Server owning protocol lifecycle, and a Workspace
// owning document state, the dependency graph, and the revalidation
// engine.
package lsp
