package depgraph

import (
	"sync"
)

// Graph is the workspace's live file dependency graph.
//
// Unlike a build-once-then-snapshot graph, Graph is continuously updated:
// callers re-apply a file's metadata every time it changes (see the
// revalidation engine), and reads always observe the latest applied
// state. Graph is safe for concurrent use from multiple goroutines.
type Graph struct {
	config config
	mu     sync.RWMutex

	// pairs indexes edges by ordered (parent, child) file pair. Most pairs
	// hold exactly one edge; a pair holds more than one only when several
	// source() calls or directives link the same two files at distinct
	// call sites, or while an ambiguous set of directives is retained.
	pairs map[pairKey][]*Edge
}

// New creates an empty Graph.
func New(opts ...Option) *Graph {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Graph{
		config: cfg,
		pairs:  make(map[pairKey][]*Edge),
	}
}
