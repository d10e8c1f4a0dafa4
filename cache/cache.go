package cache

import (
	"github.com/jbearak/rlsp/artifacts"
	"github.com/jbearak/rlsp/location"
	"github.com/jbearak/rlsp/metadata"
	"github.com/jbearak/rlsp/parentselect"
)

// Cache bundles the three maps spec.md §4.G names, each keyed by file.
type Cache struct {
	Metadata        *Map[location.FileID, metadata.CrossFileMetadata]
	Artifacts       *Map[location.FileID, artifacts.ScopeArtifacts]
	ParentSelection *Map[location.FileID, parentselect.Result]
}

func fileIDKey(f location.FileID) string { return f.String() }

// New creates an empty Cache.
func New() *Cache {
	return &Cache{
		Metadata:        NewMap[location.FileID, metadata.CrossFileMetadata](fileIDKey),
		Artifacts:       NewMap[location.FileID, artifacts.ScopeArtifacts](fileIDKey),
		ParentSelection: NewMap[location.FileID, parentselect.Result](fileIDKey),
	}
}

// InvalidateChanged applies the first rule of spec.md §4.G's selective
// invalidation: a file's own metadata and artifacts are always
// invalidated when it changes, regardless of whether its interface or
// outgoing edges actually differ.
func (c *Cache) InvalidateChanged(file location.FileID) {
	c.Metadata.Invalidate(file)
	c.Artifacts.Invalidate(file)
}

// InvalidateDownstreamArtifacts applies spec.md §4.G's second rule: when
// a file's interface_hash changed, every file that transitively
// source()s it (its ancestors in the dependency graph — the caller
// computes this set, typically via depgraph.Graph.TransitiveUpstream)
// has its cached artifacts invalidated, since their merged-in scope may
// have changed.
func (c *Cache) InvalidateDownstreamArtifacts(consumers []location.FileID) {
	for _, f := range consumers {
		c.Artifacts.Invalidate(f)
	}
}

// InvalidateParentSelection applies spec.md §4.G's fourth rule: an
// inbound edge change (a directive pointing at file was added or
// removed) invalidates only file's ParentSelection entry.
func (c *Cache) InvalidateParentSelection(file location.FileID) {
	c.ParentSelection.Invalidate(file)
}
