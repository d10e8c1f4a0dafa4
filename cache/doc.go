// Package cache implements the Cache Layer (component G): three
// interior-mutable, thread-safe maps — Metadata, Artifacts, and
// ParentSelection — each guarded the way the teacher's graph.Graph
// guards its own instance/edge maps (a single sync.RWMutex, shared locks
// for reads, exclusive locks for installs), but with concurrent-miss
// deduplication upgraded to golang.org/x/sync/singleflight: a read that
// misses (or finds a stale fingerprint) computes under a singleflight
// group keyed by the cache key, so concurrent callers asking for the
// same missing value share one computation instead of racing duplicate
// ones, per spec.md §4.G.
//
// A Map does not know how to compute its own values or fingerprints —
// callers pass a compute function into Get — keeping this package, like
// depgraph/artifacts/scope/parentselect before it, free of any direct
// dependency on path resolution, the filesystem, or the dependency
// graph.
package cache
