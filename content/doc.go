// Package content implements component H, the Content Provider: a single
// source of truth for "what does this file currently contain", shared by
// the metadata extractor, the artifacts builder, and the scope resolver
// so none of them touch the filesystem or the editor's open-document
// buffers directly.
//
// A Provider answers content(canonical_path) by checking open buffers
// first and falling back to a bounded, LRU-evicted disk read cache keyed
// by (path, mtime, size), per spec.md §4.H. It also implements
// location.PositionRegistry, backed by a per-file line-start table
// rebuilt whenever a file's content (buffer or disk) changes.
package content
