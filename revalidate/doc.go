// Package revalidate implements component J, the Revalidation Engine:
// the pipeline that turns one document change into an updated graph,
// selectively invalidated caches, and a debounced, freshness-guarded
// round of diagnostic publication.
//
// Engine owns the state spec.md §4.J names — per-open-file version
// counters, per-file last-published-version, and per-file scheduled job
// handles — and drives components B (metadata), A (path resolution), C
// (the dependency graph), and G (the caches) on every change, per
// spec.md §4.J's six-step algorithm. Grounded on the debounce-timer
// pattern in the teacher's lsp/workspace.go (ScheduleAnalysis,
// AnalyzeAndPublish, cancelPendingAnalysis), generalized from a single
// document-scoped debounce to a graph-aware fan-out across every open
// file downstream of the change.
package revalidate
