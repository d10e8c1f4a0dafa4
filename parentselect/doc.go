// Package parentselect implements authoritative-parent selection
// (component F): given a file with more than one inbound source()/
// directive edge, choose the single edge that counts as "the" parent for
// backward-scope diagnostics (E_OUT_OF_SCOPE, E_UNDEFINED_VARIABLE), per
// spec.md §4.F's four-step priority chain:
//
//  1. Directive edges over AST edges.
//  2. Edges from open documents over edges from closed documents.
//  3. Shortest graph distance.
//  4. Lexicographic parent path as the final, always-discriminating
//     tiebreak.
//
// Select never fails to produce a choice — the fourth tier is total, so
// there is always exactly one winner — but it also reports whether more
// than one distinct parent file survived to the winning tier before that
// final tiebreak, which is what a caller turns into an
// E_AMBIGUOUS_PARENT diagnostic: the selection is still deterministic,
// but more than one file explicitly claims to be this one's parent.
//
// Select takes its candidates (and each candidate's open/closed status
// and graph distance) from the caller rather than querying a
// [github.com/jbearak/rlsp/depgraph.Graph] or workspace index directly —
// the same dependency discipline depgraph, artifacts, and scope already
// follow.
package parentselect
