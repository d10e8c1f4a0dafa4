package parentselect

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/jbearak/rlsp/depgraph"
	"github.com/jbearak/rlsp/location"
)

// Fingerprint computes the cache key spec.md §4.G defines for a file's
// ParentSelection entry: the inbound-edges tuple-set, the set of open
// document paths, and the workspace index version. Equal inputs
// (regardless of slice order) always hash equal; the Cache Layer
// (component G) uses this to decide whether a cached [Result] is still
// valid. Uses the module's established stdlib `hash/fnv` choice (see the
// artifacts ledger entry in DESIGN.md) rather than introducing a second
// hashing dependency for the same kind of sorted-value-set fingerprint.
func Fingerprint(edges []depgraph.Edge, openDocuments []location.FileID, workspaceIndexVersion uint64) uint64 {
	h := fnv.New64a()

	edgeKeys := make([]string, 0, len(edges))
	for _, e := range edges {
		edgeKeys = append(edgeKeys, fmt.Sprintf("%s|%s|%d|%d|%s",
			e.Parent().String(), e.Child().String(), e.CallSite().Line, e.CallSite().Column, e.Origin().String()))
	}
	sort.Strings(edgeKeys)
	for _, k := range edgeKeys {
		fmt.Fprintf(h, "E|%s\n", k)
	}

	docKeys := make([]string, 0, len(openDocuments))
	for _, d := range openDocuments {
		docKeys = append(docKeys, d.String())
	}
	sort.Strings(docKeys)
	for _, k := range docKeys {
		fmt.Fprintf(h, "O|%s\n", k)
	}

	fmt.Fprintf(h, "V|%d\n", workspaceIndexVersion)

	return h.Sum64()
}
