package parentselect

import (
	"sort"

	"github.com/jbearak/rlsp/depgraph"
	"github.com/jbearak/rlsp/location"
)

// Candidate is one inbound edge competing to be file F's authoritative
// parent, annotated with the two facts Select's priority chain needs
// that depgraph.Edge itself does not carry: whether the edge's parent is
// currently open in the editor, and its graph distance (caller-computed,
// e.g. via depgraph.Graph.TransitiveUpstream on the parent — lower wins).
type Candidate struct {
	Edge     depgraph.Edge
	Open     bool
	Distance int
}

// Result is Select's verdict for one file.
type Result struct {
	// Found is false only when Select was given no candidates.
	Found bool

	// Chosen is the winning parent file. Always set when Found.
	Chosen location.FileID

	// ChosenEdge is the specific edge Select picked to represent Chosen
	// (there may be several edges from the same parent at different call
	// sites; ties within the winning parent are broken by call-site line).
	ChosenEdge depgraph.Edge

	// Ambiguous reports whether more than one *distinct* parent file
	// survived to the winning priority tier before the final
	// lexicographic tiebreak — the signal for E_AMBIGUOUS_PARENT.
	Ambiguous bool

	// Tied lists every candidate that survived to the winning tier,
	// sorted by parent path then call-site line, for diagnostics that
	// want to name every contender.
	Tied []Candidate
}

// Select applies spec.md §4.F's four-step priority chain to candidates
// and returns the winner.
func Select(candidates []Candidate) Result {
	if len(candidates) == 0 {
		return Result{}
	}

	tier := narrowByOrigin(candidates)
	tier = narrowByOpen(tier)
	tier = narrowByDistance(tier)
	sortCandidates(tier)

	return Result{
		Found:      true,
		Chosen:     tier[0].Edge.Parent(),
		ChosenEdge: tier[0].Edge,
		Ambiguous:  distinctParentCount(tier) > 1,
		Tied:       tier,
	}
}

// narrowByOrigin keeps only directive-origin candidates if any exist
// (priority 1: directive edges over AST edges), otherwise keeps all.
func narrowByOrigin(cands []Candidate) []Candidate {
	var directives []Candidate
	for _, c := range cands {
		if c.Edge.Origin() == depgraph.OriginDirective {
			directives = append(directives, c)
		}
	}
	if len(directives) > 0 {
		return directives
	}
	return cands
}

// narrowByOpen keeps only candidates whose parent is an open document if
// any exist (priority 2), otherwise keeps all.
func narrowByOpen(cands []Candidate) []Candidate {
	var open []Candidate
	for _, c := range cands {
		if c.Open {
			open = append(open, c)
		}
	}
	if len(open) > 0 {
		return open
	}
	return cands
}

// narrowByDistance keeps only the candidates at the minimum Distance
// (priority 3: shortest graph distance).
func narrowByDistance(cands []Candidate) []Candidate {
	min := cands[0].Distance
	for _, c := range cands[1:] {
		if c.Distance < min {
			min = c.Distance
		}
	}
	var out []Candidate
	for _, c := range cands {
		if c.Distance == min {
			out = append(out, c)
		}
	}
	return out
}

// sortCandidates orders by parent path, then call-site line, as the
// final deterministic tiebreak (priority 4).
func sortCandidates(cands []Candidate) {
	sort.Slice(cands, func(i, j int) bool {
		pi, pj := cands[i].Edge.Parent().String(), cands[j].Edge.Parent().String()
		if pi != pj {
			return pi < pj
		}
		return cands[i].Edge.CallSite().Line < cands[j].Edge.CallSite().Line
	})
}

func distinctParentCount(cands []Candidate) int {
	seen := make(map[location.FileID]struct{}, len(cands))
	for _, c := range cands {
		seen[c.Edge.Parent()] = struct{}{}
	}
	return len(seen)
}
