package chemgraph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/traverse"
)

// reach returns, sorted, the nodes reachable from start when the pairs in cut
// can't be walked.
func (G *Graph) reach(start int, cut ...[2]int) []int {
	blocked := make(map[[2]int]bool, len(cut))
	for _, c := range cut {
		blocked[key(c[0], c[1])] = true
	}
	ret := make([]int, 0)
	bf := traverse.BreadthFirst{
		Traverse: func(e graph.Edge) bool {
			return !blocked[key(int(e.From().ID()), int(e.To().ID()))]
		},
		Visit: func(n graph.Node) {
			ret = append(ret, int(n.ID()))
		},
	}
	bf.Walk(G.ug, G.ug.Node(int64(start)), nil)
	sort.Ints(ret)
	return ret
}

func contains(sorted []int, v int) bool {
	i := sort.SearchInts(sorted, v)
	return i < len(sorted) && sorted[i] == v
}

// Halves cuts the pair a-b and returns the nodes on the side of a and the nodes
// on the side of b, both sorted. It returns an error wrapping ErrInvalidInput if
// a and b are not joined, and one wrapping ErrNotSeparating if b can still be
// reached from a, as happens when the pair belongs to a ring.
func (G *Graph) Halves(a, b int) ([]int, []int, error) {
	G.checkNode(a)
	G.checkNode(b)
	if !G.HasPair(a, b) {
		return nil, nil, newError(fmt.Sprintf("%d and %d are not joined", a, b), ErrInvalidInput, "Halves")
	}
	cut := [2]int{a, b}
	ha := G.reach(a, cut)
	if contains(ha, b) {
		return nil, nil, newError(fmt.Sprintf("cutting %d-%d doesn't split the graph", a, b), ErrNotSeparating, "Halves")
	}
	hb := G.reach(b, cut)
	return ha, hb, nil
}

// DoubleHalves cuts the pairs a1-b1 and a2-b2. The part containing a1 must contain
// exactly one end of the second pair, and must not contain b1. The second pair is
// oriented so that a2 is the end on the side of a1. It returns the part of a1, the
// rest of the nodes reachable from b1 and b2, and the oriented hinge (a1,b1,a2,b2).
func (G *Graph) DoubleHalves(a1, b1, a2, b2 int) ([]int, []int, [4]int, error) {
	var hinge [4]int
	for _, v := range [4]int{a1, b1, a2, b2} {
		G.checkNode(v)
	}
	if !G.HasPair(a1, b1) || !G.HasPair(a2, b2) {
		return nil, nil, hinge, newError(fmt.Sprintf("%d-%d or %d-%d is not a pair", a1, b1, a2, b2), ErrInvalidInput, "DoubleHalves")
	}
	if key(a1, b1) == key(a2, b2) {
		return nil, nil, hinge, newError(fmt.Sprintf("the two pairs are the same, %d-%d", a1, b1), ErrInvalidInput, "DoubleHalves")
	}
	cut1, cut2 := [2]int{a1, b1}, [2]int{a2, b2}
	part1 := G.reach(a1, cut1, cut2)
	if contains(part1, b1) {
		return nil, nil, hinge, newError(fmt.Sprintf("%d and %d stay connected", a1, b1), ErrNotSeparating, "DoubleHalves")
	}
	in2, inb2 := contains(part1, a2), contains(part1, b2)
	switch {
	case in2 && inb2, !in2 && !inb2:
		return nil, nil, hinge, newError(fmt.Sprintf("the part of %d must hold exactly one of %d and %d", a1, a2, b2), ErrNotSeparating, "DoubleHalves")
	case inb2:
		a2, b2 = b2, a2
	}
	rest := G.reach(b1, cut1, cut2)
	for _, v := range G.reach(b2, cut1, cut2) {
		if !contains(rest, v) {
			rest = append(rest, v)
		}
	}
	sort.Ints(rest)
	hinge = [4]int{a1, b1, a2, b2}
	return part1, rest, hinge, nil
}
