package chem

// BondSplit is a bond that splits a molecular graph in two parts.
type BondSplit struct {
	Part1, Part2 []int //atoms on the side of Hinge[0] and Hinge[1]
	Hinge        [2]int
}

// BendSplit is a bending angle Hinge[0]-Hinge[1]-Hinge[2] where the bond Hinge[1]-Hinge[0] splits
// the graph. Part has the atoms on the side of Hinge[1] (so never Hinge[0]).
type BendSplit struct {
	Part  []int
	Hinge [3]int
}

// DoubleSplit is a pair of bonds that, together, split a molecular graph in two parts.
type DoubleSplit struct {
	Part1, Part2 []int
	Hinge        [4]int
}

// BondHalves returns every bond of M that splits it, with both parts, in the order of the bonds.
func BondHalves(M *MolecularGraph) []BondSplit {
	ret := make([]BondSplit, 0)
	for _, p := range M.Pairs() {
		h1, h2, err := M.g.Halves(p[0], p[1])
		if err != nil {
			continue
		}
		ret = append(ret, BondSplit{Part1: h1, Part2: h2, Hinge: p})
	}
	return ret
}

// BendHalves returns, for every bending angle a-c-b in M, one split: the part on the side of c
// when cutting c-a, or, if that bond is in a ring, when cutting c-b.
// Angles where neither bond splits the graph are skipped.
func BendHalves(M *MolecularGraph) []BendSplit {
	ret := make([]BendSplit, 0)
	for c := 0; c < M.Len(); c++ {
		nb := M.Neighbors(c)
		for i, a := range nb {
			for _, b := range nb[i+1:] {
				if part, _, err := M.g.Halves(c, a); err == nil {
					ret = append(ret, BendSplit{Part: part, Hinge: [3]int{a, c, b}})
					continue
				}
				if part, _, err := M.g.Halves(c, b); err == nil {
					ret = append(ret, BendSplit{Part: part, Hinge: [3]int{b, c, a}})
				}
			}
		}
	}
	return ret
}

// DoubleHalves returns every pair of bonds of M that split it together.
func DoubleHalves(M *MolecularGraph) []DoubleSplit {
	ret := make([]DoubleSplit, 0)
	pairs := M.Pairs()
	for i, p1 := range pairs {
		for _, p2 := range pairs[:i] {
			h1, h2, hinge, err := M.g.DoubleHalves(p1[0], p1[1], p2[0], p2[1])
			if err != nil {
				continue
			}
			ret = append(ret, DoubleSplit{Part1: h1, Part2: h2, Hinge: hinge})
		}
	}
	return ret
}
