/*
 * pattern.go, part of Molmodsummer.
 *
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chem

import (
	"fmt"
	"sync"

	"github.com/pengfeili1/Molmodsummer/chemgraph"
)

// PatternKind is the kind of substructure a Pattern looks for.
type PatternKind int

const (
	Bond PatternKind = iota
	BendingAngle
	Dihedral
	OutOfPlane
	Tetra
	Ring
)

func (k PatternKind) String() string {
	switch k {
	case Bond:
		return "bond"
	case BendingAngle:
		return "bending angle"
	case Dihedral:
		return "dihedral"
	case OutOfPlane:
		return "out of plane"
	case Tetra:
		return "tetra"
	case Ring:
		return "ring"
	}
	return fmt.Sprintf("PatternKind(%d)", int(k))
}

// Pattern describes a substructure to search for in a molecular graph. The shape of the
// substructure, a small graph called the template, depends on the kind:
//
//	Bond          0-1
//	BendingAngle  0-1, 1-2
//	Dihedral      0-1, 1-2, 2-3
//	OutOfPlane    0-1, 0-2, 0-3
//	Tetra         0-1, 0-2, 0-3, 0-4
//	Ring          0-1, 1-2, ... (Size-1)-0
//
// The template bonds are numbered in the order above. A match must satisfy all the
// criteria of at least one of the CriteriaSets. With no sets, any embedding of the
// template is a match.
//
// Matches that only differ by a symmetry of the template are reported once. Tags
// restrict the symmetries: template atoms with different tags are never exchanged.
// Untagged atoms have tag 0.
type Pattern struct {
	Kind         PatternKind
	Size         int  //Ring only
	Strong       bool //Ring only. Only report strong rings.
	CriteriaSets []CriteriaSet
	Tags         map[int]int

	once sync.Once
	tmpl *template
}

func newPattern(kind PatternKind, size int, sets []CriteriaSet) *Pattern {
	return &Pattern{Kind: kind, Size: size, CriteriaSets: sets}
}

// NewBondPattern returns a pattern matching bonds.
func NewBondPattern(sets ...CriteriaSet) *Pattern {
	return newPattern(Bond, 2, sets)
}

// NewBendingAnglePattern returns a pattern matching chains of three atoms.
func NewBendingAnglePattern(sets ...CriteriaSet) *Pattern {
	return newPattern(BendingAngle, 3, sets)
}

// NewDihedralPattern returns a pattern matching chains of four atoms.
func NewDihedralPattern(sets ...CriteriaSet) *Pattern {
	return newPattern(Dihedral, 4, sets)
}

// NewOutOfPlanePattern returns a pattern matching an atom and three of its neighbors.
func NewOutOfPlanePattern(sets ...CriteriaSet) *Pattern {
	return newPattern(OutOfPlane, 4, sets)
}

// NewTetraPattern returns a pattern matching an atom and four of its neighbors.
func NewTetraPattern(sets ...CriteriaSet) *Pattern {
	return newPattern(Tetra, 5, sets)
}

// NewRingPattern returns a pattern matching rings of size atoms. If strong is true, only
// strong rings are matched, i.e. rings where the shortest paths (in the whole graph) between
// any two atoms of the ring run along the ring. It panics if size is smaller than 3.
func NewRingPattern(size int, strong bool, sets ...CriteriaSet) *Pattern {
	if size < 3 {
		panic(ErrBadRingSize)
	}
	P := newPattern(Ring, size, sets)
	P.Strong = strong
	return P
}

// WithTags sets the tags of the pattern and returns it. It must be called before the pattern
// is used.
func (P *Pattern) WithTags(tags map[int]int) *Pattern {
	P.Tags = tags
	return P
}

func (P *Pattern) template() *template {
	P.once.Do(func() {
		P.tmpl = newTemplate(P.edges(), P.Tags)
	})
	return P.tmpl
}

func (P *Pattern) edges() [][2]int {
	switch P.Kind {
	case Bond:
		return [][2]int{{0, 1}}
	case BendingAngle:
		return [][2]int{{0, 1}, {1, 2}}
	case Dihedral:
		return [][2]int{{0, 1}, {1, 2}, {2, 3}}
	case OutOfPlane:
		return [][2]int{{0, 1}, {0, 2}, {0, 3}}
	case Tetra:
		return [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}}
	case Ring:
		if P.Size < 3 {
			panic(ErrBadRingSize)
		}
		ret := make([][2]int, P.Size)
		for i := range ret {
			ret[i] = [2]int{i, (i + 1) % P.Size}
		}
		return ret
	}
	panic(PanicMsg(fmt.Sprintf("chem: unknown pattern kind %d", int(P.Kind))))
}

// template is the small graph a pattern looks for, with what the search needs
// precomputed: the central atom, the atoms grouped by their distance to it,
// and the symmetries.
type template struct {
	size    int
	edges   [][2]int
	g       *chemgraph.Graph
	central int
	levels  [][]int
	parent  []int
	order   []int   //atoms in the order they are assigned, level by level
	autos   [][]int //tag-preserving automorphisms, without the identity
}

func newTemplate(edges [][2]int, tags map[int]int) *template {
	g, err := chemgraph.New(edges, -1)
	if err != nil {
		panic(PanicMsg("chem: invalid template: " + err.Error()))
	}
	T := &template{
		size:  g.NumNodes(),
		edges: edges,
		g:     g,
	}
	T.central = T.findCentral()
	T.levels, T.parent = T.layers(T.central)
	for _, l := range T.levels {
		T.order = append(T.order, l...)
	}
	T.autos = T.automorphisms(tags)
	return T
}

// layers returns the atoms grouped by their distance to start, each group sorted, and the
// parent of each atom: its lowest neighbor in the previous group (-1 for start).
func (T *template) layers(start int) ([][]int, []int) {
	levels := make([][]int, 0)
	parent := make([]int, T.size)
	for v := 0; v < T.size; v++ {
		d := T.g.Distance(start, v)
		for len(levels) <= d {
			levels = append(levels, make([]int, 0))
		}
		levels[d] = append(levels[d], v)
		parent[v] = -1
		for _, u := range T.g.Neighbors(v) {
			if T.g.Distance(start, u) == d-1 {
				parent[v] = u
				break
			}
		}
	}
	return levels, parent
}

// findCentral returns the atom with the smallest eccentricity, the lowest one on ties.
func (T *template) findCentral() int {
	best, bestecc := 0, T.size+1
	for i, row := range T.g.Distances() {
		ecc := 0
		for _, d := range row {
			if d > ecc {
				ecc = d
			}
		}
		if ecc < bestecc {
			best, bestecc = i, ecc
		}
	}
	return best
}

// automorphisms returns the permutations s of the template atoms, other than the identity,
// such that s[a]-s[b] is a bond whenever a-b is one, and tags[s[i]] == tags[i].
func (T *template) automorphisms(tags map[int]int) [][]int {
	ret := make([][]int, 0)
	perm := make([]int, T.size)
	used := make([]bool, T.size)
	var rec func(i int)
	rec = func(i int) {
		if i == T.size {
			identity := true
			for k, v := range perm {
				if k != v {
					identity = false
					break
				}
			}
			if !identity {
				ret = append(ret, append([]int(nil), perm...))
			}
			return
		}
		for c := 0; c < T.size; c++ {
			if used[c] || tags[c] != tags[i] || T.g.Degree(c) != T.g.Degree(i) {
				continue
			}
			ok := true
			for j := 0; j < i; j++ {
				if T.g.HasPair(i, j) != T.g.HasPair(c, perm[j]) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			used[c] = true
			perm[i] = c
			rec(i + 1)
			used[c] = false
		}
	}
	rec(0)
	return ret
}
