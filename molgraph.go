/*
 * molgraph.go, part of Molmodsummer.
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

// MolecularGraph is the connectivity of a molecule: atoms (nodes) with atomic numbers
// and bonds (pairs) with bond orders. An atomic number or bond order of 0 means
// "unspecified". Negative values can be used for custom atom or bond types.
//
// MolecularGraphs are immutable, and safe for concurrent use. Operations that
// "modify" a graph return a new one.
type MolecularGraph struct {
	g       *chemgraph.Graph
	numbers []int
	orders  []int
	lengths []float64

	blobOnce sync.Once
	blob     string
}

// NewMolecularGraph returns a molecular graph with the given pairs, atomic numbers and bond orders.
// The number of atoms is len(numbers). If orders is nil, all bond orders are 0. The slices are copied.
func NewMolecularGraph(pairs [][2]int, numbers []int, orders []int) (*MolecularGraph, error) {
	if orders == nil {
		orders = make([]int, len(pairs))
	} else if len(orders) != len(pairs) {
		return nil, newCError(fmt.Sprintf("%d bond orders given for %d pairs", len(orders), len(pairs)), ErrInvalidInput, "NewMolecularGraph")
	}
	g, err := chemgraph.New(pairs, len(numbers))
	if err != nil {
		return nil, errDecorate(err, "NewMolecularGraph")
	}
	return fromGraph(g, numbers, orders, nil), nil
}

func fromGraph(g *chemgraph.Graph, numbers, orders []int, lengths []float64) *MolecularGraph {
	M := &MolecularGraph{
		g:       g,
		numbers: append([]int(nil), numbers...),
		orders:  append([]int(nil), orders...),
	}
	if lengths != nil {
		M.lengths = append([]float64(nil), lengths...)
	}
	return M
}

func (M *MolecularGraph) checkAtom(i int) {
	if i < 0 || i >= len(M.numbers) {
		panic(ErrAtomOutOfRange)
	}
}

// Len returns the number of atoms.
func (M *MolecularGraph) Len() int {
	return len(M.numbers)
}

// NumBonds returns the number of bonds.
func (M *MolecularGraph) NumBonds() int {
	return M.g.NumPairs()
}

// Number returns the atomic number of the atom i.
func (M *MolecularGraph) Number(i int) int {
	M.checkAtom(i)
	return M.numbers[i]
}

// Numbers returns a copy of the atomic numbers.
func (M *MolecularGraph) Numbers() []int {
	return append([]int(nil), M.numbers...)
}

// Order returns the order of the bond k.
func (M *MolecularGraph) Order(k int) int {
	return M.orders[k]
}

// Orders returns a copy of the bond orders, in the order of the pairs.
func (M *MolecularGraph) Orders() []int {
	return append([]int(nil), M.orders...)
}

// Pair returns the atoms joined by the bond k.
func (M *MolecularGraph) Pair(k int) [2]int {
	return M.g.Pair(k)
}

// Pairs returns a copy of the bonds, as pairs of atom indexes.
func (M *MolecularGraph) Pairs() [][2]int {
	return M.g.Pairs()
}

// Neighbors returns the atoms bonded to i, sorted.
func (M *MolecularGraph) Neighbors(i int) []int {
	return M.g.Neighbors(i)
}

// PairIndex returns the index of the bond between a and b, and false if there is no such bond.
func (M *MolecularGraph) PairIndex(a, b int) (int, bool) {
	return M.g.PairIndex(a, b)
}

// HasBond returns true if a and b are bonded.
func (M *MolecularGraph) HasBond(a, b int) bool {
	return M.g.HasPair(a, b)
}

// Distance returns the number of bonds in the shortest path between a and b,
// or -1 if they are not connected.
func (M *MolecularGraph) Distance(a, b int) int {
	return M.g.Distance(a, b)
}

// Distances returns the matrix of graph distances between all atoms.
func (M *MolecularGraph) Distances() [][]int {
	return M.g.Distances()
}

// ShortestPaths returns all the shortest paths from a to b, as lists of atoms.
func (M *MolecularGraph) ShortestPaths(a, b int) [][]int {
	return M.g.ShortestPaths(a, b)
}

// Components returns the sets of atoms that are connected to each other.
func (M *MolecularGraph) Components() [][]int {
	return M.g.Components()
}

// Graph returns the underlying graph, without atomic numbers or bond orders.
func (M *MolecularGraph) Graph() *chemgraph.Graph {
	return M.g
}

// BondLengths returns a copy of the bond lengths, or nil if the graph has none.
func (M *MolecularGraph) BondLengths() []float64 {
	if M.lengths == nil {
		return nil
	}
	return append([]float64(nil), M.lengths...)
}

// BondLength returns the length of the bond k. It panics if the graph has no bond lengths.
func (M *MolecularGraph) BondLength(k int) float64 {
	if M.lengths == nil {
		panic(ErrNoBondLengths)
	}
	return M.lengths[k]
}

// WithBondLengths returns a copy of M with the given bond lengths, one per bond.
func (M *MolecularGraph) WithBondLengths(lengths []float64) (*MolecularGraph, error) {
	if len(lengths) != M.NumBonds() {
		return nil, newCError(fmt.Sprintf("%d bond lengths given for %d bonds", len(lengths), M.NumBonds()), ErrInvalidInput, "WithBondLengths")
	}
	return fromGraph(M.g, M.numbers, M.orders, lengths), nil
}

// Equal returns true if both graphs have the same atomic numbers, and the same bonds
// with the same orders, in the same order.
func (M *MolecularGraph) Equal(O *MolecularGraph) bool {
	if M.Len() != O.Len() || M.NumBonds() != O.NumBonds() {
		return false
	}
	for i, n := range M.numbers {
		if O.numbers[i] != n {
			return false
		}
	}
	for k, o := range M.orders {
		if O.orders[k] != o || O.Pair(k) != M.Pair(k) {
			return false
		}
	}
	return true
}

// NodeString returns a string for the atom i, such that string order matches the order
// of the atomic numbers. For atoms with unspecified number, the string describes the
// connectivity around the atom instead.
func (M *MolecularGraph) NodeString(i int) string {
	M.checkAtom(i)
	if n := M.numbers[i]; n != 0 {
		return fmt.Sprintf("%03d", n)
	}
	return M.g.NodeString(i)
}

// PairString is the equivalent of NodeString for the bond k, based on its order.
func (M *MolecularGraph) PairString(k int) string {
	if o := M.orders[k]; o != 0 {
		return fmt.Sprintf("%03d", o)
	}
	return M.g.PairString(k)
}

// Replicate returns a graph with times disjoint copies of M. The atoms of the copy c are
// offset by c*M.Len().
func (M *MolecularGraph) Replicate(times int) (*MolecularGraph, error) {
	g, err := M.g.Replicate(times)
	if err != nil {
		return nil, errDecorate(err, "Replicate")
	}
	numbers := make([]int, 0, times*M.Len())
	orders := make([]int, 0, times*M.NumBonds())
	var lengths []float64
	for c := 0; c < times; c++ {
		numbers = append(numbers, M.numbers...)
		orders = append(orders, M.orders...)
		if M.lengths != nil {
			lengths = append(lengths, M.lengths...)
		}
	}
	return fromGraph(g, numbers, orders, lengths), nil
}

// Fragment is a molecular graph obtained from a subset of the atoms of a parent graph.
type Fragment struct {
	*MolecularGraph
	OldAtoms []int //the retained atoms of the parent, sorted. When renumbered, OldAtoms[i] is the parent index of the atom i.
	OldBonds []int //OldBonds[k] is the index in the parent of the bond k.
}

// Subgraph returns the fragment with the atoms in atoms, and the bonds between them, in the
// original order. If renumber is true, the atoms are renumbered from 0 in increasing original order.
// Otherwise the fragment has as many atoms as M, but only the bonds among the given atoms.
func (M *MolecularGraph) Subgraph(atoms []int, renumber bool) (*Fragment, error) {
	sub, err := M.g.Subgraph(atoms, renumber)
	if err != nil {
		return nil, errDecorate(err, "Subgraph")
	}
	numbers := M.numbers
	if renumber {
		numbers = make([]int, len(sub.OldNodes))
		for i, old := range sub.OldNodes {
			numbers[i] = M.numbers[old]
		}
	}
	orders := make([]int, len(sub.OldPairs))
	var lengths []float64
	if M.lengths != nil {
		lengths = make([]float64, len(sub.OldPairs))
	}
	for k, old := range sub.OldPairs {
		orders[k] = M.orders[old]
		if lengths != nil {
			lengths[k] = M.lengths[old]
		}
	}
	return &Fragment{
		MolecularGraph: fromGraph(sub.Graph, numbers, orders, lengths),
		OldAtoms:       sub.OldNodes,
		OldBonds:       sub.OldPairs,
	}, nil
}

// Halves returns the atoms on each side of the bond a-b, or an error wrapping
// ErrNotSeparating if the bond is in a ring.
func (M *MolecularGraph) Halves(a, b int) ([]int, []int, error) {
	h1, h2, err := M.g.Halves(a, b)
	return h1, h2, errDecorate(err, "Halves")
}

// DoubleHalves returns the atoms on each side of the bonds a1-b1 and a2-b2, cut together,
// with the hinge atoms (a1,b1,a2,b2), where a2 is on the side of a1.
func (M *MolecularGraph) DoubleHalves(a1, b1, a2, b2 int) ([]int, []int, [4]int, error) {
	h1, h2, hinge, err := M.g.DoubleHalves(a1, b1, a2, b2)
	return h1, h2, hinge, errDecorate(err, "DoubleHalves")
}
