/*
 * bonds.go, part of Molmodsummer.
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
	"sort"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/pengfeili1/Molmodsummer/binning"
	v3 "github.com/pengfeili1/Molmodsummer/v3"
)

// PerceivedBond is a bond found from the geometry of a molecule.
type PerceivedBond struct {
	Pair   [2]int //Pair[0] < Pair[1]
	Order  int
	Length float64
}

// GeometryOptions controls the bond perception. The zero value is usable:
// no periodic cell, no bond orders, the default bond rules and the binning neighbor search.
type GeometryOptions struct {
	Cell      *v3.UnitCell
	DoOrders  bool
	Rules     BondRules
	Neighbors NeighborFinder
}

func (o *GeometryOptions) defaults() (BondRules, NeighborFinder) {
	rules, nf := o.Rules, o.Neighbors
	if rules == nil {
		rules = DefaultBondRules()
	}
	if nf == nil {
		nf = binning.Finder{}
	}
	return rules, nf
}

// PerceiveBonds finds the bonds among the atoms with the given coordinates and atomic numbers.
// Two atoms are bonded if the rules say so for their distance. Distances are taken with the
// minimum image convention if opts.Cell is not nil. The bonds are returned sorted by pair.
func PerceiveBonds(coords *v3.Matrix, numbers []int, opts GeometryOptions) ([]PerceivedBond, error) {
	if coords.NVecs() != len(numbers) {
		return nil, newCError(fmt.Sprintf("%d coordinates for %d atomic numbers", coords.NVecs(), len(numbers)), ErrInvalidInput, "PerceiveBonds")
	}
	rules, nf := opts.defaults()
	gridsize := rules.MaxLength() * rules.Tolerance()
	candidates := nf.CandidatePairs(coords, gridsize, opts.Cell)
	seen := make(map[[2]int]bool, len(candidates))
	bonds := make([]PerceivedBond, 0)
	delta := make([]float64, 3)
	for _, c := range candidates {
		a, b := c[0], c[1]
		if a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		p := [2]int{a, b}
		if seen[p] {
			continue
		}
		seen[p] = true
		ra, rb := coords.Vec(a), coords.Vec(b)
		d3 := [3]float64{rb[0] - ra[0], rb[1] - ra[1], rb[2] - ra[2]}
		if opts.Cell != nil {
			d3 = opts.Cell.ShortestVector(d3)
		}
		copy(delta, d3[:])
		d := floats.Norm(delta, 2)
		if d >= gridsize {
			continue
		}
		order, ok := rules.Bonded(numbers[a], numbers[b], d)
		if !ok {
			continue
		}
		bonds = append(bonds, PerceivedBond{Pair: p, Order: order, Length: d})
	}
	sort.Slice(bonds, func(i, j int) bool {
		if bonds[i].Pair[0] != bonds[j].Pair[0] {
			return bonds[i].Pair[0] < bonds[j].Pair[0]
		}
		return bonds[i].Pair[1] < bonds[j].Pair[1]
	})
	log.WithFields(log.Fields{"atoms": len(numbers), "candidates": len(candidates), "bonds": len(bonds), "gridsize": gridsize}).Debug("PerceiveBonds")
	return bonds, nil
}

// FromGeometry builds the molecular graph of a molecule from its coordinates and atomic numbers.
// The bond orders are only kept if opts.DoOrders is true, otherwise they are all 0. The
// bond lengths are always attached to the graph.
func FromGeometry(coords *v3.Matrix, numbers []int, opts GeometryOptions) (*MolecularGraph, error) {
	bonds, err := PerceiveBonds(coords, numbers, opts)
	if err != nil {
		return nil, errDecorate(err, "FromGeometry")
	}
	pairs := make([][2]int, len(bonds))
	orders := make([]int, len(bonds))
	lengths := make([]float64, len(bonds))
	for k, b := range bonds {
		pairs[k] = b.Pair
		lengths[k] = b.Length
		if opts.DoOrders {
			orders[k] = b.Order
		}
	}
	M, err := NewMolecularGraph(pairs, numbers, orders)
	if err != nil {
		return nil, errDecorate(err, "FromGeometry")
	}
	M.lengths = lengths
	return M, nil
}
