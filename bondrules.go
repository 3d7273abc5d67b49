/*
 * bondrules.go, part of Molmodsummer.
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

import "math"

const (
	tooclose = 0.63 //from DOI:10.1186/1758-2946-3-33
	bondtol  = 1.2
)

type elementPair [2]int

func newElementPair(na, nb int) elementPair {
	if na > nb {
		na, nb = nb, na
	}
	return elementPair{na, nb}
}

// BondTable is a BondRules implementation based on reference bond lengths.
// A pair of atoms is bonded with a given order if their distance is below the
// reference length for that order times the tolerance. When several orders
// qualify, the one with the reference length closest to the distance wins.
// Element pairs without references get a single bond with the sum of their
// covalent radii as reference length.
type BondTable struct {
	lengths   map[elementPair]map[int]float64
	tolerance float64
	tooClose  float64
	max       float64
}

// NewBondTable returns an empty table. Distances below tooClose are never bonds.
func NewBondTable(tolerance, tooClose float64) *BondTable {
	T := &BondTable{
		lengths:   make(map[elementPair]map[int]float64),
		tolerance: tolerance,
		tooClose:  tooClose,
	}
	for na, ra := range numberCovrad {
		for nb, rb := range numberCovrad {
			if nb >= na && ra+rb > T.max {
				T.max = ra + rb
			}
		}
	}
	return T
}

// Set sets the reference length for bonds of the given order between elements na and nb.
func (T *BondTable) Set(na, nb, order int, length float64) {
	k := newElementPair(na, nb)
	if T.lengths[k] == nil {
		T.lengths[k] = make(map[int]float64)
	}
	T.lengths[k][order] = length
	if length > T.max {
		T.max = length
	}
}

// Lengths returns the reference lengths, by bond order, for na and nb. The map is a copy.
func (T *BondTable) Lengths(na, nb int) map[int]float64 {
	ret := make(map[int]float64)
	if l, ok := T.lengths[newElementPair(na, nb)]; ok {
		for k, v := range l {
			ret[k] = v
		}
		return ret
	}
	ra, oka := numberCovrad[na]
	rb, okb := numberCovrad[nb]
	if oka && okb {
		ret[1] = ra + rb
	}
	return ret
}

// Bonded returns the most likely bond order between elements na and nb at the distance d,
// and false if they are not bonded.
func (T *BondTable) Bonded(na, nb int, d float64) (int, bool) {
	if d < T.tooClose {
		return 0, false
	}
	best, bestdev := 0, math.Inf(1)
	for order, l := range T.Lengths(na, nb) {
		if d >= l*T.tolerance {
			continue
		}
		dev := math.Abs(d - l)
		if dev < bestdev || (dev == bestdev && order < best) {
			best, bestdev = order, dev
		}
	}
	if math.IsInf(bestdev, 1) {
		return 0, false
	}
	return best, true
}

// MaxLength returns the longest reference length in the table, including the
// covalent radii fallbacks.
func (T *BondTable) MaxLength() float64 {
	return T.max
}

// Tolerance returns the factor applied to the reference lengths.
func (T *BondTable) Tolerance() float64 {
	return T.tolerance
}

// DefaultBondRules returns a table with reference lengths for the common bonds in
// organic molecules, a tolerance of 1.2 and a 0.63 A lower cut.
func DefaultBondRules() *BondTable {
	T := NewBondTable(bondtol, tooclose)
	for _, r := range referenceBonds {
		T.Set(r.na, r.nb, r.order, r.length)
	}
	return T
}

//Reference bond lengths in A. Typical values from
//Allen et al., J. Chem. Soc. Perkin Trans. II, 1987, S1-S19.
var referenceBonds = []struct {
	na, nb, order int
	length        float64
}{
	{1, 1, 1, 0.74},
	{1, 5, 1, 1.19},
	{1, 6, 1, 1.09},
	{1, 7, 1, 1.01},
	{1, 8, 1, 0.96},
	{1, 16, 1, 1.34},
	{5, 6, 1, 1.56},
	{6, 6, 1, 1.54},
	{6, 6, 2, 1.34},
	{6, 6, 3, 1.20},
	{6, 7, 1, 1.47},
	{6, 7, 2, 1.29},
	{6, 7, 3, 1.16},
	{6, 8, 1, 1.43},
	{6, 8, 2, 1.21},
	{6, 8, 3, 1.13},
	{6, 9, 1, 1.35},
	{6, 14, 1, 1.87},
	{6, 15, 1, 1.84},
	{6, 16, 1, 1.82},
	{6, 16, 2, 1.60},
	{6, 17, 1, 1.77},
	{6, 35, 1, 1.94},
	{6, 53, 1, 2.14},
	{7, 7, 1, 1.45},
	{7, 7, 2, 1.25},
	{7, 7, 3, 1.10},
	{7, 8, 1, 1.40},
	{7, 8, 2, 1.21},
	{8, 8, 1, 1.48},
	{8, 8, 2, 1.21},
	{8, 14, 1, 1.64},
	{8, 15, 1, 1.63},
	{8, 15, 2, 1.48},
	{8, 16, 1, 1.57},
	{8, 16, 2, 1.43},
}
