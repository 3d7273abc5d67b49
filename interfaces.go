/*
 * interfaces.go, part of Molmodsummer.
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

import v3 "github.com/pengfeili1/Molmodsummer/v3"

// NeighborFinder returns the pairs of atoms that could be bonded.
type NeighborFinder interface {

	//CandidatePairs returns pairs of indexes of coords. It must include every pair
	//of points closer than gridsize (with the minimum image convention if
	//cell is not nil). Extra pairs are allowed, and so are repeated or
	//reversed ones.
	CandidatePairs(coords *v3.Matrix, gridsize float64, cell *v3.UnitCell) [][2]int
}

// BondRules decides whether two atoms at a given distance are bonded.
type BondRules interface {

	//Bonded returns the bond order between atoms with atomic numbers na and nb
	//at a distance d, and false if they are not bonded.
	Bonded(na, nb int, d float64) (int, bool)

	//MaxLength returns the longest reference bond length known to the rules.
	MaxLength() float64

	//Tolerance returns the factor by which a reference length can be exceeded.
	Tolerance() float64
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
}
