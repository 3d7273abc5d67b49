/*
 * atomicdata.go, part of Molmodsummer.
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

import "strings"

//element symbols, indexed by atomic number.
var symbols = []string{"",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn", "Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn", "Sb", "Te", "I", "Xe",
}

var symbolNumber = func() map[string]int {
	ret := make(map[string]int, len(symbols))
	for i, s := range symbols[1:] {
		ret[strings.ToLower(s)] = i + 1
	}
	return ret
}()

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var numberCovrad = map[int]float64{
	1:  0.4, //0.31 in the reference. A longer radius only matters for the fallback single bond.
	3:  1.28,
	4:  0.96,
	5:  0.84,
	6:  0.76, //the sp3 radius
	7:  0.71,
	8:  0.66,
	9:  0.57,
	11: 1.66,
	12: 1.41,
	13: 1.21,
	14: 1.11,
	15: 1.07,
	16: 1.05,
	17: 1.02,
	19: 2.03,
	20: 1.76,
	24: 1.39,
	25: 1.61, //hs
	26: 1.52, //hs
	27: 1.5,  //hs
	28: 1.24,
	29: 1.32,
	30: 1.22,
	32: 1.20,
	33: 1.19,
	34: 1.2,
	35: 1.2,
	53: 1.39,
}

// Symbol returns the element symbol for the atomic number n, or an empty
// string if n is not a known element.
func Symbol(n int) string {
	if n <= 0 || n >= len(symbols) {
		return ""
	}
	return symbols[n]
}

// AtomicNumber returns the atomic number of the element with the symbol sym
// (case insensitive), and false if there is no such element.
func AtomicNumber(sym string) (int, bool) {
	n, ok := symbolNumber[strings.ToLower(strings.TrimSpace(sym))]
	return n, ok
}

// CovalentRadius returns the covalent radius, in A, for the atomic number n,
// and false if it is not known.
func CovalentRadius(n int) (float64, bool) {
	r, ok := numberCovrad[n]
	return r, ok
}
