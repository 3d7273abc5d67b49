/*
 * criteria.go, part of Molmodsummer.
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

import "sort"

// AtomCriterion tells whether the atom with the given index satisfies some condition.
type AtomCriterion func(atom int, M *MolecularGraph) bool

// BondCriterion tells whether the bond with the given index satisfies some condition.
type BondCriterion func(bond int, M *MolecularGraph) bool

// CriteriaSet holds the conditions that the atoms and bonds of a match must fulfill.
// Atoms is indexed by template atom, Bonds by template bond. Missing entries impose nothing.
type CriteriaSet struct {
	Atoms map[int]AtomCriterion
	Bonds map[int]BondCriterion
}

// HasAtomNumber is satisfied by atoms with atomic number n.
func HasAtomNumber(n int) AtomCriterion {
	return func(atom int, M *MolecularGraph) bool {
		return M.Number(atom) == n
	}
}

// HasNumNeighbors is satisfied by atoms with exactly count neighbors.
func HasNumNeighbors(count int) AtomCriterion {
	return func(atom int, M *MolecularGraph) bool {
		return M.g.Degree(atom) == count
	}
}

// HasNeighborNumbers is satisfied by atoms whose neighbors have exactly the given atomic numbers,
// in any order.
func HasNeighborNumbers(numbers ...int) AtomCriterion {
	want := append([]int(nil), numbers...)
	sort.Ints(want)
	return func(atom int, M *MolecularGraph) bool {
		nb := M.g.Neighbors(atom)
		if len(nb) != len(want) {
			return false
		}
		got := make([]int, len(nb))
		for i, n := range nb {
			got[i] = M.numbers[n]
		}
		sort.Ints(got)
		for i := range got {
			if got[i] != want[i] {
				return false
			}
		}
		return true
	}
}

// HasNeighbors is satisfied by atoms with as many neighbors as criteria, when the neighbors can
// be assigned, one to one, to criteria they satisfy. Atoms without neighbors never satisfy it.
func HasNeighbors(criteria ...AtomCriterion) AtomCriterion {
	crits := append([]AtomCriterion(nil), criteria...)
	return func(atom int, M *MolecularGraph) bool {
		nb := M.g.Neighbors(atom)
		if len(nb) != len(crits) || len(nb) == 0 {
			return false
		}
		used := make([]bool, len(nb))
		var assign func(c int) bool
		assign = func(c int) bool {
			if c == len(crits) {
				return true
			}
			for i, n := range nb {
				if used[i] || !crits[c](n, M) {
					continue
				}
				used[i] = true
				if assign(c + 1) {
					return true
				}
				used[i] = false
			}
			return false
		}
		return assign(0)
	}
}

// BondLongerThan is satisfied by bonds longer than length. The graph must have bond lengths.
func BondLongerThan(length float64) BondCriterion {
	return func(bond int, M *MolecularGraph) bool {
		return M.BondLength(bond) > length
	}
}

// AtomCriteria builds a CriteriaSet where the atom i of the template is subject to the ith
// parameter. A nil parameter imposes nothing, an int n means HasAtomNumber(n), and atom
// criteria are used as they are. Any other parameter causes a panic.
func AtomCriteria(params ...interface{}) CriteriaSet {
	ret := CriteriaSet{Atoms: make(map[int]AtomCriterion)}
	for i, p := range params {
		switch v := p.(type) {
		case nil:
			continue
		case int:
			ret.Atoms[i] = HasAtomNumber(v)
		case AtomCriterion:
			if v != nil {
				ret.Atoms[i] = v
			}
		case func(int, *MolecularGraph) bool:
			if v != nil {
				ret.Atoms[i] = v
			}
		default:
			panic(ErrBadCriterion)
		}
	}
	return ret
}

// WithBonds returns a copy of the set with the given bond criteria added.
func (C CriteriaSet) WithBonds(bonds map[int]BondCriterion) CriteriaSet {
	ret := CriteriaSet{Atoms: C.Atoms, Bonds: make(map[int]BondCriterion, len(C.Bonds)+len(bonds))}
	for k, v := range C.Bonds {
		ret.Bonds[k] = v
	}
	for k, v := range bonds {
		ret.Bonds[k] = v
	}
	return ret
}

func (C CriteriaSet) atomOK(t, atom int, M *MolecularGraph) bool {
	c, ok := C.Atoms[t]
	return !ok || c(atom, M)
}

func (C CriteriaSet) bondOK(e, bond int, M *MolecularGraph) bool {
	c, ok := C.Bonds[e]
	return !ok || c(bond, M)
}
