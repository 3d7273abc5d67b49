/*
 * hydrogens.go, part of Molmodsummer.
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

	log "github.com/sirupsen/logrus"
)

// valenceHydrogens returns the number of hydrogens an atom with n electrons takes when
// it has no bonds, and false for the elements not handled (only B, C, N, O, F, Al, Si,
// P, S, Cl and Br are).
func valenceHydrogens(n int) (int, bool) {
	var h int
	switch {
	case n >= 5 && n <= 9:
		h = n - 2
	case n >= 13 && n <= 17:
		h = n - 10
	case n == 35:
		h = 1
	default:
		return 0, false
	}
	if h > 4 {
		h = 8 - h
	}
	return h, true
}

// AddHydrogens returns a new graph where the missing hydrogens are added explicitly, bonded
// to the atoms that need them, after the existing atoms. The new bonds have order 1 and go
// after the existing ones. Bonds with unknown (or non-positive) order count as single bonds.
// formalCharges, if not nil, gives the formal charge of each atom. The result has no bond lengths.
func (M *MolecularGraph) AddHydrogens(formalCharges []int) (*MolecularGraph, error) {
	if formalCharges != nil && len(formalCharges) != M.Len() {
		return nil, newCError(fmt.Sprintf("%d formal charges given for %d atoms", len(formalCharges), M.Len()), ErrInvalidInput, "AddHydrogens")
	}
	pairs := M.Pairs()
	numbers := M.Numbers()
	orders := M.Orders()
	counter := M.Len()
	for i := 0; i < M.Len(); i++ {
		nelec := M.numbers[i]
		if formalCharges != nil {
			nelec -= formalCharges[i]
		}
		nh, ok := valenceHydrogens(nelec)
		if !ok {
			continue
		}
		for _, n := range M.g.Neighbors(i) {
			k, _ := M.g.PairIndex(i, n)
			bo := M.orders[k]
			if bo <= 0 {
				bo = 1
			}
			nh -= bo
		}
		for j := 0; j < nh; j++ {
			pairs = append(pairs, [2]int{i, counter})
			numbers = append(numbers, 1)
			orders = append(orders, 1)
			counter++
		}
	}
	log.WithFields(log.Fields{"atoms": M.Len(), "added": counter - M.Len()}).Debug("AddHydrogens")
	R, err := NewMolecularGraph(pairs, numbers, orders)
	if err != nil {
		return nil, errDecorate(err, "AddHydrogens")
	}
	return R, nil
}
