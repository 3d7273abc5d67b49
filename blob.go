package chem

import (
	"fmt"
	"strconv"
	"strings"
)

// Blob returns a compact text representation of the graph: the atomic numbers separated by
// commas, a space, and the bonds as atom1_atom2_order, separated by commas. A graph
// without bonds has an empty second field.
func (M *MolecularGraph) Blob() string {
	M.blobOnce.Do(func() {
		atoms := make([]string, len(M.numbers))
		for i, n := range M.numbers {
			atoms[i] = strconv.Itoa(n)
		}
		bonds := make([]string, M.NumBonds())
		for k, p := range M.g.Pairs() {
			bonds[k] = fmt.Sprintf("%d_%d_%d", p[0], p[1], M.orders[k])
		}
		M.blob = strings.Join(atoms, ",") + " " + strings.Join(bonds, ",")
	})
	return M.blob
}

// FromBlob builds a molecular graph from the string representation given by Blob.
func FromBlob(s string) (*MolecularGraph, error) {
	fields := strings.Fields(s)
	if len(fields) > 2 {
		return nil, newCError(fmt.Sprintf("blob %q has %d fields", s, len(fields)), ErrInvalidInput, "FromBlob")
	}
	if len(fields) == 0 {
		return NewMolecularGraph(nil, nil, nil)
	}
	numbers := make([]int, 0)
	for _, v := range strings.Split(fields[0], ",") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, newCError(fmt.Sprintf("bad atomic number %q", v), ErrInvalidInput, "FromBlob")
		}
		numbers = append(numbers, n)
	}
	pairs := make([][2]int, 0)
	orders := make([]int, 0)
	if len(fields) == 2 {
		for _, b := range strings.Split(fields[1], ",") {
			f := strings.Split(b, "_")
			if len(f) != 3 {
				return nil, newCError(fmt.Sprintf("bad bond %q", b), ErrInvalidInput, "FromBlob")
			}
			var v [3]int
			for i := range f {
				var err error
				v[i], err = strconv.Atoi(f[i])
				if err != nil {
					return nil, newCError(fmt.Sprintf("bad bond %q", b), ErrInvalidInput, "FromBlob")
				}
			}
			pairs = append(pairs, [2]int{v[0], v[1]})
			orders = append(orders, v[2])
		}
	}
	M, err := NewMolecularGraph(pairs, numbers, orders)
	if err != nil {
		return nil, errDecorate(err, "FromBlob")
	}
	return M, nil
}
