package chem

// A ring is strong when, for any two of its atoms, the shortest paths between them in the whole
// graph are the ones that run along the ring. Path lengths here count atoms, not bonds.

// strongRingPrefix checks the atoms added to a partial ring match. m is the number of ring
// atoms assigned so far, start is the atom matched to the central template atom.
// Each new atom must be reached from start by exactly one shortest path, of (m+1)/2 atoms,
// except for the atom opposite to start in an even ring, which must be reached by exactly
// two, of size/2+1 atoms each.
func strongRingPrefix(M *MolecularGraph, size, m, start int, added []int) bool {
	for _, a := range added {
		paths := M.ShortestPaths(a, start)
		if size%2 == 0 && m == size {
			if len(paths) != 2 {
				return false
			}
			for _, p := range paths {
				if len(p) != m/2+1 {
					return false
				}
			}
			continue
		}
		if len(paths) != 1 || len(paths[0]) != (m+1)/2 {
			return false
		}
	}
	return true
}

// strongRing checks a complete ring, given as the atoms in ring order.
func strongRing(M *MolecularGraph, ring []int) bool {
	size := len(ring)
	half := size / 2
	if size%2 == 0 {
		for i := 0; i < half; i++ {
			paths := M.ShortestPaths(ring[i], ring[i+half])
			if len(paths) != 2 {
				return false
			}
			for _, p := range paths {
				if len(p) != half+1 {
					return false
				}
			}
		}
		return true
	}
	unique := func(a, b int) bool {
		paths := M.ShortestPaths(a, b)
		return len(paths) == 1 && len(paths[0]) == half+1
	}
	for i := 0; i <= half; i++ {
		if !unique(ring[i], ring[(i+half)%size]) || !unique(ring[i], ring[(i+half+1)%size]) {
			return false
		}
	}
	return true
}
