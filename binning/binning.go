// Package binning finds, for a set of points, every pair of points that may lie
// within a given distance of each other. The points are sorted into bins at
// least as wide as that distance, so only points in the same or in adjacent
// bins need to be compared.
package binning

import (
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	v3 "github.com/pengfeili1/Molmodsummer/v3"
)

type bin [3]int

// offsets to the 27 bins around (and including) a bin.
var offsets = func() []bin {
	ret := make([]bin, 0, 27)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				ret = append(ret, bin{i, j, k})
			}
		}
	}
	return ret
}()

// Finder is the binning implementation of the neighbor search used for bond perception.
type Finder struct{}

// CandidatePairs returns Pairs(coords, gridsize, cell).
func (Finder) CandidatePairs(coords *v3.Matrix, gridsize float64, cell *v3.UnitCell) [][2]int {
	return Pairs(coords, gridsize, cell)
}

// Pairs returns, sorted and with a<b, every pair (a,b) of points of coords that could be closer
// than gridsize. If cell is not nil, distances are taken with the minimum image convention.
// The result includes every pair closer than gridsize, and usually some more.
func Pairs(coords *v3.Matrix, gridsize float64, cell *v3.UnitCell) [][2]int {
	n := coords.NVecs()
	if n < 2 || gridsize <= 0 {
		return nil
	}
	var bins map[bin][]int
	var wrap func(bin) bin
	if cell == nil {
		bins = cartesianBins(coords, gridsize)
		wrap = func(b bin) bin { return b }
	} else {
		var nb bin
		bins, nb = fractionalBins(coords, gridsize, cell)
		wrap = func(b bin) bin {
			for k := range b {
				b[k] = ((b[k] % nb[k]) + nb[k]) % nb[k]
			}
			return b
		}
	}
	seen := make(map[[2]int]bool)
	ret := make([][2]int, 0)
	for b, members := range bins {
		visited := make(map[bin]bool, len(offsets))
		for _, o := range offsets {
			other := wrap(bin{b[0] + o[0], b[1] + o[1], b[2] + o[2]})
			if visited[other] {
				continue
			}
			visited[other] = true
			for _, j := range bins[other] {
				for _, i := range members {
					if i == j {
						continue
					}
					p := [2]int{i, j}
					if i > j {
						p = [2]int{j, i}
					}
					if !seen[p] {
						seen[p] = true
						ret = append(ret, p)
					}
				}
			}
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i][0] != ret[j][0] {
			return ret[i][0] < ret[j][0]
		}
		return ret[i][1] < ret[j][1]
	})
	log.WithFields(log.Fields{"points": n, "bins": len(bins), "pairs": len(ret), "periodic": cell != nil}).Debug("binning: candidate pairs")
	return ret
}

func cartesianBins(coords *v3.Matrix, gridsize float64) map[bin][]int {
	bins := make(map[bin][]int)
	for i := 0; i < coords.NVecs(); i++ {
		r := coords.Vec(i)
		var b bin
		for k := range b {
			b[k] = int(math.Floor(r[k] / gridsize))
		}
		bins[b] = append(bins[b], i)
	}
	return bins
}

// fractionalBins divides the cell in nb[k] slices along each cell vector, each one
// at least gridsize thick.
func fractionalBins(coords *v3.Matrix, gridsize float64, cell *v3.UnitCell) (map[bin][]int, bin) {
	var nb bin
	spacings := cell.Spacings()
	for k := range nb {
		nb[k] = int(math.Floor(spacings[k] / gridsize))
		if nb[k] < 1 {
			nb[k] = 1
		}
	}
	bins := make(map[bin][]int)
	for i := 0; i < coords.NVecs(); i++ {
		f := cell.ToFractional(coords.Vec(i))
		var b bin
		for k := range b {
			f[k] -= math.Floor(f[k])
			b[k] = int(f[k] * float64(nb[k]))
			if b[k] >= nb[k] {
				b[k] = nb[k] - 1
			}
		}
		bins[b] = append(bins[b], i)
	}
	return bins, nb
}
