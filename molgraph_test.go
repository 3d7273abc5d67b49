package chem

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGraph(t *testing.T, pairs [][2]int, numbers, orders []int) *MolecularGraph {
	t.Helper()
	M, err := NewMolecularGraph(pairs, numbers, orders)
	require.NoError(t, err)
	return M
}

func ethene(t *testing.T) *MolecularGraph {
	return mustGraph(t, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 4}, {1, 5}}, []int{6, 6, 1, 1, 1, 1}, []int{2, 1, 1, 1, 1})
}

func methane(t *testing.T) *MolecularGraph {
	return mustGraph(t, [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}}, []int{6, 1, 1, 1, 1}, nil)
}

func ethane(t *testing.T) *MolecularGraph {
	return mustGraph(t, [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}, {1, 5}, {1, 6}, {1, 7}}, []int{6, 6, 1, 1, 1, 1, 1, 1}, nil)
}

func cycle(t *testing.T, n int, extra ...[2]int) *MolecularGraph {
	pairs := make([][2]int, 0, n+len(extra))
	for i := 0; i < n; i++ {
		pairs = append(pairs, [2]int{i, (i + 1) % n})
	}
	pairs = append(pairs, extra...)
	numbers := make([]int, n)
	for i := range numbers {
		numbers[i] = 6
	}
	return mustGraph(t, pairs, numbers, nil)
}

func naphthalene(t *testing.T) *MolecularGraph {
	pairs := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 0}, {4, 6}, {6, 7}, {7, 8}, {8, 9}, {9, 5}}
	numbers := make([]int, 10)
	for i := range numbers {
		numbers[i] = 6
	}
	return mustGraph(t, pairs, numbers, nil)
}

func TestNewMolecularGraphInvalid(Te *testing.T) {
	cases := []struct {
		name    string
		pairs   [][2]int
		numbers []int
		orders  []int
	}{
		{"orders length", [][2]int{{0, 1}}, []int{6, 6}, []int{1, 1}},
		{"out of range", [][2]int{{0, 2}}, []int{6, 6}, nil},
		{"self loop", [][2]int{{1, 1}}, []int{6, 6}, nil},
		{"duplicate", [][2]int{{0, 1}, {1, 0}}, []int{6, 6}, nil},
	}
	for _, c := range cases {
		Te.Run(c.name, func(t *testing.T) {
			_, err := NewMolecularGraph(c.pairs, c.numbers, c.orders)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestMolecularGraphAccessors(Te *testing.T) {
	M := ethene(Te)
	assert.Equal(Te, 6, M.Len())
	assert.Equal(Te, 5, M.NumBonds())
	assert.Equal(Te, []int{1, 2, 3}, M.Neighbors(0))
	assert.True(Te, M.HasBond(4, 1))
	assert.False(Te, M.HasBond(2, 3))
	k, ok := M.PairIndex(1, 0)
	assert.True(Te, ok)
	assert.Equal(Te, 2, M.Order(k))
	assert.Equal(Te, 3, M.Distance(2, 5))
	assert.Equal(Te, [][]int{{2, 0, 1, 5}}, M.ShortestPaths(2, 5))
	assert.Nil(Te, M.BondLengths())
	assert.Panics(Te, func() { M.BondLength(0) })
	assert.Panics(Te, func() { M.Number(6) })
	numbers := M.Numbers()
	numbers[0] = 99
	assert.Equal(Te, 6, M.Number(0))
}

func TestBlob(Te *testing.T) {
	M := ethene(Te)
	assert.Equal(Te, "6,6,1,1,1,1 0_1_2,0_2_1,0_3_1,1_4_1,1_5_1", M.Blob())
	N, err := FromBlob(M.Blob())
	require.NoError(Te, err)
	assert.True(Te, M.Equal(N))
	assert.Equal(Te, M.Blob(), N.Blob())

	lone := mustGraph(Te, nil, []int{6, 8}, nil)
	assert.Equal(Te, "6,8 ", lone.Blob())
	L, err := FromBlob(lone.Blob())
	require.NoError(Te, err)
	assert.True(Te, lone.Equal(L))

	for _, bad := range []string{"6,x 0_1_1", "6,6 0_1", "6,6 0_1_a", "6,6 0_2_1", "6 6 6"} {
		_, err := FromBlob(bad)
		assert.True(Te, errors.Is(err, ErrInvalidInput), bad)
	}
}

func TestNodeAndPairStrings(Te *testing.T) {
	M := ethene(Te)
	assert.Equal(Te, "006", M.NodeString(0))
	assert.Equal(Te, "001", M.NodeString(5))
	assert.Equal(Te, "002", M.PairString(0))
	U := mustGraph(Te, [][2]int{{0, 1}, {1, 2}}, []int{0, 0, 0}, nil)
	assert.Equal(Te, U.Graph().NodeString(1), U.NodeString(1))
	assert.Equal(Te, U.NodeString(0), U.NodeString(2))
	assert.Equal(Te, U.PairString(0), U.PairString(1))

	//a triangle and a hexagon: same degrees everywhere, different neighborhoods
	pairs := [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 6}, {6, 7}, {7, 8}, {8, 3}}
	R := mustGraph(Te, pairs, make([]int, 9), nil)
	assert.NotEqual(Te, R.NodeString(0), R.NodeString(3))
	assert.NotEqual(Te, R.PairString(0), R.PairString(3))
	assert.Equal(Te, R.NodeString(3), R.NodeString(6))
}

func TestReplicate(Te *testing.T) {
	M, err := ethene(Te).WithBondLengths([]float64{1.33, 1.09, 1.09, 1.09, 1.09})
	require.NoError(Te, err)
	R, err := M.Replicate(2)
	require.NoError(Te, err)
	assert.Equal(Te, 12, R.Len())
	assert.Equal(Te, []int{6, 6, 1, 1, 1, 1, 6, 6, 1, 1, 1, 1}, R.Numbers())
	assert.Equal(Te, [2]int{6, 7}, R.Pair(5))
	assert.Equal(Te, 2, R.Order(5))
	assert.InDelta(Te, 1.33, R.BondLength(5), 1e-12)
	_, err = M.Replicate(-2)
	assert.True(Te, errors.Is(err, ErrInvalidInput))
	_, err = M.WithBondLengths([]float64{1})
	assert.True(Te, errors.Is(err, ErrInvalidInput))
}

func TestSubgraph(Te *testing.T) {
	M := ethene(Te)
	F, err := M.Subgraph([]int{1, 4, 5, 0}, true)
	require.NoError(Te, err)
	assert.Equal(Te, []int{6, 6, 1, 1}, F.Numbers())
	assert.Equal(Te, []int{0, 1, 4, 5}, F.OldAtoms)
	assert.Equal(Te, []int{0, 3, 4}, F.OldBonds)
	assert.Equal(Te, [][2]int{{0, 1}, {1, 2}, {1, 3}}, F.Pairs())
	assert.Equal(Te, []int{2, 1, 1}, F.Orders())
	for k, p := range F.Pairs() {
		old := M.Pair(F.OldBonds[k])
		assert.Equal(Te, old, [2]int{F.OldAtoms[p[0]], F.OldAtoms[p[1]]})
		assert.Equal(Te, M.Order(F.OldBonds[k]), F.Order(k))
	}
	K, err := M.Subgraph([]int{0, 2, 3}, false)
	require.NoError(Te, err)
	assert.Equal(Te, 6, K.Len())
	assert.Equal(Te, M.Numbers(), K.Numbers())
	assert.Equal(Te, [][2]int{{0, 2}, {0, 3}}, K.Pairs())
}

func TestHalvesIterators(Te *testing.T) {
	M := ethane(Te)
	bonds := BondHalves(M)
	require.Len(Te, bonds, 7)
	assert.Equal(Te, [2]int{0, 1}, bonds[0].Hinge)
	assert.Equal(Te, []int{0, 2, 3, 4}, bonds[0].Part1)
	assert.Equal(Te, []int{1, 5, 6, 7}, bonds[0].Part2)
	assert.Empty(Te, BondHalves(cycle(Te, 6)))

	bends := BendHalves(M)
	//each carbon has 4 neighbors, so 6 angles each
	require.Len(Te, bends, 12)
	assert.Equal(Te, [3]int{1, 0, 2}, bends[0].Hinge)
	assert.Equal(Te, []int{0, 2, 3, 4}, bends[0].Part)

	doubles := DoubleHalves(cycle(Te, 4))
	//every two bonds of a 4 ring split it
	assert.Len(Te, doubles, 6)
	_, _, err := M.Halves(2, 3)
	assert.True(Te, errors.Is(err, ErrInvalidInput))
	_, _, err = cycle(Te, 5).Halves(0, 1)
	assert.True(Te, errors.Is(err, ErrNotSeparating))
}

func TestConcurrentReaders(Te *testing.T) {
	M := naphthalene(Te)
	var wg sync.WaitGroup
	blobs := make([]string, 8)
	dists := make([]int, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			blobs[i] = M.Blob()
			dists[i] = M.Distance(0, 7)
			M.NodeString(3)
		}(i)
	}
	wg.Wait()
	for i := range blobs {
		assert.Equal(Te, blobs[0], blobs[i])
		assert.Equal(Te, 4, dists[i])
	}
}
