package chem

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forwards(matches []Match) [][]int {
	ret := make([][]int, len(matches))
	for i, m := range matches {
		ret[i] = m.Forward
	}
	return ret
}

func TestTemplates(Te *testing.T) {
	cases := []struct {
		P       *Pattern
		central int
		autos   int
	}{
		{NewBondPattern(), 0, 1},
		{NewBendingAnglePattern(), 1, 1},
		{NewDihedralPattern(), 1, 1},
		{NewOutOfPlanePattern(), 0, 5},
		{NewTetraPattern(), 0, 23},
		{NewRingPattern(6, false), 0, 11},
		{NewRingPattern(5, true), 0, 9},
	}
	for _, c := range cases {
		T := c.P.template()
		assert.Equal(Te, c.central, T.central, c.P.Kind.String())
		assert.Len(Te, T.autos, c.autos, c.P.Kind.String())
	}
	T := NewRingPattern(6, false).template()
	assert.Equal(Te, [][]int{{0}, {1, 5}, {2, 4}, {3}}, T.levels)
	tagged := NewBondPattern().WithTags(map[int]int{0: 0, 1: 1}).template()
	assert.Empty(Te, tagged.autos)
	assert.Panics(Te, func() { NewRingPattern(2, false) })
}

func TestSearchBonds(Te *testing.T) {
	M := ethene(Te)

	all := Search(NewBondPattern(), M)
	assert.Len(Te, all, 5)

	//only atom 0 is restricted, so C-H bonds match too; AtomCriteria(6, 6) gives the C=C bond alone
	carbon := Search(NewBondPattern(AtomCriteria(6)), M)
	assert.Len(Te, carbon, 5)
	cc := 0
	for _, m := range carbon {
		if m.Forward[0] == 0 && m.Forward[1] == 1 {
			cc++
		}
		assert.NotEqual(Te, []int{1, 0}, m.Forward)
	}
	assert.Equal(Te, 1, cc)

	both := Search(NewBondPattern(AtomCriteria(6, 6)), M)
	require.Len(Te, both, 1)
	assert.Equal(Te, []int{0, 1}, both[0].Forward)
	assert.Equal(Te, map[int]int{0: 0, 1: 1}, both[0].Backward)

	ch := Search(NewBondPattern(AtomCriteria(6, 1), AtomCriteria(1, 6)), M)
	assert.Equal(Te, [][]int{{0, 2}, {0, 3}, {1, 4}, {1, 5}}, forwards(ch))

	tagged := Search(NewBondPattern().WithTags(map[int]int{0: 0, 1: 1}), M)
	assert.Len(Te, tagged, 10)

	assert.Empty(Te, Search(NewBondPattern(AtomCriteria(8)), M))
}

func TestSearchBondCriteria(Te *testing.T) {
	M, err := ethene(Te).WithBondLengths([]float64{1.33, 1.09, 1.08, 1.10, 1.09})
	require.NoError(Te, err)
	long := AtomCriteria().WithBonds(map[int]BondCriterion{0: BondLongerThan(1.089)})
	got := Search(NewBondPattern(long), M)
	assert.Equal(Te, [][]int{{0, 1}, {0, 2}, {1, 4}, {1, 5}}, forwards(got))
	assert.Panics(Te, func() { Search(NewBondPattern(long), ethene(Te)) })
}

func TestSearchCounts(Te *testing.T) {
	cases := []struct {
		name string
		M    *MolecularGraph
		P    *Pattern
		n    int
	}{
		{"methane tetra", methane(Te), NewTetraPattern(), 1},
		{"methane angles", methane(Te), NewBendingAnglePattern(), 6},
		{"methane out of plane", methane(Te), NewOutOfPlanePattern(), 4},
		{"ethene out of plane", ethene(Te), NewOutOfPlanePattern(), 2},
		{"ethene tetra", ethene(Te), NewTetraPattern(), 0},
		{"ethane HCCH dihedrals", ethane(Te), NewDihedralPattern(AtomCriteria(1, 6, 6, 1)), 9},
		{"ethane dihedrals", ethane(Te), NewDihedralPattern(), 9},
		{"ethane carbon centers", ethane(Te), NewTetraPattern(AtomCriteria(6, 1, 1, 1, 6)), 2},
		{"hexagon", cycle(Te, 6), NewRingPattern(6, true), 1},
		{"hexagon as 5 ring", cycle(Te, 6), NewRingPattern(5, false), 0},
		{"naphthalene 6 rings", naphthalene(Te), NewRingPattern(6, false), 2},
		{"naphthalene strong 6 rings", naphthalene(Te), NewRingPattern(6, true), 2},
		{"naphthalene 10 ring", naphthalene(Te), NewRingPattern(10, false), 1},
		{"naphthalene strong 10 ring", naphthalene(Te), NewRingPattern(10, true), 0},
		{"triangle", cycle(Te, 3), NewRingPattern(3, true), 1},
		{"square", cycle(Te, 4), NewRingPattern(4, true), 1},
		{"pentagon", cycle(Te, 5), NewRingPattern(5, true), 1},
		{"heptagon", cycle(Te, 7), NewRingPattern(7, true), 1},
		{"heptagon with chord", cycle(Te, 7, [2]int{0, 3}), NewRingPattern(7, false), 1},
		{"strong heptagon with chord", cycle(Te, 7, [2]int{0, 3}), NewRingPattern(7, true), 0},
		{"pentalene 5 rings", cycle(Te, 8, [2]int{0, 4}), NewRingPattern(5, true), 2},
		{"pentalene strong 8 ring", cycle(Te, 8, [2]int{0, 4}), NewRingPattern(8, true), 0},
		{"pentalene 8 ring", cycle(Te, 8, [2]int{0, 4}), NewRingPattern(8, false), 1},
	}
	for _, c := range cases {
		Te.Run(c.name, func(t *testing.T) {
			assert.Len(t, Search(c.P, c.M), c.n)
		})
	}
}

func TestSearchRingOrder(Te *testing.T) {
	matches := Search(NewRingPattern(6, true), cycle(Te, 6))
	require.Len(Te, matches, 1)
	assert.Equal(Te, []int{0, 1, 2, 3, 4, 5}, matches[0].Forward)
}

func TestSearchNeighborCriteria(Te *testing.T) {
	M := ethane(Te)
	methyl := HasNeighborNumbers(1, 1, 1, 6)
	got := Search(NewBondPattern(AtomCriteria(methyl, methyl)), M)
	assert.Equal(Te, [][]int{{0, 1}}, forwards(got))

	hc := HasNeighbors(HasAtomNumber(6))
	assert.Len(Te, Search(NewBondPattern(AtomCriteria(6, hc)), M), 6)
	assert.Len(Te, Search(NewBondPattern(AtomCriteria(HasNumNeighbors(4), HasNumNeighbors(4))), M), 1)

	lone := mustGraph(Te, nil, []int{6}, nil)
	assert.False(Te, HasNeighbors()(0, lone))
	assert.Panics(Te, func() { AtomCriteria("C") })
}

func TestSearchFirst(Te *testing.T) {
	m, ok := SearchFirst(NewBondPattern(AtomCriteria(6, 1)), ethene(Te))
	assert.True(Te, ok)
	assert.Equal(Te, []int{0, 2}, m.Forward)
	_, ok = SearchFirst(NewRingPattern(3, false), ethene(Te))
	assert.False(Te, ok)
}

func TestConcurrentSearch(Te *testing.T) {
	M := naphthalene(Te)
	P := NewRingPattern(6, true)
	want := forwards(Search(P, M))
	var wg sync.WaitGroup
	results := make([][][]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = forwards(Search(P, M))
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(Te, want, r)
	}
}
