package chem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/pengfeili1/Molmodsummer/v3"
)

func etheneCoords(t *testing.T) *v3.Matrix {
	M, err := v3.NewMatrix([]float64{
		0, 0, 0,
		1.33, 0, 0,
		-0.56, 0.94, 0,
		-0.56, -0.94, 0,
		1.89, 0.94, 0,
		1.89, -0.94, 0,
	})
	require.NoError(t, err)
	return M
}

func TestFromGeometry(Te *testing.T) {
	numbers := []int{6, 6, 1, 1, 1, 1}
	M, err := FromGeometry(etheneCoords(Te), numbers, GeometryOptions{DoOrders: true})
	require.NoError(Te, err)
	assert.Equal(Te, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 4}, {1, 5}}, M.Pairs())
	assert.Equal(Te, []int{2, 1, 1, 1, 1}, M.Orders())
	require.Len(Te, M.BondLengths(), 5)
	assert.InDelta(Te, 1.33, M.BondLength(0), 1e-9)
	assert.True(Te, M.Equal(ethene(Te)))

	N, err := FromGeometry(etheneCoords(Te), numbers, GeometryOptions{})
	require.NoError(Te, err)
	assert.Equal(Te, []int{0, 0, 0, 0, 0}, N.Orders())
	assert.Equal(Te, M.Pairs(), N.Pairs())

	_, err = FromGeometry(etheneCoords(Te), numbers[:4], GeometryOptions{})
	assert.True(Te, errors.Is(err, ErrInvalidInput))
}

func TestPerceiveBondsPeriodic(Te *testing.T) {
	coords, err := v3.NewMatrix([]float64{0.3, 0, 0, 9.0, 0, 0})
	require.NoError(Te, err)
	cell, err := v3.Cubic(10)
	require.NoError(Te, err)
	bonds, err := PerceiveBonds(coords, []int{6, 6}, GeometryOptions{Cell: cell})
	require.NoError(Te, err)
	require.Len(Te, bonds, 1)
	assert.Equal(Te, [2]int{0, 1}, bonds[0].Pair)
	assert.Equal(Te, 2, bonds[0].Order)
	assert.InDelta(Te, 1.3, bonds[0].Length, 1e-9)

	bonds, err = PerceiveBonds(coords, []int{6, 6}, GeometryOptions{})
	require.NoError(Te, err)
	assert.Empty(Te, bonds)
}

// reversed returns every candidate pair twice, once reversed, plus self pairs.
type reversed struct{}

func (reversed) CandidatePairs(coords *v3.Matrix, gridsize float64, cell *v3.UnitCell) [][2]int {
	ret := make([][2]int, 0)
	for i := 0; i < coords.NVecs(); i++ {
		for j := 0; j < coords.NVecs(); j++ {
			ret = append(ret, [2]int{j, i})
		}
	}
	return ret
}

func TestPerceiveBondsCustomFinder(Te *testing.T) {
	numbers := []int{6, 6, 1, 1, 1, 1}
	want, err := PerceiveBonds(etheneCoords(Te), numbers, GeometryOptions{})
	require.NoError(Te, err)
	got, err := PerceiveBonds(etheneCoords(Te), numbers, GeometryOptions{Neighbors: reversed{}})
	require.NoError(Te, err)
	assert.Equal(Te, want, got)
}

func TestBondTable(Te *testing.T) {
	T := DefaultBondRules()
	assert.InDelta(Te, 1.2, T.Tolerance(), 1e-12)
	cases := []struct {
		na, nb int
		d      float64
		order  int
		ok     bool
	}{
		{6, 6, 1.53, 1, true},
		{6, 6, 1.34, 2, true},
		{6, 6, 1.21, 3, true},
		{6, 6, 1.90, 0, false},
		{6, 6, 0.5, 0, false},
		{1, 6, 1.1, 1, true},
		{8, 6, 1.22, 2, true},
		{26, 8, 2.0, 1, true}, //covalent radii
		{26, 8, 2.7, 0, false},
		{2, 2, 1.0, 0, false}, //no data
	}
	for _, c := range cases {
		o, ok := T.Bonded(c.na, c.nb, c.d)
		assert.Equal(Te, c.ok, ok, "%d %d %f", c.na, c.nb, c.d)
		assert.Equal(Te, c.order, o, "%d %d %f", c.na, c.nb, c.d)
		o2, ok2 := T.Bonded(c.nb, c.na, c.d)
		assert.Equal(Te, ok, ok2)
		assert.Equal(Te, o, o2)
	}
	for _, r := range referenceBonds {
		assert.GreaterOrEqual(Te, T.MaxLength(), r.length)
	}
	assert.Equal(Te, map[int]float64{1: 0.66 + 1.52}, T.Lengths(8, 26))
}

func TestElements(Te *testing.T) {
	assert.Equal(Te, "C", Symbol(6))
	assert.Equal(Te, "Br", Symbol(35))
	assert.Equal(Te, "", Symbol(0))
	n, ok := AtomicNumber("cl")
	assert.True(Te, ok)
	assert.Equal(Te, 17, n)
	_, ok = AtomicNumber("Xx")
	assert.False(Te, ok)
}
