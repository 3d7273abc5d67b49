package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001

//UnitCell is a periodic cell. The rows of the cell matrix are the three cell vectors.
type UnitCell struct {
	cell *mat.Dense
	inv  *mat.Dense
}

//NewUnitCell returns the cell spanned by the vectors a, b and c. It returns an error
//if the vectors are linearly dependent.
func NewUnitCell(a, b, c [3]float64) (*UnitCell, error) {
	data := make([]float64, 0, 9)
	data = append(data, a[:]...)
	data = append(data, b[:]...)
	data = append(data, c[:]...)
	M := mat.NewDense(3, 3, data)
	if math.Abs(mat.Det(M)) <= appzero {
		return nil, &Error{fmt.Sprintf("cell vectors %v %v %v span no volume", a, b, c), []string{"NewUnitCell"}, true}
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(M); err != nil {
		return nil, &Error{fmt.Sprintf("can't invert the cell: %s", err), []string{"NewUnitCell"}, true}
	}
	return &UnitCell{cell: M, inv: inv}, nil
}

//Cubic returns a cubic cell with side l.
func Cubic(l float64) (*UnitCell, error) {
	return NewUnitCell([3]float64{l, 0, 0}, [3]float64{0, l, 0}, [3]float64{0, 0, l})
}

//Vector returns the ith cell vector.
func (U *UnitCell) Vector(i int) [3]float64 {
	return [3]float64{U.cell.At(i, 0), U.cell.At(i, 1), U.cell.At(i, 2)}
}

//Volume returns the (positive) volume of the cell.
func (U *UnitCell) Volume() float64 {
	return math.Abs(mat.Det(U.cell))
}

//ToFractional returns the coordinates of the cartesian vector r in units of the cell vectors.
func (U *UnitCell) ToFractional(r [3]float64) [3]float64 {
	var ret [3]float64
	for k := 0; k < 3; k++ {
		for j := 0; j < 3; j++ {
			ret[k] += r[j] * U.inv.At(j, k)
		}
	}
	return ret
}

//ToCartesian is the inverse of ToFractional.
func (U *UnitCell) ToCartesian(f [3]float64) [3]float64 {
	var ret [3]float64
	for k := 0; k < 3; k++ {
		for j := 0; j < 3; j++ {
			ret[k] += f[j] * U.cell.At(j, k)
		}
	}
	return ret
}

//ShortestVector returns the periodic image of the displacement d that lies in the
//cell centered at the origin, which is the minimum image for reasonably shaped cells.
func (U *UnitCell) ShortestVector(d [3]float64) [3]float64 {
	f := U.ToFractional(d)
	for k := range f {
		f[k] -= math.Round(f[k])
	}
	return U.ToCartesian(f)
}

//Spacings returns, for each cell vector, the distance between the two
//cell planes that don't contain it.
func (U *UnitCell) Spacings() [3]float64 {
	var ret [3]float64
	vol := U.Volume()
	for k := 0; k < 3; k++ {
		b, c := U.Vector((k+1)%3), U.Vector((k+2)%3)
		cross := []float64{
			b[1]*c[2] - b[2]*c[1],
			b[2]*c[0] - b[0]*c[2],
			b[0]*c[1] - b[1]*c[0],
		}
		ret[k] = vol / floats.Norm(cross, 2)
	}
	return ret
}
