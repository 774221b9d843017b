package camera

import (
	"gonum.org/v1/gonum/mat"
)

// PadPoints appends a homogeneous coordinate to each point, returning the
// N x 4 matrix ready to be multiplied by a pose transform. Returns nil for
// an empty point list.
func PadPoints(pts [][3]float64) *mat.Dense {
	if len(pts) == 0 {
		return nil
	}
	out := mat.NewDense(len(pts), 4, nil)
	for i, p := range pts {
		out.Set(i, 0, p[0])
		out.Set(i, 1, p[1])
		out.Set(i, 2, p[2])
		out.Set(i, 3, 1)
	}
	return out
}

// TransformPoints applies a 4x4 rigid transform to each point
func TransformPoints(m *mat.Dense, pts [][3]float64) [][3]float64 {
	out := make([][3]float64, len(pts))
	for i, p := range pts {
		for r := 0; r < 3; r++ {
			out[i][r] = m.At(r, 0)*p[0] + m.At(r, 1)*p[1] + m.At(r, 2)*p[2] + m.At(r, 3)
		}
	}
	return out
}
