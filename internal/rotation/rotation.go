package rotation

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidParameters is returned for degenerate geometric input
var ErrInvalidParameters = errors.New("invalid rotation parameters")

// parallelEps bounds the cross-product norm below which two directions are
// treated as parallel
const parallelEps = 1e-10

// Theta returns the 4x4 homogeneous rotation by the given angle in degrees
// about the fixed X axis, mixing the Y and Z coordinates. In the camera
// convention of this package theta is the elevation angle.
func Theta(degrees float64) *mat.Dense {
	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})
}

// Phi returns the 4x4 homogeneous rotation by the given angle in degrees
// about the fixed Y axis, mixing the X and Z coordinates. Phi is the
// azimuth angle.
func Phi(degrees float64) *mat.Dense {
	rad := degrees * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return mat.NewDense(4, 4, []float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	})
}

// Align returns the 3x3 rotation matrix mapping the direction of v1 onto
// the direction of v2. Both inputs are normalized internally; a zero-length
// input fails with ErrInvalidParameters.
//
// When the directions are parallel the axis-angle construction degenerates:
// same direction yields the identity, opposite directions yield a half-turn
// about an axis orthogonal to v1 (derived from the X unit vector, or Y when
// v1 lies along X).
func Align(v1, v2 r3.Vector) (*mat.Dense, error) {
	if v1.Norm() == 0 || v2.Norm() == 0 {
		return nil, errors.Wrap(ErrInvalidParameters, "zero-length direction")
	}
	a := v1.Normalize()
	b := v2.Normalize()

	cross := a.Cross(b)
	dot := a.Dot(b)

	if cross.Norm() < parallelEps {
		if dot > 0 {
			return mat.NewDense(3, 3, []float64{
				1, 0, 0,
				0, 1, 0,
				0, 0, 1,
			}), nil
		}
		return rodrigues(orthogonalAxis(a), math.Pi), nil
	}

	angle := math.Acos(clamp(dot, -1, 1))
	return rodrigues(cross.Normalize(), angle), nil
}

// rodrigues builds the rotation by angle about the unit axis k
func rodrigues(k r3.Vector, angle float64) *mat.Dense {
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	return mat.NewDense(3, 3, []float64{
		c + k.X*k.X*t, k.X*k.Y*t - k.Z*s, k.X*k.Z*t + k.Y*s,
		k.Y*k.X*t + k.Z*s, c + k.Y*k.Y*t, k.Y*k.Z*t - k.X*s,
		k.Z*k.X*t - k.Y*s, k.Z*k.Y*t + k.X*s, c + k.Z*k.Z*t,
	})
}

// orthogonalAxis picks a unit axis orthogonal to the unit vector a by
// projecting the X basis vector off a, falling back to Y when a lies
// along X
func orthogonalAxis(a r3.Vector) r3.Vector {
	axis := r3.Vector{X: 1}
	axis = axis.Sub(a.Mul(axis.Dot(a)))
	if axis.Norm() < parallelEps {
		axis = r3.Vector{Y: 1}
	}
	return axis.Normalize()
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
