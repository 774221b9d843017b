package camera

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/campath/internal/rotation"
)

// Pose is one camera extrinsic tracked in both directions: camera-to-world
// and its inverse, world-to-camera. The world-to-camera view is always
// derived by matrix inversion, never rebuilt independently.
type Pose struct {
	W2C *mat.Dense
	C2W *mat.Dense
}

// PoseFromC2W derives a pose from a camera-to-world transform. The input
// is copied; the pose owns its matrices.
func PoseFromC2W(c2w *mat.Dense) (Pose, error) {
	var w2c mat.Dense
	if err := w2c.Inverse(c2w); err != nil {
		return Pose{}, errors.Wrap(err, "invert camera-to-world transform")
	}
	return Pose{W2C: &w2c, C2W: mat.DenseCopyOf(c2w)}, nil
}

// InitialPose places the camera at the given distance from the origin
// along the negative Z axis, looking at the origin, then applies an X-axis
// tilt by the negated elevation angle. In the Y-down camera convention a
// positive elevation puts the viewpoint above the scene.
func InitialPose(elevationDeg, radius float64) (Pose, error) {
	base := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, -radius,
		0, 0, 0, 1,
	})

	var c2w mat.Dense
	c2w.Mul(rotation.Theta(-elevationDeg), base)
	return PoseFromC2W(&c2w)
}
