package camera

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/campath/internal/curve"
	"github.com/ivlev/campath/internal/rotation"
	"github.com/ivlev/campath/internal/trajectory"
)

var (
	// ErrUnsupportedTrajectory is returned when an archetype's family has
	// no path-building rule
	ErrUnsupportedTrajectory = errors.New("unsupported trajectory")
	// ErrInvalidParameters is returned for a violated build precondition
	ErrInvalidParameters = errors.New("invalid path parameters")
)

// Path is a synthesized camera trajectory: aligned per-frame sequences of
// world-to-camera transforms, camera-to-world transforms and intrinsics.
// The caller owns the path; the builder keeps no state.
type Path struct {
	W2Cs       []*mat.Dense
	C2Ws       []*mat.Dense
	Intrinsics []*mat.Dense
}

// frameDeltas hold the per-frame adjustments relative to the initial pose.
// Entry i drives frame i+1; for the swing families the sequences carry one
// trailing entry that no frame consumes.
type frameDeltas struct {
	thetas  []float64    // elevation deltas, degrees
	phis    []float64    // azimuth deltas, degrees
	radii   []float64    // translation scale per frame
	offsets [][3]float64 // world-space position offsets; empty for swing
}

// BuildPath synthesizes the full camera path for one archetype. Every
// frame is derived from the initial pose, never from the previous frame:
// frame i applies Phi(phi_i) * Theta(theta_i) to the initial
// camera-to-world transform, shifts and scales its translation, and
// recovers world-to-camera by inversion. Frame 0 is the initial pose and
// intrinsic unchanged.
//
// The intrinsics argument is either a single 3x3 matrix, repeated for all
// frames, or one matrix per frame. Supplied matrices are copied, never
// written. The focal length of frames 1..nframe-1 is blended toward
// focalLength with the frame index; with focalLength 1 the intrinsics stay
// constant.
func BuildPath(arch trajectory.Archetype, initial Pose, intrinsics []*mat.Dense, nframe int, focalLength, radius float64) (*Path, error) {
	if nframe < 2 {
		return nil, errors.Wrapf(ErrInvalidParameters, "need at least 2 frames, got %d", nframe)
	}

	var deltas frameDeltas
	switch arch.Family {
	case trajectory.FamilyFree:
		deltas = freeDeltas(arch.Free, nframe, radius)
	case trajectory.FamilySwing1, trajectory.FamilySwing2:
		var err error
		deltas, err = swingDeltas(arch, nframe)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(ErrUnsupportedTrajectory, "family %s", arch.Family)
	}

	ks, err := broadcastIntrinsics(intrinsics, nframe)
	if err != nil {
		return nil, err
	}

	path := &Path{
		W2Cs:       make([]*mat.Dense, 0, nframe),
		C2Ws:       make([]*mat.Dense, 0, nframe),
		Intrinsics: ks,
	}
	path.W2Cs = append(path.W2Cs, mat.DenseCopyOf(initial.W2C))
	path.C2Ws = append(path.C2Ws, mat.DenseCopyOf(initial.C2W))

	for i := 0; i < nframe-1; i++ {
		var tilted, c2w mat.Dense
		tilted.Mul(rotation.Theta(deltas.thetas[i]), initial.C2W)
		c2w.Mul(rotation.Phi(deltas.phis[i]), &tilted)

		if i < len(deltas.offsets) {
			off := deltas.offsets[i]
			c2w.Set(0, 3, c2w.At(0, 3)+off[0])
			c2w.Set(1, 3, c2w.At(1, 3)+off[1])
			c2w.Set(2, 3, c2w.At(2, 3)+off[2])
		}
		for r := 0; r < 3; r++ {
			c2w.Set(r, 3, c2w.At(r, 3)*deltas.radii[i])
		}

		var w2c mat.Dense
		if err := w2c.Inverse(&c2w); err != nil {
			return nil, errors.Wrapf(err, "invert pose for frame %d", i+1)
		}

		path.C2Ws = append(path.C2Ws, &c2w)
		path.W2Cs = append(path.W2Cs, &w2c)

		blendFocal(ks[i+1], focalLength, i+1, nframe)
	}

	return path, nil
}

// freeDeltas builds linear ramps from the single total deltas. Angles and
// radius scale with i/(nframe-1) and reach their target on the last frame;
// the positional offsets scale with i/nframe and stop short of it. The
// mismatched denominators are deliberate and covered by a regression test.
func freeDeltas(p trajectory.FreeParams, nframe int, radius float64) frameDeltas {
	n := nframe - 1
	d := frameDeltas{
		thetas:  make([]float64, n),
		phis:    make([]float64, n),
		radii:   make([]float64, n),
		offsets: make([][3]float64, n),
	}
	for i := 0; i < n; i++ {
		coef := float64(i+1) / float64(nframe-1)
		d.thetas[i] = p.DeltaTheta * coef
		d.phis[i] = p.DeltaPhi * coef
		d.radii[i] = coef*p.DeltaRadius + (1-coef)*1.0

		oc := float64(i+1) / float64(nframe)
		d.offsets[i] = [3]float64{
			radius * p.XOffset * oc,
			radius * p.YOffset * oc,
			radius * p.ZOffset * oc,
		}
	}
	return d
}

// swingDeltas resamples the archetype's keyframe tables to the frame
// count. The smoothed angle curves drift at the ends, so their first and
// last samples are clamped back to the authored keyframes. Radius
// keyframes are scale offsets from unity.
func swingDeltas(arch trajectory.Archetype, nframe int) (frameDeltas, error) {
	radiusMode := curve.ModeLinear
	if arch.Family == trajectory.FamilySwing2 {
		radiusMode = curve.ModeSmooth
	}

	phis, err := curve.Resample(arch.Swing.Phis, nframe, curve.ModeSmooth)
	if err != nil {
		return frameDeltas{}, errors.Wrapf(err, "resample %s phi keyframes", arch.Name)
	}
	phis[0] = arch.Swing.Phis[0]
	phis[nframe-1] = arch.Swing.Phis[len(arch.Swing.Phis)-1]

	thetas, err := curve.Resample(arch.Swing.Thetas, nframe, curve.ModeSmooth)
	if err != nil {
		return frameDeltas{}, errors.Wrapf(err, "resample %s theta keyframes", arch.Name)
	}
	thetas[0] = arch.Swing.Thetas[0]
	thetas[nframe-1] = arch.Swing.Thetas[len(arch.Swing.Thetas)-1]

	radii, err := curve.Resample(arch.Swing.Radii, nframe, radiusMode)
	if err != nil {
		return frameDeltas{}, errors.Wrapf(err, "resample %s radius keyframes", arch.Name)
	}
	for i := range radii {
		radii[i] += 1.0
	}

	return frameDeltas{thetas: thetas, phis: phis, radii: radii}, nil
}

// broadcastIntrinsics deep-copies the supplied intrinsics into one matrix
// per frame
func broadcastIntrinsics(intrinsics []*mat.Dense, nframe int) ([]*mat.Dense, error) {
	ks := make([]*mat.Dense, nframe)
	switch len(intrinsics) {
	case 1:
		for i := range ks {
			ks[i] = mat.DenseCopyOf(intrinsics[0])
		}
	case nframe:
		for i := range ks {
			ks[i] = mat.DenseCopyOf(intrinsics[i])
		}
	default:
		return nil, errors.Wrapf(ErrInvalidParameters,
			"need 1 or %d intrinsic matrices, got %d", nframe, len(intrinsics))
	}
	return ks, nil
}

// blendFocal scales the top-left 2x2 focal block of k in place, blending
// between the original value and focal times it as the frame index
// advances. The principal point column and homogeneous row stay untouched.
func blendFocal(k *mat.Dense, focal float64, frame, nframe int) {
	w := (focal*float64(frame) + float64(nframe-frame)) / float64(nframe)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			k.Set(r, c, k.At(r, c)*w)
		}
	}
}
