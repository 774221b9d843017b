package scenario

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/campath/internal/camera"
)

// Version is the scenario format version written by this package
const Version = "1.0"

// Scenario records one synthesized camera path together with the inputs
// that produced it
type Scenario struct {
	Version    string  `yaml:"version"`
	Trajectory string  `yaml:"trajectory"`
	Family     string  `yaml:"family"`
	NFrame     int     `yaml:"nframe"`
	FPS        int     `yaml:"fps,omitempty"`
	Elevation  float64 `yaml:"elevation"`
	Radius     float64 `yaml:"radius"`
	Focal      float64 `yaml:"focal"`
	Frames     []Frame `yaml:"frames"`
}

// Frame is one camera sample: row-major 4x4 extrinsics and a row-major
// 3x3 intrinsic
type Frame struct {
	Index     int       `yaml:"index"`
	W2C       []float64 `yaml:"w2c,flow"`
	C2W       []float64 `yaml:"c2w,flow"`
	Intrinsic []float64 `yaml:"intrinsic,flow"`
}

// Meta carries the synthesis inputs recorded alongside the path
type Meta struct {
	Trajectory string
	Family     string
	FPS        int
	Elevation  float64
	Radius     float64
	Focal      float64
}

// FromPath flattens a camera path into a serializable scenario
func FromPath(path *camera.Path, meta Meta) *Scenario {
	s := &Scenario{
		Version:    Version,
		Trajectory: meta.Trajectory,
		Family:     meta.Family,
		NFrame:     len(path.W2Cs),
		FPS:        meta.FPS,
		Elevation:  meta.Elevation,
		Radius:     meta.Radius,
		Focal:      meta.Focal,
		Frames:     make([]Frame, len(path.W2Cs)),
	}
	for i := range path.W2Cs {
		s.Frames[i] = Frame{
			Index:     i,
			W2C:       flatten(path.W2Cs[i]),
			C2W:       flatten(path.C2Ws[i]),
			Intrinsic: flatten(path.Intrinsics[i]),
		}
	}
	return s
}

// Path rebuilds the camera path from a scenario
func (s *Scenario) Path() (*camera.Path, error) {
	path := &camera.Path{
		W2Cs:       make([]*mat.Dense, len(s.Frames)),
		C2Ws:       make([]*mat.Dense, len(s.Frames)),
		Intrinsics: make([]*mat.Dense, len(s.Frames)),
	}
	for i, f := range s.Frames {
		if len(f.W2C) != 16 || len(f.C2W) != 16 {
			return nil, errors.Errorf("frame %d: extrinsics must hold 16 values, got %d and %d",
				i, len(f.W2C), len(f.C2W))
		}
		if len(f.Intrinsic) != 9 {
			return nil, errors.Errorf("frame %d: intrinsic must hold 9 values, got %d", i, len(f.Intrinsic))
		}
		path.W2Cs[i] = mat.NewDense(4, 4, append([]float64(nil), f.W2C...))
		path.C2Ws[i] = mat.NewDense(4, 4, append([]float64(nil), f.C2W...))
		path.Intrinsics[i] = mat.NewDense(3, 3, append([]float64(nil), f.Intrinsic...))
	}
	return path, nil
}

// Filename builds the canonical scenario filename for a trajectory run
func Filename(trajectory string, nframe int) string {
	return fmt.Sprintf("%s_%df.yaml", trajectory, nframe)
}

func flatten(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}
