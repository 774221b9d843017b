package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/campath/internal/camera"
	"github.com/ivlev/campath/internal/trajectory"
)

func buildTestPath(t *testing.T, name string, nframe int) *camera.Path {
	t.Helper()
	arch, err := trajectory.Lookup(name)
	require.NoError(t, err)
	pose, err := camera.InitialPose(10, 2)
	require.NoError(t, err)
	k := mat.NewDense(3, 3, []float64{100, 0, 64, 0, 100, 36, 0, 0, 1})
	path, err := camera.BuildPath(arch, pose, []*mat.Dense{k}, nframe, 1.5, 2)
	require.NoError(t, err)
	return path
}

func TestFromPathAndBack(t *testing.T) {
	path := buildTestPath(t, "free1", 7)

	s := FromPath(path, Meta{
		Trajectory: "free1",
		Family:     "free",
		FPS:        16,
		Elevation:  10,
		Radius:     2,
		Focal:      1.5,
	})

	assert.Equal(t, Version, s.Version)
	assert.Equal(t, 7, s.NFrame)
	require.Len(t, s.Frames, 7)
	for i, f := range s.Frames {
		assert.Equal(t, i, f.Index)
		assert.Len(t, f.W2C, 16)
		assert.Len(t, f.C2W, 16)
		assert.Len(t, f.Intrinsic, 9)
	}

	rebuilt, err := s.Path()
	require.NoError(t, err)
	for i := range path.W2Cs {
		assert.True(t, mat.Equal(path.W2Cs[i], rebuilt.W2Cs[i]), "frame %d w2c", i)
		assert.True(t, mat.Equal(path.C2Ws[i], rebuilt.C2Ws[i]), "frame %d c2w", i)
		assert.True(t, mat.Equal(path.Intrinsics[i], rebuilt.Intrinsics[i]), "frame %d intrinsic", i)
	}
}

func TestWriteRead(t *testing.T) {
	path := buildTestPath(t, "swing1", 5)
	s := FromPath(path, Meta{Trajectory: "swing1", Family: "swing1", Elevation: 10, Radius: 2, Focal: 1.5})

	file := filepath.Join(t.TempDir(), Filename("swing1", 5))
	require.NoError(t, Write(s, file))

	got, err := Read(file)
	require.NoError(t, err)

	assert.Equal(t, s.Trajectory, got.Trajectory)
	assert.Equal(t, s.NFrame, got.NFrame)
	require.Len(t, got.Frames, len(s.Frames))
	for i := range s.Frames {
		assert.Equal(t, s.Frames[i].W2C, got.Frames[i].W2C, "frame %d w2c", i)
		assert.Equal(t, s.Frames[i].C2W, got.Frames[i].C2W, "frame %d c2w", i)
		assert.Equal(t, s.Frames[i].Intrinsic, got.Frames[i].Intrinsic, "frame %d intrinsic", i)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestPathRejectsMalformedFrames(t *testing.T) {
	s := &Scenario{Frames: []Frame{{W2C: []float64{1, 2, 3}, C2W: make([]float64, 16), Intrinsic: make([]float64, 9)}}}
	_, err := s.Path()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "16 values")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "orbit_49f.yaml", Filename("orbit", 49))
}
