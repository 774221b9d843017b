package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResampleLinear(t *testing.T) {
	tests := []struct {
		name    string
		control []float64
		n       int
		want    []float64
	}{
		{"two points to five", []float64{0, 1}, 5, []float64{0, 0.25, 0.5, 0.75, 1.0}},
		{"radius ramp", []float64{0, 0.2}, 5, []float64{0, 0.05, 0.1, 0.15, 0.2}},
		{"triangle", []float64{0, 10, 0}, 5, []float64{0, 5, 10, 5, 0}},
		{"identity", []float64{3, 1, 4, 1}, 4, []float64{3, 1, 4, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resample(tt.control, tt.n, ModeLinear)
			require.NoError(t, err)
			require.Len(t, got, tt.n)
			for i, want := range tt.want {
				assert.InDelta(t, want, got[i], 1e-12, "sample %d", i)
			}
		})
	}
}

func TestResampleSmoothStraightLine(t *testing.T) {
	// Collinear control points admit an exact cubic fit, so smoothing
	// must reproduce the line
	control := []float64{0, 1.0 / 3, 2.0 / 3, 1}

	got, err := Resample(control, 9, ModeSmooth)
	require.NoError(t, err)
	require.Len(t, got, 9)

	for i, g := range got {
		assert.InDelta(t, float64(i)/8, g, 1e-8, "sample %d", i)
	}
}

func TestResampleSmoothTracksControl(t *testing.T) {
	// The residual budget is len(control), so the fitted value at every
	// control parameter stays within sqrt(len(control)) of the control value
	tests := []struct {
		name    string
		control []float64
	}{
		{"phi dip", []float64{0, -5, -25, -30, -20, -8, 0}},
		{"theta wave", []float64{0, -8, -12, -20, -17, -12, -5, -2, 1, 5, 3, 1, 0}},
		{"shallow dip", []float64{0, -0.03, -0.1, -0.2, -0.17, -0.1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resample(tt.control, len(tt.control), ModeSmooth)
			require.NoError(t, err)
			require.Len(t, got, len(tt.control))

			budget := math.Sqrt(float64(len(tt.control)))
			for i, want := range tt.control {
				assert.InDelta(t, want, got[i], budget+1e-6, "sample %d", i)
			}
		})
	}
}

func TestResampleSmoothLengths(t *testing.T) {
	control := []float64{0, -5, -25, -30, -20, -8, 0}

	for _, n := range []int{2, 13, 49} {
		got, err := Resample(control, n, ModeSmooth)
		require.NoError(t, err)
		assert.Len(t, got, n)
		for i, g := range got {
			assert.False(t, math.IsNaN(g) || math.IsInf(g, 0), "sample %d of %d is not finite", i, n)
		}
	}
}

func TestResampleErrors(t *testing.T) {
	tests := []struct {
		name    string
		control []float64
		n       int
		mode    Mode
		want    error
	}{
		{"unknown mode", []float64{0, 1, 2, 3}, 5, Mode("cubic"), ErrUnsupportedMode},
		{"smooth needs four points", []float64{0, 1, 2}, 5, ModeSmooth, ErrInvalidParameters},
		{"one control point", []float64{1}, 5, ModeLinear, ErrInvalidParameters},
		{"one sample", []float64{0, 1}, 1, ModeLinear, ErrInvalidParameters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resample(tt.control, tt.n, tt.mode)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, got)
		})
	}
}
