package curve

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"
)

// Mode selects how control points are fitted before resampling
type Mode string

const (
	// ModeSmooth fits a cubic smoothing spline through the control points
	ModeSmooth Mode = "smooth"
	// ModeLinear connects the control points piecewise-linearly
	ModeLinear Mode = "linear"
)

var (
	// ErrUnsupportedMode is returned for a mode other than smooth or linear
	ErrUnsupportedMode = errors.New("unsupported interpolation mode")
	// ErrInvalidParameters is returned for degenerate control data
	ErrInvalidParameters = errors.New("invalid interpolation parameters")
)

// Resample fits the control sequence to a continuous curve over the
// normalized domain [0,1] and samples it at n evenly spaced parameter
// values. The control points themselves are placed at evenly spaced
// parameters over the same domain.
//
// ModeLinear reproduces the control points exactly. ModeSmooth trades
// fidelity for smoothness: the fitted curve keeps its residual sum of
// squares within a budget equal to the number of control points, so it
// generally does not pass through them (including the endpoints).
// ModeSmooth needs at least 4 control points for a cubic fit.
func Resample(control []float64, n int, mode Mode) ([]float64, error) {
	if len(control) < 2 {
		return nil, errors.Wrapf(ErrInvalidParameters, "need at least 2 control points, got %d", len(control))
	}
	if n < 2 {
		return nil, errors.Wrapf(ErrInvalidParameters, "need at least 2 samples, got %d", n)
	}

	xs := linspace(0, 1, len(control))

	var f interp.Predictor
	switch mode {
	case ModeSmooth:
		if len(control) < minSmoothPoints {
			return nil, errors.Wrapf(ErrInvalidParameters,
				"smooth mode needs at least %d control points, got %d", minSmoothPoints, len(control))
		}
		fitted, err := fitSmoothing(xs, control)
		if err != nil {
			return nil, err
		}
		f = fitted
	case ModeLinear:
		var pl interp.PiecewiseLinear
		if err := pl.Fit(xs, control); err != nil {
			return nil, errors.Wrap(err, "fit piecewise-linear curve")
		}
		f = &pl
	default:
		return nil, errors.Wrapf(ErrUnsupportedMode, "mode %q", string(mode))
	}

	out := make([]float64, n)
	for i, x := range linspace(0, 1, n) {
		out[i] = f.Predict(x)
	}
	return out, nil
}

// linspace returns n evenly spaced values from a to b inclusive
func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b
	return out
}
