package curve

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

// minSmoothPoints is the minimum control count for a cubic fit
const minSmoothPoints = 4

const (
	logAlphaMin = -28.0 // ~1e-12, effectively interpolating
	logAlphaMax = 28.0  // ~1e12, effectively a straight line
	bisectIters = 100
)

// fitSmoothing fits a cubic to the data within a residual budget equal to
// the number of points. A bare least-squares cubic is tried first; only
// when its residual exceeds the budget does the penalized natural spline
// take over, with its penalty weight tuned until the residual meets the
// budget.
func fitSmoothing(xs, ys []float64) (interp.Predictor, error) {
	target := float64(len(ys))

	cubic, rss, err := fitCubic(xs, ys)
	if err != nil {
		return nil, err
	}
	if rss <= target {
		return cubic, nil
	}
	return fitPenalized(xs, ys, target)
}

// cubicPoly is a least-squares cubic polynomial, the knot-free limit of the
// smoothing fit
type cubicPoly struct {
	c [4]float64
}

// Predict evaluates the polynomial at x
func (p *cubicPoly) Predict(x float64) float64 {
	return p.c[0] + x*(p.c[1]+x*(p.c[2]+x*p.c[3]))
}

func fitCubic(xs, ys []float64) (*cubicPoly, float64, error) {
	n := len(xs)
	a := mat.NewDense(n, 4, nil)
	for i, x := range xs {
		a.Set(i, 0, 1)
		a.Set(i, 1, x)
		a.Set(i, 2, x*x)
		a.Set(i, 3, x*x*x)
	}
	y := mat.NewVecDense(n, append([]float64(nil), ys...))

	var c mat.VecDense
	if err := c.SolveVec(a, y); err != nil {
		return nil, 0, errors.Wrap(err, "least-squares cubic fit")
	}

	var p cubicPoly
	for i := 0; i < 4; i++ {
		p.c[i] = c.AtVec(i)
	}

	rss := 0.0
	for i, x := range xs {
		d := ys[i] - p.Predict(x)
		rss += d * d
	}
	return &p, rss, nil
}

// smoothingSpline is a natural cubic spline described by its fitted values
// g and second derivatives gamma at the knots. The second derivative is
// zero at both boundary knots.
type smoothingSpline struct {
	xs    []float64
	g     []float64
	gamma []float64
}

// Predict evaluates the spline at x, which must lie within the knot range
func (s *smoothingSpline) Predict(x float64) float64 {
	n := len(s.xs)
	j := sort.SearchFloat64s(s.xs, x)
	if j > 0 {
		j--
	}
	if j > n-2 {
		j = n - 2
	}
	h := s.xs[j+1] - s.xs[j]
	a := (s.xs[j+1] - x) / h
	b := (x - s.xs[j]) / h
	return a*s.g[j] + b*s.g[j+1] +
		((a*a*a-a)*s.gamma[j]+(b*b*b-b)*s.gamma[j+1])*h*h/6
}

// splineSystem holds the matrices of the penalized natural-spline problem.
// With Q the second-difference operator and R the curvature Gram matrix,
// the fitted values solve (I + alpha*Q*R^-1*Q^T) g = y and the interior
// second derivatives are R^-1*Q^T g.
type splineSystem struct {
	xs []float64
	q  *mat.Dense // n x (n-2)
	r  *mat.Dense // (n-2) x (n-2)
	k  *mat.Dense // n x n curvature penalty Q R^-1 Q^T
}

func newSplineSystem(xs []float64) (*splineSystem, error) {
	n := len(xs)
	m := n - 2

	h := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = xs[i+1] - xs[i]
	}

	q := mat.NewDense(n, m, nil)
	r := mat.NewDense(m, m, nil)
	for j := 0; j < m; j++ {
		// column j belongs to interior knot j+1
		q.Set(j, j, 1/h[j])
		q.Set(j+1, j, -1/h[j]-1/h[j+1])
		q.Set(j+2, j, 1/h[j+1])
		r.Set(j, j, (h[j]+h[j+1])/3)
		if j+1 < m {
			r.Set(j, j+1, h[j+1]/6)
			r.Set(j+1, j, h[j+1]/6)
		}
	}

	var x mat.Dense
	if err := x.Solve(r, q.T()); err != nil {
		return nil, errors.Wrap(err, "factor curvature system")
	}
	var k mat.Dense
	k.Mul(q, &x)

	return &splineSystem{xs: xs, q: q, r: r, k: &k}, nil
}

// solve fits values for one penalty weight and reports the residual
func (s *splineSystem) solve(alpha float64, ys []float64) (*mat.VecDense, float64, error) {
	n := len(s.xs)
	a := mat.NewDense(n, n, nil)
	a.Scale(alpha, s.k)
	for i := 0; i < n; i++ {
		a.Set(i, i, a.At(i, i)+1)
	}

	y := mat.NewVecDense(n, append([]float64(nil), ys...))
	var g mat.VecDense
	if err := g.SolveVec(a, y); err != nil {
		return nil, 0, errors.Wrap(err, "solve smoothing system")
	}

	rss := 0.0
	for i := 0; i < n; i++ {
		d := ys[i] - g.AtVec(i)
		rss += d * d
	}
	return &g, rss, nil
}

// gammas recovers the interior second derivatives for fitted values g
func (s *splineSystem) gammas(g *mat.VecDense) ([]float64, error) {
	var qg mat.VecDense
	qg.MulVec(s.q.T(), g)

	var gm mat.VecDense
	if err := gm.SolveVec(s.r, &qg); err != nil {
		return nil, errors.Wrap(err, "recover spline curvature")
	}

	out := make([]float64, len(s.xs))
	for i := 0; i < gm.Len(); i++ {
		out[i+1] = gm.AtVec(i)
	}
	return out, nil
}

// fitPenalized tunes the penalty weight by bisection until the residual
// meets the target. The residual grows monotonically with the weight, from
// zero at the interpolating limit up to the straight-line residual, which
// exceeds the target whenever the bare cubic's residual does.
func fitPenalized(xs, ys []float64, target float64) (*smoothingSpline, error) {
	sys, err := newSplineSystem(xs)
	if err != nil {
		return nil, err
	}

	lo, hi := logAlphaMin, logAlphaMax
	var g *mat.VecDense
	for i := 0; i < bisectIters; i++ {
		mid := (lo + hi) / 2
		fitted, rss, err := sys.solve(math.Exp(mid), ys)
		if err != nil {
			return nil, err
		}
		g = fitted
		if math.Abs(rss-target) <= 1e-9*target {
			break
		}
		if rss < target {
			lo = mid
		} else {
			hi = mid
		}
	}

	gamma, err := sys.gammas(g)
	if err != nil {
		return nil, err
	}

	gs := make([]float64, g.Len())
	for i := range gs {
		gs[i] = g.AtVec(i)
	}
	return &smoothingSpline{
		xs:    append([]float64(nil), xs...),
		g:     gs,
		gamma: gamma,
	}, nil
}
