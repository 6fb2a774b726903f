package characteristic

import (
	"errors"
	"sort"

	"github.com/san-kum/gridsim/internal/network"
)

var ErrSampleMismatch = errors.New("gridsim: x and y samples differ in length")

// Characteristic maps an input value to an output electrical value.
type Characteristic interface {
	At(x float64) float64
}

// SplineCharacteristic interpolates (x,y) samples with a natural cubic
// spline and extrapolates linearly beyond the sample hull.
type SplineCharacteristic struct {
	xs, ys []float64
	m      []float64 // second derivatives at the sample points
}

func NewSpline(xPoints, yPoints []float64) (*SplineCharacteristic, error) {
	if len(xPoints) != len(yPoints) {
		return nil, ErrSampleMismatch
	}
	if len(xPoints) == 0 {
		return nil, errors.New("gridsim: spline needs at least one sample")
	}

	xs := make([]float64, len(xPoints))
	ys := make([]float64, len(yPoints))
	copy(xs, xPoints)
	copy(ys, yPoints)
	sort.Sort(&samplePairs{xs, ys})

	s := &SplineCharacteristic{xs: xs, ys: ys}
	s.m = secondDerivatives(xs, ys)
	return s, nil
}

// XPoints returns a copy of the x samples in ascending order.
func (s *SplineCharacteristic) XPoints() []float64 {
	out := make([]float64, len(s.xs))
	copy(out, s.xs)
	return out
}

// YPoints returns a copy of the y samples, ordered like XPoints.
func (s *SplineCharacteristic) YPoints() []float64 {
	out := make([]float64, len(s.ys))
	copy(out, s.ys)
	return out
}

func (s *SplineCharacteristic) At(x float64) float64 {
	n := len(s.xs)
	if n == 1 {
		return s.ys[0]
	}
	if x <= s.xs[0] {
		return s.ys[0] + s.slope(0)*(x-s.xs[0])
	}
	if x >= s.xs[n-1] {
		return s.ys[n-1] + s.slope(n-2)*(x-s.xs[n-1])
	}

	i := sort.SearchFloat64s(s.xs, x)
	if s.xs[i] == x {
		return s.ys[i]
	}
	i--

	h := s.xs[i+1] - s.xs[i]
	a := (s.xs[i+1] - x) / h
	b := (x - s.xs[i]) / h
	return a*s.ys[i] + b*s.ys[i+1] +
		((a*a*a-a)*s.m[i]+(b*b*b-b)*s.m[i+1])*h*h/6
}

// slope is the spline derivative at the start (i=0) or end (i=n-2)
// segment boundary, used for linear extrapolation.
func (s *SplineCharacteristic) slope(i int) float64 {
	h := s.xs[i+1] - s.xs[i]
	base := (s.ys[i+1] - s.ys[i]) / h
	if i == 0 {
		return base - h*(2*s.m[0]+s.m[1])/6
	}
	return base + h*(s.m[i]+2*s.m[i+1])/6
}

// AddToNet appends the characteristic to the named registry table and
// returns the new id. A missing table is created on first use.
func (s *SplineCharacteristic) AddToNet(net *network.Net, table string) int {
	t, ok := net.Table(table)
	if !ok {
		t = net.Characteristic()
	}
	return t.Append(map[string]any{"object": s})
}

// secondDerivatives solves the natural cubic spline tridiagonal system.
func secondDerivatives(xs, ys []float64) []float64 {
	n := len(xs)
	m := make([]float64, n)
	if n < 3 {
		return m
	}

	sub := make([]float64, n)
	diag := make([]float64, n)
	sup := make([]float64, n)
	rhs := make([]float64, n)

	diag[0], diag[n-1] = 1, 1
	for i := 1; i < n-1; i++ {
		h0 := xs[i] - xs[i-1]
		h1 := xs[i+1] - xs[i]
		sub[i] = h0
		diag[i] = 2 * (h0 + h1)
		sup[i] = h1
		rhs[i] = 6 * ((ys[i+1]-ys[i])/h1 - (ys[i]-ys[i-1])/h0)
	}

	for i := 1; i < n; i++ {
		w := sub[i] / diag[i-1]
		diag[i] -= w * sup[i-1]
		rhs[i] -= w * rhs[i-1]
	}
	m[n-1] = rhs[n-1] / diag[n-1]
	for i := n - 2; i >= 0; i-- {
		m[i] = (rhs[i] - sup[i]*m[i+1]) / diag[i]
	}
	return m
}

type samplePairs struct {
	xs, ys []float64
}

func (p *samplePairs) Len() int           { return len(p.xs) }
func (p *samplePairs) Less(i, j int) bool { return p.xs[i] < p.xs[j] }
func (p *samplePairs) Swap(i, j int) {
	p.xs[i], p.xs[j] = p.xs[j], p.xs[i]
	p.ys[i], p.ys[j] = p.ys[j], p.ys[i]
}
