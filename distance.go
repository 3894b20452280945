package gnp

import (
	"fmt"
	"math"
)

// DistanceMetric provides point-to-point distance computation with optional
// reduced distance (e.g., squared Euclidean skips sqrt).
type DistanceMetric interface {
	Distance(a, b []float64) float64
	ReducedDistance(a, b []float64) float64
}

// RangeMetric bounds the squared distance between any point of one region
// and any point of another. Implementations must be deterministic and
// return 0 <= Lo <= Hi.
type RangeMetric interface {
	RangeDistanceSq(a, b Bound) Range
}

// EuclideanMetric computes the Euclidean (L2) distance.
// ReducedDistance returns squared Euclidean distance (skips sqrt).
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return math.Sqrt(euclideanSumOfSquares(a, b))
}

func (EuclideanMetric) ReducedDistance(a, b []float64) float64 {
	return euclideanSumOfSquares(a, b)
}

// RangeDistanceSq for boxes sums the squared per-dimension gaps and spans
// directly, so no sqrt/square round trip loses precision.
func (m EuclideanMetric) RangeDistanceSq(a, b Bound) Range {
	if ra, rb, ok := rectPair(a, b); ok {
		var lo, hi float64
		for j := range ra.Min {
			g, s := axisGapSpan(ra, rb, j)
			lo += g * g
			hi += s * s
		}
		return Range{Lo: lo, Hi: hi}
	}
	return ballRangeDistanceSq(m, a, b)
}

func euclideanSumOfSquares(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

func (m ManhattanMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }

func (m ManhattanMetric) RangeDistanceSq(a, b Bound) Range {
	if ra, rb, ok := rectPair(a, b); ok {
		var lo, hi float64
		for j := range ra.Min {
			g, s := axisGapSpan(ra, rb, j)
			lo += g
			hi += s
		}
		return Range{Lo: lo * lo, Hi: hi * hi}
	}
	return ballRangeDistanceSq(m, a, b)
}

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	var maxVal float64
	for i := range a {
		if v := math.Abs(a[i] - b[i]); v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

func (m ChebyshevMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }

func (m ChebyshevMetric) RangeDistanceSq(a, b Bound) Range {
	if ra, rb, ok := rectPair(a, b); ok {
		var lo, hi float64
		for j := range ra.Min {
			g, s := axisGapSpan(ra, rb, j)
			lo = math.Max(lo, g)
			hi = math.Max(hi, s)
		}
		return Range{Lo: lo * lo, Hi: hi * hi}
	}
	return ballRangeDistanceSq(m, a, b)
}

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be >= 1. Panics if P < 1.
// ReducedDistance returns sum(|a[i]-b[i]|^P) without the final root.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	return math.Pow(m.rawSum(a, b), 1.0/m.P)
}

func (m MinkowskiMetric) ReducedDistance(a, b []float64) float64 {
	return m.rawSum(a, b)
}

func (m MinkowskiMetric) rawSum(a, b []float64) float64 {
	m.checkP()
	var sum float64
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), m.P)
	}
	return sum
}

func (m MinkowskiMetric) checkP() {
	if m.P < 1 {
		panic("gnp: MinkowskiMetric: P must be >= 1")
	}
}

func (m MinkowskiMetric) RangeDistanceSq(a, b Bound) Range {
	if ra, rb, ok := rectPair(a, b); ok {
		m.checkP()
		var lo, hi float64
		for j := range ra.Min {
			g, s := axisGapSpan(ra, rb, j)
			lo += math.Pow(g, m.P)
			hi += math.Pow(s, m.P)
		}
		lo = math.Pow(lo, 1.0/m.P)
		hi = math.Pow(hi, 1.0/m.P)
		return Range{Lo: lo * lo, Hi: hi * hi}
	}
	return ballRangeDistanceSq(m, a, b)
}

// axisGapSpan returns, along dimension j, the smallest and largest possible
// coordinate difference between a point of a and a point of b. Both are
// symmetric in a and b.
func axisGapSpan(a, b HRect, j int) (gap, span float64) {
	d1 := a.Min[j] - b.Max[j]
	d2 := b.Min[j] - a.Max[j]
	gap = math.Max(d1, math.Max(d2, 0))
	span = math.Max(a.Max[j]-b.Min[j], b.Max[j]-a.Min[j])
	return gap, span
}

// rectPair reports whether both bounds are boxes. Mixing a box with a ball
// is a programming error.
func rectPair(a, b Bound) (HRect, HRect, bool) {
	ra, okA := a.(HRect)
	rb, okB := b.(HRect)
	if okA != okB {
		panic(fmt.Sprintf("gnp: cannot bound %T against %T", a, b))
	}
	if okA && len(ra.Min) != len(rb.Min) {
		panic(fmt.Sprintf("gnp: dimension mismatch %d != %d", len(ra.Min), len(rb.Min)))
	}
	return ra, rb, okA
}

// ballRangeDistanceSq brackets two balls by the triangle inequality:
// centre distance minus and plus both radii.
func ballRangeDistanceSq(m DistanceMetric, a, b Bound) Range {
	ba, okA := a.(Ball)
	bb, okB := b.(Ball)
	if !okA || !okB {
		panic(fmt.Sprintf("gnp: unsupported bound pair %T, %T", a, b))
	}
	c := m.Distance(ba.Center, bb.Center)
	r := ba.Radius + bb.Radius
	lo := math.Max(c-r, 0)
	hi := c + r
	return Range{Lo: lo * lo, Hi: hi * hi}
}

// ComputePairwiseDistances computes the full n*n distance matrix.
// data is flat row-major with n rows and dims columns.
// Returns flat []float64 of length n*n.
func ComputePairwiseDistances(data []float64, n, dims int, metric DistanceMetric) []float64 {
	result := make([]float64, n*n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := metric.Distance(data[i*dims:(i+1)*dims], data[j*dims:(j+1)*dims])
			result[i*n+j] = d
			result[j*n+i] = d
		}
	}

	return result
}
