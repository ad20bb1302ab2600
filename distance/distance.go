// Package distance provides the pairwise distance metrics shared by the
// instance-based and clustering algorithms. Every function is pure and
// holds no state, so independent model evaluations may call them
// concurrently.
package distance

import (
	"math"
	"strings"

	"github.com/PraneethV-cmd/neuroflow-ide/pkg/errors"
)

// Metric enumerates the supported distance metrics. Resolving a metric
// from its external name happens at construction time via Parse, so an
// invalid name never reaches a fit loop.
type Metric int

const (
	Euclidean Metric = iota
	Manhattan
	Minkowski
	Chebyshev
	Cosine
)

// DefaultMinkowskiP is the order used for Minkowski when the caller does
// not specify one.
const DefaultMinkowskiP = 3.0

// Func computes a non-negative distance between two equal-length vectors.
type Func func(a, b []float64) float64

var metricNames = map[string]Metric{
	"euclidean": Euclidean,
	"manhattan": Manhattan,
	"minkowski": Minkowski,
	"chebyshev": Chebyshev,
	"cosine":    Cosine,
}

// Parse resolves a metric name, ignoring case and surrounding
// whitespace. Unknown names return a ValueError.
func Parse(name string) (Metric, error) {
	m, ok := metricNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Euclidean, errors.NewValueError("distance.Parse", "unknown distance metric: "+name)
	}
	return m, nil
}

// String returns the external name of the metric.
func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	case Minkowski:
		return "minkowski"
	case Chebyshev:
		return "chebyshev"
	case Cosine:
		return "cosine"
	}
	return "unknown"
}

// Func resolves the metric to its distance function. p is only consulted
// for Minkowski; pass DefaultMinkowskiP when in doubt.
func (m Metric) Func(p float64) Func {
	switch m {
	case Manhattan:
		return ManhattanDistance
	case Minkowski:
		return func(a, b []float64) float64 { return MinkowskiDistance(a, b, p) }
	case Chebyshev:
		return ChebyshevDistance
	case Cosine:
		return CosineDistance
	default:
		return EuclideanDistance
	}
}

// EuclideanDistance is the L2 distance.
func EuclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// ManhattanDistance is the L1 distance.
func ManhattanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// MinkowskiDistance is the Lp distance. p=1 reproduces Manhattan and
// p=2 Euclidean; the p→∞ limit is Chebyshev but is not special-cased.
func MinkowskiDistance(a, b []float64, p float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), p)
	}
	return math.Pow(sum, 1/p)
}

// ChebyshevDistance is the L∞ distance.
func ChebyshevDistance(a, b []float64) float64 {
	var max float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}
	return max
}

// CosineDistance is 1 minus the cosine similarity. When either vector
// has zero norm the similarity is undefined and the maximum distance
// 1.0 is returned.
func CosineDistance(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 1.0
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
