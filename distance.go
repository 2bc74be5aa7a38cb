package kmeans

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrUnknownMetricKind is returned when an unknown metric kind is provided to NewMetric.
var ErrUnknownMetricKind = errors.New("unknown metric kind")

// ErrDimensionMismatch is returned when two elements (or an element and a
// weight table) do not share the same dimension.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// ErrInvalidDistance is returned when a metric produces a negative or NaN value.
var ErrInvalidDistance = errors.New("metric returned a negative or NaN distance")

// MetricKind names one of the built-in dissimilarity metrics over Vector.
//
// Every metric in this package is a distance: smaller values mean closer
// elements, identical elements are at distance 0, and the engine always
// minimizes it. This holds for both nearest-centroid assignment and the
// convergence error sum.
type MetricKind string

const (
	// Cosine distance is 1 - cosine similarity.
	// Formula: 1 - (dot(a,b) / (||a|| * ||b||))
	// Range: [0, 2] where 0 = same direction, 1 = orthogonal, 2 = opposite.
	// This is the default metric for document vectors.
	Cosine MetricKind = "cosine"

	// Euclidean (L2) distance between two points.
	// Formula: sqrt(sum((a[i] - b[i])^2))
	Euclidean MetricKind = "l2"

	// SquaredEuclidean distance skips the sqrt; ordering is preserved.
	// Formula: sum((a[i] - b[i])^2)
	SquaredEuclidean MetricKind = "l2_squared"
)

// Metric computes the dissimilarity between two elements.
//
// Implementations must be pure and symmetric, return a non-negative value,
// return 0 for metric(a, a), and fail with ErrDimensionMismatch when the
// elements have different dimensions.
type Metric[E any] func(a, b E) (float64, error)

// NewMetric returns the built-in Vector metric for the given kind.
// Returns ErrUnknownMetricKind if the kind is not recognized.
//
// Example:
//
//	metric, err := NewMetric(Cosine)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d, err := metric(v1, v2)
func NewMetric(kind MetricKind) (Metric[Vector], error) {
	switch kind {
	case Cosine:
		return CosineMetric, nil
	case Euclidean:
		return EuclideanMetric, nil
	case SquaredEuclidean:
		return SquaredEuclideanMetric, nil
	default:
		return nil, ErrUnknownMetricKind
	}
}

// CosineMetric computes the cosine distance between two vectors.
//
// The norms are computed rather than assumed to be 1: centroids produced by
// Mean are generally not unit length even when every input is. Components are
// divided by their norm before the products are summed, so vectors with tiny
// components neither underflow to 0/0 nor collapse to distance 0. Equal
// vectors are at distance exactly 0.
// Returns ErrZeroNormVector if either vector has zero magnitude.
//
// Time complexity: O(n) where n is the vector dimension
func CosineMetric(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0, ErrZeroNormVector
	}
	if floats.Equal(a, b) {
		return 0, nil
	}

	var sim float64
	for i := range a {
		sim += (a[i] / na) * (b[i] / nb)
	}

	// Clamp to [-1, 1] to handle floating point precision errors
	if sim > 1 {
		sim = 1
	} else if sim < -1 {
		sim = -1
	}

	return 1 - sim, nil
}

// EuclideanMetric computes the Euclidean (L2) distance between two vectors.
func EuclideanMetric(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	return floats.Distance(a, b, 2), nil
}

// SquaredEuclideanMetric computes the squared Euclidean distance between two vectors.
// Cheaper than EuclideanMetric and preserves the ordering of distances.
// Summed directly rather than squaring floats.Distance, which rounds through a sqrt.
func SquaredEuclideanMetric(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum, nil
}

// measure calls metric and rejects values no distance can take.
func measure[E any](metric Metric[E], a, b E) (float64, error) {
	d, err := metric(a, b)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(d) || d < 0 {
		return 0, ErrInvalidDistance
	}
	return d, nil
}

// squared returns metric(a, b)^2. Used by kmeans++ seeding to weigh candidates.
func squared[E any](metric Metric[E], a, b E) (float64, error) {
	d, err := measure(metric, a, b)
	if err != nil {
		return 0, err
	}
	return d * d, nil
}
