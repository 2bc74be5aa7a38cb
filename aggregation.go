package kmeans

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// ErrEmptyAggregate is returned when an aggregator is given no elements.
// Cluster never calls an aggregator with an empty bin.
var ErrEmptyAggregate = errors.New("cannot aggregate an empty set")

// Aggregator turns a non-empty set of elements into one representative
// element, the new centroid of a cluster. It must not modify its input, and
// the result must not share storage with it: Cluster also builds seeded
// centroids by aggregating a single element.
type Aggregator[E any] func(elements []E) (E, error)

// Mean computes the component-wise arithmetic mean of vectors.
//
// Returns:
//   - ErrEmptyAggregate if vectors is empty
//   - ErrDimensionMismatch if the vectors differ in dimension
func Mean(vectors []Vector) (Vector, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyAggregate
	}

	dim := len(vectors[0])
	sum := make(Vector, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, ErrDimensionMismatch
		}
		floats.Add(sum, v)
	}
	floats.Scale(1/float64(len(vectors)), sum)
	return sum, nil
}
