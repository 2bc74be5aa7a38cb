package kmeans

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// Result is the outcome of a clustering run.
type Result[E any] struct {
	// Centroids holds the k final cluster centers, in cluster order.
	Centroids []E

	// Clusters maps a cluster index to the indices of its member elements.
	// Every element index appears in exactly one bitmap.
	Clusters []*roaring.Bitmap

	// Error is the sum over all elements of the metric distance to their
	// cluster's centroid.
	Error float64

	// Iterations is the number of assign/update rounds performed.
	Iterations int

	// Converged is false when the run stopped at the iteration cap.
	Converged bool
}

// Members returns the element indices of cluster c in ascending order.
func (r *Result[E]) Members(c int) []int {
	members := make([]int, 0, r.Clusters[c].GetCardinality())
	it := r.Clusters[c].Iterator()
	for it.HasNext() {
		members = append(members, int(it.Next()))
	}
	return members
}

// Len returns the number of clustered elements.
func (r *Result[E]) Len() int {
	var n uint64
	for _, b := range r.Clusters {
		n += b.GetCardinality()
	}
	return int(n)
}

// Assignments returns, for every element index, the cluster it belongs to.
func (r *Result[E]) Assignments() []int {
	assignments := make([]int, r.Len())
	for c, b := range r.Clusters {
		it := b.Iterator()
		for it.HasNext() {
			assignments[it.Next()] = c
		}
	}
	return assignments
}

// LabelErrors scores the clustering against known element labels.
//
// For each cluster it counts the members whose label differs from the
// cluster's most frequent label (ties go to the lexicographically smallest
// label). Empty clusters score 0. The sum over clusters is the number of
// misplaced elements; 0 means every cluster is pure.
//
// Returns ErrDimensionMismatch if len(labels) differs from the number of
// clustered elements.
func (r *Result[E]) LabelErrors(labels []string) ([]int, error) {
	if len(labels) != r.Len() {
		return nil, fmt.Errorf("%w: %d labels for %d elements", ErrDimensionMismatch, len(labels), r.Len())
	}

	errs := make([]int, len(r.Clusters))
	for c, b := range r.Clusters {
		counts := make(map[string]int)
		it := b.Iterator()
		for it.HasNext() {
			counts[labels[it.Next()]]++
		}

		var majority string
		best := 0
		for label, n := range counts {
			if n > best || (n == best && label < majority) {
				majority, best = label, n
			}
		}
		errs[c] = int(b.GetCardinality()) - best
	}
	return errs, nil
}
