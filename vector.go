package kmeans

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrZeroNormVector is returned when a vector has zero magnitude where a
// direction is required (normalization, cosine distance).
var ErrZeroNormVector = errors.New("zero norm vector")

// Vector is a dense feature vector. Vectors built by Vectorize are unit
// length and have one component per Vocabulary term.
type Vector []float64

// Dim returns the number of components.
func (v Vector) Dim() int {
	return len(v)
}

// Norm returns the Euclidean (L2) norm.
func (v Vector) Norm() float64 {
	return floats.Norm(v, 2)
}

// Vectorize builds the normalized vector of one document.
//
// Component i is the document's count for vocab term i (0 when absent),
// multiplied by weights[i] when weights is non-nil (for example the result
// of Vocabulary.IDF). The raw vector is then divided by its Euclidean norm.
//
// Returns:
//   - ErrDimensionMismatch if weights is non-nil and its length differs from vocab.Len()
//   - ErrZeroNormVector if the document shares no weighted term with vocab;
//     whether to drop such documents is left to the caller
func Vectorize(vocab *Vocabulary, doc Frequencies, weights []float64) (Vector, error) {
	if weights != nil && len(weights) != vocab.Len() {
		return nil, fmt.Errorf("%w: %d weights for %d terms", ErrDimensionMismatch, len(weights), vocab.Len())
	}

	v := make(Vector, vocab.Len())
	for i, term := range vocab.terms {
		count := doc[term]
		if count <= 0 {
			continue
		}
		v[i] = float64(count)
		if weights != nil {
			v[i] *= weights[i]
		}
	}

	norm := floats.Norm(v, 2)
	if norm == 0 {
		return nil, ErrZeroNormVector
	}
	floats.Scale(1/norm, v)
	return v, nil
}

// VectorizeAll vectorizes every document of corpus in order.
// It stops at the first document that cannot be vectorized; the returned
// error wraps the cause and names the document index.
func VectorizeAll(vocab *Vocabulary, corpus []Frequencies, weights []float64) ([]Vector, error) {
	vectors := make([]Vector, len(corpus))
	for i, doc := range corpus {
		v, err := Vectorize(vocab, doc, weights)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		vectors[i] = v
	}
	return vectors, nil
}
