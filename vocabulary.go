package kmeans

import (
	"cmp"
	"errors"
	"math"
	"slices"
)

var (
	// ErrEmptyVocabulary is returned when trimming leaves no terms, or the corpus has none.
	ErrEmptyVocabulary = errors.New("vocabulary is empty")

	// ErrInvalidTrimPercent is returned when the trim percentage is outside [0, 100).
	ErrInvalidTrimPercent = errors.New("trim percent must be in [0, 100)")
)

// Frequencies maps a term to its raw count in one document.
type Frequencies map[string]int

// Vocabulary is the ordered set of terms shared by every vector of a corpus.
// Position i of every Vector built against a Vocabulary holds the weight of
// Terms()[i]. A Vocabulary is immutable once built.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// BuildVocabulary derives the vocabulary of a corpus.
//
// Terms are ranked by their total count across the corpus (ascending, ties
// broken by the term itself). The lowest and highest trimPercent/2 percent of
// the ranked terms are discarded, rounding the number dropped at each end
// down. The surviving terms keep their rank order.
//
// Vectors are only comparable when built against the same Vocabulary; building
// a new one for a different document set invalidates vectors built before.
//
// Returns:
//   - ErrInvalidTrimPercent if trimPercent is outside [0, 100)
//   - ErrEmptyVocabulary if no term survives
func BuildVocabulary(corpus []Frequencies, trimPercent float64) (*Vocabulary, error) {
	if math.IsNaN(trimPercent) || trimPercent < 0 || trimPercent >= 100 {
		return nil, ErrInvalidTrimPercent
	}

	totals := make(map[string]int)
	for _, doc := range corpus {
		for term, count := range doc {
			if count > 0 {
				totals[term] += count
			}
		}
	}

	type termTotal struct {
		term  string
		total int
	}
	ranked := make([]termTotal, 0, len(totals))
	for term, total := range totals {
		ranked = append(ranked, termTotal{term, total})
	}
	slices.SortFunc(ranked, func(a, b termTotal) int {
		if c := cmp.Compare(a.total, b.total); c != 0 {
			return c
		}
		return cmp.Compare(a.term, b.term)
	})

	drop := int(float64(len(ranked)) * trimPercent / 100 / 2)
	kept := ranked[drop : len(ranked)-drop]
	if len(kept) == 0 {
		return nil, ErrEmptyVocabulary
	}

	v := &Vocabulary{
		terms: make([]string, len(kept)),
		index: make(map[string]int, len(kept)),
	}
	for i, tt := range kept {
		v.terms[i] = tt.term
		v.index[tt.term] = i
	}
	return v, nil
}

// Len returns the number of terms, i.e. the dimension of vectors built from v.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Terms returns a copy of the ordered terms.
func (v *Vocabulary) Terms() []string {
	return slices.Clone(v.terms)
}

// Index returns the vector position of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// IDF computes inverse document frequency weights for the vocabulary terms:
// log(N / df) where N is the number of documents in corpus and df the number
// of them with a positive count for the term. Terms no document contains get
// weight 0. The result is suitable as the weights argument of Vectorize.
func (v *Vocabulary) IDF(corpus []Frequencies) []float64 {
	df := make([]int, len(v.terms))
	for _, doc := range corpus {
		for term, count := range doc {
			if count <= 0 {
				continue
			}
			if i, ok := v.index[term]; ok {
				df[i]++
			}
		}
	}

	weights := make([]float64, len(v.terms))
	n := float64(len(corpus))
	for i, d := range df {
		if d > 0 {
			weights[i] = math.Log(n / float64(d))
		}
	}
	return weights
}
