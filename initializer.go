package kmeans

import (
	"errors"
	"math/rand/v2"
)

var (
	// ErrInsufficientData is returned when there are fewer (distinct) elements than clusters.
	ErrInsufficientData = errors.New("fewer elements than clusters")

	// ErrInvalidK is returned when the number of clusters is not positive.
	ErrInvalidK = errors.New("k must be positive")
)

// Initializer selects the starting centroids of a run.
//
// It returns exactly k distinct indices into elements. Implementations must
// draw all randomness from rng so that a seeded run is reproducible.
type Initializer[E any] func(elements []E, k int, metric Metric[E], rng *rand.Rand) ([]int, error)

func checkSampleSize(n, k int) error {
	if k <= 0 {
		return ErrInvalidK
	}
	if n < k {
		return ErrInsufficientData
	}
	return nil
}

// UniformSampling chooses k indices uniformly at random without replacement.
// The metric is not used.
func UniformSampling[E any](elements []E, k int, _ Metric[E], rng *rand.Rand) ([]int, error) {
	if err := checkSampleSize(len(elements), k); err != nil {
		return nil, err
	}
	pool := make([]int, len(elements))
	for i := range pool {
		pool[i] = i
	}
	return sampleWithoutReplacement(pool, k, rng), nil
}

// sampleWithoutReplacement runs the first k steps of a Fisher-Yates shuffle
// over pool (which it reorders) and returns the selected prefix.
func sampleWithoutReplacement(pool []int, k int, rng *rand.Rand) []int {
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return append([]int(nil), pool[:k]...)
}

// pairKey identifies an unordered pair of element indices (lo <= hi).
type pairKey struct {
	lo, hi int
}

func newPairKey(i, j int) pairKey {
	if i > j {
		i, j = j, i
	}
	return pairKey{lo: i, hi: j}
}

// WeightedSampling chooses k indices with the kmeans++ heuristic of Arthur
// and Vassilvitskii ("k-means++: The Advantages of Careful Seeding").
//
// ALGORITHM:
//  1. Pick the first centroid uniformly at random.
//  2. For every element not chosen yet, weigh it by the squared metric
//     distance to its nearest chosen centroid.
//  3. Draw the next centroid among the unchosen elements with probability
//     proportional to its weight (roulette wheel).
//  4. Repeat 2-3 until k centroids are chosen.
//
// Metric results are memoized per unordered pair for the duration of the
// call. When every remaining weight is 0 (all candidates coincide with a
// chosen centroid) the next centroid is drawn uniformly among the unchosen.
func WeightedSampling[E any](elements []E, k int, metric Metric[E], rng *rand.Rand) ([]int, error) {
	n := len(elements)
	if err := checkSampleSize(n, k); err != nil {
		return nil, err
	}
	if metric == nil {
		return nil, ErrNilFunction
	}

	memo := make(map[pairKey]float64)
	dist2 := func(i, j int) (float64, error) {
		key := newPairKey(i, j)
		if d, ok := memo[key]; ok {
			return d, nil
		}
		d, err := squared(metric, elements[i], elements[j])
		if err != nil {
			return 0, err
		}
		memo[key] = d
		return d, nil
	}

	chosen := make([]int, 0, k)
	isChosen := make([]bool, n)
	choose := func(i int) {
		chosen = append(chosen, i)
		isChosen[i] = true
	}
	choose(rng.IntN(n))

	candidates := make([]int, 0, n)
	weights := make([]float64, 0, n)
	for len(chosen) < k {
		candidates = candidates[:0]
		weights = weights[:0]
		var total float64

		for i := 0; i < n; i++ {
			if isChosen[i] {
				continue
			}
			nearest, err := dist2(i, chosen[0])
			if err != nil {
				return nil, err
			}
			for _, c := range chosen[1:] {
				d, err := dist2(i, c)
				if err != nil {
					return nil, err
				}
				if d < nearest {
					nearest = d
				}
			}
			candidates = append(candidates, i)
			weights = append(weights, nearest)
			total += nearest
		}

		if total == 0 {
			choose(candidates[rng.IntN(len(candidates))])
			continue
		}
		choose(rouletteSelect(candidates, weights, total, rng))
	}

	return chosen, nil
}

// rouletteSelect draws one candidate with probability weights[i]/total.
// total must be positive.
func rouletteSelect(candidates []int, weights []float64, total float64, rng *rand.Rand) int {
	target := rng.Float64() * total
	last := -1
	var cum float64
	for i, w := range weights {
		if w == 0 {
			continue
		}
		cum += w
		last = candidates[i]
		if target < cum {
			return last
		}
	}
	// Rounding can leave target just past the final cumulative sum.
	return last
}
