package kmeans

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/RoaringBitmap/roaring"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNilFunction is returned when the metric, aggregator or initializer is nil.
	ErrNilFunction = errors.New("metric, aggregator and initializer must be non-nil")

	// ErrTooManyElements is returned when element indices do not fit in 32 bits.
	ErrTooManyElements = errors.New("too many elements")

	// ErrInvalidInitialization is returned when an initializer does not return
	// k distinct in-range indices.
	ErrInvalidInitialization = errors.New("initializer returned an invalid selection")
)

// Cluster partitions elements into k clusters with Lloyd's algorithm.
//
// # K-MEANS CLUSTERING ALGORITHM
//
// Each cluster is represented by its centroid. The run refines centroids and
// memberships until the total error stops improving.
//
// Algorithm Steps:
//  1. INIT: initialize picks k distinct elements as starting centroids
//  2. ASSIGN: every element joins its nearest centroid; exact ties are broken
//     uniformly at random
//  3. UPDATE: every non-empty cluster's centroid becomes aggregate(members);
//     an empty cluster is reseeded with a random element that differs from
//     every other centroid
//  4. CHECK: error = sum of metric(element, centroid) over all elements;
//     stop when previous-error < Epsilon or after MaxIterations rounds,
//     otherwise go back to 2
//
// An iteration that reseeded a centroid never counts as converged.
// Stopping at the cap is not an error: the result is returned with
// Converged set to false.
//
// REPRODUCIBILITY:
// All randomness (initialization, tie-breaking, reseeding) comes from one
// generator seeded with cfg.Seed. Identical inputs and seed give identical
// results regardless of cfg.Parallelism.
//
// TIME COMPLEXITY:
// O(iterations × k × n) metric calls plus one aggregate call per cluster and
// iteration.
//
// Parameters:
//   - ctx: checked once per iteration; cancellation returns ctx.Err()
//   - elements: the data; an element is identified by its index
//   - k: number of clusters
//   - metric: dissimilarity used for assignment, reseeding and the error sum
//   - aggregate: computes a centroid from a non-empty set of members
//   - initialize: chooses the starting centroids (UniformSampling, WeightedSampling)
//   - cfg: seed, iteration cap, threshold, parallelism and logger
//
// Returns:
//   - ErrInvalidK if k <= 0
//   - ErrInsufficientData if elements holds fewer than k distinct elements
//   - any error returned by metric, aggregate or initialize, wrapped
func Cluster[E any](
	ctx context.Context,
	elements []E,
	k int,
	metric Metric[E],
	aggregate Aggregator[E],
	initialize Initializer[E],
	cfg Config,
) (*Result[E], error) {
	// ═══════════════════════════════════════════════════════════════════════════
	// INPUT VALIDATION
	// ═══════════════════════════════════════════════════════════════════════════
	if metric == nil || aggregate == nil || initialize == nil {
		return nil, ErrNilFunction
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if uint64(len(elements)) > math.MaxUint32 {
		return nil, ErrTooManyElements
	}
	if len(elements) < k {
		return nil, ErrInsufficientData
	}

	cfg = cfg.withDefaults()
	r := &run[E]{
		elements:  elements,
		k:         k,
		metric:    metric,
		aggregate: aggregate,
		cfg:       cfg,
		rng:       cfg.newRand(),
	}

	distinct, err := r.countDistinct()
	if err != nil {
		return nil, err
	}
	if distinct < k {
		return nil, fmt.Errorf("%w: %d distinct elements for k=%d", ErrInsufficientData, distinct, k)
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// STEP 1: INITIALIZE CENTROIDS
	// ═══════════════════════════════════════════════════════════════════════════
	seeds, err := initialize(elements, k, metric, r.rng)
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	if err := r.seed(seeds); err != nil {
		return nil, err
	}

	cfg.Logger.Debug("kmeans started", "elements", len(elements), "k", k,
		"max_iterations", cfg.MaxIterations, "epsilon", cfg.Epsilon)

	// ═══════════════════════════════════════════════════════════════════════════
	// STEP 2-4: ITERATE UNTIL CONVERGENCE OR THE CAP
	// ═══════════════════════════════════════════════════════════════════════════
	previous := math.Inf(1)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.iteration++

		if err := r.assign(ctx); err != nil {
			return nil, err
		}

		reseeded, err := r.update()
		if err != nil {
			return nil, err
		}

		if r.err, err = r.totalError(); err != nil {
			return nil, err
		}

		cfg.Logger.Debug("kmeans iteration", "iteration", r.iteration, "error", r.err, "reseeded", reseeded)

		converged := reseeded == 0 && previous-r.err < cfg.Epsilon
		previous = r.err
		if converged || r.iteration >= cfg.MaxIterations {
			cfg.Logger.Info("kmeans finished", "iterations", r.iteration, "error", r.err, "converged", converged)
			return r.result(converged), nil
		}
	}
}

// run is the mutable state of one Cluster invocation.
type run[E any] struct {
	elements  []E
	k         int
	metric    Metric[E]
	aggregate Aggregator[E]
	cfg       Config
	rng       *rand.Rand

	centroids []E
	bins      []*roaring.Bitmap
	err       float64
	iteration int
}

// countDistinct counts elements at positive distance from each other,
// stopping as soon as k are found.
func (r *run[E]) countDistinct() (int, error) {
	reps := make([]int, 0, r.k)
	for i := range r.elements {
		duplicate := false
		for _, j := range reps {
			d, err := measure(r.metric, r.elements[i], r.elements[j])
			if err != nil {
				return 0, fmt.Errorf("element %d: %w", i, err)
			}
			if d == 0 {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		reps = append(reps, i)
		if len(reps) == r.k {
			break
		}
	}
	return len(reps), nil
}

// seed installs the initial centroids after checking the initializer's choice.
func (r *run[E]) seed(indices []int) error {
	if len(indices) != r.k {
		return fmt.Errorf("%w: got %d indices for k=%d", ErrInvalidInitialization, len(indices), r.k)
	}
	seen := roaring.New()
	r.centroids = make([]E, r.k)
	for c, idx := range indices {
		if idx < 0 || idx >= len(r.elements) || !seen.CheckedAdd(uint32(idx)) {
			return fmt.Errorf("%w: index %d", ErrInvalidInitialization, idx)
		}
		centroid, err := r.copyOf(idx)
		if err != nil {
			return err
		}
		r.centroids[c] = centroid
	}
	return nil
}

// copyOf returns a centroid built from element i alone. Centroids never
// share storage with the caller's elements.
func (r *run[E]) copyOf(i int) (E, error) {
	centroid, err := r.aggregate([]E{r.elements[i]})
	if err != nil {
		var zero E
		return zero, fmt.Errorf("aggregate element %d: %w", i, err)
	}
	return centroid, nil
}

// assign rebuilds the bins from the current centroids.
//
// Nearest-centroid candidates are computed per element, in parallel when
// configured. Ties are then resolved sequentially in element order, so the
// random draws do not depend on scheduling.
func (r *run[E]) assign(ctx context.Context) error {
	n := len(r.elements)
	nearest := make([][]int, n)

	compute := func(i int) error {
		best := math.Inf(1)
		var ties []int
		for c, centroid := range r.centroids {
			d, err := measure(r.metric, r.elements[i], centroid)
			if err != nil {
				return fmt.Errorf("element %d, centroid %d: %w", i, c, err)
			}
			switch {
			case d < best:
				best = d
				ties = append(ties[:0], c)
			case d == best:
				ties = append(ties, c)
			}
		}
		nearest[i] = ties
		return nil
	}

	if r.cfg.Parallelism > 1 && n > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.cfg.Parallelism)
		chunk := (n + r.cfg.Parallelism - 1) / r.cfg.Parallelism
		for start := 0; start < n; start += chunk {
			end := min(start+chunk, n)
			g.Go(func() error {
				for i := start; i < end; i++ {
					if err := gctx.Err(); err != nil {
						return err
					}
					if err := compute(i); err != nil {
						return err
					}
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i := 0; i < n; i++ {
			if err := compute(i); err != nil {
				return err
			}
		}
	}

	bins := make([]*roaring.Bitmap, r.k)
	for c := range bins {
		bins[c] = roaring.New()
	}
	for i, ties := range nearest {
		c := ties[0]
		if len(ties) > 1 {
			c = ties[r.rng.IntN(len(ties))]
		}
		bins[c].Add(uint32(i))
	}
	r.bins = bins
	return nil
}

// update recomputes centroids from the bins and reseeds empty ones.
// It returns the number of reseeded centroids.
func (r *run[E]) update() (int, error) {
	var empty []int
	for c, bin := range r.bins {
		if bin.IsEmpty() {
			empty = append(empty, c)
			continue
		}

		members := make([]E, 0, bin.GetCardinality())
		it := bin.Iterator()
		for it.HasNext() {
			members = append(members, r.elements[it.Next()])
		}

		centroid, err := r.aggregate(members)
		if err != nil {
			return 0, fmt.Errorf("aggregate cluster %d: %w", c, err)
		}
		r.centroids[c] = centroid
	}

	// Reseed after all aggregates so candidates are checked against the new centroids.
	for _, c := range empty {
		if err := r.reseed(c); err != nil {
			return 0, err
		}
	}
	return len(empty), nil
}

// reseed replaces centroid c with a random element at positive distance from
// every other centroid.
func (r *run[E]) reseed(c int) error {
	var candidates []int
	for i, e := range r.elements {
		distinct := true
		for j, centroid := range r.centroids {
			if j == c {
				continue
			}
			d, err := measure(r.metric, e, centroid)
			if err != nil {
				return fmt.Errorf("reseed cluster %d: %w", c, err)
			}
			if d == 0 {
				distinct = false
				break
			}
		}
		if distinct {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) == 0 {
		return fmt.Errorf("%w: no element left to reseed cluster %d", ErrInsufficientData, c)
	}

	pick := candidates[r.rng.IntN(len(candidates))]
	centroid, err := r.copyOf(pick)
	if err != nil {
		return fmt.Errorf("reseed cluster %d: %w", c, err)
	}
	r.centroids[c] = centroid
	r.cfg.Logger.Debug("kmeans reseeded empty cluster", "cluster", c, "element", pick)
	return nil
}

// totalError sums the distance of every element to its cluster's centroid.
func (r *run[E]) totalError() (float64, error) {
	var total float64
	for c, bin := range r.bins {
		it := bin.Iterator()
		for it.HasNext() {
			i := it.Next()
			d, err := measure(r.metric, r.elements[i], r.centroids[c])
			if err != nil {
				return 0, fmt.Errorf("element %d, centroid %d: %w", i, c, err)
			}
			total += d
		}
	}
	return total, nil
}

func (r *run[E]) result(converged bool) *Result[E] {
	return &Result[E]{
		Centroids:  r.centroids,
		Clusters:   r.bins,
		Error:      r.err,
		Iterations: r.iteration,
		Converged:  converged,
	}
}
