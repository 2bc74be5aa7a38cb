package kmeans

import (
	"log/slog"
	"math/rand/v2"
)

const (
	// DefaultMaxIterations bounds a run whose error never settles.
	DefaultMaxIterations = 100

	// DefaultEpsilon is the minimum error improvement between two iterations
	// for the run to keep going.
	DefaultEpsilon = 0.0005
)

// Config holds the tunables of a clustering run.
type Config struct {
	// Seed initializes the run's random source. Two runs with the same seed
	// and the same inputs produce identical results.
	Seed uint64

	// MaxIterations caps the number of assign/update rounds.
	// Values <= 0 select DefaultMaxIterations.
	MaxIterations int

	// Epsilon is the convergence threshold on the error improvement.
	// It must be positive: values <= 0 or NaN select DefaultEpsilon. The error
	// of a run that does not reseed never grows, so a zero threshold could
	// never be met; use MaxIterations to run a fixed number of rounds.
	Epsilon float64

	// Parallelism is the number of goroutines computing distances during the
	// assignment step. Values <= 1 keep the step sequential. Results do not
	// depend on this value.
	Parallelism int

	// Logger receives per-iteration debug records and a summary record.
	// A nil Logger discards everything.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the default iteration cap and
// convergence threshold, seed 0, sequential assignment and no logging.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		Epsilon:       DefaultEpsilon,
	}
}

// withDefaults fills zero values with their defaults.
func (c Config) withDefaults() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if !(c.Epsilon > 0) {
		c.Epsilon = DefaultEpsilon
	}
	if c.Parallelism < 1 {
		c.Parallelism = 1
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// newRand returns the run's random source. Seed is split across both PCG
// state words so that nearby seeds diverge quickly.
func (c Config) newRand() *rand.Rand {
	return rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
}
