package searcher

import (
	"math"

	"lukechampine.com/frand"
)

type Option func(o *options)

type options struct {
	pruning    bool
	deepening  bool
	iterations int
	cSquared   float64
	cutoff     int
	seed       uint64
	metrics    Collector
}

func defaultOptions() options {
	return options{
		pruning:  true,
		cSquared: CSquared,
		cutoff:   MaxCutoff,
		seed:     frand.Uint64n(math.MaxUint64),
		metrics:  NewNoopCollector(),
	}
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, option := range opts {
		option(&o)
	}
	return o
}

// WithoutPruning makes minimax visit every node within its depth.
func WithoutPruning() Option {
	return func(o *options) {
		o.pruning = false
	}
}

// WithIterativeDeepening makes minimax search depths 1..depth in turn and keep the answer
// of the deepest search the deadline let it finish.
func WithIterativeDeepening() Option {
	return func(o *options) {
		o.deepening = true
	}
}

// WithIterations stops MCTS after a number of iterations, or earlier at the deadline.
func WithIterations(iterations int) Option {
	return func(o *options) {
		if iterations > 0 {
			o.iterations = iterations
		}
	}
}

// WithExploration sets the UCT1 exploration constant C.
func WithExploration(c float64) Option {
	return func(o *options) {
		if c >= 0 {
			o.cSquared = c * c
		}
	}
}

// WithCutoff stops MCTS playouts after depth plies and scores the position reached.
func WithCutoff(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.cutoff = depth
		}
	}
}

// WithSeed makes the random choices of MCTS and Random reproducible.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func WithMetrics(collector Collector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}
