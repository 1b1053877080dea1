package agent

import (
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"

	"github.com/thurn/oldsdawn-sub001/game"
	"github.com/thurn/oldsdawn-sub001/searcher"
)

// Sampled plays actions in proportion to their MCTS visit counts raised to 1/temperature,
// for varied self-play. Low temperatures approach the most visited action.
type Sampled[P comparable, A comparable] struct {
	mcts        *searcher.MCTS[P, A]
	temperature float64
	seed        uint64
	calls       *atomic.Uint64
}

func NewSampled[P comparable, A comparable](mcts *searcher.MCTS[P, A], temperature float64, seed uint64) *Sampled[P, A] {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &Sampled[P, A]{mcts: mcts, temperature: temperature, seed: seed, calls: &atomic.Uint64{}}
}

func (s *Sampled[P, A]) PickAction(deadline time.Time, state game.State[P, A], eval game.Evaluator[P, A], player P) (A, error) {
	var zero A
	actions := game.CollectActions(state, player)
	if len(actions) == 0 {
		return zero, game.ErrNoLegalAction
	}
	policy, err := s.mcts.Policy(deadline, state, eval, player)
	if err != nil {
		return zero, err
	}

	weights := adjustTemperature(actions, policy, s.temperature)
	rng := rand.New(rand.NewSource(s.seed + s.calls.Add(1)))
	return sample(actions, weights, rng.Float64()), nil
}

// adjustTemperature returns the normalized probability of each action, in the order of
// actions. Actions the search never expanded get zero.
func adjustTemperature[A comparable](actions []A, policy map[A]int, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(actions))
	for i, action := range actions {
		adjusted[i] = math.Pow(float64(policy[action]), exponent)
		sum += adjusted[i]
	}
	if sum == 0 {
		return adjusted
	}
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample[A any](actions []A, weights []float64, sampled float64) A {
	cumulative := 0.0
	last := actions[0]
	for i, action := range actions {
		if weights[i] == 0 {
			continue
		}
		last = action
		cumulative += weights[i]
		if sampled < cumulative {
			return action
		}
	}
	return last // Rounding left sampled past the total
}
