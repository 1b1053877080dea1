package searcher

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/thurn/oldsdawn-sub001/game"
)

// MCTS is Monte Carlo Tree Search with UCT1 selection and uniformly random playouts. It
// iterates until the deadline, checked once per iteration, so it can overrun the deadline
// by at most one iteration. At least one iteration always runs. The final choice is the
// most visited root action.
type MCTS[P comparable, A comparable] struct {
	opts  options
	calls *atomic.Uint64
}

func NewMCTS[P comparable, A comparable](opts ...Option) *MCTS[P, A] {
	return &MCTS[P, A]{opts: newOptions(opts), calls: &atomic.Uint64{}}
}

func (m *MCTS[P, A]) PickAction(deadline time.Time, state game.State[P, A], eval game.Evaluator[P, A], player P) (A, error) {
	var zero A
	if _, ok := game.FirstAction(state, player); !ok {
		return zero, game.ErrNoLegalAction
	}

	t, err := m.search(deadline, state.Copy(), eval, player)
	if err != nil {
		return zero, err
	}
	action, ok := t.bestAction()
	if !ok {
		return zero, game.ErrNoLegalAction
	}
	return action, nil
}

// Policy runs a search like PickAction and returns the visit count of every root action
// that was expanded.
func (m *MCTS[P, A]) Policy(deadline time.Time, state game.State[P, A], eval game.Evaluator[P, A], player P) (map[A]int, error) {
	t, err := m.search(deadline, state.Copy(), eval, player)
	if err != nil {
		return nil, err
	}
	return t.policy(), nil
}

func (m *MCTS[P, A]) search(deadline time.Time, root game.State[P, A], eval game.Evaluator[P, A], player P) (*tree[P, A], error) {
	rng := rand.New(rand.NewSource(m.opts.seed + m.calls.Add(1)))
	t := newTree(root, player)

	m.opts.metrics.Start()
	for i := 0; m.opts.iterations <= 0 || i < m.opts.iterations; i++ {
		if i > 0 && expired(deadline) {
			m.opts.metrics.TimedOut()
			break
		}
		if err := m.simulate(t, eval, rng); err != nil {
			return nil, err
		}
		m.opts.metrics.AddEpisode()
	}
	metric := m.opts.metrics.Complete()

	log.Debug().Int("nodes", len(t.nodes)).Int("rootVisits", t.nodes[0].visits).
		Int64("episodes", metric.Episodes).Msg("mcts search complete")
	return t, nil
}

func (m *MCTS[P, A]) simulate(t *tree[P, A], eval game.Evaluator[P, A], rng *rand.Rand) error {
	size := len(t.nodes)
	leaf, err := t.selectThenExpand(m.opts.cSquared)
	if err != nil {
		return err
	}
	if len(t.nodes) > size {
		m.opts.metrics.AddNode()
	}
	r, err := m.rollout(t.nodes[leaf].state, eval, t.player, rng)
	if err != nil {
		return err
	}
	t.backup(leaf, r)
	return nil
}

// rollout plays random actions on a copy of state until the game is over or the cutoff
// is reached, and returns the outcome from the perspective of player.
func (m *MCTS[P, A]) rollout(state game.State[P, A], eval game.Evaluator[P, A], player P, rng *rand.Rand) (float64, error) {
	state = state.Copy()
	for depth := 0; depth < m.opts.cutoff; depth++ {
		current, ok := state.Status().Current()
		if !ok {
			break
		}
		actions := game.CollectActions(state, current)
		if len(actions) == 0 {
			break
		}
		action := actions[rng.Intn(len(actions))] // Random rollout policy
		if err := state.ExecuteAction(current, action); err != nil {
			return 0, fmt.Errorf("playout %v: %w", action, err)
		}
	}

	if state.Status().IsCompleted() {
		m.opts.metrics.AddFullPlayout()
	}
	return reward(eval.Evaluate(state, player)), nil
}
