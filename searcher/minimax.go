package searcher

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thurn/oldsdawn-sub001/game"
)

// Minimax searches a fixed number of plies, maximizing for the searching player and
// minimizing for the opponent, with alpha-beta pruning unless disabled. Pruning changes
// how many nodes are visited, never the chosen action.
//
// The deadline is checked before every node. Once it has passed, nodes are scored by the
// evaluator instead of being searched further, so a late search still returns the best
// action found, at worst one evaluation per remaining sibling on the current path later.
// Root actions searched after the deadline are valued from shallower, evaluator-scored
// lines and compete with fully searched siblings on those mixed-depth values. With
// iterative deepening an interrupted iteration is discarded in favor of the last complete
// one, so only the first iteration can carry such values.
type Minimax[P comparable, A comparable] struct {
	depth int
	opts  options
}

func NewMinimax[P comparable, A comparable](depth int, opts ...Option) *Minimax[P, A] {
	if depth < 1 {
		panic(fmt.Sprintf("minimax depth must be positive, got %d", depth))
	}
	return &Minimax[P, A]{depth: depth, opts: newOptions(opts)}
}

func (m *Minimax[P, A]) Depth() int {
	return m.depth
}

func (m *Minimax[P, A]) PickAction(deadline time.Time, state game.State[P, A], eval game.Evaluator[P, A], player P) (A, error) {
	var zero A
	root := state.Copy()
	actions := game.CollectActions(root, player)
	if len(actions) == 0 {
		return zero, game.ErrNoLegalAction
	}

	s := &minimaxSearch[P, A]{
		deadline: deadline,
		eval:     eval,
		player:   player,
		pruning:  m.opts.pruning,
		metrics:  m.opts.metrics,
	}
	s.metrics.Start()

	first := m.depth
	if m.opts.deepening {
		first = 1
	}
	var best A
	bestScore := 0
	for depth := first; depth <= m.depth; depth++ {
		s.truncated = false
		action, score, err := s.root(root, actions, depth)
		if err != nil {
			return zero, err
		}
		// An interrupted iteration is only trusted when nothing deeper was finished.
		if depth == first || !s.timedOut {
			best, bestScore = action, score
		}
		log.Debug().Int("depth", depth).Int("score", score).Bool("timedOut", s.timedOut).Msgf("minimax found %v", action)
		if s.timedOut || !s.truncated {
			break
		}
	}

	metric := s.metrics.Complete()
	log.Debug().Int("score", bestScore).Int64("nodes", metric.Nodes).Msgf("minimax picked %v", best)
	return best, nil
}

type minimaxSearch[P comparable, A comparable] struct {
	deadline time.Time
	eval     game.Evaluator[P, A]
	player   P
	pruning  bool
	metrics  Collector
	timedOut bool

	// truncated is set when the depth limit cut off an unfinished game, so a deeper
	// search could see more.
	truncated bool
}

func (s *minimaxSearch[P, A]) root(state game.State[P, A], actions []A, depth int) (A, int, error) {
	tracker := NewTracker[A](math.MinInt)
	alpha := -Infinity
	for _, action := range actions {
		child := state.Copy()
		if err := child.ExecuteAction(s.player, action); err != nil {
			var zero A
			return zero, 0, fmt.Errorf("playing %v: %w", action, err)
		}
		score, err := s.value(child, depth-1, alpha, Infinity)
		if err != nil {
			var zero A
			return zero, 0, err
		}
		tracker.InsertMax(action, score)
		if s.pruning {
			alpha = max(alpha, tracker.Score())
		}
	}
	action, err := tracker.Action()
	return action, tracker.Score(), err
}

// value returns the minimax value of state for the searching player. Within the window it
// is exact; outside it is a bound on the exact value (fail-soft).
func (s *minimaxSearch[P, A]) value(state game.State[P, A], depth int, alpha, beta int) (int, error) {
	s.metrics.AddNode()
	if !s.timedOut && expired(s.deadline) {
		s.timedOut = true
		s.metrics.TimedOut()
	}
	current, inProgress := state.Status().Current()
	if inProgress && depth <= 0 {
		s.truncated = true
	}
	if !inProgress || depth <= 0 || s.timedOut {
		return evaluate(s.eval, state, s.player), nil
	}

	maximizing := current == s.player
	baseline := math.MaxInt
	if maximizing {
		baseline = math.MinInt
	}
	tracker := NewTracker[A](baseline)
	for action := range state.LegalActions(current) {
		child := state.Copy()
		if err := child.ExecuteAction(current, action); err != nil {
			return 0, fmt.Errorf("playing %v: %w", action, err)
		}
		score, err := s.value(child, depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		if maximizing {
			tracker.InsertMax(action, score)
			if s.pruning {
				alpha = max(alpha, score)
			}
		} else {
			tracker.InsertMin(action, score)
			if s.pruning {
				beta = min(beta, score)
			}
		}
		if s.pruning && beta <= alpha {
			break
		}
	}

	if !tracker.HasAction() { // Stuck without being over: score as a leaf
		return evaluate(s.eval, state, s.player), nil
	}
	return tracker.Score(), nil
}
