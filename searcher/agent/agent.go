package agent

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thurn/oldsdawn-sub001/game"
	"github.com/thurn/oldsdawn-sub001/searcher"
)

// Name identifies an agent in a registry, in configuration and over the wire.
type Name string

const (
	Random              Name = "Random"
	Greedy              Name = "Greedy"
	AlphaBetaDepth2     Name = "AlphaBetaDepth2"
	AlphaBetaDepth4     Name = "AlphaBetaDepth4"
	AlphaBetaDepth6     Name = "AlphaBetaDepth6"
	AlphaBetaDeepening  Name = "AlphaBetaDeepening"
	MonteCarlo          Name = "MonteCarlo"
	OmniscientAlphaBeta Name = "OmniscientAlphaBeta"
)

type Option func(s *settings)

type settings struct {
	omniscient bool
}

// WithOmniscience lets the agent search the full state even when the game hides part of
// it from the player to move.
func WithOmniscience() Option {
	return func(s *settings) {
		s.omniscient = true
	}
}

// Agent pairs a search strategy with the evaluator it searches with. Agents are
// immutable and safe to share between games.
type Agent[P comparable, A comparable] struct {
	name       Name
	strategy   searcher.Strategy[P, A]
	evaluator  game.Evaluator[P, A]
	omniscient bool
}

func New[P comparable, A comparable](name Name, strategy searcher.Strategy[P, A], evaluator game.Evaluator[P, A], opts ...Option) Agent[P, A] {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	return Agent[P, A]{name: name, strategy: strategy, evaluator: evaluator, omniscient: s.omniscient}
}

func (a Agent[P, A]) Name() Name {
	return a.name
}

func (a Agent[P, A]) Omniscient() bool {
	return a.omniscient
}

// PickAction chooses an action for the player to move in state before deadline. The
// state is never mutated. Games that are over have no legal action.
func (a Agent[P, A]) PickAction(deadline time.Time, state game.State[P, A]) (A, error) {
	var zero A
	player, ok := state.Status().Current()
	if !ok {
		return zero, fmt.Errorf("%s: %w", a.name, game.ErrNoLegalAction)
	}

	view := state
	if viewer, ok := state.(game.Viewer[P, A]); ok && !a.omniscient {
		view = viewer.ViewFor(player)
	}

	start := time.Now()
	action, err := a.strategy.PickAction(deadline, view, a.evaluator, player)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", a.name, err)
	}
	log.Debug().Str("agent", string(a.name)).Dur("took", time.Since(start)).Msgf("%v plays %v", player, action)
	return action, nil
}
