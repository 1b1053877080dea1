package searcher

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thurn/oldsdawn-sub001/game"
)

// Single scores each action by evaluating the position it leads to and keeps the best.
// It ignores the deadline: its cost is one copy and one evaluation per legal action.
type Single[P comparable, A comparable] struct{}

func NewSingle[P comparable, A comparable]() Single[P, A] {
	return Single[P, A]{}
}

func (Single[P, A]) PickAction(_ time.Time, state game.State[P, A], eval game.Evaluator[P, A], player P) (A, error) {
	var zero A
	tracker := NewTracker[A](math.MinInt)
	for action := range state.LegalActions(player) {
		child := state.Copy()
		if err := child.ExecuteAction(player, action); err != nil {
			return zero, fmt.Errorf("playing %v: %w", action, err)
		}
		tracker.InsertMax(action, evaluate(eval, child, player))
	}

	action, err := tracker.Action()
	if err != nil {
		return zero, game.ErrNoLegalAction
	}
	log.Debug().Int("score", tracker.Score()).Msgf("single level picked %v", action)
	return action, nil
}
