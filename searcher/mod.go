package searcher

import (
	"time"

	"github.com/thurn/oldsdawn-sub001/game"
)

// Strategy chooses an action for player in state. Implementations explore copies only and
// never mutate state. A deadline in the past is not an error: every strategy then returns
// the best action it has found so far, which is always a legal one.
type Strategy[P comparable, A comparable] interface {
	PickAction(deadline time.Time, state game.State[P, A], eval game.Evaluator[P, A], player P) (A, error)
}

func expired(deadline time.Time) bool {
	return !time.Now().Before(deadline)
}

func evaluate[P comparable, A comparable](eval game.Evaluator[P, A], state game.State[P, A], side P) int {
	return min(max(eval.Evaluate(state, side), -Infinity), Infinity)
}

// reward maps an evaluator score to a playout outcome.
func reward(score int) float64 {
	switch {
	case score > 0:
		return Win
	case score < 0:
		return Loss
	default:
		return Draw
	}
}
