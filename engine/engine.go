package engine

import (
	"errors"
	"time"

	"github.com/thurn/oldsdawn-sub001/experiments/metrics"
	"github.com/thurn/oldsdawn-sub001/game"
	"github.com/thurn/oldsdawn-sub001/searcher/agent"
)

const MaxMoves = 10000

var ErrNoActor = errors.New("no actor for player")

// Actor picks moves for one seat. Local agents and remote agent servers both qualify.
type Actor[P comparable, A comparable] interface {
	Name() agent.Name
	PickAction(deadline time.Time, state game.State[P, A]) (A, error)
}

type Engine[P comparable, A comparable] interface {
	// Run plays state until the game is over or the move limit is reached
	Run(state game.State[P, A]) (metrics.GameMetric, []metrics.MoveMetric, error)
}
