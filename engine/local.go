package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thurn/oldsdawn-sub001/experiments/metrics"
	"github.com/thurn/oldsdawn-sub001/game"
)

// Local drives a game in process. It is the only writer of the state it runs: actors
// receive the state read-only and the engine executes the action they return.
type Local[P comparable, A comparable] struct {
	actors   map[P]Actor[P, A]
	budget   time.Duration
	maxMoves int
}

func NewLocal[P comparable, A comparable](actors map[P]Actor[P, A], budget time.Duration, maxMoves int) *Local[P, A] {
	if len(actors) < 2 {
		panic("need at least two players")
	}
	if budget <= 0 {
		panic(fmt.Sprintf("move budget must be positive, got %v", budget))
	}
	if maxMoves <= 0 {
		maxMoves = MaxMoves
	}
	return &Local[P, A]{actors: actors, budget: budget, maxMoves: maxMoves}
}

var _ Engine[int, int] = (*Local[int, int])(nil)

// Run plays state to the end, mutating it. An actor error or an illegal action ends the
// run with an error; the metrics gathered so far are still returned.
func (e *Local[P, A]) Run(state game.State[P, A]) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gm := metrics.GameMetric{StartTime: time.Now()}
	if first, ok := state.Status().Current(); ok {
		gm.StartingPlayer = fmt.Sprint(first)
		log.Info().Msgf("%v is starting", first)
	}

	var moves []metrics.MoveMetric
	finish := func(err error) (metrics.GameMetric, []metrics.MoveMetric, error) {
		gm.EndTime = time.Now()
		gm.Duration = gm.EndTime.Sub(gm.StartTime)
		gm.TotalMoves = len(moves)
		return gm, moves, err
	}

	for step := 1; ; step++ {
		current, inProgress := state.Status().Current()
		if !inProgress {
			break
		}
		if step > e.maxMoves {
			log.Info().Msgf("stopped after %d moves without a winner", e.maxMoves)
			return finish(nil)
		}
		actor, ok := e.actors[current]
		if !ok {
			return finish(fmt.Errorf("%w %v", ErrNoActor, current))
		}

		start := time.Now()
		action, err := actor.PickAction(start.Add(e.budget), state)
		if err != nil {
			return finish(fmt.Errorf("move %d: %w", step, err))
		}
		took := time.Since(start)
		if err := state.ExecuteAction(current, action); err != nil {
			return finish(fmt.Errorf("move %d by %s: %w", step, actor.Name(), err))
		}

		moves = append(moves, metrics.MoveMetric{
			Step:     step,
			Player:   fmt.Sprint(current),
			Agent:    string(actor.Name()),
			Action:   fmt.Sprint(action),
			Duration: took,
			Overrun:  took > e.budget,
		})
		log.Debug().Int("step", step).Dur("took", took).Msgf("%v (%s) played %v", current, actor.Name(), action)
	}

	gm.Finished = true
	status := state.Status()
	if winner, ok := status.Winner(); ok {
		gm.WinningPlayer = fmt.Sprint(winner)
		if actor, ok := e.actors[winner]; ok {
			gm.Winner = string(actor.Name())
		}
		log.Info().Msgf("game ended after %d moves, %v (%s) won", len(moves), winner, gm.Winner)
	} else {
		gm.Draw = true
		log.Info().Msgf("game ended in a draw after %d moves", len(moves))
	}
	return finish(nil)
}
