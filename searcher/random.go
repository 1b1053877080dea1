package searcher

import (
	"sync/atomic"
	"time"

	"golang.org/x/exp/rand"

	"github.com/thurn/oldsdawn-sub001/game"
)

// Random picks a uniformly random legal action. It is the baseline opponent in matches.
type Random[P comparable, A comparable] struct {
	seed  uint64
	calls *atomic.Uint64
}

func NewRandom[P comparable, A comparable](opts ...Option) *Random[P, A] {
	o := newOptions(opts)
	return &Random[P, A]{seed: o.seed, calls: &atomic.Uint64{}}
}

func (r *Random[P, A]) PickAction(_ time.Time, state game.State[P, A], _ game.Evaluator[P, A], player P) (A, error) {
	actions := game.CollectActions(state, player)
	if len(actions) == 0 {
		var zero A
		return zero, game.ErrNoLegalAction
	}
	rng := rand.New(rand.NewSource(r.seed + r.calls.Add(1)))
	return actions[rng.Intn(len(actions))], nil
}
