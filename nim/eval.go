package nim

import "github.com/thurn/oldsdawn-sub001/game"

// Outcome scores finished games only: +1 win, -1 loss, 0 otherwise.
var Outcome game.Evaluator[Player, Move] = game.WinLoss[Player, Move]{}

// Perfect scores every position by its game-theoretic value under optimal play, so a
// one-ply search with it already plays perfectly.
var Perfect game.Evaluator[Player, Move] = game.EvaluatorFunc[Player, Move](perfect)

func perfect(state game.State[Player, Move], side Player) int {
	s := asState(state)
	if s.Remaining() == 0 {
		return Outcome.Evaluate(s, side)
	}
	moverWins := !IsLosing(s)
	if moverWins == (s.current == side) {
		return 1
	}
	return -1
}

// Evaluators maps configuration names to the evaluators of this package.
func Evaluators() map[string]game.Evaluator[Player, Move] {
	return map[string]game.Evaluator[Player, Move]{
		"outcome": Outcome,
		"perfect": Perfect,
		"objects": ObjectCount,
		"blended": Blended,
	}
}

// ObjectCount is a heuristic that favors the mover when the remaining objects are not a
// multiple of maxTake+1, which is exact for a single pile under normal play.
var ObjectCount game.Evaluator[Player, Move] = game.EvaluatorFunc[Player, Move](objectCount)

func objectCount(state game.State[Player, Move], side Player) int {
	s := asState(state)
	if s.Remaining() == 0 {
		return Outcome.Evaluate(s, side) * (s.maxTake + 1)
	}
	score := s.Remaining() % (s.maxTake + 1)
	if s.current != side {
		return -score
	}
	return score
}

// Blended adds a large bonus for finished games to ObjectCount.
var Blended = game.Sum(game.Scaled(Outcome, 100), ObjectCount)
