package game

import "github.com/samber/lo"

// WinLoss scores finished games: +1 if side won, -1 if side lost, 0 for a draw.
// Positions still in progress score 0, so a search using it only reports a win or loss
// it has actually reached.
type WinLoss[P comparable, A comparable] struct{}

func (WinLoss[P, A]) Evaluate(state State[P, A], side P) int {
	status := state.Status()
	if !status.IsCompleted() {
		return 0
	}
	winner, ok := status.Winner()
	if !ok {
		return 0
	}
	if winner == side {
		return 1
	}
	return -1
}

// Scaled multiplies the scores of an evaluator by factor.
func Scaled[P comparable, A comparable](eval Evaluator[P, A], factor int) Evaluator[P, A] {
	return EvaluatorFunc[P, A](func(state State[P, A], side P) int {
		return factor * eval.Evaluate(state, side)
	})
}

// Sum adds the scores of several evaluators.
func Sum[P comparable, A comparable](evals ...Evaluator[P, A]) Evaluator[P, A] {
	return EvaluatorFunc[P, A](func(state State[P, A], side P) int {
		return lo.SumBy(evals, func(eval Evaluator[P, A]) int {
			return eval.Evaluate(state, side)
		})
	})
}
