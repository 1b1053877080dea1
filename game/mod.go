package game

import "iter"

// State is a mutable game position searched by the engine. P identifies a player and A
// identifies an action. Implementations are owned by whoever holds them; search only ever
// mutates copies.
type State[P comparable, A comparable] interface {
	// Copy returns an independent state sharing no mutable data with the receiver.
	Copy() State[P, A]
	// Status reports the player to move, or the outcome once the game is over.
	Status() Status[P]
	// LegalActions lazily enumerates the actions available to player. The
	// enumeration order is the move ordering used by search.
	LegalActions(player P) iter.Seq[A]
	// ExecuteAction applies action for player in place. It returns an error
	// wrapping ErrInvalidAction if the action is not currently legal.
	ExecuteAction(player P, action A) error
}

// Viewer is implemented by states that conceal information from some players.
type Viewer[P comparable, A comparable] interface {
	// ViewFor returns the position as player is allowed to see it.
	ViewFor(player P) State[P, A]
}

// Evaluator scores a state from the perspective of side. Higher is better for side.
// Evaluators hold no state and have no side effects.
type Evaluator[P comparable, A comparable] interface {
	Evaluate(state State[P, A], side P) int
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc[P comparable, A comparable] func(state State[P, A], side P) int

func (f EvaluatorFunc[P, A]) Evaluate(state State[P, A], side P) int {
	return f(state, side)
}

// CollectActions materializes the legal actions of player in enumeration order.
func CollectActions[P comparable, A comparable](state State[P, A], player P) []A {
	var actions []A
	for action := range state.LegalActions(player) {
		actions = append(actions, action)
	}
	return actions
}

// HasAction reports whether player may currently play action.
func HasAction[P comparable, A comparable](state State[P, A], player P, action A) bool {
	for legal := range state.LegalActions(player) {
		if legal == action {
			return true
		}
	}
	return false
}

// FirstAction returns the first enumerated legal action of player.
func FirstAction[P comparable, A comparable](state State[P, A], player P) (A, bool) {
	for action := range state.LegalActions(player) {
		return action, true
	}
	var zero A
	return zero, false
}
