package game

import "fmt"

// Status is either InProgress(current player) or Completed(winner), where a completed
// game without a winner is a draw.
type Status[P comparable] struct {
	completed bool
	hasWinner bool
	player    P
}

func InProgress[P comparable](current P) Status[P] {
	return Status[P]{player: current}
}

func Completed[P comparable](winner P) Status[P] {
	return Status[P]{completed: true, hasWinner: true, player: winner}
}

func Draw[P comparable]() Status[P] {
	return Status[P]{completed: true}
}

func (s Status[P]) IsCompleted() bool {
	return s.completed
}

// Current returns the player to move. ok is false once the game is over.
func (s Status[P]) Current() (player P, ok bool) {
	if s.completed {
		var zero P
		return zero, false
	}
	return s.player, true
}

// Winner returns the winning player. ok is false while the game is in progress and
// for draws.
func (s Status[P]) Winner() (player P, ok bool) {
	if !s.completed || !s.hasWinner {
		var zero P
		return zero, false
	}
	return s.player, true
}

func (s Status[P]) String() string {
	switch {
	case !s.completed:
		return fmt.Sprintf("InProgress(%v)", s.player)
	case s.hasWinner:
		return fmt.Sprintf("Completed(%v)", s.player)
	default:
		return "Completed(draw)"
	}
}
