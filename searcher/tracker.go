package searcher

import "github.com/thurn/oldsdawn-sub001/game"

// Tracker keeps the best score seen so far and the action that produced it. Ties keep
// the earliest inserted action, so scanning actions in enumeration order breaks ties
// left to right.
type Tracker[A any] struct {
	score  int
	action A
	set    bool
}

func NewTracker[A any](baseline int) *Tracker[A] {
	return &Tracker[A]{score: baseline}
}

// InsertMax records action if score is strictly greater than the current best.
func (t *Tracker[A]) InsertMax(action A, score int) bool {
	if score <= t.score {
		return false
	}
	t.score, t.action, t.set = score, action, true
	return true
}

// InsertMin records action if score is strictly less than the current best.
func (t *Tracker[A]) InsertMin(action A, score int) bool {
	if score >= t.score {
		return false
	}
	t.score, t.action, t.set = score, action, true
	return true
}

func (t *Tracker[A]) Score() int {
	return t.score
}

func (t *Tracker[A]) HasAction() bool {
	return t.set
}

func (t *Tracker[A]) Action() (A, error) {
	if !t.set {
		var zero A
		return zero, game.ErrMissingAction
	}
	return t.action, nil
}
