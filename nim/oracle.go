package nim

import (
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// NimSum folds the Grundy values of the piles with XOR. Under normal play the player to
// move loses with perfect play iff the result is 0. A pile of n objects in the take
// 1..maxTake game has Grundy value n mod (maxTake+1), so for piles no larger than
// maxTake this is the plain XOR of the pile sizes.
func NimSum(piles []int, maxTake int) int {
	return lo.Reduce(piles, func(acc int, pile int, _ int) int {
		return acc ^ (pile % (maxTake + 1))
	}, 0)
}

// IsLosing reports whether the player to move in s loses under perfect play.
func IsLosing(s *State) bool {
	if s.variant == NormalPlay {
		return NimSum(s.piles, s.maxTake) == 0
	}
	return !NewSolver(s.maxTake, s.variant).Wins(s)
}

// Solver is an exhaustive, memoized optimal-play oracle valid for both variants. It
// is meant for small positions and is not safe for concurrent use.
type Solver struct {
	maxTake int
	variant Variant
	memo    map[string]bool
}

func NewSolver(maxTake int, variant Variant) *Solver {
	return &Solver{
		maxTake: maxTake,
		variant: variant,
		memo:    make(map[string]bool),
	}
}

// Wins reports whether the player to move in s wins under perfect play.
func (o *Solver) Wins(s *State) bool {
	return o.wins(s.piles)
}

// WinningMoves lists, in enumeration order, the moves that leave the opponent in a lost
// position.
func (o *Solver) WinningMoves(s *State) []Move {
	var moves []Move
	for move := range s.LegalActions(s.current) {
		next := s.clone()
		next.piles[move.Pile] -= move.Take
		if !o.wins(next.piles) {
			moves = append(moves, move)
		}
	}
	return moves
}

func (o *Solver) wins(piles []int) bool {
	if lo.Sum(piles) == 0 {
		// The opponent took the last object.
		return o.variant == Misere
	}
	key := o.key(piles)
	if won, ok := o.memo[key]; ok {
		return won
	}
	won := false
	next := slices.Clone(piles)
search:
	for i, pile := range piles {
		for take := 1; take <= min(pile, o.maxTake); take++ {
			next[i] = pile - take
			if !o.wins(next) {
				won = true
				break search
			}
		}
		next[i] = pile
	}
	o.memo[key] = won
	return won
}

func (o *Solver) key(piles []int) string {
	sorted := slices.Clone(piles)
	slices.Sort(sorted)
	parts := lo.Map(sorted, func(pile int, _ int) string {
		return strconv.Itoa(pile)
	})
	return strings.Join(parts, ",")
}
