// Package nim implements a pile game used to verify search strategies against a known
// optimal-play oracle. Players alternately remove between one and MaxTake objects from a
// single pile. Under normal play the player taking the last object wins; under misère
// play that player loses.
package nim

import (
	"fmt"
	"iter"
	"slices"

	"github.com/samber/lo"

	"github.com/thurn/oldsdawn-sub001/game"
)

const DefaultMaxTake = 3

type Player int

const (
	One Player = iota + 1
	Two
)

func (p Player) Opponent() Player {
	if p == One {
		return Two
	}
	return One
}

func (p Player) String() string {
	return fmt.Sprintf("Player%d", int(p))
}

type Variant int

const (
	NormalPlay Variant = iota // last to move wins
	Misere                    // last to move loses
)

func (v Variant) String() string {
	if v == Misere {
		return "misere"
	}
	return "normal"
}

func ParseVariant(name string) (Variant, error) {
	switch name {
	case "normal":
		return NormalPlay, nil
	case "misere":
		return Misere, nil
	}
	return NormalPlay, fmt.Errorf("unknown nim variant %q", name)
}

// Move removes Take objects from the pile at index Pile.
type Move struct {
	Pile int `json:"pile"`
	Take int `json:"take"`
}

func (m Move) String() string {
	return fmt.Sprintf("take %d from pile %d", m.Take, m.Pile)
}

type Option func(s *State)

func WithMaxTake(maxTake int) Option {
	return func(s *State) {
		if maxTake > 0 {
			s.maxTake = maxTake
		}
	}
}

func WithVariant(variant Variant) Option {
	return func(s *State) {
		s.variant = variant
	}
}

func WithFirstPlayer(player Player) Option {
	return func(s *State) {
		s.current = player
	}
}

type State struct {
	piles   []int
	maxTake int
	variant Variant
	current Player
}

var _ game.State[Player, Move] = (*State)(nil)

// New returns a position with the given pile sizes and player One to move.
func New(piles []int, options ...Option) *State {
	s := &State{
		piles:   slices.Clone(piles),
		maxTake: DefaultMaxTake,
		variant: NormalPlay,
		current: One,
	}
	for _, option := range options {
		option(s)
	}
	for i, pile := range s.piles {
		if pile < 0 {
			panic(fmt.Sprintf("pile %d has negative size %d", i, pile))
		}
	}
	return s
}

func (s *State) Copy() game.State[Player, Move] {
	return s.clone()
}

func (s *State) clone() *State {
	return &State{
		piles:   slices.Clone(s.piles),
		maxTake: s.maxTake,
		variant: s.variant,
		current: s.current,
	}
}

func (s *State) Status() game.Status[Player] {
	if s.Remaining() > 0 {
		return game.InProgress(s.current)
	}
	// The player to move faces empty piles: the opponent took the last object.
	if s.variant == Misere {
		return game.Completed(s.current)
	}
	return game.Completed(s.current.Opponent())
}

func (s *State) LegalActions(player Player) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		if player != s.current {
			return
		}
		for i, pile := range s.piles {
			for take := 1; take <= min(pile, s.maxTake); take++ {
				if !yield(Move{Pile: i, Take: take}) {
					return
				}
			}
		}
	}
}

func (s *State) ExecuteAction(player Player, move Move) error {
	if s.Remaining() == 0 {
		return fmt.Errorf("%v after game over: %w", move, game.ErrInvalidAction)
	}
	if player != s.current {
		return fmt.Errorf("%v by %v out of turn: %w", move, player, game.ErrInvalidAction)
	}
	if move.Pile < 0 || move.Pile >= len(s.piles) {
		return fmt.Errorf("%v: no such pile: %w", move, game.ErrInvalidAction)
	}
	if move.Take < 1 || move.Take > s.maxTake || move.Take > s.piles[move.Pile] {
		return fmt.Errorf("%v: pile holds %d: %w", move, s.piles[move.Pile], game.ErrInvalidAction)
	}
	s.piles[move.Pile] -= move.Take
	s.current = s.current.Opponent()
	return nil
}

func (s *State) Piles() []int {
	return slices.Clone(s.piles)
}

func (s *State) MaxTake() int {
	return s.maxTake
}

func (s *State) Variant() Variant {
	return s.variant
}

// Current returns the player to move, even once the game is over.
func (s *State) Current() Player {
	return s.current
}

func (s *State) Remaining() int {
	return lo.Sum(s.piles)
}

func (s *State) String() string {
	return fmt.Sprintf("%v %v to move (%v, max %d)", s.piles, s.current, s.variant, s.maxTake)
}

func asState(state game.State[Player, Move]) *State {
	s, ok := state.(*State)
	if !ok {
		panic(fmt.Sprintf("unexpected state type %T", state))
	}
	return s
}
