package nim

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/thurn/oldsdawn-sub001/game"
)

type wireState struct {
	Piles   []int  `json:"piles"`
	MaxTake int    `json:"max_take"`
	Variant string `json:"variant"`
	Current Player `json:"current"`
}

func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireState{
		Piles:   s.piles,
		MaxTake: s.maxTake,
		Variant: s.variant.String(),
		Current: s.current,
	})
}

// DecodeState reads a position in the form MarshalJSON writes. A missing max take means
// DefaultMaxTake, a missing variant normal play and a missing player One.
func DecodeState(r io.Reader) (game.State[Player, Move], error) {
	var w wireState
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("failed to decode nim state: %w", err)
	}
	if w.Variant == "" {
		w.Variant = NormalPlay.String()
	}
	variant, err := ParseVariant(w.Variant)
	if err != nil {
		return nil, err
	}
	if w.Current == 0 {
		w.Current = One
	}
	if w.Current != One && w.Current != Two {
		return nil, fmt.Errorf("unknown player %d", w.Current)
	}
	for i, pile := range w.Piles {
		if pile < 0 {
			return nil, fmt.Errorf("pile %d has negative size %d", i, pile)
		}
	}
	return New(w.Piles, WithMaxTake(w.MaxTake), WithVariant(variant), WithFirstPlayer(w.Current)), nil
}
