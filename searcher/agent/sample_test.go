package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thurn/oldsdawn-sub001/game"
	"github.com/thurn/oldsdawn-sub001/nim"
	"github.com/thurn/oldsdawn-sub001/searcher"
)

func TestAdjustTemperature(t *testing.T) {
	actions := []string{"a", "b", "c"}
	policy := map[string]int{"a": 1, "b": 3}

	t.Run("unit temperature is proportional to visits", func(t *testing.T) {
		got := adjustTemperature(actions, policy, 1.0)

		require.InDeltaSlice(t, []float64{0.25, 0.75, 0}, got, 1e-9)
	})

	t.Run("low temperature sharpens", func(t *testing.T) {
		got := adjustTemperature(actions, policy, 0.5)

		require.InDeltaSlice(t, []float64{0.1, 0.9, 0}, got, 1e-9)
	})

	t.Run("no visits at all", func(t *testing.T) {
		got := adjustTemperature(actions, map[string]int{}, 1.0)

		require.Equal(t, []float64{0, 0, 0}, got)
	})
}

func TestSample(t *testing.T) {
	actions := []string{"a", "b", "c"}
	weights := []float64{0.25, 0.75, 0}

	t.Run("walking the cumulative weights", func(t *testing.T) {
		require.Equal(t, "a", sample(actions, weights, 0.1))
		require.Equal(t, "b", sample(actions, weights, 0.25))
		require.Equal(t, "b", sample(actions, weights, 0.99))
	})

	t.Run("rounding falls back to the last weighted action", func(t *testing.T) {
		require.Equal(t, "b", sample(actions, weights, 1.0))
	})

	t.Run("no weights falls back to the first action", func(t *testing.T) {
		require.Equal(t, "a", sample(actions, []float64{0, 0, 0}, 0.5))
	})
}

func TestSampled(t *testing.T) {
	t.Run("plays legal actions", func(t *testing.T) {
		s := NewSampled(searcher.NewMCTS[nim.Player, nim.Move](searcher.WithIterations(100), searcher.WithSeed(2)), 1.0, 2)
		state := nim.New([]int{3, 4, 5})

		for range 10 {
			action, err := s.PickAction(time.Now().Add(time.Second), state, nim.Outcome, nim.One)
			require.NoError(t, err)
			require.True(t, game.HasAction[nim.Player, nim.Move](state, nim.One, action))
		}
	})

	t.Run("stops at the deadline without an iteration cap", func(t *testing.T) {
		s := NewSampled(searcher.NewMCTS[nim.Player, nim.Move](searcher.WithSeed(3)), 1.0, 3)
		state := nim.New([]int{100})
		budget := time.Second
		start := time.Now()

		action, err := s.PickAction(start.Add(budget), state, nim.Outcome, nim.One)

		require.NoError(t, err)
		require.Less(t, time.Since(start), 2*budget)
		require.True(t, game.HasAction[nim.Player, nim.Move](state, nim.One, action))
	})

	t.Run("no legal action", func(t *testing.T) {
		s := NewSampled(searcher.NewMCTS[nim.Player, nim.Move](searcher.WithIterations(10)), 0, 1)

		_, err := s.PickAction(time.Now().Add(time.Second), nim.New([]int{0}), nim.Outcome, nim.One)

		require.ErrorIs(t, err, game.ErrNoLegalAction)
	})
}
