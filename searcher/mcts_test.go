package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thurn/oldsdawn-sub001/game"
	"github.com/thurn/oldsdawn-sub001/nim"
)

func TestMCTSAgreesWithOracle(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3} {
		state := nim.New([]int{2, 2, 3})
		mcts := NewMCTS[nim.Player, nim.Move](WithIterations(5000), WithSeed(seed))

		action, err := mcts.PickAction(time.Now().Add(time.Minute), state, nim.Outcome, nim.One)

		require.NoError(t, err)
		next := state.Copy().(*nim.State)
		require.NoError(t, next.ExecuteAction(nim.One, action))
		require.Zero(t, nim.NimSum(next.Piles(), next.MaxTake()), "Should leave a zero nim sum, played %v with seed %d", action, seed)
		require.Equal(t, []int{2, 2, 3}, state.Piles(), "Caller's state should be untouched")
	}
}

func TestMCTSTree(t *testing.T) {
	t.Run("expansion follows enumeration order", func(t *testing.T) {
		state := &mockState{node: maxNode(leaf(0), leaf(0), leaf(0))}

		one, err := NewMCTS[mockPlayer, int](WithIterations(1)).Policy(time.Now().Add(time.Minute), state, mockValue(0), maxPlayer)
		require.NoError(t, err)
		require.Equal(t, map[int]int{0: 1}, one)

		all, err := NewMCTS[mockPlayer, int](WithIterations(3)).Policy(time.Now().Add(time.Minute), state, mockValue(0), maxPlayer)
		require.NoError(t, err)
		require.Equal(t, map[int]int{0: 1, 1: 1, 2: 1}, all)
	})

	t.Run("equal visits go to the first action", func(t *testing.T) {
		state := &mockState{node: maxNode(leaf(0), leaf(0), leaf(0))}

		action, err := NewMCTS[mockPlayer, int](WithIterations(3)).PickAction(time.Now().Add(time.Minute), state, mockValue(0), maxPlayer)

		require.NoError(t, err)
		require.Equal(t, 0, action)
	})

	t.Run("every iteration visits one root child", func(t *testing.T) {
		state := nim.New([]int{3, 4, 5})

		policy, err := NewMCTS[nim.Player, nim.Move](WithIterations(500), WithSeed(9)).
			Policy(time.Now().Add(time.Minute), state, nim.Outcome, nim.One)

		require.NoError(t, err)
		total := 0
		for _, visits := range policy {
			total += visits
		}
		require.Equal(t, 500, total)
	})

	t.Run("rewards are stored from the acting player's side", func(t *testing.T) {
		tr := newTree[mockPlayer, int](&mockState{node: maxNode(minNode(leaf(1)))}, maxPlayer)
		child, err := tr.expand(0)
		require.NoError(t, err)
		grandchild, err := tr.expand(child)
		require.NoError(t, err)

		tr.backup(grandchild, Win)

		require.Equal(t, Win, tr.nodes[child].rewards, "Max acted into the child")
		require.Equal(t, Loss, tr.nodes[grandchild].rewards, "Min acted into the grandchild")
		for _, n := range tr.nodes {
			require.Equal(t, 1, n.visits)
		}
		require.True(t, tr.nodes[grandchild].terminal())
	})

	t.Run("final choice is the most visited child", func(t *testing.T) {
		tr := newTree[mockPlayer, int](&mockState{node: maxNode(leaf(0), leaf(0), leaf(0))}, maxPlayer)
		for range 3 {
			_, err := tr.expand(0)
			require.NoError(t, err)
		}
		visits := []int{10, 30, 30}
		rewards := []float64{9, 3, 20}
		for i, child := range tr.nodes[0].children {
			tr.nodes[child].visits = visits[i]
			tr.nodes[child].rewards = rewards[i]
		}

		action, ok := tr.bestAction()

		require.True(t, ok)
		require.Equal(t, 1, action, "Should prefer visits over mean reward and break ties left to right")
	})
}

func TestMCTSDeadline(t *testing.T) {
	t.Run("returns within twice the budget", func(t *testing.T) {
		budget := time.Second
		state := nim.New([]int{100})
		collector := NewCollector()
		start := time.Now()

		action, err := NewMCTS[nim.Player, nim.Move](WithSeed(5), WithMetrics(collector)).
			PickAction(start.Add(budget), state, nim.Outcome, nim.One)

		require.NoError(t, err)
		require.Less(t, time.Since(start), 2*budget)
		require.True(t, game.HasAction[nim.Player, nim.Move](state, nim.One, action))
		metric := collector.Complete()
		require.True(t, metric.TimedOut)
		require.Positive(t, metric.Episodes)
	})

	t.Run("expired deadline runs one iteration", func(t *testing.T) {
		state := nim.New([]int{2, 2, 3})
		collector := NewCollector()

		action, err := NewMCTS[nim.Player, nim.Move](WithMetrics(collector)).
			PickAction(time.Now().Add(-time.Second), state, nim.Outcome, nim.One)

		require.NoError(t, err)
		require.Equal(t, nim.Move{Pile: 0, Take: 1}, action, "The single expanded child is the first action")
		require.Equal(t, int64(1), collector.Complete().Episodes)
	})
}

func TestMCTSPlayouts(t *testing.T) {
	t.Run("cutoff stops playouts early", func(t *testing.T) {
		collector := NewCollector()

		_, err := NewMCTS[nim.Player, nim.Move](WithIterations(20), WithCutoff(2), WithSeed(1), WithMetrics(collector)).
			PickAction(time.Now().Add(time.Minute), nim.New([]int{100}), nim.ObjectCount, nim.One)

		require.NoError(t, err)
		require.Zero(t, collector.Complete().FullPlayouts)
	})

	t.Run("playouts run to the end without a cutoff", func(t *testing.T) {
		collector := NewCollector()

		_, err := NewMCTS[nim.Player, nim.Move](WithIterations(20), WithSeed(1), WithMetrics(collector)).
			PickAction(time.Now().Add(time.Minute), nim.New([]int{10}), nim.Outcome, nim.One)

		require.NoError(t, err)
		metric := collector.Complete()
		require.Equal(t, int64(20), metric.Episodes)
		require.Equal(t, int64(20), metric.FullPlayouts)
	})
}

func TestMCTSErrors(t *testing.T) {
	t.Run("no legal action", func(t *testing.T) {
		_, err := NewMCTS[nim.Player, nim.Move]().PickAction(time.Now().Add(time.Second), nim.New([]int{0}), nim.Outcome, nim.One)

		require.ErrorIs(t, err, game.ErrNoLegalAction)
	})

	t.Run("execution errors are returned", func(t *testing.T) {
		state := &mockState{node: maxNode(leaf(1)), failing: true}

		_, err := NewMCTS[mockPlayer, int](WithIterations(1)).PickAction(time.Now().Add(time.Second), state, mockValue(0), maxPlayer)

		require.ErrorIs(t, err, game.ErrInvalidAction)
	})
}

func TestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		o := newOptions(nil)

		require.True(t, o.pruning)
		require.False(t, o.deepening)
		require.Equal(t, CSquared, o.cSquared)
		require.Equal(t, MaxCutoff, o.cutoff)
		require.Zero(t, o.iterations)
	})

	t.Run("exploration is stored squared", func(t *testing.T) {
		require.InDelta(t, 0.25, newOptions([]Option{WithExploration(0.5)}).cSquared, 1e-12)
	})

	t.Run("invalid values keep defaults", func(t *testing.T) {
		o := newOptions([]Option{WithIterations(-1), WithCutoff(0), WithExploration(-1), WithMetrics(nil)})

		require.Zero(t, o.iterations)
		require.Equal(t, MaxCutoff, o.cutoff)
		require.Equal(t, CSquared, o.cSquared)
		require.NotNil(t, o.metrics)
	})
}
