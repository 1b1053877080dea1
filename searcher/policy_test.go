package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCT1(t *testing.T) {
	t.Run("computes q/n + c*sqrt(ln N / n)", func(t *testing.T) {
		c := 0.7
		got := stats{rewards: 3, visits: 10}.uct1(c * c * math.Log(100))

		expected := 3.0/10 + c*math.Sqrt(math.Log(100)/10)
		require.InDelta(t, expected, got, 1e-9, "Should follow the UCT1 formula")
	})

	t.Run("exploration grows with parent visits", func(t *testing.T) {
		child := stats{rewards: 5, visits: 10}
		low := child.uct1(CSquared * math.Log(100))
		high := child.uct1(CSquared * math.Log(1000))
		require.Greater(t, high, low, "More parent visits should increase exploration term")
	})

	t.Run("exploration shrinks with child visits", func(t *testing.T) {
		spread := CSquared * math.Log(100)
		require.Greater(t, stats{rewards: 5, visits: 10}.uct1(spread), stats{rewards: 5, visits: 20}.uct1(spread),
			"More child visits should decrease exploration term")
	})

	t.Run("zero exploration is the mean reward", func(t *testing.T) {
		require.InDelta(t, 0.25, stats{rewards: 5, visits: 20}.uct1(0), 1e-9, "Should be q/n only")
	})
}

func TestPickChild(t *testing.T) {
	t.Run("unvisited child beats any visited child", func(t *testing.T) {
		children := []stats{{rewards: 100, visits: 100}, {}, {rewards: 50, visits: 50}}
		require.Equal(t, 1, pickChild(CSquared, 150, children), "Should pick the unvisited child")
	})

	t.Run("first unvisited child wins ties", func(t *testing.T) {
		children := []stats{{rewards: 1, visits: 1}, {}, {}}
		require.Equal(t, 1, pickChild(CSquared, 1, children), "Should pick the leftmost unvisited child")
	})

	t.Run("highest UCT1 value wins", func(t *testing.T) {
		// Same visits, so the exploration term is equal and the mean decides.
		children := []stats{{rewards: 2, visits: 10}, {rewards: 7, visits: 10}, {rewards: -3, visits: 10}}
		require.Equal(t, 1, pickChild(CSquared, 30, children), "Should pick the best mean")
	})

	t.Run("exploration can outweigh a better mean", func(t *testing.T) {
		children := []stats{{rewards: 60, visits: 100}, {rewards: 0, visits: 1}}
		require.Equal(t, 1, pickChild(CSquared, 101, children), "Should explore the rarely visited child")
		require.Equal(t, 0, pickChild(0, 101, children), "Should exploit without exploration")
	})

	t.Run("panics when visited children hang off an unvisited parent", func(t *testing.T) {
		require.Panics(t, func() {
			pickChild(CSquared, 0, []stats{{rewards: 1, visits: 1}})
		})
	})

	t.Run("equal values go to the leftmost child", func(t *testing.T) {
		children := []stats{{rewards: 3, visits: 6}, {rewards: 3, visits: 6}}
		require.Equal(t, 0, pickChild(CSquared, 12, children), "Should break ties left to right")
	})
}
