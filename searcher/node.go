package searcher

import (
	"github.com/thurn/oldsdawn-sub001/game"
)

const noParent = -1

// node is one position in an MCTS tree. Nodes live in the tree's arena and refer to each
// other by index only.
type node[P comparable, A comparable] struct {
	state    game.State[P, A]
	actor    P // player whose action led here; rewards are from its perspective
	action   A
	parent   int
	mover    P // player to move in state, if any
	untried  []A
	children []int // in enumeration order
	byAction map[A]int
	rewards  float64
	visits   int
}

func (n *node[P, A]) terminal() bool {
	return len(n.untried) == 0 && len(n.children) == 0
}

// tree is the arena of one search. It is private to a single PickAction call.
type tree[P comparable, A comparable] struct {
	nodes  []node[P, A]
	player P // player to move at the root
}

func newTree[P comparable, A comparable](root game.State[P, A], player P) *tree[P, A] {
	t := &tree[P, A]{player: player}
	var none A
	t.nodes = append(t.nodes, newNode(root, player, none, noParent))
	return t
}

func newNode[P comparable, A comparable](state game.State[P, A], actor P, action A, parent int) node[P, A] {
	n := node[P, A]{
		state:    state,
		actor:    actor,
		action:   action,
		parent:   parent,
		byAction: make(map[A]int),
	}
	if mover, ok := state.Status().Current(); ok {
		n.mover = mover
		n.untried = game.CollectActions(state, mover)
	}
	return n
}

// backup adds a playout reward, given from the root player's perspective, to every node
// from index up to the root.
func (t *tree[P, A]) backup(index int, reward float64) {
	for index != noParent {
		n := &t.nodes[index]
		n.visits++
		if n.actor == t.player {
			n.rewards += reward
		} else {
			n.rewards -= reward
		}
		index = n.parent
	}
}

func (t *tree[P, A]) childStats(index int) []stats {
	children := t.nodes[index].children
	result := make([]stats, len(children))
	for i, child := range children {
		result[i] = stats{rewards: t.nodes[child].rewards, visits: t.nodes[child].visits}
	}
	return result
}
