package searcher

import "fmt"

// selectThenExpand descends from the root by UCT1 until it reaches a node with untried
// actions, which it expands, or a terminal node. It returns the index reached.
func (t *tree[P, A]) selectThenExpand(cSquared float64) (int, error) {
	index := 0
	for {
		n := &t.nodes[index]
		if len(n.untried) > 0 {
			return t.expand(index)
		}
		if n.terminal() {
			return index, nil
		}
		index = n.children[pickChild(cSquared, n.visits, t.childStats(index))]
	}
}

// expand attaches the child reached by the next untried action of the node at index.
func (t *tree[P, A]) expand(index int) (int, error) {
	parent := &t.nodes[index]
	action := parent.untried[0]
	parent.untried = parent.untried[1:]

	state := parent.state.Copy()
	if err := state.ExecuteAction(parent.mover, action); err != nil {
		return 0, fmt.Errorf("expanding %v: %w", action, err)
	}
	child := newNode(state, parent.mover, action, index)

	// Appending may move the arena, so parent is not used past this point.
	childIndex := len(t.nodes)
	t.nodes = append(t.nodes, child)
	t.nodes[index].children = append(t.nodes[index].children, childIndex)
	t.nodes[index].byAction[action] = childIndex
	return childIndex, nil
}

// bestAction returns the root action whose child has the most visits, ties going to the
// first enumerated.
func (t *tree[P, A]) bestAction() (A, bool) {
	root := &t.nodes[0]
	var best A
	found := false
	maxVisits := -1
	for _, child := range root.children {
		if visits := t.nodes[child].visits; visits > maxVisits {
			maxVisits = visits
			best = t.nodes[child].action
			found = true
		}
	}
	return best, found
}

// Policy returns the visit count of each expanded root action.
func (t *tree[P, A]) policy() map[A]int {
	root := &t.nodes[0]
	result := make(map[A]int, len(root.byAction))
	for action, child := range root.byAction {
		result[action] = t.nodes[child].visits
	}
	return result
}
