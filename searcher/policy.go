package searcher

import "math"

// stats are the per-child values UCT1 selection reads.
type stats struct {
	rewards float64
	visits  int
}

// uct1 is rewards/visits + sqrt(spread/visits), where spread = C^2 * ln(parent visits) is
// shared by all siblings.
func (s stats) uct1(spread float64) float64 {
	n := float64(s.visits)
	return s.rewards/n + math.Sqrt(spread/n)
}

// pickChild returns the index of the child to descend into. An unvisited child wins over
// any visited one; ties go to the lowest index.
func pickChild(cSquared float64, parentVisits int, children []stats) int {
	for i, child := range children {
		if child.visits == 0 {
			return i
		}
	}
	if parentVisits == 0 {
		panic("visited children under an unvisited parent")
	}

	spread := cSquared * math.Log(float64(parentVisits))
	best := -1
	bestScore := math.Inf(-1)
	for i, child := range children {
		if score := child.uct1(spread); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}
