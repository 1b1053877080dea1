package agent

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/thurn/oldsdawn-sub001/game"
	"github.com/thurn/oldsdawn-sub001/searcher"
)

var (
	ErrUnknownAgent   = errors.New("unknown agent")
	ErrDuplicateAgent = errors.New("duplicate agent")
)

// Registry maps names to agents. It is built once and read-only afterwards.
type Registry[P comparable, A comparable] struct {
	agents map[Name]Agent[P, A]
}

func (r *Registry[P, A]) Lookup(name Name) (Agent[P, A], error) {
	a, ok := r.agents[name]
	if !ok {
		return Agent[P, A]{}, fmt.Errorf("%w: %s", ErrUnknownAgent, name)
	}
	return a, nil
}

// Names returns the registered names in sorted order.
func (r *Registry[P, A]) Names() []Name {
	names := lo.Keys(r.agents)
	slices.Sort(names)
	return names
}

func (r *Registry[P, A]) Len() int {
	return len(r.agents)
}

type Builder[P comparable, A comparable] struct {
	agents []Agent[P, A]
}

func NewBuilder[P comparable, A comparable]() *Builder[P, A] {
	return &Builder[P, A]{}
}

func (b *Builder[P, A]) Add(agents ...Agent[P, A]) *Builder[P, A] {
	b.agents = append(b.agents, agents...)
	return b
}

func (b *Builder[P, A]) Build() (*Registry[P, A], error) {
	r := &Registry[P, A]{agents: make(map[Name]Agent[P, A], len(b.agents))}
	for _, a := range b.agents {
		if _, ok := r.agents[a.name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAgent, a.name)
		}
		r.agents[a.name] = a
	}
	return r, nil
}

// Standard returns the built-in agents. Heuristic guides the depth-limited searches;
// outcome scores the end of MCTS playouts.
func Standard[P comparable, A comparable](heuristic, outcome game.Evaluator[P, A]) []Agent[P, A] {
	return []Agent[P, A]{
		New[P, A](Random, searcher.NewRandom[P, A](), outcome),
		New[P, A](Greedy, searcher.NewSingle[P, A](), heuristic),
		New[P, A](AlphaBetaDepth2, searcher.NewMinimax[P, A](2), heuristic),
		New[P, A](AlphaBetaDepth4, searcher.NewMinimax[P, A](4), heuristic),
		New[P, A](AlphaBetaDepth6, searcher.NewMinimax[P, A](6), heuristic),
		New[P, A](AlphaBetaDeepening, searcher.NewMinimax[P, A](64, searcher.WithIterativeDeepening()), heuristic),
		New[P, A](MonteCarlo, searcher.NewMCTS[P, A](), outcome),
		New[P, A](OmniscientAlphaBeta, searcher.NewMinimax[P, A](4), heuristic, WithOmniscience()),
	}
}
