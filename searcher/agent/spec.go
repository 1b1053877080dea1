package agent

import (
	"fmt"

	"github.com/thurn/oldsdawn-sub001/config"
	"github.com/thurn/oldsdawn-sub001/game"
	"github.com/thurn/oldsdawn-sub001/searcher"
)

// FromSpec builds the agent a configuration entry describes, looking its evaluator up by
// name.
func FromSpec[P comparable, A comparable](spec config.AgentSpec, evaluators map[string]game.Evaluator[P, A]) (Agent[P, A], error) {
	eval, ok := evaluators[spec.Evaluator]
	if !ok {
		return Agent[P, A]{}, fmt.Errorf("agent %s: unknown evaluator %q", spec.Name, spec.Evaluator)
	}

	opts := []searcher.Option{searcher.WithCutoff(spec.Cutoff), searcher.WithIterations(spec.Iterations)}
	if spec.Seed != 0 {
		opts = append(opts, searcher.WithSeed(spec.Seed))
	}
	if spec.Exploration > 0 {
		opts = append(opts, searcher.WithExploration(spec.Exploration))
	}
	if spec.NoPruning {
		opts = append(opts, searcher.WithoutPruning())
	}
	if spec.Deepening {
		opts = append(opts, searcher.WithIterativeDeepening())
	}

	var strategy searcher.Strategy[P, A]
	switch spec.Strategy {
	case "single":
		strategy = searcher.NewSingle[P, A]()
	case "minimax":
		if spec.Depth < 1 {
			return Agent[P, A]{}, fmt.Errorf("agent %s: minimax depth must be positive, got %d", spec.Name, spec.Depth)
		}
		strategy = searcher.NewMinimax[P, A](spec.Depth, opts...)
	case "mcts":
		strategy = searcher.NewMCTS[P, A](opts...)
	case "sample":
		strategy = NewSampled(searcher.NewMCTS[P, A](opts...), spec.Temperature, spec.Seed)
	case "random":
		strategy = searcher.NewRandom[P, A](opts...)
	default:
		return Agent[P, A]{}, fmt.Errorf("agent %s: unknown strategy %q", spec.Name, spec.Strategy)
	}

	var agentOpts []Option
	if spec.Omniscient {
		agentOpts = append(agentOpts, WithOmniscience())
	}
	return New(Name(spec.Name), strategy, eval, agentOpts...), nil
}

// RegistryFromSpecs builds a registry holding one agent per spec.
func RegistryFromSpecs[P comparable, A comparable](specs []config.AgentSpec, evaluators map[string]game.Evaluator[P, A]) (*Registry[P, A], error) {
	b := NewBuilder[P, A]()
	for _, spec := range specs {
		a, err := FromSpec(spec, evaluators)
		if err != nil {
			return nil, err
		}
		b.Add(a)
	}
	return b.Build()
}
