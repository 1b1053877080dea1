package experiments

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/thurn/oldsdawn-sub001/config"
	"github.com/thurn/oldsdawn-sub001/engine"
	"github.com/thurn/oldsdawn-sub001/experiments/metrics"
	"github.com/thurn/oldsdawn-sub001/game"
	"github.com/thurn/oldsdawn-sub001/searcher/agent"
)

// Matchup pairs two agents. Games of a matchup alternate which of them moves first.
type Matchup struct {
	First  agent.Name
	Second agent.Name
}

// RoundRobin pairs every agent with every later one.
func RoundRobin(names []agent.Name) []Matchup {
	var matchups []Matchup
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			matchups = append(matchups, Matchup{First: names[i], Second: names[j]})
		}
	}
	return matchups
}

type Option func(s *settings)

type settings struct {
	games    int
	parallel int
	maxMoves int

	remoteURL string
	client    *http.Client
	attempts  uint
}

// WithGames sets the number of games per matchup.
func WithGames(games int) Option {
	return func(s *settings) {
		if games > 0 {
			s.games = games
		}
	}
}

// WithParallel sets how many games are played at once.
func WithParallel(parallel int) Option {
	return func(s *settings) {
		if parallel > 0 {
			s.parallel = parallel
		}
	}
}

func WithMaxMoves(maxMoves int) Option {
	return func(s *settings) {
		if maxMoves > 0 {
			s.maxMoves = maxMoves
		}
	}
}

// WithRemote plays every agent through the agent server at baseURL. Matchup names then
// refer to the server's agents.
func WithRemote(baseURL string, client *http.Client, attempts uint) Option {
	return func(s *settings) {
		s.remoteURL = baseURL
		s.client = client
		s.attempts = attempts
	}
}

// Runner plays matchups between the agents of a registry. Seats lists the players in
// turn order, the first seat moving first in a new game.
type Runner[P comparable, A comparable] struct {
	registry *agent.Registry[P, A]
	newGame  func() game.State[P, A]
	seats    [2]P
	budget   time.Duration
	settings
}

func NewRunner[P comparable, A comparable](registry *agent.Registry[P, A], newGame func() game.State[P, A], seats [2]P, budget time.Duration, opts ...Option) *Runner[P, A] {
	s := settings{games: 1, parallel: 1, maxMoves: engine.MaxMoves}
	for _, opt := range opts {
		opt(&s)
	}
	return &Runner[P, A]{registry: registry, newGame: newGame, seats: seats, budget: budget, settings: s}
}

type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

type job[P comparable, A comparable] struct {
	id     int
	first  engine.Actor[P, A]
	second engine.Actor[P, A]
}

func (r *Runner[P, A]) actor(name agent.Name) (engine.Actor[P, A], error) {
	if r.remoteURL != "" {
		return engine.NewRemote[P, A](r.remoteURL, name, r.client, r.attempts), nil
	}
	return r.registry.Lookup(name)
}

// Run plays every matchup and returns the records ordered by game id. The first failing
// game cancels the rest.
func (r *Runner[P, A]) Run(ctx context.Context, name string, matchups []Matchup) (Result, error) {
	var jobs []job[P, A]
	for _, m := range matchups {
		first, err := r.actor(m.First)
		if err != nil {
			return Result{}, err
		}
		second, err := r.actor(m.Second)
		if err != nil {
			return Result{}, err
		}
		for i := range r.games {
			j := job[P, A]{id: len(jobs) + 1, first: first, second: second}
			if i%2 == 1 {
				j.first, j.second = second, first
			}
			jobs = append(jobs, j)
		}
	}
	log.Info().Msgf("starting %s experiment: %d matchups, %d games", name, len(matchups), len(jobs))

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := r.play(j)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var all Result
	for _, result := range results {
		all.Games = append(all.Games, result.Games...)
		all.Moves = append(all.Moves, result.Moves...)
	}
	log.Info().Msgf("completed %s experiment", name)
	return all, nil
}

func (r *Runner[P, A]) play(j job[P, A]) (Result, error) {
	actors := map[P]engine.Actor[P, A]{r.seats[0]: j.first, r.seats[1]: j.second}
	e := engine.NewLocal(actors, r.budget, r.maxMoves)

	gm, moves, err := e.Run(r.newGame())
	if err != nil {
		return Result{}, fmt.Errorf("game %d between %s and %s: %w", j.id, j.first.Name(), j.second.Name(), err)
	}
	log.Info().Msgf("completed game %d between %s and %s with winner: %s", j.id, j.first.Name(), j.second.Name(), gm.Winner)

	result := Result{Games: []metrics.GameRecord{{
		ID:         j.id,
		Agent1:     string(j.first.Name()),
		Agent2:     string(j.second.Name()),
		GameMetric: gm,
	}}}
	for _, mm := range moves {
		result.Moves = append(result.Moves, metrics.MoveRecord{Game: j.id, MoveMetric: mm})
	}
	return result, nil
}

// Write stores the agent specs, the records and their summary.
func (res Result) Write(w *metrics.Writer, name string, specs []config.AgentSpec) error {
	if err := w.WriteAgentSpecs(specs); err != nil {
		return fmt.Errorf("failed to store agent specs: %w", err)
	}
	if err := w.WriteGameRecords(res.Games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := w.WriteMoveRecords(res.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	if err := w.WriteSummary(metrics.Summarize(name, res.Games, res.Moves)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	log.Info().Msgf("stored results in %s", w.Dir())
	return nil
}
