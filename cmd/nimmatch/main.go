package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/thurn/oldsdawn-sub001/config"
	"github.com/thurn/oldsdawn-sub001/experiments"
	"github.com/thurn/oldsdawn-sub001/experiments/metrics"
	"github.com/thurn/oldsdawn-sub001/game"
	"github.com/thurn/oldsdawn-sub001/nim"
	"github.com/thurn/oldsdawn-sub001/searcher/agent"
)

func main() {
	configPath := flag.String("config", "", "YAML config file; NIMMATCH_* environment variables override it")
	name := flag.String("name", "tournament", "experiment name, used for the output directory")
	serve := flag.Bool("serve", false, "serve the agents over HTTP instead of playing matches")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *name, *serve); err != nil {
		log.Fatal().Err(err).Msg("nimmatch failed")
	}
}

func setupLogging(level string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = zerolog.New(output).Level(parsed).With().Timestamp().Logger()
}

func run(ctx context.Context, cfg *config.Config, name string, serve bool) error {
	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	log.Info().Msgf("agents: %v", registry.Names())

	if serve {
		return agent.NewServer(registry, nim.DecodeState, cfg.MoveBudget).ListenAndServe(cfg.Server.Addr)
	}

	newGame, err := gameFactory(cfg.Nim)
	if err != nil {
		return err
	}
	matchups := experiments.RoundRobin(registry.Names())
	if len(cfg.Matchups) > 0 {
		matchups = matchups[:0]
		for _, m := range cfg.Matchups {
			matchups = append(matchups, experiments.Matchup{First: agent.Name(m.First), Second: agent.Name(m.Second)})
		}
	}

	opts := []experiments.Option{
		experiments.WithGames(cfg.Games),
		experiments.WithParallel(cfg.Parallel),
		experiments.WithMaxMoves(cfg.MaxMoves),
	}
	if cfg.Server.URL != "" {
		log.Info().Msgf("playing against agent server %s", cfg.Server.URL)
		opts = append(opts, experiments.WithRemote(cfg.Server.URL, &http.Client{Timeout: cfg.Server.Timeout}, cfg.Server.Retries))
	}
	runner := experiments.NewRunner(registry, newGame, [2]nim.Player{nim.One, nim.Two}, cfg.MoveBudget, opts...)
	result, err := runner.Run(ctx, name, matchups)
	if err != nil {
		return err
	}

	writer, err := metrics.NewWriter(cfg.OutputDir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	return result.Write(writer, name, cfg.Agents)
}

// buildRegistry uses the configured agents, or the built-in ones when none are configured.
func buildRegistry(cfg *config.Config) (*agent.Registry[nim.Player, nim.Move], error) {
	if len(cfg.Agents) > 0 {
		return agent.RegistryFromSpecs(cfg.Agents, nim.Evaluators())
	}
	return agent.NewBuilder[nim.Player, nim.Move]().Add(agent.Standard(nim.ObjectCount, nim.Outcome)...).Build()
}

func gameFactory(n config.Nim) (func() game.State[nim.Player, nim.Move], error) {
	variant, err := nim.ParseVariant(n.Variant)
	if err != nil {
		return nil, err
	}
	return func() game.State[nim.Player, nim.Move] {
		return nim.New(n.Piles, nim.WithMaxTake(n.MaxTake), nim.WithVariant(variant))
	}, nil
}
