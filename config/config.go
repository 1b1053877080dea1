package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "NIMMATCH"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel   string        `mapstructure:"log_level"`
	MoveBudget time.Duration `mapstructure:"move_budget"`
	Games      int           `mapstructure:"games"` // per matchup
	MaxMoves   int           `mapstructure:"max_moves"`
	Parallel   int           `mapstructure:"parallel"` // games played at once
	OutputDir  string        `mapstructure:"output_dir"`
	Nim        Nim           `mapstructure:"nim"`
	Agents     []AgentSpec   `mapstructure:"agents"`
	Matchups   []Matchup     `mapstructure:"matchups"`
	Server     Server        `mapstructure:"server"`
}

// Nim describes the starting position of every game.
type Nim struct {
	Piles   []int  `mapstructure:"piles"`
	MaxTake int    `mapstructure:"max_take"`
	Variant string `mapstructure:"variant"` // normal or misere
}

// AgentSpec describes one agent. Fields a strategy does not read are ignored.
type AgentSpec struct {
	Name        string  `mapstructure:"name"`
	Strategy    string  `mapstructure:"strategy"` // single, minimax, mcts, sample or random
	Evaluator   string  `mapstructure:"evaluator"`
	Depth       int     `mapstructure:"depth"`
	NoPruning   bool    `mapstructure:"no_pruning"`
	Deepening   bool    `mapstructure:"deepening"`
	Iterations  int     `mapstructure:"iterations"`
	Exploration float64 `mapstructure:"exploration"`
	Cutoff      int     `mapstructure:"cutoff"`
	Temperature float64 `mapstructure:"temperature"`
	Seed        uint64  `mapstructure:"seed"`
	Omniscient  bool    `mapstructure:"omniscient"`
}

// Matchup pairs two agents by name. First moves first.
type Matchup struct {
	First  string `mapstructure:"first"`
	Second string `mapstructure:"second"`
}

// Server configures both sides of remote play. Addr is where -serve listens; when URL is
// set, matches are played against the agent server at URL instead of local agents.
type Server struct {
	Addr    string        `mapstructure:"addr"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"` // per request
	Retries uint          `mapstructure:"retries"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("move_budget", 100*time.Millisecond)
	v.SetDefault("games", 10)
	v.SetDefault("max_moves", 10000)
	v.SetDefault("parallel", 1)
	v.SetDefault("output_dir", "results")
	v.SetDefault("nim.piles", []int{3, 4, 5})
	v.SetDefault("nim.max_take", 3)
	v.SetDefault("nim.variant", "normal")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.url", "")
	v.SetDefault("server.timeout", 10*time.Second)
	v.SetDefault("server.retries", 3)
}

// Load reads the YAML file at path, if any, then applies NIMMATCH_ environment overrides
// (NIMMATCH_MOVE_BUDGET=250ms, NIMMATCH_NIM_VARIANT=misere, ...) over the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.MoveBudget <= 0 {
		return fmt.Errorf("%w: move budget must be positive, got %v", ErrInvalidConfig, c.MoveBudget)
	}
	if c.Games < 1 || c.MaxMoves < 1 || c.Parallel < 1 {
		return fmt.Errorf("%w: games, max moves and parallel must be positive", ErrInvalidConfig)
	}
	if err := c.Nim.Validate(); err != nil {
		return err
	}

	names := make(map[string]bool, len(c.Agents))
	for _, spec := range c.Agents {
		if spec.Name == "" {
			return fmt.Errorf("%w: agent without a name", ErrInvalidConfig)
		}
		if names[spec.Name] {
			return fmt.Errorf("%w: agent %q defined twice", ErrInvalidConfig, spec.Name)
		}
		names[spec.Name] = true
	}
	for _, m := range c.Matchups {
		for _, name := range []string{m.First, m.Second} {
			if len(c.Agents) > 0 && !names[name] {
				return fmt.Errorf("%w: matchup names unknown agent %q", ErrInvalidConfig, name)
			}
		}
	}
	return nil
}

func (n Nim) Validate() error {
	if len(n.Piles) == 0 {
		return fmt.Errorf("%w: nim needs at least one pile", ErrInvalidConfig)
	}
	for _, pile := range n.Piles {
		if pile < 0 {
			return fmt.Errorf("%w: negative pile %d", ErrInvalidConfig, pile)
		}
	}
	if n.MaxTake < 1 {
		return fmt.Errorf("%w: max take must be positive, got %d", ErrInvalidConfig, n.MaxTake)
	}
	if n.Variant != "normal" && n.Variant != "misere" {
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, n.Variant)
	}
	return nil
}
