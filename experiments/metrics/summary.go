package metrics

import (
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

type AgentSummary struct {
	Agent          string        `yaml:"agent"`
	Games          int           `yaml:"games"`
	Wins           int           `yaml:"wins"`
	Losses         int           `yaml:"losses"`
	Draws          int           `yaml:"draws"`
	Unfinished     int           `yaml:"unfinished"`
	SelfPlay       int           `yaml:"self_play"` // games against itself, outside the win rate
	WinRate        float64       `yaml:"win_rate"`
	Moves          int           `yaml:"moves"`
	MeanMove       time.Duration `yaml:"mean_move"`
	StdDevMove     time.Duration `yaml:"stddev_move"`
	LongestMove    time.Duration `yaml:"longest_move"`
	BudgetOverruns int           `yaml:"budget_overruns"`
}

type Summary struct {
	Name      string         `yaml:"name"`
	StartTime time.Time      `yaml:"start_time"`
	EndTime   time.Time      `yaml:"end_time"`
	Games     int            `yaml:"games"`
	Agents    []AgentSummary `yaml:"agents"`
}

// Summarize aggregates results per agent, in agent name order.
func Summarize(name string, games []GameRecord, moves []MoveRecord) Summary {
	summary := Summary{Name: name, Games: len(games)}
	if len(games) > 0 {
		summary.StartTime = lo.MinBy(games, func(a, b GameRecord) bool { return a.StartTime.Before(b.StartTime) }).StartTime
		summary.EndTime = lo.MaxBy(games, func(a, b GameRecord) bool { return a.EndTime.After(b.EndTime) }).EndTime
	}

	byAgent := make(map[string]*AgentSummary)
	get := func(agent string) *AgentSummary {
		if s, ok := byAgent[agent]; ok {
			return s
		}
		s := &AgentSummary{Agent: agent}
		byAgent[agent] = s
		return s
	}

	for _, g := range games {
		if g.Agent1 == g.Agent2 {
			s := get(g.Agent1)
			s.Games++
			s.SelfPlay++
			continue
		}
		for _, agent := range []string{g.Agent1, g.Agent2} {
			s := get(agent)
			s.Games++
			switch {
			case !g.Finished:
				s.Unfinished++
			case g.Draw:
				s.Draws++
			case g.Winner == agent:
				s.Wins++
			default:
				s.Losses++
			}
		}
	}

	durations := lo.GroupBy(moves, func(m MoveRecord) string { return m.Agent })
	for agent, records := range durations {
		s := get(agent)
		seconds := lo.Map(records, func(m MoveRecord, _ int) float64 { return m.Duration.Seconds() })
		mean, std := stat.MeanStdDev(seconds, nil)
		if len(seconds) < 2 {
			std = 0
		}
		s.Moves = len(records)
		s.MeanMove = toDuration(mean)
		s.StdDevMove = toDuration(std)
		s.LongestMove = lo.MaxBy(records, func(a, b MoveRecord) bool { return a.Duration > b.Duration }).Duration
		s.BudgetOverruns = lo.CountBy(records, func(m MoveRecord) bool { return m.Overrun })
	}

	for _, s := range byAgent {
		if played := s.Games - s.SelfPlay; played > 0 {
			s.WinRate = float64(s.Wins) / float64(played)
		}
		summary.Agents = append(summary.Agents, *s)
	}
	slices.SortFunc(summary.Agents, func(a, b AgentSummary) int {
		return strings.Compare(a.Agent, b.Agent)
	})
	return summary
}

func toDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
