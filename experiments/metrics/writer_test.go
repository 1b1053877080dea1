package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thurn/oldsdawn-sub001/config"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "cutoff")
	require.NoError(t, err)

	t.Run("creating a directory per run", func(t *testing.T) {
		rel, err := filepath.Rel(root, w.Dir())
		require.NoError(t, err)
		require.Equal(t, "cutoff", filepath.Dir(rel))
		require.DirExists(t, w.Dir())
	})

	t.Run("agent specs", func(t *testing.T) {
		require.NoError(t, w.WriteAgentSpecs([]config.AgentSpec{{Name: "mcts", Strategy: "mcts", Evaluator: "outcome", Exploration: 1.5, Seed: 9}}))

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_specs.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"mcts", "mcts", "outcome", "0", "false", "false", "0", "1.5", "0", "0", "9", "false"}, rows[1])
	})

	t.Run("game and move records", func(t *testing.T) {
		start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, w.WriteGameRecords([]GameRecord{{ID: 1, Agent1: "a", Agent2: "b", GameMetric: GameMetric{
			StartingPlayer: "Player1", WinningPlayer: "Player2", Winner: "b", Finished: true,
			StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 5,
		}}}))
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{{Game: 1, MoveMetric: MoveMetric{
			Step: 1, Player: "Player1", Agent: "a", Action: "take 1 from pile 0", Duration: time.Millisecond,
		}}}))

		games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, games, 2)
		require.Equal(t, []string{"1", "a", "b", "Player1", "Player2", "b", "false", "true",
			"2024-05-01T12:00:00Z", "2024-05-01T12:00:01Z", "1s", "5"}, games[1])

		moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Equal(t, []string{"1", "1", "Player1", "a", "take 1 from pile 0", "1ms", "false"}, moves[1])
	})

	t.Run("summary", func(t *testing.T) {
		summary := Summary{Name: "cutoff", Games: 1, Agents: []AgentSummary{{Agent: "a", Games: 1, Wins: 1, MeanMove: 2 * time.Millisecond}}}
		require.NoError(t, w.WriteSummary(summary))

		data, err := os.ReadFile(filepath.Join(w.Dir(), "summary.yaml"))
		require.NoError(t, err)
		var decoded Summary
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		require.Equal(t, summary.Agents, decoded.Agents)
		require.Contains(t, string(data), "mean_move: 2ms")
	})
}
