package metrics

import "time"

type MoveMetric struct {
	Step     int
	Player   string
	Agent    string
	Action   string
	Duration time.Duration
	Overrun  bool // took longer than the move budget
}

type GameMetric struct {
	StartingPlayer string
	WinningPlayer  string // empty for draws and unfinished games
	Winner         string // agent name of WinningPlayer
	Draw           bool
	Finished       bool // false when the move limit stopped the game
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type GameRecord struct {
	ID     int
	Agent1 string // moved first
	Agent2 string
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}
