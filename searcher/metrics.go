package searcher

import (
	"sync/atomic"
	"time"
)

type Metrics struct {
	StartTime    time.Time
	Duration     time.Duration
	Episodes     int64 // MCTS iterations
	FullPlayouts int64 // playouts that reached the end of the game
	Nodes        int64 // positions visited by minimax or added to the MCTS tree
	TimedOut     bool  // the deadline cut the search short
}

type Collector interface {
	Start()
	AddEpisode()
	AddFullPlayout()
	AddNode()
	TimedOut()
	Complete() Metrics
}

type collector struct {
	startTime    time.Time
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
	nodes        atomic.Int64
	timedOut     atomic.Bool
}

// NewCollector returns a collector for one search at a time; Start resets it.
func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.nodes.Store(0)
	m.timedOut.Store(false)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) TimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) Complete() Metrics {
	return Metrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes.Load(),
		FullPlayouts: m.fullPlayouts.Load(),
		Nodes:        m.nodes.Load(),
		TimedOut:     m.timedOut.Load(),
	}
}

type noopCollector struct{}

func NewNoopCollector() Collector {
	return noopCollector{}
}

func (noopCollector) Start()            {}
func (noopCollector) AddEpisode()       {}
func (noopCollector) AddFullPlayout()   {}
func (noopCollector) AddNode()          {}
func (noopCollector) TimedOut()         {}
func (noopCollector) Complete() Metrics { return Metrics{} }
