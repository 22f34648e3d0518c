package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Episodes          int
	ExplorationFactor float64
	Duration          time.Duration
	FullPlayouts      int
	BotWins           int // Playouts won by the player the search is run for
	Expansions        int
	MaxDepth          int
	TreeSize          int
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID, 0 on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(explorationFactor float64)
	AddEpisode()
	AddFullPlayout(won bool)
	AddExpansion()
	ObserveDepth(depth int)
	Complete(treeSize int) SearchMetric
}

type collector struct {
	explorationFactor float64
	startTime         time.Time
	completed         atomic.Int32
	fullPlayouts      atomic.Int32
	botWins           atomic.Int32
	expansions        atomic.Int32
	maxDepth          atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(explorationFactor float64) {
	m.startTime = time.Now()
	m.explorationFactor = explorationFactor
	m.completed.Store(0)
	m.fullPlayouts.Store(0)
	m.botWins.Store(0)
	m.expansions.Store(0)
	m.maxDepth.Store(0)
}

func (m *collector) AddEpisode() {
	m.completed.Add(1)
}

func (m *collector) AddFullPlayout(won bool) {
	m.fullPlayouts.Add(1)
	if won {
		m.botWins.Add(1)
	}
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) ObserveDepth(depth int) {
	for {
		current := m.maxDepth.Load()
		if int32(depth) <= current || m.maxDepth.CompareAndSwap(current, int32(depth)) {
			return
		}
	}
}

func (m *collector) Complete(treeSize int) SearchMetric {
	return SearchMetric{
		Episodes:          int(m.completed.Load()),
		ExplorationFactor: m.explorationFactor,
		Duration:          time.Since(m.startTime),
		FullPlayouts:      int(m.fullPlayouts.Load()),
		BotWins:           int(m.botWins.Load()),
		Expansions:        int(m.expansions.Load()),
		MaxDepth:          int(m.maxDepth.Load()),
		TreeSize:          treeSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(explorationFactor float64)    {}
func (m *dummyCollector) AddEpisode()                        {}
func (m *dummyCollector) AddFullPlayout(won bool)            {}
func (m *dummyCollector) AddExpansion()                      {}
func (m *dummyCollector) ObserveDepth(depth int)             {}
func (m *dummyCollector) Complete(treeSize int) SearchMetric { return SearchMetric{} }
