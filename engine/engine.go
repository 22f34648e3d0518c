package engine

import (
	"errors"

	"mcts/experiments/metrics"
	"mcts/searcher"
)

const MaxMoves = 10000

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrMaxMoves    = errors.New("move limit reached")
)

type Engine[S any] interface {
	// Run plays a game from state till it ends or a max number of moves is reached
	Run(state S) (winner searcher.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
