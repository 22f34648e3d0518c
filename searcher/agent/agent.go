package agent

import (
	"mcts/experiments/metrics"
	"mcts/searcher"
)

type Agent[S any, A comparable] interface {
	// FindMove returns the move to play and the metrics (if collected) of the search behind it
	FindMove(board searcher.Board[S, A], state S) (A, metrics.SearchMetric, error)
}
