package agent

import (
	"mcts/experiments/metrics"
	"mcts/searcher"
)

type evaluationAgent[S any, A comparable] struct {
	mcts *searcher.MCTS[S, A]
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent[S any, A comparable](mcts *searcher.MCTS[S, A]) Agent[S, A] {
	return evaluationAgent[S, A]{mcts: mcts}
}

func (a evaluationAgent[S, A]) FindMove(board searcher.Board[S, A], state S) (A, metrics.SearchMetric, error) {
	return a.mcts.FindMove(board, state)
}
