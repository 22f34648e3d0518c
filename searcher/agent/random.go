package agent

import (
	"mcts/experiments/metrics"
	"mcts/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent[S any, A comparable] struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent playing uniformly random legal moves.
func NewRandomAgent[S any, A comparable](seed uint64) Agent[S, A] {
	return &randomAgent[S, A]{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent[S, A]) FindMove(board searcher.Board[S, A], state S) (A, metrics.SearchMetric, error) {
	var move A
	if board.IsEnded(state) {
		return move, metrics.SearchMetric{}, searcher.ErrGameOver
	}
	actions := board.LegalActions(state)
	if len(actions) == 0 {
		return move, metrics.SearchMetric{}, searcher.ErrNoLegalActions
	}
	return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
}
