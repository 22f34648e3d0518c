package agent

import (
	"math"

	"mcts/experiments/metrics"
	"mcts/searcher"

	"golang.org/x/exp/rand"
)

type samplingAgent[S any, A comparable] struct {
	mcts        *searcher.MCTS[S, A]
	temperature float64
	rng         *rand.Rand
}

// NewSamplingAgent returns an agent that samples root actions in proportion to
// visits^(1/temperature), for varied self-play games.
func NewSamplingAgent[S any, A comparable](mcts *searcher.MCTS[S, A], temperature float64, seed uint64) Agent[S, A] {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &samplingAgent[S, A]{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *samplingAgent[S, A]) FindMove(board searcher.Board[S, A], state S) (A, metrics.SearchMetric, error) {
	var move A
	policy, metric, err := a.mcts.Simulate(board, state)
	if err != nil {
		return move, metric, err
	}
	if len(policy) == 0 {
		return move, metric, searcher.ErrNoLegalActions
	}

	probs := adjustTemperature(policy, a.temperature)
	return policy[sample(probs, a.rng.Float64())].Action, metric, nil
}

func adjustTemperature[A comparable](policy searcher.Policy[A], temperature float64) []float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(policy))
	for i, stats := range policy {
		prob := math.Pow(float64(stats.Visits), exponent)
		sum += prob
		adjusted[i] = prob
	}
	if sum == 0 {
		for i := range adjusted {
			adjusted[i] = 1.0 / float64(len(adjusted))
		}
		return adjusted
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(probs []float64, sampled float64) int {
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(probs) - 1 // Fallback in case of rounding errors
}
