package searcher

import (
	"errors"
	"math"
)

const (
	DefaultEpisodes          = 1000
	DefaultExplorationFactor = 2.0
)

// Rewards recorded on a node for the player to move at that node
const WIN = 1.0
const DRAW = 0.0
const LOSS = -WIN

var (
	ErrGameOver       = errors.New("game is already over")
	ErrNoLegalActions = errors.New("no legal actions")
)

// Player identifies a side of the game
type Player int

// Board exposes the rules of a two-player, perfect-information game.
// States are values: NextState must return a new state and leave its input untouched.
type Board[S any, A comparable] interface {
	CurrentPlayer(state S) Player
	LegalActions(state S) []A
	NextState(state S, action A) S
	IsEnded(state S) bool
	// PointsValues returns the outcome per player of a terminal state, where 1 is a win.
	// It returns nil for a non-terminal state.
	PointsValues(state S) map[Player]float64
}

// ucb scores a child holding the given mean reward after parentVisits visits of its parent
func ucb(mean float64, visits, parentVisits int, c float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	return mean + exploration(visits, parentVisits, c)
}

func exploration(visits, parentVisits int, c float64) float64 {
	if visits == 0 {
		return math.Inf(1)
	}
	if parentVisits <= 1 { // ln(1) = 0, ln(0) undefined
		return 0
	}
	return c * math.Sqrt(math.Log(float64(parentVisits))) / math.Sqrt(float64(visits))
}
