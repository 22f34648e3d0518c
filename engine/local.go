package engine

import (
	"fmt"
	"time"

	"mcts/experiments/metrics"
	"mcts/searcher"
	"mcts/searcher/agent"

	"github.com/rs/zerolog/log"
)

// MoveHandler observes every move played by a LocalEngine
type MoveHandler[S any, A comparable] func(step int, player searcher.Player, move A, state S)

type LocalEngine[S any, A comparable] struct {
	board  searcher.Board[S, A]
	agents map[searcher.Player]agent.Agent[S, A]
	onMove MoveHandler[S, A]
}

var _ Engine[int] = (*LocalEngine[int, int])(nil)

func NewLocalEngine[S any, A comparable](board searcher.Board[S, A], agents map[searcher.Player]agent.Agent[S, A]) *LocalEngine[S, A] {
	if len(agents) < 2 {
		panic("need at least two agents")
	}
	return &LocalEngine[S, A]{board: board, agents: agents}
}

// OnMove registers a handler called after each move with the resulting state
func (e *LocalEngine[S, A]) OnMove(handler MoveHandler[S, A]) *LocalEngine[S, A] {
	e.onMove = handler
	return e
}

// Run executes the entire game loop until the game ends.
func (e *LocalEngine[S, A]) Run(state S) (searcher.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.board.CurrentPlayer(state)),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("player %d is starting", gameMetric.StartingPlayer)

	step := 1
	for !e.board.IsEnded(state) {
		if step > MaxMoves {
			return 0, gameMetric, moveMetrics, fmt.Errorf("stopped after %d moves: %w", MaxMoves, ErrMaxMoves)
		}

		player := e.board.CurrentPlayer(state)
		a, ok := e.agents[player]
		if !ok {
			return 0, gameMetric, moveMetrics, fmt.Errorf("no agent for player %d", player)
		}

		move, searchMetric, err := a.FindMove(e.board, state)
		if err != nil {
			return 0, gameMetric, moveMetrics, fmt.Errorf("player %d failed to find a move: %w", player, err)
		}
		if !e.isLegal(state, move) {
			return 0, gameMetric, moveMetrics, fmt.Errorf("player %d played %v: %w", player, move, ErrIllegalMove)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			Action:       fmt.Sprint(move),
			SearchMetric: searchMetric,
		})

		state = e.board.NextState(state, move)
		if e.onMove != nil {
			e.onMove(step, player, move, state)
		}
		step++
	}

	winner := e.winner(state)
	gameMetric.Winner = int(winner)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Debug().Msgf("game over after %d moves, winner: %d", gameMetric.TotalMoves, winner)

	return winner, gameMetric, moveMetrics, nil
}

func (e *LocalEngine[S, A]) isLegal(state S, move A) bool {
	for _, action := range e.board.LegalActions(state) {
		if action == move {
			return true
		}
	}
	return false
}

// winner returns the player scoring a win, or 0 on a draw
func (e *LocalEngine[S, A]) winner(state S) searcher.Player {
	for player, points := range e.board.PointsValues(state) {
		if points == searcher.WIN {
			return player
		}
	}
	return 0
}
