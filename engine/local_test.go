package engine

import (
	"errors"
	"testing"

	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"
	"mcts/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fixedAgent struct {
	move game.Cell
	err  error
}

func (a fixedAgent) FindMove(board searcher.Board[game.State, game.Cell], state game.State) (game.Cell, metrics.SearchMetric, error) {
	return a.move, metrics.SearchMetric{}, a.err
}

func TestNewLocalEngine(t *testing.T) {
	require.Panics(t, func() {
		NewLocalEngine[game.State, game.Cell](game.TicTacToe{}, map[searcher.Player]agent.Agent[game.State, game.Cell]{
			game.X: agent.NewRandomAgent[game.State, game.Cell](1),
		})
	}, "Should panic with fewer than two agents")
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("search agent against random agent", func(t *testing.T) {
		mcts := searcher.NewMCTS[game.State, game.Cell](
			searcher.WithEpisodes(300),
			searcher.WithSeed(11),
			searcher.WithMetrics(),
			searcher.WithLogger(zerolog.Nop()),
		)
		e := NewLocalEngine[game.State, game.Cell](game.TicTacToe{}, map[searcher.Player]agent.Agent[game.State, game.Cell]{
			game.X: agent.NewEvaluationAgent(mcts),
			game.O: agent.NewRandomAgent[game.State, game.Cell](12),
		})
		var moves []game.Cell
		e.OnMove(func(step int, player searcher.Player, move game.Cell, state game.State) {
			require.Equal(t, len(moves)+1, step)
			require.Equal(t, player, state.Cells[move], "Move should be applied to the state")
			moves = append(moves, move)
		})

		winner, gameMetric, moveMetrics, err := e.Run(game.NewState())

		require.NoError(t, err)
		require.Contains(t, []searcher.Player{0, game.X, game.O}, winner)
		require.Equal(t, int(winner), gameMetric.Winner)
		require.Equal(t, int(game.X), gameMetric.StartingPlayer)
		require.Equal(t, len(moves), gameMetric.TotalMoves)
		require.GreaterOrEqual(t, gameMetric.TotalMoves, 5)
		require.LessOrEqual(t, gameMetric.TotalMoves, 9)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		for _, mm := range moveMetrics {
			if mm.Player == int(game.X) {
				require.Equal(t, 300, mm.Episodes, "Search metrics should be attached to searched moves")
			} else {
				require.Zero(t, mm.Episodes)
			}
		}
	})

	t.Run("illegal move is rejected", func(t *testing.T) {
		e := NewLocalEngine[game.State, game.Cell](game.TicTacToe{}, map[searcher.Player]agent.Agent[game.State, game.Cell]{
			game.X: fixedAgent{move: 0},
			game.O: fixedAgent{move: 0},
		})

		_, _, moveMetrics, err := e.Run(game.NewState())

		require.ErrorIs(t, err, ErrIllegalMove)
		require.Len(t, moveMetrics, 1, "First move should have been played")
	})

	t.Run("agent errors are returned", func(t *testing.T) {
		failure := errors.New("no time left")
		e := NewLocalEngine[game.State, game.Cell](game.TicTacToe{}, map[searcher.Player]agent.Agent[game.State, game.Cell]{
			game.X: fixedAgent{err: failure},
			game.O: fixedAgent{},
		})

		_, _, _, err := e.Run(game.NewState())

		require.ErrorIs(t, err, failure)
	})

	t.Run("ended game has no moves", func(t *testing.T) {
		e := NewLocalEngine[game.State, game.Cell](game.TicTacToe{}, map[searcher.Player]agent.Agent[game.State, game.Cell]{
			game.X: fixedAgent{},
			game.O: fixedAgent{},
		})
		state, err := game.ParseState("XXX/OO./...")
		require.NoError(t, err)

		winner, gameMetric, moveMetrics, err := e.Run(state)

		require.NoError(t, err)
		require.Equal(t, game.X, winner)
		require.Zero(t, gameMetric.TotalMoves)
		require.Empty(t, moveMetrics)
	})
}
