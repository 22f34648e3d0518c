package game

import (
	"fmt"

	"mcts/searcher"
)

// TicTacToe holds the rules of the game, states are passed around by value
type TicTacToe struct{}

var _ searcher.Board[State, Cell] = TicTacToe{}

func (TicTacToe) CurrentPlayer(state State) searcher.Player {
	return state.ToMove
}

func (TicTacToe) LegalActions(state State) []Cell {
	if state.Winner() != Empty {
		return nil
	}
	actions := make([]Cell, 0, len(state.Cells))
	for i, mark := range state.Cells {
		if mark == Empty {
			actions = append(actions, Cell(i))
		}
	}
	return actions
}

func (TicTacToe) NextState(state State, cell Cell) State {
	if cell < 0 || int(cell) >= len(state.Cells) || state.Cells[cell] != Empty {
		panic(fmt.Sprintf("illegal move %v on %v", cell, state))
	}
	state.Cells[cell] = state.ToMove
	state.ToMove = Opponent(state.ToMove)
	return state
}

func (TicTacToe) IsEnded(state State) bool {
	return state.Winner() != Empty || state.isFull()
}

func (t TicTacToe) PointsValues(state State) map[searcher.Player]float64 {
	if !t.IsEnded(state) {
		return nil
	}
	switch winner := state.Winner(); winner {
	case Empty:
		return map[searcher.Player]float64{X: 0, O: 0}
	default:
		return map[searcher.Player]float64{winner: 1, Opponent(winner): -1}
	}
}

// IsLegal reports whether cell can be played in state
func (t TicTacToe) IsLegal(state State, cell Cell) bool {
	for _, action := range t.LegalActions(state) {
		if action == cell {
			return true
		}
	}
	return false
}
