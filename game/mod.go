// Package game implements tic-tac-toe as a searcher.Board.
package game

import "mcts/searcher"

const (
	Empty searcher.Player = 0
	X     searcher.Player = 1
	O     searcher.Player = 2
)

const Size = 3

// Cell indexes the board in row-major order, from 0 to 8
type Cell int

func (c Cell) String() string {
	return string(rune('a'+int(c)%Size)) + string(rune('1'+int(c)/Size))
}

// Opponent returns the other player
func Opponent(player searcher.Player) searcher.Player {
	return X + O - player
}
