package game

import (
	"errors"
	"fmt"
	"strings"

	"mcts/searcher"
)

var ErrInvalidBoard = errors.New("invalid board")

var lines = [8][3]Cell{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // Rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // Columns
	{0, 4, 8}, {2, 4, 6},            // Diagonals
}

// State is an immutable tic-tac-toe position
type State struct {
	Cells  [Size * Size]searcher.Player
	ToMove searcher.Player
}

func NewState() State {
	return State{ToMove: X}
}

// ParseState reads rows separated by '/' or newlines, using 'X', 'O' and '.' for cells.
// The player to move is derived from the number of marks.
func ParseState(board string) (State, error) {
	rows := strings.FieldsFunc(board, func(r rune) bool { return r == '/' || r == '\n' })
	if len(rows) != Size {
		return State{}, fmt.Errorf("expected %d rows, got %d: %w", Size, len(rows), ErrInvalidBoard)
	}

	var state State
	crosses, noughts := 0, 0
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != Size {
			return State{}, fmt.Errorf("row %d has %d cells: %w", r+1, len(row), ErrInvalidBoard)
		}
		for c, mark := range strings.ToUpper(row) {
			i := r*Size + c
			switch mark {
			case 'X':
				state.Cells[i] = X
				crosses++
			case 'O':
				state.Cells[i] = O
				noughts++
			case '.', '-', '_':
			default:
				return State{}, fmt.Errorf("unknown mark %q: %w", mark, ErrInvalidBoard)
			}
		}
	}

	switch crosses - noughts {
	case 0:
		state.ToMove = X
	case 1:
		state.ToMove = O
	default:
		return State{}, fmt.Errorf("%d X marks against %d O marks: %w", crosses, noughts, ErrInvalidBoard)
	}
	return state, nil
}

// Winner returns the player with three in a line, or Empty
func (s State) Winner() searcher.Player {
	for _, line := range lines {
		mark := s.Cells[line[0]]
		if mark != Empty && mark == s.Cells[line[1]] && mark == s.Cells[line[2]] {
			return mark
		}
	}
	return Empty
}

func (s State) isFull() bool {
	for _, mark := range s.Cells {
		if mark == Empty {
			return false
		}
	}
	return true
}

func (s State) String() string {
	var sb strings.Builder
	for i, mark := range s.Cells {
		if i > 0 && i%Size == 0 {
			sb.WriteByte('/')
		}
		sb.WriteByte(symbol(mark))
	}
	return sb.String()
}

func symbol(mark searcher.Player) byte {
	switch mark {
	case X:
		return 'X'
	case O:
		return 'O'
	default:
		return '.'
	}
}
