package game

import (
	"strings"

	"github.com/muesli/termenv"
)

// Render draws the board as a grid, colouring marks and the last played cell.
// Pass last < 0 when no move has been played.
func Render(state State, last Cell, output *termenv.Output) string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteString("---+---+---\n")
		}
		for c := 0; c < Size; c++ {
			if c > 0 {
				sb.WriteString("|")
			}
			cell := Cell(r*Size + c)
			sb.WriteString(" " + renderCell(state, cell, cell == last, output) + " ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderCell(state State, cell Cell, highlight bool, output *termenv.Output) string {
	mark := state.Cells[cell]
	if mark == Empty {
		return output.String(".").Faint().String()
	}

	style := output.String(string(symbol(mark)))
	switch mark {
	case X:
		style = style.Foreground(output.Color("1"))
	case O:
		style = style.Foreground(output.Color("4"))
	}
	if highlight {
		style = style.Bold().Underline()
	}
	return style.String()
}
