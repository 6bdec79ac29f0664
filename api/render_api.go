package api

import (
	"fmt"
	"io"
	"strings"

	mb "github.com/saeidalz13/battleship-engine/models/battleship"
)

// RenderGrid draws the grid with columns 1..10 across the top and
// rows A..J down the side.
func RenderGrid(w io.Writer, grid mb.Grid) error {
	var sb strings.Builder

	sb.WriteString("  ")
	for col := 1; col <= mb.GridSize; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	sb.WriteByte('\n')

	for row, symbols := range grid.Symbols() {
		sb.WriteByte(byte('A' + row))
		sb.WriteByte(' ')
		for _, symbol := range symbols {
			sb.WriteByte(' ')
			sb.WriteRune(symbol)
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
