package main

import (
	"fmt"
	"io"
)

// RenderGrid prints a ViewportSize-wide window of the grid anchored at
// (topRow, leftCol), matching the column-header-then-rows layout and
// fixed column widths of the original terminal renderer.
func RenderGrid(w io.Writer, g *Grid, topRow, leftCol int) {
	endRow, endCol := g.ViewportWindow(topRow, leftCol, ViewportSize)

	fmt.Fprint(w, "     ")
	for c := leftCol; c < endCol; c++ {
		fmt.Fprintf(w, "%-12s", columnLetters(c))
	}
	fmt.Fprintln(w)

	for r := topRow; r < endRow; r++ {
		fmt.Fprintf(w, "%-4d ", r+1)
		for c := leftCol; c < endCol; c++ {
			cell := g.At(Coord{Row: r, Col: c})
			if cell.Status == StatusError {
				fmt.Fprintf(w, "%-12s", "ERR")
			} else {
				fmt.Fprintf(w, "%-12d", cell.Value)
			}
		}
		fmt.Fprintln(w)
	}
}
