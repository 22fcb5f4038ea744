package main

// ViewportSize is the fixed page size for scrolling.
const ViewportSize = 10

func (g *Grid) ScrollUp() {
	g.TopRow -= ViewportSize
	g.clampVertical()
}

func (g *Grid) ScrollDown() {
	g.TopRow += ViewportSize
	g.clampVertical()
}

func (g *Grid) ScrollLeft() {
	g.LeftCol -= ViewportSize
	g.clampHorizontal()
}

func (g *Grid) ScrollRight() {
	g.LeftCol += ViewportSize
	g.clampHorizontal()
}

// ScrollTo moves the viewport origin to coord without clamping, matching
// the original's scroll_to: the caller has already bounds-checked coord.
func (g *Grid) ScrollTo(coord Coord) {
	g.TopRow = coord.Row
	g.LeftCol = coord.Col
}

func (g *Grid) clampVertical() {
	switch {
	case g.TopRow > g.Rows:
		g.TopRow -= ViewportSize
	case g.TopRow > g.Rows-ViewportSize:
		g.TopRow = g.Rows - ViewportSize
	case g.TopRow < 0:
		g.TopRow = 0
	}
}

func (g *Grid) clampHorizontal() {
	switch {
	case g.LeftCol > g.Cols:
		g.LeftCol -= ViewportSize
	case g.LeftCol > g.Cols-ViewportSize:
		g.LeftCol = g.Cols - ViewportSize
	case g.LeftCol < 0:
		g.LeftCol = 0
	}
}
