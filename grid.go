package main

import "sync"

// Grid is the dense two-dimensional cell store plus the viewport/output-
// enabled state the command layer reads and mutates.
// Stable addresses: cells are allocated once at creation and never moved.
type Grid struct {
	mu sync.RWMutex

	Rows, Cols int
	cells      [][]*Cell

	TopRow, LeftCol int
	OutputEnabled   bool
}

// NewGrid allocates a rows x cols grid with every cell zero-valued:
// value=0, status=OK, no formula, empty deps/rdeps.
func NewGrid(rows, cols int) *Grid {
	cells := make([][]*Cell, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]*Cell, cols)
		for c := 0; c < cols; c++ {
			cells[r][c] = newCell(Coord{Row: r, Col: c})
		}
	}
	return &Grid{
		Rows:          rows,
		Cols:          cols,
		cells:         cells,
		OutputEnabled: true,
	}
}

// InBounds reports whether coord addresses a real cell in this grid.
func (g *Grid) InBounds(coord Coord) bool {
	return coord.Row >= 0 && coord.Row < g.Rows && coord.Col >= 0 && coord.Col < g.Cols
}

// At returns the stable *Cell for coord. Callers must have checked
// InBounds first; At never allocates.
func (g *Grid) At(coord Coord) *Cell {
	return g.cells[coord.Row][coord.Col]
}

// CellValue implements GridReader for the formula evaluator: out-of-bounds
// coordinates are reported via ok=false rather than panicking.
func (g *Grid) CellValue(coord Coord) (int32, Status, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.InBounds(coord) {
		return 0, StatusOK, false
	}
	cell := g.cells[coord.Row][coord.Col]
	return cell.Value, cell.Status, true
}

// Lock/Unlock expose the grid's single writer lock to the edit transaction
// and scheduler, which must mutate several cells as one atomic step while
// the monitoring HTTP API, a concurrent reader, takes the read lock via
// Snapshot/CellSnapshot.
func (g *Grid) Lock()   { g.mu.Lock() }
func (g *Grid) Unlock() { g.mu.Unlock() }

// CellSnapshot is a read-only copy of one cell's externally visible state,
// safe to hand to the monitoring API or a webhook payload without holding
// the grid lock.
type CellSnapshot struct {
	Name    string
	Value   int32
	Formula string
	Status  string
}

func (g *Grid) snapshotLocked(coord Coord) CellSnapshot {
	cell := g.cells[coord.Row][coord.Col]
	return CellSnapshot{
		Name:    CoordToName(coord),
		Value:   cell.Value,
		Formula: cell.Formula,
		Status:  cell.Status.String(),
	}
}

// Snapshot returns a CellSnapshot for coord, or false if out of bounds.
func (g *Grid) Snapshot(coord Coord) (CellSnapshot, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.InBounds(coord) {
		return CellSnapshot{}, false
	}
	return g.snapshotLocked(coord), true
}

// SnapshotAll returns every written (has-formula-or-nonzero) cell, used by
// the monitoring API's whole-sheet listing.
func (g *Grid) SnapshotAll() []CellSnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := []CellSnapshot{}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			cell := g.cells[r][c]
			if cell.HasForm {
				out = append(out, g.snapshotLocked(cell.Coord))
			}
		}
	}
	return out
}

// ViewportWindow returns the [startRow, endRow) x [startCol, endCol) bounds
// clamped to the grid, anchored at (topRow, leftCol), sized size x size.
func (g *Grid) ViewportWindow(topRow, leftCol, size int) (endRow, endCol int) {
	endRow = topRow + size
	if endRow > g.Rows {
		endRow = g.Rows
	}
	endCol = leftCol + size
	if endCol > g.Cols {
		endCol = g.Cols
	}
	return endRow, endCol
}
