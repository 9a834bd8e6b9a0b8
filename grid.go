package xwfill

import "fmt"

// Grid is a 2D grid of runes holding the letters placed by an assignment.
//
// Cells that are blocked, or fillable but not covered by any assigned slot,
// hold the zero rune.
type Grid struct {
	grid [][]rune
}

func NewGrid(g [][]rune) Grid {
	return Grid{
		grid: g,
	}
}

func (g Grid) Width() int {
	if len(g.grid) == 0 {
		return 0
	}
	return len(g.grid[0])
}

func (g Grid) Height() int {
	return len(g.grid)
}

// Get returns the letter at (row, col), or the zero rune for an empty cell.
func (g Grid) Get(row, col int) rune {
	return g.grid[row][col]
}

func (g Grid) DebugString() string {
	return fmt.Sprintf("Grid{width: %d, height: %d, grid: %v}", g.Width(), g.Height(), g.grid)
}
