package gol

import (
	"strings"

	"uk.ac.bris.cs/halolife/util"
)

// Grid is a fixed-size matrix of cells stored row-major.
// Grids produced by Step or StepBlock are never modified afterwards.
type Grid struct {
	height int
	width  int
	cells  []bool
}

// NewGrid makes an all-dead grid
func NewGrid(height, width int) (*Grid, error) {
	if height < 1 || width < 1 {
		return nil, configErrorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	return makeGrid(height, width), nil
}

// Dimensions are trusted by internal callers
func makeGrid(height, width int) *Grid {
	return &Grid{
		height: height,
		width:  width,
		cells:  make([]bool, height*width),
	}
}

// Height is the number of rows
func (g *Grid) Height() int { return g.height }

// Width is the number of cells in a row
func (g *Grid) Width() int { return g.width }

// Alive reports the state of the cell at (row, col).
func (g *Grid) Alive(row, col int) bool {
	return g.cells[row*g.width+col]
}

// Set is meant for building an initial grid; stepped grids are snapshots.
func (g *Grid) Set(row, col int, alive bool) {
	g.cells[row*g.width+col] = alive
}

// Row returns a copy of one row
func (g *Grid) Row(row int) []bool {
	copied := make([]bool, g.width)
	copy(copied, g.cells[row*g.width:(row+1)*g.width])
	return copied
}

func (g *Grid) setRow(row int, values []bool) {
	copy(g.cells[row*g.width:(row+1)*g.width], values)
}

// Clone returns an independent copy of g
func (g *Grid) Clone() *Grid {
	copied := makeGrid(g.height, g.width)
	copy(copied.cells, g.cells)
	return copied
}

// Equal compares dimensions and every cell.
func (g *Grid) Equal(other *Grid) bool {
	if g.height != other.height || g.width != other.width {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (g *Grid) AliveCount() int {
	count := 0
	for _, alive := range g.cells {
		if alive {
			count++
		}
	}
	return count
}

// AliveCells lists live cells with X as column and Y as row.
func (g *Grid) AliveCells() []util.Cell {
	cells := make([]util.Cell, 0, g.AliveCount())
	for y := 0; y != g.height; y++ {
		for x := 0; x != g.width; x++ {
			if g.Alive(y, x) {
				cells = append(cells, util.Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// String renders one line per row, '*' alive and '.' dead, each line newline-terminated.
func (g *Grid) String() string {
	var builder strings.Builder
	builder.Grow((g.width + 1) * g.height)
	for y := 0; y != g.height; y++ {
		for x := 0; x != g.width; x++ {
			if g.Alive(y, x) {
				builder.WriteByte('*')
			} else {
				builder.WriteByte('.')
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// Get positions of the eight surrounding cells.
// Columns always wrap. Rows wrap only when wrapRows is set; otherwise a
// position outside the grid keeps its out-of-range Y and is read as dead.
func (g *Grid) getSurrounding(row, col int, wrapRows bool) [8]util.Cell {
	if col == 0 || row == 0 || col == g.width-1 || row == g.height-1 {
		up, down := row-1, row+1
		if wrapRows {
			up = (row - 1 + g.height) % g.height
			down = (row + 1) % g.height
		}
		left := (col - 1 + g.width) % g.width
		right := (col + 1) % g.width
		return [8]util.Cell{
			{X: left, Y: up},
			{X: col, Y: up},
			{X: right, Y: up},
			{X: left, Y: row},
			{X: right, Y: row},
			{X: left, Y: down},
			{X: col, Y: down},
			{X: right, Y: down},
		}
	}
	return [8]util.Cell{
		{X: col - 1, Y: row - 1},
		{X: col, Y: row - 1},
		{X: col + 1, Y: row - 1},
		{X: col - 1, Y: row},
		{X: col + 1, Y: row},
		{X: col - 1, Y: row + 1},
		{X: col, Y: row + 1},
		{X: col + 1, Y: row + 1},
	}
}

// countLiveNeighbours counts live cells among the eight around (row, col).
// A whole torus passes wrapRows; a worker block does not, since its ghost
// rows already hold the neighbouring workers' boundary rows.
func countLiveNeighbours(g *Grid, row, col int, wrapRows bool) int {
	count := 0
	for _, cell := range g.getSurrounding(row, col, wrapRows) {
		if cell.Y < 0 || cell.Y >= g.height {
			continue
		}
		if g.Alive(cell.Y, cell.X) {
			count++
		}
	}
	return count
}
