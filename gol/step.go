package gol

// nextState applies the Game of Life rule to one cell
func nextState(alive bool, neighbours int) bool {
	return neighbours == 3 || (neighbours == 2 && alive)
}

// stepRows makes the next generation of rows [first, last) of g.
// Rows outside the range are copied through unchanged. The input is never modified.
func stepRows(g *Grid, first, last int, wrapRows bool) *Grid {
	next := makeGrid(g.height, g.width)
	for y := 0; y != first; y++ {
		next.setRow(y, g.cells[y*g.width:(y+1)*g.width])
	}
	for y := first; y != last; y++ {
		for x := 0; x != g.width; x++ {
			neighbours := countLiveNeighbours(g, y, x, wrapRows)
			next.cells[y*g.width+x] = nextState(g.Alive(y, x), neighbours)
		}
	}
	for y := last; y != g.height; y++ {
		next.setRow(y, g.cells[y*g.width:(y+1)*g.width])
	}
	return next
}

// Step advances a whole toroidal grid by one generation.
func Step(g *Grid) *Grid {
	return stepRows(g, 0, g.height, true)
}

// StepBlock advances the interior rows of a worker block by one generation.
// Ghost rows are carried over as they are; they are refreshed by the next Exchange.
func StepBlock(b *Block) *Block {
	return &Block{
		rank:         b.rank,
		block_height: b.block_height,
		grid:         stepRows(b.grid, 1, b.block_height+1, false),
	}
}

// Simulate runs the single-process kernel for the given number of turns.
func Simulate(g *Grid, turns int) *Grid {
	for turn := 0; turn < turns; turn++ {
		g = Step(g)
	}
	return g
}
