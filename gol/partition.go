package gol

import "fmt"

// Partition is the half-open range of global rows [Start, End) owned by a rank.
type Partition struct {
	Rank  int
	Start int
	End   int
}

// Up is the ring neighbour owning the rows above rank.
func Up(rank, size int) int {
	return (rank - 1 + size) % size
}

// Down is the ring neighbour owning the rows below rank.
func Down(rank, size int) int {
	return (rank + 1) % size
}

// Partitions divides height rows into size equal row ranges
func Partitions(height, size int) ([]Partition, error) {
	if size < 1 {
		return nil, configErrorf("worker count must be positive, got %d", size)
	}
	if height < 1 {
		return nil, configErrorf("grid height must be positive, got %d", height)
	}
	if height%size != 0 {
		return nil, configErrorf("grid height %d is not divisible by %d workers", height, size)
	}
	block_height := height / size
	partitions := make([]Partition, size)
	for rank := range partitions {
		partitions[rank] = Partition{
			Rank:  rank,
			Start: rank * block_height,
			End:   (rank + 1) * block_height,
		}
	}
	return partitions, nil
}

// Block is a worker's share of the grid.
// Rows 1..blockHeight are owned by the worker; rows 0 and blockHeight+1 are
// ghost rows holding copies of the neighbours' boundary rows.
type Block struct {
	rank         int
	block_height int
	grid         *Grid
}

func (b *Block) Rank() int { return b.rank }

func (b *Block) BlockHeight() int { return b.block_height }

func (b *Block) Width() int { return b.grid.width }

// Top is a copy of the first owned row
func (b *Block) Top() []bool { return b.grid.Row(1) }

// Bottom is a copy of the last owned row
func (b *Block) Bottom() []bool { return b.grid.Row(b.block_height) }

func (b *Block) TopGhost() []bool { return b.grid.Row(0) }

func (b *Block) BottomGhost() []bool { return b.grid.Row(b.block_height + 1) }

// Interior returns the owned rows as a new grid.
func (b *Block) Interior() *Grid {
	interior := makeGrid(b.block_height, b.grid.width)
	copy(interior.cells, b.grid.cells[b.grid.width:(b.block_height+1)*b.grid.width])
	return interior
}

// Ghost rows are the only part of a block written after it is built
func (b *Block) setGhosts(top, bottom []bool) {
	b.grid.setRow(0, top)
	b.grid.setRow(b.block_height+1, bottom)
}

// BlockFor copies the rows owned by rank into a new block with dead ghost rows.
func BlockFor(g *Grid, rank, size int) (*Block, error) {
	partitions, err := Partitions(g.height, size)
	if err != nil {
		return nil, err
	}
	if rank < 0 || rank >= size {
		return nil, configErrorf("rank %d outside 0..%d", rank, size-1)
	}
	return makeBlock(g, partitions[rank]), nil
}

func makeBlock(g *Grid, partition Partition) *Block {
	block_height := partition.End - partition.Start
	block := &Block{
		rank:         partition.Rank,
		block_height: block_height,
		grid:         makeGrid(block_height+2, g.width),
	}
	copy(block.grid.cells[g.width:], g.cells[partition.Start*g.width:partition.End*g.width])
	return block
}

// Split divides g into size blocks in ascending rank order.
func Split(g *Grid, size int) ([]*Block, error) {
	partitions, err := Partitions(g.height, size)
	if err != nil {
		return nil, err
	}
	blocks := make([]*Block, size)
	for rank, partition := range partitions {
		blocks[rank] = makeBlock(g, partition)
	}
	return blocks, nil
}

// Gather reassembles the owned rows of every block into one grid.
// Each block is placed at rank*blockHeight regardless of its position in the slice.
func Gather(blocks []*Block) (*Grid, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("gather: no blocks")
	}
	block_height := blocks[0].block_height
	width := blocks[0].Width()
	placed := make([]bool, len(blocks))
	world := makeGrid(block_height*len(blocks), width)
	for _, block := range blocks {
		if block.block_height != block_height || block.Width() != width {
			return nil, fmt.Errorf("gather: block of rank %d is %dx%d, expected %dx%d",
				block.rank, block.Width(), block.block_height, width, block_height)
		}
		if block.rank < 0 || block.rank >= len(blocks) || placed[block.rank] {
			return nil, fmt.Errorf("gather: unexpected or repeated rank %d", block.rank)
		}
		placed[block.rank] = true
		start := block.rank * block_height * width
		copy(world.cells[start:start+block_height*width],
			block.grid.cells[width:(block_height+1)*width])
	}
	return world, nil
}
