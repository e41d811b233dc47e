package gol

import "fmt"

// Exchange refreshes the ghost rows of b from its ring neighbours.
//
// The top row goes up and the down neighbour's top row comes back as the
// bottom ghost; the bottom row goes down and the up neighbour's bottom row
// comes back as the top ghost. Every rank makes the same two calls, so once
// both return the block boundary looks exactly like the unpartitioned torus.
func Exchange(c *Comm, b *Block) error {
	up := Up(c.rank, c.size)
	down := Down(c.rank, c.size)

	received, err := c.SendReceive(packRow(b.Top()), up, tagUpward, down, tagUpward)
	if err != nil {
		return err
	}
	bottom_ghost, err := c.haloRow(received, down, b.Width())
	if err != nil {
		return err
	}

	received, err = c.SendReceive(packRow(b.Bottom()), down, tagDownward, up, tagDownward)
	if err != nil {
		return err
	}
	top_ghost, err := c.haloRow(received, up, b.Width())
	if err != nil {
		return err
	}

	b.setGhosts(top_ghost, bottom_ghost)
	return nil
}

// Decompress a halo row and check it fits the block
func (c *Comm) haloRow(data []byte, source, width int) ([]bool, error) {
	row, err := unpackRow(data)
	if err == nil && len(row) != width {
		err = fmt.Errorf("halo row has %d cells, block is %d wide", len(row), width)
	}
	if err != nil {
		return nil, &CommunicationFailure{Op: "exchange", Rank: c.rank, Peer: source, Err: err}
	}
	return row, nil
}
