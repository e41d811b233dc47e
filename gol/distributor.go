package gol

import (
	"errors"
	"log"
	"sync"
)

// Params provides the details of how to run the Game of Life.
type Params struct {
	Turns       int
	ImageWidth  int
	ImageHeight int
}

// Validate checks a run of p on world can be shared between workers.
// The coordinator calls it before anything is sent to the other ranks.
func Validate(p Params, world *Grid, size int) error {
	if p.ImageWidth < 1 || p.ImageHeight < 1 {
		return configErrorf("grid dimensions must be positive, got %dx%d", p.ImageWidth, p.ImageHeight)
	}
	if p.Turns < 0 {
		return configErrorf("turn count must not be negative, got %d", p.Turns)
	}
	if world == nil {
		return configErrorf("no initial grid")
	}
	if world.width != p.ImageWidth || world.height != p.ImageHeight {
		return configErrorf("grid is %dx%d, params say %dx%d",
			world.width, world.height, p.ImageWidth, p.ImageHeight)
	}
	if _, err := Partitions(p.ImageHeight, size); err != nil {
		return err
	}
	return nil
}

// RunWorker takes one rank through a whole run:
// setup broadcast, then Turns rounds of exchange, step and barrier, then gather.
//
// Only the coordinator (rank 0) reads p and world; other ranks receive both
// in the broadcast and may pass zero values. The final grid is returned on
// rank 0 and nil elsewhere. A failure at any rank leaves its peers blocked
// at their next synchronisation point unless the transport is closed.
func RunWorker(c *Comm, p Params, world *Grid) (*Grid, error) {

	// Init and broadcast
	var setup_data []byte
	if c.rank == coordinator {
		s := setup{ok: true, params: p, world: world}
		if err := Validate(p, world, c.size); err != nil {
			s = setup{reason: err.Error()}
			var config *ConfigurationError
			if errors.As(err, &config) {
				s.reason = config.Reason
			}
		} else {
			log.Printf("Init: %dx%dx%d (%d workers)", p.ImageWidth, p.ImageHeight, p.Turns, c.size)
		}
		setup_data = encodeSetup(s)
	}
	setup_data, err := c.Broadcast(setup_data, coordinator)
	if err != nil {
		return nil, err
	}
	s, err := decodeSetup(setup_data)
	if err != nil {
		return nil, &CommunicationFailure{Op: "broadcast", Rank: c.rank, Peer: coordinator, Err: err}
	}
	if !s.ok {
		return nil, &ConfigurationError{Reason: s.reason}
	}

	block, err := BlockFor(s.world, c.rank, c.size)
	if err != nil {
		return nil, err
	}

	// Evaluate all turns
	for turn := 0; turn != s.params.Turns; turn++ {
		if err := Exchange(c, block); err != nil {
			return nil, err
		}
		block = StepBlock(block)
		if err := c.Barrier(); err != nil {
			return nil, err
		}
	}

	// Collect owned rows at the coordinator
	payloads, err := c.Gather(packRow(block.Interior().cells), coordinator)
	if err != nil || c.rank != coordinator {
		return nil, err
	}
	blocks := make([]*Block, c.size)
	for rank, payload := range payloads {
		cells, err := unpackRow(payload)
		if err == nil && len(cells) != block.block_height*block.Width() {
			err = errShortPayload
		}
		if err != nil {
			return nil, &CommunicationFailure{Op: "gather", Rank: c.rank, Peer: rank, Err: err}
		}
		interior := &Grid{height: block.block_height, width: block.Width(), cells: cells}
		blocks[rank] = makeBlock(interior, Partition{Rank: rank, Start: 0, End: block.block_height})
	}
	return Gather(blocks)
}

// RunLocal runs a whole simulation with one goroutine per worker on an in-memory ring.
// If any worker fails the ring is closed so the others stop waiting, and the
// first error is returned.
func RunLocal(p Params, world *Grid, workers int) (*Grid, error) {
	if workers < 1 {
		return nil, configErrorf("worker count must be positive, got %d", workers)
	}
	comms := NewLocalRing(workers)
	defer comms[coordinator].Close()

	var wg sync.WaitGroup
	var once sync.Once
	var first_err error
	var result *Grid
	for _, c := range comms {
		wg.Add(1)
		go func(c *Comm) {
			defer wg.Done()
			final, err := RunWorker(c, p, world)
			if err != nil {
				once.Do(func() {
					first_err = err
					c.Close()
				})
				return
			}
			if c.rank == coordinator {
				result = final
			}
		}(c)
	}
	wg.Wait()
	if first_err != nil {
		return nil, first_err
	}
	return result, nil
}
