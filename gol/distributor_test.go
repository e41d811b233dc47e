package gol

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"
)

func TestRunLocalMatchesSequential(t *testing.T) {
	world := randomGrid(t, 12, 10, 2024)
	for _, workers := range []int{1, 2, 3, 4, 6, 12} {
		for _, turns := range []int{0, 1, workers, 25} {
			t.Run(fmt.Sprintf("%d workers %d turns", workers, turns), func(t *testing.T) {
				p := Params{Turns: turns, ImageWidth: 10, ImageHeight: 12}
				got, err := RunLocal(p, world, workers)
				if err != nil {
					t.Fatal(err)
				}
				want := Simulate(world, turns)
				if !got.Equal(want) {
					t.Errorf("distributed:\n%ssequential:\n%s", got, want)
				}
			})
		}
	}
}

func TestRunLocalBlinkerAcrossWorkers(t *testing.T) {
	// The blinker sits on the boundary between rank 0 and rank 1
	world := gridFromRows(t,
		"......",
		"......",
		"..*...",
		"..*...",
		"..*...",
		"......",
	)
	p := Params{Turns: 1, ImageWidth: 6, ImageHeight: 6}
	got, err := RunLocal(p, world, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := gridFromRows(t,
		"......",
		"......",
		"......",
		".***..",
		"......",
		"......",
	)
	if !got.Equal(want) {
		t.Errorf("got:\n%swant:\n%s", got, want)
	}
}

func TestRunLocalEmptyGrid(t *testing.T) {
	world := makeGrid(8, 8)
	got, err := RunLocal(Params{Turns: 7, ImageWidth: 8, ImageHeight: 8}, world, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got.AliveCount() != 0 {
		t.Errorf("empty grid grew %d cells", got.AliveCount())
	}
}

func TestRunLocalDoesNotModifyInput(t *testing.T) {
	world := randomGrid(t, 8, 8, 5)
	before := world.Clone()
	if _, err := RunLocal(Params{Turns: 3, ImageWidth: 8, ImageHeight: 8}, world, 2); err != nil {
		t.Fatal(err)
	}
	if !world.Equal(before) {
		t.Error("run modified the initial grid")
	}
}

func TestRunLocalConfigurationErrors(t *testing.T) {
	world := randomGrid(t, 10, 4, 1)
	tests := []struct {
		name    string
		p       Params
		world   *Grid
		workers int
	}{
		{"uneven height", Params{Turns: 1, ImageWidth: 4, ImageHeight: 10}, world, 3},
		{"negative turns", Params{Turns: -1, ImageWidth: 4, ImageHeight: 10}, world, 2},
		{"zero width", Params{Turns: 1, ImageWidth: 0, ImageHeight: 10}, world, 2},
		{"dims disagree", Params{Turns: 1, ImageWidth: 5, ImageHeight: 10}, world, 2},
		{"no grid", Params{Turns: 1, ImageWidth: 4, ImageHeight: 10}, nil, 2},
		{"no workers", Params{Turns: 1, ImageWidth: 4, ImageHeight: 10}, world, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := RunLocal(test.p, test.world, test.workers)
			var config *ConfigurationError
			if !errors.As(err, &config) {
				t.Fatalf("error = %v, want ConfigurationError", err)
			}
			if got != nil {
				t.Error("grid returned with an error")
			}
		})
	}
}

func TestRunWorkerAbortsEveryRank(t *testing.T) {
	comms := NewLocalRing(3)
	world := randomGrid(t, 10, 4, 1)
	errs := make([]error, 3)
	var wg sync.WaitGroup
	for _, c := range comms {
		wg.Add(1)
		go func(c *Comm) {
			defer wg.Done()
			_, errs[c.Rank()] = RunWorker(c, Params{Turns: 2, ImageWidth: 4, ImageHeight: 10}, world)
		}(c)
	}
	wg.Wait()
	for rank, err := range errs {
		var config *ConfigurationError
		if !errors.As(err, &config) {
			t.Errorf("rank %d error = %v, want ConfigurationError", rank, err)
		}
	}
}

func TestRunWorkerOverTCP(t *testing.T) {
	const size = 3
	listeners := make([]net.Listener, size)
	peers := make([]string, size)
	for rank := range listeners {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		listeners[rank] = listener
		peers[rank] = listener.Addr().String()
	}
	comms := make([]*Comm, size)
	for rank := range comms {
		transport, err := NewNetTransport(rank, listeners[rank], peers)
		if err != nil {
			t.Fatal(err)
		}
		transport.DialRetry = 10 * time.Millisecond
		comms[rank] = NewComm(rank, size, transport)
		defer comms[rank].Close()
	}

	world := randomGrid(t, 9, 13, 77)
	p := Params{Turns: 10, ImageWidth: 13, ImageHeight: 9}
	results := make([]*Grid, size)
	errs := make([]error, size)
	var wg sync.WaitGroup
	for _, c := range comms {
		wg.Add(1)
		go func(c *Comm) {
			defer wg.Done()
			if c.Rank() == 0 {
				results[0], errs[0] = RunWorker(c, p, world)
			} else {
				results[c.Rank()], errs[c.Rank()] = RunWorker(c, Params{}, nil)
			}
		}(c)
	}
	wg.Wait()

	for rank, err := range errs {
		if err != nil {
			t.Fatalf("rank %d: %v", rank, err)
		}
	}
	if results[1] != nil || results[2] != nil {
		t.Error("non-coordinator ranks returned a grid")
	}
	if want := Simulate(world, 10); !results[0].Equal(want) {
		t.Errorf("tcp run:\n%ssequential:\n%s", results[0], want)
	}
}
