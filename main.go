package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"uk.ac.bris.cs/halolife/gol"
	"uk.ac.bris.cs/halolife/sdl"
)

// main runs every worker as a goroutine of this process, connected by an in-memory ring.
func main() {
	runtime.LockOSThread()
	var params gol.Params

	flag.IntVar(&params.ImageWidth, "w", 1000, "Width of a generated grid.")
	flag.IntVar(&params.ImageHeight, "h", 1000, "Height of a generated grid. Must divide by -workers.")
	flag.IntVar(&params.Turns, "turns", 100, "Number of generations to simulate.")
	workers := flag.Int("workers", 4, "Number of workers in the ring.")
	fill := flag.Int("fill", 100000, "Random cells to set alive in a generated grid.")
	seed := flag.Int64("seed", 0, "Seed for a generated grid. 0 picks one from the clock.")
	input := flag.String("in", "", "Text grid to load instead of generating one.")
	output := flag.String("out", "output.txt", "File to write the final grid to.")
	initial := flag.String("initial", "", "File to write the initial grid to, if set.")
	sequential := flag.Bool("sequential", false, "Run the single-process kernel instead of the worker ring.")
	noVis := flag.Bool("noVis", true, "Disables the SDL window showing the final grid.")
	flag.Parse()

	world, err := gol.InitialGrid(&params, *input, *fill, *seed)
	if err != nil {
		log.Fatal(err)
	}
	ring_size := *workers
	if *sequential {
		ring_size = 1
	}
	if err := gol.Validate(params, world, ring_size); err != nil {
		log.Fatal(err)
	}
	if *initial != "" {
		if err := gol.SaveGrid(*initial, world); err != nil {
			log.Fatal(err)
		}
	}

	start := time.Now()
	var final *gol.Grid
	if *sequential {
		final = gol.Simulate(world, params.Turns)
	} else {
		final, err = gol.RunLocal(params, world, *workers)
		if err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println(time.Since(start).Milliseconds())

	if err := gol.SaveGrid(*output, final); err != nil {
		log.Fatal(err)
	}
	log.Printf("Final turn %d: %d alive cells written to %s", params.Turns, final.AliveCount(), *output)

	if !*noVis {
		if err := sdl.Run(final.Width(), final.Height(), final.AliveCells()); err != nil {
			log.Fatal(err)
		}
	}
}
