package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"uk.ac.bris.cs/halolife/gol"
)

// main runs one worker of the ring. Start one process per address in -peers;
// rank 0 also builds the initial grid and writes the final one.
func main() {
	var params gol.Params

	rank := flag.Int("rank", 0, "Rank of this worker, an index into -peers.")
	peerList := flag.String("peers", os.Getenv("GOL_PEERS"), "Comma separated host:port of every worker, by rank.")
	flag.IntVar(&params.ImageWidth, "w", 1000, "Width of a generated grid (rank 0).")
	flag.IntVar(&params.ImageHeight, "h", 1000, "Height of a generated grid (rank 0).")
	flag.IntVar(&params.Turns, "turns", 100, "Number of generations to simulate (rank 0).")
	fill := flag.Int("fill", 100000, "Random cells to set alive in a generated grid (rank 0).")
	seed := flag.Int64("seed", 0, "Seed for a generated grid. 0 picks one from the clock (rank 0).")
	input := flag.String("in", "", "Text grid to load instead of generating one (rank 0).")
	output := flag.String("out", "output.txt", "File to write the final grid to (rank 0).")
	flag.Parse()

	if *peerList == "" {
		log.Fatal("no peers: set -peers or GOL_PEERS")
	}
	peers := strings.Split(*peerList, ",")

	transport, err := gol.Listen(*rank, peers)
	if err != nil {
		log.Fatal(err)
	}
	comm := gol.NewComm(*rank, len(peers), transport)
	defer comm.Close()

	var world *gol.Grid
	var load_err error
	if *rank == 0 {
		world, load_err = gol.InitialGrid(&params, *input, *fill, *seed)
		if load_err != nil {
			// The run still starts so the other ranks receive the abort
			log.Print(load_err)
		}
	}

	start := time.Now()
	final, err := gol.RunWorker(comm, params, world)
	if load_err != nil {
		comm.Close()
		log.Fatal(load_err)
	}
	if err != nil {
		comm.Close()
		log.Fatal(err)
	}
	if *rank != 0 {
		log.Printf("Worker %d done", *rank)
		return
	}
	fmt.Println(time.Since(start).Milliseconds())

	if err := gol.SaveGrid(*output, final); err != nil {
		comm.Close()
		log.Fatal(err)
	}
	log.Printf("Final turn %d: %d alive cells written to %s", params.Turns, final.AliveCount(), *output)
}
