package util

// Cell is used as the return type for the list of alive cells
type Cell struct {
	X, Y int
}
