package gol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"
)

// Longest line ReadGrid accepts
var maxLineBytes = 1 << 26

// ReadGrid parses a text grid: one line per row, '*' alive and '.' dead.
// Trailing blank lines and '\r' line endings are accepted.
func ReadGrid(r io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineBytes)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &DataFormatError{
				Line:   len(lines) + 1,
				Reason: fmt.Sprintf("row longer than %d bytes", maxLineBytes),
			}
		}
		return nil, err
	}
	for len(lines) != 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, &DataFormatError{Reason: "no rows"}
	}

	width := len(lines[0])
	if width == 0 {
		return nil, &DataFormatError{Line: 1, Reason: "empty row"}
	}
	world := makeGrid(len(lines), width)
	for y, line := range lines {
		if len(line) != width {
			return nil, &DataFormatError{
				Line:   y + 1,
				Reason: fmt.Sprintf("row has %d cells, first row has %d", len(line), width),
			}
		}
		for x := 0; x != width; x++ {
			switch line[x] {
			case '*':
				world.Set(y, x, true)
			case '.':
			default:
				return nil, &DataFormatError{
					Line:   y + 1,
					Reason: fmt.Sprintf("unexpected character %q in column %d", line[x], x+1),
				}
			}
		}
	}
	return world, nil
}

// LoadGrid reads a text grid from a file.
func LoadGrid(filename string) (*Grid, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	world, err := ReadGrid(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return world, nil
}

// WriteGrid writes g in the format read by ReadGrid.
func WriteGrid(w io.Writer, g *Grid) error {
	_, err := io.WriteString(w, g.String())
	return err
}

// SaveGrid writes g to a file, replacing any previous content.
func SaveGrid(filename string, g *Grid) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	writer := bufio.NewWriter(file)
	if err := WriteGrid(writer, g); err != nil {
		file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// RandomGrid marks filled random positions alive.
// Positions may repeat, so the grid can end up with fewer than filled live cells.
func RandomGrid(height, width, filled int, rng *rand.Rand) (*Grid, error) {
	world, err := NewGrid(height, width)
	if err != nil {
		return nil, err
	}
	if filled < 0 {
		return nil, configErrorf("filled cell count must not be negative, got %d", filled)
	}
	for i := 0; i != filled; i++ {
		world.Set(rng.Intn(height), rng.Intn(width), true)
	}
	return world, nil
}

// InitialGrid loads the grid named by input, or generates one of the size in
// params with fill random cells. A loaded grid sets the size in params.
// A zero seed picks one from the clock.
func InitialGrid(params *Params, input string, fill int, seed int64) (*Grid, error) {
	if input != "" {
		world, err := LoadGrid(input)
		if err != nil {
			return nil, err
		}
		params.ImageWidth, params.ImageHeight = world.Width(), world.Height()
		return world, nil
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return RandomGrid(params.ImageHeight, params.ImageWidth, fill, rand.New(rand.NewSource(seed)))
}
