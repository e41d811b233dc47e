package gol

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadGrid(t *testing.T) {
	world, err := ReadGrid(strings.NewReader("*..\r\n.*.\r\n..*\r\n\r\n"))
	if err != nil {
		t.Fatal(err)
	}
	if world.Height() != 3 || world.Width() != 3 {
		t.Fatalf("grid is %dx%d", world.Width(), world.Height())
	}
	for i := 0; i != 3; i++ {
		if !world.Alive(i, i) {
			t.Errorf("cell (%d,%d) dead", i, i)
		}
	}
	if world.AliveCount() != 3 {
		t.Errorf("AliveCount() = %d, want 3", world.AliveCount())
	}
}

func TestReadGridFormatErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"empty", "", 0},
		{"blank lines only", "\n\n", 0},
		{"short row", "***\n**\n***\n", 2},
		{"long row", "..\n..\n...\n", 3},
		{"unknown character", "..\n.o\n", 2},
		{"blank row inside", "..\n\n..\n", 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadGrid(strings.NewReader(test.input))
			var format *DataFormatError
			if !errors.As(err, &format) {
				t.Fatalf("error = %v, want DataFormatError", err)
			}
			if format.Line != test.line {
				t.Errorf("line = %d, want %d", format.Line, test.line)
			}
		})
	}
}

func TestWriteGridRoundTrip(t *testing.T) {
	world := randomGrid(t, 7, 9, 8)
	var buffer bytes.Buffer
	if err := WriteGrid(&buffer, world); err != nil {
		t.Fatal(err)
	}
	read, err := ReadGrid(&buffer)
	if err != nil {
		t.Fatal(err)
	}
	if !read.Equal(world) {
		t.Error("written grid reads back differently")
	}
}

func TestSaveAndLoadGrid(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "output.txt")
	world := gridFromRows(t, ".*", "*.")
	if err := SaveGrid(filename, world); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != ".*\n*.\n" {
		t.Errorf("file content %q", data)
	}
	loaded, err := LoadGrid(filename)
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.Equal(world) {
		t.Error("loaded grid differs")
	}
}

func TestLoadGridNamesFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(filename, []byte("*x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadGrid(filename)
	var format *DataFormatError
	if !errors.As(err, &format) || !strings.Contains(err.Error(), "bad.txt") {
		t.Errorf("error = %v", err)
	}
}

func TestRandomGrid(t *testing.T) {
	a, err := RandomGrid(20, 30, 100, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := RandomGrid(20, 30, 100, rand.New(rand.NewSource(1)))
	if !a.Equal(b) {
		t.Error("same seed gave different grids")
	}
	if n := a.AliveCount(); n == 0 || n > 100 {
		t.Errorf("AliveCount() = %d, want 1..100", n)
	}
	if _, err := RandomGrid(5, 5, -1, rand.New(rand.NewSource(1))); err == nil {
		t.Error("negative fill accepted")
	}
}

func TestReadGridRowTooLong(t *testing.T) {
	saved := maxLineBytes
	maxLineBytes = 16
	defer func() { maxLineBytes = saved }()

	_, err := ReadGrid(strings.NewReader("....\n" + strings.Repeat(".", 40) + "\n"))
	var format *DataFormatError
	if !errors.As(err, &format) {
		t.Fatalf("got %v, want a DataFormatError", err)
	}
	if format.Line != 2 {
		t.Errorf("error on line %d, want 2", format.Line)
	}
}

func TestInitialGridFromFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(filename, []byte("*..\n.*.\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	params := Params{Turns: 5}
	world, err := InitialGrid(&params, filename, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if params.ImageWidth != 3 || params.ImageHeight != 2 {
		t.Errorf("params sized %dx%d, want 3x2", params.ImageWidth, params.ImageHeight)
	}
	if world.AliveCount() != 2 {
		t.Errorf("AliveCount() = %d, want 2", world.AliveCount())
	}
}

func TestInitialGridRandom(t *testing.T) {
	params := Params{ImageWidth: 8, ImageHeight: 4}
	first, err := InitialGrid(&params, "", 10, 7)
	if err != nil {
		t.Fatal(err)
	}
	second, err := InitialGrid(&params, "", 10, 7)
	if err != nil {
		t.Fatal(err)
	}
	if first.Height() != 4 || first.Width() != 8 {
		t.Fatalf("grid is %dx%d, want 8x4", first.Width(), first.Height())
	}
	if !first.Equal(second) {
		t.Error("same seed gave different grids")
	}
}
