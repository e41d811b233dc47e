package gol

import (
	"encoding/binary"
	"errors"
)

var errShortPayload = errors.New("payload too short")

// Pack cells into bits, eight per byte, least significant bit first
func packCells(cells []bool, dest []byte) {
	for i, alive := range cells {
		if alive {
			dest[i/8] |= 1 << (i % 8)
		}
	}
}

// Unpack count cells from bit-packed data
func unpackCells(data []byte, count int) ([]bool, error) {
	if len(data) < (count+7)/8 {
		return nil, errShortPayload
	}
	cells := make([]bool, count)
	for i := range cells {
		cells[i] = data[i/8]&(1<<(i%8)) != 0
	}
	return cells, nil
}

// Compress a row to a varint cell count followed by packed bits
func packRow(row []bool) []byte {
	var length_bytes [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(length_bytes[:], uint64(len(row)))
	data := make([]byte, n+(len(row)+7)/8)
	copy(data, length_bytes[:n])
	packCells(row, data[n:])
	return data
}

// Decompress a row produced by packRow
func unpackRow(data []byte) ([]bool, error) {
	length, n := binary.Uvarint(data)
	if n <= 0 || length > uint64(len(data)-n)*8 {
		return nil, errShortPayload
	}
	return unpackCells(data[n:], int(length))
}

// Setup message sent from the coordinator to every worker.
// A failed setup carries only the reason, so every rank aborts together.
type setup struct {
	ok     bool
	reason string
	params Params
	world  *Grid
}

func encodeSetup(s setup) []byte {
	data := make([]byte, 0, 64)
	var buffer [binary.MaxVarintLen64]byte
	putVarint := func(value int) {
		n := binary.PutVarint(buffer[:], int64(value))
		data = append(data, buffer[:n]...)
	}
	if !s.ok {
		data = append(data, 0)
		putVarint(len(s.reason))
		return append(data, s.reason...)
	}
	data = append(data, 1)
	putVarint(s.params.ImageHeight)
	putVarint(s.params.ImageWidth)
	putVarint(s.params.Turns)
	cells := make([]byte, (len(s.world.cells)+7)/8)
	packCells(s.world.cells, cells)
	return append(data, cells...)
}

func decodeSetup(data []byte) (setup, error) {
	if len(data) == 0 {
		return setup{}, errShortPayload
	}
	ok := data[0] == 1
	data = data[1:]
	readVarint := func() (int, error) {
		value, n := binary.Varint(data)
		if n <= 0 {
			return 0, errShortPayload
		}
		data = data[n:]
		return int(value), nil
	}
	if !ok {
		length, err := readVarint()
		if err != nil {
			return setup{}, err
		}
		if length < 0 || len(data) < length {
			return setup{}, errShortPayload
		}
		return setup{reason: string(data[:length])}, nil
	}
	var values [3]int
	for i := range values {
		value, err := readVarint()
		if err != nil {
			return setup{}, err
		}
		values[i] = value
	}
	p := Params{ImageHeight: values[0], ImageWidth: values[1], Turns: values[2]}
	if p.ImageHeight < 1 || p.ImageWidth < 1 || p.ImageHeight > len(data)*8 || p.ImageWidth > len(data)*8 {
		return setup{}, errShortPayload
	}
	cells, err := unpackCells(data, p.ImageHeight*p.ImageWidth)
	if err != nil {
		return setup{}, err
	}
	return setup{
		ok:     true,
		params: p,
		world:  &Grid{height: p.ImageHeight, width: p.ImageWidth, cells: cells},
	}, nil
}
