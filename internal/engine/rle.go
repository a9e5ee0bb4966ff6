package engine

import "fmt"

const (
	rleEscape = 0x7F
	rleEnd    = 0x7E
	rleMinRun = 4
	rleMaxRun = 0xFF
)

// compressLayers run-length encodes the background then the foreground.
// A run is written as escape, count, tile. Tiles never reach the escape or
// end bytes, so literals need no quoting.
func compressLayers(bg, fg *Layer) []byte {
	cells := make([]Tile, 0, 2*BoardSize)
	cells = append(cells, bg[:]...)
	cells = append(cells, fg[:]...)

	out := make([]byte, 0, 256)
	for i := 0; i < len(cells); {
		t := cells[i]
		n := 1
		for i+n < len(cells) && cells[i+n] == t && n < rleMaxRun {
			n++
		}
		if n >= rleMinRun {
			out = append(out, rleEscape, byte(n), byte(t))
		} else {
			for j := 0; j < n; j++ {
				out = append(out, byte(t))
			}
		}
		i += n
	}
	return append(out, rleEnd)
}

// expandLayers decodes an RLE stream into bg and fg and returns the number
// of bytes consumed, end sentinel included.
func expandLayers(data []byte, bg, fg *Layer) (int, error) {
	var cells [2 * BoardSize]Tile
	n := 0
	i := 0
	for {
		if i >= len(data) {
			return 0, fmt.Errorf("%w: layer stream truncated", ErrCorruptState)
		}
		b := data[i]
		switch {
		case b == rleEnd:
			i++
			if n != len(cells) {
				return 0, fmt.Errorf("%w: layer stream has %d cells", ErrCorruptState, n)
			}
			copy(bg[:], cells[:BoardSize])
			copy(fg[:], cells[BoardSize:])
			return i, nil
		case b == rleEscape:
			if i+2 >= len(data) {
				return 0, fmt.Errorf("%w: run truncated", ErrCorruptState)
			}
			count, t := int(data[i+1]), Tile(data[i+2])
			if !t.Valid() || count == 0 || n+count > len(cells) {
				return 0, fmt.Errorf("%w: bad run of %d x %d", ErrCorruptState, count, t)
			}
			for j := 0; j < count; j++ {
				cells[n+j] = t
			}
			n += count
			i += 3
		default:
			t := Tile(b)
			if !t.Valid() || n >= len(cells) {
				return 0, fmt.Errorf("%w: bad tile byte 0x%02x", ErrCorruptState, b)
			}
			cells[n] = t
			n++
			i++
		}
	}
}
