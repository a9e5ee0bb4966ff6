package engine

import (
	"encoding/binary"
	"fmt"
)

// Snapshot format tags.
const (
	tagLegacy       = 0x05
	tagUncompressed = 0x06
	tagCompressed   = 0x07
)

// Save returns a compressed snapshot of the full simulation state.
func (l *Level) Save() []byte {
	return l.save(tagCompressed)
}

// SaveUncompressed returns a snapshot with raw layers.
func (l *Level) SaveUncompressed() []byte {
	return l.save(tagUncompressed)
}

func (l *Level) save(tag byte) []byte {
	w := &snapshotWriter{buf: make([]byte, 0, 2*BoardSize+64)}
	w.u8(tag)
	w.u16(packCreature(l.chip))
	if tag == tagCompressed {
		w.buf = append(w.buf, compressLayers(&l.bg, &l.fg)...)
	} else {
		encodeLayers(w, &l.bg, &l.fg)
	}
	w.u32(uint32(l.tickNumber))
	encodeInventory(w, &l.inventory)
	w.u32(l.rng.State())
	if tag != tagLegacy {
		w.u16(uint16(int16(l.mouseTarget)))
	}
	encodeTraps(w, l.traps)
	encodeCreatures(w, l.creatures.list)
	encodeCreatures(w, l.slips.list)
	return w.buf
}

// Load replaces the simulation state with a snapshot taken from the same
// level. The level is left untouched when the snapshot is rejected.
func (l *Level) Load(data []byte) error {
	r := &snapshotReader{data: data}
	tag := r.u8()
	if r.err == nil && tag != tagLegacy && tag != tagUncompressed && tag != tagCompressed {
		return fmt.Errorf("%w: unknown tag 0x%02x", ErrCorruptState, tag)
	}

	chip, err := unpackCreature(r.u16())
	if r.err != nil {
		return r.err
	}
	if err != nil {
		return err
	}
	if !chip.Type.IsChip() && chip.Type != Dead {
		return fmt.Errorf("%w: chip word holds %s", ErrCorruptState, chip.Type)
	}

	var b board
	if tag == tagCompressed {
		n, err := expandLayers(r.rest(), &b.bg, &b.fg)
		if err != nil {
			return err
		}
		r.skip(n)
	} else {
		decodeLayers(r, &b.bg, &b.fg)
	}

	tick := r.u32()
	var inv inventory
	decodeInventory(r, &inv)
	rngState := r.u32()
	mouse := NoPosition
	if tag != tagLegacy {
		mouse = Position(int16(r.u16()))
	}
	traps := decodeTraps(r)
	roster, err := decodeCreatures(r)
	if err != nil {
		return err
	}
	slipping, err := decodeCreatures(r)
	if err != nil {
		return err
	}
	if r.err != nil {
		return r.err
	}
	if r.off != len(data) {
		return fmt.Errorf("%w: %d trailing bytes", ErrCorruptState, len(data)-r.off)
	}

	if tick > 1<<31-1 {
		return fmt.Errorf("%w: tick %d", ErrCorruptState, tick)
	}
	if mouse != NoPosition && !mouse.Valid() {
		return fmt.Errorf("%w: mouse target %d", ErrCorruptState, mouse)
	}
	if len(traps) != len(l.traps) {
		return fmt.Errorf("%w: %d trap bytes, level has %d", ErrCorruptState, len(traps), len(l.traps))
	}
	for _, c := range roster {
		if c.Type.IsChip() {
			return fmt.Errorf("%w: chip in creature list", ErrCorruptState)
		}
	}

	slips := &SlipList{}
	for _, s := range slipping {
		c := s
		switch {
		case s.Type.IsChip():
			if s.Pos != chip.Pos {
				return fmt.Errorf("%w: sliding chip at %s, chip at %s", ErrCorruptState, s.Pos, chip.Pos)
			}
			c = chip
		default:
			for _, rc := range roster {
				if rc.Pos == s.Pos && rc.Type == s.Type && !slips.Contains(rc) {
					c = rc
					break
				}
			}
		}
		if slips.Contains(c) {
			return fmt.Errorf("%w: %s slides twice", ErrCorruptState, c)
		}
		c.Dir = s.Dir
		c.Sliding = true
		slips.list = append(slips.list, c)
	}

	l.board = b
	l.inventory = inv
	l.chip = chip
	l.creatures = newCreatureList(roster)
	l.slips = slips
	l.tickNumber = int(tick)
	l.rng.SetState(rngState)
	l.mouseTarget = mouse
	l.traps = traps
	l.presses = nil
	l.resetSliding()
	return nil
}

type snapshotWriter struct {
	buf []byte
}

func (w *snapshotWriter) u8(v byte) {
	w.buf = append(w.buf, v)
}

func (w *snapshotWriter) u16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *snapshotWriter) u32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// snapshotReader reads big-endian fields and remembers the first short read.
type snapshotReader struct {
	data []byte
	off  int
	err  error
}

func (r *snapshotReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.data) {
		r.err = fmt.Errorf("%w: truncated at byte %d", ErrCorruptState, r.off)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *snapshotReader) rest() []byte {
	if r.err != nil {
		return nil
	}
	return r.data[r.off:]
}

func (r *snapshotReader) skip(n int) {
	r.take(n)
}

func (r *snapshotReader) u8() byte {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *snapshotReader) u16() uint16 {
	if b := r.take(2); b != nil {
		return binary.BigEndian.Uint16(b)
	}
	return 0
}

func (r *snapshotReader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.BigEndian.Uint32(b)
	}
	return 0
}

func encodeLayers(w *snapshotWriter, bg, fg *Layer) {
	w.buf = append(w.buf, bg.Bytes()...)
	w.buf = append(w.buf, fg.Bytes()...)
}

func decodeLayers(r *snapshotReader, bg, fg *Layer) {
	for _, l := range []*Layer{bg, fg} {
		raw := r.take(BoardSize)
		for i, b := range raw {
			if !Tile(b).Valid() {
				r.err = fmt.Errorf("%w: bad tile byte 0x%02x", ErrCorruptState, b)
				return
			}
			l[i] = Tile(b)
		}
	}
}

func encodeInventory(w *snapshotWriter, inv *inventory) {
	w.u16(uint16(inv.chipsLeft))
	for _, k := range inv.keys {
		w.u16(k)
	}
	for _, b := range inv.boots {
		w.u8(b)
	}
}

func decodeInventory(r *snapshotReader, inv *inventory) {
	inv.chipsLeft = int(r.u16())
	for i := range inv.keys {
		inv.keys[i] = r.u16()
	}
	for i := range inv.boots {
		inv.boots[i] = r.u8()
	}
}

func encodeTraps(w *snapshotWriter, t trapBits) {
	w.u16(uint16(len(t)))
	w.buf = append(w.buf, t...)
}

func decodeTraps(r *snapshotReader) trapBits {
	n := int(r.u16())
	return append(trapBits{}, r.take(n)...)
}

func encodeCreatures(w *snapshotWriter, cs []*Creature) {
	w.u16(uint16(len(cs)))
	for _, c := range cs {
		w.u16(packCreature(c))
	}
}

func decodeCreatures(r *snapshotReader) ([]*Creature, error) {
	n := int(r.u16())
	cs := make([]*Creature, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		c, err := unpackCreature(r.u16())
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, r.err
}
