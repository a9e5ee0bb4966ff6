package engine

import (
	"fmt"
	"slices"
)

// SlipList holds the creatures currently being carried by ice, force floors
// or teleports, in the order they started sliding.
type SlipList struct {
	list []*Creature
}

// Len returns the number of sliding creatures.
func (s *SlipList) Len() int {
	return len(s.list)
}

// At returns the i-th sliding creature.
func (s *SlipList) At(i int) *Creature {
	return s.list[i]
}

// Contains reports whether c is sliding.
func (s *SlipList) Contains(c *Creature) bool {
	return slices.Contains(s.list, c)
}

func (s *SlipList) add(c *Creature) {
	if s.Contains(c) {
		panic(fmt.Sprintf("engine: %s is already sliding", c))
	}
	s.list = append(s.list, c)
}

func (s *SlipList) remove(c *Creature) {
	if i := slices.Index(s.list, c); i >= 0 {
		s.list = slices.Delete(s.list, i, i+1)
	}
}

// blockAt returns the sliding block at p, if any.
func (s *SlipList) blockAt(p Position) *Creature {
	for _, c := range s.list {
		if c.Pos == p && c.Type.IsBlock() {
			return c
		}
	}
	return nil
}

// tick advances every sliding creature except chip by one cell, from the
// most recent slider to the oldest. It walks a copy so that slides starting
// or ending during the walk do not disturb it.
func (s *SlipList) tick(l *Level) {
	snapshot := slices.Clone(s.list)
	for i := len(snapshot) - 1; i >= 0; i-- {
		c := snapshot[i]
		if c.Type.IsChip() || !s.Contains(c) {
			continue
		}
		if !c.Alive() {
			l.stopSliding(c)
			continue
		}
		l.slide(c)
	}
}

// startSliding adds c to the slip list if it is not already there.
func (l *Level) startSliding(c *Creature) {
	if !c.Sliding {
		c.Sliding = true
		l.slips.add(c)
	}
	if c.Type == Chip {
		c.Type = ChipSliding
	}
}

// stopSliding removes c from the slip list.
func (l *Level) stopSliding(c *Creature) {
	if c.Sliding || l.slips.Contains(c) {
		c.Sliding = false
		l.slips.remove(c)
	}
	if c.Type == ChipSliding {
		c.Type = Chip
	}
}

// slideDirection is the direction a sliding creature is carried in.
func (l *Level) slideDirection(c *Creature) Direction {
	if d, ok := l.bg[c.Pos].ForceDirection(); ok {
		return d
	}
	return c.Dir
}

// slide performs one forced step and resolves a blocked slide.
func (l *Level) slide(c *Creature) {
	if l.moveCreature(c, l.slideDirection(c)) || !c.Alive() {
		return
	}
	floor := l.bg[c.Pos]
	switch {
	case floor.IsIce():
		c.Dir = c.Dir.Opposite()
		l.redraw(c)
	case floor.IsFF(), floor == Trap:
	default:
		l.stopSliding(c)
		if c.Type == TankMoving {
			c.Type = TankStationary
		}
	}
}

// resetSliding re-derives every sliding flag from slip list membership.
func (l *Level) resetSliding() {
	for _, c := range l.creatures.list {
		c.Sliding = l.slips.Contains(c)
	}
	l.chip.Sliding = l.slips.Contains(l.chip)
	switch {
	case l.chip.Type == Chip && l.chip.Sliding:
		l.chip.Type = ChipSliding
	case l.chip.Type == ChipSliding && !l.chip.Sliding:
		l.chip.Type = Chip
	}
}
