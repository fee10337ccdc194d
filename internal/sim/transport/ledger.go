package transport

import (
	"errors"
	"fmt"
	"math"

	"starbase.reloaded/internal/sim/catalogs"
	"starbase.reloaded/internal/sim/world"
)

// DefaultCapacity is the number of ship ids a ledger covers.
const DefaultCapacity = world.MaxShips

var (
	ErrShipRange  = errors.New("ship id out of ledger range")
	ErrCountRange = errors.New("component count out of range")
)

// Ship is the component cargo of one ship. The zero value is empty.
type Ship struct {
	Engines   [catalogs.EngineSlots]uint16
	Beams     [catalogs.BeamSlots]uint16
	Launchers [catalogs.TorpedoSlots]uint16
}

func (s *Ship) slots(c Class) []uint16 {
	switch c {
	case Engine:
		return s.Engines[:]
	case Beam:
		return s.Beams[:]
	case Launcher:
		return s.Launchers[:]
	}
	panic(fmt.Sprintf("transport: unknown class %d", int(c)))
}

// Count returns the number of units of one slot aboard.
func (s *Ship) Count(c Class, slot int) (int, error) {
	if err := c.checkSlot(slot); err != nil {
		return 0, err
	}
	return int(s.slots(c)[slot-1]), nil
}

// Set stores the number of units of one slot.
func (s *Ship) Set(c Class, slot, n int) error {
	if err := c.checkSlot(slot); err != nil {
		return err
	}
	if n < 0 || n > math.MaxUint16 {
		return fmt.Errorf("%s slot %d: %d: %w", c, slot, n, ErrCountRange)
	}
	s.slots(c)[slot-1] = uint16(n)
	return nil
}

// count and set are for slots already validated by the caller.
func (s *Ship) count(c Class, slot int) int { return int(s.slots(c)[slot-1]) }

func (s *Ship) set(c Class, slot, n int) { s.slots(c)[slot-1] = uint16(n) }

// HasComponents reports whether anything is aboard.
func (s *Ship) HasComponents() bool {
	return s.Units() > 0
}

// Units is the number of components aboard.
func (s *Ship) Units() int {
	n := 0
	for _, c := range Classes {
		for _, v := range s.slots(c) {
			n += int(v)
		}
	}
	return n
}

// carriesOther reports whether anything other than the given slot is aboard.
func (s *Ship) carriesOther(c Class, slot int) bool {
	for _, cc := range Classes {
		for i, v := range s.slots(cc) {
			if v != 0 && (cc != c || i+1 != slot) {
				return true
			}
		}
	}
	return false
}

func (s *Ship) Clear() { *s = Ship{} }

// Ledger holds the component cargo of ship ids 1..Capacity.
type Ledger struct {
	ships []Ship
}

// New returns an empty ledger. A capacity below 1 selects DefaultCapacity.
func New(capacity int) *Ledger {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Ledger{ships: make([]Ship, capacity)}
}

func (l *Ledger) Capacity() int { return len(l.ships) }

// Ship returns the record of a ship id.
func (l *Ledger) Ship(id int) (*Ship, error) {
	if id < 1 || id > len(l.ships) {
		return nil, fmt.Errorf("ship %d: %w", id, ErrShipRange)
	}
	return &l.ships[id-1], nil
}

// Carriers returns the ids of ships with components, ascending.
func (l *Ledger) Carriers() []int {
	var ids []int
	for i := range l.ships {
		if l.ships[i].HasComponents() {
			ids = append(ids, i+1)
		}
	}
	return ids
}
