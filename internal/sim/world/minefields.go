package world

import (
	"fmt"
	"math"
)

type Minefield struct {
	ID    int
	Owner int
	X, Y  int
	Units uint32
	Web   bool
}

// Radius is the integer square root of the unit count.
func (m *Minefield) Radius() int {
	return Isqrt(m.Units)
}

// Inert reports a field without units, due for removal.
func (m *Minefield) Inert() bool { return m.Units == 0 }

// Isqrt returns floor(sqrt(n)).
func Isqrt(n uint32) int {
	r := uint64(math.Sqrt(float64(n)))
	for r*r > uint64(n) {
		r--
	}
	for (r+1)*(r+1) <= uint64(n) {
		r++
	}
	return int(r)
}

func (u *Universe) minefieldLimit() int {
	if u.Host.MaxMinefields > 0 && u.Host.MaxMinefields < MaxMinefields {
		return u.Host.MaxMinefields
	}
	return MaxMinefields
}

func (u *Universe) Minefield(id int) (*Minefield, error) {
	if id < 1 || id > u.minefieldLimit() {
		return nil, fmt.Errorf("minefield %d: %w", id, ErrOutOfRange)
	}
	m, ok := u.Minefields[id]
	if !ok {
		return nil, fmt.Errorf("minefield %d: %w", id, ErrNotFound)
	}
	return m, nil
}

// MinefieldIDs returns all minefield ids in ascending order.
func (u *Universe) MinefieldIDs() []int {
	return sortedKeys(u.Minefields)
}

// MinefieldsCovering returns the fields whose circle contains (x, y),
// ascending by id.
func (u *Universe) MinefieldsCovering(x, y int) []*Minefield {
	var out []*Minefield
	for _, id := range u.MinefieldIDs() {
		m := u.Minefields[id]
		r := int64(m.Radius())
		dx, dy := int64(m.X-x), int64(m.Y-y)
		if dx*dx+dy*dy <= r*r {
			out = append(out, m)
		}
	}
	return out
}

// MinefieldsWithin returns the fields whose circle overlaps the circle of
// radius r around (x, y), ascending by id.
func (u *Universe) MinefieldsWithin(x, y, r int) []*Minefield {
	var out []*Minefield
	for _, id := range u.MinefieldIDs() {
		m := u.Minefields[id]
		reach := int64(r + m.Radius())
		dx, dy := int64(m.X-x), int64(m.Y-y)
		if dx*dx+dy*dy <= reach*reach {
			out = append(out, m)
		}
	}
	return out
}

// CreateMinefield allocates the lowest free id. It fails with
// ErrNoMinefieldSlot when every id up to the host limit is taken.
func (u *Universe) CreateMinefield(x, y, owner int, units uint32, web bool) (*Minefield, error) {
	for id := 1; id <= u.minefieldLimit(); id++ {
		if _, used := u.Minefields[id]; used {
			continue
		}
		m := &Minefield{ID: id, Owner: owner, X: x, Y: y, Units: units, Web: web}
		u.Minefields[id] = m
		return m, nil
	}
	return nil, ErrNoMinefieldSlot
}

// RemoveInertMinefields deletes fields without units and returns their ids.
func (u *Universe) RemoveInertMinefields() []int {
	var removed []int
	for _, id := range u.MinefieldIDs() {
		if u.Minefields[id].Inert() {
			delete(u.Minefields, id)
			removed = append(removed, id)
		}
	}
	return removed
}
