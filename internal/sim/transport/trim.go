package transport

import (
	"starbase.reloaded/internal/sim/world"
)

// Trim records what was jettisoned from one overloaded ship.
type Trim struct {
	Ship          int
	Owner         int
	Components    int
	ComponentMass int
	CargoMass     int
}

// dropOrder is the order in which classes lose units when a ship is
// overloaded.
var dropOrder = [...]Class{Beam, Launcher, Engine}

// dropOne removes one unit from the highest non-empty slot of the first
// class in dropOrder that still has any.
func dropOne(sh *Ship) bool {
	for _, c := range dropOrder {
		for slot := c.Slots(); slot >= 1; slot-- {
			if n := sh.count(c, slot); n > 0 {
				sh.set(c, slot, n-1)
				return true
			}
		}
	}
	return false
}

// cargoKinds lists standard cargo in jettison order.
func cargoKinds(ship *world.Ship) []*int {
	return []*int{
		&ship.Cargo.Tritanium,
		&ship.Cargo.Duranium,
		&ship.Cargo.Molybdenum,
		&ship.Cargo.Supplies,
		&ship.Cargo.Colonists,
		&ship.Ammo,
	}
}

// dropCargo removes excess kt from the kinds in rounds, taking up to
// max(excess/6, 1) from each per round. It returns the mass dropped.
func dropCargo(kinds []*int, excess int) int {
	dropped := 0
	for excess > 0 {
		quota := max(excess/6, 1)
		progress := false
		for _, k := range kinds {
			d := min(*k, excess, quota)
			if d > 0 {
				*k -= d
				excess -= d
				dropped += d
				progress = true
			}
		}
		if !progress {
			break
		}
	}
	return dropped
}

func (s *Stage) trimAll(l *Ledger) []Trim {
	var out []Trim
	for id := 1; id <= l.Capacity(); id++ {
		sh, _ := l.Ship(id)
		if !s.world.ShipExists(id) {
			sh.Clear()
			continue
		}
		if !sh.HasComponents() {
			continue
		}
		if t, ok := s.TrimShip(id, sh); ok {
			out = append(out, t)
		}
	}
	return out
}

// TrimShip brings a carrier back within its hull's cargo room: components
// first, then standard cargo. It reports whether anything was dropped.
func (s *Stage) TrimShip(id int, sh *Ship) (Trim, bool) {
	ship, err := s.world.Ship(id)
	if err != nil {
		return Trim{}, false
	}
	t := Trim{Ship: id, Owner: ship.Owner}
	capacity := s.ships.HullCargo(ship.Hull)

	mass := s.ComponentMass(sh)
	original := mass
	for mass > capacity && dropOne(sh) {
		t.Components++
		mass = s.ComponentMass(sh)
	}
	if t.Components != 0 {
		t.ComponentMass = original - mass
		s.logger.Printf("\t(+) Ship %d: trimmed cargo: %d components, %d kt", id, t.Components, t.ComponentMass)
		s.notify.TrimmedComponents(ship.Owner, id, t.Components, t.ComponentMass)
		s.writeAudit(world.AuditEntry{
			Action: ActionTrimComponents, Player: ship.Owner, Ship: id, Amount: int64(t.Components),
		})
	}

	room := max(capacity-mass, 0)
	if cargo := ship.CargoMass(); cargo > room {
		t.CargoMass = dropCargo(cargoKinds(ship), cargo-room)
		s.logger.Printf("\t(+) Ship %d: trimmed regular cargo: %d kt", id, t.CargoMass)
		s.notify.TrimmedCargo(ship.Owner, id, t.CargoMass)
		s.writeAudit(world.AuditEntry{
			Action: ActionTrimCargo, Player: ship.Owner, Ship: id, Amount: int64(t.CargoMass),
		})
	}
	return t, t.Components != 0 || t.CargoMass != 0
}
