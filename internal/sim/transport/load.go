package transport

import (
	"math"

	"starbase.reloaded/internal/sim/world"
)

// Friendly code prefixes. The digit after the class letter names the slot,
// 0 standing for 10.
const (
	CodeUnloadAll = "UAP"
	prefixUnload  = "U"
	prefixLoad    = "G"
)

type Outcome int

const (
	Loaded Outcome = iota + 1
	Unloaded
	NotPermitted
	NoParts
	Conflict
	NoSpace
)

func (o Outcome) String() string {
	switch o {
	case Loaded:
		return "loaded"
	case Unloaded:
		return "unloaded"
	case NotPermitted:
		return "not_permitted"
	case NoParts:
		return "no_parts"
	case Conflict:
		return "conflict"
	case NoSpace:
		return "no_space"
	}
	return "unknown"
}

// Result is the outcome of one load or unload request. Class is zero for an
// unload-all request.
type Result struct {
	Ship    int
	Planet  int
	Owner   int
	Class   Class
	Slot    int
	Outcome Outcome
	Count   int
}

// canCarry applies the freighter-only and non-cloaker-only rules.
func (s *Stage) canCarry(ship *world.Ship) bool {
	if s.cfg.FreighterCarryOnly && (ship.Beams > 0 || ship.Launchers > 0 || ship.Bays > 0) {
		return false
	}
	if s.cfg.NonCloakerCarryOnly && ship.CanCloak {
		return false
	}
	return true
}

// LoadComponent moves as many components of one slot from the base onto the
// ship as its unreserved stock and the ship's free cargo room allow.
func (s *Stage) LoadComponent(l *Ledger, shipID, planetID int, c Class, slot int) (Result, error) {
	if err := c.checkSlot(slot); err != nil {
		return Result{}, err
	}
	sh, err := l.Ship(shipID)
	if err != nil {
		return Result{}, err
	}
	ship, err := s.world.Ship(shipID)
	if err != nil {
		return Result{}, err
	}
	p, err := s.world.Planet(planetID)
	if err != nil {
		return Result{}, err
	}
	if p.Base == nil {
		return Result{}, world.ErrNotFound
	}

	res := Result{Ship: shipID, Planet: planetID, Owner: ship.Owner, Class: c, Slot: slot}
	if !s.canCarry(ship) {
		s.logger.Printf("\t(-) Ship %d: not allowed to load components", shipID)
		s.notify.LoadNotPermitted(ship.Owner, shipID)
		res.Outcome = NotPermitted
		return res, nil
	}

	stock := baseStock(p.Base, c)
	have, reserved := stock[slot-1], s.reserved(p.Base, c, slot)
	if have <= reserved {
		s.logger.Printf("\t(-) Ship %d, base %d: load: no matching component on base", shipID, planetID)
		s.notify.LoadNoParts(ship.Owner, shipID, planetID)
		res.Outcome = NoParts
		return res, nil
	}

	if !s.cfg.AcceptMixedComponents && sh.carriesOther(c, slot) {
		s.logger.Printf("\t(-) Ship %d, base %d: load: conflicting component on ship", shipID, planetID)
		s.notify.LoadConflict(ship.Owner, shipID)
		res.Outcome = Conflict
		return res, nil
	}

	unit := s.UnitMass(c, slot)
	used := ship.CargoMass() + s.ComponentMass(sh)
	capacity := s.ships.HullCargo(ship.Hull)
	room := 0
	if used < capacity {
		room = (capacity - used) / unit
	}
	aboard := sh.count(c, slot)
	room = min(room, math.MaxUint16-aboard)
	if room <= 0 {
		s.logger.Printf("\t(-) Ship %d, base %d: load: out of space on ship", shipID, planetID)
		s.notify.LoadNoSpace(ship.Owner, shipID)
		res.Outcome = NoSpace
		return res, nil
	}

	n := min(have-reserved, room)
	sh.set(c, slot, aboard+n)
	stock[slot-1] = have - n
	s.logger.Printf("\t(+) Ship %d, base %d: loaded %d %s", shipID, planetID, n, slotDetail(c, slot))
	s.notify.LoadSuccess(ship.Owner, shipID, planetID, n)
	s.writeAudit(world.AuditEntry{
		Action: ActionLoad, Player: ship.Owner, Planet: planetID, Ship: shipID,
		Amount: int64(n), Detail: slotDetail(c, slot),
	})
	res.Outcome, res.Count = Loaded, n
	return res, nil
}

// loadMarked serves every G?n code of a ship at an own base.
func (s *Stage) loadMarked(l *Ledger) []Result {
	var out []Result
	for _, id := range s.world.ShipIDs() {
		ship, err := s.world.Ship(id)
		if err != nil {
			continue
		}
		c, slot, ok := matchSlotCode(ship.FCode, prefixLoad)
		if !ok {
			continue
		}
		p, err := s.world.BaseAtShip(id)
		if err != nil || p.Owner != ship.Owner {
			continue
		}
		res, err := s.LoadComponent(l, id, p.ID, c, slot)
		if err != nil {
			s.logger.Printf("\t(-) Ship %d, base %d: load: %v", id, p.ID, err)
			continue
		}
		out = append(out, res)
	}
	return out
}

// matchSlotCode decodes prefix+class letter+slot digit.
func matchSlotCode(code, prefix string) (Class, int, bool) {
	for _, c := range Classes {
		if slot := world.MatchCode(code, prefix+c.Letter(), c.Slots()); slot != 0 {
			return c, slot, true
		}
	}
	return 0, 0, false
}
