package transport

import (
	"starbase.reloaded/internal/sim/world"
)

// unloadSlot moves a slot's units to the base up to the storage ceiling and
// returns how many moved.
func unloadSlot(sh *Ship, b *world.Base, c Class, slot int) int {
	stock := baseStock(b, c)
	room := max(world.StorageCeiling-stock[slot-1], 0)
	n := min(sh.count(c, slot), room)
	sh.set(c, slot, sh.count(c, slot)-n)
	stock[slot-1] += n
	return n
}

func (s *Stage) unloadTarget(l *Ledger, shipID, planetID int) (*Ship, *world.Ship, *world.Planet, error) {
	sh, err := l.Ship(shipID)
	if err != nil {
		return nil, nil, nil, err
	}
	ship, err := s.world.Ship(shipID)
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := s.world.Planet(planetID)
	if err != nil {
		return nil, nil, nil, err
	}
	if p.Base == nil {
		return nil, nil, nil, world.ErrNotFound
	}
	return sh, ship, p, nil
}

// UnloadComponent moves one slot's components from the ship to the base.
// A full base takes nothing, which is reported as Unloaded with count 0.
func (s *Stage) UnloadComponent(l *Ledger, shipID, planetID int, c Class, slot int) (Result, error) {
	if err := c.checkSlot(slot); err != nil {
		return Result{}, err
	}
	sh, ship, p, err := s.unloadTarget(l, shipID, planetID)
	if err != nil {
		return Result{}, err
	}
	res := Result{Ship: shipID, Planet: planetID, Owner: ship.Owner, Class: c, Slot: slot}
	if sh.count(c, slot) == 0 {
		s.logger.Printf("\t(-) Ship %d, base %d: unload: no matching component on ship", shipID, planetID)
		s.notify.UnloadNoParts(ship.Owner, shipID)
		res.Outcome = NoParts
		return res, nil
	}

	n := unloadSlot(sh, p.Base, c, slot)
	s.logger.Printf("\t(+) Ship %d, base %d: unloaded %d %s", shipID, planetID, n, slotDetail(c, slot))
	s.notify.UnloadSuccess(ship.Owner, shipID, planetID, n)
	s.writeAudit(world.AuditEntry{
		Action: ActionUnload, Player: ship.Owner, Planet: planetID, Ship: shipID,
		Amount: int64(n), Detail: slotDetail(c, slot),
	})
	res.Outcome, res.Count = Unloaded, n
	return res, nil
}

// UnloadAll empties the ship onto the base as far as the base has room.
func (s *Stage) UnloadAll(l *Ledger, shipID, planetID int) (Result, error) {
	sh, ship, p, err := s.unloadTarget(l, shipID, planetID)
	if err != nil {
		return Result{}, err
	}
	res := Result{Ship: shipID, Planet: planetID, Owner: ship.Owner}
	if !sh.HasComponents() {
		s.logger.Printf("\t(-) Ship %d, base %d: unload: nothing aboard", shipID, planetID)
		s.notify.UnloadNoParts(ship.Owner, shipID)
		res.Outcome = NoParts
		return res, nil
	}

	total := 0
	for _, c := range Classes {
		for slot := 1; slot <= c.Slots(); slot++ {
			total += unloadSlot(sh, p.Base, c, slot)
		}
	}
	s.logger.Printf("\t(+) Ship %d, base %d: unloaded %d components", shipID, planetID, total)
	s.notify.UnloadSuccess(ship.Owner, shipID, planetID, total)
	s.writeAudit(world.AuditEntry{
		Action: ActionUnloadAll, Player: ship.Owner, Planet: planetID, Ship: shipID, Amount: int64(total),
	})
	res.Outcome, res.Count = Unloaded, total
	return res, nil
}

// unloadMarked serves every UAP and U?n code at any base.
func (s *Stage) unloadMarked(l *Ledger) []Result {
	var out []Result
	for _, id := range s.world.ShipIDs() {
		ship, err := s.world.Ship(id)
		if err != nil {
			continue
		}
		all := ship.FCode == CodeUnloadAll
		c, slot, ok := matchSlotCode(ship.FCode, prefixUnload)
		if !all && !ok {
			continue
		}
		p, err := s.world.BaseAtShip(id)
		if err != nil {
			continue
		}
		var res Result
		if all {
			res, err = s.UnloadAll(l, id, p.ID)
		} else {
			res, err = s.UnloadComponent(l, id, p.ID, c, slot)
		}
		if err != nil {
			s.logger.Printf("\t(-) Ship %d, base %d: unload: %v", id, p.ID, err)
			continue
		}
		out = append(out, res)
	}
	return out
}
