package mines

import (
	"starbase.reloaded/internal/persistence/utildata"
	"starbase.reloaded/internal/sim/world"
)

// ScoopSlot is the best torpedo slot a base with torpedo tech torpTech can
// build. Slot 1 is the floor.
func (e *Engine) ScoopSlot(torpTech int) int {
	slot := torpedoSlots
	for slot > 1 && e.ships.TorpedoTech(slot) > torpTech {
		slot--
	}
	return slot
}

// ScoopResult splits a field of units at rate into torpedoes gained and
// units left, given the torpedoes already stored.
func ScoopResult(units uint32, rate uint64, stored int) (gained int, leftover uint32) {
	headroom := uint64(max(world.StorageCeiling-stored, 0))
	g := min(uint64(units)/rate, headroom)
	return int(g), units - uint32(g*rate)
}

func (e *Engine) scoop(p *world.Planet) []Change {
	b := p.Base
	var changes []Change
	for _, m := range e.world.MinefieldsWithin(p.X, p.Y, int(e.cfg.BeamSweepRange)) {
		if m.Owner != p.Owner || m.Inert() {
			continue
		}
		oldRadius := m.Radius()
		slot := e.ScoopSlot(b.TorpedoTech)
		rate := e.Rate(slot)

		gained, leftover := ScoopResult(m.Units, rate, b.Torpedoes[slot-1])
		taken := m.Units - leftover
		m.Units = leftover
		b.Torpedoes[slot-1] += gained

		e.logger.Printf("\t(+) Base %d, minefield %d: scooped %d units into %d torpedoes", p.ID, m.ID, taken, gained)
		e.notify.MinefieldScooped(p.Owner, p.ID, m.ID, m.X, m.Y, oldRadius, gained, m.Web)
		e.record(p.Owner, m, m.Owner, utildata.MineSwept)

		c := Change{Minefield: m.ID, Planet: p.ID, Owner: p.Owner, Action: ActionScoop, Units: taken, Remaining: m.Units}
		e.writeAudit(c)
		changes = append(changes, c)
	}
	return changes
}
