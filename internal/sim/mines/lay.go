package mines

import (
	"errors"

	"starbase.reloaded/internal/persistence/utildata"
	"starbase.reloaded/internal/sim/world"
)

// Lay converts torpedoes of every base with a lay code into minefields.
func (e *Engine) Lay() []Change {
	if !e.cfg.LayMinefields && !e.cfg.LayWebMinefields {
		e.logger.Printf("    Laying minefields disabled.")
		return nil
	}
	e.logger.Printf("    Laying minefields...")

	var changes []Change
	for _, id := range e.world.BaseIDs() {
		p, err := e.world.Planet(id)
		if err != nil || p.Base == nil {
			continue
		}
		if e.cfg.LayMinefields && p.FCode == CodeLay {
			if c, ok := e.layField(p, false); ok {
				changes = append(changes, c)
			}
		}
		if e.cfg.LayWebMinefields && p.FCode == CodeLayWeb && e.specialMission(p.Owner) == webMission {
			if c, ok := e.layField(p, true); ok {
				changes = append(changes, c)
			}
		}
	}

	if e.cfg.LayMinefields {
		e.world.DefineSpecialCode(CodeLay)
	}
	if e.cfg.LayWebMinefields {
		e.world.DefineSpecialCode(CodeLayWeb)
	}
	return changes
}

func (e *Engine) specialMission(player int) int {
	if p, err := e.world.Player(player); err == nil {
		return p.SpecialMission
	}
	return 0
}

// permittedUnits is the largest field an owner may hold of the given type.
func (e *Engine) permittedUnits(owner int, web bool) uint64 {
	p, err := e.world.Player(owner)
	if err != nil {
		return 0
	}
	r := uint64(p.MaxMinefieldRadius)
	if web {
		r = uint64(p.MaxWebMinefieldRadius)
	}
	return r * r
}

func (e *Engine) fieldForLaying(p *world.Planet, web bool) *world.Minefield {
	for _, m := range e.world.MinefieldsCovering(p.X, p.Y) {
		if m.Owner == p.Owner && m.Web == web {
			return m
		}
	}
	return nil
}

func (e *Engine) layField(p *world.Planet, web bool) (Change, bool) {
	b := p.Base
	permitted := e.permittedUnits(p.Owner, web)

	var field *world.Minefield
	var laid uint64
	for slot := torpedoSlots; slot >= 1; slot-- {
		torps := b.Torpedoes[slot-1]
		if torps <= 0 {
			continue
		}
		if field == nil {
			field = e.fieldForLaying(p, web)
		}
		var existing uint64
		if field != nil {
			existing = uint64(field.Units)
		}
		var headroom uint64
		if existing < permitted {
			headroom = permitted - existing
		}
		rate := e.Rate(slot)
		add := UnitsToLay(uint64(torps), rate, headroom)
		if add == 0 {
			continue
		}

		if field == nil {
			m, err := e.world.CreateMinefield(p.X, p.Y, p.Owner, uint32(add), web)
			if err != nil {
				if errors.Is(err, world.ErrNoMinefieldSlot) {
					e.logger.Printf("\t(-) Base %d, player %d: failure to lay minefield", p.ID, p.Owner)
				} else {
					e.logger.Printf("\t(-) Base %d, player %d: %v", p.ID, p.Owner, err)
				}
				break
			}
			field = m
		} else {
			field.Units += uint32(add)
		}
		laid += add
		b.Torpedoes[slot-1] -= int(TorpedoesConsumed(add, rate))
	}

	if laid == 0 || field == nil {
		return Change{}, false
	}
	e.logger.Printf("\t(+) Base %d, player %d, minefield %d: laid %d units", p.ID, p.Owner, field.ID, laid)
	e.notify.MinefieldLaid(p.Owner, p.ID, field.ID, field.X, field.Y, uint32(laid), field.Units, field.Radius(), web)
	e.record(p.Owner, field, field.Owner, utildata.MineLaid)
	c := Change{Minefield: field.ID, Planet: p.ID, Owner: p.Owner, Action: ActionLay, Units: uint32(laid), Remaining: field.Units}
	e.writeAudit(c)
	return c, true
}
