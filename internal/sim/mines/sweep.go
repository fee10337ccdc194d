package mines

import (
	"starbase.reloaded/internal/persistence/utildata"
	"starbase.reloaded/internal/sim/world"
)

// Sweep lets every base with a sweep code clear enemy minefields and every
// base with a scoop code reclaim its own. Bases are handled in ascending id
// order; per base, sweeping precedes scooping.
func (e *Engine) Sweep() []Change {
	sweeping := e.cfg.BeamSweepMines || e.cfg.FighterSweepMines
	if !sweeping && !e.cfg.ScoopMinefields {
		e.logger.Printf("    Sweeping/scooping minefields disabled.")
		return nil
	}
	e.logger.Printf("    Sweeping/scooping minefields...")

	var changes []Change
	for _, id := range e.world.BaseIDs() {
		p, err := e.world.Planet(id)
		if err != nil || p.Base == nil {
			continue
		}
		if p.FCode == CodeSweep {
			if e.cfg.BeamSweepMines {
				changes = append(changes, e.sweepWithBeams(p)...)
			}
			if e.cfg.FighterSweepMines {
				changes = append(changes, e.sweepWithFighters(p)...)
			}
		}
		if e.cfg.ScoopMinefields && p.FCode == CodeScoop {
			changes = append(changes, e.scoop(p)...)
		}
	}

	if sweeping {
		e.world.DefineSpecialCode(CodeSweep)
	}
	if e.cfg.ScoopMinefields {
		e.world.DefineSpecialCode(CodeScoop)
	}
	return changes
}

// BeamCapacity is rate * beamTech^2 * (defense/20).
func BeamCapacity(rate uint16, beamTech, defense int) uint64 {
	tech := uint64(max(beamTech, 0))
	beams := uint64(max(defense, 0) / 20)
	return uint64(rate) * tech * tech * beams
}

func (e *Engine) sweepWithBeams(p *world.Planet) []Change {
	b := p.Base
	normal := BeamCapacity(e.cfg.BeamSweepRate, b.BeamTech, b.Defense)
	web := BeamCapacity(e.cfg.BeamWebSweepRate, b.BeamTech, b.Defense)
	return e.sweepFrom(p, normal, web, int(e.cfg.BeamSweepRange), false)
}

func (e *Engine) sweepWithFighters(p *world.Planet) []Change {
	b := p.Base
	var normal, web uint64
	var rng int
	if e.isColonies(p.Owner) {
		normal = uint64(e.cfg.FtrSweepRate)
		if e.world.HostConfig().ColonialSweepWebs {
			web = uint64(e.cfg.FtrWebSweepRate)
		}
		rng = colonyRange
	} else {
		if !e.cfg.ColonialFighterOnlySweepMines {
			normal = uint64(e.cfg.FtrSweepRate)
		}
		rng = 10 * ((b.HullTech + b.EngineTech + b.BeamTech) / 3)
	}
	fighters := uint64(max(b.Fighters, 0))
	return e.sweepFrom(p, normal*fighters, web*fighters, rng, true)
}

func (e *Engine) isColonies(player int) bool {
	p, err := e.world.Player(player)
	return err == nil && p.Race == world.RaceColonies
}

// Sweepable reports whether a base owned by sweeper may sweep a field owned
// by owner.
func Sweepable(w interface{ MinesProtected(a, b int) bool }, sweeper, owner int) bool {
	if sweeper == owner {
		return false
	}
	return !w.MinesProtected(sweeper, owner)
}

func (e *Engine) sweepFrom(p *world.Planet, normal, web uint64, rng int, fighters bool) []Change {
	if normal == 0 && web == 0 {
		return nil
	}
	action := ActionSweepBeams
	if fighters {
		action = ActionSweepFighters
	}

	var changes []Change
	for _, m := range e.world.MinefieldsWithin(p.X, p.Y, rng) {
		if !Sweepable(e.world, p.Owner, m.Owner) {
			continue
		}
		capacity := normal
		if m.Web {
			capacity = web
		}
		if capacity == 0 || m.Inert() {
			continue
		}

		oldRadius := m.Radius()
		swept := uint32(min(uint64(m.Units), capacity))
		m.Units -= swept

		how := "beams"
		if fighters {
			how = "fighters"
		}
		e.logger.Printf("\t(+) Base %d, minefield %d: sweep %d units using %s", p.ID, m.ID, swept, how)
		e.notify.MinefieldSwept(p.Owner, p.ID, m.ID, m.X, m.Y, m.Owner, oldRadius, swept, m.Units, m.Web, fighters)
		e.record(p.Owner, m, m.Owner, utildata.MineSwept)

		c := Change{Minefield: m.ID, Planet: p.ID, Owner: p.Owner, Action: action, Units: swept, Remaining: m.Units}
		e.writeAudit(c)
		changes = append(changes, c)
	}
	return changes
}
