package transport

import (
	"fmt"

	"starbase.reloaded/internal/sim/world"
)

// UnitMass is the cargo room one component of a slot takes: the configured
// minimum, the component's own mass, or 1 kt, whichever is largest.
func (s *Stage) UnitMass(c Class, slot int) int {
	var intrinsic int
	switch c {
	case Engine:
		intrinsic = 1
	case Beam:
		intrinsic = s.ships.BeamMass(slot)
	case Launcher:
		intrinsic = s.ships.LauncherMass(slot)
	default:
		panic(fmt.Sprintf("transport: unknown class %d", int(c)))
	}
	return max(int(s.cfg.CargoSpacePerComp), intrinsic, 1)
}

// ComponentMass is the cargo room taken by everything aboard.
func (s *Stage) ComponentMass(sh *Ship) int {
	total := 0
	for _, c := range Classes {
		for slot := 1; slot <= c.Slots(); slot++ {
			if n := sh.count(c, slot); n != 0 {
				total += n * s.UnitMass(c, slot)
			}
		}
	}
	return total
}

// baseStock returns the base's stock of one class, slot 1 at index 0.
func baseStock(b *world.Base, c Class) []int {
	switch c {
	case Engine:
		return b.Engines[:]
	case Beam:
		return b.Beams[:]
	case Launcher:
		return b.Launchers[:]
	}
	panic(fmt.Sprintf("transport: unknown class %d", int(c)))
}

// reserved is the part of a slot's stock the base's build order needs.
func (s *Stage) reserved(b *world.Base, c Class, slot int) int {
	o := b.Build
	if o == nil {
		return 0
	}
	switch c {
	case Engine:
		if o.Engine == slot {
			return s.ships.HullEngines(o.Hull)
		}
	case Beam:
		if o.Beam == slot {
			return o.BeamCount
		}
	case Launcher:
		if o.Launcher == slot {
			return o.LauncherCount
		}
	default:
		panic(fmt.Sprintf("transport: unknown class %d", int(c)))
	}
	return 0
}
