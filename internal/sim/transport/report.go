package transport

import (
	"fmt"
	"io"
	"strings"
)

// NamePrefix marks the name of a ship carrying components.
const NamePrefix = "ST: "

func (s *Stage) componentName(c Class, slot int) string {
	switch c {
	case Engine:
		return s.ships.EngineName(slot)
	case Beam:
		return s.ships.BeamName(slot)
	case Launcher:
		return s.ships.TorpedoName(slot)
	}
	panic(fmt.Sprintf("transport: unknown class %d", int(c)))
}

// inventoryLine is one report line; the bracket shows the code that
// unloads the slot.
func inventoryLine(count int, name string, c Class, slot int) string {
	return fmt.Sprintf("%3d x %-20s [%s%s%d]\n", count, name, prefixUnload, c.Letter(), slot%10)
}

// report sends every carrier's owner an inventory and emits the matching
// telemetry records.
func (s *Stage) report(l *Ledger) {
	for _, id := range s.world.ShipIDs() {
		sh, err := l.Ship(id)
		if err != nil || !sh.HasComponents() {
			continue
		}
		ship, err := s.world.Ship(id)
		if err != nil {
			continue
		}
		mass := s.ComponentMass(sh)
		page := s.notify.TransportReport(ship.Owner, id, mass)
		if s.telemetry != nil {
			s.telemetry.TransportSummary(ship.Owner, id, mass)
		}
		for _, c := range Classes {
			for slot := 1; slot <= c.Slots(); slot++ {
				n := sh.count(c, slot)
				if n == 0 {
					continue
				}
				page.AddLine(inventoryLine(n, s.componentName(c, slot), c, slot))
				if s.telemetry != nil {
					s.telemetry.TransportComponent(ship.Owner, id, c.Code(), slot, n, s.UnitMass(c, slot))
				}
			}
		}
		page.Send()
	}
}

// untagAll strips NamePrefix from every ship.
func (s *Stage) untagAll() {
	for _, id := range s.world.ShipIDs() {
		ship, err := s.world.Ship(id)
		if err != nil {
			continue
		}
		if name, ok := strings.CutPrefix(ship.Name, NamePrefix); ok {
			if err := s.world.SetShipName(id, name); err != nil {
				s.logger.Printf("WARNING: ship %d: %v", id, err)
			}
		}
	}
}

// tagCarriers prefixes the names of ships with components.
func (s *Stage) tagCarriers(l *Ledger) {
	for _, id := range s.world.ShipIDs() {
		sh, err := l.Ship(id)
		if err != nil || !sh.HasComponents() {
			continue
		}
		ship, err := s.world.Ship(id)
		if err != nil || strings.HasPrefix(ship.Name, NamePrefix) {
			continue
		}
		if err := s.world.SetShipName(id, NamePrefix+ship.Name); err != nil {
			s.logger.Printf("WARNING: ship %d: %v", id, err)
		}
	}
}

// Dump prints every record with components and returns how many there were.
func (l *Ledger) Dump(w io.Writer) (int, error) {
	count := 0
	for _, id := range l.Carriers() {
		sh := &l.ships[id-1]
		if _, err := fmt.Fprintf(w, "Ship %d:\n", id); err != nil {
			return count, err
		}
		for _, row := range []struct {
			label string
			c     Class
		}{{"  Engines:   ", Engine}, {"  Beams:     ", Beam}, {"  Torpedoes: ", Launcher}} {
			var b strings.Builder
			b.WriteString(row.label)
			for i, v := range sh.slots(row.c) {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%5d", v)
			}
			b.WriteByte('\n')
			if _, err := io.WriteString(w, b.String()); err != nil {
				return count, err
			}
		}
		count++
	}
	_, err := fmt.Fprintf(w, "Found %d special transports.\n", count)
	return count, err
}
