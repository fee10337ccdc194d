package transport

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"starbase.reloaded/internal/persistence/eventlog"
	"starbase.reloaded/internal/sim/world"
)

// ReadRebuilds returns the ship-built records of the game directory's event
// log. A missing or damaged log is logged; whatever was read is returned.
func ReadRebuilds(gameDir string, logger *log.Logger) []eventlog.ShipBuilt {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	recs, err := eventlog.ReadShipBuiltFile(filepath.Join(gameDir, eventlog.FileName))
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		logger.Printf("WARNING: Unable to open %s; newly-built ships will not be cleaned.", eventlog.FileName)
	default:
		logger.Printf("WARNING: Unable to read %s; aborting mid-way: %v", eventlog.FileName, err)
	}
	return recs
}

// ClearRebuilt empties the records of ships built this turn: a ship id that
// was destroyed and rebuilt must not keep the old ship's cargo. It returns
// the ids that were reset.
func (s *Stage) ClearRebuilt(l *Ledger, built []eventlog.ShipBuilt) []int {
	var reset []int
	for _, b := range built {
		sh, err := l.Ship(b.Ship)
		if err != nil || !sh.HasComponents() {
			continue
		}
		s.logger.Printf("\t(!) Ship %d: was rebuilt, reset cargo", b.Ship)
		sh.Clear()
		s.writeAudit(world.AuditEntry{Action: ActionRebuildReset, Player: b.Player, Planet: b.Base, Ship: b.Ship})
		reset = append(reset, b.Ship)
	}
	return reset
}
