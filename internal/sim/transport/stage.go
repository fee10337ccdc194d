package transport

import (
	"fmt"
	"io"
	"log"

	"starbase.reloaded/internal/persistence/eventlog"
	"starbase.reloaded/internal/sim/notify"
	"starbase.reloaded/internal/sim/tuning"
	"starbase.reloaded/internal/sim/world"
)

// World is the part of the universe the stage reads and changes.
type World interface {
	ShipIDs() []int
	Ship(id int) (*world.Ship, error)
	ShipExists(id int) bool
	Planet(id int) (*world.Planet, error)
	BaseAtShip(id int) (*world.Planet, error)
	SetShipName(id int, name string) error
}

// ShipList supplies hull capacities, component masses and names.
type ShipList interface {
	HullCargo(id int) int
	HullEngines(id int) int
	BeamMass(slot int) int
	LauncherMass(slot int) int
	EngineName(slot int) string
	BeamName(slot int) string
	TorpedoName(slot int) string
}

type Notifier interface {
	LoadNotPermitted(owner, ship int)
	LoadNoParts(owner, ship, planet int)
	LoadConflict(owner, ship int)
	LoadNoSpace(owner, ship int)
	LoadSuccess(owner, ship, planet, count int)
	UnloadNoParts(owner, ship int)
	UnloadSuccess(owner, ship, planet, count int)
	TrimmedComponents(owner, ship, count, mass int)
	TrimmedCargo(owner, ship, mass int)
	TransportReport(owner, ship, mass int) *notify.Paged
}

type Telemetry interface {
	TransportSummary(player, ship, mass int)
	TransportComponent(player, ship, class, slot, count, unitMass int)
}

type Auditor interface {
	WriteAudit(world.AuditEntry) error
}

// Action names used in audit entries.
const (
	ActionLoad           = "load"
	ActionUnload         = "unload"
	ActionUnloadAll      = "unload_all"
	ActionTrimComponents = "trim_components"
	ActionTrimCargo      = "trim_cargo"
	ActionRebuildReset   = "rebuild_reset"
)

// Stage runs the component transport rules against one universe.
type Stage struct {
	cfg       tuning.Config
	world     World
	ships     ShipList
	notify    Notifier
	telemetry Telemetry
	audit     Auditor
	logger    *log.Logger
}

// NewStage builds a stage. telemetry and logger may be nil.
func NewStage(cfg tuning.Config, w World, ships ShipList, n Notifier, t Telemetry, logger *log.Logger) *Stage {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Stage{cfg: cfg, world: w, ships: ships, notify: n, telemetry: t, logger: logger}
}

// SetAuditor attaches an audit trail.
func (s *Stage) SetAuditor(a Auditor) { s.audit = a }

// Summary is what one transport run did.
type Summary struct {
	Rebuilt   []int
	Trims     []Trim
	Transfers []Result
	Carriers  []int
}

// TrimOnly drops overload from every carrier. It runs before movement.
func (s *Stage) TrimOnly(l *Ledger) []Trim {
	s.logger.Printf("    Trimming cargo...")
	return s.trimAll(l)
}

// Transport runs the full after-movement sequence: untag, rebuild
// reconciliation, trim, unload, load, report, tag.
func (s *Stage) Transport(l *Ledger, built []eventlog.ShipBuilt) Summary {
	s.logger.Printf("    Component transports...")
	var sum Summary

	if s.cfg.TagSpecialTransport {
		s.untagAll()
	}
	sum.Rebuilt = s.ClearRebuilt(l, built)
	sum.Trims = s.trimAll(l)
	sum.Transfers = s.unloadMarked(l)
	if s.cfg.TransportComp {
		sum.Transfers = append(sum.Transfers, s.loadMarked(l)...)
	}
	s.report(l)
	if s.cfg.TagSpecialTransport {
		s.tagCarriers(l)
	}
	sum.Carriers = l.Carriers()
	return sum
}

func (s *Stage) writeAudit(e world.AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.WriteAudit(e); err != nil {
		s.logger.Printf("WARNING: audit: %v", err)
	}
}

func slotDetail(c Class, slot int) string {
	return fmt.Sprintf("%s-%d", c, slot)
}
