// Package mines converts base torpedoes into minefields and back, and lets
// bases sweep enemy minefields.
package mines

import (
	"fmt"
	"io"
	"log"

	"starbase.reloaded/internal/persistence/utildata"
	"starbase.reloaded/internal/sim/tuning"
	"starbase.reloaded/internal/sim/world"
)

// Friendly codes handled by the engine.
const (
	CodeLay      = "LMF"
	CodeLayWeb   = "LWF"
	CodeSweep    = "SMF"
	CodeScoop    = "MSC"
	webMission   = 7
	colonyRange  = 100
	torpedoSlots = 10
)

// World is the part of the universe the engine reads and changes.
type World interface {
	BaseIDs() []int
	Planet(id int) (*world.Planet, error)
	Player(id int) (*world.Player, error)
	HostConfig() world.HostConfig
	MinefieldsCovering(x, y int) []*world.Minefield
	MinefieldsWithin(x, y, r int) []*world.Minefield
	CreateMinefield(x, y, owner int, units uint32, web bool) (*world.Minefield, error)
	MinesProtected(a, b int) bool
	DefineSpecialCode(code string)
}

// ShipList supplies torpedo tech levels.
type ShipList interface {
	TorpedoTech(slot int) int
}

type Notifier interface {
	MinefieldLaid(owner, planet, mine, x, y int, laid, now uint32, radius int, web bool)
	MinefieldSwept(owner, planet, mine, x, y, oldOwner, oldRadius int, swept, now uint32, web, fighters bool)
	MinefieldScooped(owner, planet, mine, x, y, oldRadius, torps int, web bool)
}

type Telemetry interface {
	Minefield(player int, m utildata.Minefield)
}

type Auditor interface {
	WriteAudit(world.AuditEntry) error
}

// Action names used in changes and audit entries.
const (
	ActionLay           = "lay"
	ActionSweepBeams    = "sweep_beams"
	ActionSweepFighters = "sweep_fighters"
	ActionScoop         = "scoop"
)

// Change describes what one action did to one minefield.
type Change struct {
	Minefield int
	Planet    int
	Owner     int
	Action    string
	Units     uint32
	Remaining uint32
}

type Engine struct {
	cfg       tuning.Config
	world     World
	ships     ShipList
	notify    Notifier
	telemetry Telemetry
	audit     Auditor
	logger    *log.Logger
}

// New builds an engine. telemetry and logger may be nil.
func New(cfg tuning.Config, w World, ships ShipList, n Notifier, t Telemetry, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{cfg: cfg, world: w, ships: ships, notify: n, telemetry: t, logger: logger}
}

// SetAuditor attaches an audit trail.
func (e *Engine) SetAuditor(a Auditor) { e.audit = a }

// Rate is the number of mine units one torpedo of slot is worth.
func (e *Engine) Rate(slot int) uint64 {
	f := uint64(slot)
	if e.cfg.MineRateFromTorpTech {
		f = uint64(e.ships.TorpedoTech(slot))
	}
	return max(f*f, 1)
}

// UnitsToLay is min(torps*rate, headroom).
func UnitsToLay(torps, rate, headroom uint64) uint64 {
	return min(torps*rate, headroom)
}

// TorpedoesConsumed is ceil(units/rate): a partly used torpedo is spent.
func TorpedoesConsumed(units, rate uint64) uint64 {
	return (units + rate - 1) / rate
}

func (e *Engine) record(player int, m *world.Minefield, owner int, reason utildata.MineReason) {
	if e.telemetry == nil {
		return
	}
	e.telemetry.Minefield(player, utildata.Minefield{
		ID: m.ID, X: m.X, Y: m.Y, Owner: owner, Units: m.Units, Web: m.Web, Reason: reason,
	})
}

func (e *Engine) writeAudit(c Change) {
	if e.audit == nil {
		return
	}
	err := e.audit.WriteAudit(world.AuditEntry{
		Action:    c.Action,
		Player:    c.Owner,
		Planet:    c.Planet,
		Minefield: c.Minefield,
		Amount:    int64(c.Units),
		Detail:    fmt.Sprintf("remaining=%d", c.Remaining),
	})
	if err != nil {
		e.logger.Printf("WARNING: audit: %v", err)
	}
}
