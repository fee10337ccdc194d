// Package credits moves money between a player's starbases.
package credits

import (
	"fmt"
	"io"
	"log"

	"starbase.reloaded/internal/sim/tuning"
	"starbase.reloaded/internal/sim/world"
)

// Friendly codes. TMn sends n thousand credits.
const (
	CodeReceive  = "RMT"
	prefixSend   = "TM"
	maxSendCode  = 5
	unitPerDigit = 1000
)

// MinTotalTech is the combined tech level a base needs to send or receive.
const MinTotalTech = 20

type World interface {
	BaseIDs() []int
	Planet(id int) (*world.Planet, error)
}

type Notifier interface {
	CreditsInsufficientTechToReceive(owner, planet, required int)
	CreditsInsufficientTechToSend(owner, planet, required int)
	CreditsTransferred(owner, from, to, amount int)
}

type Auditor interface {
	WriteAudit(world.AuditEntry) error
}

// Transfer is one completed transmission.
type Transfer struct {
	Owner  int
	From   int
	To     int
	Amount int
}

type Bank struct {
	cfg    tuning.Config
	world  World
	notify Notifier
	audit  Auditor
	logger *log.Logger
}

func New(cfg tuning.Config, w World, n Notifier, logger *log.Logger) *Bank {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Bank{cfg: cfg, world: w, notify: n, logger: logger}
}

// SetAuditor attaches an audit trail.
func (b *Bank) SetAuditor(a Auditor) { b.audit = a }

// Run finds each player's receiving base, then serves every sending base in
// ascending id order.
func (b *Bank) Run() []Transfer {
	if !b.cfg.StarbaseMCTransfer || b.cfg.MaxMCTransfer == 0 {
		b.logger.Printf("    Credit transfers disabled.")
		return nil
	}
	b.logger.Printf("    Credit transfers...")
	receivers := b.findReceivers()
	return b.send(receivers)
}

func (b *Bank) bases() []*world.Planet {
	var out []*world.Planet
	for _, id := range b.world.BaseIDs() {
		p, err := b.world.Planet(id)
		if err != nil || p.Base == nil || p.Owner < 1 || p.Owner > world.MaxPlayers {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (b *Bank) findReceivers() map[int]int {
	receivers := map[int]int{}
	for _, p := range b.bases() {
		if p.FCode != CodeReceive {
			continue
		}
		if p.Base.TotalTech() < MinTotalTech {
			b.logger.Printf("\t(-) Base %d, player %d: insufficient tech to receive", p.ID, p.Owner)
			b.notify.CreditsInsufficientTechToReceive(p.Owner, p.ID, MinTotalTech)
			continue
		}
		if _, dup := receivers[p.Owner]; dup {
			b.logger.Printf("\t(-) Base %d, player %d: duplicate receiver", p.ID, p.Owner)
			continue
		}
		b.logger.Printf("\t(+) Base %d, player %d: receives", p.ID, p.Owner)
		receivers[p.Owner] = p.ID
	}
	return receivers
}

func (b *Bank) send(receivers map[int]int) []Transfer {
	var out []Transfer
	for _, p := range b.bases() {
		n := world.MatchCode(p.FCode, prefixSend, maxSendCode)
		if n == 0 {
			continue
		}
		if p.Base.TotalTech() < MinTotalTech {
			b.logger.Printf("\t(-) Base %d, player %d: insufficient tech to transfer", p.ID, p.Owner)
			b.notify.CreditsInsufficientTechToSend(p.Owner, p.ID, MinTotalTech)
			continue
		}
		toID, ok := receivers[p.Owner]
		if !ok {
			b.logger.Printf("\t(-) Base %d, player %d: no receiver for transmission", p.ID, p.Owner)
			continue
		}
		to, err := b.world.Planet(toID)
		if err != nil {
			continue
		}

		amount := max(min(p.Credits, n*unitPerDigit, int(b.cfg.MaxMCTransfer)), 0)
		b.logger.Printf("\t(+) Base %d, player %d: transfers %d mc to %d", p.ID, p.Owner, amount, toID)
		p.Credits -= amount
		to.Credits += amount
		b.notify.CreditsTransferred(p.Owner, p.ID, toID, amount)
		t := Transfer{Owner: p.Owner, From: p.ID, To: toID, Amount: amount}
		b.writeAudit(t)
		out = append(out, t)
	}
	return out
}

func (b *Bank) writeAudit(t Transfer) {
	if b.audit == nil {
		return
	}
	err := b.audit.WriteAudit(world.AuditEntry{
		Action: "credit_transfer", Player: t.Owner, Planet: t.From,
		Amount: int64(t.Amount), Detail: fmt.Sprintf("to=%d", t.To),
	})
	if err != nil {
		b.logger.Printf("WARNING: audit: %v", err)
	}
}
