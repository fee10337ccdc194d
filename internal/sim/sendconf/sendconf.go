// Package sendconf mails the rule configuration to players who ask for it.
package sendconf

import (
	"io"
	"log"

	"starbase.reloaded/internal/sim/notify"
	"starbase.reloaded/internal/sim/tuning"
	"starbase.reloaded/internal/sim/world"
)

// CodeRequest on any planet asks for the configuration.
const CodeRequest = "con"

type World interface {
	PlanetIDs() []int
	Planet(id int) (*world.Planet, error)
}

type Notifier interface {
	ConfigReport(to int) *notify.Paged
}

// Run sends the configuration once to every player owning a planet with
// CodeRequest and returns those players in the order served.
func Run(cfg tuning.Config, w World, n Notifier, logger *log.Logger) []int {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	logger.Printf("    Sending configuration...")

	served := map[int]bool{}
	var out []int
	for _, id := range w.PlanetIDs() {
		p, err := w.Planet(id)
		if err != nil || p.Owner < 1 || p.Owner > world.MaxPlayers || served[p.Owner] {
			continue
		}
		if p.FCode != CodeRequest {
			continue
		}
		served[p.Owner] = true
		logger.Printf("\t(+) Player %d: requested configuration", p.Owner)
		Send(cfg, p.Owner, n)
		out = append(out, p.Owner)
	}
	return out
}

// Send mails the formatted configuration to one player.
func Send(cfg tuning.Config, to int, n Notifier) {
	page := n.ConfigReport(to)
	cfg.Format(func(name, value string) {
		page.AddLine("  " + name + " = " + value + "\n")
	})
	page.Send()
}
