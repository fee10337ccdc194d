package notify

func (n *Notifier) CreditsInsufficientTechToReceive(owner, planet, required int) {
	n.SendTemplate(owner, u32(planet, required), CreditsNoTechReceive)
}

func (n *Notifier) CreditsInsufficientTechToSend(owner, planet, required int) {
	n.SendTemplate(owner, u32(planet, required), CreditsNoTechSend)
}

func (n *Notifier) CreditsTransferred(owner, from, to, amount int) {
	n.SendTemplate(owner, u32(from, to, amount), CreditsTransferred)
}

func (n *Notifier) MinefieldLaid(owner, planet, mine, x, y int, laid, now uint32, radius int, web bool) {
	args := []uint32{uint32(planet), uint32(mine), uint32(x), uint32(y), laid, now, uint32(radius)}
	key := MinefieldLaid
	if web {
		key = MinefieldLaidWeb
	}
	n.SendTemplate(owner, args, key)
}

func (n *Notifier) MinefieldSwept(owner, planet, mine, x, y, oldOwner, oldRadius int, swept, now uint32, web, fighters bool) {
	args := []uint32{uint32(planet), uint32(mine), uint32(x), uint32(y), uint32(oldOwner), uint32(2 * oldRadius), swept, now}
	header, action := MinefieldSweptHeader, MinefieldSweptBeams
	if web {
		header = MinefieldSweptHeaderWeb
	}
	if fighters {
		action = MinefieldSweptFighters
	}
	n.SendTemplate(owner, args, header, action)
}

func (n *Notifier) MinefieldScooped(owner, planet, mine, x, y, oldRadius, torps int, web bool) {
	args := u32(planet, mine, x, y, 2*oldRadius, torps)
	header := MinefieldScoopedHeader
	if web {
		header = MinefieldScoopedHeaderWeb
	}
	n.SendTemplate(owner, args, header, MinefieldScooped)
}

func (n *Notifier) LoadNotPermitted(owner, ship int) {
	n.SendTemplate(owner, u32(ship), LoadNotPermitted)
}

func (n *Notifier) LoadNoParts(owner, ship, planet int) {
	n.SendTemplate(owner, u32(ship, planet), LoadNoParts)
}

func (n *Notifier) LoadConflict(owner, ship int) {
	n.SendTemplate(owner, u32(ship), LoadConflict)
}

func (n *Notifier) LoadNoSpace(owner, ship int) {
	n.SendTemplate(owner, u32(ship), LoadNoSpace)
}

func (n *Notifier) LoadSuccess(owner, ship, planet, count int) {
	n.SendTemplate(owner, u32(ship, planet, count), LoadSuccess)
}

func (n *Notifier) UnloadNoParts(owner, ship int) {
	n.SendTemplate(owner, u32(ship), UnloadNoParts)
}

func (n *Notifier) UnloadSuccess(owner, ship, planet, count int) {
	n.SendTemplate(owner, u32(ship, planet, count), UnloadSuccess)
}

func (n *Notifier) TrimmedComponents(owner, ship, count, mass int) {
	n.SendTemplate(owner, u32(ship, count, mass), TrimmedComponents)
}

func (n *Notifier) TrimmedCargo(owner, ship, mass int) {
	n.SendTemplate(owner, u32(ship, mass), TrimmedCargo)
}

func u32(vs ...int) []uint32 {
	out := make([]uint32, len(vs))
	for i, v := range vs {
		out[i] = uint32(v)
	}
	return out
}

// TransportReport starts the inventory message of a ship carrying
// components. The caller adds one line per slot and sends it.
func (n *Notifier) TransportReport(owner, ship, mass int) *Paged {
	return n.NewPaged(owner, TransportReport, TransportReportContinued, uint32(ship), uint32(mass))
}

// ConfigReport starts the configuration listing sent to a player.
func (n *Notifier) ConfigReport(to int) *Paged {
	return n.NewPaged(to, ConfigReport, ConfigReportContinued)
}
