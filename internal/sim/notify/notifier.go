package notify

import (
	"io"
	"log"
)

// World is what a Notifier needs from the universe.
type World interface {
	Names
	SendMessage(to int, body []byte) error
	PlayerLanguage(player int) string
}

// Notifier builds localized messages and queues them with the world.
type Notifier struct {
	world  World
	logger *log.Logger
}

func New(w World, logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Notifier{world: w, logger: logger}
}

func (n *Notifier) template(to int, key Key) string {
	return Template(n.world.PlayerLanguage(to), key)
}

// Send queues a finished message.
func (n *Notifier) Send(to int, m *Message) {
	if err := n.world.SendMessage(to, m.Bytes()); err != nil {
		n.logger.Printf("WARNING: message to player %d dropped: %v", to, err)
	}
}

// SendTemplate formats the concatenation of keys and sends it to one player.
func (n *Notifier) SendTemplate(to int, args []uint32, keys ...Key) {
	var m Message
	for _, k := range keys {
		m.Format(n.template(to, k), n.world, args...)
	}
	n.Send(to, &m)
}

// Paged is a message that continues on a new page once it reaches
// MaxMessageLines.
type Paged struct {
	n         *Notifier
	to        int
	continued Key
	args      []uint32
	m         Message
}

// NewPaged starts a paged message with the header template.
func (n *Notifier) NewPaged(to int, header, continued Key, args ...uint32) *Paged {
	p := &Paged{n: n, to: to, continued: continued, args: args}
	p.m.Format(n.template(to, header), n.world, args...)
	return p
}

// AddLine appends one line of plain text, breaking the page first when the
// line budget is used up.
func (p *Paged) AddLine(line string) {
	if p.m.Lines() >= MaxMessageLines {
		p.m.Add(p.n.template(p.to, ContinuedOnNextPage))
		p.n.Send(p.to, &p.m)
		p.m = Message{}
		p.m.Format(p.n.template(p.to, p.continued), p.n.world, p.args...)
	}
	p.m.Add(line)
}

// Send queues the last page.
func (p *Paged) Send() {
	p.n.Send(p.to, &p.m)
}
