package notify

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	// MaxMessageLength is the storage size of one message, terminator included.
	MaxMessageLength = 600
	// MaxMessageLines is the line budget before a report continues on a new page.
	MaxMessageLines = 17

	newline = 13
	// Bytes above this value do not survive the message cipher.
	maxByte = 255 - 13
)

// Names resolves the name placeholders of a template.
type Names interface {
	PlanetName(id int) string
	ShipName(id int) string
	RaceAdjective(player int) string
}

// Message is a CP437-encoded message body under construction.
type Message struct {
	buf   []byte
	lines int
}

// AddChar appends one character. '\n' is stored as CR, characters without a
// CP437 form or above the cipher range are dropped, and the body never
// exceeds MaxMessageLength-1 bytes.
func (m *Message) AddChar(r rune) {
	if len(m.buf) >= MaxMessageLength-1 {
		return
	}
	if r == '\n' {
		m.lines++
		m.buf = append(m.buf, newline)
		return
	}
	b, ok := charmap.CodePage437.EncodeRune(r)
	if !ok || b > maxByte {
		return
	}
	m.buf = append(m.buf, b)
}

func (m *Message) Add(s string) {
	for _, r := range s {
		m.AddChar(r)
	}
}

// Format expands a template. Placeholders are %<n>d (decimal), %<n>I
// (4-digit id), %<n>A (race adjective), %<n>P (planet name), %<n>S (ship
// name) and %%. Missing numeric arguments print as 0; missing name
// arguments print nothing.
func (m *Message) Format(tpl string, names Names, args ...uint32) {
	for i := 0; i < len(tpl); {
		ch := tpl[i]
		if ch != '%' {
			r, size := utf8.DecodeRuneInString(tpl[i:])
			m.AddChar(r)
			i += size
			continue
		}
		i++
		index := 0
		for i < len(tpl) && tpl[i] >= '0' && tpl[i] <= '9' {
			index = 10*index + int(tpl[i]-'0')
			i++
		}
		if i >= len(tpl) {
			return
		}
		kind := tpl[i]
		i++

		var v uint32
		have := index < len(args)
		if have {
			v = args[index]
		}
		switch kind {
		case '%':
			m.AddChar('%')
		case 'd':
			m.Add(strconv.FormatUint(uint64(v), 10))
		case 'I':
			s := strconv.FormatUint(uint64(v), 10)
			for n := len(s); n < 4; n++ {
				m.AddChar('0')
			}
			m.Add(s)
		case 'A':
			if have && names != nil {
				m.Add(names.RaceAdjective(int(v)))
			}
		case 'P':
			if have && names != nil {
				m.Add(names.PlanetName(int(v)))
			}
		case 'S':
			if have && names != nil {
				m.Add(names.ShipName(int(v)))
			}
		}
	}
}

func (m *Message) Lines() int { return m.lines }

// Bytes returns the encoded body.
func (m *Message) Bytes() []byte { return m.buf }

// Decode converts an encoded body back to text with '\n' line breaks.
func Decode(body []byte) string {
	out := make([]rune, 0, len(body))
	for _, b := range body {
		if b == newline {
			out = append(out, '\n')
			continue
		}
		out = append(out, charmap.CodePage437.DecodeByte(b))
	}
	return string(out)
}
