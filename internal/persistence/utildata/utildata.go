// Package utildata writes the per-player binary companion records that
// client tools read alongside the turn results.
package utildata

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"starbase.reloaded/internal/sim/encoding"
)

// Record types.
const (
	TypeMinefield          = 46
	TypeTransportSummary   = 0x4080
	TypeTransportComponent = 0x4081
)

// MineReason tells a client why a minefield record was emitted.
type MineReason uint16

const (
	MineLaid MineReason = iota
	MineSwept
	MineScanned
)

// Minefield describes a minefield as seen after an action.
type Minefield struct {
	ID     int
	X, Y   int
	Owner  int
	Units  uint32
	Web    bool
	Reason MineReason
}

// Sink collects records per player until Flush.
type Sink struct {
	records map[int][]byte
}

func NewSink() *Sink {
	return &Sink{records: map[int][]byte{}}
}

func (s *Sink) put(player int, typ uint16, body ...uint16) {
	b := s.records[player]
	b = encoding.AppendWords(encoding.LittleEndian, b, typ, uint16(len(body)*encoding.WordSize))
	b = encoding.AppendWords(encoding.LittleEndian, b, body...)
	s.records[player] = b
}

// Minefield emits a minefield update record to player.
func (s *Sink) Minefield(player int, m Minefield) {
	lo, hi := encoding.SplitUint32(m.Units)
	var typ uint16
	if m.Web {
		typ = 1
	}
	s.put(player, TypeMinefield,
		uint16(m.ID), uint16(m.X), uint16(m.Y), uint16(m.Owner),
		lo, hi, typ,
		0, // controlling planet, not tracked
		uint16(m.Reason))
}

// TransportSummary emits the total component mass a ship carries.
func (s *Sink) TransportSummary(player, ship, mass int) {
	s.put(player, TypeTransportSummary, uint16(ship), uint16(mass))
}

// TransportComponent emits one carried component slot. class is the external
// code: 1 engine, 2 beam, 3 launcher.
func (s *Sink) TransportComponent(player, ship, class, slot, count, unitMass int) {
	s.put(player, TypeTransportComponent, uint16(ship), uint16(class), uint16(slot), uint16(count), uint16(unitMass))
}

// Bytes returns the pending records of one player.
func (s *Sink) Bytes(player int) []byte {
	return s.records[player]
}

// Players returns the players with pending records, ascending.
func (s *Sink) Players() []int {
	out := make([]int, 0, len(s.records))
	for p := range s.records {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Flush appends pending records to util<N>.dat in dir and clears them.
func (s *Sink) Flush(dir string) error {
	for _, p := range s.Players() {
		path := filepath.Join(dir, fmt.Sprintf("util%d.dat", p))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		if _, err := f.Write(s.records[p]); err != nil {
			_ = f.Close()
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		delete(s.records, p)
	}
	return nil
}

// Record is one decoded record.
type Record struct {
	Type uint16
	Body []uint16
}

// Parse decodes a record stream. A trailing partial record is an error.
func Parse(b []byte) ([]Record, error) {
	var out []Record
	for len(b) > 0 {
		var hdr [2]uint16
		if err := encoding.DecodeWords(encoding.LittleEndian, hdr[:], b); err != nil {
			return out, err
		}
		b = b[2*encoding.WordSize:]
		size := int(hdr[1])
		if size > len(b) {
			return out, fmt.Errorf("record type %d: size %d, have %d: %w", hdr[0], size, len(b), encoding.ErrShortRead)
		}
		body := make([]uint16, size/encoding.WordSize)
		if err := encoding.DecodeWords(encoding.LittleEndian, body, b[:size]); err != nil {
			return out, err
		}
		out = append(out, Record{Type: hdr[0], Body: body})
		b = b[size:]
	}
	return out, nil
}
