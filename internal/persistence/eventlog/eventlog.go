// Package eventlog reads the host's per-turn event log.
package eventlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"starbase.reloaded/internal/sim/encoding"
)

// FileName is the event log inside a game directory.
const FileName = "util.tmp"

// TypeShipBuilt marks a ship constructed this turn. Its body holds the ship
// id and the building base id.
const TypeShipBuilt = 20

type ShipBuilt struct {
	Player int
	Ship   int
	Base   int
}

// ReadShipBuilt scans r for ship-built records, skipping every other record
// by its declared size. On a read error the records found so far are
// returned together with the error.
func ReadShipBuilt(r io.Reader) ([]ShipBuilt, error) {
	br := bufio.NewReader(r)
	var out []ShipBuilt
	for {
		var hdr [3]uint16
		if err := encoding.ReadWords(encoding.LittleEndian, br, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("record header: %w", err)
		}
		player, typ, size := hdr[0], hdr[1], int64(hdr[2])

		if typ == TypeShipBuilt && size >= 2*encoding.WordSize {
			var body [2]uint16
			if err := encoding.ReadWords(encoding.LittleEndian, br, body[:]); err != nil {
				return out, fmt.Errorf("ship-built record: %w", err)
			}
			out = append(out, ShipBuilt{Player: int(player), Ship: int(body[0]), Base: int(body[1])})
			size -= 2 * encoding.WordSize
		}

		if size > 0 {
			if _, err := io.CopyN(io.Discard, br, size); err != nil {
				return out, fmt.Errorf("skip record type %d: %w", typ, err)
			}
		}
	}
}

// ReadShipBuiltFile reads ship-built records from a file.
func ReadShipBuiltFile(path string) ([]ShipBuilt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadShipBuilt(f)
}

// AppendRecord encodes one record. It is used to build logs in tools and
// tests; the host writes the real file.
func AppendRecord(b []byte, player, typ int, body ...uint16) []byte {
	b = encoding.AppendWords(encoding.LittleEndian, b, uint16(player), uint16(typ), uint16(len(body)*encoding.WordSize))
	return encoding.AppendWords(encoding.LittleEndian, b, body...)
}
