package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"starbase.reloaded/internal/sim/catalogs"
	"starbase.reloaded/internal/sim/encoding"
)

// FileName is the ledger file inside a game directory.
const FileName = "psbplus.hst"

// Version is the only ledger file version understood.
const Version = 0

const recordWords = catalogs.EngineSlots + catalogs.BeamSlots + catalogs.TorpedoSlots

var (
	ErrVersion   = errors.New("unsupported ledger version")
	ErrTruncated = errors.New("ledger truncated")
)

// Decode reads a ledger of the given capacity. A truncated stream yields the
// complete records read so far together with ErrTruncated; an unknown
// version yields an empty ledger and ErrVersion.
func Decode(r io.Reader, capacity int) (*Ledger, error) {
	l := New(capacity)
	br := bufio.NewReader(r)

	var hdr [1]uint16
	if err := encoding.ReadWords(encoding.LittleEndian, br, hdr[:]); err != nil {
		return l, fmt.Errorf("header: %w", ErrTruncated)
	}
	if hdr[0] != Version {
		return l, fmt.Errorf("version %d: %w", hdr[0], ErrVersion)
	}

	var rec [recordWords]uint16
	for i := range l.ships {
		if err := encoding.ReadWords(encoding.LittleEndian, br, rec[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, encoding.ErrShortRead) {
				return l, fmt.Errorf("ship %d: %w", i+1, ErrTruncated)
			}
			return l, fmt.Errorf("ship %d: %w", i+1, err)
		}
		unpack(&l.ships[i], rec[:])
	}
	return l, nil
}

// Encode writes the version word and every record. Records are written one
// at a time; a failure leaves the earlier ones in w.
func (l *Ledger) Encode(w io.Writer) error {
	if err := encoding.WriteWords(encoding.LittleEndian, w, []uint16{Version}); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	var rec [recordWords]uint16
	for i := range l.ships {
		pack(rec[:], &l.ships[i])
		if err := encoding.WriteWords(encoding.LittleEndian, w, rec[:]); err != nil {
			return fmt.Errorf("ship %d: %w", i+1, err)
		}
	}
	return nil
}

func pack(dst []uint16, s *Ship) {
	n := copy(dst, s.Engines[:])
	n += copy(dst[n:], s.Beams[:])
	copy(dst[n:], s.Launchers[:])
}

func unpack(s *Ship, src []uint16) {
	n := copy(s.Engines[:], src)
	n += copy(s.Beams[:], src[n:])
	copy(s.Launchers[:], src[n:])
}

// LoadFile reads the ledger at path. Every problem is logged and yields
// either an empty ledger or the records read before it.
func LoadFile(path string, capacity int, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Printf("No transport state file found, starting empty.")
		} else {
			logger.Printf("WARNING: unable to open transport state: %v", err)
		}
		return New(capacity)
	}
	defer f.Close()

	l, err := Decode(f, capacity)
	switch {
	case err == nil:
	case errors.Is(err, ErrVersion):
		logger.Printf("WARNING: transport state has %v, discarding it", err)
		return New(capacity)
	case errors.Is(err, ErrTruncated):
		logger.Printf("WARNING: transport state file is too short (%v)", err)
	default:
		logger.Printf("WARNING: reading transport state: %v", err)
	}
	return l
}

// SaveFile writes the ledger to path. A failure is logged and returned;
// whatever was written before it stays on disk.
func (l *Ledger) SaveFile(path string, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	f, err := os.Create(path)
	if err != nil {
		logger.Printf("WARNING: unable to create transport state: %v", err)
		return err
	}
	bw := bufio.NewWriter(f)
	err = l.Encode(bw)
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		logger.Printf("WARNING: unable to write transport state: %v", err)
	}
	return err
}
