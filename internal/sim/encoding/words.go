// Package encoding holds the 16-bit word codec shared by every binary file
// this stage reads or writes. Game files are little-endian ("DOS order");
// the big-endian primitives exist for callers that must canonicalize records
// coming from big-endian producers.
package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// WordSize is the size of one encoded word in bytes.
const WordSize = 2

// ErrShortRead is returned when fewer words than requested could be read.
var ErrShortRead = errors.New("short read")

// Order selects the byte order of a word stream.
type Order int

const (
	LittleEndian Order = iota
	BigEndian
)

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func (o Order) byteOrder() byteOrder {
	switch o {
	case LittleEndian:
		return binary.LittleEndian
	case BigEndian:
		return binary.BigEndian
	}
	panic(fmt.Sprintf("encoding: unknown byte order %d", int(o)))
}

// PutWords encodes src into dst, which must hold len(src)*WordSize bytes.
func PutWords(o Order, dst []byte, src []uint16) {
	bo := o.byteOrder()
	for i, w := range src {
		bo.PutUint16(dst[i*WordSize:], w)
	}
}

// AppendWords appends the encoding of ws to b.
func AppendWords(o Order, b []byte, ws ...uint16) []byte {
	bo := o.byteOrder()
	for _, w := range ws {
		b = bo.AppendUint16(b, w)
	}
	return b
}

// DecodeWords decodes len(dst) words from src.
func DecodeWords(o Order, dst []uint16, src []byte) error {
	if len(src) < len(dst)*WordSize {
		return fmt.Errorf("decode %d words from %d bytes: %w", len(dst), len(src), ErrShortRead)
	}
	bo := o.byteOrder()
	for i := range dst {
		dst[i] = bo.Uint16(src[i*WordSize:])
	}
	return nil
}

// ReadWords fills dst from r. A partial read leaves dst untouched and
// returns ErrShortRead; io.EOF is returned only if nothing was read.
func ReadWords(o Order, r io.Reader, dst []uint16) error {
	buf := make([]byte, len(dst)*WordSize)
	n, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && n == 0:
		return io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("read %d words: got %d bytes: %w", len(dst), n, ErrShortRead)
	default:
		return err
	}
	return DecodeWords(o, dst, buf)
}

// WriteWords writes src to w in a single call.
func WriteWords(o Order, w io.Writer, src []uint16) error {
	buf := make([]byte, len(src)*WordSize)
	PutWords(o, buf, src)
	_, err := w.Write(buf)
	return err
}

// SwapWords reverses the byte order of every word in place.
func SwapWords(ws []uint16) {
	for i, w := range ws {
		ws[i] = w>>8 | w<<8
	}
}

// SplitUint32 splits v into its low and high words.
func SplitUint32(v uint32) (lo, hi uint16) {
	return uint16(v & 0xFFFF), uint16(v >> 16)
}

// JoinUint32 is the inverse of SplitUint32.
func JoinUint32(lo, hi uint16) uint32 {
	return uint32(hi)<<16 | uint32(lo)
}
