package notify

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// OutboxDir is the directory of per-player message files in a game directory.
const OutboxDir = "outbox"

// Envelope is an encoded message and its recipient.
type Envelope struct {
	To   int
	Body []byte
}

// WriteOutbox appends messages to <dir>/outbox/player<N>.txt. Bodies stay in
// CP437; line breaks are written as CR LF and messages are separated by a
// form feed line.
func WriteOutbox(dir string, msgs []Envelope) error {
	if len(msgs) == 0 {
		return nil
	}
	out := filepath.Join(dir, OutboxDir)
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}

	byPlayer := map[int][]Envelope{}
	var order []int
	for _, m := range msgs {
		if _, ok := byPlayer[m.To]; !ok {
			order = append(order, m.To)
		}
		byPlayer[m.To] = append(byPlayer[m.To], m)
	}

	for _, to := range order {
		if err := appendPlayerFile(filepath.Join(out, fmt.Sprintf("player%d.txt", to)), byPlayer[to]); err != nil {
			return fmt.Errorf("outbox player %d: %w", to, err)
		}
	}
	return nil
}

func appendPlayerFile(path string, msgs []Envelope) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	for _, m := range msgs {
		for _, b := range m.Body {
			if b == newline {
				_, _ = bw.WriteString("\r\n")
				continue
			}
			_ = bw.WriteByte(b)
		}
		if n := len(m.Body); n == 0 || m.Body[n-1] != newline {
			_, _ = bw.WriteString("\r\n")
		}
		_, _ = bw.WriteString("\f\r\n")
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
