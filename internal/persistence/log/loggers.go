package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"starbase.reloaded/internal/sim/world"
)

// JSONLZstdWriter appends JSON lines to the zstd-compressed file
// <baseDir>/<prefix>-<key>.jsonl.zst. The file is opened on the first Write.
type JSONLZstdWriter struct {
	baseDir string
	prefix  string
	key     string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewJSONLZstdWriter(baseDir, prefix, key string) *JSONLZstdWriter {
	return &JSONLZstdWriter{
		baseDir: baseDir,
		prefix:  prefix,
		key:     key,
	}
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.w == nil {
		if err := w.openLocked(); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *JSONLZstdWriter) openLocked() error {
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(w.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 128*1024)
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err1 error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err1 = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	return err1
}

// Path is the file the writer appends to.
func (w *JSONLZstdWriter) Path() string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, w.key))
}

// AuditLogger writes one compressed JSONL file per stage and turn under
// <gameDir>/audit.
type AuditLogger struct {
	w     *JSONLZstdWriter
	turn  int
	stage string
}

func NewAuditLogger(gameDir, stage string, turn int) *AuditLogger {
	return &AuditLogger{
		w:     NewJSONLZstdWriter(filepath.Join(gameDir, "audit"), stage, fmt.Sprintf("turn-%03d", turn)),
		turn:  turn,
		stage: stage,
	}
}

// Path is the file the logger writes to.
func (l *AuditLogger) Path() string { return l.w.Path() }

// WriteAudit stamps the entry with the logger's turn and stage.
func (l *AuditLogger) WriteAudit(v world.AuditEntry) error {
	v.Turn = l.turn
	v.Stage = l.stage
	return l.w.Write(v)
}

func (l *AuditLogger) Close() error { return l.w.Close() }
