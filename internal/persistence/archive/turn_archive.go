package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

type TurnArchiveMeta struct {
	GameID    string   `json:"game_id"`
	Turn      int      `json:"turn"`
	Every     int      `json:"archive_every"`
	Files     []string `json:"files"`
	CreatedAt string   `json:"created_at"`
}

// Due reports whether turn falls on an archive boundary. every <= 0 disables
// archiving.
func Due(turn, every int) bool {
	return every > 0 && turn > 0 && turn%every == 0
}

// ArchiveTurn copies files into `gameDir/archive/turn_<NNN>/`. Files already
// ending in .zst are copied as is; others are zstd-compressed. Missing files
// are skipped. It returns the archive directory and archived=true when turn
// is due.
func ArchiveTurn(gameDir, gameID string, turn, every int, files ...string) (dir string, archived bool, err error) {
	if !Due(turn, every) {
		return "", false, nil
	}
	dir = filepath.Join(gameDir, "archive", fmt.Sprintf("turn_%03d", turn))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, err
	}

	meta := TurnArchiveMeta{
		GameID: gameID,
		Turn:   turn,
		Every:  every,
		Files:  []string{},
	}
	for _, src := range files {
		name := filepath.Base(src)
		if strings.HasSuffix(name, ".zst") {
			err = copyFile(src, filepath.Join(dir, name))
		} else {
			name += ".zst"
			err = compressFile(src, filepath.Join(dir, name))
		}
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", false, err
		}
		meta.Files = append(meta.Files, name)
	}

	meta.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)
	if b, err := json.MarshalIndent(meta, "", "  "); err == nil {
		_ = os.WriteFile(filepath.Join(dir, "meta.json"), b, 0o644)
	}
	return dir, true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	zw, err := zstd.NewWriter(out)
	if err != nil {
		return err
	}
	if _, err := io.Copy(zw, in); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return out.Close()
}
