package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// FileName is the universe snapshot inside a game directory.
const FileName = "universe.snap.zst"

const Version = 1

type Header struct {
	Version int    `json:"version"`
	GameID  string `json:"game_id"`
	Turn    int    `json:"turn"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	Host         HostV1        `json:"host"`
	Players      []PlayerV1    `json:"players"`
	Planets      []PlanetV1    `json:"planets"`
	Ships        []ShipV1      `json:"ships"`
	Minefields   []MinefieldV1 `json:"minefields"`
	SpecialCodes []string      `json:"special_codes,omitempty"`
	Messages     []MessageV1   `json:"messages,omitempty"`
}

type HostV1 struct {
	ColonialSweepWebs bool `json:"colonial_sweep_webs"`
	MaxMinefields     int  `json:"max_minefields"`
	ShipLimit         int  `json:"ship_limit"`
}

type PlayerV1 struct {
	ID                    int          `json:"id"`
	Race                  int          `json:"race"`
	RaceAdjective         string       `json:"race_adjective"`
	SpecialMission        int          `json:"special_mission"`
	Language              string       `json:"language,omitempty"`
	MaxMinefieldRadius    int          `json:"max_minefield_radius"`
	MaxWebMinefieldRadius int          `json:"max_web_minefield_radius"`
	Alliances             []AllianceV1 `json:"alliances,omitempty"`
}

type AllianceV1 struct {
	With    int  `json:"with"`
	Offered bool `json:"offered"`
	Mines   bool `json:"mines"`
}

type PlanetV1 struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Owner   int     `json:"owner"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	FCode   string  `json:"fcode"`
	Credits int     `json:"credits"`
	Base    *BaseV1 `json:"base,omitempty"`
}

type BaseV1 struct {
	HullTech    int `json:"hull_tech"`
	EngineTech  int `json:"engine_tech"`
	BeamTech    int `json:"beam_tech"`
	TorpedoTech int `json:"torpedo_tech"`
	Defense     int `json:"defense"`
	Fighters    int `json:"fighters"`

	Engines   []int `json:"engines"`
	Beams     []int `json:"beams"`
	Launchers []int `json:"launchers"`
	Torpedoes []int `json:"torpedoes"`

	Build *BuildOrderV1 `json:"build,omitempty"`
}

type BuildOrderV1 struct {
	Hull          int `json:"hull"`
	Engine        int `json:"engine"`
	Beam          int `json:"beam"`
	BeamCount     int `json:"beam_count"`
	Launcher      int `json:"launcher"`
	LauncherCount int `json:"launcher_count"`
}

type ShipV1 struct {
	ID         int    `json:"id"`
	Owner      int    `json:"owner"`
	Name       string `json:"name"`
	Hull       int    `json:"hull"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	FCode      string `json:"fcode"`
	Tritanium  int    `json:"tritanium"`
	Duranium   int    `json:"duranium"`
	Molybdenum int    `json:"molybdenum"`
	Supplies   int    `json:"supplies"`
	Colonists  int    `json:"colonists"`
	Ammo       int    `json:"ammo"`
	Beams      int    `json:"beams"`
	Launchers  int    `json:"launchers"`
	Bays       int    `json:"bays"`
	CanCloak   bool   `json:"can_cloak"`
}

type MinefieldV1 struct {
	ID    int    `json:"id"`
	Owner int    `json:"owner"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Units uint32 `json:"units"`
	Web   bool   `json:"web"`
}

type MessageV1 struct {
	To   int    `json:"to"`
	Body []byte `json:"body"`
}

// WriteSnapshot writes a JSON header line followed by the gob-encoded
// snapshot, all zstd-compressed.
func WriteSnapshot(path string, snap SnapshotV1) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, fmt.Errorf("header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return snap, fmt.Errorf("header: %w", err)
	}
	if h.Version != Version {
		return snap, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}

// ReadHeader returns only the header line of a snapshot file.
func ReadHeader(path string) (Header, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return h, fmt.Errorf("header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("header: %w", err)
	}
	return h, nil
}

var ErrVersion = errors.New("unsupported snapshot version")
