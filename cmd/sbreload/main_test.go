package main

import (
	"bytes"
	"database/sql"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"starbase.reloaded/internal/persistence/snapshot"
	"starbase.reloaded/internal/sim/mines"
	"starbase.reloaded/internal/sim/notify"
	"starbase.reloaded/internal/sim/transport"
	"starbase.reloaded/internal/sim/tuning"
	"starbase.reloaded/internal/sim/world"
)

const shipListDir = "../../configs/shiplist"

func TestParseMode(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want mode
		ok   bool
	}{
		{"1", modeBeforeMovement, true},
		{"2", modeAfterMovement, true},
		{"-dc", modeDumpConfig, true},
		{"--ds", modeDumpShips, true},
		{"---help", modeHelp, true},
		{"h", modeHelp, true},
		{"3", modeHelp, false},
		{"", modeHelp, false},
	} {
		got, ok := parseMode(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseMode(%q) = %v, %v", tc.in, got, ok)
		}
	}
}

func TestParseArgs(t *testing.T) {
	t.Setenv("SBR_GAME_DIR", "/env/game")
	t.Setenv("SBR_ARCHIVE_EVERY", "10")

	s, err := parseArgs("sbreload", []string{"2"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Mode != modeAfterMovement || s.GameDir != "/env/game" || s.RootDir != "." || s.ArchiveEvery != 10 || !s.Audit {
		t.Fatalf("settings %+v", s)
	}

	s, err = parseArgs("sbreload", []string{"-game", "/flag/game", "-audit=false", "-db", "x.db", "1", "/pos/game", "/pos/root"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Mode != modeBeforeMovement || s.GameDir != "/pos/game" || s.RootDir != "/pos/root" || s.Audit || s.IndexDB != "x.db" {
		t.Fatalf("settings %+v", s)
	}

	s, err = parseArgs("sbreload", []string{"-ds", "/g"})
	if err != nil || s.Mode != modeDumpShips || s.GameDir != "/g" {
		t.Fatalf("settings %+v err=%v", s, err)
	}
	s, err = parseArgs("sbreload", []string{"-audit=false", "--2"})
	if err != nil || s.Mode != modeAfterMovement {
		t.Fatalf("dashed mode: %+v err=%v", s, err)
	}
	s, err = parseArgs("sbreload", []string{"--help"})
	if err != nil || s.Mode != modeHelp {
		t.Fatalf("help: %+v err=%v", s, err)
	}

	for _, args := range [][]string{nil, {"7"}, {"1", "a", "b", "c"}, {"-nope", "1"}} {
		if _, err := parseArgs("sbreload", args); !errors.Is(err, errUsage) {
			t.Fatalf("%v: err=%v", args, err)
		}
	}
}

func TestShipListDir(t *testing.T) {
	game := t.TempDir()
	s := settings{GameDir: game, RootDir: "/root"}
	if got := s.shipListDir(); got != "/root" {
		t.Fatalf("got %s", got)
	}
	if err := os.WriteFile(filepath.Join(game, "hulls.json"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := s.shipListDir(); got != game {
		t.Fatalf("got %s", got)
	}
	s.ConfigDir = "/configs"
	if got := s.shipListDir(); got != "/configs" {
		t.Fatalf("got %s", got)
	}
}

func TestDumpConfig(t *testing.T) {
	var buf bytes.Buffer
	dumpConfig(&buf, tuning.Defaults())
	if !strings.Contains(buf.String(), "TransportComp = Yes\n") {
		t.Fatalf("dump:\n%s", buf.String())
	}
}

// writeGame stores a one-player universe for turn 5 in a fresh directory.
func writeGame(t *testing.T, build func(u *world.Universe)) string {
	t.Helper()
	dir := t.TempDir()
	u := world.New("g1", 5)
	if err := u.AddPlayer(&world.Player{ID: 1, MaxMinefieldRadius: 150, MaxWebMinefieldRadius: 100}); err != nil {
		t.Fatalf("player: %v", err)
	}
	build(u)
	if err := snapshot.WriteSnapshot(filepath.Join(dir, snapshot.FileName), u.ExportSnapshot()); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return dir
}

func readGame(t *testing.T, dir string) *world.Universe {
	t.Helper()
	snap, err := snapshot.ReadSnapshot(filepath.Join(dir, snapshot.FileName))
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	u, err := world.ImportSnapshot(snap)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return u
}

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func TestRunHost_BeforeMovementLaysMines(t *testing.T) {
	dir := writeGame(t, func(u *world.Universe) {
		b := &world.Base{}
		b.Torpedoes[0] = 500
		if err := u.AddPlanet(&world.Planet{ID: 1, Name: "Home", Owner: 1, X: 1500, Y: 1500, FCode: mines.CodeLay, Base: b}); err != nil {
			t.Fatalf("planet: %v", err)
		}
	})
	s := settings{GameDir: dir, RootDir: dir, ConfigDir: shipListDir, Audit: true, Mode: modeBeforeMovement}
	if err := runHost(s, quiet()); err != nil {
		t.Fatalf("run: %v", err)
	}

	u := readGame(t, dir)
	ids := u.MinefieldIDs()
	if len(ids) != 1 {
		t.Fatalf("minefields %v", ids)
	}
	if m, _ := u.Minefield(ids[0]); m.Units == 0 || m.Owner != 1 {
		t.Fatalf("minefield %+v", m)
	}
	if len(u.Outbox()) != 0 {
		t.Fatalf("outbox kept in snapshot")
	}
	if _, err := os.Stat(filepath.Join(dir, notify.OutboxDir, "player1.txt")); err != nil {
		t.Fatalf("outbox file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, transport.FileName)); err != nil {
		t.Fatalf("ledger file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "util1.dat")); err != nil {
		t.Fatalf("utility data: %v", err)
	}
	audits, _ := filepath.Glob(filepath.Join(dir, "audit", "mines-turn-005*"))
	if len(audits) != 1 {
		t.Fatalf("audit files %v", audits)
	}
}

func TestRunHost_AfterMovementTransportsIndexesAndArchives(t *testing.T) {
	dir := writeGame(t, func(u *world.Universe) {
		b := &world.Base{HullTech: 10, EngineTech: 10}
		b.Beams[0] = 3
		if err := u.AddPlanet(&world.Planet{ID: 1, Name: "Home", Owner: 1, X: 1500, Y: 1500, FCode: "con", Base: b}); err != nil {
			t.Fatalf("planet: %v", err)
		}
		if err := u.AddShip(&world.Ship{ID: 7, Owner: 1, Name: "Hauler", Hull: 16, X: 1500, Y: 1500, FCode: "GB1"}); err != nil {
			t.Fatalf("ship: %v", err)
		}
	})
	db := filepath.Join(t.TempDir(), "index.db")
	s := settings{GameDir: dir, RootDir: dir, ConfigDir: shipListDir, IndexDB: db, ArchiveEvery: 5, Mode: modeAfterMovement}
	if err := runHost(s, quiet()); err != nil {
		t.Fatalf("run: %v", err)
	}

	u := readGame(t, dir)
	p, _ := u.Planet(1)
	if p.Base.Beams[0] != 0 {
		t.Fatalf("beams left on base: %d", p.Base.Beams[0])
	}
	if ship, _ := u.Ship(7); ship.Name != transport.NamePrefix+"Hauler" {
		t.Fatalf("ship name %q", ship.Name)
	}

	l := transport.LoadFile(filepath.Join(dir, transport.FileName), 0, nil)
	sh, _ := l.Ship(7)
	if n, _ := sh.Count(transport.Beam, 1); n != 3 {
		t.Fatalf("ledger beam 1 = %d", n)
	}

	raw, err := os.ReadFile(filepath.Join(dir, notify.OutboxDir, "player1.txt"))
	if err != nil {
		t.Fatalf("outbox: %v", err)
	}
	if !bytes.Contains(raw, []byte("TransportComp")) {
		t.Fatalf("configuration not sent")
	}

	conn, err := sql.Open("sqlite", db)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer conn.Close()
	var turn, runMode, carriers int
	if err := conn.QueryRow(`SELECT turn,mode,carriers FROM runs`).Scan(&turn, &runMode, &carriers); err != nil {
		t.Fatalf("runs: %v", err)
	}
	if turn != 5 || runMode != 2 || carriers != 1 {
		t.Fatalf("run row turn=%d mode=%d carriers=%d", turn, runMode, carriers)
	}

	for _, name := range []string{"meta.json", transport.FileName + ".zst", snapshot.FileName} {
		if _, err := os.Stat(filepath.Join(dir, "archive", "turn_005", name)); err != nil {
			t.Fatalf("archive %s: %v", name, err)
		}
	}
}

func TestRunHost_MissingUniverseIsFatal(t *testing.T) {
	s := settings{GameDir: t.TempDir(), ConfigDir: shipListDir, Mode: modeAfterMovement}
	if err := runHost(s, quiet()); err == nil || !strings.Contains(err.Error(), "universe") {
		t.Fatalf("err=%v", err)
	}
	s.ConfigDir = t.TempDir()
	if err := runHost(s, quiet()); err == nil || !strings.Contains(err.Error(), "ship list") {
		t.Fatalf("err=%v", err)
	}
}

func TestDumpShips(t *testing.T) {
	dir := t.TempDir()
	l := transport.New(0)
	sh, _ := l.Ship(3)
	_ = sh.Set(transport.Engine, 1, 2)
	if err := l.SaveFile(filepath.Join(dir, transport.FileName), nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	var buf bytes.Buffer
	if err := dumpShips(&buf, dir, quiet()); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(buf.String(), "Ship 3:\n") || !strings.HasSuffix(buf.String(), "Found 1 special transports.\n") {
		t.Fatalf("dump:\n%s", buf.String())
	}
}
