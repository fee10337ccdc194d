package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"starbase.reloaded/internal/sim/transport"
	"starbase.reloaded/internal/sim/tuning"
)

const (
	banner  = "Starbase Reloaded"
	logFile = "psbplus.log"
)

type mode int

const (
	modeHelp mode = iota
	modeBeforeMovement
	modeAfterMovement
	modeDumpConfig
	modeDumpShips
)

var errUsage = errors.New("invalid command line")

// settings come from SBR_* variables first; flags and positional
// directories override them.
type settings struct {
	GameDir      string `env:"SBR_GAME_DIR"`
	RootDir      string `env:"SBR_ROOT_DIR"`
	ConfigDir    string `env:"SBR_CONFIG_DIR"`
	IndexDB      string `env:"SBR_INDEX_DB"`
	Audit        bool   `env:"SBR_AUDIT"`
	ArchiveEvery int    `env:"SBR_ARCHIVE_EVERY"`

	Mode mode
}

// shipListDir is ConfigDir, else the game directory when it holds its own
// ship list, else the root directory.
func (s settings) shipListDir() string {
	if s.ConfigDir != "" {
		return s.ConfigDir
	}
	if _, err := os.Stat(filepath.Join(s.GameDir, "hulls.json")); err == nil {
		return s.GameDir
	}
	return s.RootDir
}

func printUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "%s\n\n"+
		"Usage: %s [FLAGS] MODE [GAMEDIR [ROOTDIR]]\n\n"+
		"MODE is:\n"+
		"  1       before movement (mines, cargo trim)\n"+
		"  2       after movement (component transport, credits, config)\n"+
		"  -dc     dump config\n"+
		"  -ds     dump ship storage\n"+
		"  --help  this message\n\n"+
		"FLAGS are:\n"+
		"  -game DIR          game directory (SBR_GAME_DIR)\n"+
		"  -root DIR          root directory (SBR_ROOT_DIR)\n"+
		"  -configs DIR       ship list directory (SBR_CONFIG_DIR)\n"+
		"  -db PATH           record runs in a SQLite index (SBR_INDEX_DB)\n"+
		"  -audit             write the JSONL audit trail (SBR_AUDIT)\n"+
		"  -archive_every N   archive state every N turns, 0 = off (SBR_ARCHIVE_EVERY)\n",
		banner, name)
}

// parseMode accepts a mode name with any number of leading dashes.
func parseMode(name string) (mode, bool) {
	switch strings.TrimLeft(name, "-") {
	case "1":
		return modeBeforeMovement, true
	case "2":
		return modeAfterMovement, true
	case "dc":
		return modeDumpConfig, true
	case "ds":
		return modeDumpShips, true
	case "help", "h":
		return modeHelp, true
	}
	return modeHelp, false
}

func parseArgs(name string, args []string) (settings, error) {
	s := settings{GameDir: ".", RootDir: ".", Audit: true}
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&s.GameDir, "game", s.GameDir, "game directory")
	fs.StringVar(&s.RootDir, "root", s.RootDir, "root directory")
	fs.StringVar(&s.ConfigDir, "configs", s.ConfigDir, "ship list directory")
	fs.StringVar(&s.IndexDB, "db", s.IndexDB, "sqlite run index path")
	fs.BoolVar(&s.Audit, "audit", s.Audit, "write the audit trail")
	fs.IntVar(&s.ArchiveEvery, "archive_every", s.ArchiveEvery, "archive every N turns")
	wantConfig := fs.Bool("dc", false, "dump config")
	wantShips := fs.Bool("ds", false, "dump ship storage")

	// Dashed numeric modes ("-1", "--2") would parse as unknown flags.
	args = append([]string(nil), args...)
	for i, a := range args {
		if m := strings.TrimLeft(a, "-"); m != a && (m == "1" || m == "2") {
			args[i] = m
		}
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			s.Mode = modeHelp
			return s, nil
		}
		return s, fmt.Errorf("%w: %v", errUsage, err)
	}

	rest := fs.Args()
	switch {
	case *wantConfig:
		s.Mode = modeDumpConfig
	case *wantShips:
		s.Mode = modeDumpShips
	default:
		if len(rest) == 0 {
			return s, fmt.Errorf("%w: missing mode", errUsage)
		}
		m, ok := parseMode(rest[0])
		if !ok {
			return s, fmt.Errorf("%w: unknown mode %q", errUsage, rest[0])
		}
		s.Mode = m
		rest = rest[1:]
	}
	if len(rest) > 2 {
		return s, fmt.Errorf("%w: too many arguments", errUsage)
	}
	if len(rest) > 0 {
		s.GameDir = rest[0]
	}
	if len(rest) > 1 {
		s.RootDir = rest[1]
	}
	return s, nil
}

// openLog writes to stdout and to the game's log file. Mode 1 starts a new
// file; mode 2 appends to it.
func openLog(gameDir string, truncate bool) (*log.Logger, func(), error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(filepath.Join(gameDir, logFile), flags, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(io.MultiWriter(os.Stdout, f), "[sbreload] ", log.LstdFlags|log.Lmicroseconds)
	return logger, func() { _ = f.Close() }, nil
}

func dumpConfig(w io.Writer, cfg tuning.Config) {
	cfg.Format(func(name, value string) {
		fmt.Fprintf(w, "%s = %s\n", name, value)
	})
}

func dumpShips(w io.Writer, gameDir string, logger *log.Logger) error {
	l := transport.LoadFile(filepath.Join(gameDir, transport.FileName), 0, logger)
	_, err := l.Dump(w)
	return err
}

func main() {
	name := filepath.Base(os.Args[0])
	s, err := parseArgs(name, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage(os.Stderr, name)
		os.Exit(1)
	}

	switch s.Mode {
	case modeHelp:
		printUsage(os.Stdout, name)
		return
	case modeDumpConfig:
		dumpConfig(os.Stdout, tuning.Resolve(s.GameDir, log.New(os.Stderr, "[sbreload] ", 0)))
		return
	case modeDumpShips:
		if err := dumpShips(os.Stdout, s.GameDir, log.New(os.Stderr, "[sbreload] ", 0)); err != nil {
			log.Fatalf("dump ships: %v", err)
		}
		return
	}

	logger, closeLog, err := openLog(s.GameDir, s.Mode == modeBeforeMovement)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer closeLog()

	if err := runHost(s, logger); err != nil {
		logger.Fatalf("%v", err)
	}
}
