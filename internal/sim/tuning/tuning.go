package tuning

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// YAMLFileName is the preferred configuration file in the game directory.
	YAMLFileName = "starbase.yaml"
	// SourceFileName is the legacy configuration file.
	SourceFileName = "psbplus.src"
	// SourceSection is the section of SourceFileName holding our keys.
	SourceSection = "PSTARBASE"
)

var (
	ErrUnknownKey = errors.New("unknown key")
	ErrBadValue   = errors.New("bad value")
)

// Config holds the rule parameters of one run. It is immutable once loaded.
type Config struct {
	BeamSweepMines   bool   `yaml:"beam_sweep_mines" env:"SBR_BEAM_SWEEP_MINES"`
	BeamSweepRange   uint16 `yaml:"beam_sweep_range" env:"SBR_BEAM_SWEEP_RANGE"`
	BeamSweepRate    uint16 `yaml:"beam_sweep_rate" env:"SBR_BEAM_SWEEP_RATE"`
	BeamWebSweepRate uint16 `yaml:"beam_web_sweep_rate" env:"SBR_BEAM_WEB_SWEEP_RATE"`

	FighterSweepMines             bool   `yaml:"fighter_sweep_mines" env:"SBR_FIGHTER_SWEEP_MINES"`
	ColonialFighterOnlySweepMines bool   `yaml:"colonial_fighter_only_sweep_mines" env:"SBR_COLONIAL_FIGHTER_ONLY_SWEEP_MINES"`
	FtrSweepRate                  uint16 `yaml:"ftr_sweep_rate" env:"SBR_FTR_SWEEP_RATE"`
	FtrWebSweepRate               uint16 `yaml:"ftr_web_sweep_rate" env:"SBR_FTR_WEB_SWEEP_RATE"`

	StarbaseMCTransfer bool   `yaml:"starbase_mc_transfer" env:"SBR_STARBASE_MC_TRANSFER"`
	MaxMCTransfer      uint16 `yaml:"max_mc_transfer" env:"SBR_MAX_MC_TRANSFER"`

	LayMinefields    bool `yaml:"lay_minefields" env:"SBR_LAY_MINEFIELDS"`
	LayWebMinefields bool `yaml:"lay_web_minefields" env:"SBR_LAY_WEB_MINEFIELDS"`

	// MineRateFromTorpTech makes the units-per-torpedo rate use the torpedo
	// tech level instead of the slot number.
	MineRateFromTorpTech bool `yaml:"mine_rate_from_torp_tech" env:"SBR_MINE_RATE_FROM_TORP_TECH"`

	ScoopMinefields bool `yaml:"scoop_minefields" env:"SBR_SCOOP_MINEFIELDS"`

	TransportComp         bool   `yaml:"transport_comp" env:"SBR_TRANSPORT_COMP"`
	FreighterCarryOnly    bool   `yaml:"freighter_carry_only" env:"SBR_FREIGHTER_CARRY_ONLY"`
	NonCloakerCarryOnly   bool   `yaml:"non_cloaker_carry_only" env:"SBR_NON_CLOAKER_CARRY_ONLY"`
	CargoSpacePerComp     uint16 `yaml:"cargo_space_per_comp" env:"SBR_CARGO_SPACE_PER_COMP"`
	AcceptMixedComponents bool   `yaml:"accept_mixed_components" env:"SBR_ACCEPT_MIXED_COMPONENTS"`
	TagSpecialTransport   bool   `yaml:"tag_special_transport" env:"SBR_TAG_SPECIAL_TRANSPORT"`
}

// Defaults returns the stock rule set.
func Defaults() Config {
	return Config{
		BeamSweepMines:   true,
		BeamSweepRange:   5,
		BeamSweepRate:    4,
		BeamWebSweepRate: 3,

		FighterSweepMines:             true,
		ColonialFighterOnlySweepMines: false,
		FtrSweepRate:                  20,
		FtrWebSweepRate:               0,

		StarbaseMCTransfer: true,
		MaxMCTransfer:      3000,

		LayMinefields:    true,
		LayWebMinefields: true,

		ScoopMinefields: true,

		TransportComp:         true,
		FreighterCarryOnly:    true,
		NonCloakerCarryOnly:   true,
		CargoSpacePerComp:     40,
		AcceptMixedComponents: true,
		TagSpecialTransport:   true,
	}
}

// Load reads a YAML config. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	c := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Defaults(), fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// LoadSource reads the SourceSection of a legacy source file. Valid lines
// are applied even when others are reported.
func LoadSource(path string) (Config, error) {
	c := Defaults()
	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()
	err = ParseSource(f, SourceSection, &c)
	return c, err
}

// ApplyEnv overrides fields from SBR_* environment variables that are set.
func ApplyEnv(c *Config) error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Resolve loads the configuration of a game directory: starbase.yaml if
// present, else psbplus.src, else defaults. Problems are logged and never
// fatal.
func Resolve(gameDir string, logger *log.Logger) Config {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	c := Defaults()

	yamlPath := filepath.Join(gameDir, YAMLFileName)
	srcPath := filepath.Join(gameDir, SourceFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		loaded, err := Load(yamlPath)
		if err != nil {
			logger.Printf("WARNING: configuration file (%s) unreadable, using defaults: %v", YAMLFileName, err)
		} else {
			c = loaded
		}
	} else if loaded, err := LoadSource(srcPath); !errors.Is(err, os.ErrNotExist) {
		c = loaded
		if err != nil {
			logger.Printf("WARNING: %s: %v", SourceFileName, err)
		}
	} else {
		logger.Printf("WARNING: configuration file (%s) not found, using defaults.", SourceFileName)
	}

	if err := ApplyEnv(&c); err != nil {
		logger.Printf("WARNING: %v", err)
	}
	return c
}

// Set assigns a value by its key name (case-insensitive).
func (c *Config) Set(name, value string) error {
	def, ok := lookup(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownKey)
	}
	value = strings.TrimSpace(value)
	switch {
	case def.flag != nil:
		switch strings.ToLower(value) {
		case "yes", "true":
			*def.flag(c) = true
		case "no", "false":
			*def.flag(c) = false
		default:
			return fmt.Errorf("%s = %q: %w", def.name, value, ErrBadValue)
		}
	case def.number != nil:
		n, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return fmt.Errorf("%s = %q: %w", def.name, value, ErrBadValue)
		}
		*def.number(c) = uint16(n)
	}
	return nil
}

// Format calls fn for every key in definition order.
func (c Config) Format(fn func(name, value string)) {
	for _, def := range definitions {
		switch {
		case def.flag != nil:
			v := "No"
			if *def.flag(&c) {
				v = "Yes"
			}
			fn(def.name, v)
		case def.number != nil:
			fn(def.name, strconv.Itoa(int(*def.number(&c))))
		}
	}
}
