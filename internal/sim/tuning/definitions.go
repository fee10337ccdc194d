package tuning

import "strings"

type definition struct {
	name   string
	flag   func(*Config) *bool
	number func(*Config) *uint16
}

func flagDef(name string, f func(*Config) *bool) definition {
	return definition{name: name, flag: f}
}

func numberDef(name string, f func(*Config) *uint16) definition {
	return definition{name: name, number: f}
}

// definitions lists the keys in the order they are formatted.
var definitions = []definition{
	flagDef("BeamSweepMines", func(c *Config) *bool { return &c.BeamSweepMines }),
	numberDef("BeamSweepRange", func(c *Config) *uint16 { return &c.BeamSweepRange }),
	numberDef("BeamSweepRate", func(c *Config) *uint16 { return &c.BeamSweepRate }),
	numberDef("BeamWebSweepRate", func(c *Config) *uint16 { return &c.BeamWebSweepRate }),

	flagDef("FighterSweepMines", func(c *Config) *bool { return &c.FighterSweepMines }),
	flagDef("ColonialFighterOnlySweepMines", func(c *Config) *bool { return &c.ColonialFighterOnlySweepMines }),
	numberDef("FtrSweepRate", func(c *Config) *uint16 { return &c.FtrSweepRate }),
	numberDef("FtrWebSweepRate", func(c *Config) *uint16 { return &c.FtrWebSweepRate }),

	flagDef("StarbaseMCTransfer", func(c *Config) *bool { return &c.StarbaseMCTransfer }),
	numberDef("MaxMCTransfer", func(c *Config) *uint16 { return &c.MaxMCTransfer }),

	flagDef("LayMinefields", func(c *Config) *bool { return &c.LayMinefields }),
	flagDef("LayWebMinefields", func(c *Config) *bool { return &c.LayWebMinefields }),
	flagDef("MineRateFromTorpTech", func(c *Config) *bool { return &c.MineRateFromTorpTech }),

	flagDef("ScoopMinefields", func(c *Config) *bool { return &c.ScoopMinefields }),

	flagDef("TransportComp", func(c *Config) *bool { return &c.TransportComp }),
	flagDef("FreighterCarryOnly", func(c *Config) *bool { return &c.FreighterCarryOnly }),
	flagDef("NonCloakerCarryOnly", func(c *Config) *bool { return &c.NonCloakerCarryOnly }),
	numberDef("CargoSpacePerComp", func(c *Config) *uint16 { return &c.CargoSpacePerComp }),
	flagDef("AcceptMixedComponents", func(c *Config) *bool { return &c.AcceptMixedComponents }),
	flagDef("TagSpecialTransport", func(c *Config) *bool { return &c.TagSpecialTransport }),
}

func lookup(name string) (definition, bool) {
	name = strings.TrimSpace(name)
	for _, def := range definitions {
		if strings.EqualFold(def.name, name) {
			return def, true
		}
	}
	return definition{}, false
}
