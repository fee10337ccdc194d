package transport

import (
	"fmt"
	"testing"

	"starbase.reloaded/internal/persistence/utildata"
	"starbase.reloaded/internal/sim/notify"
	"starbase.reloaded/internal/sim/tuning"
	"starbase.reloaded/internal/sim/world"
)

// testShips uses the hull id as its cargo capacity; beams weigh their slot
// number and launchers twice that.
type testShips struct{}

func (testShips) HullCargo(id int) int { return id }
func (testShips) HullEngines(id int) int { return 2 }
func (testShips) BeamMass(slot int) int { return slot }
func (testShips) LauncherMass(slot int) int { return 2 * slot }
func (testShips) EngineName(slot int) string { return fmt.Sprintf("Engine %d", slot) }
func (testShips) BeamName(slot int) string { return fmt.Sprintf("Beam %d", slot) }
func (testShips) TorpedoName(slot int) string { return fmt.Sprintf("Torpedo %d", slot) }

const baseX, baseY = 1000, 1000

type fixture struct {
	u      *world.Universe
	ledger *Ledger
	stage  *Stage
	sink   *utildata.Sink
}

func newFixture(t *testing.T, cfg tuning.Config) *fixture {
	t.Helper()
	u := world.New("test", 1)
	for id := 1; id <= 2; id++ {
		if err := u.AddPlayer(&world.Player{ID: id, RaceAdjective: "Test"}); err != nil {
			t.Fatalf("player: %v", err)
		}
	}
	sink := utildata.NewSink()
	return &fixture{
		u:      u,
		ledger: New(50),
		stage:  NewStage(cfg, u, testShips{}, notify.New(u, nil), sink, nil),
		sink:   sink,
	}
}

func (f *fixture) base(t *testing.T, id, owner int, b world.Base) *world.Planet {
	t.Helper()
	p := &world.Planet{ID: id, Name: "Base", Owner: owner, X: baseX + 10*(id-1), Y: baseY, Base: &b}
	if err := f.u.AddPlanet(p); err != nil {
		t.Fatalf("planet: %v", err)
	}
	return p
}

func (f *fixture) ship(t *testing.T, s world.Ship) *world.Ship {
	t.Helper()
	if s.X == 0 {
		s.X, s.Y = baseX, baseY
	}
	if s.Name == "" {
		s.Name = fmt.Sprintf("Ship %d", s.ID)
	}
	if err := f.u.AddShip(&s); err != nil {
		t.Fatalf("ship: %v", err)
	}
	return f.u.Ships[s.ID]
}

func (f *fixture) carry(t *testing.T, id int, c Class, slot, n int) {
	t.Helper()
	sh, err := f.ledger.Ship(id)
	if err != nil {
		t.Fatalf("ledger: %v", err)
	}
	if err := sh.Set(c, slot, n); err != nil {
		t.Fatalf("set: %v", err)
	}
}

func (f *fixture) count(id int, c Class, slot int) int {
	sh, _ := f.ledger.Ship(id)
	n, _ := sh.Count(c, slot)
	return n
}

func massOnlyConfig() tuning.Config {
	cfg := tuning.Defaults()
	cfg.CargoSpacePerComp = 0
	return cfg
}

func TestUnitMass(t *testing.T) {
	f := newFixture(t, tuning.Defaults())
	if got := f.stage.UnitMass(Engine, 3); got != 40 {
		t.Fatalf("engine with minimum 40: %d", got)
	}
	g := newFixture(t, massOnlyConfig())
	for _, tc := range []struct {
		c    Class
		slot int
		want int
	}{
		{Engine, 9, 1},
		{Beam, 7, 7},
		{Launcher, 10, 20},
	} {
		if got := g.stage.UnitMass(tc.c, tc.slot); got != tc.want {
			t.Fatalf("%s %d: got %d want %d", tc.c, tc.slot, got, tc.want)
		}
	}
}

func TestTrim_RefitOverloadDropsBeamsBeforeEngines(t *testing.T) {
	f := newFixture(t, massOnlyConfig())
	f.ship(t, world.Ship{ID: 1, Owner: 1, Hull: 100})
	f.carry(t, 1, Engine, 1, 40) // 40 kt
	f.carry(t, 1, Beam, 5, 20)   // 100 kt

	trims := f.stage.TrimOnly(f.ledger)

	sh, _ := f.ledger.Ship(1)
	if m := f.stage.ComponentMass(sh); m > 100 {
		t.Fatalf("mass after trim %d", m)
	}
	if got := f.count(1, Engine, 1); got != 40 {
		t.Fatalf("engines %d, want 40 untouched", got)
	}
	if got := f.count(1, Beam, 5); got != 12 {
		t.Fatalf("beams %d, want 12", got)
	}
	if len(trims) != 1 || trims[0].Components != 8 || trims[0].ComponentMass != 40 {
		t.Fatalf("trims %+v", trims)
	}
	if len(f.u.Outbox()) != 1 || f.u.Outbox()[0].To != 1 {
		t.Fatalf("outbox %+v", f.u.Outbox())
	}
}

func TestTrim_HighestSlotFirst(t *testing.T) {
	f := newFixture(t, massOnlyConfig())
	f.ship(t, world.Ship{ID: 1, Owner: 1, Hull: 10})
	f.carry(t, 1, Beam, 1, 5)     // 5 kt
	f.carry(t, 1, Beam, 2, 3)     // 6 kt
	f.carry(t, 1, Launcher, 1, 1) // 2 kt

	f.stage.TrimOnly(f.ledger)

	// 13 kt on 10: two units of beam 2 go first.
	if got := f.count(1, Beam, 2); got != 1 {
		t.Fatalf("beam 2 = %d", got)
	}
	if got := f.count(1, Beam, 1); got != 5 {
		t.Fatalf("beam 1 = %d", got)
	}
	if got := f.count(1, Launcher, 1); got != 1 {
		t.Fatalf("launcher 1 = %d", got)
	}
}

func TestTrim_Phase2StaysWithinCapacity(t *testing.T) {
	f := newFixture(t, tuning.Defaults())
	s := f.ship(t, world.Ship{ID: 1, Owner: 1, Hull: 100, Ammo: 20,
		Cargo: world.Cargo{Tritanium: 30, Duranium: 30, Molybdenum: 10, Colonists: 5}})
	f.carry(t, 1, Engine, 2, 1) // 40 kt

	trims := f.stage.TrimOnly(f.ledger)

	if got := s.CargoMass() + 40; got > 100 {
		t.Fatalf("total %d", got)
	}
	if len(trims) != 1 || trims[0].CargoMass != 35 || trims[0].Components != 0 {
		t.Fatalf("trims %+v", trims)
	}
	for name, v := range map[string]int{
		"T": s.Cargo.Tritanium, "D": s.Cargo.Duranium, "M": s.Cargo.Molybdenum,
		"S": s.Cargo.Supplies, "C": s.Cargo.Colonists, "ammo": s.Ammo,
	} {
		if v < 0 {
			t.Fatalf("%s negative: %d", name, v)
		}
	}
	// First round takes 5 from each non-empty kind.
	if s.Cargo.Colonists != 0 {
		t.Fatalf("colonists %d", s.Cargo.Colonists)
	}
	if f.count(1, Engine, 2) != 1 {
		t.Fatalf("component dropped")
	}
}

func TestTrim_ExhaustsEverything(t *testing.T) {
	f := newFixture(t, tuning.Defaults())
	s := f.ship(t, world.Ship{ID: 1, Owner: 1, Hull: 0, Ammo: 3,
		Cargo: world.Cargo{Tritanium: 1, Supplies: 50}})
	f.carry(t, 1, Beam, 10, 2)
	f.carry(t, 1, Engine, 9, 2)

	trims := f.stage.TrimOnly(f.ledger)

	sh, _ := f.ledger.Ship(1)
	if sh.HasComponents() || s.CargoMass() != 0 {
		t.Fatalf("left components=%v cargo=%d", sh.HasComponents(), s.CargoMass())
	}
	if len(trims) != 1 || trims[0].Components != 4 || trims[0].CargoMass != 54 {
		t.Fatalf("trims %+v", trims)
	}
}

func TestTrim_ClearsMissingShips(t *testing.T) {
	f := newFixture(t, tuning.Defaults())
	f.carry(t, 7, Beam, 1, 3)
	if trims := f.stage.TrimOnly(f.ledger); len(trims) != 0 {
		t.Fatalf("trims %+v", trims)
	}
	if len(f.ledger.Carriers()) != 0 {
		t.Fatalf("record of a missing ship kept")
	}
}

// loadSetup is what a load test case may change before the load runs.
type loadSetup struct {
	cfg  *tuning.Config
	ship *world.Ship
	base *world.Base
	f    *fixture
	t    *testing.T
}

func TestLoadComponent_Outcomes(t *testing.T) {
	// The base holds 10 units of beam 5, 4 of them reserved. The ship has
	// 150 kt free; with the 40 kt minimum it takes 3 beams.
	tests := []struct {
		name    string
		want    Outcome
		count   int
		stockTo int
		setup   func(s *loadSetup)
	}{
		{"loaded up to free room", Loaded, 3, 7, nil},
		{"loaded up to unreserved stock", Loaded, 6, 4, func(s *loadSetup) {
			s.ship.Hull = 1000
		}},
		{"armed ship not permitted", NotPermitted, 0, 10, func(s *loadSetup) {
			s.ship.Beams = 2
		}},
		{"armed ship permitted when rule is off", Loaded, 3, 7, func(s *loadSetup) {
			s.ship.Bays = 1
			s.cfg.FreighterCarryOnly = false
		}},
		{"cloaker not permitted", NotPermitted, 0, 10, func(s *loadSetup) {
			s.ship.CanCloak = true
		}},
		{"all stock reserved", NoParts, 0, 10, func(s *loadSetup) {
			s.base.Build.BeamCount = 10
		}},
		{"other component aboard", Conflict, 0, 10, func(s *loadSetup) {
			s.cfg.AcceptMixedComponents = false
			s.f.carry(s.t, 1, Engine, 1, 1)
		}},
		{"same component aboard is no conflict", Loaded, 2, 8, func(s *loadSetup) {
			s.cfg.AcceptMixedComponents = false
			s.f.carry(s.t, 1, Beam, 5, 1)
		}},
		{"no room", NoSpace, 0, 10, func(s *loadSetup) {
			s.ship.Cargo.Tritanium = 170
		}},
		{"overloaded ship has no room", NoSpace, 0, 10, func(s *loadSetup) {
			s.ship.Cargo.Tritanium = 500
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tuning.Defaults()
			ship := world.Ship{ID: 1, Owner: 1, Hull: 200, Cargo: world.Cargo{Tritanium: 50}}
			b := world.Base{Build: &world.BuildOrder{Hull: 1, Beam: 5, BeamCount: 4}}
			b.Beams[4] = 10
			f := newFixture(t, cfg)
			if tc.setup != nil {
				tc.setup(&loadSetup{cfg: &cfg, ship: &ship, base: &b, f: f, t: t})
			}
			f.stage = NewStage(cfg, f.u, testShips{}, notify.New(f.u, nil), f.sink, nil)
			p := f.base(t, 1, 1, b)
			f.ship(t, ship)
			before := f.count(1, Beam, 5)

			res, err := f.stage.LoadComponent(f.ledger, 1, 1, Beam, 5)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if res.Outcome != tc.want || res.Count != tc.count {
				t.Fatalf("got %v(%d), want %v(%d)", res.Outcome, res.Count, tc.want, tc.count)
			}
			if got := p.Base.Beams[4]; got != tc.stockTo {
				t.Fatalf("base stock %d, want %d", got, tc.stockTo)
			}
			if got := f.count(1, Beam, 5) - before; got != tc.count {
				t.Fatalf("ship gained %d", got)
			}
			if len(f.u.Outbox()) != 1 {
				t.Fatalf("%d messages", len(f.u.Outbox()))
			}
		})
	}
}

func TestLoadComponent_ReservedEnginesFollowHull(t *testing.T) {
	f := newFixture(t, tuning.Defaults())
	b := world.Base{Build: &world.BuildOrder{Hull: 17, Engine: 3}}
	b.Engines[2] = 2
	f.base(t, 1, 1, b)
	f.ship(t, world.Ship{ID: 1, Owner: 1, Hull: 500})

	res, err := f.stage.LoadComponent(f.ledger, 1, 1, Engine, 3)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Outcome != NoParts {
		t.Fatalf("outcome %v", res.Outcome)
	}
	if _, err := f.stage.LoadComponent(f.ledger, 1, 1, Engine, 10); err == nil {
		t.Fatalf("engine slot 10 accepted")
	}
}

func TestUnloadComponent_CappedAtCeiling(t *testing.T) {
	f := newFixture(t, tuning.Defaults())
	b := world.Base{}
	b.Launchers[9] = world.StorageCeiling - 5
	p := f.base(t, 1, 2, b)
	f.ship(t, world.Ship{ID: 1, Owner: 1, Hull: 1000})
	f.carry(t, 1, Launcher, 10, 20)

	res, err := f.stage.UnloadComponent(f.ledger, 1, 1, Launcher, 10)
	if err != nil {
		t.Fatalf("unload: %v", err)
	}
	if res.Outcome != Unloaded || res.Count != 5 {
		t.Fatalf("got %v(%d)", res.Outcome, res.Count)
	}
	if p.Base.Launchers[9] != world.StorageCeiling || f.count(1, Launcher, 10) != 15 {
		t.Fatalf("base %d ship %d", p.Base.Launchers[9], f.count(1, Launcher, 10))
	}

	res, _ = f.stage.UnloadComponent(f.ledger, 1, 1, Launcher, 10)
	if res.Outcome != Unloaded || res.Count != 0 {
		t.Fatalf("full base: got %v(%d)", res.Outcome, res.Count)
	}
	res, _ = f.stage.UnloadComponent(f.ledger, 1, 1, Beam, 1)
	if res.Outcome != NoParts {
		t.Fatalf("empty slot: got %v", res.Outcome)
	}
}

func TestUnloadAll(t *testing.T) {
	f := newFixture(t, tuning.Defaults())
	p := f.base(t, 1, 1, world.Base{})
	f.ship(t, world.Ship{ID: 1, Owner: 1, Hull: 1000})
	f.ship(t, world.Ship{ID: 2, Owner: 1, Hull: 1000})
	f.carry(t, 1, Engine, 9, 2)
	f.carry(t, 1, Beam, 1, 3)
	f.carry(t, 1, Launcher, 4, 4)

	res, err := f.stage.UnloadAll(f.ledger, 1, 1)
	if err != nil {
		t.Fatalf("unload: %v", err)
	}
	if res.Outcome != Unloaded || res.Count != 9 {
		t.Fatalf("got %v(%d)", res.Outcome, res.Count)
	}
	if p.Base.Engines[8] != 2 || p.Base.Beams[0] != 3 || p.Base.Launchers[3] != 4 {
		t.Fatalf("base %+v", p.Base)
	}
	if len(f.ledger.Carriers()) != 0 {
		t.Fatalf("ship still carrying")
	}

	res, _ = f.stage.UnloadAll(f.ledger, 2, 1)
	if res.Outcome != NoParts {
		t.Fatalf("empty ship: got %v", res.Outcome)
	}
}
