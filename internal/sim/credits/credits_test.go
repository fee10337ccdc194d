package credits

import (
	"reflect"
	"testing"

	"starbase.reloaded/internal/sim/tuning"
	"starbase.reloaded/internal/sim/world"
)

type recorder struct {
	noTechReceive []int
	noTechSend    []int
	transfers     []Transfer
}

func (r *recorder) CreditsInsufficientTechToReceive(owner, planet, required int) {
	r.noTechReceive = append(r.noTechReceive, planet)
}

func (r *recorder) CreditsInsufficientTechToSend(owner, planet, required int) {
	r.noTechSend = append(r.noTechSend, planet)
}

func (r *recorder) CreditsTransferred(owner, from, to, amount int) {
	r.transfers = append(r.transfers, Transfer{Owner: owner, From: from, To: to, Amount: amount})
}

var highTech = world.Base{HullTech: 5, EngineTech: 5, BeamTech: 5, TorpedoTech: 5}

func addBase(t *testing.T, u *world.Universe, id, owner int, code string, credits int, b world.Base) *world.Planet {
	t.Helper()
	p := &world.Planet{ID: id, Owner: owner, X: 100 * id, Y: 100, FCode: code, Credits: credits, Base: &b}
	if err := u.AddPlanet(p); err != nil {
		t.Fatalf("planet: %v", err)
	}
	return p
}

func TestRun_TransfersCappedByCodeConfigAndFunds(t *testing.T) {
	u := world.New("test", 1)
	recv := addBase(t, u, 1, 1, CodeReceive, 0, highTech)
	a := addBase(t, u, 2, 1, "TM5", 10000, highTech) // capped by MaxMCTransfer 3000
	b := addBase(t, u, 3, 1, "TM2", 10000, highTech) // 2000
	c := addBase(t, u, 4, 1, "TM1", 400, highTech)   // only 400 on hand
	other := addBase(t, u, 5, 2, "TM1", 5000, highTech)

	r := &recorder{}
	got := New(tuning.Defaults(), u, r, nil).Run()

	want := []Transfer{
		{Owner: 1, From: 2, To: 1, Amount: 3000},
		{Owner: 1, From: 3, To: 1, Amount: 2000},
		{Owner: 1, From: 4, To: 1, Amount: 400},
	}
	if !reflect.DeepEqual(got, want) || !reflect.DeepEqual(r.transfers, want) {
		t.Fatalf("transfers %+v, messages %+v", got, r.transfers)
	}
	if recv.Credits != 5400 || a.Credits != 7000 || b.Credits != 8000 || c.Credits != 0 {
		t.Fatalf("credits recv=%d a=%d b=%d c=%d", recv.Credits, a.Credits, b.Credits, c.Credits)
	}
	if other.Credits != 5000 {
		t.Fatalf("player without receiver sent money")
	}
}

func TestRun_TechAndDuplicates(t *testing.T) {
	u := world.New("test", 1)
	lowTech := world.Base{HullTech: 10, EngineTech: 9}
	addBase(t, u, 1, 1, CodeReceive, 0, lowTech)
	first := addBase(t, u, 2, 1, CodeReceive, 0, highTech)
	second := addBase(t, u, 3, 1, CodeReceive, 0, highTech)
	addBase(t, u, 4, 1, "TM1", 1000, lowTech)
	addBase(t, u, 5, 1, "TM6", 1000, highTech)
	addBase(t, u, 6, 1, "TM1", 1000, highTech)

	r := &recorder{}
	got := New(tuning.Defaults(), u, r, nil).Run()

	if !reflect.DeepEqual(r.noTechReceive, []int{1}) || !reflect.DeepEqual(r.noTechSend, []int{4}) {
		t.Fatalf("tech messages receive=%v send=%v", r.noTechReceive, r.noTechSend)
	}
	if len(got) != 1 || got[0].From != 6 || got[0].To != 2 {
		t.Fatalf("transfers %+v", got)
	}
	if first.Credits != 1000 || second.Credits != 0 {
		t.Fatalf("first=%d second=%d", first.Credits, second.Credits)
	}
}

func TestRun_Disabled(t *testing.T) {
	for _, mutate := range []func(*tuning.Config){
		func(c *tuning.Config) { c.StarbaseMCTransfer = false },
		func(c *tuning.Config) { c.MaxMCTransfer = 0 },
	} {
		u := world.New("test", 1)
		addBase(t, u, 1, 1, CodeReceive, 0, highTech)
		p := addBase(t, u, 2, 1, "TM1", 1000, highTech)
		cfg := tuning.Defaults()
		mutate(&cfg)
		if got := New(cfg, u, &recorder{}, nil).Run(); len(got) != 0 || p.Credits != 1000 {
			t.Fatalf("transfers %+v credits %d", got, p.Credits)
		}
	}
}
