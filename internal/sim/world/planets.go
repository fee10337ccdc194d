package world

import "fmt"

type Planet struct {
	ID      int
	Name    string
	Owner   int
	X, Y    int
	FCode   string
	Credits int
	Base    *Base
}

type Base struct {
	HullTech    int
	EngineTech  int
	BeamTech    int
	TorpedoTech int
	Defense     int
	Fighters    int

	Engines   [9]int
	Beams     [10]int
	Launchers [10]int
	Torpedoes [10]int

	Build *BuildOrder
}

// BuildOrder is the ship a base is about to build. Its parts are reserved.
type BuildOrder struct {
	Hull          int
	Engine        int
	Beam          int
	BeamCount     int
	Launcher      int
	LauncherCount int
}

// TotalTech is the sum of the four tech levels.
func (b *Base) TotalTech() int {
	return b.HullTech + b.EngineTech + b.BeamTech + b.TorpedoTech
}

func (u *Universe) Planet(id int) (*Planet, error) {
	if id < 1 || id > MaxPlanets {
		return nil, fmt.Errorf("planet %d: %w", id, ErrOutOfRange)
	}
	p, ok := u.Planets[id]
	if !ok {
		return nil, fmt.Errorf("planet %d: %w", id, ErrNotFound)
	}
	return p, nil
}

func (u *Universe) AddPlanet(p *Planet) error {
	if p.ID < 1 || p.ID > MaxPlanets {
		return fmt.Errorf("planet %d: %w", p.ID, ErrOutOfRange)
	}
	u.Planets[p.ID] = p
	return nil
}

// PlanetIDs returns the ids of all planets in ascending order.
func (u *Universe) PlanetIDs() []int {
	return sortedKeys(u.Planets)
}

// BaseIDs returns the ids of all planets with a base, ascending.
func (u *Universe) BaseIDs() []int {
	var out []int
	for _, id := range u.PlanetIDs() {
		if u.Planets[id].Base != nil {
			out = append(out, id)
		}
	}
	return out
}

// PlanetAt returns the planet at exactly (x, y).
func (u *Universe) PlanetAt(x, y int) (*Planet, error) {
	for _, id := range u.PlanetIDs() {
		p := u.Planets[id]
		if p.X == x && p.Y == y {
			return p, nil
		}
	}
	return nil, fmt.Errorf("planet at (%d,%d): %w", x, y, ErrNotFound)
}

func (u *Universe) PlanetName(id int) string {
	if p, err := u.Planet(id); err == nil {
		return p.Name
	}
	return fmt.Sprintf("Planet %d", id)
}
