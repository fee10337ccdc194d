package world

import "fmt"

type Cargo struct {
	Tritanium  int
	Duranium   int
	Molybdenum int
	Supplies   int
	Colonists  int
}

type Ship struct {
	ID    int
	Owner int
	Name  string
	Hull  int
	X, Y  int
	FCode string
	Cargo Cargo
	// Ammo counts torpedoes or fighters aboard.
	Ammo int

	Beams     int
	Launchers int
	Bays      int
	CanCloak  bool
}

// CargoMass is the mass of standard cargo and ammunition, in kt.
func (s *Ship) CargoMass() int {
	c := s.Cargo
	return c.Tritanium + c.Duranium + c.Molybdenum + c.Supplies + c.Colonists + s.Ammo
}

func (u *Universe) shipLimit() int {
	if u.Host.ShipLimit > 0 && u.Host.ShipLimit < MaxShips {
		return u.Host.ShipLimit
	}
	return MaxShips
}

func (u *Universe) Ship(id int) (*Ship, error) {
	if id < 1 || id > u.shipLimit() {
		return nil, fmt.Errorf("ship %d: %w", id, ErrOutOfRange)
	}
	s, ok := u.Ships[id]
	if !ok {
		return nil, fmt.Errorf("ship %d: %w", id, ErrNotFound)
	}
	return s, nil
}

func (u *Universe) AddShip(s *Ship) error {
	if s.ID < 1 || s.ID > u.shipLimit() {
		return fmt.Errorf("ship %d: %w", s.ID, ErrOutOfRange)
	}
	if len(s.Name) > ShipNameSize {
		s.Name = s.Name[:ShipNameSize]
	}
	u.Ships[s.ID] = s
	return nil
}

// ShipIDs returns the ids of all ships in ascending order.
func (u *Universe) ShipIDs() []int {
	return sortedKeys(u.Ships)
}

func (u *Universe) ShipExists(id int) bool {
	_, ok := u.Ships[id]
	return ok
}

func (u *Universe) ShipName(id int) string {
	if s, err := u.Ship(id); err == nil {
		return s.Name
	}
	return fmt.Sprintf("Ship %d", id)
}

// SetShipName stores a ship name, truncated to ShipNameSize.
func (u *Universe) SetShipName(id int, name string) error {
	s, err := u.Ship(id)
	if err != nil {
		return err
	}
	if len(name) > ShipNameSize {
		name = name[:ShipNameSize]
	}
	s.Name = name
	return nil
}

// BaseAtShip returns the planet with a base at the ship's position.
func (u *Universe) BaseAtShip(id int) (*Planet, error) {
	s, err := u.Ship(id)
	if err != nil {
		return nil, err
	}
	p, err := u.PlanetAt(s.X, s.Y)
	if err != nil {
		return nil, err
	}
	if p.Base == nil {
		return nil, fmt.Errorf("base at ship %d: %w", id, ErrNotFound)
	}
	return p, nil
}
