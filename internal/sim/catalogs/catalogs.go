package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Slot counts of the per-base component stock.
const (
	EngineSlots  = 9
	BeamSlots    = 10
	TorpedoSlots = 10
)

// ShipList is the static component catalog of a game.
type ShipList struct {
	Hulls     map[int]Hull
	Engines   []Engine  // slot 1 at index 0
	Beams     []Beam    // slot 1 at index 0
	Torpedoes []Torpedo // slot 1 at index 0

	// Digest is the sha256 of the four source files, in load order.
	Digest string
}

type Hull struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Cargo     int    `json:"cargo"`
	Engines   int    `json:"engines"`
	Beams     int    `json:"beams"`
	Launchers int    `json:"launchers"`
	Bays      int    `json:"bays"`
	TechLevel int    `json:"tech"`
}

type Engine struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	TechLevel int    `json:"tech"`
}

type Beam struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Mass      int    `json:"mass"`
	TechLevel int    `json:"tech"`
}

type Torpedo struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	LauncherMass int    `json:"launcher_mass"`
	TechLevel    int    `json:"tech"`
}

// Load reads hulls.json, engines.json, beams.json and torpedoes.json from dir.
func Load(dir string) (*ShipList, error) {
	s := &ShipList{Hulls: map[int]Hull{}}
	h := sha256.New()

	var hulls []Hull
	if err := loadFile(dir, "hulls.json", hullSchema, &hulls, h.Write); err != nil {
		return nil, err
	}
	for _, hull := range hulls {
		if _, dup := s.Hulls[hull.ID]; dup {
			return nil, fmt.Errorf("hulls.json: duplicate id %d", hull.ID)
		}
		s.Hulls[hull.ID] = hull
	}

	if err := loadFile(dir, "engines.json", engineSchema, &s.Engines, h.Write); err != nil {
		return nil, err
	}
	if err := loadFile(dir, "beams.json", beamSchema, &s.Beams, h.Write); err != nil {
		return nil, err
	}
	if err := loadFile(dir, "torpedoes.json", torpedoSchema, &s.Torpedoes, h.Write); err != nil {
		return nil, err
	}

	sort.Slice(s.Engines, func(i, j int) bool { return s.Engines[i].ID < s.Engines[j].ID })
	sort.Slice(s.Beams, func(i, j int) bool { return s.Beams[i].ID < s.Beams[j].ID })
	sort.Slice(s.Torpedoes, func(i, j int) bool { return s.Torpedoes[i].ID < s.Torpedoes[j].ID })
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.Digest = hex.EncodeToString(h.Sum(nil))
	return s, nil
}

// Validate checks that every slot table is complete and ordered by id.
func (s *ShipList) Validate() error {
	if err := checkSlots("engines.json", len(s.Engines), EngineSlots, func(i int) int { return s.Engines[i].ID }); err != nil {
		return err
	}
	if err := checkSlots("beams.json", len(s.Beams), BeamSlots, func(i int) int { return s.Beams[i].ID }); err != nil {
		return err
	}
	return checkSlots("torpedoes.json", len(s.Torpedoes), TorpedoSlots, func(i int) int { return s.Torpedoes[i].ID })
}

func checkSlots(file string, n, want int, id func(int) int) error {
	if n != want {
		return fmt.Errorf("%s: %d entries, want %d", file, n, want)
	}
	for i := 0; i < n; i++ {
		if id(i) != i+1 {
			return fmt.Errorf("%s: entry %d has id %d, want %d", file, i, id(i), i+1)
		}
	}
	return nil
}

func loadFile(dir, name string, schema *jsonschema.Schema, out any, digest func([]byte) (int, error)) error {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	_, _ = digest(raw)

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Hull returns the hull with the given id.
func (s *ShipList) Hull(id int) (Hull, bool) {
	h, ok := s.Hulls[id]
	return h, ok
}

// Beam returns the beam of a 1-based slot.
func (s *ShipList) Beam(slot int) (Beam, bool) {
	if slot < 1 || slot > len(s.Beams) {
		return Beam{}, false
	}
	return s.Beams[slot-1], true
}

// Torpedo returns the torpedo of a 1-based slot.
func (s *ShipList) Torpedo(slot int) (Torpedo, bool) {
	if slot < 1 || slot > len(s.Torpedoes) {
		return Torpedo{}, false
	}
	return s.Torpedoes[slot-1], true
}

// Engine returns the engine of a 1-based slot.
func (s *ShipList) Engine(slot int) (Engine, bool) {
	if slot < 1 || slot > len(s.Engines) {
		return Engine{}, false
	}
	return s.Engines[slot-1], true
}

// BeamMass is the per-unit mass of a beam slot, 0 for an unknown slot.
func (s *ShipList) BeamMass(slot int) int {
	b, _ := s.Beam(slot)
	return b.Mass
}

// LauncherMass is the per-unit mass of a torpedo launcher slot.
func (s *ShipList) LauncherMass(slot int) int {
	t, _ := s.Torpedo(slot)
	return t.LauncherMass
}

// TorpedoTech is the tech level of a torpedo slot.
func (s *ShipList) TorpedoTech(slot int) int {
	t, _ := s.Torpedo(slot)
	return t.TechLevel
}

// HullCargo is the cargo capacity of a hull, 0 for an unknown hull.
func (s *ShipList) HullCargo(id int) int {
	return s.Hulls[id].Cargo
}

// HullEngines is the number of engines a hull is built with.
func (s *ShipList) HullEngines(id int) int {
	return s.Hulls[id].Engines
}

func (s *ShipList) EngineName(slot int) string {
	e, _ := s.Engine(slot)
	return e.Name
}

func (s *ShipList) BeamName(slot int) string {
	b, _ := s.Beam(slot)
	return b.Name
}

func (s *ShipList) TorpedoName(slot int) string {
	t, _ := s.Torpedo(slot)
	return t.Name
}
