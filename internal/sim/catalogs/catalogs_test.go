package catalogs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_BundledShipList(t *testing.T) {
	s, err := Load("../../../configs/shiplist")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Engines) != EngineSlots || len(s.Beams) != BeamSlots || len(s.Torpedoes) != TorpedoSlots {
		t.Fatalf("slot tables: %d/%d/%d", len(s.Engines), len(s.Beams), len(s.Torpedoes))
	}
	if s.Digest == "" {
		t.Fatalf("missing digest")
	}
	if got := s.BeamMass(10); got != 11 {
		t.Fatalf("BeamMass(10)=%d", got)
	}
	if got := s.TorpedoTech(10); got != 10 {
		t.Fatalf("TorpedoTech(10)=%d", got)
	}
	if got := s.HullCargo(17); got != 1200 {
		t.Fatalf("HullCargo(17)=%d", got)
	}
	if got := s.HullEngines(17); got != 2 {
		t.Fatalf("HullEngines(17)=%d", got)
	}
	if got := s.EngineName(1); got != "StarDrive 1" {
		t.Fatalf("EngineName(1)=%q", got)
	}
	if got := s.TorpedoName(1); got != "Mark 1 Photon" {
		t.Fatalf("TorpedoName(1)=%q", got)
	}
	if got := s.BeamName(11); got != "" {
		t.Fatalf("BeamName(11)=%q", got)
	}
	if _, ok := s.Beam(0); ok {
		t.Fatalf("slot 0 must not resolve")
	}
	if _, ok := s.Torpedo(11); ok {
		t.Fatalf("slot 11 must not resolve")
	}
}

func TestLoad_DigestStable(t *testing.T) {
	a, err := Load("../../../configs/shiplist")
	if err != nil {
		t.Fatalf("load a: %v", err)
	}
	b, err := Load("../../../configs/shiplist")
	if err != nil {
		t.Fatalf("load b: %v", err)
	}
	if a.Digest != b.Digest {
		t.Fatalf("digest not stable")
	}
}

func copyShipList(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"hulls.json", "engines.json", "beams.json", "torpedoes.json"} {
		b, err := os.ReadFile(filepath.Join("../../../configs/shiplist", name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoad_SchemaRejectsBadEntry(t *testing.T) {
	dir := copyShipList(t)
	bad := `[{"id": 1, "name": "Laser", "mass": -1, "tech": 1}]`
	if err := os.WriteFile(filepath.Join(dir, "beams.json"), []byte(bad), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "beams.json") {
		t.Fatalf("expected beams.json schema error, got %v", err)
	}
}

func TestLoad_IncompleteSlotTable(t *testing.T) {
	dir := copyShipList(t)
	short := `[{"id": 1, "name": "StarDrive 1", "tech": 1}]`
	if err := os.WriteFile(filepath.Join(dir, "engines.json"), []byte(short), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected error for incomplete engine table")
	}
}

func TestLoad_DuplicateHull(t *testing.T) {
	dir := copyShipList(t)
	dup := `[{"id": 1, "name": "A", "cargo": 1, "engines": 1}, {"id": 1, "name": "B", "cargo": 2, "engines": 1}]`
	if err := os.WriteFile(filepath.Join(dir, "hulls.json"), []byte(dup), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected duplicate hull error")
	}
}
