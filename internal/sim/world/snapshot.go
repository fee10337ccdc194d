package world

import (
	"fmt"

	"starbase.reloaded/internal/persistence/snapshot"
)

// ExportSnapshot copies the universe into its persistent form. Entities are
// written in ascending id order.
func (u *Universe) ExportSnapshot() snapshot.SnapshotV1 {
	s := snapshot.SnapshotV1{
		Header: snapshot.Header{Version: snapshot.Version, GameID: u.GameID, Turn: u.Turn},
		Host: snapshot.HostV1{
			ColonialSweepWebs: u.Host.ColonialSweepWebs,
			MaxMinefields:     u.Host.MaxMinefields,
			ShipLimit:         u.Host.ShipLimit,
		},
		SpecialCodes: u.SpecialCodes(),
	}

	for _, id := range sortedKeys(u.Players) {
		p := u.Players[id]
		pv := snapshot.PlayerV1{
			ID:                    p.ID,
			Race:                  p.Race,
			RaceAdjective:         p.RaceAdjective,
			SpecialMission:        p.SpecialMission,
			Language:              p.Language,
			MaxMinefieldRadius:    p.MaxMinefieldRadius,
			MaxWebMinefieldRadius: p.MaxWebMinefieldRadius,
		}
		for _, other := range sortedKeys(p.Alliances) {
			a := p.Alliances[other]
			pv.Alliances = append(pv.Alliances, snapshot.AllianceV1{With: other, Offered: a.Offered, Mines: a.Mines})
		}
		s.Players = append(s.Players, pv)
	}

	for _, id := range u.PlanetIDs() {
		p := u.Planets[id]
		pv := snapshot.PlanetV1{
			ID: p.ID, Name: p.Name, Owner: p.Owner, X: p.X, Y: p.Y,
			FCode: p.FCode, Credits: p.Credits,
		}
		if b := p.Base; b != nil {
			bv := &snapshot.BaseV1{
				HullTech: b.HullTech, EngineTech: b.EngineTech, BeamTech: b.BeamTech, TorpedoTech: b.TorpedoTech,
				Defense: b.Defense, Fighters: b.Fighters,
				Engines:   append([]int(nil), b.Engines[:]...),
				Beams:     append([]int(nil), b.Beams[:]...),
				Launchers: append([]int(nil), b.Launchers[:]...),
				Torpedoes: append([]int(nil), b.Torpedoes[:]...),
			}
			if o := b.Build; o != nil {
				bv.Build = &snapshot.BuildOrderV1{
					Hull: o.Hull, Engine: o.Engine,
					Beam: o.Beam, BeamCount: o.BeamCount,
					Launcher: o.Launcher, LauncherCount: o.LauncherCount,
				}
			}
			pv.Base = bv
		}
		s.Planets = append(s.Planets, pv)
	}

	for _, id := range u.ShipIDs() {
		sh := u.Ships[id]
		s.Ships = append(s.Ships, snapshot.ShipV1{
			ID: sh.ID, Owner: sh.Owner, Name: sh.Name, Hull: sh.Hull, X: sh.X, Y: sh.Y, FCode: sh.FCode,
			Tritanium: sh.Cargo.Tritanium, Duranium: sh.Cargo.Duranium, Molybdenum: sh.Cargo.Molybdenum,
			Supplies: sh.Cargo.Supplies, Colonists: sh.Cargo.Colonists, Ammo: sh.Ammo,
			Beams: sh.Beams, Launchers: sh.Launchers, Bays: sh.Bays, CanCloak: sh.CanCloak,
		})
	}

	for _, id := range u.MinefieldIDs() {
		m := u.Minefields[id]
		s.Minefields = append(s.Minefields, snapshot.MinefieldV1{ID: m.ID, Owner: m.Owner, X: m.X, Y: m.Y, Units: m.Units, Web: m.Web})
	}

	for _, msg := range u.outbox {
		s.Messages = append(s.Messages, snapshot.MessageV1{To: msg.To, Body: msg.Body})
	}
	return s
}

// ImportSnapshot rebuilds a universe. Out-of-range ids are rejected.
func ImportSnapshot(s snapshot.SnapshotV1) (*Universe, error) {
	u := New(s.Header.GameID, s.Header.Turn)
	u.Host = HostConfig{
		ColonialSweepWebs: s.Host.ColonialSweepWebs,
		MaxMinefields:     s.Host.MaxMinefields,
		ShipLimit:         s.Host.ShipLimit,
	}
	for _, c := range s.SpecialCodes {
		u.DefineSpecialCode(c)
	}

	for _, pv := range s.Players {
		p := &Player{
			ID:                    pv.ID,
			Race:                  pv.Race,
			RaceAdjective:         pv.RaceAdjective,
			SpecialMission:        pv.SpecialMission,
			Language:              pv.Language,
			MaxMinefieldRadius:    pv.MaxMinefieldRadius,
			MaxWebMinefieldRadius: pv.MaxWebMinefieldRadius,
			Alliances:             map[int]Alliance{},
		}
		for _, a := range pv.Alliances {
			p.Alliances[a.With] = Alliance{Offered: a.Offered, Mines: a.Mines}
		}
		if err := u.AddPlayer(p); err != nil {
			return nil, err
		}
	}

	for _, pv := range s.Planets {
		p := &Planet{ID: pv.ID, Name: pv.Name, Owner: pv.Owner, X: pv.X, Y: pv.Y, FCode: pv.FCode, Credits: pv.Credits}
		if bv := pv.Base; bv != nil {
			b := &Base{
				HullTech: bv.HullTech, EngineTech: bv.EngineTech, BeamTech: bv.BeamTech, TorpedoTech: bv.TorpedoTech,
				Defense: bv.Defense, Fighters: bv.Fighters,
			}
			if err := fill(b.Engines[:], bv.Engines, "engines", pv.ID); err != nil {
				return nil, err
			}
			if err := fill(b.Beams[:], bv.Beams, "beams", pv.ID); err != nil {
				return nil, err
			}
			if err := fill(b.Launchers[:], bv.Launchers, "launchers", pv.ID); err != nil {
				return nil, err
			}
			if err := fill(b.Torpedoes[:], bv.Torpedoes, "torpedoes", pv.ID); err != nil {
				return nil, err
			}
			if o := bv.Build; o != nil {
				b.Build = &BuildOrder{
					Hull: o.Hull, Engine: o.Engine,
					Beam: o.Beam, BeamCount: o.BeamCount,
					Launcher: o.Launcher, LauncherCount: o.LauncherCount,
				}
			}
			p.Base = b
		}
		if err := u.AddPlanet(p); err != nil {
			return nil, err
		}
	}

	for _, sv := range s.Ships {
		sh := &Ship{
			ID: sv.ID, Owner: sv.Owner, Name: sv.Name, Hull: sv.Hull, X: sv.X, Y: sv.Y, FCode: sv.FCode,
			Cargo: Cargo{
				Tritanium: sv.Tritanium, Duranium: sv.Duranium, Molybdenum: sv.Molybdenum,
				Supplies: sv.Supplies, Colonists: sv.Colonists,
			},
			Ammo:  sv.Ammo,
			Beams: sv.Beams, Launchers: sv.Launchers, Bays: sv.Bays, CanCloak: sv.CanCloak,
		}
		if err := u.AddShip(sh); err != nil {
			return nil, err
		}
	}

	for _, mv := range s.Minefields {
		if mv.ID < 1 || mv.ID > u.minefieldLimit() {
			return nil, fmt.Errorf("minefield %d: %w", mv.ID, ErrOutOfRange)
		}
		u.Minefields[mv.ID] = &Minefield{ID: mv.ID, Owner: mv.Owner, X: mv.X, Y: mv.Y, Units: mv.Units, Web: mv.Web}
	}

	for _, m := range s.Messages {
		u.outbox = append(u.outbox, Message{To: m.To, Body: m.Body})
	}
	return u, nil
}

func fill(dst, src []int, what string, planet int) error {
	if len(src) > len(dst) {
		return fmt.Errorf("planet %d %s: %d slots, want at most %d: %w", planet, what, len(src), len(dst), ErrOutOfRange)
	}
	copy(dst, src)
	return nil
}
