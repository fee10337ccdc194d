package world

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	MaxPlanets    = 500
	MaxShips      = 999
	MaxPlayers    = 11
	MaxMinefields = 500

	// StorageCeiling bounds per-slot base stock of torpedoes and components.
	StorageCeiling = 10000

	// ShipNameSize is the longest ship name the universe stores.
	ShipNameSize = 20
)

// Races with rules of their own.
const (
	RaceColonies = 11
)

var (
	ErrNotFound        = errors.New("not found")
	ErrOutOfRange      = errors.New("id out of range")
	ErrNoMinefieldSlot = errors.New("no free minefield slot")
)

// HostConfig is the subset of the host's settings this stage consumes.
type HostConfig struct {
	ColonialSweepWebs bool
	// MaxMinefields caps the number of live minefields. 0 means MaxMinefields.
	MaxMinefields int
	// ShipLimit caps ship ids. 0 means MaxShips.
	ShipLimit int
}

type Alliance struct {
	Offered bool
	Mines   bool
}

type Player struct {
	ID                    int
	Race                  int
	RaceAdjective         string
	SpecialMission        int
	Language              string
	MaxMinefieldRadius    int
	MaxWebMinefieldRadius int
	Alliances             map[int]Alliance
}

// Universe is the in-memory state of one turn.
type Universe struct {
	GameID string
	Turn   int
	Host   HostConfig

	Players    map[int]*Player
	Planets    map[int]*Planet
	Ships      map[int]*Ship
	Minefields map[int]*Minefield

	specialCodes map[string]struct{}
	outbox       []Message
}

// Message is an encoded notification addressed to one player.
type Message struct {
	To   int
	Body []byte
}

func New(gameID string, turn int) *Universe {
	return &Universe{
		GameID:       gameID,
		Turn:         turn,
		Players:      map[int]*Player{},
		Planets:      map[int]*Planet{},
		Ships:        map[int]*Ship{},
		Minefields:   map[int]*Minefield{},
		specialCodes: map[string]struct{}{},
	}
}

// HostConfig returns the host settings of this universe.
func (u *Universe) HostConfig() HostConfig { return u.Host }

func (u *Universe) Player(id int) (*Player, error) {
	if id < 1 || id > MaxPlayers {
		return nil, fmt.Errorf("player %d: %w", id, ErrOutOfRange)
	}
	p, ok := u.Players[id]
	if !ok {
		return nil, fmt.Errorf("player %d: %w", id, ErrNotFound)
	}
	return p, nil
}

// AddPlayer inserts or replaces a player.
func (u *Universe) AddPlayer(p *Player) error {
	if p.ID < 1 || p.ID > MaxPlayers {
		return fmt.Errorf("player %d: %w", p.ID, ErrOutOfRange)
	}
	if p.Alliances == nil {
		p.Alliances = map[int]Alliance{}
	}
	u.Players[p.ID] = p
	return nil
}

// Allied reports whether a and b offered each other an alliance.
func (u *Universe) Allied(a, b int) bool {
	pa, errA := u.Player(a)
	pb, errB := u.Player(b)
	if errA != nil || errB != nil {
		return false
	}
	return pa.Alliances[b].Offered && pb.Alliances[a].Offered
}

// MinesProtected reports whether a and b are allied and both grant the mines
// privilege to the other.
func (u *Universe) MinesProtected(a, b int) bool {
	if !u.Allied(a, b) {
		return false
	}
	return u.Players[a].Alliances[b].Mines && u.Players[b].Alliances[a].Mines
}

// RaceAdjective returns the possessive adjective of a player's race, or
// "Player N" when unknown.
func (u *Universe) RaceAdjective(id int) string {
	if p, err := u.Player(id); err == nil && p.RaceAdjective != "" {
		return p.RaceAdjective
	}
	return fmt.Sprintf("Player %d", id)
}

// PlayerLanguage returns the language tag a player reads messages in.
func (u *Universe) PlayerLanguage(id int) string {
	if p, err := u.Player(id); err == nil {
		return p.Language
	}
	return ""
}

// DefineSpecialCode registers a friendly code as reserved so the host never
// assigns it at random.
func (u *Universe) DefineSpecialCode(code string) {
	if u.specialCodes == nil {
		u.specialCodes = map[string]struct{}{}
	}
	u.specialCodes[code] = struct{}{}
}

func (u *Universe) IsSpecialCode(code string) bool {
	_, ok := u.specialCodes[code]
	return ok
}

// SpecialCodes returns the reserved codes in sorted order.
func (u *Universe) SpecialCodes() []string {
	out := make([]string, 0, len(u.specialCodes))
	for c := range u.specialCodes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// SendMessage queues an encoded message for a player.
func (u *Universe) SendMessage(to int, body []byte) error {
	if to < 1 || to > MaxPlayers {
		return fmt.Errorf("message to player %d: %w", to, ErrOutOfRange)
	}
	u.outbox = append(u.outbox, Message{To: to, Body: append([]byte(nil), body...)})
	return nil
}

// Outbox returns the queued messages in send order.
func (u *Universe) Outbox() []Message {
	return u.outbox
}

// ClearOutbox drops queued messages once they have been delivered.
func (u *Universe) ClearOutbox() {
	u.outbox = nil
}

// MatchCode returns n when code is prefix followed by a digit naming slot n
// (1..9, 0 for 10) and n ≤ limit. It returns 0 otherwise.
func MatchCode(code, prefix string, limit int) int {
	if len(code) != len(prefix)+1 || !strings.HasPrefix(code, prefix) {
		return 0
	}
	ch := code[len(prefix)]
	if ch < '0' || ch > '9' {
		return 0
	}
	n := int(ch - '0')
	if n == 0 {
		n = 10
	}
	if n > limit {
		return 0
	}
	return n
}

func sortedKeys[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
