package indexdb

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"lukechampine.com/blake3"
	_ "modernc.org/sqlite"

	"starbase.reloaded/internal/sim/catalogs"
	"starbase.reloaded/internal/sim/credits"
	"starbase.reloaded/internal/sim/mines"
	"starbase.reloaded/internal/sim/transport"
	"starbase.reloaded/internal/sim/tuning"
	"starbase.reloaded/internal/sim/world"
)

const schemaVersion = "1"

// SQLiteIndex is a queryable copy of what each run did. Run records are
// written synchronously; audit entries go through a buffered writer and are
// dropped when it falls behind.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool

	dropAudit atomic.Uint64
}

type req struct {
	audit world.AuditEntry
}

// Stats reports entries the audit writer had to drop.
type Stats struct {
	DropAuditTotal uint64
}

func (s *SQLiteIndex) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{DropAuditTotal: s.dropAudit.Load()}
}

// Run is everything one invocation of a stage changed.
type Run struct {
	GameID    string
	Turn      int
	Mode      int
	Ledger    *transport.Ledger
	Rebuilt   []int
	Trims     []transport.Trim
	Transfers []transport.Result
	Mines     []mines.Change
	Credits   []credits.Transfer
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 16384),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS catalogs (
			name TEXT PRIMARY KEY,
			digest TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			turn INTEGER NOT NULL,
			mode INTEGER NOT NULL,
			carriers INTEGER NOT NULL,
			rebuilt INTEGER NOT NULL,
			trims INTEGER NOT NULL,
			transfers INTEGER NOT NULL,
			mine_changes INTEGER NOT NULL,
			credit_transfers INTEGER NOT NULL,
			ledger_digest TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_turn ON runs(game_id, turn, mode);`,
		`CREATE TABLE IF NOT EXISTS transports (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			ship INTEGER NOT NULL,
			class TEXT NOT NULL,
			slot INTEGER NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, ship, class, slot)
		);`,
		`CREATE TABLE IF NOT EXISTS transfers (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			ship INTEGER NOT NULL,
			planet INTEGER NOT NULL,
			owner INTEGER NOT NULL,
			class TEXT,
			slot INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS trims (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			ship INTEGER NOT NULL,
			owner INTEGER NOT NULL,
			components INTEGER NOT NULL,
			component_mass INTEGER NOT NULL,
			cargo_mass INTEGER NOT NULL,
			PRIMARY KEY (run_id, ship)
		);`,
		`CREATE TABLE IF NOT EXISTS minefield_changes (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			minefield INTEGER NOT NULL,
			planet INTEGER NOT NULL,
			owner INTEGER NOT NULL,
			action TEXT NOT NULL,
			units INTEGER NOT NULL,
			remaining INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_minefield_changes_field ON minefield_changes(minefield, run_id);`,
		`CREATE TABLE IF NOT EXISTS credit_transfers (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			owner INTEGER NOT NULL,
			from_planet INTEGER NOT NULL,
			to_planet INTEGER NOT NULL,
			amount INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS audits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			turn INTEGER NOT NULL,
			stage TEXT NOT NULL,
			action TEXT NOT NULL,
			player INTEGER NOT NULL,
			planet INTEGER NOT NULL,
			ship INTEGER NOT NULL,
			minefield INTEGER NOT NULL,
			amount INTEGER NOT NULL,
			detail TEXT,
			raw_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_audits_turn_stage ON audits(turn, stage);`,
		`CREATE INDEX IF NOT EXISTS idx_audits_ship ON audits(ship, turn);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// WriteAudit queues the entry. It never blocks.
func (s *SQLiteIndex) WriteAudit(entry world.AuditEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{audit: entry}:
	default:
		// The JSONL audit log remains the source of truth.
		s.dropAudit.Add(1)
	}
	return nil
}

// LedgerDigest is the hex blake3 hash of the ledger's file encoding.
func LedgerDigest(l *transport.Ledger) (string, error) {
	var buf bytes.Buffer
	if err := l.Encode(&buf); err != nil {
		return "", err
	}
	sum := blake3.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:]), nil
}

// RecordRun stores a run row with its details and returns the row id.
func (s *SQLiteIndex) RecordRun(ctx context.Context, r Run) (int64, error) {
	if s == nil {
		return 0, nil
	}
	if r.Ledger == nil {
		r.Ledger = transport.New(0)
	}
	digest, err := LedgerDigest(r.Ledger)
	if err != nil {
		return 0, err
	}
	carriers := r.Ledger.Carriers()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs(game_id,turn,mode,carriers,rebuilt,trims,transfers,mine_changes,credit_transfers,ledger_digest,recorded_at) VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		r.GameID, r.Turn, r.Mode,
		len(carriers), len(r.Rebuilt), len(r.Trims), len(r.Transfers), len(r.Mines), len(r.Credits),
		digest, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := insertTransports(ctx, tx, id, r.Ledger, carriers); err != nil {
		return 0, err
	}
	if err := insertRows(ctx, tx, `INSERT INTO transfers(run_id,seq,ship,planet,owner,class,slot,outcome,count) VALUES(?,?,?,?,?,?,?,?,?)`,
		len(r.Transfers), func(i int) []any {
			t := r.Transfers[i]
			var class any
			if t.Class != 0 {
				class = t.Class.String()
			}
			return []any{id, i, t.Ship, t.Planet, t.Owner, class, t.Slot, t.Outcome.String(), t.Count}
		}); err != nil {
		return 0, err
	}
	if err := insertRows(ctx, tx, `INSERT INTO trims(run_id,ship,owner,components,component_mass,cargo_mass) VALUES(?,?,?,?,?,?)`,
		len(r.Trims), func(i int) []any {
			t := r.Trims[i]
			return []any{id, t.Ship, t.Owner, t.Components, t.ComponentMass, t.CargoMass}
		}); err != nil {
		return 0, err
	}
	if err := insertRows(ctx, tx, `INSERT INTO minefield_changes(run_id,seq,minefield,planet,owner,action,units,remaining) VALUES(?,?,?,?,?,?,?,?)`,
		len(r.Mines), func(i int) []any {
			c := r.Mines[i]
			return []any{id, i, c.Minefield, c.Planet, c.Owner, c.Action, int64(c.Units), int64(c.Remaining)}
		}); err != nil {
		return 0, err
	}
	if err := insertRows(ctx, tx, `INSERT INTO credit_transfers(run_id,seq,owner,from_planet,to_planet,amount) VALUES(?,?,?,?,?,?)`,
		len(r.Credits), func(i int) []any {
			c := r.Credits[i]
			return []any{id, i, c.Owner, c.From, c.To, c.Amount}
		}); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func insertTransports(ctx context.Context, tx *sql.Tx, runID int64, l *transport.Ledger, carriers []int) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO transports(run_id,ship,class,slot,count) VALUES(?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, id := range carriers {
		sh, err := l.Ship(id)
		if err != nil {
			return err
		}
		for _, c := range transport.Classes {
			for slot := 1; slot <= c.Slots(); slot++ {
				n, _ := sh.Count(c, slot)
				if n == 0 {
					continue
				}
				if _, err := stmt.ExecContext(ctx, runID, id, c.String(), slot, n); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, query string, n int, args func(i int) []any) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return err
		}
	}
	return nil
}

// UpsertCatalogs stores the ship list and the applied configuration.
func (s *SQLiteIndex) UpsertCatalogs(ctx context.Context, ships *catalogs.ShipList, cfg tuning.Config) error {
	if s == nil {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	type kv struct {
		name   string
		digest string
		json   []byte
	}
	var rows []kv
	if ships != nil {
		if b, err := json.Marshal(ships); err == nil {
			rows = append(rows, kv{name: "shiplist", digest: ships.Digest, json: b})
		}
	}
	// Store the values actually applied, not the files they came from.
	if b, err := json.Marshal(cfg); err == nil {
		sum := blake3.Sum256(b)
		rows = append(rows, kv{name: "tuning", digest: hex.EncodeToString(sum[:]), json: b})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version',?)`, schemaVersion); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO catalogs(name,digest,json,updated_at) VALUES(?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if r.name == "" || r.digest == "" || len(r.json) == 0 {
			continue
		}
		if _, err := stmt.ExecContext(ctx, r.name, r.digest, string(r.json), now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()
	insertAudit, _ := s.db.Prepare(`INSERT INTO audits(turn,stage,action,player,planet,ship,minefield,amount,detail,raw_json) VALUES(?,?,?,?,?,?,?,?,?,?)`)
	defer func() {
		if insertAudit != nil {
			_ = insertAudit.Close()
		}
	}()

	var (
		tx          *sql.Tx
		opCount     int
		commitEvery = 2000
	)
	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
	}

	for r := range s.ch {
		begin()
		if tx == nil || insertAudit == nil {
			continue
		}
		a := r.audit
		b, _ := json.Marshal(a)
		var detail any
		if a.Detail != "" {
			detail = a.Detail
		}
		if _, err := tx.Stmt(insertAudit).Exec(a.Turn, a.Stage, a.Action, a.Player, a.Planet, a.Ship, a.Minefield, a.Amount, detail, string(b)); err != nil {
			_ = tx.Rollback()
			tx = nil
			continue
		}
		opCount++
		if opCount >= commitEvery || len(s.ch) == 0 {
			commit()
		}
	}
	commit()
}
