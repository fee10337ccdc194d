package indexdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"starbase.reloaded/internal/sim/catalogs"
	"starbase.reloaded/internal/sim/credits"
	"starbase.reloaded/internal/sim/mines"
	"starbase.reloaded/internal/sim/transport"
	"starbase.reloaded/internal/sim/tuning"
	"starbase.reloaded/internal/sim/world"
)

func openTemp(t *testing.T) (*SQLiteIndex, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	return idx, path
}

func reopen(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("%s: %v", query, err)
	}
	return n
}

func TestSQLiteIndex_RecordRun(t *testing.T) {
	idx, path := openTemp(t)

	l := transport.New(10)
	sh, _ := l.Ship(3)
	_ = sh.Set(transport.Beam, 5, 10)
	_ = sh.Set(transport.Engine, 2, 1)

	run := Run{
		GameID:  "g1",
		Turn:    12,
		Mode:    2,
		Ledger:  l,
		Rebuilt: []int{7},
		Trims:   []transport.Trim{{Ship: 4, Owner: 1, Components: 8, ComponentMass: 40}},
		Transfers: []transport.Result{
			{Ship: 3, Planet: 1, Owner: 1, Class: transport.Beam, Slot: 5, Outcome: transport.Loaded, Count: 10},
			{Ship: 6, Planet: 1, Owner: 1, Outcome: transport.NoParts},
		},
		Mines:   []mines.Change{{Minefield: 9, Planet: 1, Owner: 1, Action: mines.ActionLay, Units: 400, Remaining: 400}},
		Credits: []credits.Transfer{{Owner: 1, From: 2, To: 1, Amount: 3000}},
	}
	id, err := idx.RecordRun(context.Background(), run)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db := reopen(t, path)
	var (
		turn, mode, carriers, transfers int
		digest                          string
	)
	row := db.QueryRow(`SELECT turn,mode,carriers,transfers,ledger_digest FROM runs WHERE id=?`, id)
	if err := row.Scan(&turn, &mode, &carriers, &transfers, &digest); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want, _ := LedgerDigest(l)
	if turn != 12 || mode != 2 || carriers != 1 || transfers != 2 || digest != want {
		t.Fatalf("run row: turn=%d mode=%d carriers=%d transfers=%d digest=%s", turn, mode, carriers, transfers, digest)
	}
	if n := count(t, db, `SELECT COUNT(*) FROM transports WHERE run_id=? AND ship=3`, id); n != 2 {
		t.Fatalf("transport rows %d", n)
	}
	if n := count(t, db, `SELECT count FROM transports WHERE run_id=? AND class='beam' AND slot=5`, id); n != 10 {
		t.Fatalf("beam 5 count %d", n)
	}
	if n := count(t, db, `SELECT COUNT(*) FROM transfers WHERE run_id=? AND class IS NULL AND outcome=?`, id, transport.NoParts.String()); n != 1 {
		t.Fatalf("unload-all row missing")
	}
	if n := count(t, db, `SELECT units FROM minefield_changes WHERE run_id=? AND minefield=9`, id); n != 400 {
		t.Fatalf("minefield units %d", n)
	}
	if n := count(t, db, `SELECT amount FROM credit_transfers WHERE run_id=?`, id); n != 3000 {
		t.Fatalf("credit amount %d", n)
	}
	if n := count(t, db, `SELECT components FROM trims WHERE run_id=? AND ship=4`, id); n != 8 {
		t.Fatalf("trim components %d", n)
	}
}

func TestLedgerDigest_ChangesWithContent(t *testing.T) {
	l := transport.New(5)
	a, err := LedgerDigest(l)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	sh, _ := l.Ship(1)
	_ = sh.Set(transport.Launcher, 1, 1)
	b, _ := LedgerDigest(l)
	if a == b || len(a) != 64 {
		t.Fatalf("digests %s %s", a, b)
	}
}

func TestSQLiteIndex_WriteAudit(t *testing.T) {
	idx, path := openTemp(t)
	for i := 1; i <= 3; i++ {
		_ = idx.WriteAudit(world.AuditEntry{Turn: 4, Stage: "transport", Action: transport.ActionLoad, Ship: i, Amount: int64(i)})
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Writes after Close are ignored.
	_ = idx.WriteAudit(world.AuditEntry{Turn: 5})

	db := reopen(t, path)
	if n := count(t, db, `SELECT COUNT(*) FROM audits WHERE turn=4 AND stage='transport'`); n != 3 {
		t.Fatalf("audit rows %d", n)
	}
	if n := count(t, db, `SELECT COUNT(*) FROM audits WHERE detail IS NULL`); n != 3 {
		t.Fatalf("empty detail stored as text")
	}
}

func TestSQLiteIndex_QueueDropStats(t *testing.T) {
	s := &SQLiteIndex{ch: make(chan req, 1)}
	s.ch <- req{audit: world.AuditEntry{Turn: 1}}

	_ = s.WriteAudit(world.AuditEntry{Turn: 2})
	_ = s.WriteAudit(world.AuditEntry{Turn: 3})

	if st := s.Stats(); st.DropAuditTotal != 2 {
		t.Fatalf("DropAuditTotal=%d want=2", st.DropAuditTotal)
	}
	var nilIndex *SQLiteIndex
	if err := nilIndex.WriteAudit(world.AuditEntry{}); err != nil {
		t.Fatalf("nil index: %v", err)
	}
}

func TestSQLiteIndex_UpsertCatalogs(t *testing.T) {
	idx, path := openTemp(t)
	ships := &catalogs.ShipList{
		Hulls:  map[int]catalogs.Hull{1: {ID: 1, Name: "Outrider", Cargo: 40}},
		Digest: "abc",
	}
	ctx := context.Background()
	if err := idx.UpsertCatalogs(ctx, ships, tuning.Defaults()); err != nil {
		t.Fatalf("UpsertCatalogs: %v", err)
	}
	cfg := tuning.Defaults()
	cfg.MaxMCTransfer = 1
	if err := idx.UpsertCatalogs(ctx, ships, cfg); err != nil {
		t.Fatalf("UpsertCatalogs again: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db := reopen(t, path)
	if n := count(t, db, `SELECT COUNT(*) FROM catalogs`); n != 2 {
		t.Fatalf("catalog rows %d", n)
	}
	var digest, version string
	if err := db.QueryRow(`SELECT digest FROM catalogs WHERE name='shiplist'`).Scan(&digest); err != nil || digest != "abc" {
		t.Fatalf("shiplist digest %q err=%v", digest, err)
	}
	if err := db.QueryRow(`SELECT value FROM meta WHERE key='schema_version'`).Scan(&version); err != nil || version != schemaVersion {
		t.Fatalf("schema_version %q err=%v", version, err)
	}
}
