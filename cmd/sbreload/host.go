package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"starbase.reloaded/internal/persistence/archive"
	"starbase.reloaded/internal/persistence/indexdb"
	persistlog "starbase.reloaded/internal/persistence/log"
	"starbase.reloaded/internal/persistence/snapshot"
	"starbase.reloaded/internal/persistence/utildata"
	"starbase.reloaded/internal/sim/catalogs"
	"starbase.reloaded/internal/sim/credits"
	"starbase.reloaded/internal/sim/mines"
	"starbase.reloaded/internal/sim/notify"
	"starbase.reloaded/internal/sim/sendconf"
	"starbase.reloaded/internal/sim/transport"
	"starbase.reloaded/internal/sim/tuning"
	"starbase.reloaded/internal/sim/world"
)

type auditSink interface {
	WriteAudit(world.AuditEntry) error
}

// auditFanout stamps entries with the turn and stage and hands them to every
// sink.
type auditFanout struct {
	turn  int
	stage string
	sinks []auditSink
}

func (a *auditFanout) WriteAudit(e world.AuditEntry) error {
	e.Turn = a.turn
	e.Stage = a.stage
	for _, s := range a.sinks {
		if err := s.WriteAudit(e); err != nil {
			return err
		}
	}
	return nil
}

// host holds everything one run works on.
type host struct {
	s      settings
	logger *log.Logger

	cfg    tuning.Config
	ships  *catalogs.ShipList
	u      *world.Universe
	notify *notify.Notifier
	sink   *utildata.Sink

	index  *indexdb.SQLiteIndex
	audits []*persistlog.AuditLogger
}

func (h *host) snapshotPath() string { return filepath.Join(h.s.GameDir, snapshot.FileName) }
func (h *host) ledgerPath() string { return filepath.Join(h.s.GameDir, transport.FileName) }

// openHost loads the ship list and the universe. Both are mandatory.
func openHost(s settings, logger *log.Logger) (*host, error) {
	logger.Printf("Loading...")
	ships, err := catalogs.Load(s.shipListDir())
	if err != nil {
		return nil, fmt.Errorf("unable to read ship list: %w", err)
	}
	snap, err := snapshot.ReadSnapshot(filepath.Join(s.GameDir, snapshot.FileName))
	if err != nil {
		return nil, fmt.Errorf("unable to read universe: %w", err)
	}
	u, err := world.ImportSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("unable to read universe: %w", err)
	}

	h := &host{
		s:      s,
		logger: logger,
		cfg:    tuning.Resolve(s.GameDir, logger),
		ships:  ships,
		u:      u,
		notify: notify.New(u, logger),
		sink:   utildata.NewSink(),
	}
	if s.IndexDB != "" {
		idx, err := indexdb.OpenSQLite(s.IndexDB)
		if err != nil {
			logger.Printf("WARNING: run index disabled: %v", err)
		} else {
			h.index = idx
			if err := idx.UpsertCatalogs(context.Background(), ships, h.cfg); err != nil {
				logger.Printf("WARNING: run index: %v", err)
			}
		}
	}
	return h, nil
}

func (h *host) auditor(stage string) *auditFanout {
	a := &auditFanout{turn: h.u.Turn, stage: stage}
	if h.s.Audit {
		l := persistlog.NewAuditLogger(h.s.GameDir, stage, h.u.Turn)
		h.audits = append(h.audits, l)
		a.sinks = append(a.sinks, l)
	}
	if h.index != nil {
		a.sinks = append(a.sinks, h.index)
	}
	return a
}

func (h *host) beforeMovement() indexdb.Run {
	h.logger.Printf("%s - Before Movement...", banner)

	m := mines.New(h.cfg, h.u, h.ships, h.notify, h.sink, h.logger)
	m.SetAuditor(h.auditor("mines"))
	changes := m.Sweep()
	changes = append(changes, m.Lay()...)

	l := transport.LoadFile(h.ledgerPath(), 0, h.logger)
	st := transport.NewStage(h.cfg, h.u, h.ships, h.notify, h.sink, h.logger)
	st.SetAuditor(h.auditor("transport"))
	trims := st.TrimOnly(l)
	_ = l.SaveFile(h.ledgerPath(), h.logger)

	return indexdb.Run{Mode: 1, Ledger: l, Trims: trims, Mines: changes}
}

func (h *host) afterMovement() indexdb.Run {
	h.logger.Printf("%s - After Movement...", banner)

	l := transport.LoadFile(h.ledgerPath(), 0, h.logger)
	st := transport.NewStage(h.cfg, h.u, h.ships, h.notify, h.sink, h.logger)
	st.SetAuditor(h.auditor("transport"))
	sum := st.Transport(l, transport.ReadRebuilds(h.s.GameDir, h.logger))
	_ = l.SaveFile(h.ledgerPath(), h.logger)

	bank := credits.New(h.cfg, h.u, h.notify, h.logger)
	bank.SetAuditor(h.auditor("credits"))
	transfers := bank.Run()

	sendconf.Run(h.cfg, h.u, h.notify, h.logger)

	return indexdb.Run{
		Mode:      2,
		Ledger:    l,
		Rebuilt:   sum.Rebuilt,
		Trims:     sum.Trims,
		Transfers: sum.Transfers,
		Credits:   transfers,
	}
}

// finish writes every output of the run. Only a failure to save the
// universe is fatal.
func (h *host) finish(run indexdb.Run) error {
	h.logger.Printf("Saving...")

	if removed := h.u.RemoveInertMinefields(); len(removed) > 0 {
		h.logger.Printf("\t(-) removed %d empty minefields", len(removed))
	}

	msgs := h.u.Outbox()
	envs := make([]notify.Envelope, 0, len(msgs))
	for _, m := range msgs {
		envs = append(envs, notify.Envelope{To: m.To, Body: m.Body})
	}
	if err := notify.WriteOutbox(h.s.GameDir, envs); err != nil {
		h.logger.Printf("WARNING: outbox: %v", err)
	} else {
		h.u.ClearOutbox()
	}
	if err := h.sink.Flush(h.s.GameDir); err != nil {
		h.logger.Printf("WARNING: utility data: %v", err)
	}

	if err := snapshot.WriteSnapshot(h.snapshotPath(), h.u.ExportSnapshot()); err != nil {
		return fmt.Errorf("unable to write universe: %w", err)
	}

	if h.index != nil {
		run.GameID = h.u.GameID
		run.Turn = h.u.Turn
		if _, err := h.index.RecordRun(context.Background(), run); err != nil {
			h.logger.Printf("WARNING: run index: %v", err)
		}
	}

	dir, ok, err := archive.ArchiveTurn(h.s.GameDir, h.u.GameID, h.u.Turn, h.s.ArchiveEvery, h.ledgerPath(), h.snapshotPath())
	switch {
	case err != nil:
		h.logger.Printf("WARNING: archive: %v", err)
	case ok:
		h.logger.Printf("\t(+) archived turn %d to %s", h.u.Turn, dir)
	}
	return nil
}

func (h *host) close() {
	for _, a := range h.audits {
		if err := a.Close(); err != nil {
			h.logger.Printf("WARNING: audit: %v", err)
		}
	}
	if h.index != nil {
		if err := h.index.Close(); err != nil {
			h.logger.Printf("WARNING: run index: %v", err)
		}
	}
}

func runHost(s settings, logger *log.Logger) error {
	h, err := openHost(s, logger)
	if err != nil {
		return err
	}
	defer h.close()

	var run indexdb.Run
	switch s.Mode {
	case modeBeforeMovement:
		run = h.beforeMovement()
	case modeAfterMovement:
		run = h.afterMovement()
	default:
		return fmt.Errorf("mode %d does not touch the universe", s.Mode)
	}
	return h.finish(run)
}
