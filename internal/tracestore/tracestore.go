// Package tracestore provides optional durable persistence for simulation
// traces, adapted from the teacher's SQLite storage backend
// (internal/storage/sqlite.go): the same sql.Open("sqlite", dsn) with a
// busy-timeout DSN parameter, and the same "open once, prepare statements
// once" shape, scaled down to the much smaller trace/event schema this
// domain needs (§6 "persisted state layout... if serialised").
package tracestore

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/quanticsoul4772/dialectical-sim/internal/position"
	"github.com/quanticsoul4772/dialectical-sim/internal/simulation"
)

// positionJSON is position.Position re-keyed by proposition name: a
// Position's map key is a struct, which encoding/json cannot use directly
// as an object key.
type positionJSON map[string]bool

func toPositionsJSON(ps []position.Position) []positionJSON {
	out := make([]positionJSON, len(ps))
	for i, p := range ps {
		pj := make(positionJSON, len(p))
		for k, v := range p {
			pj[k.Name] = v
		}
		out[i] = pj
	}
	return out
}

// Store persists simulation traces to a SQLite database.
type Store struct {
	db *sql.DB

	stmtInsertRun   *sql.Stmt
	stmtInsertEvent *sql.Stmt
}

// Open creates (if needed) and opens the trace database at dbPath.
func Open(dbPath string, timeoutMs int) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("tracestore: database path cannot be empty")
	}
	dsn := dbPath + fmt.Sprintf("?_busy_timeout=%d", timeoutMs)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("tracestore: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("tracestore: ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("tracestore: create schema: %w", err)
	}

	stmtInsertRun, err := db.Prepare(`INSERT INTO runs (run_id) VALUES (?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("tracestore: prepare insert run: %w", err)
	}
	stmtInsertEvent, err := db.Prepare(`
		INSERT INTO events (run_id, step, kind, density, sccp_size, positions_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("tracestore: prepare insert event: %w", err)
	}

	return &Store{db: db, stmtInsertRun: stmtInsertRun, stmtInsertEvent: stmtInsertEvent}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	step INTEGER NOT NULL,
	kind TEXT NOT NULL,
	density REAL NOT NULL,
	sccp_size INTEGER NOT NULL,
	positions_json TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`

// Save persists an entire trace in one transaction.
func (s *Store) Save(t *simulation.Trace) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("tracestore: begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Stmt(s.stmtInsertRun).Exec(t.RunID); err != nil {
		return fmt.Errorf("tracestore: insert run: %w", err)
	}
	for _, e := range t.Events {
		positionsJSON, err := json.Marshal(toPositionsJSON(e.Positions))
		if err != nil {
			return fmt.Errorf("tracestore: encode positions: %w", err)
		}
		if _, err := tx.Stmt(s.stmtInsertEvent).Exec(t.RunID, e.Step, string(e.Kind), e.Density, e.SCCPSize, string(positionsJSON)); err != nil {
			return fmt.Errorf("tracestore: insert event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tracestore: commit transaction: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
