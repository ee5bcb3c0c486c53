package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder appends audit events to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS queries (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT,
			range_from TEXT,
			range_to   TEXT,
			bars_got   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_queries_ts ON queries(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alert_evaluations (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT,
			latest_close REAL,
			target_price REAL,
			decision     TEXT,
			delivered    INTEGER,
			error        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evals_ts ON alert_evaluations(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordQuery(evt *QueryEvent) error {
	_, err := r.db.Exec(`INSERT INTO queries
		(timestamp, symbol, range_from, range_to, bars_got)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol,
		evt.Start.Format("2006-01-02"), evt.End.Format("2006-01-02"),
		evt.BarsGot,
	)
	return err
}

func (r *SQLiteRecorder) RecordEvaluation(evt *EvaluationEvent) error {
	_, err := r.db.Exec(`INSERT INTO alert_evaluations
		(timestamp, symbol, latest_close, target_price, decision, delivered, error)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, evt.LatestClose, evt.TargetPrice,
		evt.Decision, evt.Delivered, evt.Error,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
