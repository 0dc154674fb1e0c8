package recorder

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.SugaredLogger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.SugaredLogger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create database dir")
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	// WAL lets readers query history while the server writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "set WAL mode")
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id               TEXT PRIMARY KEY,
			timestamp        INTEGER NOT NULL,
			source           TEXT,
			days             INTEGER,
			companies        INTEGER,
			selected         INTEGER,
			ratios           TEXT,
			weighted_avg_roi REAL,
			error            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_ts ON analysis_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS projection_requests (
			id                 TEXT PRIMARY KEY,
			timestamp          INTEGER NOT NULL,
			request_id         TEXT,
			monthly_investment REAL,
			weighted_roi       REAL,
			future_values      TEXT,
			error              TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projection_ts ON projection_requests(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return errors.Wrapf(err, "exec %q", s[:40])
		}
	}
	return nil
}

func stamp(id *string, at *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if at.IsZero() {
		*at = time.Now()
	}
}

func (r *SQLiteRecorder) RecordAnalysis(run *AnalysisRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&run.ID, &run.At)
	ratios, err := json.Marshal(run.Ratios)
	if err != nil {
		return errors.Wrap(err, "encode ratios")
	}
	_, err = r.db.Exec(`INSERT INTO analysis_runs
		(id, timestamp, source, days, companies, selected, ratios, weighted_avg_roi, error)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		run.ID, run.At.Unix(), run.Source, run.Days, run.Companies,
		len(run.Ratios), string(ratios), run.WeightedAvgROI, run.Error,
	)
	return errors.Wrap(err, "insert analysis run")
}

func (r *SQLiteRecorder) RecordProjection(req *ProjectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp(&req.ID, &req.At)
	points, err := json.Marshal(req.Points)
	if err != nil {
		return errors.Wrap(err, "encode future values")
	}
	_, err = r.db.Exec(`INSERT INTO projection_requests
		(id, timestamp, request_id, monthly_investment, weighted_roi, future_values, error)
		VALUES (?,?,?,?,?,?,?)`,
		req.ID, req.At.Unix(), req.RequestID, req.MonthlyInvestment,
		req.WeightedROI, string(points), req.Error,
	)
	return errors.Wrap(err, "insert projection request")
}

// RecentProjections returns up to limit projection requests, newest first.
func (r *SQLiteRecorder) RecentProjections(limit int) ([]ProjectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, request_id, monthly_investment, weighted_roi, future_values, error
		FROM projection_requests ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query projection requests")
	}
	defer rows.Close()

	var out []ProjectionRequest
	for rows.Next() {
		var (
			p      ProjectionRequest
			ts     int64
			points string
		)
		if err := rows.Scan(&p.ID, &ts, &p.RequestID, &p.MonthlyInvestment, &p.WeightedROI, &points, &p.Error); err != nil {
			return nil, errors.Wrap(err, "scan projection request")
		}
		p.At = time.Unix(ts, 0)
		if err := json.Unmarshal([]byte(points), &p.Points); err != nil {
			return nil, errors.Wrapf(err, "decode future values of %s", p.ID)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountAnalysisRuns returns the number of recorded runs, failed ones included.
func (r *SQLiteRecorder) CountAnalysisRuns() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM analysis_runs`).Scan(&n)
	return n, errors.Wrap(err, "count analysis runs")
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
