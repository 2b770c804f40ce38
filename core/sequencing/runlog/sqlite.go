package runlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kilianp07/jobseq/core/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	ts          INTEGER NOT NULL,
	strategy    TEXT NOT NULL,
	profit      INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL,
	jobs        TEXT NOT NULL,
	scheduled   TEXT NOT NULL,
	rejected    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_strategy_ts ON runs (strategy, ts);
`

// SQLiteStore keeps records in a SQLite database. Job lists are stored as
// JSON columns.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens dsn (a file path or ":memory:") and creates the schema.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		return nil, errors.New("runlog: dsn is required")
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("runlog: schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append inserts the record. Appending an existing run id fails.
func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	jobs, err := json.Marshal(rec.Jobs)
	if err != nil {
		return err
	}
	scheduled, err := json.Marshal(rec.Scheduled)
	if err != nil {
		return err
	}
	rejected, err := json.Marshal(rec.Rejected)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, ts, strategy, profit, duration_ns, jobs, scheduled, rejected)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Timestamp.UnixNano(), rec.Strategy, rec.Profit, int64(rec.Duration),
		string(jobs), string(scheduled), string(rejected),
	)
	return err
}

// Query returns the matching records ordered by timestamp. Strategy and time
// filters run in SQL; the job filter and Limit are applied afterwards.
func (s *SQLiteStore) Query(ctx context.Context, q Query) ([]Record, error) {
	query := `SELECT run_id, ts, strategy, profit, duration_ns, jobs, scheduled, rejected FROM runs WHERE 1=1`
	var args []any
	if q.Strategy != "" {
		query += ` AND strategy = ?`
		args = append(args, q.Strategy)
	}
	if !q.Start.IsZero() {
		query += ` AND ts >= ?`
		args = append(args, q.Start.UnixNano())
	}
	if !q.End.IsZero() {
		query += ` AND ts <= ?`
		args = append(args, q.End.UnixNano())
	}
	query += ` ORDER BY ts, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []Record
	for rows.Next() {
		var (
			r                         Record
			ts, dur                   int64
			jobs, scheduled, rejected string
		)
		if err := rows.Scan(&r.RunID, &ts, &r.Strategy, &r.Profit, &dur, &jobs, &scheduled, &rejected); err != nil {
			return nil, err
		}
		r.Timestamp = time.Unix(0, ts).UTC()
		r.Duration = time.Duration(dur)
		if err := unmarshalColumns(&r, jobs, scheduled, rejected); err != nil {
			return nil, fmt.Errorf("runlog: run %s: %w", r.RunID, err)
		}
		if !q.Match(r) {
			continue
		}
		res = append(res, r)
		if q.Limit > 0 && len(res) >= q.Limit {
			break
		}
	}
	return res, rows.Err()
}

func unmarshalColumns(r *Record, jobs, scheduled, rejected string) error {
	if err := json.Unmarshal([]byte(jobs), &r.Jobs); err != nil {
		return err
	}
	var ids [2][]model.JobID
	for i, col := range []string{scheduled, rejected} {
		if err := json.Unmarshal([]byte(col), &ids[i]); err != nil {
			return err
		}
	}
	r.Scheduled, r.Rejected = ids[0], ids[1]
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Open returns the store for backend: "jsonl" (default) or "sqlite".
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", "jsonl":
		return NewJSONLStore(path)
	case "sqlite":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("runlog: unknown backend %q", backend)
	}
}
