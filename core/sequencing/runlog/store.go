// Package runlog persists the outcome of sequencing runs so they can be
// inspected later.
package runlog

import (
	"context"
	"time"

	"github.com/kilianp07/jobseq/core/model"
)

// Record captures one sequencing run.
type Record struct {
	RunID     string        `json:"run_id"`
	Timestamp time.Time     `json:"timestamp"`
	Strategy  string        `json:"strategy"`
	Jobs      []model.Job   `json:"jobs"`
	Scheduled []model.JobID `json:"scheduled"`
	Rejected  []model.JobID `json:"rejected"`
	Profit    int           `json:"profit"`
	Duration  time.Duration `json:"duration_ns"`
}

// Query defines filters for retrieving records. Zero values match everything.
type Query struct {
	Start    time.Time
	End      time.Time
	Strategy string
	JobID    model.JobID
	Limit    int
}

// Match reports whether r satisfies the query filters, Limit aside.
func (q Query) Match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Strategy != "" && r.Strategy != q.Strategy {
		return false
	}
	if q.JobID != "" {
		for _, id := range r.Scheduled {
			if id == q.JobID {
				return true
			}
		}
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// NopStore discards every record.
type NopStore struct{}

// Append implements Store.
func (NopStore) Append(context.Context, Record) error { return nil }

// Query implements Store.
func (NopStore) Query(context.Context, Query) ([]Record, error) { return nil, nil }

// Close implements Store.
func (NopStore) Close() error { return nil }
