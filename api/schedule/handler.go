package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kilianp07/jobseq/core/metrics"
	"github.com/kilianp07/jobseq/core/model"
	"github.com/kilianp07/jobseq/core/sequencing"
	"github.com/kilianp07/jobseq/core/sequencing/runlog"
)

// Runner executes one sequencing run. *sequencing.Manager implements it.
type Runner interface {
	Run(ctx context.Context, jobs []model.Job) (sequencing.Result, error)
}

// Request is the body accepted by POST /api/schedule.
type Request struct {
	Strategy string      `json:"strategy"`
	Jobs     []model.Job `json:"jobs"`
}

// Response is returned for a successful run.
type Response struct {
	RunID      string        `json:"run_id"`
	Strategy   string        `json:"strategy"`
	Order      []model.JobID `json:"order"`
	Plan       model.Plan    `json:"plan"`
	Profit     int           `json:"profit"`
	Rejected   []model.JobID `json:"rejected"`
	DurationUS int64         `json:"duration_us"`
}

// Limits bounds a scheduling request. A value <= 0 disables that check.
type Limits struct {
	MaxJobs      int
	MaxBodyBytes int64
}

// NewScheduleHandler serves POST /api/schedule. runners is keyed by strategy
// name; an empty request strategy selects def.
func NewScheduleHandler(runners map[string]Runner, def string, limits Limits) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body := r.Body
		if limits.MaxBodyBytes > 0 {
			body = http.MaxBytesReader(w, r.Body, limits.MaxBodyBytes)
		}
		var req Request
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if limits.MaxJobs > 0 && len(req.Jobs) > limits.MaxJobs {
			http.Error(w, fmt.Sprintf("too many jobs: %d > %d", len(req.Jobs), limits.MaxJobs), http.StatusRequestEntityTooLarge)
			return
		}
		strategy := req.Strategy
		if strategy == "" {
			strategy = def
		}
		run, ok := runners[strategy]
		if !ok {
			http.Error(w, fmt.Sprintf("%v: %q", sequencing.ErrUnknownStrategy, strategy), http.StatusBadRequest)
			return
		}
		res, err := run.Run(r.Context(), req.Jobs)
		switch {
		case errors.Is(err, model.ErrEmptyID):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, Response{
			RunID:      res.RunID,
			Strategy:   res.Plan.Strategy,
			Order:      res.Plan.IDs(),
			Plan:       res.Plan,
			Profit:     res.Plan.Profit(),
			Rejected:   res.Rejected,
			DurationUS: res.Duration.Microseconds(),
		})
	})
}

// NewRunsHandler serves GET /api/runs with optional strategy, job_id, start,
// end (RFC3339) and limit query parameters.
func NewRunsHandler(store runlog.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		q, err := parseQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		recs, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if recs == nil {
			recs = []runlog.Record{}
		}
		writeJSON(w, recs)
	})
}

// NewStatsHandler serves GET /api/stats from the in-memory aggregates.
func NewStatsHandler(stats *metrics.MemorySink) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, stats.Snapshot())
	})
}

func parseQuery(r *http.Request) (runlog.Query, error) {
	v := r.URL.Query()
	q := runlog.Query{Strategy: v.Get("strategy"), JobID: model.JobID(v.Get("job_id"))}
	var err error
	if s := v.Get("start"); s != "" {
		if q.Start, err = time.Parse(time.RFC3339, s); err != nil {
			return q, fmt.Errorf("invalid start: %w", err)
		}
	}
	if s := v.Get("end"); s != "" {
		if q.End, err = time.Parse(time.RFC3339, s); err != nil {
			return q, fmt.Errorf("invalid end: %w", err)
		}
	}
	if s := v.Get("limit"); s != "" {
		if q.Limit, err = strconv.Atoi(s); err != nil || q.Limit < 0 {
			return q, fmt.Errorf("invalid limit %q", s)
		}
	}
	return q, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
