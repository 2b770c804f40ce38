package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/jobseq/core/metrics"
	"github.com/kilianp07/jobseq/core/model"
	"github.com/kilianp07/jobseq/core/sequencing"
	"github.com/kilianp07/jobseq/core/sequencing/runlog"
	"github.com/kilianp07/jobseq/infra/logger"
)

func newRunners(t *testing.T, store runlog.Store, sink metrics.MetricsSink) map[string]Runner {
	t.Helper()
	runners := map[string]Runner{}
	for _, seq := range []sequencing.Sequencer{sequencing.BoundarySequencer{}, sequencing.SlotSearchSequencer{}} {
		mgr, err := sequencing.NewManager(seq, sink, nil, store, logger.NopLogger{})
		require.NoError(t, err)
		runners[seq.Name()] = mgr
	}
	return runners
}

func post(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewReader(data))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

var scenarioJobs = []model.Job{
	{ID: "a", Deadline: 2, Profit: 100},
	{ID: "b", Deadline: 1, Profit: 19},
	{ID: "c", Deadline: 2, Profit: 27},
	{ID: "d", Deadline: 1, Profit: 25},
	{ID: "e", Deadline: 3, Profit: 15},
}

func TestScheduleHandler(t *testing.T) {
	h := NewScheduleHandler(newRunners(t, nil, nil), sequencing.StrategyBoundary, Limits{})

	rr := post(t, h, Request{Jobs: scenarioJobs})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []model.JobID{"a", "c", "e"}, resp.Order)
	assert.Equal(t, 142, resp.Profit)
	assert.Equal(t, sequencing.StrategyBoundary, resp.Strategy)
	assert.ElementsMatch(t, []model.JobID{"b", "d"}, resp.Rejected)
	assert.NotEmpty(t, resp.RunID)

	rr = post(t, h, Request{Strategy: sequencing.StrategySlotSearch, Jobs: scenarioJobs})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []model.JobID{"c", "a", "e"}, resp.Order)
	assert.Equal(t, 142, resp.Profit)
}

func TestScheduleHandlerErrors(t *testing.T) {
	h := NewScheduleHandler(newRunners(t, nil, nil), sequencing.StrategyBoundary, Limits{MaxJobs: 2})

	req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewBufferString("{"))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, h, Request{Strategy: "brute", Jobs: scenarioJobs[:1]})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, h, Request{Jobs: []model.Job{{Deadline: 1, Profit: 1}}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(t, h, Request{Jobs: scenarioJobs})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestScheduleHandlerBodyLimit(t *testing.T) {
	h := NewScheduleHandler(newRunners(t, nil, nil), sequencing.StrategyBoundary, Limits{MaxBodyBytes: 128})

	rr := post(t, h, Request{Jobs: scenarioJobs})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Contains(t, rr.Body.String(), "body exceeds 128 bytes")

	rr = post(t, h, Request{Jobs: scenarioJobs[:1]})
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestRunsHandler(t *testing.T) {
	store, err := runlog.NewJSONLStore(filepath.Join(t.TempDir(), "runs.jsonl"))
	require.NoError(t, err)
	runners := newRunners(t, store, nil)
	sched := NewScheduleHandler(runners, sequencing.StrategyBoundary, Limits{})
	require.Equal(t, http.StatusOK, post(t, sched, Request{Jobs: scenarioJobs}).Code)
	require.Equal(t, http.StatusOK, post(t, sched, Request{Strategy: "slotsearch", Jobs: scenarioJobs}).Code)

	h := NewRunsHandler(store)
	get := func(target string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
		return rr
	}

	rr := get("/api/runs")
	require.Equal(t, http.StatusOK, rr.Code)
	var recs []runlog.Record
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recs))
	assert.Len(t, recs, 2)

	rr = get("/api/runs?strategy=slotsearch")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "slotsearch", recs[0].Strategy)

	rr = get("/api/runs?limit=1")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recs))
	assert.Len(t, recs, 1)

	rr = get("/api/runs?job_id=d")
	assert.Equal(t, "[]\n", rr.Body.String())

	assert.Equal(t, http.StatusBadRequest, get("/api/runs?start=yesterday").Code)
	assert.Equal(t, http.StatusBadRequest, get("/api/runs?limit=-1").Code)
}

func TestStatsHandler(t *testing.T) {
	stats := metrics.NewMemorySink()
	require.NoError(t, stats.RecordSchedule(metrics.ScheduleEvent{RunID: "r1", Strategy: "boundary", Jobs: 5, Admitted: 3, Rejected: 2, Profit: 142}))

	rr := httptest.NewRecorder()
	NewStatsHandler(stats).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var got []metrics.StrategyStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 142, got[0].TotalProfit)
	assert.Equal(t, 1, got[0].Runs)
}

func TestScheduleHandlerCanceled(t *testing.T) {
	h := NewScheduleHandler(newRunners(t, nil, nil), sequencing.StrategyBoundary, Limits{})
	data, _ := json.Marshal(Request{Jobs: scenarioJobs})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", bytes.NewReader(data)).WithContext(ctx)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
