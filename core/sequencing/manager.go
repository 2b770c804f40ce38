package sequencing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/jobseq/core/logger"
	"github.com/kilianp07/jobseq/core/metrics"
	"github.com/kilianp07/jobseq/core/model"
	"github.com/kilianp07/jobseq/core/sequencing/runlog"
	"github.com/kilianp07/jobseq/internal/eventbus"
)

// Result is the outcome of a Manager run.
type Result struct {
	RunID    string        `json:"run_id"`
	Plan     model.Plan    `json:"plan"`
	Rejected []model.JobID `json:"rejected"`
	Duration time.Duration `json:"duration_ns"`
}

// Manager runs a Sequencer and reports every run to the configured sinks.
// It is safe for concurrent use when the Sequencer is stateless.
type Manager struct {
	seq    Sequencer
	sink   metrics.MetricsSink
	bus    *eventbus.TypedBus[metrics.ScheduleEvent]
	store  runlog.Store
	log    logger.Logger
	verify bool
	now    func() time.Time
}

// NewManager wires a Sequencer with its observers. sink, bus and store may be
// nil; log is required.
func NewManager(
	seq Sequencer,
	sink metrics.MetricsSink,
	bus *eventbus.TypedBus[metrics.ScheduleEvent],
	store runlog.Store,
	log logger.Logger,
) (*Manager, error) {
	if seq == nil {
		return nil, errors.New("sequencing: sequencer is required")
	}
	if log == nil {
		return nil, errors.New("sequencing: logger is required")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if store == nil {
		store = runlog.NopStore{}
	}
	return &Manager{seq: seq, sink: sink, bus: bus, store: store, log: log, verify: true, now: time.Now}, nil
}

// SetVerify toggles the feasibility check performed after each run.
func (m *Manager) SetVerify(v bool) { m.verify = v }

// Strategy returns the name of the wrapped sequencer.
func (m *Manager) Strategy() string { return m.seq.Name() }

// Run validates jobs, sequences them and records the run. Observer failures
// are logged and do not fail the run.
func (m *Manager) Run(ctx context.Context, jobs []model.Job) (Result, error) {
	for i, j := range jobs {
		if err := j.Validate(); err != nil {
			return Result{}, fmt.Errorf("job %d: %w", i, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	runID := uuid.NewString()
	start := m.now()
	plan := m.seq.Sequence(jobs)
	elapsed := m.now().Sub(start)

	if m.verify {
		verr := Verify(plan)
		m.recordVerification(runID, plan.Strategy, verr)
		if verr != nil {
			m.log.Errorf("run %s: %v", runID, verr)
			return Result{}, verr
		}
	}

	res := Result{RunID: runID, Plan: plan, Rejected: rejected(jobs, plan), Duration: elapsed}
	m.report(ctx, jobs, res, start)
	return res, nil
}

func (m *Manager) report(ctx context.Context, jobs []model.Job, res Result, at time.Time) {
	ev := metrics.ScheduleEvent{
		RunID:    res.RunID,
		Strategy: res.Plan.Strategy,
		Jobs:     len(jobs),
		Admitted: res.Plan.Len(),
		Rejected: len(res.Rejected),
		Profit:   res.Plan.Profit(),
		Duration: res.Duration,
		Time:     at,
	}
	fields := map[string]any{
		"run_id":   ev.RunID,
		"strategy": ev.Strategy,
		"jobs":     ev.Jobs,
		"admitted": ev.Admitted,
		"profit":   ev.Profit,
	}
	if sl, ok := m.log.(logger.StructuredLogger); ok {
		sl.Infow("schedule computed", fields)
	} else {
		m.log.Debugw("schedule computed", fields)
	}

	if err := m.sink.RecordSchedule(ev); err != nil {
		m.log.Warnf("run %s: record metrics: %v", res.RunID, err)
	}
	if m.bus != nil {
		m.bus.Publish(ev)
	}
	rec := runlog.Record{
		RunID:     res.RunID,
		Timestamp: at,
		Strategy:  res.Plan.Strategy,
		Jobs:      jobs,
		Scheduled: res.Plan.IDs(),
		Rejected:  res.Rejected,
		Profit:    ev.Profit,
		Duration:  res.Duration,
	}
	if err := m.store.Append(ctx, rec); err != nil {
		m.log.Warnf("run %s: append run log: %v", res.RunID, err)
	}
}

func (m *Manager) recordVerification(runID, strategy string, verr error) {
	rec, ok := m.sink.(metrics.VerificationRecorder)
	if !ok {
		return
	}
	ev := metrics.VerificationEvent{RunID: runID, Strategy: strategy, Feasible: verr == nil, Time: m.now()}
	if verr != nil {
		ev.Reason = verr.Error()
	}
	if err := rec.RecordVerification(ev); err != nil {
		m.log.Warnf("run %s: record verification: %v", runID, err)
	}
}

// rejected lists the input jobs that did not make it into the plan. Jobs
// sharing an id are counted individually.
func rejected(jobs []model.Job, plan model.Plan) []model.JobID {
	admitted := make(map[model.JobID]int, plan.Len())
	for _, a := range plan.Assignments {
		admitted[a.Job.ID]++
	}
	out := make([]model.JobID, 0, max(0, len(jobs)-plan.Len()))
	for _, j := range jobs {
		if admitted[j.ID] > 0 {
			admitted[j.ID]--
			continue
		}
		out = append(out, j.ID)
	}
	return out
}
