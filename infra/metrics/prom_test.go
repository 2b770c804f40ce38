package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/jobseq/core/metrics"
)

func TestPromSink_RecordSchedule(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	ev := coremetrics.ScheduleEvent{
		RunID:    "r1",
		Strategy: "boundary",
		Jobs:     5,
		Admitted: 3,
		Rejected: 2,
		Profit:   142,
		Duration: 20 * time.Microsecond,
		Time:     time.Now(),
	}
	if err := sink.RecordSchedule(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP jobseq_jobs_total Jobs seen by sequencing runs, split by outcome
# TYPE jobseq_jobs_total counter
jobseq_jobs_total{outcome="admitted",strategy="boundary"} 3
jobseq_jobs_total{outcome="rejected",strategy="boundary"} 2
`
	if err := testutil.CollectAndCompare(sink.jobs, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if v := testutil.ToFloat64(sink.runs.WithLabelValues("boundary")); v != 1 {
		t.Errorf("expected 1 run got %v", v)
	}
	if v := testutil.ToFloat64(sink.profit.WithLabelValues("boundary")); v != 142 {
		t.Errorf("expected profit gauge 142 got %v", v)
	}
	if c := testutil.CollectAndCount(sink.latency); c == 0 {
		t.Errorf("latency not recorded")
	}

	if err := sink.RecordVerification(coremetrics.VerificationEvent{Strategy: "boundary", Feasible: true}); err != nil {
		t.Fatalf("verification error: %v", err)
	}
	if v := testutil.ToFloat64(sink.verifyRes.WithLabelValues("boundary", "true")); v != 1 {
		t.Errorf("expected 1 verification got %v", v)
	}
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	_ = first.RecordSchedule(coremetrics.ScheduleEvent{Strategy: "lp"})
	_ = second.RecordSchedule(coremetrics.ScheduleEvent{Strategy: "lp"})
	if v := testutil.ToFloat64(first.runs.WithLabelValues("lp")); v != 2 {
		t.Fatalf("expected shared counter at 2 got %v", v)
	}
}
