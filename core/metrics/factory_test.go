package metrics_test

import (
	"testing"

	"github.com/kilianp07/jobseq/core/factory"
	metrics "github.com/kilianp07/jobseq/core/metrics"
	_ "github.com/kilianp07/jobseq/infra/metrics"
)

/*
TestMetricsFactory_Builtins verifies registration via infra/metrics/factory.go.

	Cases:
	- instantiate builtin nop sink
	- unknown type returns error
*/
func TestMetricsFactory_Builtins(t *testing.T) {
	s, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}})
	if err != nil {
		t.Fatalf("create nop: %v", err)
	}
	if s == nil {
		t.Fatal("expected sink instance")
	}
	if _, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "missing"}}); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

/*
TestNewMetricsSink_Multi validates NewMetricsSink behavior with zero, one, and multiple configs.
Cases:
  - no config -> NopSink
  - two configs -> MultiSink with two sub-sinks
*/
func TestNewMetricsSink_Multi(t *testing.T) {
	s, err := metrics.NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("create nop default: %v", err)
	}
	if _, ok := s.(metrics.NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}

	cfgs := []factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}}
	s, err = metrics.NewMetricsSink(cfgs)
	if err != nil {
		t.Fatalf("create multi: %v", err)
	}
	m, ok := s.(*metrics.MultiSink)
	if !ok {
		t.Fatalf("expected MultiSink, got %T", s)
	}
	if len(m.Sinks) != 2 {
		t.Fatalf("expected 2 sinks, got %d", len(m.Sinks))
	}
}

type countingSink struct {
	schedules     int
	verifications int
}

func (c *countingSink) RecordSchedule(metrics.ScheduleEvent) error {
	c.schedules++
	return nil
}

func (c *countingSink) RecordVerification(metrics.VerificationEvent) error {
	c.verifications++
	return nil
}

type scheduleOnly struct{ n int }

func (s *scheduleOnly) RecordSchedule(metrics.ScheduleEvent) error {
	s.n++
	return nil
}

func TestMultiSink_Forwarding(t *testing.T) {
	c := &countingSink{}
	o := &scheduleOnly{}
	m := metrics.NewMultiSink(c, o)
	if err := m.RecordSchedule(metrics.ScheduleEvent{RunID: "r"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := m.RecordVerification(metrics.VerificationEvent{RunID: "r", Feasible: true}); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if c.schedules != 1 || o.n != 1 {
		t.Fatalf("schedule events not forwarded")
	}
	if c.verifications != 1 {
		t.Fatalf("verification not forwarded")
	}
}
