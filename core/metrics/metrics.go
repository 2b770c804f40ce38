package metrics

import (
	"errors"
	"time"
)

// ScheduleEvent summarises one sequencing run.
type ScheduleEvent struct {
	RunID    string
	Strategy string
	Jobs     int
	Admitted int
	Rejected int
	Profit   int
	Duration time.Duration
	Time     time.Time
}

// MetricsSink records sequencing runs for observability purposes.
type MetricsSink interface {
	RecordSchedule(ev ScheduleEvent) error
}

// VerificationEvent records the outcome of a post-run feasibility check.
type VerificationEvent struct {
	RunID    string
	Strategy string
	Feasible bool
	Reason   string
	Time     time.Time
}

// VerificationRecorder is implemented by sinks tracking feasibility checks.
type VerificationRecorder interface {
	RecordVerification(ev VerificationEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSchedule(ScheduleEvent) error { return nil }

func (NopSink) RecordVerification(VerificationEvent) error { return nil }

// MultiSink fans out events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSchedule forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordSchedule(ev ScheduleEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSchedule(ev); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink that has a Close method and joins their errors.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if err := closeSink(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// closeSink accepts both Close() and Close() error.
func closeSink(s MetricsSink) error {
	switch c := s.(type) {
	case interface{ Close() error }:
		return c.Close()
	case interface{ Close() }:
		c.Close()
	}
	return nil
}

// CloseSink releases s if it holds resources.
func CloseSink(s MetricsSink) error { return closeSink(s) }

// RecordVerification forwards verification events to sinks supporting them.
func (m *MultiSink) RecordVerification(ev VerificationEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(VerificationRecorder); ok {
			if err := rec.RecordVerification(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
