package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/kilianp07/jobseq/core/metrics"
)

// PromSink records sequencing runs in Prometheus metrics.
type PromSink struct {
	runs      *prometheus.CounterVec
	jobs      *prometheus.CounterVec
	profit    *prometheus.GaugeVec
	latency   *prometheus.HistogramVec
	verifyRes *prometheus.CounterVec
}

// NewPromSink registers sequencing metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobseq_runs_total",
		Help: "Total number of sequencing runs",
	}, []string{"strategy"})
	jobs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobseq_jobs_total",
		Help: "Jobs seen by sequencing runs, split by outcome",
	}, []string{"strategy", "outcome"})
	profit := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "jobseq_last_profit",
		Help: "Total profit of the last plan per strategy",
	}, []string{"strategy"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobseq_run_duration_seconds",
		Help:    "Time spent computing a plan",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
	}, []string{"strategy"})
	verifyRes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jobseq_verifications_total",
		Help: "Feasibility checks of computed plans",
	}, []string{"strategy", "feasible"})

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if jobs, err = register(reg, jobs); err != nil {
		return nil, err
	}
	if profit, err = register(reg, profit); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	if verifyRes, err = register(reg, verifyRes); err != nil {
		return nil, err
	}
	return &PromSink{runs: runs, jobs: jobs, profit: profit, latency: latency, verifyRes: verifyRes}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordSchedule updates counters, the profit gauge and the latency histogram.
func (s *PromSink) RecordSchedule(ev coremetrics.ScheduleEvent) error {
	s.runs.WithLabelValues(ev.Strategy).Inc()
	s.jobs.WithLabelValues(ev.Strategy, "admitted").Add(float64(ev.Admitted))
	s.jobs.WithLabelValues(ev.Strategy, "rejected").Add(float64(ev.Rejected))
	s.profit.WithLabelValues(ev.Strategy).Set(float64(ev.Profit))
	s.latency.WithLabelValues(ev.Strategy).Observe(ev.Duration.Seconds())
	return nil
}

// RecordVerification counts feasibility check outcomes.
func (s *PromSink) RecordVerification(ev coremetrics.VerificationEvent) error {
	s.verifyRes.WithLabelValues(ev.Strategy, strconv.FormatBool(ev.Feasible)).Inc()
	return nil
}

// Handler returns the HTTP handler exposing the default gatherer.
func Handler() http.Handler { return promhttp.Handler() }

// StartPromServer starts an HTTP server exposing Prometheus metrics on the given address.
// The server runs until the provided context is canceled.
func StartPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
