package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kilianp07/jobseq/api/schedule"
	"github.com/kilianp07/jobseq/config"
	coremetrics "github.com/kilianp07/jobseq/core/metrics"
	"github.com/kilianp07/jobseq/core/model"
	"github.com/kilianp07/jobseq/core/sequencing"
	"github.com/kilianp07/jobseq/core/sequencing/runlog"
	"github.com/kilianp07/jobseq/infra/logger"
	"github.com/kilianp07/jobseq/infra/metrics"
	"github.com/kilianp07/jobseq/internal/eventbus"
)

// Service wires one Manager per registered strategy with the configured
// metrics sinks, run log and HTTP API.
type Service struct {
	Managers map[string]*sequencing.Manager
	Default  string
	Stats    *coremetrics.MemorySink

	sink    coremetrics.MetricsSink
	bus     *eventbus.TypedBus[coremetrics.ScheduleEvent]
	store   runlog.Store
	log     logger.Logger
	addr    string
	limits  schedule.Limits
}

// NewLogger builds the application logger from the logging section.
func NewLogger(cfg config.LoggingConfig, component string) logger.Logger {
	return logger.NewZerologLoggerWithOptions(component, logger.Options{Level: cfg.Level, Format: cfg.Format})
}

// New creates a Service from the configuration. A nil log selects a zerolog
// logger built from cfg.Logging.
func New(cfg *config.Config, log logger.Logger) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = NewLogger(cfg.Logging, "service")
	}

	// Sequencers hold no resources and are built before the sink and run log.
	seqs := make(map[string]sequencing.Sequencer)
	for _, name := range sequencing.Strategies() {
		var (
			seq sequencing.Sequencer
			err error
		)
		if name == cfg.Sequencing.Strategy {
			seq, err = cfg.Sequencing.Build()
		} else {
			seq, err = sequencing.NewSequencer(name, nil)
		}
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", name, err)
		}
		seqs[name] = seq
	}
	if _, ok := seqs[cfg.Sequencing.Strategy]; !ok {
		return nil, fmt.Errorf("%w: %q", sequencing.ErrUnknownStrategy, cfg.Sequencing.Strategy)
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	var store runlog.Store = runlog.NopStore{}
	if cfg.RunLog.Path != "" {
		store, err = runlog.Open(cfg.RunLog.Backend, cfg.RunLog.Path)
		if err != nil {
			_ = coremetrics.CloseSink(sink)
			return nil, fmt.Errorf("run log: %w", err)
		}
	}

	svc := &Service{
		Managers: make(map[string]*sequencing.Manager, len(seqs)),
		Default:  cfg.Sequencing.Strategy,
		Stats:    coremetrics.NewMemorySink(),
		sink:     sink,
		bus:      eventbus.NewTyped[coremetrics.ScheduleEvent](),
		store:    store,
		log:      log,
		addr:     cfg.HTTP.Addr,
		limits:   schedule.Limits{MaxJobs: cfg.HTTP.MaxJobs, MaxBodyBytes: cfg.HTTP.MaxBodyBytes},
	}
	for name, seq := range seqs {
		mgr, err := sequencing.NewManager(seq, sink, svc.bus, store, log)
		if err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("manager %s: %w", name, err)
		}
		mgr.SetVerify(!cfg.Sequencing.SkipVerify)
		svc.Managers[name] = mgr
	}
	return svc, nil
}

// Schedule runs jobs through the named strategy, or the default one when
// strategy is empty.
func (s *Service) Schedule(ctx context.Context, strategy string, jobs []model.Job) (sequencing.Result, error) {
	if strategy == "" {
		strategy = s.Default
	}
	mgr, ok := s.Managers[strategy]
	if !ok {
		return sequencing.Result{}, fmt.Errorf("%w: %q", sequencing.ErrUnknownStrategy, strategy)
	}
	return mgr.Run(ctx, jobs)
}

// Handler returns the HTTP API and the Prometheus endpoint.
func (s *Service) Handler() http.Handler {
	runners := make(map[string]schedule.Runner, len(s.Managers))
	for name, m := range s.Managers {
		runners[name] = m
	}
	mux := http.NewServeMux()
	mux.Handle("/api/schedule", schedule.NewScheduleHandler(runners, s.Default, s.limits))
	mux.Handle("/api/runs", schedule.NewRunsHandler(s.store))
	mux.Handle("/api/stats", schedule.NewStatsHandler(s.Stats))
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

// Run serves the HTTP API on the configured address until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	collected := metrics.StartEventCollector(ctx, s.bus, s.Stats, s.log)
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.log.Infof("serving on %s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-collected
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return errors.Join(coremetrics.CloseSink(s.sink), s.store.Close())
}
