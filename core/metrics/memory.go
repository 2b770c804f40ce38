package metrics

import (
	"sort"
	"sync"
	"time"
)

// StrategyStats aggregates the runs of one strategy.
type StrategyStats struct {
	Strategy    string    `json:"strategy"`
	Runs        int       `json:"runs"`
	Jobs        int       `json:"jobs"`
	Admitted    int       `json:"admitted"`
	Rejected    int       `json:"rejected"`
	TotalProfit int       `json:"total_profit"`
	LastRunID   string    `json:"last_run_id"`
	LastRun     time.Time `json:"last_run"`
}

// MemorySink keeps per-strategy aggregates in memory.
type MemorySink struct {
	mu    sync.RWMutex
	stats map[string]*StrategyStats
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{stats: make(map[string]*StrategyStats)}
}

// RecordSchedule folds the event into the strategy aggregate.
func (m *MemorySink) RecordSchedule(ev ScheduleEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stats[ev.Strategy]
	if !ok {
		st = &StrategyStats{Strategy: ev.Strategy}
		m.stats[ev.Strategy] = st
	}
	st.Runs++
	st.Jobs += ev.Jobs
	st.Admitted += ev.Admitted
	st.Rejected += ev.Rejected
	st.TotalProfit += ev.Profit
	if !ev.Time.Before(st.LastRun) {
		st.LastRun = ev.Time
		st.LastRunID = ev.RunID
	}
	return nil
}

// Snapshot returns a copy of the aggregates sorted by strategy name.
func (m *MemorySink) Snapshot() []StrategyStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]StrategyStats, 0, len(m.stats))
	for _, st := range m.stats {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Strategy < out[j].Strategy })
	return out
}
