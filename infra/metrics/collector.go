package metrics

import (
	"context"

	coremetrics "github.com/kilianp07/jobseq/core/metrics"
	"github.com/kilianp07/jobseq/infra/logger"
	"github.com/kilianp07/jobseq/internal/eventbus"
)

// StartEventCollector subscribes to the bus and forwards schedule events to
// sink. It stops when the context is canceled or the bus is closed. The
// returned channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[coremetrics.ScheduleEvent], sink coremetrics.MetricsSink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := sink.RecordSchedule(ev); err != nil {
					log.Warnf("collector: record run %s: %v", ev.RunID, err)
				}
			}
		}
	}()
	return done
}
