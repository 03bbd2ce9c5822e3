package workers

import (
	"avatar-chat/domain/event"
	"context"
	"log/slog"
	"maps"
	"time"
)

// TelemetryWorker periodically logs how many events of each name were tracked
// since the previous report. Nothing is logged for a quiet interval.
type TelemetryWorker struct {
	log      *slog.Logger
	interval time.Duration
	counter  *event.CounterHandler
	previous map[string]int
}

func NewTelemetryWorker(log *slog.Logger, interval time.Duration, counter *event.CounterHandler) *TelemetryWorker {
	return &TelemetryWorker{
		log:      log,
		interval: interval,
		counter:  counter,
		previous: make(map[string]int),
	}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.report()
		}
	}
}

func (w *TelemetryWorker) report() {
	current := w.counter.Snapshot()
	var attrs []any
	for name, n := range current {
		if delta := n - w.previous[name]; delta > 0 {
			attrs = append(attrs, slog.Int(name, delta))
		}
	}
	w.previous = maps.Clone(current)
	if len(attrs) > 0 {
		w.log.Info("Tracked events", attrs...)
	}
}
