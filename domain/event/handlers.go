package event

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

// Handler Each kind of event has his own handler
// Based on the Chain of responsibility pattern
type Handler interface {
	Handle(event LoggableEvent)
}

// LogHandler writes every event through slog, the level follows the event type.
type LogHandler struct {
	log *slog.Logger
}

func NewLogHandler(log *slog.Logger) *LogHandler {
	return &LogHandler{log: log}
}

func (h *LogHandler) Handle(event LoggableEvent) {
	level := slog.LevelInfo
	switch event.Type {
	case Analytic:
		level = slog.LevelDebug
	case Warning:
		level = slog.LevelWarn
	case Severe:
		level = slog.LevelError
	}
	attrs := lo.MapToSlice(event.Parameters, func(k string, v any) any {
		return slog.Any(k, v)
	})
	attrs = append(attrs, slog.String("type", event.Type.String()))
	h.log.Log(context.Background(), level, event.Name, attrs...)
}

// CounterHandler counts events per name.
type CounterHandler struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewCounterHandler() *CounterHandler {
	return &CounterHandler{counts: make(map[string]int)}
}

func (h *CounterHandler) Handle(event LoggableEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[event.Name]++
}

func (h *CounterHandler) Get(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[name]
}

// Snapshot returns a copy of every count.
func (h *CounterHandler) Snapshot() map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	counts := make(map[string]int, len(h.counts))
	for name, n := range h.counts {
		counts[name] = n
	}
	return counts
}
