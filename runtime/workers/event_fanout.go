package workers

import (
	"avatar-chat/domain/event"
	"context"
	"log/slog"
)

// EventFanout is the local AnalyticsSink. Track never blocks the caller:
// events are queued and a supervised Run loop hands each one to every handler.
// When the queue is full the event is dropped.
type EventFanout struct {
	log      *slog.Logger
	events   chan event.LoggableEvent
	handlers []event.Handler
}

func NewEventFanout(log *slog.Logger, bufferSize int, handlers ...event.Handler) *EventFanout {
	return &EventFanout{
		log:      log,
		events:   make(chan event.LoggableEvent, bufferSize),
		handlers: handlers,
	}
}

func (w *EventFanout) Track(e event.LoggableEvent) {
	select {
	case w.events <- e:
	default:
		w.log.Debug("Analytics event lost", "name", e.Name)
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case e := <-w.events:
			w.Fanout(e)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping analytics fanout")
			return nil
		}
	}
}

// Fanout One handler call for each event
func (w *EventFanout) Fanout(e event.LoggableEvent) {
	for _, handler := range w.handlers {
		handler.Handle(e)
	}
}
