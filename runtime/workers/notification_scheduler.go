package workers

import (
	"avatar-chat/domain/event"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// NotificationScheduler is the local NotificationScheduler.
// Schedule never blocks, Run delivers each notification once its time has come.
type NotificationScheduler struct {
	log      *slog.Logger
	incoming chan event.Notification
	deliver  func(event.Notification)

	mu        sync.Mutex
	delivered []event.Notification
}

func NewNotificationScheduler(log *slog.Logger, bufferSize int) *NotificationScheduler {
	s := &NotificationScheduler{
		log:      log,
		incoming: make(chan event.Notification, bufferSize),
	}
	s.deliver = s.record
	return s
}

func (s *NotificationScheduler) Schedule(n event.Notification) {
	select {
	case s.incoming <- n:
	default:
		s.log.Debug("Notification lost", "user_id", n.UserID, "title", n.Title)
	}
}

// Run keeps pending notifications ordered by due time, so a far one never
// holds back those queued after it.
func (s *NotificationScheduler) Run(ctx context.Context) error {
	var pending []event.Notification
	for {
		pending = s.deliverDue(pending, time.Now())

		var due <-chan time.Time
		var timer *time.Timer
		if len(pending) > 0 {
			timer = time.NewTimer(time.Until(pending[0].At))
			due = timer.C
		}

		select {
		case n := <-s.incoming:
			pending = enqueue(pending, n)
		case <-due:
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			s.log.Debug("Context done, stopping notification scheduler", "pending", len(pending))
			return nil
		}
		if timer != nil {
			timer.Stop()
		}
	}
}

// Delivered returns the notifications delivered so far, oldest first.
func (s *NotificationScheduler) Delivered() []event.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.Notification(nil), s.delivered...)
}

func (s *NotificationScheduler) deliverDue(pending []event.Notification, now time.Time) []event.Notification {
	i := 0
	for ; i < len(pending) && !pending[i].At.After(now); i++ {
		s.deliver(pending[i])
	}
	return pending[i:]
}

// enqueue inserts n after every notification due at or before it.
func enqueue(pending []event.Notification, n event.Notification) []event.Notification {
	i := slices.IndexFunc(pending, func(p event.Notification) bool { return p.At.After(n.At) })
	if i < 0 {
		return append(pending, n)
	}
	return slices.Insert(pending, i, n)
}

func (s *NotificationScheduler) record(n event.Notification) {
	s.log.Info("Notification delivered", "user_id", n.UserID, "title", n.Title, "body", n.Body)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered = append(s.delivered, n)
}
