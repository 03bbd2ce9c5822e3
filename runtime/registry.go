package runtime

import (
	"avatar-chat/domain/chat"
	"avatar-chat/errors"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// StreamSource is the upstream of a conversation: it calls fn with the full
// message list on start and after every change, and blocks until ctx is done.
type StreamSource func(ctx context.Context, chatID string, fn func([]chat.Message) error) error

// Registry fans out the live message list of each conversation to every subscriber.
//
// One upstream stream runs per conversation, started by the first subscriber and
// stopped when the last one leaves. Each subscriber holds at most one pending
// snapshot: a slow reader skips intermediate lists and always gets the newest one.
type Registry struct {
	mu     sync.Mutex
	log    *slog.Logger
	source StreamSource
	rooms  map[string]*room
}

type room struct {
	chatID      string
	cancel      context.CancelFunc
	subscribers map[*Subscription]struct{}
	last        []chat.Message
	hasLast     bool
}

func NewRegistry(log *slog.Logger, source StreamSource) *Registry {
	return &Registry{
		log:    log,
		source: source,
		rooms:  make(map[string]*room),
	}
}

// Subscribe attaches a new subscriber to the conversation.
// The subscriber is detached when ctx is done or Cancel is called, which never
// affects the other subscribers of the same conversation.
func (r *Registry) Subscribe(ctx context.Context, chatID string) *Subscription {
	r.mu.Lock()
	rm, ok := r.rooms[chatID]
	if !ok {
		upstreamCtx, cancel := context.WithCancel(context.Background())
		rm = &room{
			chatID:      chatID,
			cancel:      cancel,
			subscribers: make(map[*Subscription]struct{}),
		}
		r.rooms[chatID] = rm
		go r.pump(upstreamCtx, rm)
		r.log.Debug("Upstream started", "chat_id", chatID)
	}
	sub := &Subscription{
		c:    make(chan []chat.Message, 1),
		done: make(chan struct{}),
	}
	sub.cancel = func() { r.unsubscribe(rm, sub) }
	rm.subscribers[sub] = struct{}{}
	if rm.hasLast {
		sub.deliver(slices.Clone(rm.last))
	}
	r.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				sub.Cancel()
			case <-sub.done:
			}
		}()
	}
	return sub
}

// Subscribers returns how many subscribers are attached to the conversation.
func (r *Registry) Subscribers(chatID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rm, ok := r.rooms[chatID]; ok {
		return len(rm.subscribers)
	}
	return 0
}

// Close detaches every subscriber and stops every upstream.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rm := range r.rooms {
		rm.cancel()
		for sub := range rm.subscribers {
			sub.close(errors.ErrSubscriptionClosed)
		}
		rm.subscribers = make(map[*Subscription]struct{})
		delete(r.rooms, id)
	}
}

func (r *Registry) pump(ctx context.Context, rm *room) {
	err := r.source(ctx, rm.chatID, func(messages []chat.Message) error {
		r.publish(rm, messages)
		return nil
	})
	if ctx.Err() != nil {
		// Last subscriber left
		return
	}
	if err == nil {
		err = errors.ErrSubscriptionClosed
	}
	r.log.Warn("Upstream stopped", "chat_id", rm.chatID, "error", err)
	r.closeRoom(rm, fmt.Errorf("stream %s: %w", rm.chatID, err))
}

func (r *Registry) publish(rm *room, messages []chat.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm.last, rm.hasLast = messages, true
	for sub := range rm.subscribers {
		sub.deliver(slices.Clone(messages))
	}
}

func (r *Registry) unsubscribe(rm *room, sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := rm.subscribers[sub]; !ok {
		return
	}
	delete(rm.subscribers, sub)
	sub.close(nil)
	if len(rm.subscribers) == 0 {
		rm.cancel()
		if r.rooms[rm.chatID] == rm {
			delete(r.rooms, rm.chatID)
		}
		r.log.Debug("Upstream stopped, no subscriber left", "chat_id", rm.chatID)
	}
}

func (r *Registry) closeRoom(rm *room, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm.cancel()
	for sub := range rm.subscribers {
		sub.close(err)
	}
	rm.subscribers = make(map[*Subscription]struct{})
	if r.rooms[rm.chatID] == rm {
		delete(r.rooms, rm.chatID)
	}
}

// Subscription is one subscriber of a conversation's live message list.
// Every value received on C is the full list, oldest message first.
type Subscription struct {
	c      chan []chat.Message
	done   chan struct{}
	cancel func()

	mu  sync.Mutex
	err error
}

func (s *Subscription) C() <-chan []chat.Message { return s.c }

// Done is closed once the subscription stopped delivering.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Err is the reason the upstream stopped, nil after a plain Cancel.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Cancel detaches the subscriber. It is safe to call more than once.
func (s *Subscription) Cancel() { s.cancel() }

// Next waits for the next snapshot.
func (s *Subscription) Next(ctx context.Context) ([]chat.Message, error) {
	select {
	case messages, ok := <-s.c:
		if !ok {
			if err := s.Err(); err != nil {
				return nil, err
			}
			return nil, errors.ErrSubscriptionClosed
		}
		return messages, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// deliver and close run under the registry lock, the only writer of c.
func (s *Subscription) deliver(messages []chat.Message) {
	select {
	case <-s.c:
	default:
	}
	s.c <- messages
}

func (s *Subscription) close(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.c)
	close(s.done)
}
