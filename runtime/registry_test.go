package runtime

import (
	"avatar-chat/domain/chat"
	"avatar-chat/errors"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const chatID = "chat-1"

type scriptedSource struct {
	updates chan []chat.Message
	stopped chan struct{}
	err     error
}

func newScriptedSource() *scriptedSource {
	return &scriptedSource{
		updates: make(chan []chat.Message),
		stopped: make(chan struct{}),
	}
}

func (s *scriptedSource) stream(ctx context.Context, _ string, fn func([]chat.Message) error) error {
	for {
		select {
		case <-ctx.Done():
			close(s.stopped)
			return nil
		case messages := <-s.updates:
			if err := fn(messages); err != nil {
				return err
			}
			if s.err != nil {
				return s.err
			}
		}
	}
}

func message(id string, at time.Time) chat.Message {
	return chat.Message{ID: id, ChatID: chatID, Content: lo.ToPtr(id), DateCreated: lo.ToPtr(at)}
}

func next(t *testing.T, sub *Subscription) []chat.Message {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	messages, err := sub.Next(ctx)
	require.NoError(t, err)
	return messages
}

func TestRegistry_Subscribe_Receives_Snapshot(t *testing.T) {
	req := require.New(t)
	source := newScriptedSource()
	registry := NewRegistry(slog.Default(), source.stream)
	now := time.Now().UTC()

	// Given a subscriber
	sub := registry.Subscribe(context.Background(), chatID)
	defer sub.Cancel()

	// When the upstream emits the current list
	source.updates <- []chat.Message{message("m1", now)}

	// Then the subscriber gets it
	req.Len(next(t, sub), 1)
	req.Equal(1, registry.Subscribers(chatID))
}

func TestRegistry_Cancel_Does_Not_Affect_Other_Subscriber(t *testing.T) {
	req := require.New(t)
	source := newScriptedSource()
	registry := NewRegistry(slog.Default(), source.stream)
	now := time.Now().UTC()

	// Given two subscribers of the same conversation
	sub1 := registry.Subscribe(context.Background(), chatID)
	sub2 := registry.Subscribe(context.Background(), chatID)
	defer sub2.Cancel()
	source.updates <- []chat.Message{message("m1", now)}
	req.Len(next(t, sub1), 1)
	req.Len(next(t, sub2), 1)

	// When the first one cancels
	sub1.Cancel()
	sub1.Cancel()
	source.updates <- []chat.Message{message("m1", now), message("m2", now.Add(time.Second))}

	// Then only the second receives the new list
	req.Len(next(t, sub2), 2)
	_, err := sub1.Next(context.Background())
	req.ErrorIs(err, errors.ErrSubscriptionClosed)
	req.NoError(sub1.Err())
	req.Equal(1, registry.Subscribers(chatID))
}

func TestRegistry_Late_Subscriber_Gets_Last_Snapshot(t *testing.T) {
	req := require.New(t)
	source := newScriptedSource()
	registry := NewRegistry(slog.Default(), source.stream)
	now := time.Now().UTC()

	first := registry.Subscribe(context.Background(), chatID)
	defer first.Cancel()
	source.updates <- []chat.Message{message("m1", now), message("m2", now)}
	req.Len(next(t, first), 2)

	// When a second subscriber joins without any new write
	late := registry.Subscribe(context.Background(), chatID)
	defer late.Cancel()

	// Then it receives the current list right away
	req.Len(next(t, late), 2)
}

func TestRegistry_Last_Subscriber_Stops_Upstream(t *testing.T) {
	req := require.New(t)
	source := newScriptedSource()
	registry := NewRegistry(slog.Default(), source.stream)

	ctx, cancel := context.WithCancel(context.Background())
	sub := registry.Subscribe(ctx, chatID)

	// When the subscriber context is canceled
	cancel()

	// Then the upstream is stopped and the room is gone
	select {
	case <-source.stopped:
	case <-time.After(time.Second):
		req.Fail("upstream was not stopped")
	}
	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		req.Fail("subscription was not closed")
	}
	req.Equal(0, registry.Subscribers(chatID))
}

func TestRegistry_Upstream_Failure_Closes_Subscribers(t *testing.T) {
	req := require.New(t)
	source := newScriptedSource()
	source.err = fmt.Errorf("%w: disk gone", errors.ErrPersistence)
	registry := NewRegistry(slog.Default(), source.stream)

	sub1 := registry.Subscribe(context.Background(), chatID)
	sub2 := registry.Subscribe(context.Background(), chatID)

	source.updates <- []chat.Message{message("m1", time.Now())}

	for _, sub := range []*Subscription{sub1, sub2} {
		req.Len(next(t, sub), 1)
		_, err := sub.Next(context.Background())
		req.ErrorIs(err, errors.ErrPersistence)
		req.ErrorIs(sub.Err(), errors.ErrPersistence)
	}
}

func TestRegistry_Upstream_Failure_Releases_Upstream_Context(t *testing.T) {
	req := require.New(t)
	upstream := make(chan context.Context, 1)
	registry := NewRegistry(slog.Default(), func(ctx context.Context, _ string, _ func([]chat.Message) error) error {
		upstream <- ctx
		return fmt.Errorf("%w: disk gone", errors.ErrPersistence)
	})

	sub := registry.Subscribe(context.Background(), chatID)

	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		req.FailNow("subscription was not closed")
	}
	req.ErrorIs(sub.Err(), errors.ErrPersistence)
	req.ErrorIs((<-upstream).Err(), context.Canceled)
	req.Equal(0, registry.Subscribers(chatID))
}

func TestRegistry_Slow_Subscriber_Gets_Newest_Snapshot(t *testing.T) {
	req := require.New(t)
	source := newScriptedSource()
	registry := NewRegistry(slog.Default(), source.stream)
	now := time.Now().UTC()

	sub := registry.Subscribe(context.Background(), chatID)
	defer sub.Cancel()

	// When several lists are published before the subscriber reads
	source.updates <- []chat.Message{message("m1", now)}
	source.updates <- []chat.Message{message("m1", now), message("m2", now)}
	source.updates <- []chat.Message{message("m1", now), message("m2", now), message("m3", now)}
	// Receiving this one means the previous publish went through
	source.updates <- []chat.Message{message("m1", now), message("m2", now), message("m3", now), message("m4", now)}

	// Then stale lists were skipped
	req.GreaterOrEqual(len(next(t, sub)), 3)
}
