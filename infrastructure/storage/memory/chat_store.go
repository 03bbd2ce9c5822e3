// Package memory provides in-process stores with the same semantics as the
// Badger repositories, for tests and the CLI mock mode.
package memory

import (
	"avatar-chat/domain/chat"
	"avatar-chat/errors"
	"avatar-chat/runtime"
	"context"
	"sync"
	"time"

	"github.com/samber/lo"
)

type ChatStore struct {
	mu            sync.RWMutex
	conversations map[string]chat.Conversation      // chatID -> conversation
	userIndex     map[string]map[string]struct{}    // userID -> chatIDs
	messages      map[string]map[string]chat.Message // chatID -> messageID -> message
	reports       map[string][]chat.Report          // chatID -> reports
	notifier      *runtime.Notifier
	failure       error
}

func NewChatStore() *ChatStore {
	return &ChatStore{
		conversations: make(map[string]chat.Conversation),
		userIndex:     make(map[string]map[string]struct{}),
		messages:      make(map[string]map[string]chat.Message),
		reports:       make(map[string][]chat.Report),
		notifier:      runtime.NewNotifier(),
	}
}

// FailWith makes every following call fail with err wrapped as a PersistenceError.
// A nil err restores normal behavior.
func (s *ChatStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *ChatStore) fail(op string) error {
	return errors.Persistence(op, s.failure)
}

func (s *ChatStore) UpsertConversation(_ context.Context, conversation chat.Conversation) error {
	if err := chat.Validate(conversation); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("upsert conversation"); err != nil {
		return err
	}
	merged := conversation
	if existing, ok := s.conversations[conversation.ID]; ok {
		merged = existing.Merge(conversation)
	}
	s.conversations[merged.ID] = merged
	if _, ok := s.userIndex[merged.UserID]; !ok {
		s.userIndex[merged.UserID] = make(map[string]struct{})
	}
	s.userIndex[merged.UserID][merged.ID] = struct{}{}
	return nil
}

func (s *ChatStore) TouchConversation(_ context.Context, chatID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("touch conversation"); err != nil {
		return err
	}
	conversation, ok := s.conversations[chatID]
	if !ok {
		return errors.Persistence("touch conversation", errors.ErrNotFound)
	}
	conversation.DateModified = at
	s.conversations[chatID] = conversation
	return nil
}

func (s *ChatStore) GetConversation(_ context.Context, userID, avatarID string) (*chat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.fail("get conversation"); err != nil {
		return nil, err
	}
	conversation, ok := s.conversations[chat.ConversationID(userID, avatarID)]
	if !ok {
		return nil, nil
	}
	return &conversation, nil
}

func (s *ChatStore) GetAllConversations(_ context.Context, userID string) ([]chat.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.fail("get all conversations"); err != nil {
		return nil, err
	}
	var result []chat.Conversation
	for chatID := range s.userIndex[userID] {
		result = append(result, s.conversations[chatID])
	}
	return result, nil
}

func (s *ChatStore) UpsertMessage(_ context.Context, message chat.Message) error {
	if err := chat.Validate(message); err != nil {
		return err
	}
	s.mu.Lock()
	if err := s.fail("upsert message"); err != nil {
		s.mu.Unlock()
		return err
	}
	if _, ok := s.conversations[message.ChatID]; !ok {
		s.mu.Unlock()
		return errors.Persistence("upsert message", errors.ErrNotFound)
	}
	if _, ok := s.messages[message.ChatID]; !ok {
		s.messages[message.ChatID] = make(map[string]chat.Message)
	}
	if existing, ok := s.messages[message.ChatID][message.ID]; ok {
		message.SeenByIDs = lo.Union(existing.SeenByIDs, message.SeenByIDs)
	}
	s.messages[message.ChatID][message.ID] = message
	s.mu.Unlock()

	s.notifier.Notify(message.ChatID)
	return nil
}

func (s *ChatStore) MarkMessageSeen(_ context.Context, chatID, messageID, userID string) error {
	s.mu.Lock()
	if err := s.fail("mark message seen"); err != nil {
		s.mu.Unlock()
		return err
	}
	message, ok := s.messages[chatID][messageID]
	if !ok {
		s.mu.Unlock()
		return errors.Persistence("mark message seen", errors.ErrNotFound)
	}
	if message.HasBeenSeenBy(userID) {
		s.mu.Unlock()
		return nil
	}
	s.messages[chatID][messageID] = message.WithSeenBy(userID)
	s.mu.Unlock()

	s.notifier.Notify(chatID)
	return nil
}

func (s *ChatStore) GetMessages(_ context.Context, chatID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.fail("get messages"); err != nil {
		return nil, err
	}
	return s.sorted(chatID), nil
}

func (s *ChatStore) StreamMessages(ctx context.Context, chatID string, fn func([]chat.Message) error) error {
	watch := s.notifier.Watch(chatID)
	defer s.notifier.Unwatch(chatID, watch)

	for {
		messages, err := s.GetMessages(ctx, chatID)
		if err != nil {
			return err
		}
		if err = fn(messages); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-watch.C():
		}
	}
}

func (s *ChatStore) GetLatestMessage(_ context.Context, chatID string) (*chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.fail("get latest message"); err != nil {
		return nil, err
	}
	return chat.LatestMessage(s.sorted(chatID)), nil
}

func (s *ChatStore) DeleteConversation(_ context.Context, chatID string) error {
	s.mu.Lock()
	if err := s.fail("delete conversation"); err != nil {
		s.mu.Unlock()
		return err
	}
	s.remove(chatID)
	s.mu.Unlock()

	s.notifier.Notify(chatID)
	return nil
}

func (s *ChatStore) DeleteAllConversations(_ context.Context, userID string) error {
	s.mu.Lock()
	if err := s.fail("delete all conversations"); err != nil {
		s.mu.Unlock()
		return err
	}
	chatIDs := lo.Keys(s.userIndex[userID])
	for _, chatID := range chatIDs {
		s.remove(chatID)
	}
	delete(s.userIndex, userID)
	s.mu.Unlock()

	for _, chatID := range chatIDs {
		s.notifier.Notify(chatID)
	}
	return nil
}

func (s *ChatStore) RecordReport(_ context.Context, report chat.Report) error {
	if err := chat.Validate(report); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("record report"); err != nil {
		return err
	}
	s.reports[report.ChatID] = append(s.reports[report.ChatID], report)
	return nil
}

func (s *ChatStore) GetReports(_ context.Context, chatID string) ([]chat.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.fail("get reports"); err != nil {
		return nil, err
	}
	return append([]chat.Report(nil), s.reports[chatID]...), nil
}

// remove runs with the write lock held.
func (s *ChatStore) remove(chatID string) {
	if conversation, ok := s.conversations[chatID]; ok {
		if set, ok := s.userIndex[conversation.UserID]; ok {
			delete(set, chatID)
			if len(set) == 0 {
				delete(s.userIndex, conversation.UserID)
			}
		}
	}
	delete(s.conversations, chatID)
	delete(s.messages, chatID)
}

// sorted runs with the read lock held.
func (s *ChatStore) sorted(chatID string) []chat.Message {
	messages := lo.Values(s.messages[chatID])
	chat.SortMessages(messages)
	return messages
}
