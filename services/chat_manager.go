package services

import (
	"avatar-chat/contract"
	"avatar-chat/domain/chat"
	"avatar-chat/errors"
	"avatar-chat/runtime"
	"context"
	"fmt"
	"log/slog"
	"time"
)

type IChatManager interface {
	CreateConversation(ctx context.Context, conversation chat.Conversation) error
	AppendMessage(ctx context.Context, chatID string, message chat.Message) error
	TouchConversation(ctx context.Context, chatID string) error
	GetConversation(ctx context.Context, userID, avatarID string) (*chat.Conversation, error)
	StreamMessages(ctx context.Context, chatID string) (*runtime.Subscription, error)
	GetAllConversations(ctx context.Context, userID string) ([]chat.Conversation, error)
	GetLastMessage(ctx context.Context, chatID string) (*chat.Message, error)
	MarkMessageSeen(ctx context.Context, chatID, messageID, userID string) error
	HasNewMessage(ctx context.Context, chatID, userID string) (bool, error)
	DeleteConversation(ctx context.Context, chatID string) error
	DeleteAllConversationsForUser(ctx context.Context, userID string) error
	ReportConversation(ctx context.Context, chatID, userID string) (chat.Report, error)
	Close()
}

// TouchError is returned by AppendMessage when the message was stored
// but the conversation's modification date could not be updated.
// Retry with TouchConversation, the message must not be sent again.
type TouchError struct {
	ChatID string
	Err    error
}

func (e *TouchError) Error() string {
	return fmt.Sprintf("message stored, touching conversation %s failed: %v", e.ChatID, e.Err)
}

func (e *TouchError) Unwrap() error { return e.Err }

// ChatManager owns chat semantics on top of a ChatStore.
// It never retries: every store failure is handed back to the caller.
type ChatManager struct {
	log      *slog.Logger
	store    contract.ChatStore
	registry *runtime.Registry
	now      func() time.Time
}

func NewChatManager(log *slog.Logger, store contract.ChatStore) *ChatManager {
	return &ChatManager{
		log:      log,
		store:    store,
		registry: runtime.NewRegistry(log, store.StreamMessages),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateConversation is idempotent: the id is derived from the user and the avatar,
// so creating the same pair twice leaves a single conversation.
func (m *ChatManager) CreateConversation(ctx context.Context, conversation chat.Conversation) error {
	id := chat.ConversationID(conversation.UserID, conversation.AvatarID)
	switch conversation.ID {
	case "":
		conversation.ID = id
	case id:
	default:
		return fmt.Errorf("%w: conversation id %s does not match user and avatar", errors.ErrInvalidArgument, conversation.ID)
	}
	now := m.now()
	if conversation.DateCreated.IsZero() {
		conversation.DateCreated = now
	}
	if conversation.DateModified.IsZero() {
		conversation.DateModified = conversation.DateCreated
	}
	if err := m.store.UpsertConversation(ctx, conversation); err != nil {
		m.log.Warn("Unable to create conversation", "chat_id", conversation.ID, "error", err)
		return err
	}
	m.log.Debug("Conversation created", "chat_id", conversation.ID, "user_id", conversation.UserID, "avatar_id", conversation.AvatarID)
	return nil
}

// AppendMessage stores the message then touches the conversation.
// A missing conversation fails before anything is written, with ErrNotFound.
func (m *ChatManager) AppendMessage(ctx context.Context, chatID string, message chat.Message) error {
	message.ChatID = chatID
	if message.DateCreated == nil {
		at := m.now()
		message.DateCreated = &at
	}
	if err := m.store.UpsertMessage(ctx, message); err != nil {
		m.log.Warn("Unable to append message", "chat_id", chatID, "message_id", message.ID, "error", err)
		return err
	}
	if err := m.store.TouchConversation(ctx, chatID, *message.DateCreated); err != nil {
		m.log.Warn("Message stored but conversation not touched", "chat_id", chatID, "message_id", message.ID, "error", err)
		return &TouchError{ChatID: chatID, Err: err}
	}
	m.log.Debug("Message appended", "chat_id", chatID, "message_id", message.ID)
	return nil
}

func (m *ChatManager) TouchConversation(ctx context.Context, chatID string) error {
	if err := m.store.TouchConversation(ctx, chatID, m.now()); err != nil {
		m.log.Warn("Unable to touch conversation", "chat_id", chatID, "error", err)
		return err
	}
	return nil
}

func (m *ChatManager) GetConversation(ctx context.Context, userID, avatarID string) (*chat.Conversation, error) {
	return m.store.GetConversation(ctx, userID, avatarID)
}

// StreamMessages subscribes to the live message list of a conversation.
// The returned subscription is detached by Cancel or when ctx is done.
func (m *ChatManager) StreamMessages(ctx context.Context, chatID string) (*runtime.Subscription, error) {
	if chatID == "" {
		return nil, fmt.Errorf("%w: empty chat id", errors.ErrInvalidArgument)
	}
	sub := m.registry.Subscribe(ctx, chatID)
	m.log.Debug("Subscribed to conversation", "chat_id", chatID, "subscribers", m.registry.Subscribers(chatID))
	return sub, nil
}

func (m *ChatManager) GetAllConversations(ctx context.Context, userID string) ([]chat.Conversation, error) {
	conversations, err := m.store.GetAllConversations(ctx, userID)
	if err != nil {
		m.log.Warn("Unable to list conversations", "user_id", userID, "error", err)
		return nil, err
	}
	return conversations, nil
}

func (m *ChatManager) GetLastMessage(ctx context.Context, chatID string) (*chat.Message, error) {
	return m.store.GetLatestMessage(ctx, chatID)
}

func (m *ChatManager) MarkMessageSeen(ctx context.Context, chatID, messageID, userID string) error {
	if err := m.store.MarkMessageSeen(ctx, chatID, messageID, userID); err != nil {
		m.log.Warn("Unable to mark message seen", "chat_id", chatID, "message_id", messageID, "error", err)
		return err
	}
	return nil
}

// HasNewMessage reports whether the last message of the conversation was
// written by someone else and not yet seen by the user.
func (m *ChatManager) HasNewMessage(ctx context.Context, chatID, userID string) (bool, error) {
	last, err := m.store.GetLatestMessage(ctx, chatID)
	if err != nil {
		return false, err
	}
	return last != nil && last.IsNewFor(userID), nil
}

func (m *ChatManager) DeleteConversation(ctx context.Context, chatID string) error {
	if err := m.store.DeleteConversation(ctx, chatID); err != nil {
		m.log.Warn("Unable to delete conversation", "chat_id", chatID, "error", err)
		return err
	}
	m.log.Debug("Conversation deleted", "chat_id", chatID)
	return nil
}

func (m *ChatManager) DeleteAllConversationsForUser(ctx context.Context, userID string) error {
	if err := m.store.DeleteAllConversations(ctx, userID); err != nil {
		m.log.Warn("Unable to delete conversations", "user_id", userID, "error", err)
		return err
	}
	m.log.Debug("All conversations deleted", "user_id", userID)
	return nil
}

func (m *ChatManager) ReportConversation(ctx context.Context, chatID, userID string) (chat.Report, error) {
	report := chat.NewReport(chatID, userID)
	if err := m.store.RecordReport(ctx, report); err != nil {
		m.log.Warn("Unable to report conversation", "chat_id", chatID, "error", err)
		return chat.Report{}, err
	}
	m.log.Info("Conversation reported", "chat_id", chatID, "report_id", report.ID)
	return report, nil
}

// Close detaches every live subscription.
func (m *ChatManager) Close() {
	m.registry.Close()
}
