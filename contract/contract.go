//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"avatar-chat/domain/account"
	"avatar-chat/domain/avatar"
	"avatar-chat/domain/chat"
	"avatar-chat/domain/event"
	"context"
	"time"
)

// ChatStore is the only component performing durable I/O for chat data.
// Every failure it returns is a PersistenceError.
type ChatStore interface {
	UpsertConversation(ctx context.Context, conversation chat.Conversation) error
	TouchConversation(ctx context.Context, chatID string, at time.Time) error
	GetConversation(ctx context.Context, userID, avatarID string) (*chat.Conversation, error)
	GetAllConversations(ctx context.Context, userID string) ([]chat.Conversation, error)
	// UpsertMessage fails with ErrNotFound when the conversation does not exist.
	UpsertMessage(ctx context.Context, message chat.Message) error
	MarkMessageSeen(ctx context.Context, chatID, messageID, userID string) error
	GetMessages(ctx context.Context, chatID string) ([]chat.Message, error)
	// StreamMessages blocks, calling fn with the full sorted message list right away
	// and again after every change, until ctx is done or fn or the storage fails.
	StreamMessages(ctx context.Context, chatID string, fn func([]chat.Message) error) error
	GetLatestMessage(ctx context.Context, chatID string) (*chat.Message, error)
	DeleteConversation(ctx context.Context, chatID string) error
	DeleteAllConversations(ctx context.Context, userID string) error
	RecordReport(ctx context.Context, report chat.Report) error
	GetReports(ctx context.Context, chatID string) ([]chat.Report, error)
}

// RecentAvatarCache is the bounded, most-recent-first local list of avatars.
type RecentAvatarCache interface {
	AddRecent(ctx context.Context, avatar avatar.Avatar) error
	GetRecents(ctx context.Context) ([]avatar.Avatar, error)
}

type AuthProvider interface {
	CurrentIdentity() *account.Identity
	SignInAnonymous(ctx context.Context) (account.Identity, bool, error)
	SignInFederated(ctx context.Context, provider, credential string) (account.Identity, bool, error)
	SignOut(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	// WatchIdentity emits the current identity, then every change, until ctx is done.
	WatchIdentity(ctx context.Context) <-chan *account.Identity
}

type AIGenerationProvider interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
	GenerateText(ctx context.Context, history []chat.Message) (chat.Message, error)
}

// AnalyticsSink accepts events without blocking and never fails the caller.
type AnalyticsSink interface {
	Track(e event.LoggableEvent)
}

// NotificationScheduler accepts notifications without blocking and never fails the caller.
type NotificationScheduler interface {
	Schedule(n event.Notification)
}
