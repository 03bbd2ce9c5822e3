// Package screens holds the per-screen flows. Each screen depends on the
// narrow interactor interface it declares here, never on the whole facade.
package screens

import (
	"avatar-chat/domain/account"
	"avatar-chat/domain/avatar"
	"avatar-chat/domain/chat"
	"avatar-chat/domain/event"
	"avatar-chat/runtime"
	"context"
)

type AppInteractor interface {
	CurrentIdentity() *account.Identity
	SignInAnonymous(ctx context.Context) (account.Identity, bool, error)
	TrackEvent(e event.LoggableEvent)
}

type ChatsInteractor interface {
	GetAuthID() (string, error)
	GetAllConversations(ctx context.Context, userID string) ([]chat.Conversation, error)
	GetRecents(ctx context.Context) ([]avatar.Avatar, error)
	TrackEvent(e event.LoggableEvent)
}

type ChatRowInteractor interface {
	GetAuthID() (string, error)
	GetLastMessage(ctx context.Context, chatID string) (*chat.Message, error)
	TrackEvent(e event.LoggableEvent)
}

type ChatInteractor interface {
	GetAuthID() (string, error)
	GetConversation(ctx context.Context, userID, avatarID string) (*chat.Conversation, error)
	CreateConversation(ctx context.Context, conversation chat.Conversation) error
	AppendMessage(ctx context.Context, chatID string, message chat.Message) error
	TouchConversation(ctx context.Context, chatID string) error
	StreamMessages(ctx context.Context, chatID string) (*runtime.Subscription, error)
	MarkMessageSeen(ctx context.Context, chatID, messageID, userID string) error
	ReportConversation(ctx context.Context, chatID, userID string) (chat.Report, error)
	DeleteConversation(ctx context.Context, chatID string) error
	AddRecent(ctx context.Context, a avatar.Avatar) error
	GenerateText(ctx context.Context, history []chat.Message) (chat.Message, error)
	ScheduleNotification(n event.Notification)
	TrackEvent(e event.LoggableEvent)
}
