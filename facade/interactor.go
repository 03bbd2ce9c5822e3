// Package facade composes the registered capabilities into the interactor
// handed to each screen.
package facade

import (
	"avatar-chat/container"
	"avatar-chat/contract"
	"avatar-chat/domain/account"
	"avatar-chat/domain/avatar"
	"avatar-chat/domain/chat"
	"avatar-chat/domain/event"
	"avatar-chat/errors"
	"avatar-chat/runtime"
	"avatar-chat/screens"
	"avatar-chat/services"
	"context"
	"fmt"
)

var (
	_ screens.AppInteractor     = (*CoreInteractor)(nil)
	_ screens.ChatsInteractor   = (*CoreInteractor)(nil)
	_ screens.ChatRowInteractor = (*CoreInteractor)(nil)
	_ screens.ChatInteractor    = (*CoreInteractor)(nil)
)

// CoreInteractor forwards every call to exactly one capability.
// It keeps no state of its own.
type CoreInteractor struct {
	chats         services.IChatManager
	recents       contract.RecentAvatarCache
	auth          contract.AuthProvider
	ai            contract.AIGenerationProvider
	analytics     contract.AnalyticsSink
	notifications contract.NotificationScheduler
}

// NewCoreInteractor resolves every capability up front, so a missing one
// fails here rather than on first use.
func NewCoreInteractor(r container.Resolver) (*CoreInteractor, error) {
	var (
		i   CoreInteractor
		err error
	)
	if i.chats, err = container.Resolve[services.IChatManager](r); err != nil {
		return nil, fmt.Errorf("core interactor: %w", err)
	}
	if i.recents, err = container.Resolve[contract.RecentAvatarCache](r); err != nil {
		return nil, fmt.Errorf("core interactor: %w", err)
	}
	if i.auth, err = container.Resolve[contract.AuthProvider](r); err != nil {
		return nil, fmt.Errorf("core interactor: %w", err)
	}
	if i.ai, err = container.Resolve[contract.AIGenerationProvider](r); err != nil {
		return nil, fmt.Errorf("core interactor: %w", err)
	}
	if i.analytics, err = container.Resolve[contract.AnalyticsSink](r); err != nil {
		return nil, fmt.Errorf("core interactor: %w", err)
	}
	if i.notifications, err = container.Resolve[contract.NotificationScheduler](r); err != nil {
		return nil, fmt.Errorf("core interactor: %w", err)
	}
	return &i, nil
}

// Auth

func (i *CoreInteractor) CurrentIdentity() *account.Identity {
	return i.auth.CurrentIdentity()
}

func (i *CoreInteractor) GetAuthID() (string, error) {
	identity := i.auth.CurrentIdentity()
	if identity == nil {
		return "", errors.ErrAuthRequired
	}
	return identity.ID, nil
}

func (i *CoreInteractor) SignInAnonymous(ctx context.Context) (account.Identity, bool, error) {
	return i.auth.SignInAnonymous(ctx)
}

func (i *CoreInteractor) SignInFederated(ctx context.Context, provider, credential string) (account.Identity, bool, error) {
	return i.auth.SignInFederated(ctx, provider, credential)
}

func (i *CoreInteractor) SignOut(ctx context.Context) error {
	return i.auth.SignOut(ctx)
}

func (i *CoreInteractor) DeleteAccount(ctx context.Context) error {
	return i.auth.DeleteAccount(ctx)
}

func (i *CoreInteractor) WatchIdentity(ctx context.Context) <-chan *account.Identity {
	return i.auth.WatchIdentity(ctx)
}

// Chats

func (i *CoreInteractor) CreateConversation(ctx context.Context, conversation chat.Conversation) error {
	return i.chats.CreateConversation(ctx, conversation)
}

func (i *CoreInteractor) AppendMessage(ctx context.Context, chatID string, message chat.Message) error {
	return i.chats.AppendMessage(ctx, chatID, message)
}

func (i *CoreInteractor) TouchConversation(ctx context.Context, chatID string) error {
	return i.chats.TouchConversation(ctx, chatID)
}

func (i *CoreInteractor) GetConversation(ctx context.Context, userID, avatarID string) (*chat.Conversation, error) {
	return i.chats.GetConversation(ctx, userID, avatarID)
}

func (i *CoreInteractor) StreamMessages(ctx context.Context, chatID string) (*runtime.Subscription, error) {
	return i.chats.StreamMessages(ctx, chatID)
}

func (i *CoreInteractor) GetAllConversations(ctx context.Context, userID string) ([]chat.Conversation, error) {
	return i.chats.GetAllConversations(ctx, userID)
}

func (i *CoreInteractor) GetLastMessage(ctx context.Context, chatID string) (*chat.Message, error) {
	return i.chats.GetLastMessage(ctx, chatID)
}

func (i *CoreInteractor) MarkMessageSeen(ctx context.Context, chatID, messageID, userID string) error {
	return i.chats.MarkMessageSeen(ctx, chatID, messageID, userID)
}

func (i *CoreInteractor) HasNewMessage(ctx context.Context, chatID, userID string) (bool, error) {
	return i.chats.HasNewMessage(ctx, chatID, userID)
}

func (i *CoreInteractor) DeleteConversation(ctx context.Context, chatID string) error {
	return i.chats.DeleteConversation(ctx, chatID)
}

func (i *CoreInteractor) DeleteAllConversationsForUser(ctx context.Context, userID string) error {
	return i.chats.DeleteAllConversationsForUser(ctx, userID)
}

func (i *CoreInteractor) ReportConversation(ctx context.Context, chatID, userID string) (chat.Report, error) {
	return i.chats.ReportConversation(ctx, chatID, userID)
}

// Recents

func (i *CoreInteractor) AddRecent(ctx context.Context, a avatar.Avatar) error {
	return i.recents.AddRecent(ctx, a)
}

func (i *CoreInteractor) GetRecents(ctx context.Context) ([]avatar.Avatar, error) {
	return i.recents.GetRecents(ctx)
}

// Generation

func (i *CoreInteractor) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	return i.ai.GenerateImage(ctx, prompt)
}

func (i *CoreInteractor) GenerateText(ctx context.Context, history []chat.Message) (chat.Message, error) {
	return i.ai.GenerateText(ctx, history)
}

// Side channels

func (i *CoreInteractor) TrackEvent(e event.LoggableEvent) {
	i.analytics.Track(e)
}

func (i *CoreInteractor) ScheduleNotification(n event.Notification) {
	i.notifications.Schedule(n)
}
