package screens

import (
	"avatar-chat/domain/avatar"
	"avatar-chat/domain/chat"
	"avatar-chat/domain/event"
	"context"
	"log/slog"
)

type ChatsState struct {
	Conversations []chat.Conversation
	Recents       []avatar.Avatar
}

// Chats lists the user's conversations and recently used avatars.
type Chats struct {
	log        *slog.Logger
	interactor ChatsInteractor
}

func NewChats(log *slog.Logger, interactor ChatsInteractor) *Chats {
	return &Chats{log: log, interactor: interactor}
}

// Load returns conversations most recently modified first.
// A recents failure is logged and leaves Recents empty.
func (s *Chats) Load(ctx context.Context) (ChatsState, error) {
	userID, err := s.interactor.GetAuthID()
	if err != nil {
		return ChatsState{}, err
	}
	s.interactor.TrackEvent(event.New("ChatsView_LoadChats_Start", event.Analytic))
	conversations, err := s.interactor.GetAllConversations(ctx, userID)
	if err != nil {
		s.interactor.TrackEvent(event.Fail("ChatsView_LoadChats_Fail", err))
		return ChatsState{}, err
	}
	chat.SortByModified(conversations)
	s.interactor.TrackEvent(event.New("ChatsView_LoadChats_Success", event.Analytic).With("count", len(conversations)))

	recents, err := s.interactor.GetRecents(ctx)
	if err != nil {
		s.log.Warn("Unable to load recent avatars", "error", err)
		s.interactor.TrackEvent(event.Fail("ChatsView_LoadRecents_Fail", err))
		recents = nil
	}
	return ChatsState{Conversations: conversations, Recents: recents}, nil
}
