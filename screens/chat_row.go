package screens

import (
	"avatar-chat/domain/chat"
	"avatar-chat/domain/event"
	"context"
)

type ChatRowState struct {
	Conversation chat.Conversation
	LastMessage  *chat.Message
	HasNewChat   bool
}

// ChatRow is one line of the conversation list.
type ChatRow struct {
	interactor ChatRowInteractor
}

func NewChatRow(interactor ChatRowInteractor) *ChatRow {
	return &ChatRow{interactor: interactor}
}

func (r *ChatRow) Load(ctx context.Context, conversation chat.Conversation) (ChatRowState, error) {
	userID, err := r.interactor.GetAuthID()
	if err != nil {
		return ChatRowState{}, err
	}
	last, err := r.interactor.GetLastMessage(ctx, conversation.ID)
	if err != nil {
		r.interactor.TrackEvent(event.Fail("ChatRow_LoadLastMessage_Fail", err).With("chat_id", conversation.ID))
		return ChatRowState{}, err
	}
	return ChatRowState{
		Conversation: conversation,
		LastMessage:  last,
		HasNewChat:   last != nil && last.IsNewFor(userID),
	}, nil
}
