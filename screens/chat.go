package screens

import (
	"avatar-chat/domain/avatar"
	"avatar-chat/domain/chat"
	"avatar-chat/domain/event"
	"avatar-chat/errors"
	"avatar-chat/services"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ChatScreen is a conversation between the signed-in user and one avatar.
// The conversation is only created when the user sends a first message.
type ChatScreen struct {
	log          *slog.Logger
	interactor   ChatInteractor
	avatar       avatar.Avatar
	conversation *chat.Conversation
}

func NewChatScreen(log *slog.Logger, interactor ChatInteractor) *ChatScreen {
	return &ChatScreen{log: log, interactor: interactor}
}

// Conversation is nil until a first message was sent.
func (s *ChatScreen) Conversation() *chat.Conversation {
	return s.conversation
}

// Open looks up the existing conversation with the avatar, it never creates one.
func (s *ChatScreen) Open(ctx context.Context, a avatar.Avatar) error {
	userID, err := s.interactor.GetAuthID()
	if err != nil {
		return err
	}
	s.avatar = a
	conversation, err := s.interactor.GetConversation(ctx, userID, a.AvatarID)
	if err != nil {
		s.interactor.TrackEvent(event.Fail("ChatView_LoadChat_Fail", err).With("avatar_id", a.AvatarID))
		return err
	}
	s.conversation = conversation
	s.interactor.TrackEvent(event.New("ChatView_LoadChat_Success", event.Analytic).
		With("avatar_id", a.AvatarID).
		With("has_chat", conversation != nil))
	return nil
}

// Send appends the user's message, then asks the avatar for a reply and appends it.
func (s *ChatScreen) Send(ctx context.Context, text string) (chat.Message, error) {
	if strings.TrimSpace(text) == "" {
		return chat.Message{}, fmt.Errorf("%w: empty message", errors.ErrInvalidArgument)
	}
	if s.avatar.AvatarID == "" {
		return chat.Message{}, fmt.Errorf("%w: no avatar opened", errors.ErrInvalidArgument)
	}
	userID, err := s.interactor.GetAuthID()
	if err != nil {
		return chat.Message{}, err
	}
	s.interactor.TrackEvent(event.New("ChatView_SendMessage_Start", event.Analytic).With("avatar_id", s.avatar.AvatarID))

	if s.conversation == nil {
		if err = s.createConversation(ctx, userID); err != nil {
			s.interactor.TrackEvent(event.Fail("ChatView_CreateChat_Fail", err))
			return chat.Message{}, err
		}
	}
	chatID := s.conversation.ID

	message := chat.NewMessage(chatID, userID, text)
	if err = s.append(ctx, message); err != nil {
		s.interactor.TrackEvent(event.Fail("ChatView_SendMessage_Fail", err))
		return chat.Message{}, err
	}
	s.interactor.TrackEvent(event.New("ChatView_SendMessage_Sent", event.Analytic).With("chat_id", chatID))

	if err = s.interactor.AddRecent(ctx, s.avatar); err != nil {
		s.log.Warn("Unable to record recent avatar", "avatar_id", s.avatar.AvatarID, "error", err)
	}

	history, err := s.snapshot(ctx, chatID, message.ID)
	if err != nil {
		return chat.Message{}, err
	}
	reply, err := s.interactor.GenerateText(ctx, history)
	if err != nil {
		s.interactor.TrackEvent(event.Fail("ChatView_GenerateReply_Fail", err))
		return chat.Message{}, err
	}
	reply.ChatID = chatID
	reply.AuthorID = lo.ToPtr(s.avatar.AvatarID)
	reply.SeenByIDs = []string{s.avatar.AvatarID}
	if err = s.append(ctx, reply); err != nil {
		s.interactor.TrackEvent(event.Fail("ChatView_SendReply_Fail", err))
		return chat.Message{}, err
	}
	s.interactor.TrackEvent(event.New("ChatView_SendMessage_Response", event.Analytic).With("chat_id", chatID))
	s.interactor.ScheduleNotification(event.Notification{
		UserID: userID,
		Title:  lo.FromPtrOr(s.avatar.Name, "New message"),
		Body:   lo.FromPtr(reply.Content),
		At:     time.Now().UTC(),
	})
	return reply, nil
}

// Watch calls fn with every snapshot of the conversation and marks the newest
// message seen by the user. It returns nil once ctx is done.
func (s *ChatScreen) Watch(ctx context.Context, fn func([]chat.Message)) error {
	if s.conversation == nil {
		return fmt.Errorf("%w: no conversation yet", errors.ErrInvalidArgument)
	}
	userID, err := s.interactor.GetAuthID()
	if err != nil {
		return err
	}
	chatID := s.conversation.ID
	sub, err := s.interactor.StreamMessages(ctx, chatID)
	if err != nil {
		return err
	}
	defer sub.Cancel()

	for {
		messages, err := sub.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.interactor.TrackEvent(event.Fail("ChatView_MessageListener_Fail", err))
			return err
		}
		fn(messages)
		last := chat.LatestMessage(messages)
		if last == nil || !last.IsNewFor(userID) {
			continue
		}
		if err = s.interactor.MarkMessageSeen(ctx, chatID, last.ID, userID); err != nil {
			s.log.Warn("Unable to mark message seen", "chat_id", chatID, "message_id", last.ID, "error", err)
		}
	}
}

func (s *ChatScreen) Report(ctx context.Context) (chat.Report, error) {
	if s.conversation == nil {
		return chat.Report{}, fmt.Errorf("%w: no conversation yet", errors.ErrInvalidArgument)
	}
	userID, err := s.interactor.GetAuthID()
	if err != nil {
		return chat.Report{}, err
	}
	report, err := s.interactor.ReportConversation(ctx, s.conversation.ID, userID)
	if err != nil {
		s.interactor.TrackEvent(event.Fail("ChatView_ReportChat_Fail", err))
		return chat.Report{}, err
	}
	s.interactor.TrackEvent(event.New("ChatView_ReportChat_Success", event.Analytic).With("chat_id", s.conversation.ID))
	return report, nil
}

func (s *ChatScreen) Delete(ctx context.Context) error {
	if s.conversation == nil {
		return nil
	}
	if err := s.interactor.DeleteConversation(ctx, s.conversation.ID); err != nil {
		s.interactor.TrackEvent(event.Fail("ChatView_DeleteChat_Fail", err))
		return err
	}
	s.interactor.TrackEvent(event.New("ChatView_DeleteChat_Success", event.Analytic).With("chat_id", s.conversation.ID))
	s.conversation = nil
	return nil
}

func (s *ChatScreen) createConversation(ctx context.Context, userID string) error {
	conversation := chat.NewConversation(userID, s.avatar.AvatarID, time.Now().UTC())
	if err := s.interactor.CreateConversation(ctx, conversation); err != nil {
		return err
	}
	s.conversation = &conversation
	return nil
}

// append stores a message and retries only the touch when that part failed.
func (s *ChatScreen) append(ctx context.Context, message chat.Message) error {
	err := s.interactor.AppendMessage(ctx, s.conversation.ID, message)
	var touchErr *services.TouchError
	if stderrors.As(err, &touchErr) {
		s.log.Warn("Retrying conversation touch", "chat_id", touchErr.ChatID, "error", touchErr.Err)
		return s.interactor.TouchConversation(ctx, touchErr.ChatID)
	}
	return err
}

// snapshot reads the live message list until it holds messageID.
func (s *ChatScreen) snapshot(ctx context.Context, chatID, messageID string) ([]chat.Message, error) {
	sub, err := s.interactor.StreamMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	defer sub.Cancel()
	for {
		messages, err := sub.Next(ctx)
		if err != nil {
			return nil, err
		}
		if lo.ContainsBy(messages, func(m chat.Message) bool { return m.ID == messageID }) {
			return messages, nil
		}
	}
}
