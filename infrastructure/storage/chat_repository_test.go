package storage

import (
	"avatar-chat/domain/chat"
	"avatar-chat/errors"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newMessage(chatID, id, author, content string, at time.Time) chat.Message {
	return chat.Message{
		ID:          id,
		ChatID:      chatID,
		AuthorID:    lo.ToPtr(author),
		Content:     lo.ToPtr(content),
		SeenByIDs:   []string{author},
		DateCreated: lo.ToPtr(at),
	}
}

func TestChatRepository_Upsert_And_Get_Conversation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default(), nil)
	now := time.Now().UTC()

	// Given no conversation exists
	missing, err := repository.GetConversation(ctx, "u1", "a1")
	req.NoError(err)
	req.Nil(missing)

	// When it is created twice, the second time with a later creation date
	conversation := chat.NewConversation("u1", "a1", now)
	req.NoError(repository.UpsertConversation(ctx, conversation))
	again := chat.NewConversation("u1", "a1", now.Add(time.Hour))
	req.NoError(repository.UpsertConversation(ctx, again))

	// Then a single record exists, with the original creation date
	fetched, err := repository.GetConversation(ctx, "u1", "a1")
	req.NoError(err)
	req.NotNil(fetched)
	req.Equal(chat.ConversationID("u1", "a1"), fetched.ID)
	req.True(fetched.DateCreated.Equal(now))
	req.True(fetched.DateModified.Equal(now.Add(time.Hour)))

	all, err := repository.GetAllConversations(ctx, "u1")
	req.NoError(err)
	req.Len(all, 1)
}

func TestChatRepository_Upsert_Rejects_Invalid_Conversation(t *testing.T) {
	req := require.New(t)
	repository := NewChatRepository(openDB(t), slog.Default(), nil)

	err := repository.UpsertConversation(context.Background(), chat.Conversation{UserID: "u1"})
	req.ErrorIs(err, errors.ErrInvalidArgument)
}

func TestChatRepository_Touch_Conversation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default(), nil)
	now := time.Now().UTC()

	err := repository.TouchConversation(ctx, "unknown", now)
	req.ErrorIs(err, errors.ErrPersistence)
	req.ErrorIs(err, errors.ErrNotFound)

	conversation := chat.NewConversation("u1", "a1", now)
	req.NoError(repository.UpsertConversation(ctx, conversation))
	req.NoError(repository.TouchConversation(ctx, conversation.ID, now.Add(time.Minute)))

	fetched, err := repository.GetConversation(ctx, "u1", "a1")
	req.NoError(err)
	req.True(fetched.DateModified.Equal(now.Add(time.Minute)))
}

func TestChatRepository_Get_All_Conversations_Is_Scoped_To_User(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default(), nil)
	now := time.Now().UTC()

	req.NoError(repository.UpsertConversation(ctx, chat.NewConversation("u1", "a1", now)))
	req.NoError(repository.UpsertConversation(ctx, chat.NewConversation("u1", "a2", now)))
	// A user id extending "u1" must not leak into u1's list
	req.NoError(repository.UpsertConversation(ctx, chat.NewConversation("u1:x", "a1", now)))

	all, err := repository.GetAllConversations(ctx, "u1")
	req.NoError(err)
	req.Len(all, 2)
	req.ElementsMatch([]string{"a1", "a2"}, lo.Map(all, func(c chat.Conversation, _ int) string { return c.AvatarID }))
}

func TestChatRepository_Messages_Are_Sorted_And_Idempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default(), nil)
	chatID := chat.ConversationID("u1", "a1")
	now := time.Now().UTC()
	seedConversation(t, repository, chatID)

	// Given messages stored out of order
	req.NoError(repository.UpsertMessage(ctx, newMessage(chatID, "m3", "a1", "third", now.Add(2*time.Minute))))
	req.NoError(repository.UpsertMessage(ctx, newMessage(chatID, "m1", "u1", "first", now)))
	req.NoError(repository.UpsertMessage(ctx, newMessage(chatID, "m2", "a1", "second", now.Add(time.Minute))))
	// And one message sent twice
	req.NoError(repository.UpsertMessage(ctx, newMessage(chatID, "m1", "u1", "first", now)))

	messages, err := repository.GetMessages(ctx, chatID)
	req.NoError(err)
	req.Equal([]string{"m1", "m2", "m3"}, lo.Map(messages, func(m chat.Message, _ int) string { return m.ID }))

	latest, err := repository.GetLatestMessage(ctx, chatID)
	req.NoError(err)
	req.Equal("m3", latest.ID)
	req.Equal("third", *latest.Content)
}

func TestChatRepository_Latest_Message_Breaks_Ties_By_Id(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default(), nil)
	now := time.Now().UTC()
	seedConversation(t, repository, "c")

	req.NoError(repository.UpsertMessage(ctx, newMessage("c", "b", "u1", "b", now)))
	req.NoError(repository.UpsertMessage(ctx, newMessage("c", "a", "u1", "a", now)))

	latest, err := repository.GetLatestMessage(ctx, "c")
	req.NoError(err)
	req.Equal("b", latest.ID)

	none, err := repository.GetLatestMessage(ctx, "empty")
	req.NoError(err)
	req.Nil(none)
}

func TestChatRepository_Limit_Keeps_Most_Recent_Messages(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	limit := 2
	repository := NewChatRepository(openDB(t), slog.Default(), &limit)
	now := time.Now().UTC()
	seedConversation(t, repository, "c")

	for i := 1; i <= 4; i++ {
		id := fmt.Sprintf("m%d", i)
		req.NoError(repository.UpsertMessage(ctx, newMessage("c", id, "u1", id, now.Add(time.Duration(i)*time.Minute))))
	}

	messages, err := repository.GetMessages(ctx, "c")
	req.NoError(err)
	req.Equal([]string{"m3", "m4"}, lo.Map(messages, func(m chat.Message, _ int) string { return m.ID }))
}

func TestChatRepository_Mark_Message_Seen_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default(), nil)
	seedConversation(t, repository, "c")

	req.NoError(repository.UpsertMessage(ctx, newMessage("c", "m1", "a1", "hi", time.Now().UTC())))

	req.NoError(repository.MarkMessageSeen(ctx, "c", "m1", "u1"))
	req.NoError(repository.MarkMessageSeen(ctx, "c", "m1", "u1"))

	latest, err := repository.GetLatestMessage(ctx, "c")
	req.NoError(err)
	req.ElementsMatch([]string{"a1", "u1"}, latest.SeenByIDs)

	// Re-sending the message keeps its viewers
	req.NoError(repository.UpsertMessage(ctx, newMessage("c", "m1", "a1", "hi", time.Now().UTC())))
	latest, err = repository.GetLatestMessage(ctx, "c")
	req.NoError(err)
	req.ElementsMatch([]string{"a1", "u1"}, latest.SeenByIDs)

	err = repository.MarkMessageSeen(ctx, "c", "unknown", "u1")
	req.ErrorIs(err, errors.ErrNotFound)
}

func TestChatRepository_Stream_Messages(t *testing.T) {
	req := require.New(t)
	repository := NewChatRepository(openDB(t), slog.Default(), nil)
	seedConversation(t, repository, "c")
	now := time.Now().UTC()
	ctx, cancel := context.WithCancel(context.Background())

	snapshots := make(chan []chat.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- repository.StreamMessages(ctx, "c", func(messages []chat.Message) error {
			snapshots <- messages
			return nil
		})
	}()

	// Then the current list comes first, then one list per write
	req.Empty(receive(t, snapshots))
	req.NoError(repository.UpsertMessage(context.Background(), newMessage("c", "m1", "u1", "hi", now)))
	req.Len(receive(t, snapshots), 1)
	req.NoError(repository.UpsertMessage(context.Background(), newMessage("c", "m0", "a1", "old", now.Add(-time.Minute))))
	messages := receive(t, snapshots)
	req.Equal([]string{"m0", "m1"}, lo.Map(messages, func(m chat.Message, _ int) string { return m.ID }))

	// And canceling stops the stream without error
	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("stream did not stop")
	}
}

func TestChatRepository_Delete_Conversation_Cascades(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default(), nil)
	now := time.Now().UTC()

	conversation := chat.NewConversation("u1", "a1", now)
	req.NoError(repository.UpsertConversation(ctx, conversation))
	req.NoError(repository.UpsertMessage(ctx, newMessage(conversation.ID, "m1", "u1", "hi", now)))
	req.NoError(repository.RecordReport(ctx, chat.NewReport(conversation.ID, "u1")))

	req.NoError(repository.DeleteConversation(ctx, conversation.ID))

	fetched, err := repository.GetConversation(ctx, "u1", "a1")
	req.NoError(err)
	req.Nil(fetched)
	messages, err := repository.GetMessages(ctx, conversation.ID)
	req.NoError(err)
	req.Empty(messages)
	all, err := repository.GetAllConversations(ctx, "u1")
	req.NoError(err)
	req.Empty(all)

	// Reports are kept for moderation
	reports, err := repository.GetReports(ctx, conversation.ID)
	req.NoError(err)
	req.Len(reports, 1)
	req.True(reports[0].IsActive)
}

func TestChatRepository_Delete_All_Conversations_For_User(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default(), nil)
	now := time.Now().UTC()

	var chatIDs []string
	for _, avatarID := range []string{"a1", "a2", "a3"} {
		conversation := chat.NewConversation("u1", avatarID, now)
		chatIDs = append(chatIDs, conversation.ID)
		req.NoError(repository.UpsertConversation(ctx, conversation))
		for i := 0; i < 5; i++ {
			id := fmt.Sprintf("%s-%d", avatarID, i)
			req.NoError(repository.UpsertMessage(ctx, newMessage(conversation.ID, id, "u1", id, now)))
		}
	}
	other := chat.NewConversation("u2", "a1", now)
	req.NoError(repository.UpsertConversation(ctx, other))
	req.NoError(repository.UpsertMessage(ctx, newMessage(other.ID, "keep", "u2", "keep", now)))

	req.NoError(repository.DeleteAllConversations(ctx, "u1"))

	all, err := repository.GetAllConversations(ctx, "u1")
	req.NoError(err)
	req.Empty(all)
	for _, chatID := range chatIDs {
		messages, err := repository.GetMessages(ctx, chatID)
		req.NoError(err)
		req.Empty(messages)
	}

	// Other users are untouched
	messages, err := repository.GetMessages(ctx, other.ID)
	req.NoError(err)
	req.Len(messages, 1)
}

func TestChatRepository_Message_Needs_Conversation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default(), nil)
	now := time.Now().UTC()

	// Given no conversation, the message is refused and nothing is stored
	err := repository.UpsertMessage(ctx, newMessage("c", "m1", "u1", "hi", now))
	req.ErrorIs(err, errors.ErrPersistence)
	req.ErrorIs(err, errors.ErrNotFound)
	messages, err := repository.GetMessages(ctx, "c")
	req.NoError(err)
	req.Empty(messages)
}

func TestChatRepository_Delete_Leaves_No_Orphan_Under_Concurrent_Writes(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewChatRepository(openDB(t), slog.Default(), nil)
	now := time.Now().UTC()
	conversation := chat.NewConversation("u1", "a1", now)
	req.NoError(repository.UpsertConversation(ctx, conversation))

	// Given a writer appending while the conversation is deleted
	stop := make(chan struct{})
	written := make(chan struct{})
	go func() {
		defer close(written)
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			id := fmt.Sprintf("m%d", i)
			if err := repository.UpsertMessage(ctx, newMessage(conversation.ID, id, "u1", id, now)); err != nil {
				// The conversation is gone, every later write fails too
				return
			}
		}
	}()
	time.Sleep(20 * time.Millisecond)
	req.NoError(repository.DeleteConversation(ctx, conversation.ID))
	close(stop)
	<-written

	// Then no message outlives its conversation
	messages, err := repository.GetMessages(ctx, conversation.ID)
	req.NoError(err)
	req.Empty(messages)
	err = repository.UpsertMessage(ctx, newMessage(conversation.ID, "late", "u1", "late", now))
	req.ErrorIs(err, errors.ErrNotFound)
}

func seedConversation(t *testing.T, repository *ChatRepository, chatID string) {
	t.Helper()
	now := time.Now().UTC()
	conversation := chat.Conversation{ID: chatID, UserID: "u1", AvatarID: "a1", DateCreated: now, DateModified: now}
	require.NoError(t, repository.UpsertConversation(context.Background(), conversation))
}

func receive(t *testing.T, snapshots chan []chat.Message) []chat.Message {
	t.Helper()
	select {
	case messages := <-snapshots:
		return messages
	case <-time.After(time.Second):
		require.Fail(t, "no snapshot received")
		return nil
	}
}
