package storage

import (
	"avatar-chat/domain/chat"
	"avatar-chat/errors"
	"avatar-chat/runtime"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const maxConflictRetries = 5

// ChatRepository stores conversations, messages and reports in BadgerDB.
//
// Keys:
//
//	chat:{chat_id}                      conversation
//	user_chat:{user_id}:{chat_id}       index of a user's conversations, value is the chat id
//	msg:{chat_id}:{message_id}          message, keyed by id so re-sending updates in place
//	report:{chat_id}:{report_id}        report
type ChatRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
	notifier      *runtime.Notifier
}

func NewChatRepository(db *badger.DB, log *slog.Logger, limitMessages *int) *ChatRepository {
	return &ChatRepository{
		db:            db,
		log:           log,
		limitMessages: limitMessages,
		notifier:      runtime.NewNotifier(),
	}
}

func chatKey(chatID string) []byte { return []byte("chat:" + chatID) }

func userChatPrefix(userID string) []byte { return []byte("user_chat:" + userID + ":") }

func userChatKey(userID, chatID string) []byte {
	return append(userChatPrefix(userID), chatID...)
}

func messagePrefix(chatID string) []byte { return []byte("msg:" + chatID + ":") }

func messageKey(chatID, messageID string) []byte {
	return append(messagePrefix(chatID), messageID...)
}

func reportPrefix(chatID string) []byte { return []byte("report:" + chatID + ":") }

func reportKey(chatID, reportID string) []byte {
	return append(reportPrefix(chatID), reportID...)
}

// UpsertConversation merges the conversation with any stored record of the same id.
func (r *ChatRepository) UpsertConversation(_ context.Context, conversation chat.Conversation) error {
	if err := chat.Validate(conversation); err != nil {
		return err
	}
	err := r.update(func(txn *badger.Txn) error {
		merged := conversation
		existing, err := getConversation(txn, conversation.ID)
		if err != nil && !stderrors.Is(err, errors.ErrNotFound) {
			return err
		}
		if existing != nil {
			merged = existing.Merge(conversation)
		}
		if err = txn.Set(chatKey(merged.ID), encodeConversation(merged)); err != nil {
			return err
		}
		return txn.Set(userChatKey(merged.UserID, merged.ID), []byte(merged.ID))
	})
	return errors.Persistence("upsert conversation", err)
}

// TouchConversation sets the modification date, last writer wins.
func (r *ChatRepository) TouchConversation(_ context.Context, chatID string, at time.Time) error {
	err := r.update(func(txn *badger.Txn) error {
		conversation, err := getConversation(txn, chatID)
		if err != nil {
			return err
		}
		conversation.DateModified = at
		return txn.Set(chatKey(chatID), encodeConversation(*conversation))
	})
	return errors.Persistence("touch conversation", err)
}

func (r *ChatRepository) GetConversation(_ context.Context, userID, avatarID string) (*chat.Conversation, error) {
	var conversation *chat.Conversation
	err := r.db.View(func(txn *badger.Txn) error {
		c, err := getConversation(txn, chat.ConversationID(userID, avatarID))
		if err != nil {
			if stderrors.Is(err, errors.ErrNotFound) {
				return nil
			}
			return err
		}
		conversation = c
		return nil
	})
	if err != nil {
		return nil, errors.Persistence("get conversation", err)
	}
	return conversation, nil
}

// GetAllConversations returns the user's conversations in storage order.
func (r *ChatRepository) GetAllConversations(_ context.Context, userID string) ([]chat.Conversation, error) {
	var conversations []chat.Conversation
	err := r.db.View(func(txn *badger.Txn) error {
		chatIDs, err := userChatIDs(txn, userID)
		if err != nil {
			return err
		}
		for _, chatID := range chatIDs {
			c, err := getConversation(txn, chatID)
			if stderrors.Is(err, errors.ErrNotFound) {
				r.log.Warn("Dangling conversation index", "user_id", userID, "chat_id", chatID)
				continue
			}
			if err != nil {
				return err
			}
			conversations = append(conversations, *c)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Persistence("get all conversations", err)
	}
	return conversations, nil
}

// UpsertMessage writes the message by id. Re-sending an id replaces the stored
// message while keeping every viewer already recorded.
// The conversation must exist: reading its record in the same transaction makes
// a write racing a delete conflict and then fail with ErrNotFound.
func (r *ChatRepository) UpsertMessage(_ context.Context, message chat.Message) error {
	if err := chat.Validate(message); err != nil {
		return err
	}
	err := r.update(func(txn *badger.Txn) error {
		if _, err := txn.Get(chatKey(message.ChatID)); err != nil {
			if stderrors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("conversation %s: %w", message.ChatID, errors.ErrNotFound)
			}
			return err
		}
		merged := message
		existing, err := getMessage(txn, message.ChatID, message.ID)
		if err != nil && !stderrors.Is(err, errors.ErrNotFound) {
			return err
		}
		if existing != nil {
			merged.SeenByIDs = lo.Union(existing.SeenByIDs, message.SeenByIDs)
		}
		return txn.Set(messageKey(message.ChatID, message.ID), encodeMessage(merged))
	})
	if err != nil {
		return errors.Persistence("upsert message", err)
	}
	r.notifier.Notify(message.ChatID)
	return nil
}

func (r *ChatRepository) MarkMessageSeen(_ context.Context, chatID, messageID, userID string) error {
	changed := false
	err := r.update(func(txn *badger.Txn) error {
		changed = false
		message, err := getMessage(txn, chatID, messageID)
		if err != nil {
			return err
		}
		if message.HasBeenSeenBy(userID) {
			return nil
		}
		changed = true
		return txn.Set(messageKey(chatID, messageID), encodeMessage(message.WithSeenBy(userID)))
	})
	if err != nil {
		return errors.Persistence("mark message seen", err)
	}
	if changed {
		r.notifier.Notify(chatID)
	}
	return nil
}

// GetMessages returns the conversation's messages oldest first.
// With a message limit configured only the most recent ones are kept.
func (r *ChatRepository) GetMessages(_ context.Context, chatID string) ([]chat.Message, error) {
	var messages []chat.Message
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		messages, err = getMessages(txn, chatID)
		return err
	})
	if err != nil {
		return nil, errors.Persistence("get messages", err)
	}
	if r.limitMessages != nil && len(messages) > *r.limitMessages {
		r.log.Debug(fmt.Sprintf("Maximum of %d message reached", *r.limitMessages))
		messages = messages[len(messages)-*r.limitMessages:]
	}
	return messages, nil
}

// StreamMessages registers its watcher before reading, so no write between
// the first read and the wait can be missed.
func (r *ChatRepository) StreamMessages(ctx context.Context, chatID string, fn func([]chat.Message) error) error {
	watch := r.notifier.Watch(chatID)
	defer r.notifier.Unwatch(chatID, watch)

	for {
		messages, err := r.GetMessages(ctx, chatID)
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

func (r *ChatRepository) GetLatestMessage(_ context.Context, chatID string) (*chat.Message, error) {
	var latest *chat.Message
	err := r.db.View(func(txn *badger.Txn) error {
		messages, err := getMessages(txn, chatID)
		if err != nil {
			return err
		}
		latest = chat.LatestMessage(messages)
		return nil
	})
	if err != nil {
		return nil, errors.Persistence("get latest message", err)
	}
	return latest, nil
}

// DeleteConversation removes the conversation, its index entry and all of its messages.
// Reports are audit records and stay.
//
// The record goes first, in its own transaction, so a message write started
// afterwards fails instead of leaving an orphan. The messages are then removed
// in batches.
func (r *ChatRepository) DeleteConversation(_ context.Context, chatID string) error {
	err := r.update(func(txn *badger.Txn) error {
		return deleteRecord(txn, chatID)
	})
	if err != nil {
		return errors.Persistence("delete conversation", err)
	}
	if err = r.deleteMessages(chatID); err != nil {
		return errors.Persistence("delete conversation", err)
	}
	r.notifier.Notify(chatID)
	return nil
}

func (r *ChatRepository) DeleteAllConversations(_ context.Context, userID string) error {
	var chatIDs []string
	err := r.update(func(txn *badger.Txn) error {
		var err error
		chatIDs, err = userChatIDs(txn, userID)
		if err != nil {
			return err
		}
		for _, chatID := range chatIDs {
			if err = deleteRecord(txn, chatID); err != nil {
				return err
			}
			// Index entries are removed even when the conversation record is gone
			if err = txn.Delete(userChatKey(userID, chatID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Persistence("delete all conversations", err)
	}
	for _, chatID := range chatIDs {
		if err = r.deleteMessages(chatID); err != nil {
			return errors.Persistence("delete all conversations", err)
		}
	}
	for _, chatID := range chatIDs {
		r.notifier.Notify(chatID)
	}
	r.log.Debug("Conversations deleted", "user_id", userID, "count", len(chatIDs))
	return nil
}

func (r *ChatRepository) RecordReport(_ context.Context, report chat.Report) error {
	if err := chat.Validate(report); err != nil {
		return err
	}
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(reportKey(report.ChatID, report.ID), encodeReport(report))
	})
	return errors.Persistence("record report", err)
}

func (r *ChatRepository) GetReports(_ context.Context, chatID string) ([]chat.Report, error) {
	var reports []chat.Report
	err := r.db.View(func(txn *badger.Txn) error {
		return scan(txn, reportPrefix(chatID), func(_ []byte, value []byte) error {
			report, err := decodeReport(value)
			if err != nil {
				return err
			}
			reports = append(reports, report)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Persistence("get reports", err)
	}
	return reports, nil
}

// update retries read-modify-write transactions that lost a conflict.
func (r *ChatRepository) update(fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = r.db.Update(fn)
		if !stderrors.Is(err, badger.ErrConflict) {
			return err
		}
		r.log.Debug("Transaction conflict, retrying", "attempt", attempt+1)
	}
	return err
}

// deleteMessages runs once the conversation record is gone, so no message can
// be added behind the scan.
func (r *ChatRepository) deleteMessages(chatID string) error {
	var keys [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		return scanKeys(txn, messagePrefix(chatID), func(key []byte) {
			keys = append(keys, key)
		})
	})
	if err != nil {
		return err
	}
	return r.deleteKeys(keys)
}

// deleteKeys goes through a WriteBatch so large conversations never hit ErrTxnTooBig.
func (r *ChatRepository) deleteKeys(keys [][]byte) error {
	if len(keys) == 0 {
		return nil
	}
	wb := r.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func getConversation(txn *badger.Txn, chatID string) (*chat.Conversation, error) {
	value, err := get(txn, chatKey(chatID))
	if err != nil {
		return nil, err
	}
	conversation, err := decodeConversation(value)
	if err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", chatID, err)
	}
	return &conversation, nil
}

func getMessage(txn *badger.Txn, chatID, messageID string) (*chat.Message, error) {
	value, err := get(txn, messageKey(chatID, messageID))
	if err != nil {
		return nil, err
	}
	message, err := decodeMessage(value)
	if err != nil {
		return nil, fmt.Errorf("decode message %s: %w", messageID, err)
	}
	return &message, nil
}

func getMessages(txn *badger.Txn, chatID string) ([]chat.Message, error) {
	var messages []chat.Message
	err := scan(txn, messagePrefix(chatID), func(key []byte, value []byte) error {
		message, err := decodeMessage(value)
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		messages = append(messages, message)
		return nil
	})
	if err != nil {
		return nil, err
	}
	chat.SortMessages(messages)
	return messages, nil
}

func userChatIDs(txn *badger.Txn, userID string) ([]string, error) {
	var chatIDs []string
	prefix := userChatPrefix(userID)
	err := scanKeys(txn, prefix, func(key []byte) {
		chatID := strings.TrimPrefix(string(key), string(prefix))
		// A longer user id sharing the prefix leaves a ":" in the remainder
		if !strings.Contains(chatID, ":") {
			chatIDs = append(chatIDs, chatID)
		}
	})
	return chatIDs, err
}

// deleteRecord removes the conversation and its index entry, if present.
func deleteRecord(txn *badger.Txn, chatID string) error {
	conversation, err := getConversation(txn, chatID)
	switch {
	case err == nil:
		if err = txn.Delete(userChatKey(conversation.UserID, chatID)); err != nil {
			return err
		}
	case !stderrors.Is(err, errors.ErrNotFound):
		return err
	}
	return txn.Delete(chatKey(chatID))
}

func get(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

func scan(txn *badger.Txn, prefix []byte, fn func(key, value []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err = fn(item.KeyCopy(nil), value); err != nil {
			return err
		}
	}
	return nil
}

func scanKeys(txn *badger.Txn, prefix []byte, fn func(key []byte)) error {
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	it := txn.NewIterator(options)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		fn(it.Item().KeyCopy(nil))
	}
	return nil
}
