// Package chat contains the conversation model of the avatar chat.
// Conversations, messages and reports are plain values; persistence and
// streaming live in the storage and services layers.
package chat

import (
	"encoding/hex"
	"sort"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Conversation is the single thread between one user and one avatar.
type Conversation struct {
	ID           string `validate:"required"`
	UserID       string `validate:"required"`
	AvatarID     string `validate:"required"`
	DateCreated  time.Time
	DateModified time.Time
}

// ConversationID derives the identifier of the conversation between userID and avatarID.
// The same pair always yields the same id, so re-opening a chat resolves to the same record.
func ConversationID(userID, avatarID string) string {
	sum := blake2b.Sum256([]byte(userID + "\x00" + avatarID))
	return hex.EncodeToString(sum[:16])
}

// NewConversation builds the conversation for the pair, created and modified at now.
func NewConversation(userID, avatarID string, now time.Time) Conversation {
	return Conversation{
		ID:           ConversationID(userID, avatarID),
		UserID:       userID,
		AvatarID:     avatarID,
		DateCreated:  now,
		DateModified: now,
	}
}

// Merge folds an incoming write into an existing record.
// The original creation date wins and the modification date only moves forward.
func (c Conversation) Merge(incoming Conversation) Conversation {
	merged := incoming
	if !c.DateCreated.IsZero() {
		merged.DateCreated = c.DateCreated
	}
	if c.DateModified.After(incoming.DateModified) {
		merged.DateModified = c.DateModified
	}
	return merged
}

// SortByModified orders conversations most recently modified first.
func SortByModified(conversations []Conversation) {
	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].DateModified.After(conversations[j].DateModified)
	})
}
