package chat

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Message is one entry of a conversation.
// Only the seen-set changes after creation.
type Message struct {
	ID          string `validate:"required"`
	ChatID      string `validate:"required"`
	AuthorID    *string
	Content     *string
	SeenByIDs   []string
	DateCreated *time.Time
}

// NewMessage builds a message written by authorID, already seen by its author.
func NewMessage(chatID, authorID, content string) Message {
	return Message{
		ID:          uuid.NewString(),
		ChatID:      chatID,
		AuthorID:    lo.ToPtr(authorID),
		Content:     lo.ToPtr(content),
		SeenByIDs:   []string{authorID},
		DateCreated: lo.ToPtr(time.Now().UTC()),
	}
}

func (m Message) HasBeenSeenBy(userID string) bool {
	return lo.Contains(m.SeenByIDs, userID)
}

func (m Message) IsAuthoredBy(userID string) bool {
	return m.AuthorID != nil && *m.AuthorID == userID
}

// IsNewFor reports whether userID still has to read this message.
func (m Message) IsNewFor(userID string) bool {
	return !m.HasBeenSeenBy(userID) && !m.IsAuthoredBy(userID)
}

// WithSeenBy returns a copy whose seen-set contains userID.
func (m Message) WithSeenBy(userID string) Message {
	if m.HasBeenSeenBy(userID) {
		return m
	}
	seen := make([]string, 0, len(m.SeenByIDs)+1)
	seen = append(seen, m.SeenByIDs...)
	m.SeenByIDs = append(seen, userID)
	return m
}

func (m Message) createdAt() time.Time {
	if m.DateCreated == nil {
		return time.Time{}
	}
	return *m.DateCreated
}

// Before orders messages by creation time, then by id so equal timestamps stay stable.
func (m Message) Before(other Message) bool {
	a, b := m.createdAt(), other.createdAt()
	if !a.Equal(b) {
		return a.Before(b)
	}
	return m.ID < other.ID
}

// SortMessages orders messages oldest first.
func SortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Before(messages[j])
	})
}

// LatestMessage returns the message with the greatest creation time, nil for an empty list.
func LatestMessage(messages []Message) *Message {
	if len(messages) == 0 {
		return nil
	}
	latest := messages[0]
	for _, m := range messages[1:] {
		if latest.Before(m) {
			latest = m
		}
	}
	return &latest
}
