package chat

import (
	"time"

	"github.com/google/uuid"
)

// Report is an append-only audit record raised by a user against a conversation.
type Report struct {
	ID          string `validate:"required"`
	ChatID      string `validate:"required"`
	UserID      string `validate:"required"`
	IsActive    bool
	DateCreated time.Time
}

func NewReport(chatID, userID string) Report {
	return Report{
		ID:          uuid.NewString(),
		ChatID:      chatID,
		UserID:      userID,
		IsActive:    true,
		DateCreated: time.Now().UTC(),
	}
}
