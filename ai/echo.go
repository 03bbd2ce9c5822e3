// Package ai holds the local content generation provider.
package ai

import (
	"avatar-chat/domain/chat"
	"avatar-chat/errors"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// EchoProvider answers by echoing the latest message of the history.
// It stands in for a remote model in the CLI and in tests.
type EchoProvider struct{}

func NewEchoProvider() *EchoProvider {
	return &EchoProvider{}
}

// GenerateImage returns the prompt bytes, there is no image backend locally.
func (p *EchoProvider) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: empty prompt", errors.ErrInvalidArgument)
	}
	return []byte(prompt), nil
}

// GenerateText replies to the last message with content, in the chat of that message.
// The reply has no author, the caller stamps the avatar as its author.
func (p *EchoProvider) GenerateText(ctx context.Context, history []chat.Message) (chat.Message, error) {
	if err := ctx.Err(); err != nil {
		return chat.Message{}, err
	}
	last, _, ok := lo.FindLastIndexOf(history, func(m chat.Message) bool {
		return m.Content != nil
	})
	if !ok {
		return chat.Message{}, fmt.Errorf("%w: nothing to answer", errors.ErrInvalidArgument)
	}
	return chat.Message{
		ID:      uuid.NewString(),
		ChatID:  last.ChatID,
		Content: lo.ToPtr("You said: " + *last.Content),
	}, nil
}
