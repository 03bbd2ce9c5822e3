package ai

import (
	"avatar-chat/domain/chat"
	"avatar-chat/errors"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEchoProvider_GenerateText(t *testing.T) {
	req := require.New(t)
	provider := NewEchoProvider()
	history := []chat.Message{
		chat.NewMessage("c1", "u1", "hello"),
		chat.NewMessage("c1", "a1", "hi there"),
		chat.NewMessage("c1", "u1", "how are you"),
		{ID: "empty", ChatID: "c1"},
	}

	reply, err := provider.GenerateText(context.Background(), history)

	req.NoError(err)
	req.NotEmpty(reply.ID)
	req.Equal("c1", reply.ChatID)
	req.Equal("You said: how are you", *reply.Content)
	req.Nil(reply.AuthorID)
}

func TestEchoProvider_Nothing_To_Answer(t *testing.T) {
	req := require.New(t)
	provider := NewEchoProvider()

	_, err := provider.GenerateText(context.Background(), []chat.Message{{ID: "m1", ChatID: "c1"}})

	req.ErrorIs(err, errors.ErrInvalidArgument)
}

func TestEchoProvider_GenerateImage(t *testing.T) {
	req := require.New(t)
	provider := NewEchoProvider()

	image, err := provider.GenerateImage(context.Background(), "a cat in space")
	req.NoError(err)
	req.Equal([]byte("a cat in space"), image)

	_, err = provider.GenerateImage(context.Background(), "  ")
	req.ErrorIs(err, errors.ErrInvalidArgument)
}
