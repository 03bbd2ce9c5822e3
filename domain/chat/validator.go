package chat

import (
	"avatar-chat/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the required fields of a Conversation, Message or Report.
func Validate(value any) error {
	if err := validate.Struct(value); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidArgument, err)
	}
	return nil
}
