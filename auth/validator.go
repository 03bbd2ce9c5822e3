package auth

import (
	"avatar-chat/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type SignInRequest struct {
	Provider   string `validate:"required,alphanum"`
	Credential string `validate:"required,jwt"`
}

func ValidateSignIn(req SignInRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCredential, err)
	}
	return nil
}
