package validation

import (
	"strings"

	"taskhub/backend/internal/apperrors"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register is the normalized registration payload.
type Register struct {
	Name     string
	Email    string
	Password string
}

func (in RegisterInput) Validate() (*Register, []apperrors.FieldError) {
	var list errorList

	name := trimmed(in.Name)
	if len(name) < 2 || len(name) > 100 {
		list.add("name", "name must be between 2 and 100 characters")
	}

	email := strings.ToLower(trimmed(in.Email))
	if !ValidEmail(email) {
		list.add("email", "a valid email address is required")
	}

	if len(in.Password) < 8 {
		list.add("password", "password must be at least 8 characters")
	} else if len(in.Password) > 72 {
		list.add("password", "password must be at most 72 characters")
	}

	if list.errs != nil {
		return nil, list.errs
	}
	return &Register{Name: name, Email: email, Password: in.Password}, nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Login struct {
	Email    string
	Password string
}

func (in LoginInput) Validate() (*Login, []apperrors.FieldError) {
	var list errorList

	email := strings.ToLower(trimmed(in.Email))
	if !ValidEmail(email) {
		list.add("email", "a valid email address is required")
	}
	if in.Password == "" {
		list.add("password", "password is required")
	}

	if list.errs != nil {
		return nil, list.errs
	}
	return &Login{Email: email, Password: in.Password}, nil
}

type PasswordChangeInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type PasswordChange struct {
	CurrentPassword string
	NewPassword     string
}

func (in PasswordChangeInput) Validate() (*PasswordChange, []apperrors.FieldError) {
	var list errorList

	if in.CurrentPassword == "" {
		list.add("current_password", "current password is required")
	}
	if len(in.NewPassword) < 8 {
		list.add("new_password", "password must be at least 8 characters")
	} else if len(in.NewPassword) > 72 {
		list.add("new_password", "password must be at most 72 characters")
	}

	if list.errs != nil {
		return nil, list.errs
	}
	return &PasswordChange{CurrentPassword: in.CurrentPassword, NewPassword: in.NewPassword}, nil
}
