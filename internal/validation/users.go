package validation

import (
	"strings"

	"taskhub/backend/internal/apperrors"
)

type ProfileUpdateInput struct {
	Name      *string        `json:"name"`
	Email     *string        `json:"email"`
	AvatarURL NullableString `json:"avatar_url"`
}

// ProfilePatch carries only the supplied fields. An explicit null
// avatar_url clears the stored URL.
type ProfilePatch struct {
	Name      *string
	Email     *string
	AvatarURL NullableString
}

func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Email == nil && !p.AvatarURL.Set
}

func (in ProfileUpdateInput) Validate() (*ProfilePatch, []apperrors.FieldError) {
	var list errorList
	var out ProfilePatch

	if in.Name != nil {
		name := trimmed(*in.Name)
		if len(name) < 2 || len(name) > 100 {
			list.add("name", "name must be between 2 and 100 characters")
		} else {
			out.Name = &name
		}
	}

	if in.Email != nil {
		email := strings.ToLower(trimmed(*in.Email))
		if !ValidEmail(email) {
			list.add("email", "a valid email address is required")
		} else {
			out.Email = &email
		}
	}

	if in.AvatarURL.Set {
		out.AvatarURL = in.AvatarURL
		if in.AvatarURL.Valid && len(in.AvatarURL.Value) > 500 {
			out.AvatarURL = NullableString{}
			list.add("avatar_url", "avatar_url must be at most 500 characters")
		}
	}

	if list.errs != nil {
		return nil, list.errs
	}
	return &out, nil
}
