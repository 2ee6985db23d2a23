package domain

import "errors"

// ErrIdentityEmailEmpty is returned when an identity carries no email.
// Every user-scoped record is keyed by email, so an identity without one
// cannot act.
var ErrIdentityEmailEmpty = errors.New("identity email cannot be empty")

// Identity is the authenticated principal as reported by the external
// identity provider. The application never stores identities; it only
// reads them from verified provider tokens on each request.
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// Validate checks if the Identity is usable for user-scoped operations.
func (i *Identity) Validate() error {
	if i.Email == "" {
		return ErrIdentityEmailEmpty
	}
	return nil
}
