// Package auth holds Authenticator implementations.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rl1809/storefront/internal/core/domain"
)

// TrustAll accepts any well-formed credentials and fabricates a user. No
// password is checked. The user id is a name-based UUID of the email, so the
// same address maps to the same order history across logins.
type TrustAll struct{}

func NewTrustAll() TrustAll {
	return TrustAll{}
}

func (TrustAll) Authenticate(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	email := strings.TrimSpace(creds.Email)
	local, host, found := strings.Cut(email, "@")
	if !found || local == "" || host == "" {
		return domain.User{}, fmt.Errorf("%w: malformed email", domain.ErrInvalidCredentials)
	}
	if creds.Password == "" {
		return domain.User{}, fmt.Errorf("%w: empty password", domain.ErrInvalidCredentials)
	}

	name := strings.TrimSpace(creds.Name)
	if name == "" {
		name = local
	}
	return domain.User{
		ID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(email))).String(),
		Email: email,
		Name:  name,
	}, nil
}
