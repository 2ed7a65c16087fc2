package port

import (
	"context"

	"github.com/rl1809/storefront/internal/core/domain"
)

type Authenticator interface {
	// Authenticate verifies credentials and returns the session user
	Authenticate(ctx context.Context, creds domain.Credentials) (domain.User, error)
}
