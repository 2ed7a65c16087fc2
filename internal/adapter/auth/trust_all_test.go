package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/storefront/internal/core/domain"
)

func TestTrustAll_AcceptsAnyPassword(t *testing.T) {
	user, err := NewTrustAll().Authenticate(context.Background(), domain.Credentials{Email: " ada@example.com ", Password: "anything"})

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "ada", user.Name)
	_, err = uuid.Parse(user.ID)
	assert.NoError(t, err)
}

func TestTrustAll_UsesGivenName(t *testing.T) {
	user, err := NewTrustAll().Authenticate(context.Background(), domain.Credentials{Email: "a@b.c", Password: "x", Name: "Ada Lovelace"})

	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.Name)
}

func TestTrustAll_StableIDPerEmail(t *testing.T) {
	ctx := context.Background()

	first, _ := NewTrustAll().Authenticate(ctx, domain.Credentials{Email: "a@b.c", Password: "x"})
	again, _ := NewTrustAll().Authenticate(ctx, domain.Credentials{Email: "A@B.C", Password: "other"})
	other, _ := NewTrustAll().Authenticate(ctx, domain.Credentials{Email: "z@b.c", Password: "x"})

	assert.Equal(t, first.ID, again.ID)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestTrustAll_RejectsMalformed(t *testing.T) {
	for _, creds := range []domain.Credentials{
		{Email: "", Password: "x"},
		{Email: "ada", Password: "x"},
		{Email: "@example.com", Password: "x"},
		{Email: "ada@", Password: "x"},
		{Email: "ada@example.com", Password: ""},
	} {
		_, err := NewTrustAll().Authenticate(context.Background(), creds)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "creds %+v", creds)
	}
}
