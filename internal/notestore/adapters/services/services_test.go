package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notesync/internal/notestore/adapters/services"
	"notesync/internal/notestore/domain/entities"
)

func TestServiceJWT_AccessTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := services.NewJWT("secret", time.Minute, time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken(ctx, "user-1", "ann@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 5*time.Second)

	userID, err := svc.ValidateAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestServiceJWT_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()

	expired, _, err := services.NewJWT("secret", -time.Minute, time.Hour).GenerateAccessToken(ctx, "u", "e")
	require.NoError(t, err)

	foreign, _, err := services.NewJWT("other", time.Minute, time.Hour).GenerateAccessToken(ctx, "u", "e")
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name        string
		token       string
		expectedErr error
	}{
		{name: "expired", token: expired, expectedErr: services.ErrExpiredToken},
		{name: "foreign signature", token: foreign, expectedErr: services.ErrInvalidToken},
		{name: "none algorithm", token: noneAlg, expectedErr: services.ErrInvalidToken},
		{name: "garbage", token: "not-a-jwt", expectedErr: services.ErrInvalidToken},
	}

	svc := services.NewJWT("secret", time.Minute, time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateAccessToken(ctx, tt.token)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestServiceJWT_RefreshTokensAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := services.NewJWT("secret", time.Minute, time.Hour)

	first, _, err := svc.GenerateRefreshToken(ctx, "u")
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken(ctx, "u")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestServiceJWT_EmptySecret(t *testing.T) {
	_, _, err := services.NewJWT("", time.Minute, time.Hour).GenerateAccessToken(context.Background(), "u", "e")
	assert.ErrorIs(t, err, services.ErrEmptySecret)
}

func TestServiceBcrypt(t *testing.T) {
	ctx := context.Background()
	svc := services.NewBcrypt(bcrypt.MinCost)

	_, err := svc.Hash(ctx, "short")
	assert.ErrorIs(t, err, entities.ErrPasswordTooShort)

	hash, err := svc.Hash(ctx, "password1")
	require.NoError(t, err)

	ok, err := svc.Verify(ctx, "password1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify(ctx, "password2", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Verify(ctx, "", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}
