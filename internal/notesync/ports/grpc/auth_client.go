// Package grpc определяет интерфейсы клиентов удаленного хранилища.
package grpc

import (
	"context"

	authv1 "notesync/pkg/api/auth/v1"
)

// AuthServiceClient клиент сервиса авторизации удаленного хранилища.
type AuthServiceClient interface {
	Register(ctx context.Context, email, password string) (*authv1.RegisterResponse, error)

	Login(ctx context.Context, email, password string) (*authv1.TokenResponse, error)

	RefreshTokens(ctx context.Context, refreshToken string) (*authv1.TokenResponse, error)

	Logout(ctx context.Context, refreshToken string) error

	GetUserProfile(ctx context.Context, accessToken string) (*authv1.UserProfileResponse, error)

	Close() error
}
