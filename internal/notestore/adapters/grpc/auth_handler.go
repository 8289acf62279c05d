package grpc

import (
	"context"

	"go.uber.org/zap"

	"notesync/internal/notestore/app"
	authv1 "notesync/pkg/api/auth/v1"
	"notesync/pkg/logger"
)

// AuthHandler обслуживает auth.v1.AuthService.
type AuthHandler struct {
	authv1.UnimplementedAuthServiceServer
	auth *app.AuthUseCase
}

// NewAuthHandler создает обработчик.
func NewAuthHandler(auth *app.AuthUseCase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register создает учетную запись.
func (h *AuthHandler) Register(ctx context.Context, req *authv1.RegisterRequest) (*authv1.RegisterResponse, error) {
	user, err := h.auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		logger.Log(ctx).Debug(ctx, "register rejected", zap.Error(err))
		return nil, toStatus(err)
	}
	return &authv1.RegisterResponse{UserID: user.ID, Email: user.Email}, nil
}

// Login выдает пару токенов.
func (h *AuthHandler) Login(ctx context.Context, req *authv1.LoginRequest) (*authv1.TokenResponse, error) {
	pair, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return tokenResponse(pair), nil
}

// RefreshTokens обменивает refresh-токен на новую пару.
func (h *AuthHandler) RefreshTokens(ctx context.Context, req *authv1.RefreshTokensRequest) (*authv1.TokenResponse, error) {
	pair, err := h.auth.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return tokenResponse(pair), nil
}

// Logout отзывает refresh-токен.
func (h *AuthHandler) Logout(ctx context.Context, req *authv1.LogoutRequest) (*authv1.Empty, error) {
	if err := h.auth.Logout(ctx, req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}
	return &authv1.Empty{}, nil
}

// GetUserProfile возвращает владельца access-токена.
func (h *AuthHandler) GetUserProfile(ctx context.Context, _ *authv1.Empty) (*authv1.UserProfileResponse, error) {
	token, err := ExtractToken(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	user, err := h.auth.Profile(ctx, token)
	if err != nil {
		return nil, toStatus(err)
	}
	return &authv1.UserProfileResponse{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

func tokenResponse(pair *app.TokenPair) *authv1.TokenResponse {
	return &authv1.TokenResponse{
		UserID:       pair.UserID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
}
