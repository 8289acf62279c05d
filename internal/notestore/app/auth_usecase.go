// Package app содержит бизнес-логику хранилища: учетные записи и заметки.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"notesync/internal/notestore/domain/entities"
	"notesync/internal/notestore/ports/repositories"
	"notesync/internal/notestore/ports/services"
	"notesync/pkg/logger"
)

const (
	methodRegister      = "Register"
	methodLogin         = "Login"
	methodRefreshTokens = "RefreshTokens"
	methodLogout        = "Logout"

	msgUserRegistered   = "user registered"
	msgUserLoggedIn     = "user logged in"
	msgTokensRefreshed  = "tokens refreshed"
	msgUserLoggedOut    = "user logged out"
	msgLoginNonExistent = "login attempt with unknown email"
	msgLoginBadPassword = "login attempt with wrong password"

	errCtxValidatingEmail    = "validating email"
	errCtxValidatingPassword = "validating password"
	errCtxCreatingUser       = "creating user"
	errCtxHashingPassword    = "hashing password"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxFindingToken       = "finding refresh token"
	errCtxRevokingToken      = "revoking refresh token"
	errCtxGeneratingTokens   = "generating tokens"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// TokenPair выданная пара токенов.
type TokenPair struct {
	UserID       string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthUseCase регистрация, вход и управление сессиями.
type AuthUseCase struct {
	users     repositories.UserRepository
	tokens    repositories.TokenRepository
	tokenSvc  services.TokenService
	passwords services.PasswordService
}

// NewAuthUseCase создает AuthUseCase.
func NewAuthUseCase(
	users repositories.UserRepository,
	tokens repositories.TokenRepository,
	tokenSvc services.TokenService,
	passwords services.PasswordService,
) *AuthUseCase {
	return &AuthUseCase{
		users:     users,
		tokens:    tokens,
		tokenSvc:  tokenSvc,
		passwords: passwords,
	}
}

// Register создает учетную запись. Сессию не открывает.
func (a *AuthUseCase) Register(ctx context.Context, email, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister))

	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, entities.ErrInvalidEmail)
	}
	if len(password) < entities.MinPasswordLength {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrPasswordTooShort)
	}

	hash, err := a.passwords.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user, err := a.users.Create(ctx, &entities.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("user_id", user.ID))
	return user, nil
}

// Login проверяет учетные данные и выдает пару токенов.
func (a *AuthUseCase) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin))

	user, err := a.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, entities.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := a.passwords.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Debug(ctx, msgLoginBadPassword, zap.String("user_id", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, entities.ErrInvalidCredentials)
	}

	pair, err := a.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("user_id", user.ID))
	return pair, nil
}

// RefreshTokens отзывает refresh-токен и выдает новую пару.
func (a *AuthUseCase) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefreshTokens))

	stored, err := a.tokens.Find(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingToken, err)
	}
	if stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, fmt.Errorf("%s: %w", errCtxFindingToken, entities.ErrTokenRevoked)
	}

	user, err := a.users.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if err := a.tokens.Revoke(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	pair, err := a.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgTokensRefreshed, zap.String("user_id", user.ID))
	return pair, nil
}

// Logout отзывает refresh-токен. Неизвестный токен не считается ошибкой.
func (a *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))

	if err := a.tokens.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, entities.ErrTokenNotFound) {
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// Profile возвращает владельца access-токена.
func (a *AuthUseCase) Profile(ctx context.Context, accessToken string) (*entities.User, error) {
	userID, err := a.tokenSvc.ValidateAccessToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	return user, nil
}

func (a *AuthUseCase) issue(ctx context.Context, user *entities.User) (*TokenPair, error) {
	access, expiresAt, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	refresh, refreshExpiresAt, err := a.tokenSvc.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	if err := a.tokens.Store(ctx, &entities.RefreshToken{
		Token:     refresh,
		UserID:    user.ID,
		ExpiresAt: refreshExpiresAt,
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	return &TokenPair{
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}
