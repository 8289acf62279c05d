// Package services содержит реализации TokenService и PasswordService.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	svc "notesync/internal/notestore/ports/services"
	"notesync/pkg/logger"
)

const (
	methodGenerateAccessToken  = "GenerateAccessToken"
	methodGenerateRefreshToken = "GenerateRefreshToken"
	methodValidateAccessToken  = "ValidateAccessToken"

	msgTokenGenerated = "token generated"
	msgTokenExpired   = "token has expired"
	msgTokenInvalid   = "token is invalid"

	errSigningToken = "error signing token"
	errParsingToken = "error parsing token"
)

// Ошибки сервиса токенов.
var (
	ErrEmptySecret      = errors.New("empty jwt secret")
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidToken     = errors.New("invalid token")
)

// Claims полезная нагрузка токенов.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ServiceJWT выпускает HS256-токены.
type ServiceJWT struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWT создает сервис токенов.
func NewJWT(secret string, accessTTL, refreshTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (s *ServiceJWT) sign(claims Claims) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrEmptySecret
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errSigningToken, err)
	}
	return token, nil
}

// GenerateAccessToken выпускает access-токен с subject = userID.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, userID, email string) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGenerateAccessToken), zap.String("user_id", userID))

	now := s.now()
	expiresAt := now.Add(s.accessTTL)
	token, err := s.sign(Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, err
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expires_at", expiresAt))
	return token, expiresAt, nil
}

// GenerateRefreshToken выпускает refresh-токен. Уникальность обеспечивает jti.
func (s *ServiceJWT) GenerateRefreshToken(ctx context.Context, userID string) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGenerateRefreshToken), zap.String("user_id", userID))

	now := s.now()
	expiresAt := now.Add(s.refreshTTL)
	token, err := s.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, err
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expires_at", expiresAt))
	return token, expiresAt, nil
}

// ValidateAccessToken проверяет подпись и срок действия и возвращает ID пользователя.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateAccessToken))

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return "", fmt.Errorf("%s: %w", errParsingToken, ErrExpiredToken)
		}
		log.Debug(ctx, msgTokenInvalid, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errParsingToken, ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%s: %w: empty subject", errParsingToken, ErrInvalidToken)
	}
	return claims.Subject, nil
}
