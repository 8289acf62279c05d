package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notesync/internal/notestore/domain/entities"
	"notesync/internal/notestore/ports/repositories"
	"notesync/pkg/logger"
)

// TokenRepository хранит refresh-токены в таблице refresh_tokens.
type TokenRepository struct {
	pool Pool
}

// NewTokenRepository создает хранилище токенов.
func NewTokenRepository(pool Pool) repositories.TokenRepository {
	return &TokenRepository{pool: pool}
}

// Store сохраняет токен. Повторное сохранение того же токена заменяет запись.
func (r *TokenRepository) Store(ctx context.Context, token *entities.RefreshToken) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "Store"))

	query := `
        INSERT INTO refresh_tokens (token, user_id, expires_at, is_revoked)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (token) DO UPDATE
        SET user_id = EXCLUDED.user_id, expires_at = EXCLUDED.expires_at, is_revoked = EXCLUDED.is_revoked
    `

	if _, err := r.pool.Exec(ctx, query, token.Token, token.UserID, token.ExpiresAt, token.Revoked); err != nil {
		log.Error(ctx, "error storing refresh token", zap.Error(err))
		return fmt.Errorf("error storing refresh token: %w", err)
	}
	return nil
}

// Find возвращает токен.
func (r *TokenRepository) Find(ctx context.Context, token string) (*entities.RefreshToken, error) {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "Find"))

	query := `
        SELECT token, user_id, expires_at, is_revoked
        FROM refresh_tokens
        WHERE token = $1
    `

	var stored entities.RefreshToken
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&stored.Token,
		&stored.UserID,
		&stored.ExpiresAt,
		&stored.Revoked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "token not found")
			return nil, entities.ErrTokenNotFound
		}
		log.Error(ctx, "error finding refresh token", zap.Error(err))
		return nil, fmt.Errorf("error querying refresh token: %w", err)
	}

	return &stored, nil
}

// Revoke помечает токен отозванным.
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("repository", "token"), zap.String("method", "Revoke"))

	query := `
        UPDATE refresh_tokens
        SET is_revoked = true
        WHERE token = $1
    `

	result, err := r.pool.Exec(ctx, query, token)
	if err != nil {
		log.Error(ctx, "error revoking refresh token", zap.Error(err))
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "token not found for revocation")
		return entities.ErrTokenNotFound
	}
	return nil
}
