package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notesync/internal/notestore/domain/entities"
	"notesync/internal/notestore/ports/repositories"
	"notesync/pkg/logger"
)

// uniqueViolation код ошибки Postgres для нарушения уникального индекса.
const uniqueViolation = "23505"

// UserRepository хранит пользователей в таблице users.
type UserRepository struct {
	pool Pool
}

// NewUserRepository создает хранилище пользователей.
func NewUserRepository(pool Pool) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create сохраняет пользователя и присваивает ему ID.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (id, email, password_hash, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, email, password_hash, created_at
    `

	var created entities.User
	err := r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(
		&created.ID,
		&created.Email,
		&created.PasswordHash,
		&created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			log.Debug(ctx, "email already registered")
			return nil, entities.ErrEmailAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &created, nil
}

// FindByID ищет пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	query := `
        SELECT id, email, password_hash, created_at
        FROM users
        WHERE id = $1
    `
	return r.findOne(ctx, "FindByID", query, id)
}

// FindByEmail ищет пользователя по email без учета регистра.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
        SELECT id, email, password_hash, created_at
        FROM users
        WHERE LOWER(email) = LOWER($1)
    `
	return r.findOne(ctx, "FindByEmail", query, email)
}

func (r *UserRepository) findOne(ctx context.Context, method, query string, arg string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	var user entities.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found")
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error querying user", zap.Error(err))
		return nil, fmt.Errorf("error querying user: %w", err)
	}

	return &user, nil
}
