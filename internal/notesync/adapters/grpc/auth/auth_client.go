// Package auth содержит клиент сервиса авторизации удаленного хранилища.
package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"notesync/internal/notesync/config"
	authv1 "notesync/pkg/api/auth/v1"
	"notesync/pkg/logger"
)

const (
	LogMethodRegister       = "Register"
	LogMethodLogin          = "Login"
	LogMethodRefreshTokens  = "RefreshTokens"
	LogMethodLogout         = "Logout"
	LogMethodGetUserProfile = "GetUserProfile"

	ErrorFailedToConnect       = "failed to connect to auth service"
	ErrorFailedToRegister      = "failed to register user"
	ErrorFailedToLogin         = "failed to login"
	ErrorFailedToRefreshTokens = "failed to update tokens"
	ErrorFailedToLogout        = "failed to logout"
	ErrorFailedToGetProfile    = "failed to get user profile"
)

// ErrAuthServiceConnectionTimeout сервис авторизации не стал доступен за ConnectTimeout.
var ErrAuthServiceConnectionTimeout = errors.New("connection timeout: failed to connect to auth service")

// Client клиент сервиса авторизации.
type Client struct {
	authClient authv1.AuthServiceClient
	conn       *grpc.ClientConn
}

// NewAuthClient подключается к сервису авторизации и ждет готовности соединения.
func NewAuthClient(ctx context.Context, cfg *config.GRPCClientConfig) (*Client, error) {
	conn, err := grpc.NewClient(
		cfg.AuthService.GetAddress(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.AuthService.ConnectTimeout)
	defer cancel()

	conn.Connect()
	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			break
		}
		if !conn.WaitForStateChange(ctx, state) {
			if closeErr := conn.Close(); closeErr != nil {
				return nil, fmt.Errorf("failed to close connection: %w", closeErr)
			}
			return nil, ErrAuthServiceConnectionTimeout
		}
	}

	return &Client{
		authClient: authv1.NewAuthServiceClient(conn),
		conn:       conn,
	}, nil
}

// NewAuthClientWithConn создает клиент поверх готового соединения. Соединение не закрывается в Close.
func NewAuthClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{authClient: authv1.NewAuthServiceClient(cc)}
}

// Register регистрирует пользователя.
func (c *Client) Register(ctx context.Context, email, password string) (*authv1.RegisterResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRegister))

	resp, err := c.authClient.Register(ctx, &authv1.RegisterRequest{Email: email, Password: password})
	if err != nil {
		log.Warn(ctx, ErrorFailedToRegister, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToRegister, err)
	}

	return resp, nil
}

// Login обменивает учетные данные на пару токенов.
func (c *Client) Login(ctx context.Context, email, password string) (*authv1.TokenResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodLogin))

	resp, err := c.authClient.Login(ctx, &authv1.LoginRequest{Email: email, Password: password})
	if err != nil {
		log.Warn(ctx, ErrorFailedToLogin, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToLogin, err)
	}

	return resp, nil
}

// RefreshTokens обновляет пару токенов.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (*authv1.TokenResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRefreshTokens))

	resp, err := c.authClient.RefreshTokens(ctx, &authv1.RefreshTokensRequest{RefreshToken: refreshToken})
	if err != nil {
		log.Warn(ctx, ErrorFailedToRefreshTokens, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToRefreshTokens, err)
	}

	return resp, nil
}

// Logout отзывает refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodLogout))

	if _, err := c.authClient.Logout(ctx, &authv1.LogoutRequest{RefreshToken: refreshToken}); err != nil {
		log.Warn(ctx, ErrorFailedToLogout, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToLogout, err)
	}

	return nil
}

// GetUserProfile возвращает профиль владельца токена.
func (c *Client) GetUserProfile(ctx context.Context, accessToken string) (*authv1.UserProfileResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGetUserProfile))

	outCtx := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+accessToken)

	resp, err := c.authClient.GetUserProfile(outCtx, &authv1.Empty{})
	if err != nil {
		log.Debug(ctx, ErrorFailedToGetProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGetProfile, err)
	}

	return resp, nil
}

// Close закрывает собственное соединение клиента.
func (c *Client) Close() error {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("failed to close grpc connection: %w", err)
		}
	}
	return nil
}
