// Package grpc содержит gRPC-сервер хранилища и обработчики сервисов.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"notesync/internal/notestore/adapters/services"
	"notesync/internal/notestore/domain/entities"
	"notesync/pkg/logger"
)

// Ошибки извлечения токена.
var (
	ErrMetadataNotFound   = errors.New("metadata not found in context")
	ErrAuthHeaderNotFound = errors.New("authorization header not found")
)

// Server gRPC-сервер хранилища.
type Server struct {
	server   *grpc.Server
	address  string
	listener net.Listener
}

// New создает сервер. Каждый вызов получает свой request_id в логах.
func New(address string) *Server {
	return &Server{
		server:  grpc.NewServer(grpc.ChainUnaryInterceptor(requestLogger)),
		address: address,
	}
}

// RegisterService регистрирует сервисы на сервере.
func (s *Server) RegisterService(register func(grpc.ServiceRegistrar)) {
	register(s.server)
}

// Start слушает адрес и обслуживает запросы в фоне.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve обслуживает запросы на переданном listener в фоне.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := logger.Log(ctx)
	s.listener = listener

	log.Info(ctx, "gRPC server started", zap.String("address", listener.Addr().String()))
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Error(ctx, "failed to serve gRPC", zap.Error(err))
		}
	}()
	return nil
}

// Stop дожидается завершения текущих вызовов и останавливает сервер.
func (s *Server) Stop(ctx context.Context) {
	logger.Log(ctx).Info(ctx, "stopping gRPC server")
	s.server.GracefulStop()
}

func requestLogger(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	ctx = logger.NewRequestIDContext(ctx, "")
	log := logger.Log(ctx).With(zap.String("rpc", info.FullMethod))

	resp, err := handler(ctx, req)
	if err != nil {
		log.Info(ctx, "rpc failed", zap.String("code", status.Code(err).String()), zap.Error(err))
		return nil, err
	}
	log.Debug(ctx, "rpc completed")
	return resp, nil
}

// ExtractToken достает токен из заголовка authorization, снимая префикс Bearer.
func ExtractToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", ErrMetadataNotFound
	}

	values := md.Get("authorization")
	if len(values) == 0 || values[0] == "" {
		return "", ErrAuthHeaderNotFound
	}

	return strings.TrimPrefix(values[0], "Bearer "), nil
}

// toStatus переводит доменные ошибки в коды gRPC. Сообщение видит пользователь.
func toStatus(err error) error {
	switch {
	case errors.Is(err, entities.ErrEmptyNoteText):
		return status.Error(codes.InvalidArgument, "Note text cannot be empty")
	case errors.Is(err, entities.ErrInvalidEmail):
		return status.Error(codes.InvalidArgument, "Invalid email address")
	case errors.Is(err, entities.ErrPasswordTooShort):
		return status.Error(codes.InvalidArgument, "Password must be at least 8 characters")
	case errors.Is(err, entities.ErrEmailAlreadyExists):
		return status.Error(codes.AlreadyExists, "A user with this email already exists")
	case errors.Is(err, entities.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "Invalid email or password")
	case errors.Is(err, entities.ErrTokenNotFound), errors.Is(err, entities.ErrTokenRevoked):
		return status.Error(codes.Unauthenticated, "Session is no longer valid")
	case errors.Is(err, services.ErrExpiredToken):
		return status.Error(codes.Unauthenticated, "Session expired")
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, ErrMetadataNotFound), errors.Is(err, ErrAuthHeaderNotFound):
		return status.Error(codes.Unauthenticated, "Authentication required")
	case errors.Is(err, entities.ErrForeignOwner):
		return status.Error(codes.PermissionDenied, "Notes of another user are not accessible")
	case errors.Is(err, entities.ErrNoteNotFound):
		return status.Error(codes.NotFound, "Note not found")
	case errors.Is(err, entities.ErrUserNotFound):
		return status.Error(codes.NotFound, "User not found")
	default:
		return status.Error(codes.Internal, "Internal error")
	}
}
