// Package storetest поднимает хранилище заметок в памяти поверх bufconn для тестов.
package storetest

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	grpcAdapter "notesync/internal/notestore/adapters/grpc"
	"notesync/internal/notestore/adapters/memory"
	"notesync/internal/notestore/adapters/services"
	"notesync/internal/notestore/app"
	authv1 "notesync/pkg/api/auth/v1"
	notesv1 "notesync/pkg/api/notes/v1"
)

const bufSize = 1024 * 1024

// Secret ключ подписи токенов тестового хранилища.
const Secret = "storetest-secret"

// Options параметры тестового хранилища.
type Options struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Store запущенное хранилище и соединение с ним.
type Store struct {
	Conn  *grpc.ClientConn
	Auth  *app.AuthUseCase
	Notes *app.NoteUseCase
}

// Start запускает хранилище и закрывает его по окончании теста.
func Start(t *testing.T, opts Options) *Store {
	t.Helper()

	if opts.AccessTokenTTL == 0 {
		opts.AccessTokenTTL = 15 * time.Minute
	}
	if opts.RefreshTokenTTL == 0 {
		opts.RefreshTokenTTL = time.Hour
	}

	repos := memory.NewRepositoryFactory()
	tokenSvc := services.NewJWT(Secret, opts.AccessTokenTTL, opts.RefreshTokenTTL)
	authUC := app.NewAuthUseCase(
		repos.UserRepository(),
		repos.TokenRepository(),
		tokenSvc,
		services.NewBcrypt(bcrypt.MinCost),
	)
	notesUC := app.NewNoteUseCase(repos.NoteRepository(), tokenSvc)

	lis := bufconn.Listen(bufSize)
	server := grpcAdapter.New("bufnet")
	server.RegisterService(func(r grpc.ServiceRegistrar) {
		authv1.RegisterAuthServiceServer(r, grpcAdapter.NewAuthHandler(authUC))
		notesv1.RegisterNoteServiceServer(r, grpcAdapter.NewNoteHandler(notesUC))
	})
	require.NoError(t, server.Serve(context.Background(), lis))

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		server.Stop(context.Background())
	})

	return &Store{Conn: conn, Auth: authUC, Notes: notesUC}
}
