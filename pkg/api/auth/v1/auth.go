// Package authv1 описывает сервис auth.v1.AuthService.
package authv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"notesync/pkg/api/codec"
)

// ServiceName полное имя сервиса.
const ServiceName = "auth.v1.AuthService"

// Полные имена методов.
const (
	AuthServiceRegisterFullMethodName       = "/" + ServiceName + "/Register"
	AuthServiceLoginFullMethodName          = "/" + ServiceName + "/Login"
	AuthServiceRefreshTokensFullMethodName  = "/" + ServiceName + "/RefreshTokens"
	AuthServiceLogoutFullMethodName         = "/" + ServiceName + "/Logout"
	AuthServiceGetUserProfileFullMethodName = "/" + ServiceName + "/GetUserProfile"
)

// RegisterRequest запрос регистрации.
type RegisterRequest struct {
	Email    string `cbor:"email"`
	Password string `cbor:"password"`
}

// RegisterResponse созданный пользователь. Сессию регистрация не открывает.
type RegisterResponse struct {
	UserID string `cbor:"user_id"`
	Email  string `cbor:"email"`
}

// LoginRequest запрос входа.
type LoginRequest struct {
	Email    string `cbor:"email"`
	Password string `cbor:"password"`
}

// RefreshTokensRequest запрос обновления пары токенов.
type RefreshTokensRequest struct {
	RefreshToken string `cbor:"refresh_token"`
}

// TokenResponse пара токенов.
type TokenResponse struct {
	UserID       string    `cbor:"user_id"`
	AccessToken  string    `cbor:"access_token"`
	RefreshToken string    `cbor:"refresh_token"`
	ExpiresAt    time.Time `cbor:"expires_at"`
}

// LogoutRequest запрос на отзыв refresh-токена.
type LogoutRequest struct {
	RefreshToken string `cbor:"refresh_token"`
}

// UserProfileResponse профиль владельца access-токена.
type UserProfileResponse struct {
	UserID    string    `cbor:"user_id"`
	Email     string    `cbor:"email"`
	CreatedAt time.Time `cbor:"created_at"`
}

// Empty пустое сообщение.
type Empty struct{}

// AuthServiceClient клиентский интерфейс.
type AuthServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	RefreshTokens(ctx context.Context, in *RefreshTokensRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*Empty, error)
	GetUserProfile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserProfileResponse, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAuthServiceClient создает клиента поверх соединения.
func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, AuthServiceRegisterFullMethodName, in, opts)
}

func (c *authServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, AuthServiceLoginFullMethodName, in, opts)
}

func (c *authServiceClient) RefreshTokens(ctx context.Context, in *RefreshTokensRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, AuthServiceRefreshTokensFullMethodName, in, opts)
}

func (c *authServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, AuthServiceLogoutFullMethodName, in, opts)
}

func (c *authServiceClient) GetUserProfile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserProfileResponse, error) {
	return invoke[UserProfileResponse](ctx, c.cc, AuthServiceGetUserProfileFullMethodName, in, opts)
}

// AuthServiceServer серверный интерфейс.
type AuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RefreshTokens(context.Context, *RefreshTokensRequest) (*TokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*Empty, error)
	GetUserProfile(context.Context, *Empty) (*UserProfileResponse, error)
}

// UnimplementedAuthServiceServer отвечает Unimplemented на все методы.
type UnimplementedAuthServiceServer struct{}

func (UnimplementedAuthServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}

func (UnimplementedAuthServiceServer) Login(context.Context, *LoginRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedAuthServiceServer) RefreshTokens(context.Context, *RefreshTokensRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshTokens not implemented")
}

func (UnimplementedAuthServiceServer) Logout(context.Context, *LogoutRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}

func (UnimplementedAuthServiceServer) GetUserProfile(context.Context, *Empty) (*UserProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUserProfile not implemented")
}

// RegisterAuthServiceServer регистрирует реализацию на сервере.
func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func unary[Req any, Resp any](
	fullMethod string,
	call func(AuthServiceServer, context.Context, *Req) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AuthServiceDesc описание сервиса для grpc.Server.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(AuthServiceRegisterFullMethodName, AuthServiceServer.Register)},
		{MethodName: "Login", Handler: unary(AuthServiceLoginFullMethodName, AuthServiceServer.Login)},
		{MethodName: "RefreshTokens", Handler: unary(AuthServiceRefreshTokensFullMethodName, AuthServiceServer.RefreshTokens)},
		{MethodName: "Logout", Handler: unary(AuthServiceLogoutFullMethodName, AuthServiceServer.Logout)},
		{MethodName: "GetUserProfile", Handler: unary(AuthServiceGetUserProfileFullMethodName, AuthServiceServer.GetUserProfile)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auth/v1/auth.cbor",
}
