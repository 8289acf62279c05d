// Package session реализует Session Store: хранит текущего пользователя и учетные
// данные, разрешает сессию и уведомляет подписчиков о смене состояния.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"notesync/internal/notesync/app/errmsg"
	"notesync/internal/notesync/domain/entities"
	cachePort "notesync/internal/notesync/ports/cache"
	grpcPort "notesync/internal/notesync/ports/grpc"
	"notesync/internal/notesync/resilience"
	authv1 "notesync/pkg/api/auth/v1"
	"notesync/pkg/logger"
)

const (
	LogMethodResolve  = "ResolveSession"
	LogMethodLogin    = "Login"
	LogMethodRegister = "Register"
	LogMethodLogout   = "Logout"

	LogStateChanged        = "session state changed"
	LogSessionResolved     = "session resolved"
	LogSessionAbsent       = "no session"
	LogTokenRefreshed      = "access token refreshed"
	LogTokenRefreshFailed  = "access token refresh failed"
	LogProfileFailed       = "failed to fetch user profile"
	LogProfileCacheFailed  = "profile cache unavailable"
	LogRemoteLogoutFailed  = "remote session invalidation failed"
	LogLoginFailed         = "login failed"
	LogRegistrationFailed  = "registration failed"
	LogLoginAfterRegFailed = "login after registration failed"

	// MsgSessionNotResolved учетные данные приняты, но профиль получить не удалось.
	MsgSessionNotResolved = "Signed in, but the session could not be loaded"

	profileKeyPrefix   = "notesync:profile:"
	defaultRefreshSkew = 30 * time.Second
)

// Options параметры Session Store.
type Options struct {
	// ProfileTTL время жизни профиля в кэше. Ноль означает время жизни по умолчанию кэша.
	ProfileTTL time.Duration
	// RefreshSkew запас до истечения токена, при котором токен обновляется заранее.
	RefreshSkew time.Duration
}

type credentials struct {
	access  string
	refresh string
}

type listener struct {
	id int
	fn func(entities.SessionState)
}

// Store Session Store.
type Store struct {
	auth       grpcPort.AuthServiceClient
	cache      cachePort.Cache
	resilience *resilience.ServiceResilience
	opts       Options
	now        func() time.Time

	mu    sync.RWMutex
	state entities.SessionState
	creds credentials

	// transitionMu упорядочивает смену состояния и доставку слушателям.
	transitionMu sync.Mutex
	listenersMu  sync.Mutex
	listeners    []listener
	nextID       int
}

// New создает Session Store в состоянии Resolving.
func New(auth grpcPort.AuthServiceClient, cache cachePort.Cache, res *resilience.ServiceResilience, opts Options) *Store {
	if opts.RefreshSkew <= 0 {
		opts.RefreshSkew = defaultRefreshSkew
	}
	return &Store{
		auth:       auth,
		cache:      cache,
		resilience: res,
		opts:       opts,
		now:        time.Now,
		state:      entities.Resolving(),
	}
}

// State возвращает текущее состояние.
func (s *Store) State() entities.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// AccessToken возвращает текущий токен доступа или пустую строку.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.access
}

// Subscribe регистрирует слушателя. Слушатели вызываются синхронно в порядке
// подписки и не должны вызывать Login, Register, Logout или ResolveSession.
func (s *Store) Subscribe(fn func(entities.SessionState)) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// ResolveSession запрашивает у хранилища текущую сессию. Любой сбой означает
// отсутствие сессии и ошибкой не считается.
func (s *Store) ResolveSession(ctx context.Context) *entities.Identity {
	s.setState(ctx, entities.Resolving())
	return s.settle(ctx)
}

// Login входит в систему. При ошибке состояние не меняется.
func (s *Store) Login(ctx context.Context, email, password string) entities.Result[entities.Void] {
	log := logger.Log(ctx).With(zap.String("method", LogMethodLogin))

	tokens, err := resilience.ExecuteOnce(ctx, s.resilience, LogMethodLogin, func() (*authv1.TokenResponse, error) {
		return s.auth.Login(ctx, email, password)
	})
	if err != nil {
		message := errmsg.Describe(err)
		log.Info(ctx, LogLoginFailed, zap.String("reason", message))
		return entities.Err[entities.Void](message)
	}

	s.mu.Lock()
	s.creds = credentials{access: tokens.AccessToken, refresh: tokens.RefreshToken}
	s.mu.Unlock()

	if s.ResolveSession(ctx) == nil {
		return entities.Err[entities.Void](MsgSessionNotResolved)
	}
	return entities.Ok(entities.Void{})
}

// Register регистрирует пользователя и входит с теми же учетными данными.
// Ошибка входа после успешной регистрации возвращается как есть.
func (s *Store) Register(ctx context.Context, email, password string) entities.Result[entities.Void] {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRegister))

	_, err := resilience.ExecuteOnce(ctx, s.resilience, LogMethodRegister, func() (*authv1.RegisterResponse, error) {
		return s.auth.Register(ctx, email, password)
	})
	if err != nil {
		message := errmsg.Describe(err)
		log.Info(ctx, LogRegistrationFailed, zap.String("reason", message))
		return entities.Err[entities.Void](message)
	}

	result := s.Login(ctx, email, password)
	if !result.IsOk() {
		log.Warn(ctx, LogLoginAfterRegFailed, zap.String("reason", result.Message()))
	}
	return result
}

// Logout безусловно очищает сессию локально, затем пытается отозвать ее в хранилище.
func (s *Store) Logout(ctx context.Context) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodLogout))

	s.mu.Lock()
	creds := s.creds
	s.creds = credentials{}
	s.mu.Unlock()

	s.setState(ctx, entities.Resolving())

	if creds.refresh != "" {
		err := s.resilience.ExecuteWithResilience(ctx, LogMethodLogout, func() error {
			return s.auth.Logout(ctx, creds.refresh)
		})
		if err != nil {
			log.Warn(ctx, LogRemoteLogoutFailed, zap.Error(err))
		}
	}
	if creds.access != "" {
		if err := s.cache.Delete(ctx, profileKey(creds.access)); err != nil {
			log.Warn(ctx, LogProfileCacheFailed, zap.Error(err))
		}
	}

	s.settle(ctx)
}

// settle разрешает сессию и фиксирует итоговое состояние.
func (s *Store) settle(ctx context.Context) *entities.Identity {
	log := logger.Log(ctx).With(zap.String("method", LogMethodResolve))

	identity := s.resolve(ctx)
	if identity == nil {
		log.Debug(ctx, LogSessionAbsent)
		s.setState(ctx, entities.Anonymous())
		return nil
	}

	log.Info(ctx, LogSessionResolved, zap.String("user_id", identity.ID))
	s.setState(ctx, entities.Authenticated(*identity))
	return identity
}

func (s *Store) resolve(ctx context.Context) *entities.Identity {
	log := logger.Log(ctx).With(zap.String("method", LogMethodResolve))

	s.mu.RLock()
	creds := s.creds
	s.mu.RUnlock()

	if creds.access == "" {
		return nil
	}

	if s.expiresSoon(creds.access) {
		refreshed, ok := s.refresh(ctx, creds)
		if !ok {
			return nil
		}
		creds = refreshed
	}

	key := profileKey(creds.access)
	if cached, err := s.cache.Get(ctx, key); err != nil {
		log.Warn(ctx, LogProfileCacheFailed, zap.Error(err))
	} else if cached != "" {
		var identity entities.Identity
		if err := json.Unmarshal([]byte(cached), &identity); err == nil && identity.ID != "" {
			return &identity
		}
	}

	profile, err := resilience.Execute(ctx, s.resilience, LogMethodResolve, func() (*authv1.UserProfileResponse, error) {
		return s.auth.GetUserProfile(ctx, creds.access)
	})
	if err != nil {
		log.Debug(ctx, LogProfileFailed, zap.Error(err))
		if status.Code(err) == codes.Unauthenticated {
			s.dropCredentials(creds)
		}
		return nil
	}

	identity := &entities.Identity{ID: profile.UserID, Email: profile.Email}
	if data, err := json.Marshal(identity); err == nil {
		if err := s.cache.Set(ctx, key, string(data), s.opts.ProfileTTL); err != nil {
			log.Warn(ctx, LogProfileCacheFailed, zap.Error(err))
		}
	}
	return identity
}

func (s *Store) refresh(ctx context.Context, creds credentials) (credentials, bool) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodResolve))

	if creds.refresh == "" {
		s.dropCredentials(creds)
		return credentials{}, false
	}

	tokens, err := resilience.ExecuteOnce(ctx, s.resilience, LogMethodResolve, func() (*authv1.TokenResponse, error) {
		return s.auth.RefreshTokens(ctx, creds.refresh)
	})
	if err != nil {
		log.Info(ctx, LogTokenRefreshFailed, zap.Error(err))
		s.dropCredentials(creds)
		return credentials{}, false
	}

	next := credentials{access: tokens.AccessToken, refresh: tokens.RefreshToken}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds != creds {
		return credentials{}, false
	}
	s.creds = next
	log.Debug(ctx, LogTokenRefreshed)
	return next, true
}

// dropCredentials забывает учетные данные, если их не успели заменить.
func (s *Store) dropCredentials(creds credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == creds {
		s.creds = credentials{}
	}
}

// expiresSoon читает exp без проверки подписи: подпись проверяет хранилище.
func (s *Store) expiresSoon(token string) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !s.now().Add(s.opts.RefreshSkew).Before(claims.ExpiresAt.Time)
}

func (s *Store) setState(ctx context.Context, next entities.SessionState) {
	s.transitionMu.Lock()
	defer s.transitionMu.Unlock()

	s.mu.Lock()
	prev := s.state
	s.state = next
	s.mu.Unlock()

	logger.Log(ctx).Debug(ctx, LogStateChanged,
		zap.Stringer("from", prev.Kind),
		zap.Stringer("to", next.Kind))

	s.listenersMu.Lock()
	listeners := make([]listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l.fn(next)
	}
}

func profileKey(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return profileKeyPrefix + hex.EncodeToString(sum[:])
}
