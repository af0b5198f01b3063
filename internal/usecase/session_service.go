package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/realbreda/clubsite/internal/domain/user"
	"github.com/realbreda/clubsite/internal/platform/logging"
)

// DefaultProfileTimeout bounds the profile lookup attached to a session.
const DefaultProfileTimeout = 10 * time.Second

const defaultNotifyWorkers = 4

// AuthGateway is the hosted auth service the site delegates credentials to.
type AuthGateway interface {
	SignUp(ctx context.Context, email, password, username string) (user.Session, error)
	SignIn(ctx context.Context, email, password string) (user.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	Lookup(ctx context.Context, accessToken string) (user.Session, error)
}

// Identity is a verified session joined with its profile row. Profile is nil
// when the profile row does not exist yet or could not be fetched; session
// validity and profile presence are deliberately decoupled.
type Identity struct {
	Session user.Session
	Profile *user.Profile
}

// AuthResult carries the outcome of a signup or login attempt. Message is
// user-facing and already mapped from backend error text.
type AuthResult struct {
	OK      bool
	Message string
	Session user.Session
}

// SessionService resolves identities, runs the signup/login flows and fans
// auth-state changes out to subscribers.
type SessionService struct {
	auth           AuthGateway
	userRepo       user.Repository
	logger         *logging.Logger
	profileTimeout time.Duration
	pool           *ants.Pool

	mu          sync.Mutex
	subscribers map[int]func(*Identity)
	nextSubID   int
}

func NewSessionService(auth AuthGateway, userRepo user.Repository, logger *logging.Logger) (*SessionService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	pool, err := ants.NewPool(defaultNotifyWorkers)
	if err != nil {
		return nil, fmt.Errorf("create notify pool: %w", err)
	}
	return &SessionService{
		auth:           auth,
		userRepo:       userRepo,
		logger:         logger,
		profileTimeout: DefaultProfileTimeout,
		pool:           pool,
		subscribers:    make(map[int]func(*Identity)),
	}, nil
}

// Close releases the subscriber notification pool.
func (s *SessionService) Close() {
	s.pool.Release()
}

// Resolve verifies an access token and joins it with the profile row. A
// missing profile row is expected for new accounts and yields a nil Profile,
// not an error. Other profile-fetch failures are logged and likewise degrade
// to a nil Profile so a valid session is never discarded.
func (s *SessionService) Resolve(ctx context.Context, accessToken string) (Identity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Resolve")
	defer span.End()

	if strings.TrimSpace(accessToken) == "" {
		return Identity{}, fmt.Errorf("%w: missing access token", ErrUnauthorized)
	}

	session, err := s.auth.Lookup(ctx, accessToken)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return Identity{}, err
		}
		return Identity{}, classifyBackendError("lookup session", err)
	}

	return Identity{
		Session: session,
		Profile: s.fetchProfile(ctx, session.UserID),
	}, nil
}

func (s *SessionService) fetchProfile(ctx context.Context, userID string) *user.Profile {
	ctx, cancel := context.WithTimeout(ctx, s.profileTimeout)
	defer cancel()

	profile, found, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "profile fetch failed, continuing without profile",
			"user_id", userID,
			"error", err,
		)
		return nil
	}
	if !found {
		return nil
	}
	return &profile
}

// SignUp creates an account after checking username uniqueness. Backend
// errors are mapped to user-facing messages by substring, matching the
// messages the auth forms display.
func (s *SessionService) SignUp(ctx context.Context, email, password, username string) (AuthResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.SignUp")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return AuthResult{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	_, taken, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return AuthResult{}, classifyBackendError("check username", err)
	}
	if taken {
		return AuthResult{OK: false, Message: "Username is already taken"}, nil
	}

	session, err := s.auth.SignUp(ctx, email, password, username)
	if err != nil {
		return signUpFailure(err)
	}

	s.notify(&Identity{Session: session, Profile: s.fetchProfile(ctx, session.UserID)})
	return AuthResult{OK: true, Session: session}, nil
}

func signUpFailure(err error) (AuthResult, error) {
	msg := err.Error()
	switch {
	case containsFold(msg, "already registered"):
		return AuthResult{OK: false, Message: "An account with this email already exists"}, nil
	case containsFold(msg, "password"):
		return AuthResult{OK: false, Message: "Password must be at least 6 characters long"}, nil
	case containsFold(msg, "email"):
		return AuthResult{OK: false, Message: "Please enter a valid email address"}, nil
	case errors.Is(err, context.DeadlineExceeded) || isConnectivityError(err):
		return AuthResult{}, classifyBackendError("sign up", err)
	default:
		return AuthResult{OK: false, Message: backendMessage(msg, "Failed to create account")}, nil
	}
}

// Login verifies credentials against the auth service.
func (s *SessionService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Login")
	defer span.End()

	session, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return loginFailure(err)
	}

	s.notify(&Identity{Session: session, Profile: s.fetchProfile(ctx, session.UserID)})
	return AuthResult{OK: true, Session: session}, nil
}

func loginFailure(err error) (AuthResult, error) {
	msg := err.Error()
	switch {
	case containsFold(msg, "invalid login credentials"):
		return AuthResult{OK: false, Message: "Invalid email or password"}, nil
	case containsFold(msg, "email not confirmed"):
		return AuthResult{OK: false, Message: "Please check your email and confirm your account"}, nil
	case errors.Is(err, context.DeadlineExceeded) || isConnectivityError(err):
		return AuthResult{}, classifyBackendError("login", err)
	default:
		return AuthResult{OK: false, Message: backendMessage(msg, "Invalid credentials")}, nil
	}
}

// Logout terminates the session and clears subscribers' identity.
func (s *SessionService) Logout(ctx context.Context, accessToken string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Logout")
	defer span.End()

	if err := s.auth.SignOut(ctx, accessToken); err != nil && !errors.Is(err, ErrUnauthorized) {
		return classifyBackendError("logout", err)
	}
	s.notify(nil)
	return nil
}

// Subscribe registers a callback for auth-state changes. The callback
// receives nil when the session ends. The returned function removes the
// subscription and is safe to call more than once.
func (s *SessionService) Subscribe(fn func(*Identity)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

func (s *SessionService) notify(identity *Identity) {
	s.mu.Lock()
	callbacks := make([]func(*Identity), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn := fn
		if err := s.pool.Submit(func() { fn(identity) }); err != nil {
			fn(identity)
		}
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func backendMessage(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
