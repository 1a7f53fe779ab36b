package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/brightsprout/kinderportal/internal/data"
	domainauth "github.com/brightsprout/kinderportal/internal/domain/auth"
	"github.com/brightsprout/kinderportal/internal/ports"
)

// Sentinel errors for login outcomes. Handlers map these to responses
// without leaking whether the email or the password was wrong.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Members  ports.MemberRepository
	Throttle ports.LoginThrottle
	Logger   *slog.Logger
}

// AuthService verifies member credentials and produces session claims.
// It holds no session state; the claims it returns are persisted only
// client-side as a signed cookie.
type AuthService struct {
	members  ports.MemberRepository
	throttle ports.LoginThrottle
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{members: opts.Members, throttle: opts.Throttle, logger: opts.Logger}
}

func (s *AuthService) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// Login verifies the email/password pair and returns the member's claims.
// Attempts are throttled per email; a successful login resets the counter.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domainauth.Claims, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, email)
		if err != nil {
			// Throttle backend trouble must not lock every member out.
			s.log().WarnContext(ctx, "login throttle unavailable", "error", err)
		} else if !allowed {
			return nil, ErrTooManyAttempts
		}
	}

	member, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrMemberNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get member: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if s.throttle != nil {
		if resetErr := s.throttle.Reset(ctx, email); resetErr != nil {
			s.log().WarnContext(ctx, "reset login throttle failed", "error", resetErr)
		}
	}

	claims := member.Claims()
	return &claims, nil
}
