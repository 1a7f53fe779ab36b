// Package sessiontoken reads and mints the signed session cookie.
//
// The token is a compact HS256 JWT carried in a cookie whose name depends
// on transport security, so a token issued over HTTPS is never replayed
// over plaintext. Reading is strictly side-effect free: no renewal, no
// cookie mutation.
package sessiontoken

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/brightsprout/kinderportal/internal/domain/auth"
)

// Cookie names by transport security. The secure prefix follows the
// convention browsers enforce for __Secure- cookies.
const (
	CookieName       = "kinder-session"
	SecureCookieName = "__Secure-kinder-session"
)

// DefaultTTL is the session lifetime when config does not set one.
const DefaultTTL = 7 * 24 * time.Hour

// ErrSecretNotConfigured indicates the signing secret is absent. This is an
// operator error, distinct from a visitor simply having no valid token, and
// callers must deny protected requests regardless of tier when they see it.
var ErrSecretNotConfigured = errors.New("session signing secret is not configured")

// ErrTokenInvalid wraps any verification failure (malformed token, bad
// signature, expiry, wrong algorithm). Callers treat it as "no claims".
var ErrTokenInvalid = errors.New("session token invalid")

// Config carries the process-wide signing configuration. It is read-only
// after startup and passed explicitly into the gating pipeline.
type Config struct {
	Secret     string
	CookieName string // optional override for both transports
	TTL        time.Duration
}

// sessionClaims is the on-the-wire JWT payload.
type sessionClaims struct {
	Role   string `json:"role"`
	Status string `json:"status"`
	jwt.RegisteredClaims
}

// CookieNameFor returns the cookie name to use for the request, honoring
// the config override, otherwise varying by transport security.
func CookieNameFor(r *http.Request, cfg Config) string {
	if cfg.CookieName != "" {
		return cfg.CookieName
	}
	if IsSecureRequest(r) {
		return SecureCookieName
	}
	return CookieName
}

// IsSecureRequest reports whether the request arrived over TLS, directly or
// via a forwarding proxy.
func IsSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// ReadToken extracts and verifies the session token from the request's
// cookies. It returns:
//   - (claims, nil) for a valid token,
//   - (nil, nil) when no cookie is present (normal unauthenticated visitor),
//   - (nil, ErrTokenInvalid-wrapped) when verification fails,
//   - (nil, ErrSecretNotConfigured) when the secret is absent.
func ReadToken(r *http.Request, cfg Config) (*domainauth.Claims, error) {
	if cfg.Secret == "" {
		return nil, ErrSecretNotConfigured
	}

	cookie, err := r.Cookie(CookieNameFor(r, cfg))
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	var sc sessionClaims
	token, err := jwt.ParseWithClaims(cookie.Value, &sc,
		func(*jwt.Token) (any, error) { return []byte(cfg.Secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claimsFromToken(&sc), nil
}

// claimsFromToken maps the wire payload into domain claims. Unknown role or
// status values are kept in normalized form; the decision engine's equality
// checks then fail closed for them.
func claimsFromToken(sc *sessionClaims) *domainauth.Claims {
	role, _ := domainauth.ParseRole(sc.Role)
	status, _ := domainauth.ParseStatus(sc.Status)
	return &domainauth.Claims{
		UserID: sc.Subject,
		Role:   role,
		Status: status,
	}
}

// Issue mints a signed session token for the given claims.
func Issue(claims domainauth.Claims, cfg Config) (string, error) {
	if cfg.Secret == "" {
		return "", ErrSecretNotConfigured
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	sc := sessionClaims{
		Role:   string(claims.Role),
		Status: string(claims.Status),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sc).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}
