package config

import "time"

// AuthConfig groups session token and login throttle configuration.
type AuthConfig struct {
	// SessionSecret signs and verifies session tokens. When unset, the
	// site-generator's AUTH_SECRET variable is honored as a fallback so a
	// shared deployment env file works unchanged.
	SessionSecret string `env:"SESSION_SECRET"`
	AuthSecret    string `env:"AUTH_SECRET"`

	// CookieName overrides the session cookie name. Leave empty to pick
	// the transport-appropriate default at request time.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:""`

	// SessionTTL is the lifetime of issued session tokens.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	// LoginMaxAttempts and LoginWindow bound failed login attempts per
	// email within a fixed window.
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"10"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW"       envDefault:"15m"`
}

// Secret resolves the signing secret. SESSION_SECRET wins when both are
// set; an empty string means no secret is configured and protected routes
// fail closed.
func (a AuthConfig) Secret() string {
	if a.SessionSecret != "" {
		return a.SessionSecret
	}
	return a.AuthSecret
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 168 * time.Hour
	}
	if a.LoginMaxAttempts < 1 {
		a.LoginMaxAttempts = 10
	}
	if a.LoginWindow <= 0 {
		a.LoginWindow = 15 * time.Minute
	}
}
