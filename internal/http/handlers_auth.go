package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/brightsprout/kinderportal/internal/adapters/sessiontoken"
	domainauth "github.com/brightsprout/kinderportal/internal/domain/auth"
	"github.com/brightsprout/kinderportal/internal/domain/gate"
	"github.com/brightsprout/kinderportal/internal/service"
)

// AuthServiceInterface defines the interface for credential verification.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*domainauth.Claims, error)
}

// AuthHandlers provides HTTP handlers for the member login/logout flows.
// Login mints the signed session cookie; logout clears it. No session state
// is kept server-side.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Token        sessiontoken.Config
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage handles GET /member/login, the target of gate redirects. The
// backend serves no HTML, so it answers with a JSON prompt echoing the
// validated redirect target and the reason code for clients rendering the
// login form.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp := map[string]string{
		"message":  "login required",
		"redirect": safeRedirectPath(q.Get("redirect")),
	}
	if reason := q.Get("reason"); reason != "" {
		resp["reason"] = reason
	}
	noStore(w)
	WriteJSON(w, http.StatusOK, resp)
}

// Login handles POST /member/login with form fields email and password.
// On success it sets the session cookie and redirects to the validated
// "redirect" target; members still pending activation land on the pending
// page instead.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	claims, err := h.Svc.Login(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyAttempts):
			WriteError(w, http.StatusTooManyRequests, "too many login attempts, try again later")
		case errors.Is(err, service.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, "invalid email or password")
		default:
			h.logger().ErrorContext(r.Context(), "login failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	token, err := sessiontoken.Issue(*claims, h.Token)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "issue session token failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	h.setSessionCookie(w, r, token)

	// FormValue falls back to the URL query, so the login page can carry the
	// redirect target either way.
	target := safeRedirectPath(r.FormValue("redirect"))
	if !claims.IsActive() {
		target = gate.PendingPath
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout handles POST /member/logout. It clears the session cookie on the
// client; there is nothing to invalidate server-side.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w, r)
	http.Redirect(w, r, gate.HomePath, http.StatusSeeOther)
}

// setSessionCookie sets the signed session token under the transport-appropriate name.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	ttl := h.Token.TTL
	if ttl <= 0 {
		ttl = sessiontoken.DefaultTTL
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessiontoken.CookieNameFor(r, h.Token),
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   sessiontoken.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie. It mirrors the attributes
// used when setting cookies to maximize compatibility across browsers
// during deletion.
func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessiontoken.CookieNameFor(r, h.Token),
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sessiontoken.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}
