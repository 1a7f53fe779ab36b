package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsprout/kinderportal/internal/adapters/sessiontoken"
	domainauth "github.com/brightsprout/kinderportal/internal/domain/auth"
	"github.com/brightsprout/kinderportal/internal/service"
)

type fakeAuthService struct {
	loginFunc func(context.Context, string, string) (*domainauth.Claims, error)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*domainauth.Claims, error) {
	return f.loginFunc(ctx, email, password)
}

func loginRequest(form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/member/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func activeClaims() *domainauth.Claims {
	return &domainauth.Claims{UserID: "member-1", Role: domainauth.RoleParent, Status: domainauth.StatusActive}
}

func newAuthHandlers(svc AuthServiceInterface) *AuthHandlers {
	return &AuthHandlers{
		Svc:   svc,
		Token: sessiontoken.Config{Secret: "test-secret", TTL: time.Hour},
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessiontoken.CookieName || c.Name == sessiontoken.SecureCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestLoginHandlerSuccess(t *testing.T) {
	svc := &fakeAuthService{
		loginFunc: func(_ context.Context, email, password string) (*domainauth.Claims, error) {
			assert.Equal(t, "parent@example.com", email)
			assert.Equal(t, "pw", password)
			return activeClaims(), nil
		},
	}
	h := newAuthHandlers(svc)

	form := url.Values{"email": {"parent@example.com"}, "password": {"pw"}, "redirect": {"/parents/news"}}
	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest(form))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/parents/news", rec.Header().Get("Location"))

	cookie := sessionCookie(t, rec)
	assert.Equal(t, sessiontoken.CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)
	assert.NotEmpty(t, cookie.Value)

	// The issued cookie round-trips through the token reader.
	r := httptest.NewRequest(http.MethodGet, "/parents", nil)
	r.AddCookie(cookie)
	claims, err := sessiontoken.ReadToken(r, h.Token)
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.UserID)
}

func TestLoginHandlerPendingMemberLandsOnPendingPage(t *testing.T) {
	svc := &fakeAuthService{
		loginFunc: func(_ context.Context, _, _ string) (*domainauth.Claims, error) {
			return &domainauth.Claims{UserID: "member-2", Role: domainauth.RoleParent, Status: domainauth.StatusPending}, nil
		},
	}
	h := newAuthHandlers(svc)

	form := url.Values{"email": {"pending@example.com"}, "password": {"pw"}, "redirect": {"/parents/news"}}
	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest(form))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/parents/pending", rec.Header().Get("Location"))
}

func TestLoginHandlerRejectsExternalRedirect(t *testing.T) {
	svc := &fakeAuthService{
		loginFunc: func(_ context.Context, _, _ string) (*domainauth.Claims, error) {
			return activeClaims(), nil
		},
	}
	h := newAuthHandlers(svc)

	for _, target := range []string{"https://evil.example.com/", "//evil.example.com/x", "javascript:alert(1)"} {
		form := url.Values{"email": {"p@example.com"}, "password": {"pw"}, "redirect": {target}}
		rec := httptest.NewRecorder()
		h.Login(rec, loginRequest(form))

		assert.Equal(t, "/", rec.Header().Get("Location"), "target %q", target)
	}
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{
		loginFunc: func(_ context.Context, _, _ string) (*domainauth.Claims, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	h := newAuthHandlers(svc)

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest(url.Values{"email": {"x@example.com"}, "password": {"bad"}}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginHandlerThrottled(t *testing.T) {
	svc := &fakeAuthService{
		loginFunc: func(_ context.Context, _, _ string) (*domainauth.Claims, error) {
			return nil, service.ErrTooManyAttempts
		},
	}
	h := newAuthHandlers(svc)

	rec := httptest.NewRecorder()
	h.Login(rec, loginRequest(url.Values{"email": {"x@example.com"}, "password": {"pw"}}))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestLoginHandlerSecureTransportCookie(t *testing.T) {
	svc := &fakeAuthService{
		loginFunc: func(_ context.Context, _, _ string) (*domainauth.Claims, error) {
			return activeClaims(), nil
		},
	}
	h := newAuthHandlers(svc)

	form := url.Values{"email": {"p@example.com"}, "password": {"pw"}}
	r := loginRequest(form)
	r.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	h.Login(rec, r)

	cookie := sessionCookie(t, rec)
	assert.Equal(t, sessiontoken.SecureCookieName, cookie.Name)
	assert.True(t, cookie.Secure)
}

func TestLogoutHandlerClearsCookie(t *testing.T) {
	h := newAuthHandlers(&fakeAuthService{})

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/member/logout", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookie := sessionCookie(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestLoginPageEchoesRedirectAndReason(t *testing.T) {
	h := newAuthHandlers(&fakeAuthService{})

	rec := httptest.NewRecorder()
	h.LoginPage(rec, httptest.NewRequest(http.MethodGet, "/member/login?reason=missing-secret&redirect=%2Fparents", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"login required","redirect":"/parents","reason":"missing-secret"}`, rec.Body.String())
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestLoginPageSanitizesRedirect(t *testing.T) {
	h := newAuthHandlers(&fakeAuthService{})

	rec := httptest.NewRecorder()
	h.LoginPage(rec, httptest.NewRequest(http.MethodGet, "/member/login?redirect=https%3A%2F%2Fevil.example", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"login required","redirect":"/"}`, rec.Body.String())
}
