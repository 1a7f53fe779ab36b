package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsprout/kinderportal/internal/adapters/sessiontoken"
	"github.com/brightsprout/kinderportal/internal/data"
	domainauth "github.com/brightsprout/kinderportal/internal/domain/auth"
	"github.com/brightsprout/kinderportal/internal/domain/model"
	"github.com/brightsprout/kinderportal/internal/service"
)

// Stub repositories backing real services for end-to-end routing tests.

type stubArticleRepo struct{ articles []model.Article }

func (s *stubArticleRepo) List(_ context.Context, opts model.ArticlesListOptions) ([]model.Article, int, error) {
	out := make([]model.Article, 0, len(s.articles))
	for _, a := range s.articles {
		if !a.Published && !opts.IncludeDrafts {
			continue
		}
		out = append(out, a)
	}
	return out, len(out), nil
}

func (s *stubArticleRepo) GetBySlug(_ context.Context, slug string) (*model.Article, error) {
	for i := range s.articles {
		if s.articles[i].Slug == slug {
			return &s.articles[i], nil
		}
	}
	return nil, data.ErrArticleNotFound
}

func (s *stubArticleRepo) Create(_ context.Context, _ *model.CreateArticleRequest) (*model.Article, error) {
	return nil, data.ErrArticleSlugExists
}

func (s *stubArticleRepo) Update(_ context.Context, _ string, _ model.UpdateArticleRequest) (*model.Article, error) {
	return nil, data.ErrArticleNotFound
}

func (s *stubArticleRepo) Delete(_ context.Context, _ string) (string, bool, error) {
	return "", false, nil
}

type stubMemberRepo struct{}

func (stubMemberRepo) GetByEmail(_ context.Context, _ string) (*model.Member, error) {
	return nil, data.ErrMemberNotFound
}

func (stubMemberRepo) GetByID(_ context.Context, _ string) (*model.Member, error) {
	return nil, data.ErrMemberNotFound
}

func (stubMemberRepo) Activate(_ context.Context, _ string) (bool, error) { return false, nil }

func (stubMemberRepo) ListPending(_ context.Context, _, _ int) ([]model.Member, error) {
	return nil, nil
}

type stubAnnouncementRepo struct{}

func (stubAnnouncementRepo) List(_ context.Context, _, _ int) ([]model.Announcement, error) {
	return []model.Announcement{}, nil
}

type stubMealPlanRepo struct{}

func (stubMealPlanRepo) ListWeek(_ context.Context, _ time.Time) ([]model.MealPlan, error) {
	return []model.MealPlan{}, nil
}

type stubClassNewsRepo struct{}

func (stubClassNewsRepo) List(_ context.Context, _ model.ClassNewsListOptions) ([]model.ClassNews, error) {
	return []model.ClassNews{}, nil
}

func testRouter(t *testing.T, token sessiontoken.Config) http.Handler {
	t.Helper()
	articles := service.NewArticleService(service.ArticleServiceOptions{
		Repo: &stubArticleRepo{articles: []model.Article{
			{Slug: "settling-in-tips", Title: "Settling In", Category: model.CategoryGuide, Published: true},
			{Slug: "draft-summer-plan", Title: "Summer Plan", Category: model.CategoryNotice, Published: false},
		}},
	})
	return NewRouter(RouterServices{
		Articles: articles,
		Auth:     service.NewAuthService(service.AuthServiceOptions{Members: stubMemberRepo{}}),
		Portal: service.NewPortalService(service.PortalServiceOptions{
			Announcements: stubAnnouncementRepo{},
			Meals:         stubMealPlanRepo{},
			News:          stubClassNewsRepo{},
		}),
		Members: service.NewMemberService(stubMemberRepo{}),
		Token:   token,
	})
}

func TestRouterPublicRoutes(t *testing.T) {
	router := testRouter(t, sessiontoken.Config{Secret: "router-test-secret", TTL: time.Hour})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parent-education", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "settling-in-tips")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parent-education/settling-in-tips", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parent-education/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestRouterDraftsFlagOnPublicListing(t *testing.T) {
	cfg := sessiontoken.Config{Secret: "router-test-secret", TTL: time.Hour}
	router := testRouter(t, cfg)

	// Anonymous callers never see drafts, flag or not.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parent-education?drafts=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "draft-summer-plan")

	// A signed-in admin can opt in through the full pipeline.
	token, err := sessiontoken.Issue(domainauth.Claims{
		UserID: "u-9", Role: domainauth.RoleAdmin, Status: domainauth.StatusActive,
	}, cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/parent-education?drafts=true", nil)
	req.AddCookie(&http.Cookie{Name: sessiontoken.CookieNameFor(req, cfg), Value: token})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "draft-summer-plan")
}

func TestRouterGatesProtectedRoutes(t *testing.T) {
	cfg := sessiontoken.Config{Secret: "router-test-secret", TTL: time.Hour}
	router := testRouter(t, cfg)

	// Anonymous requests bounce to login.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/parents", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/member/login?redirect=%2Fparents", rec.Header().Get("Location"))

	// The redirect target itself resolves to a real resource.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/member/login?redirect=%2Fparents", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "login required")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/articles", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	// An active parent reaches the portal.
	token, err := sessiontoken.Issue(domainauth.Claims{
		UserID: "u-1", Role: domainauth.RoleParent, Status: domainauth.StatusActive,
	}, cfg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/parents", nil)
	req.AddCookie(&http.Cookie{Name: sessiontoken.CookieNameFor(req, cfg), Value: token})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// But not the admin console.
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: sessiontoken.CookieNameFor(req, cfg), Value: token})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRouterMissingSecretFailsClosed(t *testing.T) {
	router := testRouter(t, sessiontoken.Config{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/parents", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/member/login?reason=missing-secret&redirect=%2Fparents", rec.Header().Get("Location"))

	// Public content stays reachable.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parent-education", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
