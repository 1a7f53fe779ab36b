package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsprout/kinderportal/internal/data"
	domainauth "github.com/brightsprout/kinderportal/internal/domain/auth"
	"github.com/brightsprout/kinderportal/internal/domain/model"
	apperrors "github.com/brightsprout/kinderportal/internal/errors"
	"github.com/brightsprout/kinderportal/internal/service"
)

type fakeMemberService struct {
	activateFunc func(context.Context, string) (bool, error)
	pendingFunc  func(context.Context, int, int) ([]model.Member, error)
}

func (f *fakeMemberService) Activate(ctx context.Context, id string) (bool, error) {
	if f.activateFunc != nil {
		return f.activateFunc(ctx, id)
	}
	return false, nil
}

func (f *fakeMemberService) ListPending(ctx context.Context, limit, offset int) ([]model.Member, error) {
	if f.pendingFunc != nil {
		return f.pendingFunc(ctx, limit, offset)
	}
	return nil, nil
}

func TestAdminListArticlesIncludesDrafts(t *testing.T) {
	var gotInput service.ListInput
	svc := &fakeArticleService{
		listFunc: func(_ context.Context, in service.ListInput) (*service.ListResult, error) {
			gotInput = in
			return &service.ListResult{Page: 1, Limit: 10}, nil
		},
	}
	h := &AdminHandlers{Articles: svc, Members: &fakeMemberService{}}

	rec := httptest.NewRecorder()
	h.ListArticles(rec, httptest.NewRequest(http.MethodGet, "/admin/articles", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotInput.IncludeDrafts, "the admin listing always shows drafts")
}

func TestAdminCreateArticle(t *testing.T) {
	svc := &fakeArticleService{
		createFunc: func(_ context.Context, req *model.CreateArticleRequest) (*model.Article, error) {
			return &model.Article{ID: "a-1", Slug: req.Slug, Title: req.Title, Category: req.Category}, nil
		},
	}
	h := &AdminHandlers{Articles: svc, Members: &fakeMemberService{}}

	body := `{"slug":"new-article","title":"New Article","category":"notice","body":"text"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/articles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateArticle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got model.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "new-article", got.Slug)
}

func TestAdminCreateArticleRejectsUnknownFields(t *testing.T) {
	h := &AdminHandlers{Articles: &fakeArticleService{}, Members: &fakeMemberService{}}

	body := `{"slug":"x","title":"y","category":"notice","bogus":true}`
	req := httptest.NewRequest(http.MethodPost, "/admin/articles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateArticle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminCreateArticleSlugConflict(t *testing.T) {
	svc := &fakeArticleService{
		createFunc: func(_ context.Context, _ *model.CreateArticleRequest) (*model.Article, error) {
			return nil, data.ErrArticleSlugExists
		},
	}
	h := &AdminHandlers{Articles: svc, Members: &fakeMemberService{}}

	body := `{"slug":"dup","title":"Dup","category":"notice"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/articles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateArticle(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminCreateArticleValidationError(t *testing.T) {
	svc := &fakeArticleService{
		createFunc: func(_ context.Context, _ *model.CreateArticleRequest) (*model.Article, error) {
			return nil, apperrors.ValidationField("slug", "slug is required and cannot be empty")
		},
	}
	h := &AdminHandlers{Articles: svc, Members: &fakeMemberService{}}

	req := httptest.NewRequest(http.MethodPost, "/admin/articles", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.CreateArticle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "slug is required")
}

func TestAdminUpdateArticleNotFound(t *testing.T) {
	svc := &fakeArticleService{
		updateFunc: func(_ context.Context, _ string, _ model.UpdateArticleRequest) (*model.Article, error) {
			return nil, data.ErrArticleNotFound
		},
	}
	h := &AdminHandlers{Articles: svc, Members: &fakeMemberService{}}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodPut, "/admin/articles/"+id, strings.NewReader(`{"title":"x"}`))
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.UpdateArticle(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestAdminUpdateArticleRejectsMalformedID(t *testing.T) {
	h := &AdminHandlers{Articles: &fakeArticleService{}, Members: &fakeMemberService{}}

	req := httptest.NewRequest(http.MethodPut, "/admin/articles/not-a-uuid", strings.NewReader(`{"title":"x"}`))
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()
	h.UpdateArticle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "valid UUID")
}

func TestAdminDeleteArticle(t *testing.T) {
	existing := uuid.NewString()
	svc := &fakeArticleService{
		deleteFunc: func(_ context.Context, id string) (bool, error) {
			return id == existing, nil
		},
	}
	h := &AdminHandlers{Articles: svc, Members: &fakeMemberService{}}

	req := httptest.NewRequest(http.MethodDelete, "/admin/articles/"+existing, nil)
	req.SetPathValue("id", existing)
	rec := httptest.NewRecorder()
	h.DeleteArticle(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	missing := uuid.NewString()
	req = httptest.NewRequest(http.MethodDelete, "/admin/articles/"+missing, nil)
	req.SetPathValue("id", missing)
	rec = httptest.NewRecorder()
	h.DeleteArticle(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminActivateMember(t *testing.T) {
	pending := uuid.NewString()
	members := &fakeMemberService{
		activateFunc: func(_ context.Context, id string) (bool, error) {
			return id == pending, nil
		},
	}
	h := &AdminHandlers{Articles: &fakeArticleService{}, Members: members}

	req := httptest.NewRequest(http.MethodPost, "/admin/members/"+pending+"/activate", nil)
	req.SetPathValue("id", pending)
	rec := httptest.NewRecorder()
	h.ActivateMember(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"active"}`, rec.Body.String())

	missing := uuid.NewString()
	req = httptest.NewRequest(http.MethodPost, "/admin/members/"+missing+"/activate", nil)
	req.SetPathValue("id", missing)
	rec = httptest.NewRecorder()
	h.ActivateMember(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminListPendingMembers(t *testing.T) {
	members := &fakeMemberService{
		pendingFunc: func(_ context.Context, limit, offset int) ([]model.Member, error) {
			assert.Equal(t, 20, limit)
			assert.Equal(t, 0, offset)
			return []model.Member{{ID: "m-1", Email: "p@example.com", Role: domainauth.RoleParent, Status: domainauth.StatusPending}}, nil
		},
	}
	h := &AdminHandlers{Articles: &fakeArticleService{}, Members: members}

	rec := httptest.NewRecorder()
	h.ListPendingMembers(rec, httptest.NewRequest(http.MethodGet, "/admin/members/pending", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"m-1"`)
	assert.NotContains(t, rec.Body.String(), "password", "hashes must never serialize")
}
