package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/brightsprout/kinderportal/internal/data"
	"github.com/brightsprout/kinderportal/internal/domain/model"
	apperrors "github.com/brightsprout/kinderportal/internal/errors"
	"github.com/brightsprout/kinderportal/internal/service"
)

// MemberServiceInterface defines the interface for member administration.
type MemberServiceInterface interface {
	Activate(ctx context.Context, id string) (bool, error)
	ListPending(ctx context.Context, limit, offset int) ([]model.Member, error)
}

// AdminHandlers provides HTTP handlers for the admin console. All routes
// are behind the gate middleware, so only admin claims reach them.
type AdminHandlers struct {
	Articles ArticleServiceInterface
	Members  MemberServiceInterface
	Logger   *slog.Logger
}

func (h *AdminHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Summary handles GET /admin.
func (h *AdminHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.Articles.List(r.Context(), service.ListInput{Limit: 1, IncludeDrafts: true})
	if err != nil {
		h.logger().ErrorContext(r.Context(), "load admin summary failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	noStore(w)
	WriteJSON(w, http.StatusOK, map[string]any{"articles": result.Total})
}

// ListArticles handles GET /admin/articles, always including drafts.
func (h *AdminHandlers) ListArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.Articles.List(r.Context(), service.ListInput{
		Page:          parseIntQuery(r, "page", 1),
		Limit:         parseLimitQuery(r),
		Q:             q.Get("q"),
		Category:      q.Get("category"),
		IncludeDrafts: true,
	})
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list articles failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	items := result.Items
	if items == nil {
		items = []model.Article{}
	}
	noStore(w)
	WriteJSON(w, http.StatusOK, articleListResponse{
		Data: items,
		Pagination: paginationMeta{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages(),
		},
	})
}

// CreateArticle handles POST /admin/articles.
func (h *AdminHandlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req model.CreateArticleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	article, err := h.Articles.Create(r.Context(), &req)
	if err != nil {
		h.writeArticleError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, article)
}

// pathID extracts and validates the {id} path parameter. Rejecting
// malformed ids here avoids a database round-trip on a uuid cast failure.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		WriteError(w, http.StatusBadRequest, "id must be a valid UUID")
		return "", false
	}
	return id, true
}

// UpdateArticle handles PUT /admin/articles/{id}.
func (h *AdminHandlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req model.UpdateArticleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	article, err := h.Articles.Update(r.Context(), id, req)
	if err != nil {
		h.writeArticleError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, article)
}

// DeleteArticle handles DELETE /admin/articles/{id}.
func (h *AdminHandlers) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	ok, err := h.Articles.Delete(r.Context(), id)
	if err != nil {
		h.writeArticleError(w, r, err)
		return
	}
	if !ok {
		WriteNotFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPendingMembers handles GET /admin/members/pending.
func (h *AdminHandlers) ListPendingMembers(w http.ResponseWriter, r *http.Request) {
	page, limit := ParsePageLimit(r, 20, 50)
	members, err := h.Members.ListPending(r.Context(), limit, (page-1)*limit)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list pending members failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	noStore(w)
	WriteJSON(w, http.StatusOK, map[string]any{"data": members})
}

// ActivateMember handles POST /admin/members/{id}/activate.
func (h *AdminHandlers) ActivateMember(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r)
	if !valid {
		return
	}
	ok, err := h.Members.Activate(r.Context(), id)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "activate member failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if !ok {
		WriteNotFound(w)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "active"})
}

// writeArticleError maps article write errors onto HTTP responses.
func (h *AdminHandlers) writeArticleError(w http.ResponseWriter, r *http.Request, err error) {
	mapped := apperrors.MapDBError(err)
	switch {
	case errors.Is(err, data.ErrArticleNotFound), apperrors.IsNotFound(mapped):
		WriteNotFound(w)
	case errors.Is(err, data.ErrArticleSlugExists), apperrors.IsConflict(mapped):
		WriteError(w, http.StatusConflict, "an article with this slug already exists")
	case apperrors.IsValidation(mapped):
		var appErr *apperrors.AppError
		if errors.As(mapped, &appErr) {
			WriteError(w, http.StatusBadRequest, appErr.Message)
		} else {
			WriteError(w, http.StatusBadRequest, "invalid input")
		}
	default:
		h.logger().ErrorContext(r.Context(), "article write failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
