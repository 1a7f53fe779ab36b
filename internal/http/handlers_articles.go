// Package httpx provides HTTP handlers and middleware for the kinderportal API.
package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/brightsprout/kinderportal/internal/data"
	"github.com/brightsprout/kinderportal/internal/domain/model"
	"github.com/brightsprout/kinderportal/internal/service"
)

// ArticleServiceInterface defines the interface for article operations used
// by the HTTP layer.
type ArticleServiceInterface interface {
	List(ctx context.Context, in service.ListInput) (*service.ListResult, error)
	GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*model.Article, error)
	Create(ctx context.Context, req *model.CreateArticleRequest) (*model.Article, error)
	Update(ctx context.Context, id string, req model.UpdateArticleRequest) (*model.Article, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ArticleHandlers provides HTTP handlers for the parent-education content API.
type ArticleHandlers struct {
	Svc    ArticleServiceInterface
	Logger *slog.Logger
}

func (h *ArticleHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type paginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type articleListResponse struct {
	Data       []model.Article `json:"data"`
	Pagination paginationMeta  `json:"pagination"`
}

// List handles GET /api/parent-education.
// Query params: page (default 1), limit (default 10, max 50), q, category,
// drafts ("true" to include unpublished; honored only for staff claims).
func (h *ArticleHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := service.ListInput{
		Page:          parseIntQuery(r, "page", 1),
		Limit:         parseLimitQuery(r),
		Q:             q.Get("q"),
		Category:      q.Get("category"),
		IncludeDrafts: q.Get("drafts") == "true" && IsStaffRequest(r.Context()),
	}

	result, err := h.Svc.List(r.Context(), in)
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

// Get handles GET /api/parent-education/{slug}.
func (h *ArticleHandlers) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	article, err := h.Svc.GetBySlug(r.Context(), slug, IsStaffRequest(r.Context()))
	if err != nil {
		if errors.Is(err, data.ErrArticleNotFound) {
			noStore(w)
			WriteNotFound(w)
			return
		}
		h.logger().ErrorContext(r.Context(), "get article failed", "slug", slug, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	noStore(w)
	WriteJSON(w, http.StatusOK, article)
}
