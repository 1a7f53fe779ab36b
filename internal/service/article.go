package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/brightsprout/kinderportal/internal/data"
	"github.com/brightsprout/kinderportal/internal/domain/model"
	"github.com/brightsprout/kinderportal/internal/ports"
)

// Pagination bounds for article listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// ArticleServiceOptions groups dependencies for ArticleService.
type ArticleServiceOptions struct {
	Repo   ports.ArticleRepository
	Cache  ports.ArticleCache
	Logger *slog.Logger
}

// ArticleService orchestrates article listing, lookup, and administration.
// GetBySlug reads through the cache when one is configured; admin writes
// invalidate it.
type ArticleService struct {
	repo   ports.ArticleRepository
	cache  ports.ArticleCache
	logger *slog.Logger
}

// NewArticleService constructs a new ArticleService.
func NewArticleService(opts ArticleServiceOptions) *ArticleService {
	return &ArticleService{repo: opts.Repo, cache: opts.Cache, logger: opts.Logger}
}

func (s *ArticleService) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// ListInput carries the raw, unclamped list parameters as received from the
// HTTP layer.
type ListInput struct {
	Page          int
	Limit         int
	Q             string
	Category      string
	IncludeDrafts bool
}

// ListResult is a page of articles with pagination metadata.
type ListResult struct {
	Items []model.Article
	Total int
	Page  int
	Limit int
}

// TotalPages returns the page count for the clamped limit.
func (r ListResult) TotalPages() int {
	if r.Limit <= 0 {
		return 0
	}
	return (r.Total + r.Limit - 1) / r.Limit
}

// List returns a page of articles. Page is clamped to >= 1; a zero limit
// takes the default while other values are clamped to [1, MaxPageSize]. An
// unrecognized category is ignored rather than propagated into the query.
func (s *ArticleService) List(ctx context.Context, in ListInput) (*ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	switch {
	case limit == 0:
		limit = DefaultPageSize
	case limit < 1:
		limit = 1
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	opts := model.ArticlesListOptions{
		Limit:         limit,
		Offset:        (page - 1) * limit,
		IncludeDrafts: in.IncludeDrafts,
	}
	if q := strings.TrimSpace(in.Q); q != "" {
		opts.Q = &q
	}
	if in.Category != "" {
		if category, ok := model.ParseArticleCategory(in.Category); ok {
			opts.Category = &category
		}
	}

	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &ListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// GetBySlug retrieves an article by slug, lowercasing the slug before
// lookup. Unpublished articles are returned only when includeDrafts is set.
func (s *ArticleService) GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*model.Article, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, slug); err == nil {
			if !cached.Published && !includeDrafts {
				return nil, data.ErrArticleNotFound
			}
			return cached, nil
		}
	}

	article, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !article.Published && !includeDrafts {
		return nil, data.ErrArticleNotFound
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, article); cacheErr != nil {
			s.log().WarnContext(ctx, "cache article failed", "slug", slug, "error", cacheErr)
		}
	}
	return article, nil
}

// Create creates an article and invalidates any stale cache entry.
func (s *ArticleService) Create(ctx context.Context, req *model.CreateArticleRequest) (*model.Article, error) {
	article, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, article.Slug)
	return article, nil
}

// Update updates an article and invalidates its cache entry.
func (s *ArticleService) Update(ctx context.Context, id string, req model.UpdateArticleRequest) (*model.Article, error) {
	article, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, article.Slug)
	return article, nil
}

// Delete deletes an article by ID and invalidates its cache entry.
func (s *ArticleService) Delete(ctx context.Context, id string) (bool, error) {
	slug, deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidate(ctx, slug)
	}
	return deleted, nil
}

func (s *ArticleService) invalidate(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		s.log().WarnContext(ctx, "invalidate article cache failed", "slug", slug, "error", err)
	}
}
