// Package ports defines interfaces (hexagonal ports) for storage and cache
// behavior. Implementations live in internal/data and internal/adapters;
// orchestration in internal/service.
package ports

import (
	"context"
	"time"

	"github.com/brightsprout/kinderportal/internal/domain/model"
)

// ArticleRepository exposes query and admin operations over articles.
type ArticleRepository interface {
	List(ctx context.Context, opts model.ArticlesListOptions) ([]model.Article, int, error)
	GetBySlug(ctx context.Context, slug string) (*model.Article, error)
	Create(ctx context.Context, req *model.CreateArticleRequest) (*model.Article, error)
	Update(ctx context.Context, id string, req model.UpdateArticleRequest) (*model.Article, error)
	// Delete removes an article and returns its slug so callers can
	// invalidate caches. The bool reports whether a row was removed.
	Delete(ctx context.Context, id string) (string, bool, error)
}

// ArticleCache caches article-by-slug lookups.
type ArticleCache interface {
	Get(ctx context.Context, slug string) (*model.Article, error)
	Set(ctx context.Context, article *model.Article) error
	Invalidate(ctx context.Context, slug string) error
}

// MemberRepository exposes member lookup and activation.
type MemberRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
	GetByID(ctx context.Context, id string) (*model.Member, error)
	Activate(ctx context.Context, id string) (bool, error)
	ListPending(ctx context.Context, limit, offset int) ([]model.Member, error)
}

// LoginThrottle limits login attempts per email.
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	Reset(ctx context.Context, email string) error
}

// AnnouncementRepository lists portal announcements.
type AnnouncementRepository interface {
	List(ctx context.Context, limit, offset int) ([]model.Announcement, error)
}

// MealPlanRepository lists meal plans by week.
type MealPlanRepository interface {
	ListWeek(ctx context.Context, weekStart time.Time) ([]model.MealPlan, error)
}

// ClassNewsRepository lists class news posts.
type ClassNewsRepository interface {
	List(ctx context.Context, opts model.ClassNewsListOptions) ([]model.ClassNews, error)
}
