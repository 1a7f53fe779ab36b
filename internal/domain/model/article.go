//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/brightsprout/kinderportal/internal/errors"
)

const (
	maxArticleTitleLen = 255
	maxArticleSlugLen  = 255
)

// ArticleCategory is the closed set of parent-education categories.
type ArticleCategory string

const (
	CategorySeminar    ArticleCategory = "seminar"
	CategoryNewsletter ArticleCategory = "newsletter"
	CategoryGuide      ArticleCategory = "guide"
	CategoryNotice     ArticleCategory = "notice"
)

// Valid reports whether the category is supported.
func (c ArticleCategory) Valid() bool {
	switch c {
	case CategorySeminar, CategoryNewsletter, CategoryGuide, CategoryNotice:
		return true
	default:
		return false
	}
}

// ParseArticleCategory normalizes a category string (case-insensitive) and
// reports whether it is supported. Unsupported values are dropped by
// callers rather than propagated into queries.
func ParseArticleCategory(value string) (ArticleCategory, bool) {
	c := ArticleCategory(strings.ToLower(strings.TrimSpace(value)))
	if c.Valid() {
		return c, true
	}
	return "", false
}

// ArticlesListOptions controls paging and filtering for listing articles.
// Notes:
// - Category matches exactly after normalization.
// - Q matches title and excerpt via ILIKE substring.
// - Unpublished articles are included only when IncludeDrafts is set.
type ArticlesListOptions struct {
	Limit         int
	Offset        int
	Q             *string
	Category      *ArticleCategory
	IncludeDrafts bool
}

// Article is a parent-education article published on the public site.
type Article struct {
	ID        string          `json:"id"         db:"id"`
	Slug      string          `json:"slug"       db:"slug"`
	Title     string          `json:"title"      db:"title"`
	Category  ArticleCategory `json:"category"   db:"category"`
	Excerpt   string          `json:"excerpt"    db:"excerpt"`
	Body      string          `json:"body"       db:"body"`
	Published bool            `json:"published"  db:"published"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// CreateArticleRequest carries fields for creating an article.
type CreateArticleRequest struct {
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	Category  ArticleCategory `json:"category"`
	Excerpt   string          `json:"excerpt"`
	Body      string          `json:"body"`
	Published bool            `json:"published"`
}

// Validate checks required fields and limits.
func (r *CreateArticleRequest) Validate() error {
	slug := strings.TrimSpace(r.Slug)
	if slug == "" {
		return apperrors.ValidationField("slug", "slug is required and cannot be empty")
	}
	if utf8.RuneCountInString(slug) > maxArticleSlugLen {
		return apperrors.ValidationField("slug", "slug cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Title) == "" {
		return apperrors.ValidationField("title", "title is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Title) > maxArticleTitleLen {
		return apperrors.ValidationField("title", "title cannot exceed 255 characters")
	}
	if !r.Category.Valid() {
		return apperrors.ValidationField("category", "category must be one of: seminar, newsletter, guide, notice")
	}
	return nil
}

// UpdateArticleRequest carries optional fields for updating an article.
// Nil fields are left unchanged.
type UpdateArticleRequest struct {
	Title     *string          `json:"title,omitempty"`
	Category  *ArticleCategory `json:"category,omitempty"`
	Excerpt   *string          `json:"excerpt,omitempty"`
	Body      *string          `json:"body,omitempty"`
	Published *bool            `json:"published,omitempty"`
}

// Validate checks that provided fields are acceptable.
func (r *UpdateArticleRequest) Validate() error {
	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			return apperrors.ValidationField("title", "title cannot be empty")
		}
		if utf8.RuneCountInString(*r.Title) > maxArticleTitleLen {
			return apperrors.ValidationField("title", "title cannot exceed 255 characters")
		}
	}
	if r.Category != nil && !r.Category.Valid() {
		return apperrors.ValidationField("category", "category must be one of: seminar, newsletter, guide, notice")
	}
	return nil
}
