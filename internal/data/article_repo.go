package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brightsprout/kinderportal/internal/data/pgxutil"
	"github.com/brightsprout/kinderportal/internal/domain/model"
)

// ArticleRepo provides database operations for parent-education articles.
type ArticleRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewArticleRepo creates a new ArticleRepo with real time provider.
func NewArticleRepo(db *sql.DB) *ArticleRepo {
	return &ArticleRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewArticleRepoWithTimeProvider creates a new ArticleRepo with a custom time provider (useful for tests).
func NewArticleRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ArticleRepo {
	return &ArticleRepo{DB: db, timeProvider: tp}
}

const articleColumns = `id, slug, title, category, excerpt, body, published, created_at, updated_at`

const articleGetBySlugQuery = `
	SELECT ` + articleColumns + `
	FROM articles
	WHERE slug = $1`

// List retrieves articles matching the options plus the total match count.
// Results are ordered newest first.
func (r *ArticleRepo) List(ctx context.Context, opts model.ArticlesListOptions) ([]model.Article, int, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := max(opts.Offset, 0)

	where, args := buildArticleWhere(opts)

	var (
		items []model.Article
		total int
	)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		countQuery := "SELECT count(*) FROM articles" + where
		if countErr := conn.QueryRow(ctx, countQuery, args...).Scan(&total); countErr != nil {
			return fmt.Errorf("count articles: %w", countErr)
		}

		listArgs := append(args, limit, offset)
		listQuery := "SELECT " + articleColumns + " FROM articles" + where +
			" ORDER BY created_at DESC" +
			" LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
		rows, queryErr := conn.Query(ctx, listQuery, listArgs...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		items, collectErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Article])
		return collectErr
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	return items, total, nil
}

// GetBySlug retrieves a single article by its slug.
func (r *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, articleGetBySlugQuery, slug)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		article, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Article])
		return collectErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}
	return &article, nil
}

// Create inserts a new article.
func (r *ArticleRepo) Create(ctx context.Context, req *model.CreateArticleRequest) (*model.Article, error) {
	if req == nil {
		return nil, errors.New("create article request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Article
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, `
			INSERT INTO articles (slug, title, category, excerpt, body, published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			RETURNING `+articleColumns,
			strings.ToLower(strings.TrimSpace(req.Slug)),
			strings.TrimSpace(req.Title),
			req.Category,
			req.Excerpt,
			req.Body,
			req.Published,
			createdAt,
		)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Article])
		return collectErr
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// Update updates fields of an article. Nil fields in the request are left unchanged.
func (r *ArticleRepo) Update(ctx context.Context, id string, req model.UpdateArticleRequest) (*model.Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setClause, args := r.buildUpdateClause(req)
	if setClause == "" {
		return r.getByID(ctx, id)
	}

	var out model.Article
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		args = append(args, id)
		query := "UPDATE articles SET " + setClause +
			" WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING " + articleColumns
		rows, queryErr := conn.Query(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		out, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Article])
		return collectErr
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// Delete deletes an article by ID, returning the removed row's slug.
func (r *ArticleRepo) Delete(ctx context.Context, id string) (string, bool, error) {
	var slug string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `DELETE FROM articles WHERE id = $1 RETURNING slug`, id).Scan(&slug)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to delete article: %w", err)
	}
	return slug, true, nil
}

// --- helpers ---

// buildArticleWhere builds the WHERE clause and args shared by the count and
// page queries.
func buildArticleWhere(opts model.ArticlesListOptions) (string, []any) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)
	nextIdx := func() int { return len(args) + 1 }

	if !opts.IncludeDrafts {
		conds = append(conds, "published = TRUE")
	}
	if opts.Category != nil && *opts.Category != "" {
		conds = append(conds, fmt.Sprintf("category = $%d", nextIdx()))
		args = append(args, *opts.Category)
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		pattern := "%" + strings.TrimSpace(*opts.Q) + "%"
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR excerpt ILIKE $%d)", nextIdx(), nextIdx()))
		args = append(args, pattern)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// buildUpdateClause builds the SQL SET clause and args for updating an article.
func (r *ArticleRepo) buildUpdateClause(req model.UpdateArticleRequest) (string, []any) {
	setParts := make([]string, 0, 6)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Category != nil {
		setParts = append(setParts, fmt.Sprintf("category = $%d", nextIdx()))
		args = append(args, *req.Category)
	}
	if req.Excerpt != nil {
		setParts = append(setParts, fmt.Sprintf("excerpt = $%d", nextIdx()))
		args = append(args, *req.Excerpt)
	}
	if req.Body != nil {
		setParts = append(setParts, fmt.Sprintf("body = $%d", nextIdx()))
		args = append(args, *req.Body)
	}
	if req.Published != nil {
		setParts = append(setParts, fmt.Sprintf("published = $%d", nextIdx()))
		args = append(args, *req.Published)
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

func (r *ArticleRepo) getByID(ctx context.Context, id string) (*model.Article, error) {
	var article model.Article
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = $1", id)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		article, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Article])
		return collectErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("failed to get article by ID: %w", err)
	}
	return &article, nil
}

func (r *ArticleRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrArticleNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrArticleSlugExists
	}
	return err
}
