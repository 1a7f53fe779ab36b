package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brightsprout/kinderportal/internal/data/pgxutil"
	"github.com/brightsprout/kinderportal/internal/domain/model"
)

// AnnouncementRepo provides database operations for portal announcements.
type AnnouncementRepo struct {
	DB *sql.DB
}

// NewAnnouncementRepo creates a new AnnouncementRepo.
func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo {
	return &AnnouncementRepo{DB: db}
}

const announcementListQuery = `
	SELECT id, title, body, pinned, created_at
	FROM announcements
	ORDER BY pinned DESC, created_at DESC
	LIMIT $1 OFFSET $2`

// List retrieves announcements, pinned first then newest first.
func (r *AnnouncementRepo) List(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	if limit <= 0 {
		limit = 20
	}
	offset = max(offset, 0)

	var items []model.Announcement
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, announcementListQuery, limit, offset)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		items, collectErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Announcement])
		return collectErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return items, nil
}

// MealPlanRepo provides database operations for daily meal plans.
type MealPlanRepo struct {
	DB *sql.DB
}

// NewMealPlanRepo creates a new MealPlanRepo.
func NewMealPlanRepo(db *sql.DB) *MealPlanRepo {
	return &MealPlanRepo{DB: db}
}

const mealPlanWeekQuery = `
	SELECT id, day, breakfast, lunch, snack, created_at
	FROM meal_plans
	WHERE day >= $1 AND day < $2
	ORDER BY day ASC`

// ListWeek retrieves the meal plans for the seven days starting at weekStart.
func (r *MealPlanRepo) ListWeek(ctx context.Context, weekStart time.Time) ([]model.MealPlan, error) {
	start := weekStart.UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 7)

	var items []model.MealPlan
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, mealPlanWeekQuery, start, end)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		items, collectErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.MealPlan])
		return collectErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	return items, nil
}

// ClassNewsRepo provides database operations for class news posts.
type ClassNewsRepo struct {
	DB *sql.DB
}

// NewClassNewsRepo creates a new ClassNewsRepo.
func NewClassNewsRepo(db *sql.DB) *ClassNewsRepo {
	return &ClassNewsRepo{DB: db}
}

// List retrieves class news, newest first, optionally filtered by class name.
func (r *ClassNewsRepo) List(ctx context.Context, opts model.ClassNewsListOptions) ([]model.ClassNews, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := max(opts.Offset, 0)

	query := "SELECT id, class_name, title, body, created_at FROM class_news"
	args := make([]any, 0, 3)
	if opts.ClassName != nil && strings.TrimSpace(*opts.ClassName) != "" {
		args = append(args, strings.TrimSpace(*opts.ClassName))
		query += " WHERE class_name = $1"
	}
	args = append(args, limit, offset)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	var items []model.ClassNews
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		items, collectErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.ClassNews])
		return collectErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list class news: %w", err)
	}
	return items, nil
}
