// Package devseed populates a development database with sample accounts
// and content. It is only invoked when the server runs in dev mode and is
// idempotent, so restarting the server does not duplicate rows.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type seedMember struct {
	Email    string
	Name     string
	Password string
	Role     string
	Status   string
}

var seedMembers = []seedMember{
	{Email: "admin@brightsprout.test", Name: "Site Admin", Password: "admin-dev-password", Role: "admin", Status: "active"},
	{Email: "teacher@brightsprout.test", Name: "Sunflower Teacher", Password: "teacher-dev-password", Role: "teacher", Status: "active"},
	{Email: "parent@brightsprout.test", Name: "Active Parent", Password: "parent-dev-password", Role: "parent", Status: "active"},
	{Email: "pending@brightsprout.test", Name: "Pending Parent", Password: "pending-dev-password", Role: "parent", Status: "pending"},
}

// Run executes the development seeding workflow against the provided DB.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := insertMembers(ctx, db); err != nil {
		return fmt.Errorf("seed members: %w", err)
	}
	if err := insertArticles(ctx, db); err != nil {
		return fmt.Errorf("seed articles: %w", err)
	}
	if err := insertPortalContent(ctx, db); err != nil {
		return fmt.Errorf("seed portal content: %w", err)
	}

	logger.InfoContext(ctx, "development seed data ready", "members", len(seedMembers))
	return nil
}

func insertMembers(ctx context.Context, db *sql.DB) error {
	for _, m := range seedMembers {
		hash, err := bcrypt.GenerateFromPassword([]byte(m.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", m.Email, err)
		}
		_, err = db.ExecContext(ctx, `
			INSERT INTO members (email, name, password_hash, role, status)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (email) DO NOTHING`,
			m.Email, m.Name, string(hash), m.Role, m.Status)
		if err != nil {
			return fmt.Errorf("insert member %s: %w", m.Email, err)
		}
	}
	return nil
}

func insertArticles(ctx context.Context, db *sql.DB) error {
	articles := []struct {
		Slug, Title, Category, Excerpt, Body string
		Published                            bool
	}{
		{
			Slug:      "settling-in-tips",
			Title:     "Helping Your Child Settle In",
			Category:  "guide",
			Excerpt:   "Practical tips for the first weeks of kindergarten.",
			Body:      "Starting kindergarten is a big step. Keep goodbyes short, talk about the day ahead, and build a consistent morning routine.",
			Published: true,
		},
		{
			Slug:      "spring-parent-seminar",
			Title:     "Spring Parent Seminar: Early Literacy",
			Category:  "seminar",
			Excerpt:   "Join our spring seminar on reading together at home.",
			Body:      "Our spring seminar covers picture book selection, shared reading habits, and questions to ask while reading.",
			Published: true,
		},
		{
			Slug:      "draft-summer-newsletter",
			Title:     "Summer Newsletter (draft)",
			Category:  "newsletter",
			Excerpt:   "Upcoming summer program details.",
			Body:      "Details of the summer program are still being finalized.",
			Published: false,
		},
	}

	for _, a := range articles {
		_, err := db.ExecContext(ctx, `
			INSERT INTO articles (slug, title, category, excerpt, body, published)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (slug) DO NOTHING`,
			a.Slug, a.Title, a.Category, a.Excerpt, a.Body, a.Published)
		if err != nil {
			return fmt.Errorf("insert article %s: %w", a.Slug, err)
		}
	}
	return nil
}

func insertPortalContent(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		INSERT INTO announcements (title, body, pinned)
		SELECT 'Welcome to the parent portal', 'Class news and weekly menus are posted here.', TRUE
		WHERE NOT EXISTS (SELECT 1 FROM announcements)`); err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}

	// One week of menus starting Monday of the current week.
	day := mondayOf(time.Now().UTC())
	for i := 0; i < 5; i++ {
		_, err := db.ExecContext(ctx, `
			INSERT INTO meal_plans (day, breakfast, lunch, snack)
			VALUES ($1, 'Porridge and fruit', 'Rice, soup, and vegetables', 'Yogurt')
			ON CONFLICT (day) DO NOTHING`,
			day.AddDate(0, 0, i))
		if err != nil {
			return fmt.Errorf("insert meal plan: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, `
		INSERT INTO class_news (class_name, title, body)
		SELECT 'sunflower', 'Garden week', 'The sunflower class planted seedlings this week.'
		WHERE NOT EXISTS (SELECT 1 FROM class_news)`); err != nil {
		return fmt.Errorf("insert class news: %w", err)
	}
	return nil
}

func mondayOf(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
