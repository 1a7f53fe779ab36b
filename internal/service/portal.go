package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brightsprout/kinderportal/internal/domain/model"
	"github.com/brightsprout/kinderportal/internal/ports"
)

// PortalServiceOptions groups dependencies for PortalService.
type PortalServiceOptions struct {
	Announcements ports.AnnouncementRepository
	Meals         ports.MealPlanRepository
	News          ports.ClassNewsRepository
}

// PortalService serves the signed-in parent area: announcements, meal
// plans, and class news.
type PortalService struct {
	announcements ports.AnnouncementRepository
	meals         ports.MealPlanRepository
	news          ports.ClassNewsRepository
}

// NewPortalService constructs a new PortalService.
func NewPortalService(opts PortalServiceOptions) *PortalService {
	return &PortalService{
		announcements: opts.Announcements,
		meals:         opts.Meals,
		news:          opts.News,
	}
}

// Dashboard aggregates the portal landing data.
type Dashboard struct {
	Announcements []model.Announcement `json:"announcements"`
	Meals         []model.MealPlan     `json:"meals"`
}

const dashboardAnnouncementCount = 5

// Dashboard fetches the landing page data. The two reads are independent,
// so they run concurrently.
func (s *PortalService) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	var dash Dashboard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.announcements.List(gctx, dashboardAnnouncementCount, 0)
		if err != nil {
			return err
		}
		dash.Announcements = items
		return nil
	})
	g.Go(func() error {
		items, err := s.meals.ListWeek(gctx, WeekStart(now))
		if err != nil {
			return err
		}
		dash.Meals = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dash, nil
}

// Announcements returns a page of announcements.
func (s *PortalService) Announcements(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	return s.announcements.List(ctx, limit, offset)
}

// Meals returns the meal plans for the week containing the given day.
func (s *PortalService) Meals(ctx context.Context, day time.Time) ([]model.MealPlan, error) {
	return s.meals.ListWeek(ctx, WeekStart(day))
}

// News returns a page of class news, optionally filtered by class.
func (s *PortalService) News(ctx context.Context, opts model.ClassNewsListOptions) ([]model.ClassNews, error) {
	return s.news.List(ctx, opts)
}

// WeekStart returns the Monday of the week containing t, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	t = t.UTC().Truncate(24 * time.Hour)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the preceding Monday-based week
	}
	return t.AddDate(0, 0, 1-weekday)
}
