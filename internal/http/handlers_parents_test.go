package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsprout/kinderportal/internal/domain/model"
	"github.com/brightsprout/kinderportal/internal/service"
)

type fakePortalService struct {
	dashboardFunc func(context.Context, time.Time) (*service.Dashboard, error)
	mealsFunc     func(context.Context, time.Time) ([]model.MealPlan, error)
	newsFunc      func(context.Context, model.ClassNewsListOptions) ([]model.ClassNews, error)
}

func (f *fakePortalService) Dashboard(ctx context.Context, now time.Time) (*service.Dashboard, error) {
	if f.dashboardFunc != nil {
		return f.dashboardFunc(ctx, now)
	}
	return &service.Dashboard{}, nil
}

func (f *fakePortalService) Announcements(_ context.Context, _, _ int) ([]model.Announcement, error) {
	return nil, nil
}

func (f *fakePortalService) Meals(ctx context.Context, day time.Time) ([]model.MealPlan, error) {
	if f.mealsFunc != nil {
		return f.mealsFunc(ctx, day)
	}
	return nil, nil
}

func (f *fakePortalService) News(ctx context.Context, opts model.ClassNewsListOptions) ([]model.ClassNews, error) {
	if f.newsFunc != nil {
		return f.newsFunc(ctx, opts)
	}
	return nil, nil
}

func TestPortalDashboardHandler(t *testing.T) {
	svc := &fakePortalService{
		dashboardFunc: func(_ context.Context, _ time.Time) (*service.Dashboard, error) {
			return &service.Dashboard{
				Announcements: []model.Announcement{{ID: "n-1", Title: "Welcome"}},
				Meals:         []model.MealPlan{{ID: "m-1"}},
			}, nil
		},
	}
	h := &PortalHandlers{Svc: svc}

	rec := httptest.NewRecorder()
	h.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/parents", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	var dash service.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.Len(t, dash.Announcements, 1)
	assert.Len(t, dash.Meals, 1)
}

func TestPortalMealsHandlerWeekParam(t *testing.T) {
	var gotDay time.Time
	svc := &fakePortalService{
		mealsFunc: func(_ context.Context, day time.Time) ([]model.MealPlan, error) {
			gotDay = day
			return []model.MealPlan{}, nil
		},
	}
	h := &PortalHandlers{Svc: svc}

	rec := httptest.NewRecorder()
	h.Meals(rec, httptest.NewRequest(http.MethodGet, "/parents/meals?week=2026-08-26", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2026, gotDay.Year())
	assert.Equal(t, time.August, gotDay.Month())
	assert.Equal(t, 26, gotDay.Day())
	assert.Contains(t, rec.Body.String(), `"weekStart":"2026-08-24"`)
}

func TestPortalMealsHandlerBadWeekParam(t *testing.T) {
	h := &PortalHandlers{Svc: &fakePortalService{}}

	rec := httptest.NewRecorder()
	h.Meals(rec, httptest.NewRequest(http.MethodGet, "/parents/meals?week=next-week", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPortalNewsHandlerClassFilter(t *testing.T) {
	var gotOpts model.ClassNewsListOptions
	svc := &fakePortalService{
		newsFunc: func(_ context.Context, opts model.ClassNewsListOptions) ([]model.ClassNews, error) {
			gotOpts = opts
			return nil, nil
		},
	}
	h := &PortalHandlers{Svc: svc}

	rec := httptest.NewRecorder()
	h.News(rec, httptest.NewRequest(http.MethodGet, "/parents/news?class=sunflower", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotOpts.ClassName)
	assert.Equal(t, "sunflower", *gotOpts.ClassName)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestPortalPendingHandler(t *testing.T) {
	h := &PortalHandlers{Svc: &fakePortalService{}}

	rec := httptest.NewRecorder()
	h.Pending(rec, httptest.NewRequest(http.MethodGet, "/parents/pending", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)
}
