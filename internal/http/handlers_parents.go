package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/brightsprout/kinderportal/internal/domain/model"
	"github.com/brightsprout/kinderportal/internal/service"
)

// PortalServiceInterface defines the interface for the parent portal data.
type PortalServiceInterface interface {
	Dashboard(ctx context.Context, now time.Time) (*service.Dashboard, error)
	Announcements(ctx context.Context, limit, offset int) ([]model.Announcement, error)
	Meals(ctx context.Context, day time.Time) ([]model.MealPlan, error)
	News(ctx context.Context, opts model.ClassNewsListOptions) ([]model.ClassNews, error)
}

// PortalHandlers provides HTTP handlers for the signed-in parent area.
// All routes are behind the gate middleware, so claims are guaranteed to be
// present and active (except the pending page).
type PortalHandlers struct {
	Svc    PortalServiceInterface
	Logger *slog.Logger
}

func (h *PortalHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Dashboard handles GET /parents.
func (h *PortalHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Svc.Dashboard(r.Context(), time.Now())
	if err != nil {
		h.logger().ErrorContext(r.Context(), "load portal dashboard failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	noStore(w)
	WriteJSON(w, http.StatusOK, dash)
}

// Announcements handles GET /parents/announcements.
func (h *PortalHandlers) Announcements(w http.ResponseWriter, r *http.Request) {
	page, limit := ParsePageLimit(r, 20, 50)
	items, err := h.Svc.Announcements(r.Context(), limit, (page-1)*limit)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list announcements failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if items == nil {
		items = []model.Announcement{}
	}
	noStore(w)
	WriteJSON(w, http.StatusOK, map[string]any{"data": items})
}

// Meals handles GET /parents/meals?week=YYYY-MM-DD (defaults to the current week).
func (h *PortalHandlers) Meals(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if raw := r.URL.Query().Get("week"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "week must be a YYYY-MM-DD date")
			return
		}
		day = parsed
	}

	items, err := h.Svc.Meals(r.Context(), day)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list meal plans failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if items == nil {
		items = []model.MealPlan{}
	}
	noStore(w)
	WriteJSON(w, http.StatusOK, map[string]any{
		"weekStart": service.WeekStart(day).Format("2006-01-02"),
		"data":      items,
	})
}

// News handles GET /parents/news?class=<name>.
func (h *PortalHandlers) News(w http.ResponseWriter, r *http.Request) {
	page, limit := ParsePageLimit(r, 20, 50)
	opts := model.ClassNewsListOptions{Limit: limit, Offset: (page - 1) * limit}
	if class := r.URL.Query().Get("class"); class != "" {
		opts.ClassName = &class
	}

	items, err := h.Svc.News(r.Context(), opts)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "list class news failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if items == nil {
		items = []model.ClassNews{}
	}
	noStore(w)
	WriteJSON(w, http.StatusOK, map[string]any{"data": items})
}

// Pending handles GET /parents/pending, the landing page for members whose
// registration has not been activated yet. The gate lets unactivated
// members through to exactly this path.
func (h *PortalHandlers) Pending(w http.ResponseWriter, r *http.Request) {
	noStore(w)
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "pending",
		"message": "Your registration is awaiting approval by the kindergarten staff.",
	})
}
