package httpx

import (
	"log/slog"
	"net/http"

	"github.com/brightsprout/kinderportal/internal/adapters/sessiontoken"
	"github.com/brightsprout/kinderportal/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Articles *service.ArticleService
	Auth     *service.AuthService
	Portal   *service.PortalService
	Members  *service.MemberService

	Token        sessiontoken.Config
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router. The returned handler
// already includes the gate middleware, so every mounted route sees the
// access decision engine before its own handler runs.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	articleHandlers := &ArticleHandlers{Svc: services.Articles, Logger: services.Logger}
	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Token:        services.Token,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	portalHandlers := &PortalHandlers{Svc: services.Portal, Logger: services.Logger}
	adminHandlers := &AdminHandlers{
		Articles: services.Articles,
		Members:  services.Members,
		Logger:   services.Logger,
	}

	registerArticleRoutes(mux, articleHandlers)
	registerAuthRoutes(mux, authHandlers)
	registerParentRoutes(mux, portalHandlers)
	registerAdminRoutes(mux, adminHandlers)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Gate(GateConfig{Token: services.Token, Logger: services.Logger})(mux)
}

func registerArticleRoutes(mux *http.ServeMux, h *ArticleHandlers) {
	mux.HandleFunc("GET /api/parent-education", h.List)
	mux.HandleFunc("GET /api/parent-education/{slug}", h.Get)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /member/login", h.LoginPage)
	mux.HandleFunc("POST /member/login", h.Login)
	mux.HandleFunc("POST /member/logout", h.Logout)
}

func registerParentRoutes(mux *http.ServeMux, h *PortalHandlers) {
	mux.HandleFunc("GET /parents", h.Dashboard)
	mux.HandleFunc("GET /parents/announcements", h.Announcements)
	mux.HandleFunc("GET /parents/meals", h.Meals)
	mux.HandleFunc("GET /parents/news", h.News)
	mux.HandleFunc("GET /parents/pending", h.Pending)
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers) {
	mux.HandleFunc("GET /admin", h.Summary)
	mux.HandleFunc("GET /admin/articles", h.ListArticles)
	mux.HandleFunc("POST /admin/articles", h.CreateArticle)
	mux.HandleFunc("PUT /admin/articles/{id}", h.UpdateArticle)
	mux.HandleFunc("DELETE /admin/articles/{id}", h.DeleteArticle)
	mux.HandleFunc("GET /admin/members/pending", h.ListPendingMembers)
	mux.HandleFunc("POST /admin/members/{id}/activate", h.ActivateMember)
}
