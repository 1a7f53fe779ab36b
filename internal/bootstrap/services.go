package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/brightsprout/kinderportal/config"
	redisadapter "github.com/brightsprout/kinderportal/internal/adapters/redis"
	"github.com/brightsprout/kinderportal/internal/data"
	"github.com/brightsprout/kinderportal/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Articles *service.ArticleService
	Auth     *service.AuthService
	Portal   *service.PortalService
	Members  *service.MemberService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories and adapters into the service layer.
func NewServices(deps *ServiceDeps) ServiceContainer {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}

	articleRepo := data.NewArticleRepo(deps.DB)
	memberRepo := data.NewMemberRepo(deps.DB)
	announcementRepo := data.NewAnnouncementRepo(deps.DB)
	mealPlanRepo := data.NewMealPlanRepo(deps.DB)
	classNewsRepo := data.NewClassNewsRepo(deps.DB)

	articleCache := redisadapter.NewArticleCacheWithTTL(deps.RedisClient, cfg.Cache.ArticleTTL)
	loginThrottle := redisadapter.NewLoginThrottle(deps.RedisClient, redisadapter.ThrottleOptions{
		Limit:  cfg.Auth.LoginMaxAttempts,
		Window: cfg.Auth.LoginWindow,
	})

	return ServiceContainer{
		Articles: service.NewArticleService(service.ArticleServiceOptions{
			Repo:   articleRepo,
			Cache:  articleCache,
			Logger: deps.Logger,
		}),
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Members:  memberRepo,
			Throttle: loginThrottle,
			Logger:   deps.Logger,
		}),
		Portal: service.NewPortalService(service.PortalServiceOptions{
			Announcements: announcementRepo,
			Meals:         mealPlanRepo,
			News:          classNewsRepo,
		}),
		Members: service.NewMemberService(memberRepo),
	}
}
