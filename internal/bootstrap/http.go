package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/brightsprout/kinderportal/config"
	"github.com/brightsprout/kinderportal/internal/adapters/sessiontoken"
	httpx "github.com/brightsprout/kinderportal/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	if appCfg.Auth.Secret() == "" {
		logger.Warn("no session secret configured; protected routes will redirect to login")
	}

	router := httpx.NewRouter(httpx.RouterServices{
		Articles:     cfg.Services.Articles,
		Auth:         cfg.Services.Auth,
		Portal:       cfg.Services.Portal,
		Members:      cfg.Services.Members,
		Token:        TokenConfig(appCfg.Auth),
		CookieDomain: appCfg.HTTP.CookieDomain,
		Logger:       logger,
	})

	// Order: Recover -> Logging -> Router (the gate is inside the router)
	handler := httpx.Recover(logger)(httpx.Logging(logger)(router))

	return startServer(logger, handler, appCfg.HTTP.Addr)
}

// TokenConfig maps auth configuration onto the session token settings.
func TokenConfig(auth config.AuthConfig) sessiontoken.Config {
	return sessiontoken.Config{
		Secret:     auth.Secret(),
		CookieName: auth.CookieName,
		TTL:        auth.SessionTTL,
	}
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, timeout time.Duration, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}
	return nil
}
