package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/brightsprout/kinderportal/internal/adapters/sessiontoken"
	"github.com/brightsprout/kinderportal/internal/domain/gate"
)

// GateConfig carries the gating pipeline's process-wide inputs. Token
// configuration is injected here at startup; nothing inside the decision
// path reads ambient state.
type GateConfig struct {
	Token  sessiontoken.Config
	Logger *slog.Logger
}

// Gate returns the request-gating middleware for the protected site areas.
// Every request is classified by path; public paths always pass through,
// with any valid session claims attached to the context so handlers can
// honor staff-only options. Protected paths go through token verification
// and the access decision engine, which resolves to a pass-through or a
// redirect. Faults never escape this middleware: every code path ends in a
// response or the next handler.
func Gate(cfg GateConfig) func(http.Handler) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tier := gate.Classify(r.URL.Path)
			if tier == gate.TierPublic {
				// Best effort only: a token fault on a public path means an
				// anonymous visitor, never a denial.
				if claims, err := sessiontoken.ReadToken(r, cfg.Token); err == nil && claims != nil {
					r = r.WithContext(SetClaimsInContext(r.Context(), claims))
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := sessiontoken.ReadToken(r, cfg.Token)
			switch {
			case err == nil:
				// Either valid claims or no cookie at all.
			case errors.Is(err, sessiontoken.ErrSecretNotConfigured):
				// Operator error: deny regardless of tier, with a diagnostic.
				logger.ErrorContext(r.Context(), "session secret not configured", "path", r.URL.Path)
				redirect(w, r, gate.RedirectLogin(r.URL.Path, gate.ReasonMissingSecret))
				return
			case errors.Is(err, sessiontoken.ErrTokenInvalid):
				// Normal verification failure: proceed as unauthenticated.
				logger.WarnContext(r.Context(), "session token rejected", "path", r.URL.Path, "error", err)
				claims = nil
			default:
				// Unexpected verification error: fail closed with a diagnostic.
				logger.ErrorContext(r.Context(), "session token verification failed", "path", r.URL.Path, "error", err)
				redirect(w, r, gate.RedirectLogin(r.URL.Path, gate.ReasonTokenError))
				return
			}

			outcome := gate.Decide(tier, claims, r.URL.Path)
			if !outcome.Allow {
				redirect(w, r, outcome)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetClaimsInContext(r.Context(), claims)))
		})
	}
}

func redirect(w http.ResponseWriter, r *http.Request, outcome gate.Outcome) {
	http.Redirect(w, r, outcome.Location, http.StatusSeeOther)
}
