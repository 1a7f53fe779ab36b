package gate

import (
	"net/url"

	domainauth "github.com/brightsprout/kinderportal/internal/domain/auth"
)

// Well-known paths used by decision outcomes.
const (
	LoginPath       = "/member/login"
	HomePath        = "/"
	ParentsHomePath = "/parents"
	PendingPath     = "/parents/pending"
)

// Reason is a diagnostic code attached to login redirects caused by
// configuration or token faults rather than a plain missing session.
type Reason string

const (
	ReasonMissingSecret Reason = "missing-secret"
	ReasonTokenError    Reason = "token-error"
)

// Outcome is the result of an access decision: either pass the request
// through unchanged or redirect to Location.
type Outcome struct {
	Allow    bool
	Location string
}

// Allowed passes the request through.
func Allowed() Outcome { return Outcome{Allow: true} }

// RedirectLogin sends the visitor to the login page, preserving the
// originally requested path so the post-login flow can return them.
func RedirectLogin(path string, reason Reason) Outcome {
	q := url.Values{}
	q.Set("redirect", path)
	if reason != "" {
		q.Set("reason", string(reason))
	}
	u := url.URL{Path: LoginPath, RawQuery: q.Encode()}
	return Outcome{Location: u.String()}
}

// RedirectHome sends the visitor to the public home page.
func RedirectHome() Outcome { return Outcome{Location: HomePath} }

// RedirectPending sends a not-yet-activated member to the pending landing page.
func RedirectPending() Outcome { return Outcome{Location: PendingPath} }

// RedirectParentsHome sends an activated member away from the pending page.
func RedirectParentsHome() Outcome { return Outcome{Location: ParentsHomePath} }

// Decide computes the access outcome for a request. It is a pure function
// of its three inputs; repeated calls with the same inputs return the same
// outcome. Absent or invalid claims on a protected tier never allow.
//
//	tier    claims   role/status        pending page?   outcome
//	admin   absent   -                  -               login
//	admin   present  role != admin      -               home
//	admin   present  role == admin      -               allow
//	parent  absent   -                  -               login
//	parent  present  status != active   yes             allow
//	parent  present  status != active   no              pending
//	parent  present  status == active   yes             parents home
//	parent  present  status == active   no              allow
//	public  any      any                -               allow
func Decide(tier Tier, claims *domainauth.Claims, path string) Outcome {
	switch tier {
	case TierAdmin:
		if claims == nil {
			return RedirectLogin(path, "")
		}
		if claims.Role != domainauth.RoleAdmin {
			return RedirectHome()
		}
		return Allowed()

	case TierParent:
		if claims == nil {
			return RedirectLogin(path, "")
		}
		atPending := path == PendingPath
		if !claims.IsActive() {
			if atPending {
				return Allowed()
			}
			return RedirectPending()
		}
		if atPending {
			// The pending page is moot once activated.
			return RedirectParentsHome()
		}
		return Allowed()

	default:
		return Allowed()
	}
}
