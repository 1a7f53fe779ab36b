package httpx

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// parseIntQuery returns the integer value of a query param or a default.
// It is tolerant of missing/invalid values.
func parseIntQuery(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// parseLimitQuery reads an explicit "limit" query param. Absent or
// unparseable values return 0, which downstream code maps to its default.
// An explicit value below 1 is bumped to 1 rather than falling back to the
// default, so "limit=0" means the smallest page, not the usual one.
func parseLimitQuery(r *http.Request) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	if i < 1 {
		return 1
	}
	return i
}

// ParsePageLimit parses 1-indexed "page" and "limit" query params and clamps
// them to sane bounds: page >= 1, limit in [1, maxLimit].
func ParsePageLimit(r *http.Request, defLimit, maxLimit int) (int, int) {
	if maxLimit < 1 {
		maxLimit = 1
	}

	page := parseIntQuery(r, "page", 1)
	limit := parseIntQuery(r, "limit", defLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// safeRedirectPath restricts a redirect target to a relative path within
// the app. Absolute and scheme-relative URLs collapse to "/".
func safeRedirectPath(raw string) string {
	if raw == "" {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	// Reject "//host" style scheme-relative references.
	if strings.HasPrefix(raw, "//") {
		return "/"
	}
	return u.RequestURI()
}

// noStore marks a response as non-cacheable.
func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}
