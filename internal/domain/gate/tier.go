// Package gate implements request gating for the protected site areas:
// route classification and the access decision engine. It is pure and has
// no knowledge of HTTP beyond request paths.
package gate

import "strings"

// Tier is the protection level of a request path.
type Tier string

const (
	TierPublic Tier = "public"
	TierAdmin  Tier = "admin"
	TierParent Tier = "parent"
)

// Classify maps a request path to its protection tier. The two protected
// prefixes are disjoint, so plain prefix matching is sufficient.
func Classify(path string) Tier {
	switch {
	case strings.HasPrefix(path, "/admin"):
		return TierAdmin
	case strings.HasPrefix(path, "/parents"):
		return TierParent
	default:
		return TierPublic
	}
}
