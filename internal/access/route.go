package access

import "strings"

// Canonical redirect destinations.
const (
	HomePath            = "/"
	CustomerLandingPath = "/produk"
	AdminLoginPath      = "/admin/login"
	AdminDashboardPath  = "/admin/dashboard"
)

// RouteClass selects the authorization rule applied to a request path.
type RouteClass int

const (
	ClassPublic RouteClass = iota
	ClassAuthOnly
	ClassAdminOnly
	ClassAdminLogin
)

func (c RouteClass) String() string {
	switch c {
	case ClassAuthOnly:
		return "auth-only"
	case ClassAdminOnly:
		return "admin-only"
	case ClassAdminLogin:
		return "admin-login"
	default:
		return "public"
	}
}

type routeRule struct {
	prefix string
	class  RouteClass
}

// routeTable is checked top to bottom; the first matching prefix wins.
var routeTable = []routeRule{
	{prefix: AdminLoginPath, class: ClassAdminLogin},
	{prefix: "/admin", class: ClassAdminOnly},
	{prefix: "/auth", class: ClassAuthOnly},
}

// Classify maps a request path onto its route class. Prefixes match whole
// path segments, so "/administrator" is public while "/admin/produk" is not.
func Classify(path string) RouteClass {
	if path == "" {
		path = "/"
	}
	for _, rule := range routeTable {
		if hasSegmentPrefix(path, rule.prefix) {
			return rule.class
		}
	}
	return ClassPublic
}

func hasSegmentPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
