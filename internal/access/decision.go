package access

// Decision is the outcome of evaluating one request at the edge.
type Decision struct {
	// Location is empty when the request is allowed through.
	Location string
}

// Allow lets the request through unchanged.
func Allow() Decision { return Decision{} }

// Redirect sends the caller to location.
func Redirect(location string) Decision { return Decision{Location: location} }

// Allowed reports whether the request proceeds to its handler.
func (d Decision) Allowed() bool { return d.Location == "" }

// RoleLookup fetches the role of the current session's profile. It is
// called at most once per evaluation and only when the outcome depends on it.
type RoleLookup func() (Role, error)

// Evaluate decides what happens to a request of the given class.
//
// A failed role lookup counts as a non-admin profile, so admin areas stay
// closed when the profile store is unavailable.
func Evaluate(class RouteClass, hasSession bool, lookup RoleLookup) Decision {
	switch class {
	case ClassAuthOnly:
		if !hasSession {
			return Allow()
		}
		return Redirect(resolveRole(lookup).LandingPath())

	case ClassAdminLogin:
		if hasSession && resolveRole(lookup).IsAdmin() {
			return Redirect(AdminDashboardPath)
		}
		// Non-admin sessions still see the form so the failed attempt is
		// visible to them.
		return Allow()

	case ClassAdminOnly:
		if !hasSession {
			return Redirect(AdminLoginPath)
		}
		if !resolveRole(lookup).IsAdmin() {
			return Redirect(HomePath)
		}
		return Allow()

	default:
		return Allow()
	}
}

func resolveRole(lookup RoleLookup) Role {
	if lookup == nil {
		return RoleCustomer
	}
	role, err := lookup()
	if err != nil {
		return RoleCustomer
	}
	return role
}
