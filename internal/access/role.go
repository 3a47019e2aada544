// Package access holds the request authorization policy: which role a
// profile has, which class a path belongs to, and what the edge does with a
// request of that class.
package access

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role is the closed set of profile roles.
type Role int

const (
	RoleCustomer Role = iota
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleCustomer: "customer",
	RoleAdmin:    "admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole maps the stored representation back onto a Role.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	return RoleCustomer, fmt.Errorf("unknown role %q", s)
}

// IsAdmin reports whether r grants back-office access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// LandingPath is where a signed-in profile of this role is sent when it
// visits a sign-in or sign-up form.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return AdminDashboardPath
	case RoleCustomer:
		return CustomerLandingPath
	default:
		return HomePath
	}
}

// Value stores the role by name.
func (r Role) Value() (driver.Value, error) {
	if _, ok := roleNames[r]; !ok {
		return nil, fmt.Errorf("invalid role %d", int(r))
	}
	return r.String(), nil
}

// Scan reads a role stored by name.
func (r *Role) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Role", src)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
