package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// countingLookup returns a RoleLookup and a pointer to its call count.
func countingLookup(role Role, err error) (RoleLookup, *int) {
	calls := 0
	return func() (Role, error) {
		calls++
		return role, err
	}, &calls
}

func TestEvaluate_Public(t *testing.T) {
	lookup, calls := countingLookup(RoleAdmin, nil)

	assert.True(t, Evaluate(ClassPublic, false, lookup).Allowed())
	assert.True(t, Evaluate(ClassPublic, true, lookup).Allowed())
	assert.Zero(t, *calls, "public paths never need the profile")
}

func TestEvaluate_AuthOnly(t *testing.T) {
	t.Run("anonymous sees the form", func(t *testing.T) {
		lookup, calls := countingLookup(RoleCustomer, nil)
		assert.True(t, Evaluate(ClassAuthOnly, false, lookup).Allowed())
		assert.Zero(t, *calls)
	})

	t.Run("admin goes to dashboard", func(t *testing.T) {
		lookup, calls := countingLookup(RoleAdmin, nil)
		assert.Equal(t, Redirect(AdminDashboardPath), Evaluate(ClassAuthOnly, true, lookup))
		assert.Equal(t, 1, *calls)
	})

	t.Run("customer goes to catalog", func(t *testing.T) {
		lookup, _ := countingLookup(RoleCustomer, nil)
		assert.Equal(t, Redirect(CustomerLandingPath), Evaluate(ClassAuthOnly, true, lookup))
	})

	t.Run("lookup failure lands as customer", func(t *testing.T) {
		lookup, _ := countingLookup(RoleAdmin, errors.New("db down"))
		assert.Equal(t, Redirect(CustomerLandingPath), Evaluate(ClassAuthOnly, true, lookup))
	})
}

func TestEvaluate_AdminOnly(t *testing.T) {
	t.Run("anonymous goes to admin login", func(t *testing.T) {
		lookup, calls := countingLookup(RoleAdmin, nil)
		assert.Equal(t, Redirect(AdminLoginPath), Evaluate(ClassAdminOnly, false, lookup))
		assert.Zero(t, *calls, "no session means no profile lookup")
	})

	t.Run("customer goes home", func(t *testing.T) {
		lookup, _ := countingLookup(RoleCustomer, nil)
		assert.Equal(t, Redirect(HomePath), Evaluate(ClassAdminOnly, true, lookup))
	})

	t.Run("admin allowed", func(t *testing.T) {
		lookup, calls := countingLookup(RoleAdmin, nil)
		assert.True(t, Evaluate(ClassAdminOnly, true, lookup).Allowed())
		assert.Equal(t, 1, *calls)
	})

	t.Run("lookup failure fails closed", func(t *testing.T) {
		lookup, _ := countingLookup(RoleAdmin, errors.New("timeout"))
		assert.Equal(t, Redirect(HomePath), Evaluate(ClassAdminOnly, true, lookup))
	})

	t.Run("nil lookup fails closed", func(t *testing.T) {
		assert.Equal(t, Redirect(HomePath), Evaluate(ClassAdminOnly, true, nil))
	})
}

func TestEvaluate_AdminLogin(t *testing.T) {
	t.Run("anonymous sees the form", func(t *testing.T) {
		lookup, calls := countingLookup(RoleAdmin, nil)
		assert.True(t, Evaluate(ClassAdminLogin, false, lookup).Allowed())
		assert.Zero(t, *calls)
	})

	t.Run("admin skips the form", func(t *testing.T) {
		lookup, _ := countingLookup(RoleAdmin, nil)
		assert.Equal(t, Redirect(AdminDashboardPath), Evaluate(ClassAdminLogin, true, lookup))
	})

	t.Run("customer still sees the form", func(t *testing.T) {
		lookup, _ := countingLookup(RoleCustomer, nil)
		assert.True(t, Evaluate(ClassAdminLogin, true, lookup).Allowed())
	})

	t.Run("lookup failure shows the form", func(t *testing.T) {
		lookup, _ := countingLookup(RoleAdmin, errors.New("boom"))
		assert.True(t, Evaluate(ClassAdminLogin, true, lookup).Allowed())
	})
}

func TestEvaluate_ScenariosByPath(t *testing.T) {
	admin, _ := countingLookup(RoleAdmin, nil)
	customer, _ := countingLookup(RoleCustomer, nil)

	assert.Equal(t, AdminLoginPath, Evaluate(Classify("/admin/dashboard"), false, nil).Location)
	assert.Equal(t, HomePath, Evaluate(Classify("/admin/dashboard"), true, customer).Location)
	assert.Equal(t, AdminDashboardPath, Evaluate(Classify("/admin/login"), true, admin).Location)
	assert.Equal(t, AdminDashboardPath, Evaluate(Classify("/auth/login"), true, admin).Location)
	assert.Equal(t, CustomerLandingPath, Evaluate(Classify("/auth/login"), true, customer).Location)
}
