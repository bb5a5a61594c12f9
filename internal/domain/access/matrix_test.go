package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
)

var managed = []access.Resource{
	access.ResourceWebsites,
	access.ResourceCredentials,
	access.ResourceDomains,
	access.ResourceServers,
}

func TestPermissionsForEveryRoleSeesDashboardAndManagedResources(t *testing.T) {
	for _, role := range access.Roles() {
		perms := access.PermissionsFor(role)
		assert.True(t, perms.Dashboard, "dashboard for %s", role)
		for _, res := range managed {
			f, ok := perms.Flags(res)
			require.True(t, ok)
			assert.True(t, f.Read, "%s read for %s", res, role)
		}
	}
}

func TestPermissionsForOnlySuperAdminCreatesUsers(t *testing.T) {
	for _, role := range access.Roles() {
		want := role == access.RoleSuperAdmin
		assert.Equal(t, want, access.PermissionsFor(role).Users.Create, "users.create for %s", role)
	}
}

func TestPermissionsForIsTotal(t *testing.T) {
	for _, role := range access.Roles() {
		perms := access.PermissionsFor(role)
		assert.NotEqual(t, access.ResourcePermissions{}, perms, "role %s has an empty permission set", role)
		for _, res := range append(managed, access.ResourceUsers) {
			_, ok := perms.Flags(res)
			assert.True(t, ok)
		}
	}
}

func TestPermissionsForUnknownRoleAllowsNothing(t *testing.T) {
	perms := access.PermissionsFor(access.Role("root"))
	assert.Equal(t, access.ResourcePermissions{}, perms)
	assert.False(t, perms.Allows(access.ResourceDashboard, access.ActionRead))
}

func TestDestructiveAndUserCapabilitiesNarrowWithSeniority(t *testing.T) {
	roles := access.Roles()
	count := func(role access.Role) int {
		perms := access.PermissionsFor(role)
		n := 0
		for _, res := range managed {
			if perms.Allows(res, access.ActionDelete) {
				n++
			}
		}
		for _, act := range []access.Action{access.ActionCreate, access.ActionRead, access.ActionUpdate, access.ActionDelete} {
			if perms.Allows(access.ResourceUsers, act) {
				n++
			}
		}
		return n
	}
	for i := 1; i < len(roles); i++ {
		senior, junior := roles[i-1], roles[i]
		require.Greater(t, senior.Seniority(), junior.Seniority())
		assert.GreaterOrEqual(t, count(senior), count(junior), "%s vs %s", senior, junior)
		for _, res := range append(managed, access.ResourceUsers) {
			for _, act := range []access.Action{access.ActionDelete, access.ActionCreate, access.ActionUpdate} {
				if access.Can(junior, res, act) && (act == access.ActionDelete || res == access.ResourceUsers) {
					assert.True(t, access.Can(senior, res, act), "%s has %s:%s but %s does not", junior, res, act, senior)
				}
			}
		}
	}
}

func TestEditorCapabilities(t *testing.T) {
	perms := access.PermissionsFor(access.RoleEditor)
	assert.False(t, perms.Domains.Create)
	assert.True(t, perms.Websites.Create)
	assert.False(t, perms.Websites.Delete)
	assert.False(t, perms.Allows(access.ResourceUsers, access.ActionRead))
}

func TestAllowsDashboardOnlyAnswersRead(t *testing.T) {
	perms := access.PermissionsFor(access.RoleSuperAdmin)
	assert.True(t, perms.Allows(access.ResourceDashboard, access.ActionRead))
	assert.False(t, perms.Allows(access.ResourceDashboard, access.ActionDelete))
	assert.False(t, perms.Allows(access.Resource("billing"), access.ActionRead))
}

func TestNavigation(t *testing.T) {
	paths := func(items []access.NavItem) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Path)
		}
		return out
	}
	assert.Equal(t, []string{"/", "/websites", "/credentials", "/domains", "/servers", "/users"}, paths(access.Navigation(access.RoleAdmin)))
	assert.Equal(t, []string{"/", "/websites", "/credentials", "/domains", "/servers"}, paths(access.Navigation(access.RoleViewer)))
	assert.Empty(t, access.Navigation(access.Role("")))
}
