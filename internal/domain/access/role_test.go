package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
)

func TestBackendRoleTranslation(t *testing.T) {
	cases := map[string]access.Role{
		"super_admin": access.RoleSuperAdmin,
		"admin":       access.RoleAdmin,
		"editor":      access.RoleEditor,
		"user":        access.RoleViewer,
		"viewer":      access.RoleViewer,
		" Editor ":    access.RoleEditor,
	}
	for in, want := range cases {
		assert.Equal(t, want, access.ParseBackendRole(in).AppRole(), in)
	}
}

func TestUnknownBackendRoleNeverElevates(t *testing.T) {
	for _, in := range []string{"", "superadmin", "root", "owner", "ADMINISTRATOR", "super-admin"} {
		got := access.ParseBackendRole(in).AppRole()
		assert.NotEqual(t, access.RoleSuperAdmin, got, in)
		assert.NotEqual(t, access.RoleAdmin, got, in)
		assert.Equal(t, access.DefaultRole, got, in)
	}
}

func TestRoleBackendRoundTrip(t *testing.T) {
	for _, r := range access.Roles() {
		assert.Equal(t, r, r.Backend().AppRole())
	}
}

func TestParseRole(t *testing.T) {
	r, err := access.ParseRole("Admin")
	require.NoError(t, err)
	assert.Equal(t, access.RoleAdmin, r)

	_, err = access.ParseRole("super_admin")
	assert.Error(t, err)
}
