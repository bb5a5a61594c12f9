package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
)

const avatarBase = "https://avatars.test/svg?seed="

func newResolver(roles *fakeRoles, profiles *fakeProfiles) *application.RoleResolver {
	return application.NewRoleResolver(roles, profiles, nil, 200*time.Millisecond, avatarBase)
}

func TestResolveTranslatesBackendRoles(t *testing.T) {
	roles := &fakeRoles{roles: map[string]access.BackendRole{
		"sa": access.BackendSuperAdmin,
		"ad": access.BackendAdmin,
		"ed": access.BackendEditor,
		"us": access.BackendUser,
		"xx": access.BackendRole("owner"),
	}}
	r := newResolver(roles, &fakeProfiles{})
	want := map[string]access.Role{
		"sa": access.RoleSuperAdmin,
		"ad": access.RoleAdmin,
		"ed": access.RoleEditor,
		"us": access.RoleViewer,
		"xx": access.DefaultRole,
	}
	for uid, role := range want {
		p := r.Resolve(context.Background(), entity.Identity{UserID: uid, Email: uid + "@x.io"})
		assert.Equal(t, role, p.Role, uid)
	}
}

func TestResolveEditorScenario(t *testing.T) {
	roles := &fakeRoles{roles: map[string]access.BackendRole{"u1": access.BackendEditor}}
	p := newResolver(roles, &fakeProfiles{}).Resolve(context.Background(), entity.Identity{UserID: "u1", Email: "u1@x.io"})

	require.Equal(t, access.RoleEditor, p.Role)
	perms := access.PermissionsFor(p.Role)
	assert.False(t, perms.Domains.Create)
	assert.True(t, perms.Websites.Create)
}

func TestResolveMissingAssignmentIsConsistentDefault(t *testing.T) {
	r := newResolver(&fakeRoles{}, &fakeProfiles{})
	for i := 0; i < 5; i++ {
		p := r.Resolve(context.Background(), entity.Identity{UserID: "u2", Email: "u2@x.io"})
		assert.Equal(t, access.DefaultRole, p.Role)
	}
}

func TestResolveLookupFailureUsesSameDefault(t *testing.T) {
	missing := newResolver(&fakeRoles{}, &fakeProfiles{}).
		Resolve(context.Background(), entity.Identity{UserID: "u3"})
	failing := newResolver(&fakeRoles{err: errors.New("connection reset")}, &fakeProfiles{}).
		Resolve(context.Background(), entity.Identity{UserID: "u3"})
	assert.Equal(t, missing.Role, failing.Role)
	assert.Equal(t, access.DefaultRole, failing.Role)
}

func TestResolveRoleLookupTimeout(t *testing.T) {
	roles := &fakeRoles{roles: map[string]access.BackendRole{"u4": access.BackendSuperAdmin}, delay: time.Second}
	r := application.NewRoleResolver(roles, &fakeProfiles{}, nil, 20*time.Millisecond, avatarBase)

	start := time.Now()
	p := r.Resolve(context.Background(), entity.Identity{UserID: "u4"})
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, access.DefaultRole, p.Role)
}

func TestResolveProfileFallbacks(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	profiles := &fakeProfiles{profiles: map[string]*entity.Profile{
		"named": {UserID: "named", DisplayName: "Dana", AvatarURL: "https://cdn/x.png"},
		"blank": {UserID: "blank", DisplayName: "  "},
	}}
	r := newResolver(&fakeRoles{}, profiles)

	p := r.Resolve(context.Background(), entity.Identity{UserID: "named", Email: "dana@x.io", CreatedAt: created})
	assert.Equal(t, "Dana", p.DisplayName)
	assert.Equal(t, "https://cdn/x.png", p.AvatarURL)
	assert.Equal(t, created, p.UpdatedAt)

	p = r.Resolve(context.Background(), entity.Identity{UserID: "blank", Email: "ops@x.io"})
	assert.Equal(t, "ops", p.DisplayName)
	assert.Equal(t, avatarBase+"ops%40x.io", p.AvatarURL)

	p = r.Resolve(context.Background(), entity.Identity{UserID: "nobody"})
	assert.Equal(t, "User", p.DisplayName)
}

func TestResolveProfileFailureDoesNotBlockRole(t *testing.T) {
	roles := &fakeRoles{roles: map[string]access.BackendRole{"u5": access.BackendAdmin}}
	r := newResolver(roles, &fakeProfiles{err: errors.New("boom")})
	p := r.Resolve(context.Background(), entity.Identity{UserID: "u5", Email: "root@x.io"})
	assert.Equal(t, access.RoleAdmin, p.Role)
	assert.Equal(t, "root", p.DisplayName)
}
