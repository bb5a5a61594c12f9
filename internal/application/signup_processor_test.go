package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/pkg/mailer"
)

func TestDemoRoleFor(t *testing.T) {
	cases := map[string]access.BackendRole{
		"admin@demo.com":      access.BackendSuperAdmin,
		"superadmin@demo.com": access.BackendSuperAdmin,
		"Admin@Demo.com":      access.BackendSuperAdmin,
		"admin@acme.io":       access.BackendAdmin,
		"editor@demo.com":     access.BackendEditor,
		"viewer@demo.com":     access.BackendViewer,
		"someone@acme.io":     access.BackendViewer,
	}
	for email, want := range cases {
		assert.Equal(t, want, application.DemoRoleFor(email), email)
	}
}

type captureWelcome struct {
	jobs  []mailer.SignupJob
	roles []access.Role
}

func (c *captureWelcome) SendWelcome(ctx context.Context, job mailer.SignupJob, role access.Role) error {
	c.jobs = append(c.jobs, job)
	c.roles = append(c.roles, role)
	return nil
}

func TestSignupProcessorAssignsOnceAndWelcomes(t *testing.T) {
	roles := &fakeRoles{}
	mail := &captureWelcome{}
	p := application.NewSignupProcessor(roles, mail, nil)
	ctx := context.Background()

	require.NoError(t, p.Handle(ctx, mailer.SignupJob{UserID: "u1", Email: "editor@demo.com"}))
	a, err := roles.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, access.BackendEditor, a.Role)

	require.NoError(t, roles.Assign(ctx, "u1", access.BackendAdmin))
	require.NoError(t, p.Handle(ctx, mailer.SignupJob{UserID: "u1", Email: "editor@demo.com"}))
	a, _ = roles.GetByUserID(ctx, "u1")
	assert.Equal(t, access.BackendAdmin, a.Role, "redelivered job must not overwrite an existing assignment")

	assert.Equal(t, []access.Role{access.RoleEditor, access.RoleAdmin}, mail.roles)
}
