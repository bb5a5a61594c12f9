package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
	"github.com/AcasisDev/siteguard-hub/pkg/mailer"
)

// WelcomeSender delivers the welcome email for a new account.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, job mailer.SignupJob, role access.Role) error
}

// DemoRoleFor picks the initial backend role of a demo account from its
// e-mail address. The checks run in order; the first match wins.
func DemoRoleFor(email string) access.BackendRole {
	e := strings.ToLower(email)
	switch {
	case strings.Contains(e, "admin@demo.com"), strings.Contains(e, "superadmin@demo.com"):
		return access.BackendSuperAdmin
	case strings.Contains(e, "admin@"):
		return access.BackendAdmin
	case strings.Contains(e, "editor@"):
		return access.BackendEditor
	}
	return access.BackendViewer
}

// SignupProcessor handles sign-up jobs: it assigns the initial role unless
// one exists and sends the welcome email.
type SignupProcessor struct {
	Roles  repo.RoleRepository
	Mail   WelcomeSender
	Logger *logrus.Logger
}

func NewSignupProcessor(roles repo.RoleRepository, mail WelcomeSender, logger *logrus.Logger) *SignupProcessor {
	return &SignupProcessor{Roles: roles, Mail: mail, Logger: logger}
}

func (p *SignupProcessor) Handle(ctx context.Context, job mailer.SignupJob) error {
	var role access.Role
	existing, err := p.Roles.GetByUserID(ctx, job.UserID)
	switch {
	case err == nil && existing != nil:
		role = access.ParseBackendRole(string(existing.Role)).AppRole()
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return err
	default:
		backend := DemoRoleFor(job.Email)
		if err := p.Roles.Assign(ctx, job.UserID, backend); err != nil {
			return err
		}
		role = backend.AppRole()
		if p.Logger != nil {
			p.Logger.WithFields(logrus.Fields{"user_id": job.UserID, "role": backend}).Info("initial role assigned")
		}
	}

	if p.Mail == nil {
		return nil
	}
	return p.Mail.SendWelcome(ctx, job, role)
}
