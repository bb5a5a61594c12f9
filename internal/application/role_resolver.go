package application

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

const defaultDisplayName = "User"

// PrincipalResolver turns an authenticated identity into a Principal.
type PrincipalResolver interface {
	Resolve(ctx context.Context, id entity.Identity) *entity.Principal
}

// RoleResolver combines the role assignment and the display profile of a
// user. It never fails: a missing or unreadable role yields
// access.DefaultRole and a missing profile falls back to values derived
// from the e-mail address.
type RoleResolver struct {
	Roles         repo.RoleRepository
	Profiles      repo.ProfileRepository
	Logger        *logrus.Logger
	LookupTimeout time.Duration
	AvatarBaseURL string
}

func NewRoleResolver(roles repo.RoleRepository, profiles repo.ProfileRepository, logger *logrus.Logger, lookupTimeout time.Duration, avatarBaseURL string) *RoleResolver {
	return &RoleResolver{
		Roles:         roles,
		Profiles:      profiles,
		Logger:        logger,
		LookupTimeout: lookupTimeout,
		AvatarBaseURL: avatarBaseURL,
	}
}

func (r *RoleResolver) Resolve(ctx context.Context, id entity.Identity) *entity.Principal {
	var (
		role    = access.DefaultRole
		profile *entity.Profile
		g       errgroup.Group
	)
	// Neither lookup fails: each falls back on its own, so a slow or broken
	// profile never cancels the role lookup.
	g.Go(func() error {
		role = r.lookupRole(ctx, id.UserID)
		return nil
	})
	g.Go(func() error {
		profile = r.lookupProfile(ctx, id.UserID)
		return nil
	})
	g.Wait()

	p := &entity.Principal{
		ID:          id.UserID,
		Email:       id.Email,
		DisplayName: displayName(profile, id.Email),
		AvatarURL:   r.avatar(profile, id.Email),
		Role:        role,
		CreatedAt:   id.CreatedAt,
		UpdatedAt:   id.UpdatedAt,
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	return p
}

func (r *RoleResolver) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.LookupTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.LookupTimeout)
}

func (r *RoleResolver) lookupRole(ctx context.Context, userID string) access.Role {
	if r.Roles == nil {
		return access.DefaultRole
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	a, err := r.Roles.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return access.DefaultRole
	case err != nil:
		if r.Logger != nil {
			r.Logger.WithError(err).WithField("user_id", userID).Warn("role lookup failed, using default role")
		}
		return access.DefaultRole
	case a == nil:
		return access.DefaultRole
	}
	return access.ParseBackendRole(string(a.Role)).AppRole()
}

func (r *RoleResolver) lookupProfile(ctx context.Context, userID string) *entity.Profile {
	if r.Profiles == nil {
		return nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	p, err := r.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) && r.Logger != nil {
			r.Logger.WithError(err).WithField("user_id", userID).Debug("profile lookup failed")
		}
		return nil
	}
	return p
}

func displayName(p *entity.Profile, email string) string {
	if p != nil {
		if s := strings.TrimSpace(p.DisplayName); s != "" {
			return s
		}
	}
	return nameFromEmail(email)
}

// nameFromEmail returns the local part of email, or "User".
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	if local == "" {
		return defaultDisplayName
	}
	return local
}

func (r *RoleResolver) avatar(p *entity.Profile, email string) string {
	if p != nil && strings.TrimSpace(p.AvatarURL) != "" {
		return p.AvatarURL
	}
	if r.AvatarBaseURL == "" {
		return ""
	}
	return r.AvatarBaseURL + url.QueryEscape(email)
}
