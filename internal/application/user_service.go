package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
	"github.com/AcasisDev/siteguard-hub/pkg/helpers"
)

type CreateUserInput struct {
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required,pwd"`
	DisplayName string      `json:"name" binding:"max=100"`
	Role        access.Role `json:"role" binding:"required,app_role"`
}

// UserService manages accounts and role assignments from the users screen.
type UserService struct {
	Users    repo.UserRepository
	Roles    repo.RoleRepository
	Profiles repo.ProfileRepository
	Activity *ActivityRecorder
	Logger   *logrus.Logger
}

func NewUserService(users repo.UserRepository, roles repo.RoleRepository, profiles repo.ProfileRepository, activity *ActivityRecorder, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Roles: roles, Profiles: profiles, Activity: activity, Logger: logger}
}

func (s *UserService) List(ctx context.Context, f repo.ListFilter) ([]entity.UserSummary, error) {
	return s.Users.List(ctx, f)
}

func (s *UserService) Create(ctx context.Context, actor *entity.Principal, in CreateUserInput) (*entity.UserSummary, error) {
	if !in.Role.Valid() {
		return nil, access.ErrUnknownRole
	}
	if len(in.Password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Email: normalizeEmail(in.Email), Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		name = nameFromEmail(u.Email)
	}
	if err := s.Profiles.Upsert(ctx, &entity.Profile{UserID: u.ID, DisplayName: name}); err != nil {
		s.discard(ctx, u.ID)
		return nil, err
	}
	if err := s.Roles.Assign(ctx, u.ID, in.Role.Backend()); err != nil {
		s.discard(ctx, u.ID)
		return nil, err
	}
	s.Activity.Record(ctx, actor, access.ActionCreate, access.ResourceUsers, u.ID, u.Email)
	return &entity.UserSummary{ID: u.ID, Email: u.Email, DisplayName: name, Role: in.Role, CreatedAt: u.CreatedAt}, nil
}

// discard removes a half-created account; profile and role rows cascade.
func (s *UserService) discard(ctx context.Context, userID string) {
	if err := s.Users.Delete(context.WithoutCancel(ctx), userID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("discard partially created user failed")
	}
}

// UpdateRole changes the role assignment of another user. The new role
// takes effect when that user's sessions next resolve.
func (s *UserService) UpdateRole(ctx context.Context, actor *entity.Principal, userID string, role access.Role) error {
	if actor.ID == userID {
		return ErrSelfModification
	}
	if !role.Valid() {
		return access.ErrUnknownRole
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Roles.Assign(ctx, userID, role.Backend()); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"actor": actor.ID, "user_id": userID, "role": role}).Info("role changed")
	}
	s.Activity.Record(ctx, actor, access.ActionUpdate, access.ResourceUsers, u.ID, u.Email+" as "+role.String())
	return nil
}

func (s *UserService) Delete(ctx context.Context, actor *entity.Principal, userID string) error {
	if actor.ID == userID {
		return ErrSelfModification
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, userID); err != nil {
		return err
	}
	s.Activity.Record(ctx, actor, access.ActionDelete, access.ResourceUsers, u.ID, u.Email)
	return nil
}
