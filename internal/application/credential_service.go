package application

import (
	"context"
	"errors"
	"strings"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

type CredentialInput struct {
	WebsiteID string                `json:"website_id" binding:"required,uuid"`
	Type      entity.CredentialType `json:"type" binding:"required,credential_type"`
	Host      string                `json:"host" binding:"required,max=253"`
	Username  string                `json:"username" binding:"required,max=200"`
	Password  string                `json:"password" binding:"required"`
	Port      *int32                `json:"port" binding:"omitempty,min=1,max=65535"`
	Notes     *string               `json:"notes"`
}

func (in CredentialInput) apply(c *entity.Credential) {
	c.WebsiteID = in.WebsiteID
	c.Type = in.Type
	c.Host = strings.TrimSpace(in.Host)
	c.Username = strings.TrimSpace(in.Username)
	c.Password = in.Password
	c.Port = in.Port
	c.Notes = in.Notes
}

type CredentialService struct {
	Repo     repo.CredentialRepository
	Websites repo.WebsiteRepository
	Activity *ActivityRecorder
}

func NewCredentialService(r repo.CredentialRepository, websites repo.WebsiteRepository, activity *ActivityRecorder) *CredentialService {
	return &CredentialService{Repo: r, Websites: websites, Activity: activity}
}

func (s *CredentialService) List(ctx context.Context, f repo.ListFilter) ([]entity.Credential, error) {
	return s.Repo.List(ctx, f)
}

func (s *CredentialService) Get(ctx context.Context, id string) (*entity.Credential, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *CredentialService) Create(ctx context.Context, actor *entity.Principal, in CredentialInput) (*entity.Credential, error) {
	if err := requireWebsite(ctx, s.Websites, in.WebsiteID); err != nil {
		return nil, err
	}
	c := &entity.Credential{UserID: actor.ID}
	in.apply(c)
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor, access.ActionCreate, access.ResourceCredentials, c.ID, credentialLabel(c))
	return s.Repo.GetByID(ctx, c.ID)
}

func (s *CredentialService) Update(ctx context.Context, actor *entity.Principal, id string, in CredentialInput) (*entity.Credential, error) {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireWebsite(ctx, s.Websites, in.WebsiteID); err != nil {
		return nil, err
	}
	in.apply(c)
	if err := s.Repo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor, access.ActionUpdate, access.ResourceCredentials, c.ID, credentialLabel(c))
	return s.Repo.GetByID(ctx, c.ID)
}

func (s *CredentialService) Delete(ctx context.Context, actor *entity.Principal, id string) error {
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Activity.Record(ctx, actor, access.ActionDelete, access.ResourceCredentials, c.ID, credentialLabel(c))
	return nil
}

func credentialLabel(c *entity.Credential) string {
	return string(c.Type) + " " + c.Username + "@" + c.Host
}

func requireWebsite(ctx context.Context, websites repo.WebsiteRepository, id string) error {
	if websites == nil {
		return nil
	}
	if _, err := websites.GetByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUnknownWebsite
		}
		return err
	}
	return nil
}
