package application

import (
	"context"
	"strings"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

type ServerInput struct {
	WebsiteID   string              `json:"website_id" binding:"required,uuid"`
	Provider    string              `json:"provider" binding:"required,max=200"`
	IPAddress   string              `json:"ip_address" binding:"required,ip"`
	SSHUsername *string             `json:"ssh_username"`
	SSHPassword *string             `json:"ssh_password"`
	Notes       *string             `json:"notes"`
	Status      entity.ServerStatus `json:"status" binding:"omitempty,server_status"`
}

func (in ServerInput) apply(s *entity.Server) {
	s.WebsiteID = in.WebsiteID
	s.Provider = strings.TrimSpace(in.Provider)
	s.IPAddress = strings.TrimSpace(in.IPAddress)
	s.SSHUsername = in.SSHUsername
	s.SSHPassword = in.SSHPassword
	s.Notes = in.Notes
	s.Status = in.Status
	if s.Status == "" {
		s.Status = entity.ServerOnline
	}
}

type ServerService struct {
	Repo     repo.ServerRepository
	Websites repo.WebsiteRepository
	Activity *ActivityRecorder
}

func NewServerService(r repo.ServerRepository, websites repo.WebsiteRepository, activity *ActivityRecorder) *ServerService {
	return &ServerService{Repo: r, Websites: websites, Activity: activity}
}

func (s *ServerService) List(ctx context.Context, f repo.ListFilter) ([]entity.Server, error) {
	return s.Repo.List(ctx, f)
}

func (s *ServerService) Get(ctx context.Context, id string) (*entity.Server, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ServerService) Create(ctx context.Context, actor *entity.Principal, in ServerInput) (*entity.Server, error) {
	if err := requireWebsite(ctx, s.Websites, in.WebsiteID); err != nil {
		return nil, err
	}
	srv := &entity.Server{UserID: actor.ID}
	in.apply(srv)
	if err := s.Repo.Create(ctx, srv); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor, access.ActionCreate, access.ResourceServers, srv.ID, serverLabel(srv))
	return srv, nil
}

func (s *ServerService) Update(ctx context.Context, actor *entity.Principal, id string, in ServerInput) (*entity.Server, error) {
	srv, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireWebsite(ctx, s.Websites, in.WebsiteID); err != nil {
		return nil, err
	}
	in.apply(srv)
	if err := s.Repo.Update(ctx, srv); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor, access.ActionUpdate, access.ResourceServers, srv.ID, serverLabel(srv))
	return srv, nil
}

func (s *ServerService) Delete(ctx context.Context, actor *entity.Principal, id string) error {
	srv, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Activity.Record(ctx, actor, access.ActionDelete, access.ResourceServers, srv.ID, serverLabel(srv))
	return nil
}

func serverLabel(s *entity.Server) string {
	return s.Provider + " " + s.IPAddress
}
