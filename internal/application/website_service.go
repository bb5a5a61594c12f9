package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

// WebsiteSearcher is a full-text index over websites.
type WebsiteSearcher interface {
	Index(ctx context.Context, w *entity.Website) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.Website, error)
}

type WebsiteInput struct {
	Name     string               `json:"name" binding:"required,max=200"`
	Domain   string               `json:"domain" binding:"required,max=253"`
	Provider string               `json:"provider" binding:"required,max=200"`
	ServerIP string               `json:"server_ip" binding:"required,ip"`
	Notes    *string              `json:"notes"`
	Status   entity.WebsiteStatus `json:"status" binding:"omitempty,website_status"`
}

func (in WebsiteInput) apply(w *entity.Website) {
	w.Name = strings.TrimSpace(in.Name)
	w.Domain = strings.ToLower(strings.TrimSpace(in.Domain))
	w.Provider = strings.TrimSpace(in.Provider)
	w.ServerIP = strings.TrimSpace(in.ServerIP)
	w.Notes = in.Notes
	w.Status = in.Status
	if w.Status == "" {
		w.Status = entity.WebsiteActive
	}
}

type WebsiteService struct {
	Repo     repo.WebsiteRepository
	Search   WebsiteSearcher
	Activity *ActivityRecorder
	Logger   *logrus.Logger
}

func NewWebsiteService(r repo.WebsiteRepository, search WebsiteSearcher, activity *ActivityRecorder, logger *logrus.Logger) *WebsiteService {
	return &WebsiteService{Repo: r, Search: search, Activity: activity, Logger: logger}
}

// List serves searches from the index when one is configured and falls
// back to the database when the index is unavailable.
func (s *WebsiteService) List(ctx context.Context, f repo.ListFilter) ([]entity.Website, error) {
	if s.Search != nil && strings.TrimSpace(f.Search) != "" && f.OwnerID == "" {
		out, err := s.Search.Search(ctx, f.Search, f.Limit)
		if err == nil {
			return out, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("website search failed, falling back to database")
		}
	}
	return s.Repo.List(ctx, f)
}

func (s *WebsiteService) Get(ctx context.Context, id string) (*entity.Website, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *WebsiteService) Create(ctx context.Context, actor *entity.Principal, in WebsiteInput) (*entity.Website, error) {
	w := &entity.Website{UserID: actor.ID}
	in.apply(w)
	if err := s.Repo.Create(ctx, w); err != nil {
		return nil, err
	}
	s.index(ctx, w)
	s.Activity.Record(ctx, actor, access.ActionCreate, access.ResourceWebsites, w.ID, w.Name)
	return w, nil
}

func (s *WebsiteService) Update(ctx context.Context, actor *entity.Principal, id string, in WebsiteInput) (*entity.Website, error) {
	w, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(w)
	if err := s.Repo.Update(ctx, w); err != nil {
		return nil, err
	}
	s.index(ctx, w)
	s.Activity.Record(ctx, actor, access.ActionUpdate, access.ResourceWebsites, w.ID, w.Name)
	return w, nil
}

func (s *WebsiteService) Delete(ctx context.Context, actor *entity.Principal, id string) error {
	w, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.Search != nil {
		if err := s.Search.Remove(ctx, id); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("website_id", id).Warn("remove website from index failed")
		}
	}
	s.Activity.Record(ctx, actor, access.ActionDelete, access.ResourceWebsites, w.ID, w.Name)
	return nil
}

func (s *WebsiteService) index(ctx context.Context, w *entity.Website) {
	if s.Search == nil {
		return
	}
	if err := s.Search.Index(ctx, w); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("website_id", w.ID).Warn("index website failed")
	}
}
