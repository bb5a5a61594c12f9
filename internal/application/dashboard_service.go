package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	repo "github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

const (
	expiringListLimit = 5
	recentActivityMax = 10
)

// Overview is the dashboard landing view.
type Overview struct {
	Stats          entity.DashboardStats `json:"stats"`
	ExpiringSoon   []DomainView          `json:"expiring_soon"`
	RecentActivity []entity.Activity     `json:"recent_activity"`
}

type DashboardService struct {
	Stats    repo.StatsRepository
	Activity repo.ActivityRepository
	Domains  *DomainService
}

func NewDashboardService(stats repo.StatsRepository, activity repo.ActivityRepository, domains *DomainService) *DashboardService {
	return &DashboardService{Stats: stats, Activity: activity, Domains: domains}
}

// Overview loads the three dashboard panels concurrently.
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.Stats.Stats(gctx)
		out.Stats = st
		return err
	})
	g.Go(func() error {
		list, err := s.Domains.Expiring(gctx, expiringListLimit)
		out.ExpiringSoon = list
		return err
	})
	g.Go(func() error {
		list, err := s.Activity.Recent(gctx, recentActivityMax)
		out.RecentActivity = list
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DashboardService) RecentActivity(ctx context.Context, limit int) ([]entity.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = recentActivityMax
	}
	return s.Activity.Recent(ctx, limit)
}
