package repository

import (
	"context"
	"time"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
)

// WebsiteRepository searches name and domain.
type WebsiteRepository interface {
	List(ctx context.Context, f ListFilter) ([]entity.Website, error)
	GetByID(ctx context.Context, id string) (*entity.Website, error)
	Create(ctx context.Context, w *entity.Website) error
	Update(ctx context.Context, w *entity.Website) error
	Delete(ctx context.Context, id string) error
}

// CredentialRepository searches host, username and type.
type CredentialRepository interface {
	List(ctx context.Context, f ListFilter) ([]entity.Credential, error)
	GetByID(ctx context.Context, id string) (*entity.Credential, error)
	Create(ctx context.Context, c *entity.Credential) error
	Update(ctx context.Context, c *entity.Credential) error
	Delete(ctx context.Context, id string) error
}

// DomainRepository searches domain name and registrar.
type DomainRepository interface {
	List(ctx context.Context, f ListFilter) ([]entity.Domain, error)
	GetByID(ctx context.Context, id string) (*entity.Domain, error)
	Create(ctx context.Context, d *entity.Domain) error
	Update(ctx context.Context, d *entity.Domain) error
	Delete(ctx context.Context, id string) error
	// ExpiringBefore lists non-expired domains whose expiry date falls before t.
	ExpiringBefore(ctx context.Context, t time.Time, limit int) ([]entity.Domain, error)
}

// ServerRepository searches provider and IP address.
type ServerRepository interface {
	List(ctx context.Context, f ListFilter) ([]entity.Server, error)
	GetByID(ctx context.Context, id string) (*entity.Server, error)
	Create(ctx context.Context, s *entity.Server) error
	Update(ctx context.Context, s *entity.Server) error
	Delete(ctx context.Context, id string) error
}

// ActivityRepository appends to and reads the activity log.
type ActivityRepository interface {
	Record(ctx context.Context, a *entity.Activity) error
	Recent(ctx context.Context, limit int) ([]entity.Activity, error)
}

// StatsRepository aggregates counts for the dashboard landing view.
type StatsRepository interface {
	Stats(ctx context.Context) (entity.DashboardStats, error)
}
