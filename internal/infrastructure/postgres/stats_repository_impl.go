package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// Stats computes every dashboard counter in a single round trip.
func (r *StatsRepository) Stats(ctx context.Context) (entity.DashboardStats, error) {
	var s entity.DashboardStats
	row := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM websites),
			(SELECT count(*) FROM websites WHERE status = 'active'),
			(SELECT count(*) FROM websites WHERE status = 'maintenance'),
			(SELECT count(*) FROM credentials),
			(SELECT count(*) FROM credentials WHERE type = 'ftp'),
			(SELECT count(*) FROM credentials WHERE type = 'database'),
			(SELECT count(*) FROM domains),
			(SELECT count(*) FROM domains WHERE status = 'active'),
			(SELECT count(*) FROM domains WHERE status = 'expired'),
			(SELECT count(*) FROM servers),
			(SELECT count(*) FROM servers WHERE status = 'online'),
			(SELECT count(*) FROM servers WHERE status = 'offline')
	`)
	err := row.Scan(
		&s.Websites.Total, &s.Websites.Active, &s.Websites.Maintenance,
		&s.Credentials.Total, &s.Credentials.FTP, &s.Credentials.Database,
		&s.Domains.Total, &s.Domains.Active, &s.Domains.Expired,
		&s.Servers.Total, &s.Servers.Online, &s.Servers.Offline,
	)
	return s, err
}

var _ repository.StatsRepository = (*StatsRepository)(nil)
