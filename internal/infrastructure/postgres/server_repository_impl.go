package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

const serverColumns = `id, user_id, website_id, provider, ip_address, ssh_username, ssh_password, notes, status, created_at, updated_at`

type ServerRepository struct {
	pool *pgxpool.Pool
}

func NewServerRepository(pool *pgxpool.Pool) *ServerRepository {
	return &ServerRepository{pool: pool}
}

func scanServer(row pgx.Row) (*entity.Server, error) {
	s := &entity.Server{}
	var status string
	if err := row.Scan(&s.ID, &s.UserID, &s.WebsiteID, &s.Provider, &s.IPAddress, &s.SSHUsername, &s.SSHPassword,
		&s.Notes, &status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Status = entity.ServerStatus(status)
	return s, nil
}

func (r *ServerRepository) List(ctx context.Context, f repository.ListFilter) ([]entity.Server, error) {
	q := filterQuery(f, "user_id", "provider", "ip_address")
	rows, err := r.pool.Query(ctx, `SELECT `+serverColumns+` FROM servers`+q.tail("created_at", f.Limit), q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Server, 0)
	for rows.Next() {
		s, err := scanServer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *ServerRepository) GetByID(ctx context.Context, id string) (*entity.Server, error) {
	s, err := scanServer(r.pool.QueryRow(ctx, `SELECT `+serverColumns+` FROM servers WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return s, nil
}

func (r *ServerRepository) Create(ctx context.Context, s *entity.Server) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO servers (user_id, website_id, provider, ip_address, ssh_username, ssh_password, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, s.UserID, s.WebsiteID, s.Provider, s.IPAddress, s.SSHUsername, s.SSHPassword, s.Notes, string(s.Status))
	return mapErr(row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *ServerRepository) Update(ctx context.Context, s *entity.Server) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE servers
		SET website_id = $1, provider = $2, ip_address = $3, ssh_username = $4, ssh_password = $5,
		    notes = $6, status = $7, updated_at = now()
		WHERE id = $8
		RETURNING updated_at
	`, s.WebsiteID, s.Provider, s.IPAddress, s.SSHUsername, s.SSHPassword, s.Notes, string(s.Status), s.ID)
	return mapErr(row.Scan(&s.UpdatedAt))
}

func (r *ServerRepository) Delete(ctx context.Context, id string) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM servers WHERE id = $1`, id))
}

var _ repository.ServerRepository = (*ServerRepository)(nil)
