package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

const websiteColumns = `id, user_id, name, domain, provider, server_ip, notes, status, created_at, updated_at`

type WebsiteRepository struct {
	pool *pgxpool.Pool
}

func NewWebsiteRepository(pool *pgxpool.Pool) *WebsiteRepository {
	return &WebsiteRepository{pool: pool}
}

func scanWebsite(row pgx.Row) (*entity.Website, error) {
	w := &entity.Website{}
	var status string
	if err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Domain, &w.Provider, &w.ServerIP, &w.Notes, &status, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	w.Status = entity.WebsiteStatus(status)
	return w, nil
}

func (r *WebsiteRepository) List(ctx context.Context, f repository.ListFilter) ([]entity.Website, error) {
	q := filterQuery(f, "user_id", "name", "domain")
	rows, err := r.pool.Query(ctx, `SELECT `+websiteColumns+` FROM websites`+q.tail("created_at", f.Limit), q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Website, 0)
	for rows.Next() {
		w, err := scanWebsite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func (r *WebsiteRepository) GetByID(ctx context.Context, id string) (*entity.Website, error) {
	w, err := scanWebsite(r.pool.QueryRow(ctx, `SELECT `+websiteColumns+` FROM websites WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return w, nil
}

func (r *WebsiteRepository) Create(ctx context.Context, w *entity.Website) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO websites (user_id, name, domain, provider, server_ip, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, w.UserID, w.Name, w.Domain, w.Provider, w.ServerIP, w.Notes, string(w.Status))
	return mapErr(row.Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt))
}

func (r *WebsiteRepository) Update(ctx context.Context, w *entity.Website) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE websites
		SET name = $1, domain = $2, provider = $3, server_ip = $4, notes = $5, status = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at
	`, w.Name, w.Domain, w.Provider, w.ServerIP, w.Notes, string(w.Status), w.ID)
	return mapErr(row.Scan(&w.UpdatedAt))
}

func (r *WebsiteRepository) Delete(ctx context.Context, id string) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM websites WHERE id = $1`, id))
}

var _ repository.WebsiteRepository = (*WebsiteRepository)(nil)
