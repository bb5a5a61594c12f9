package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

const domainColumns = `id, user_id, website_id, domain_name, registrar, register_date, expire_date,
	COALESCE(nameservers, '{}'), status, created_at, updated_at`

type DomainRepository struct {
	pool *pgxpool.Pool
}

func NewDomainRepository(pool *pgxpool.Pool) *DomainRepository {
	return &DomainRepository{pool: pool}
}

func scanDomain(row pgx.Row) (*entity.Domain, error) {
	d := &entity.Domain{}
	var status string
	if err := row.Scan(&d.ID, &d.UserID, &d.WebsiteID, &d.DomainName, &d.Registrar, &d.RegisterDate, &d.ExpireDate,
		&d.Nameservers, &status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.Status = entity.DomainStatus(status)
	return d, nil
}

func (r *DomainRepository) collect(rows pgx.Rows, err error) ([]entity.Domain, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Domain, 0)
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *DomainRepository) List(ctx context.Context, f repository.ListFilter) ([]entity.Domain, error) {
	q := filterQuery(f, "user_id", "domain_name", "registrar")
	return r.collect(r.pool.Query(ctx, `SELECT `+domainColumns+` FROM domains`+q.tail("created_at", f.Limit), q.args...))
}

func (r *DomainRepository) ExpiringBefore(ctx context.Context, t time.Time, limit int) ([]entity.Domain, error) {
	return r.collect(r.pool.Query(ctx, `
		SELECT `+domainColumns+`
		FROM domains
		WHERE status <> 'expired' AND expire_date <= $1
		ORDER BY expire_date ASC
		LIMIT $2
	`, t, clampLimit(limit)))
}

func (r *DomainRepository) GetByID(ctx context.Context, id string) (*entity.Domain, error) {
	d, err := scanDomain(r.pool.QueryRow(ctx, `SELECT `+domainColumns+` FROM domains WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

func (r *DomainRepository) Create(ctx context.Context, d *entity.Domain) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO domains (user_id, website_id, domain_name, registrar, register_date, expire_date, nameservers, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, d.UserID, d.WebsiteID, d.DomainName, d.Registrar, d.RegisterDate, d.ExpireDate, d.Nameservers, string(d.Status))
	return mapErr(row.Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt))
}

func (r *DomainRepository) Update(ctx context.Context, d *entity.Domain) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE domains
		SET website_id = $1, domain_name = $2, registrar = $3, register_date = $4, expire_date = $5,
		    nameservers = $6, status = $7, updated_at = now()
		WHERE id = $8
		RETURNING updated_at
	`, d.WebsiteID, d.DomainName, d.Registrar, d.RegisterDate, d.ExpireDate, d.Nameservers, string(d.Status), d.ID)
	return mapErr(row.Scan(&d.UpdatedAt))
}

func (r *DomainRepository) Delete(ctx context.Context, id string) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM domains WHERE id = $1`, id))
}

var _ repository.DomainRepository = (*DomainRepository)(nil)
