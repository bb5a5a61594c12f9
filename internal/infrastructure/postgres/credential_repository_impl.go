package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

const credentialSelect = `
	SELECT c.id, c.user_id, c.website_id, w.name, c.type, c.host, c.username, c.password,
	       c.port, c.notes, c.created_at, c.updated_at
	FROM credentials c
	LEFT JOIN websites w ON w.id = c.website_id`

type CredentialRepository struct {
	pool *pgxpool.Pool
}

func NewCredentialRepository(pool *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{pool: pool}
}

func scanCredential(row pgx.Row) (*entity.Credential, error) {
	c := &entity.Credential{}
	var typ string
	if err := row.Scan(&c.ID, &c.UserID, &c.WebsiteID, &c.WebsiteName, &typ, &c.Host, &c.Username, &c.Password,
		&c.Port, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Type = entity.CredentialType(typ)
	return c, nil
}

func (r *CredentialRepository) List(ctx context.Context, f repository.ListFilter) ([]entity.Credential, error) {
	q := filterQuery(f, "c.user_id", "c.host", "c.username", "c.type")
	rows, err := r.pool.Query(ctx, credentialSelect+q.tail("c.created_at", f.Limit), q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Credential, 0)
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CredentialRepository) GetByID(ctx context.Context, id string) (*entity.Credential, error) {
	c, err := scanCredential(r.pool.QueryRow(ctx, credentialSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CredentialRepository) Create(ctx context.Context, c *entity.Credential) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO credentials (user_id, website_id, type, host, username, password, port, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, c.UserID, c.WebsiteID, string(c.Type), c.Host, c.Username, c.Password, c.Port, c.Notes)
	return mapErr(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt))
}

func (r *CredentialRepository) Update(ctx context.Context, c *entity.Credential) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE credentials
		SET website_id = $1, type = $2, host = $3, username = $4, password = $5, port = $6, notes = $7, updated_at = now()
		WHERE id = $8
		RETURNING updated_at
	`, c.WebsiteID, string(c.Type), c.Host, c.Username, c.Password, c.Port, c.Notes, c.ID)
	return mapErr(row.Scan(&c.UpdatedAt))
}

func (r *CredentialRepository) Delete(ctx context.Context, id string) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM credentials WHERE id = $1`, id))
}

var _ repository.CredentialRepository = (*CredentialRepository)(nil)
