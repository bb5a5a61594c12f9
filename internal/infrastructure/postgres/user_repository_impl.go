package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, strings.ToLower(u.Email), u.Password)

	return mapErr(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`, strings.ToLower(email))
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id))
}

func (r *UserRepository) List(ctx context.Context, f repository.ListFilter) ([]entity.UserSummary, error) {
	q := filterQuery(repository.ListFilter{Search: f.Search}, "", "u.email", "p.display_name", "ur.role")
	sql := `
		SELECT u.id, u.email, COALESCE(p.display_name, ''), COALESCE(p.avatar_url, ''),
		       COALESCE(ur.role, ''), u.created_at
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		LEFT JOIN user_roles ur ON ur.user_id = u.id` + q.tail("u.created_at", f.Limit)

	rows, err := r.pool.Query(ctx, sql, q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.UserSummary, 0)
	for rows.Next() {
		var s entity.UserSummary
		var backend string
		if err := rows.Scan(&s.ID, &s.Email, &s.DisplayName, &s.AvatarURL, &backend, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Role = access.ParseBackendRole(backend).AppRole()
		out = append(out, s)
	}
	return out, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
