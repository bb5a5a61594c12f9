package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// GetByUserID returns the single assignment row for userID, if any.
// The stored value is kept verbatim; translation happens in the resolver.
func (r *RoleRepository) GetByUserID(ctx context.Context, userID string) (*entity.RoleAssignment, error) {
	a := &entity.RoleAssignment{}
	var role string
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, role, created_at
		FROM user_roles
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&a.ID, &a.UserID, &role, &a.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	a.Role = access.BackendRole(role)
	return a, nil
}

func (r *RoleRepository) Assign(ctx context.Context, userID string, role access.BackendRole) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`, userID, string(role))
	return mapErr(err)
}

var _ repository.RoleRepository = (*RoleRepository)(nil)
