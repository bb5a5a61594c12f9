package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	p := &entity.Profile{}
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, display_name, avatar_url, updated_at
		FROM profiles
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&p.UserID, &p.DisplayName, &p.AvatarURL, &p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

// Upsert writes both fields; callers merge with the stored profile first.
func (r *ProfileRepository) Upsert(ctx context.Context, p *entity.Profile) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, display_name, avatar_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name, avatar_url = EXCLUDED.avatar_url, updated_at = now()
		RETURNING updated_at
	`, p.UserID, p.DisplayName, p.AvatarURL)
	return mapErr(row.Scan(&p.UpdatedAt))
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
