package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/domain/repository"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) Record(ctx context.Context, a *entity.Activity) error {
	var uid any
	if a.UserID != "" {
		uid = a.UserID
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO activity_log (user_id, actor_name, actor_avatar, action, resource, target_id, target)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, uid, a.ActorName, a.ActorAvatar, string(a.Action), string(a.Resource), a.TargetID, a.Target)
	return mapErr(row.Scan(&a.ID, &a.CreatedAt))
}

func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]entity.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, COALESCE(user_id::text, ''), actor_name, actor_avatar, action, resource, target_id, target, created_at
		FROM activity_log
		ORDER BY created_at DESC
		LIMIT $1
	`, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Activity, 0)
	for rows.Next() {
		var a entity.Activity
		var act, res string
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActorName, &a.ActorAvatar, &act, &res, &a.TargetID, &a.Target, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Action = access.Action(act)
		a.Resource = access.Resource(res)
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
