package entity

import (
	"time"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
)

// Activity records one mutation performed through the dashboard.
type Activity struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	ActorName   string          `json:"actor_name"`
	ActorAvatar string          `json:"actor_avatar,omitempty"`
	Action      access.Action   `json:"action"`
	Resource    access.Resource `json:"resource"`
	TargetID    string          `json:"target_id"`
	Target      string          `json:"target"`
	CreatedAt   time.Time       `json:"created_at"`
}
