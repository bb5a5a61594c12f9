package entity

import (
	"time"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
)

// Principal is an authenticated user together with its application role.
// Once resolved for a session the role does not change for that session.
type Principal struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"name"`
	AvatarURL   string      `json:"avatar,omitempty"`
	Role        access.Role `json:"role"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Permissions returns the capability set of the principal's role.
func (p *Principal) Permissions() access.ResourcePermissions {
	if p == nil {
		return access.ResourcePermissions{}
	}
	return access.PermissionsFor(p.Role)
}

// RoleAssignment is a row of the user_roles table.
type RoleAssignment struct {
	ID        string
	UserID    string
	Role      access.BackendRole
	CreatedAt time.Time
}
