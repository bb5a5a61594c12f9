package repository

import (
	"context"
	"errors"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup by key matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint rejects a write.
	ErrConflict = errors.New("conflict")
)

// ListFilter narrows list queries. Search is matched as a case-insensitive
// substring against the columns each repository documents.
type ListFilter struct {
	Search  string
	OwnerID string
	Limit   int
}

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Delete(ctx context.Context, id string) error
	// List joins users with their profile and role assignment.
	// Search matches e-mail, display name and backend role.
	List(ctx context.Context, f ListFilter) ([]entity.UserSummary, error)
}

// ProfileRepository stores display data for users.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Upsert(ctx context.Context, p *entity.Profile) error
}

// RoleRepository reads and writes the user_roles table.
type RoleRepository interface {
	// GetByUserID returns ErrNotFound when the user has no assignment.
	GetByUserID(ctx context.Context, userID string) (*entity.RoleAssignment, error)
	Assign(ctx context.Context, userID string, role access.BackendRole) error
}
