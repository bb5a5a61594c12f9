package entity

import (
	"time"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
)

// User is an account known to the identity service.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity is the part of a User the rest of the system may see once a
// session is established.
type Identity struct {
	UserID    string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

// Profile holds display data kept alongside a user.
type Profile struct {
	UserID      string
	DisplayName string
	AvatarURL   string
	UpdatedAt   time.Time
}

// UserSummary is a row of the users screen.
type UserSummary struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"name"`
	AvatarURL   string      `json:"avatar,omitempty"`
	Role        access.Role `json:"role"`
	CreatedAt   time.Time   `json:"created_at"`
}
