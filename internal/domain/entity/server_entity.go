package entity

import "time"

type ServerStatus string

const (
	ServerOnline      ServerStatus = "online"
	ServerOffline     ServerStatus = "offline"
	ServerMaintenance ServerStatus = "maintenance"
)

// Server is a host a website runs on.
type Server struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	WebsiteID   string       `json:"website_id"`
	Provider    string       `json:"provider"`
	IPAddress   string       `json:"ip_address"`
	SSHUsername *string      `json:"ssh_username,omitempty"`
	SSHPassword *string      `json:"ssh_password,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
	Status      ServerStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
