package entity

import "time"

type WebsiteStatus string

const (
	WebsiteActive      WebsiteStatus = "active"
	WebsiteInactive    WebsiteStatus = "inactive"
	WebsiteMaintenance WebsiteStatus = "maintenance"
)

// Website is a tracked site and the anchor for credentials, domains and servers.
type Website struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Name      string        `json:"name"`
	Domain    string        `json:"domain"`
	Provider  string        `json:"provider"`
	ServerIP  string        `json:"server_ip"`
	Notes     *string       `json:"notes,omitempty"`
	Status    WebsiteStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
