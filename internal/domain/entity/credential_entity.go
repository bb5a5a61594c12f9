package entity

import "time"

type CredentialType string

const (
	CredentialFTP      CredentialType = "ftp"
	CredentialSMTP     CredentialType = "smtp"
	CredentialCPanel   CredentialType = "cpanel"
	CredentialDatabase CredentialType = "database"
	CredentialSSH      CredentialType = "ssh"
	CredentialOther    CredentialType = "other"
)

// Credential is a hosting login attached to a website.
type Credential struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	WebsiteID   string         `json:"website_id"`
	WebsiteName *string        `json:"website_name,omitempty"`
	Type        CredentialType `json:"type"`
	Host        string         `json:"host"`
	Username    string         `json:"username"`
	Password    string         `json:"password"`
	Port        *int32         `json:"port,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
