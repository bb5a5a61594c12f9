package entity

import (
	"math"
	"time"
)

type DomainStatus string

const (
	DomainActive  DomainStatus = "active"
	DomainExpired DomainStatus = "expired"
	DomainPending DomainStatus = "pending"
)

// ExpiringSoonWindow is how close to expiry a domain must be to be flagged.
const ExpiringSoonWindow = 30 * 24 * time.Hour

// Domain is a registered domain name attached to a website.
type Domain struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	WebsiteID    string       `json:"website_id"`
	DomainName   string       `json:"domain_name"`
	Registrar    string       `json:"registrar"`
	RegisterDate time.Time    `json:"register_date"`
	ExpireDate   time.Time    `json:"expire_date"`
	Nameservers  []string     `json:"nameservers"`
	Status       DomainStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// DaysUntilExpiry counts whole days between now and the expiry date,
// truncated toward zero.
func (d *Domain) DaysUntilExpiry(now time.Time) int {
	return int(math.Trunc(d.ExpireDate.Sub(now).Hours() / 24))
}

// ExpiryState is the badge shown next to a domain: "expired" when the
// status says so, "expiring_soon" within the 30 day window, else the status.
func (d *Domain) ExpiryState(now time.Time) string {
	if d.Status == DomainExpired {
		return "expired"
	}
	days := d.DaysUntilExpiry(now)
	if days > 0 && days <= int(ExpiringSoonWindow.Hours()/24) {
		return "expiring_soon"
	}
	return string(d.Status)
}

// DomainLookup is registration data fetched over WHOIS.
type DomainLookup struct {
	DomainName   string    `json:"domain_name"`
	Registrar    string    `json:"registrar"`
	RegisterDate time.Time `json:"register_date,omitempty"`
	ExpireDate   time.Time `json:"expire_date,omitempty"`
	Nameservers  []string  `json:"nameservers"`
}
