package templates

import (
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

// Branding is the sender identity shared by every email.
type Branding struct {
	CompanyName string
	AppName     string
	SupportURL  string
}

// NewWelcomeData builds the data of the welcome email.
func NewWelcomeData(b Branding, name, email, role, loginURL string, opts ...Option) EmailData {
	d := EmailData{
		Name:        name,
		Email:       email,
		Type:        Welcome,
		CompanyName: b.CompanyName,
		AppName:     b.AppName,
		SupportURL:  b.SupportURL,
		Role:        role,
		LoginURL:    loginURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
