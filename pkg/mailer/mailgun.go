package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends transactional email through one Mailgun domain.
type Mailgun struct {
	Sender string
	client *mg.MailgunImpl
}

// NewMailgun builds the client once. eu selects the EU API region.
func NewMailgun(domain, apiKey, sender string, eu bool) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if eu {
		client.SetAPIBase(mg.APIBaseEU)
	}
	return &Mailgun{Sender: sender, client: client}
}

// Send sends an email via Mailgun. html is optional; if provided it will be used as HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}
