package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/pkg/mailer"
	mailtpl "github.com/AcasisDev/siteguard-hub/pkg/mailer/templates"
)

// Transport delivers one rendered email. *mailer.Mailgun implements it.
type Transport interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// WelcomeSender renders the welcome templates and hands them to Transport.
// When Enabled is false the email is only logged.
type WelcomeSender struct {
	Transport Transport
	Branding  mailtpl.Branding
	Enabled   bool
	Timeout   time.Duration
	Logger    *logrus.Logger
}

func NewWelcomeSender(t Transport, b mailtpl.Branding, enabled bool, logger *logrus.Logger) *WelcomeSender {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &WelcomeSender{Transport: t, Branding: b, Enabled: enabled, Timeout: 15 * time.Second, Logger: logger}
}

func (s *WelcomeSender) SendWelcome(ctx context.Context, job mailer.SignupJob, role access.Role) error {
	data := mailtpl.NewWelcomeData(s.Branding, job.DisplayName, job.Email, role.String(), job.RedirectURL,
		mailtpl.WithTime(job.CreatedAt))
	subject, text, html, err := mailtpl.Render(mailtpl.Welcome, data)
	if err != nil {
		return fmt.Errorf("render welcome: %w", err)
	}

	log := s.Logger.WithFields(logrus.Fields{"user_id": job.UserID, "to": job.Email})
	if !s.Enabled || s.Transport == nil {
		log.Info("mail sending disabled; welcome email skipped")
		return nil
	}

	c, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.Transport.Send(c, job.Email, subject, text, html); err != nil {
		return fmt.Errorf("send welcome: %w", err)
	}
	log.Info("welcome email sent")
	return nil
}
