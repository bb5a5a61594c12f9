package notify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/infrastructure/notify"
	"github.com/AcasisDev/siteguard-hub/pkg/mailer"
	mailtpl "github.com/AcasisDev/siteguard-hub/pkg/mailer/templates"
)

type captured struct {
	to, subject, text, html string
	calls                   int
	err                     error
}

func (c *captured) Send(_ context.Context, to, subject, text, html string) error {
	c.calls++
	c.to, c.subject, c.text, c.html = to, subject, text, html
	return c.err
}

func job() mailer.SignupJob {
	return mailer.SignupJob{UserID: "u1", Email: "ed@example.com", DisplayName: "Ed", CreatedAt: time.Now()}
}

func TestSendWelcome(t *testing.T) {
	tr := &captured{}
	s := notify.NewWelcomeSender(tr, mailtpl.Branding{AppName: "SiteGuard Hub"}, true, logrus.New())

	require.NoError(t, s.SendWelcome(context.Background(), job(), access.RoleEditor))
	assert.Equal(t, "ed@example.com", tr.to)
	assert.Equal(t, "Welcome to SiteGuard Hub", tr.subject)
	assert.Contains(t, tr.text, "Editor role")
}

func TestSendWelcomeDisabled(t *testing.T) {
	tr := &captured{}
	s := notify.NewWelcomeSender(tr, mailtpl.Branding{}, false, logrus.New())

	require.NoError(t, s.SendWelcome(context.Background(), job(), access.RoleViewer))
	assert.Zero(t, tr.calls)
}

func TestSendWelcomeTransportError(t *testing.T) {
	tr := &captured{err: errors.New("mailgun 401")}
	s := notify.NewWelcomeSender(tr, mailtpl.Branding{}, true, logrus.New())

	err := s.SendWelcome(context.Background(), job(), access.RoleViewer)
	assert.ErrorIs(t, err, tr.err)
}
