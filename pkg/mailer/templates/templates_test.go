package templates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AcasisDev/siteguard-hub/pkg/mailer/templates"
)

func TestRenderWelcome(t *testing.T) {
	data := templates.NewWelcomeData(
		templates.Branding{CompanyName: "Acasis", AppName: "SiteGuard Hub"},
		"Ada", "ada@example.com", "editor", "https://hub.example.com/",
		templates.WithTime(time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)),
	)
	subject, text, html, err := templates.Render(templates.Welcome, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to SiteGuard Hub", subject)
	assert.Contains(t, text, "Hi Ada,")
	assert.Contains(t, text, "Editor role")
	assert.Contains(t, text, "https://hub.example.com/")
	assert.NotContains(t, text, "Questions?")
	assert.Contains(t, html, "<strong>ada@example.com</strong>")
	assert.Contains(t, html, "02 January 2026, 03:04")
}

func TestRenderWelcomeEscapesHTML(t *testing.T) {
	data := templates.NewWelcomeData(templates.Branding{}, "<b>x</b>", "x@example.com", "viewer", "")
	subject, _, html, err := templates.Render(templates.Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to SiteGuard", subject)
	assert.Contains(t, html, "&lt;b&gt;x&lt;/b&gt;")
}

func TestRenderWelcomeSupportLinkFromBranding(t *testing.T) {
	b := templates.Branding{AppName: "SiteGuard Hub", SupportURL: "https://help.example.com"}
	_, text, html, err := templates.Render(templates.Welcome, templates.NewWelcomeData(b, "Ada", "ada@example.com", "viewer", ""))
	require.NoError(t, err)
	assert.Contains(t, text, "Questions? https://help.example.com")
	assert.Contains(t, html, `href="https://help.example.com"`)
}
