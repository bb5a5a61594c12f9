package helpers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AcasisDev/siteguard-hub/pkg/helpers"
)

func TestJWTRoundTrip(t *testing.T) {
	m := helpers.NewJWTManager("a-secret", "r-secret", time.Minute, time.Hour)

	access, err := m.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)
	claims, err := m.ParseAccessToken(access.Value)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.SessionID)
	assert.Equal(t, access.ID, claims.ID)

	refresh, err := m.GenerateRefreshToken("u1", "s1")
	require.NoError(t, err)
	assert.NotEqual(t, access.ID, refresh.ID)

	_, err = m.ParseAccessToken(refresh.Value)
	assert.Error(t, err, "refresh token must not validate as access token")
}

func TestJWTRejectsExpired(t *testing.T) {
	m := helpers.NewJWTManager("a", "r", -time.Minute, time.Hour)
	tok, err := m.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(tok.Value)
	assert.Error(t, err)
}
