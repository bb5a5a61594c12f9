package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/pkg/helpers"
	"github.com/AcasisDev/siteguard-hub/pkg/response"
)

const (
	ctxPrincipal = "principal"
	ctxUserID    = "userID"
	ctxSessionID = "sessionID"
)

// SessionReader validates access tokens against identity sessions.
type SessionReader interface {
	GetSession(ctx context.Context, accessToken string) (*application.Session, error)
}

// StateReader exposes the resolved state of identity sessions.
type StateReader interface {
	Current(ctx context.Context, sid string) (*entity.SessionState, error)
	Restore(ctx context.Context, s *application.Session) (*entity.SessionState, error)
}

// AccessToken reads the access token from the cookie, then from a Bearer
// Authorization header.
func AccessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth validates the access token, ensures the identity session is alive and
// puts the resolved principal into the Gin context. Sessions whose state is
// missing or stalled in loading are resolved on the spot; sessions still
// being resolved get a 503 with Retry-After.
func Auth(sessions SessionReader, states StateReader, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := AccessToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		ctx := c.Request.Context()

		sess, err := sessions.GetSession(ctx, token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).Error("session lookup failed")
			}
			response.Abort(c, http.StatusInternalServerError, "session lookup failed", nil)
			return
		}
		if sess == nil {
			response.Abort(c, http.StatusUnauthorized, "invalid or expired session", nil)
			return
		}

		state, err := states.Current(ctx, sess.ID)
		if err == nil && (state == nil || state.Status == entity.SessionUnauthenticated || state.Stalled(time.Now())) {
			state, err = states.Restore(ctx, sess)
		}
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("sid", sess.ID).Error("session state unavailable")
			}
			response.Abort(c, http.StatusInternalServerError, "session state unavailable", nil)
			return
		}

		if state == nil || state.Status != entity.SessionAuthenticated || state.Principal == nil {
			c.Header("Retry-After", "1")
			response.Abort(c, http.StatusServiceUnavailable, "session is loading", nil)
			return
		}

		c.Set(ctxPrincipal, state.Principal)
		c.Set(ctxUserID, state.Principal.ID)
		c.Set(ctxSessionID, sess.ID)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by Auth, or nil.
func PrincipalFrom(c *gin.Context) *entity.Principal {
	v, ok := c.Get(ctxPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*entity.Principal)
	return p
}

// SessionIDFrom returns the identity session id stored by Auth.
func SessionIDFrom(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
