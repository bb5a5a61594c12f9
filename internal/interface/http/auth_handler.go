package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
	"github.com/AcasisDev/siteguard-hub/pkg/helpers"
	"github.com/AcasisDev/siteguard-hub/pkg/response"
)

// StateLoader returns the resolved state of a session.
type StateLoader interface {
	Current(ctx context.Context, sid string) (*entity.SessionState, error)
}

type AuthHandler struct {
	Identity          *application.IdentityService
	States            StateLoader
	Cookies           *helpers.Manager
	Logger            *logrus.Logger
	SignupRedirectURL string
}

func NewAuthHandler(identity *application.IdentityService, states StateLoader, cookies *helpers.Manager, logger *logrus.Logger, signupRedirect string) *AuthHandler {
	return &AuthHandler{Identity: identity, States: states, Cookies: cookies, Logger: logger, SignupRedirectURL: signupRedirect}
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"max=100"`
}

// MeView is the signed-in principal with what it may see and do.
type MeView struct {
	User        *entity.Principal          `json:"user"`
	Permissions access.ResourcePermissions `json:"permissions"`
	Navigation  []access.NavItem           `json:"navigation"`
}

func newMeView(p *entity.Principal) MeView {
	return MeView{User: p, Permissions: p.Permissions(), Navigation: access.Navigation(p.Role)}
}

func tokenMeta(s *application.Session) gin.H {
	return gin.H{"access_expires_at": s.AccessToken.ExpiresAt, "refresh_expires_at": s.RefreshToken.ExpiresAt}
}

func (h *AuthHandler) setCookies(c *gin.Context, s *application.Session) {
	h.Cookies.SetPair(c, s.AccessToken.Value, s.AccessToken.ExpiresAt, s.RefreshToken.Value, s.RefreshToken.ExpiresAt)
}

// principal returns the committed principal of sid, or nil while it is
// still loading.
func (h *AuthHandler) principal(c *gin.Context, sid string) *entity.Principal {
	st, err := h.States.Current(c.Request.Context(), sid)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("sid", sid).Warn("load session state failed")
		}
		return nil
	}
	if st == nil || st.Status != entity.SessionAuthenticated {
		return nil
	}
	return st.Principal
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	sess, err := h.Identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.setCookies(c, sess)

	var data any = gin.H{"session_id": sess.ID, "status": entity.SessionLoading}
	if p := h.principal(c, sess.ID); p != nil {
		data = newMeView(p)
	}
	response.Success(c, http.StatusOK, data, "signed in", tokenMeta(sess))
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	id, err := h.Identity.SignUp(c.Request.Context(), req.Email, req.Password, application.SignUpOptions{
		DisplayName: req.Name,
		RedirectURL: h.SignupRedirectURL,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": id.UserID, "email": id.Email}, "account created, please sign in", nil)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	sess, err := h.Identity.Refresh(c.Request.Context(), refresh)
	if err != nil {
		h.Cookies.Clear(c)
		fail(c, h.Logger, err)
		return
	}
	h.setCookies(c, sess)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", tokenMeta(sess))
}

// SignOut ends the identity session of the access token, if any. It always
// clears the cookies.
func (h *AuthHandler) SignOut(c *gin.Context) {
	h.Cookies.Clear(c)
	ctx := c.Request.Context()
	if token := middleware.AccessToken(c); token != "" {
		sess, err := h.Identity.GetSession(ctx, token)
		if err == nil && sess != nil {
			if err := h.Identity.SignOut(ctx, sess.ID); err != nil {
				fail(c, h.Logger, err)
				return
			}
		}
	}
	response.Success[any](c, http.StatusOK, gin.H{"signed_out": true}, "signed out", nil)
}

// Me runs behind the auth middleware.
func (h *AuthHandler) Me(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
		return
	}
	response.Success(c, http.StatusOK, newMeView(p), "me", nil)
}
