package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
	"github.com/AcasisDev/siteguard-hub/pkg/response"
)

const maxAvatarBytes = 2 << 20

// SessionRestorer re-resolves the principal of a live session.
type SessionRestorer interface {
	Restore(ctx context.Context, s *application.Session) (*entity.SessionState, error)
}

type ProfileHandler struct {
	Svc      *application.ProfileService
	Sessions SessionRestorer
	Logger   *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, sessions SessionRestorer, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Sessions: sessions, Logger: logger}
}

type updateNameRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// refresh re-resolves the caller's session so the new display data shows up
// in its principal, and returns the principal to send back.
func (h *ProfileHandler) refresh(c *gin.Context) *entity.Principal {
	p := middleware.PrincipalFrom(c)
	sess := &application.Session{
		ID:   middleware.SessionIDFrom(c),
		User: entity.Identity{UserID: p.ID, Email: p.Email, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
	}
	st, err := h.Sessions.Restore(c.Request.Context(), sess)
	if err != nil || st == nil || st.Principal == nil {
		if err != nil && h.Logger != nil {
			h.Logger.WithError(err).WithField("sid", sess.ID).Warn("re-resolve session failed")
		}
		return p
	}
	return st.Principal
}

func (h *ProfileHandler) UpdateName(c *gin.Context) {
	var req updateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	p := actorFrom(c)
	if _, err := h.Svc.UpdateName(c.Request.Context(), p.ID, req.Name); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, h.refresh(c), "profile updated", nil)
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes+4096)
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "avatar file is required", gin.H{"avatar": err.Error()})
		return
	}
	ct := fh.Header.Get("Content-Type")
	if fh.Size > maxAvatarBytes || !strings.HasPrefix(ct, "image/") {
		response.Error[any](c, http.StatusBadRequest, "avatar must be an image up to 2MB", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	defer f.Close()

	p := actorFrom(c)
	if _, err := h.Svc.UploadAvatar(c.Request.Context(), p.ID, f, fh.Filename, ct); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, h.refresh(c), "avatar updated", nil)
}
