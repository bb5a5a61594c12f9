package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateRoleRequest struct {
	Role access.Role `json:"role" binding:"required,app_role"`
}

func (h *UserHandler) List(c *gin.Context) {
	f := listFilter(c)
	users, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if users == nil {
		users = []entity.UserSummary{}
	}
	response.Success(c, http.StatusOK, users, "users", listMeta(f, len(users)))
}

func (h *UserHandler) Create(c *gin.Context) {
	var in application.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Svc.UpdateRole(c.Request.Context(), actorFrom(c), c.Param("id"), req.Role); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"id": c.Param("id"), "role": req.Role}, "role updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"id": c.Param("id")}, "user deleted", nil)
}
