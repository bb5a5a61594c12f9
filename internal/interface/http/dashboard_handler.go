package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/domain/entity"
	"github.com/AcasisDev/siteguard-hub/pkg/response"
)

type DashboardHandler struct {
	Svc    *application.DashboardService
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *application.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	o, err := h.Svc.Overview(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, o, "dashboard", nil)
}

func (h *DashboardHandler) Activity(c *gin.Context) {
	list, err := h.Svc.RecentActivity(c.Request.Context(), listFilter(c).Limit)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if list == nil {
		list = []entity.Activity{}
	}
	response.Success(c, http.StatusOK, list, "recent activity", nil)
}
