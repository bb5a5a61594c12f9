package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	handlers "github.com/AcasisDev/siteguard-hub/internal/interface/http"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
)

type DashboardModule struct {
	Handler *handlers.DashboardHandler
	Auth    gin.HandlerFunc
}

func NewDashboardModule(h *handlers.DashboardHandler, auth gin.HandlerFunc) *DashboardModule {
	return &DashboardModule{Handler: h, Auth: auth}
}

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/dashboard", m.Auth, middleware.RequirePermission(access.ResourceDashboard, access.ActionRead))
	g.GET("", m.Handler.Overview)
	g.GET("/activity", m.Handler.Activity)
}
