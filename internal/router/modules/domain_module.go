package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	handlers "github.com/AcasisDev/siteguard-hub/internal/interface/http"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
)

// NewDomainModule adds GET /domains/expiring and POST /domains/lookup to the
// domain CRUD routes.
func NewDomainModule(h *handlers.DomainHandler, auth gin.HandlerFunc) *ResourceModule {
	m := NewResourceModule("/domains", access.ResourceDomains, h, auth)
	m.Extra = func(g *gin.RouterGroup) {
		g.GET("/expiring", middleware.RequirePermission(access.ResourceDomains, access.ActionRead), h.Expiring)
		g.POST("/lookup", middleware.RequirePermission(access.ResourceDomains, access.ActionCreate), h.Lookup)
	}
	return m
}
