package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	handlers "github.com/AcasisDev/siteguard-hub/internal/interface/http"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
)

// UserModule serves the users screen.
// GET /api/users, POST /api/users, PUT /api/users/:id/role, DELETE /api/users/:id
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, auth gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users", m.Auth)
	g.GET("", middleware.RequirePermission(access.ResourceUsers, access.ActionRead), m.Handler.List)
	g.POST("", middleware.RequirePermission(access.ResourceUsers, access.ActionCreate), m.Handler.Create)
	g.PUT("/:id/role", middleware.RequirePermission(access.ResourceUsers, access.ActionUpdate), m.Handler.UpdateRole)
	g.DELETE("/:id", middleware.RequirePermission(access.ResourceUsers, access.ActionDelete), m.Handler.Delete)
}
