package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AcasisDev/siteguard-hub/internal/container"
	"github.com/AcasisDev/siteguard-hub/internal/domain/access"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
)

// CRUDHandler is implemented by handlers.ResourceHandler.
type CRUDHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// ResourceModule mounts CRUD routes for one managed resource, each gated by
// the matching permission.
type ResourceModule struct {
	Path     string
	Resource access.Resource
	Handler  CRUDHandler
	Auth     gin.HandlerFunc
	// Extra registers additional routes on the authenticated group.
	Extra func(g *gin.RouterGroup)
}

func NewResourceModule(path string, res access.Resource, h CRUDHandler, auth gin.HandlerFunc) *ResourceModule {
	return &ResourceModule{Path: path, Resource: res, Handler: h, Auth: auth}
}

func (m *ResourceModule) Register(rg *gin.RouterGroup) {
	g := rg.Group(m.Path)
	g.Use(m.Auth, middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))

	perm := func(act access.Action) gin.HandlerFunc { return middleware.RequirePermission(m.Resource, act) }
	if m.Extra != nil {
		m.Extra(g)
	}
	g.GET("", perm(access.ActionRead), m.Handler.List)
	g.GET("/:id", perm(access.ActionRead), m.Handler.Get)
	g.POST("", perm(access.ActionCreate), m.Handler.Create)
	g.PUT("/:id", perm(access.ActionUpdate), m.Handler.Update)
	g.DELETE("/:id", perm(access.ActionDelete), m.Handler.Delete)
}
