package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AcasisDev/siteguard-hub/internal/container"
	handlers "github.com/AcasisDev/siteguard-hub/internal/interface/http"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
)

// ProfileModule lets any signed-in principal edit its own profile.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Auth    gin.HandlerFunc
}

func NewProfileModule(h *handlers.ProfileHandler, auth gin.HandlerFunc) *ProfileModule {
	return &ProfileModule{Handler: h, Auth: auth}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/profile", m.Auth, middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	g.PUT("", m.Handler.UpdateName)
	g.PUT("/avatar", m.Handler.UploadAvatar)
}
