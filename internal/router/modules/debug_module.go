package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AcasisDev/siteguard-hub/internal/container"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar, rate-limited per IP except for private networks
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
