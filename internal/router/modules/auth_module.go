package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AcasisDev/siteguard-hub/internal/container"
	handlers "github.com/AcasisDev/siteguard-hub/internal/interface/http"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
)

// AuthModule wires the identity endpoints.
// Public: POST /api/auth/sign-in, /sign-up, /refresh, /sign-out
// Protected: GET /api/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, auth gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signInLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	signUpLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/sign-in", signInLimiter, m.Handler.SignIn)
	rg.POST("/auth/sign-up", signUpLimiter, m.Handler.SignUp)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/auth/sign-out", m.Handler.SignOut)

	rg.GET("/me", m.Auth, m.Handler.Me)
}
