package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/acquisitions/internal/interface/http"
	"github.com/oksasatya/acquisitions/internal/interface/middleware"
	"github.com/oksasatya/acquisitions/pkg/helpers"
)

// AuthLimits bounds the public auth endpoints per client IP.
type AuthLimits struct {
	Max       int
	Window    time.Duration
	BotShield bool
}

// AuthModule wires the auth handlers.
// Public (shielded): POST /api/auth/sign-up, POST /api/auth/sign-in
// Public: POST /api/auth/sign-out
// Protected: GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Limits  AuthLimits
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, rdb *redis.Client, limits AuthLimits) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Redis: rdb, Limits: limits}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")

	shield := middleware.BotShield(m.Limits.BotShield)
	limiter := middleware.RateLimit(m.Redis, m.Limits.Max, m.Limits.Window, middleware.KeyByIP(), nil)
	g.POST("/sign-up", shield, limiter, m.Handler.SignUp)
	g.POST("/sign-in", shield, limiter, m.Handler.SignIn)
	g.POST("/sign-out", middleware.OptionalAuth(m.JWT), m.Handler.SignOut)

	g.GET("/me", middleware.Auth(m.Redis, m.JWT), m.Handler.Me)
}
