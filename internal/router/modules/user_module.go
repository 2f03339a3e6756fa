package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/acquisitions/internal/interface/http"
	"github.com/oksasatya/acquisitions/internal/interface/middleware"
	"github.com/oksasatya/acquisitions/pkg/helpers"
)

// UserModule wires the user directory.
// Protected: GET /api/users/search
// Any signed-in user may search; roles are not enforced on this route.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	Redis   *redis.Client
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, Redis: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil)) // 120 req/min per user
	{
		auth.GET("/search", m.Handler.Search)
	}
}
