package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/acquisitions/internal/interface/middleware"
	"github.com/oksasatya/acquisitions/pkg/response"
)

// DebugModule exposes expvar counters (auth_signups_total etc.) to private networks.
type DebugModule struct {
	Redis *redis.Client
}

func NewDebugModule(rdb *redis.Client) *DebugModule { return &DebugModule{Redis: rdb} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	private := middleware.AllowPrivateIP()
	onlyPrivate := func(c *gin.Context) {
		if !private(c) {
			response.AbortError(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.Next()
	}
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", onlyPrivate, rl, gin.WrapH(expvar.Handler()))
}
