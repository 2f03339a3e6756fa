package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	Started time.Time
	DB      Pinger // optional
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{Started: time.Now(), DB: db}
}

// Root GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello from Acquisitions!")
}

// Health GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	status, code := "OK", http.StatusOK
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
	}
	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.Started).Seconds(),
	})
}
