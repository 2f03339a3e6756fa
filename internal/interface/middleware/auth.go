package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/acquisitions/pkg/helpers"
	"github.com/oksasatya/acquisitions/pkg/response"
)

// Gin context keys set by Auth.
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	CtxUserRole  = "userRole"
	CtxSessionID = "sessionID"
)

// bearerToken returns the token from the token cookie, or the Authorization header.
func bearerToken(c *gin.Context) string {
	if token, err := c.Cookie(helpers.TokenCookie); err == nil && token != "" {
		return token
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth validates the session token and, when rdb is set, ensures the session
// it names is still active in Redis.
// It sets userID, userEmail, userRole and sessionID in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing session token")
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid session token")
			return
		}

		if rdb != nil {
			sid, err := rdb.HGet(c.Request.Context(), helpers.SessionKey(claims.UserID), "sid").Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				// redis outage: the signed token is still authoritative
				_ = c.Error(err)
			} else if sid == "" || sid != claims.SessionID {
				response.AbortError(c, http.StatusUnauthorized, "session not found")
				return
			}
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxSessionID, claims.SessionID)
		c.Next()
	}
}

// OptionalAuth behaves like Auth but lets anonymous requests through.
// Context keys are only set when a valid token is presented.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := jwt.ParseToken(token); err == nil {
				c.Set(CtxUserID, claims.UserID)
				c.Set(CtxUserEmail, claims.Email)
				c.Set(CtxUserRole, claims.Role)
				c.Set(CtxSessionID, claims.SessionID)
			}
		}
		c.Next()
	}
}
