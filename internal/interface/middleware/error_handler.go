package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/acquisitions/pkg/apperror"
	"github.com/oksasatya/acquisitions/pkg/response"
)

// ErrorHandler is the generic error path: handlers call c.Error(err) and return,
// and the last error is logged and written as {error} with the status of its kind.
// Messages of system faults are never sent to the client.
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		entry := logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
		}).WithError(err)

		if c.Writer.Written() {
			entry.Warn("request error after response was written")
			return
		}
		if status >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Info("request rejected")
		}
		response.AbortError(c, status, apperror.PublicMessage(err))
	}
}

// Recovery turns panics into 500 responses through the same error body.
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.Request.URL.Path,
			"panic":      recovered,
		}).Error("panic recovered")
		response.AbortError(c, http.StatusInternalServerError, "Internal server error")
	})
}
