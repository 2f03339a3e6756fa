package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageBody is the shape of plain outcome responses, e.g. {"message":"User signed out"}.
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody is the shape of error responses. Details is only set for
// validation failures.
type ErrorBody struct {
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageBody{Message: message})
}

func Error(c *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, ErrorBody{Error: message, Details: details, RequestID: c.GetString("request_id")})
}

// AbortError writes an error body and stops the handler chain.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message, RequestID: c.GetString("request_id")})
}

func ValidationFailed(c *gin.Context, details interface{}) {
	Error(c, http.StatusBadRequest, "Validation failed", details)
}
