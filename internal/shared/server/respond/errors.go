package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"genius-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if adminID := c.GetString("adminId"); adminID != "" {
		fields["admin_id"] = adminID
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// StoreUnavailable reports a failed write against the record store and asks the caller to retry.
func StoreUnavailable(c *gin.Context, err error) {
	telemetry.Error("store.unavailable", map[string]any{
		"path":       c.Request.URL.Path,
		"request_id": c.GetString("requestId"),
		"err":        err,
	})
	Error(c, http.StatusServiceUnavailable, "store_unavailable", "The record store is unavailable, please try again", nil)
}
