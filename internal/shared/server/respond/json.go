package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"genius-backend/internal/shared/telemetry"
)

// ListResponse wraps list payloads; Error is set when the list could not be loaded.
type ListResponse struct {
	Items any        `json:"items"`
	Error *ErrorBody `json:"error,omitempty"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// List writes a list payload.
func List(c *gin.Context, items any) {
	OK(c, ListResponse{Items: items})
}

// DegradedList answers a failed read with an empty list and an inline notice instead of an error status.
func DegradedList(c *gin.Context, err error) {
	telemetry.Error("store.read_degraded", map[string]any{
		"path":       c.Request.URL.Path,
		"request_id": c.GetString("requestId"),
		"err":        err,
	})
	OK(c, ListResponse{
		Items: []any{},
		Error: &ErrorBody{
			Code:    "store_unavailable",
			Message: "Records could not be loaded right now",
		},
	})
}
