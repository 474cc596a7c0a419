package lookup

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"genius-backend/internal/shared/metrics"
	"genius-backend/internal/shared/server/respond"
)

// Handler serves the public tracking page.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public lookup route. The group must not require a session.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tracking/:code", h.find)
}

func (h *Handler) find(c *gin.Context) {
	res, err := h.Svc.FindByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			metrics.IncPublicLookup("not_found")
			respond.Error(c, http.StatusNotFound, "not_found", "No tracking information found", nil)
		case errors.Is(err, ErrStoreUnavailable):
			metrics.IncPublicLookup("error")
			respond.StoreUnavailable(c, err)
		default:
			metrics.IncPublicLookup("error")
			respond.Error(c, http.StatusInternalServerError, "internal_error", "lookup failed", nil)
		}
		return
	}
	metrics.IncPublicLookup("found")
	c.Set("trackingId", res.TrackingID)
	respond.OK(c, res)
}
