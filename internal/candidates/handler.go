package candidates

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"genius-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches candidate routes to an admin router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/candidates", h.list)
	rg.POST("/candidates", h.create)
	rg.GET("/candidates/:id", h.get)
	rg.PUT("/candidates/:id", h.update)
	rg.DELETE("/candidates/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respond.DegradedList(c, err)
		return
	}
	respond.List(c, items)
}

func (h *Handler) create(c *gin.Context) {
	var req candidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("candidateId", created.ID)
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("candidateId", id)

	found, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, found)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("candidateId", id)

	var req candidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, updated)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("candidateId", id)

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrDuplicatePassport):
		respond.Error(c, http.StatusConflict, "duplicate_passport", err.Error(), nil)
	case errors.Is(err, ErrDuplicateTrackingCode):
		respond.Error(c, http.StatusConflict, "duplicate_tracking_code", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
	case errors.Is(err, ErrStoreUnavailable):
		respond.StoreUnavailable(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process candidate", nil)
	}
}
