package tracking

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes attaches tracking routes to an admin router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tracking", h.list)
	rg.POST("/tracking", h.create)
	rg.GET("/tracking/:id", h.get)
	rg.PUT("/tracking/:id", h.update)
	rg.DELETE("/tracking/:id", h.delete)
	rg.POST("/tracking/:id/timeline", h.addStep)
	rg.DELETE("/tracking/:id/timeline/:index", h.removeStep)
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
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	c.Set("candidateId", req.CandidateID)

	rec, err := h.Svc.Create(c.Request.Context(), CreateInput{
		CandidateID: req.CandidateID,
		Status:      req.Status,
		Timeline:    req.Timeline,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("trackingRecordId", rec.ID)
	respond.JSON(c, http.StatusCreated, rec)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("trackingRecordId", id)

	rec, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("trackingRecordId", id)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	rec, err := h.Svc.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("trackingRecordId", id)

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addStep(c *gin.Context) {
	id := c.Param("id")
	c.Set("trackingRecordId", id)

	var step TimelineStep
	if err := c.ShouldBindJSON(&step); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	rec, err := h.Svc.AddTimelineStep(c.Request.Context(), id, step)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) removeStep(c *gin.Context) {
	id := c.Param("id")
	c.Set("trackingRecordId", id)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "step index must be a number", nil)
		return
	}

	rec, err := h.Svc.RemoveTimelineStep(c.Request.Context(), id, index)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, rec)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyTimeline):
		respond.Error(c, http.StatusBadRequest, "empty_timeline", err.Error(), nil)
	case errors.Is(err, ErrMinimumStepsRequired):
		respond.Error(c, http.StatusBadRequest, "minimum_steps_required", err.Error(), nil)
	case errors.Is(err, ErrImmutableField):
		respond.Error(c, http.StatusBadRequest, "immutable_field", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrCandidateNotFound):
		respond.Error(c, http.StatusNotFound, "candidate_not_found", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "tracking record not found", nil)
	case errors.Is(err, ErrDuplicateTrackingCode):
		respond.Error(c, http.StatusConflict, "duplicate_tracking_code", err.Error(), nil)
	case errors.Is(err, ErrStoreUnavailable):
		respond.StoreUnavailable(c, err)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process tracking record", nil)
	}
}
