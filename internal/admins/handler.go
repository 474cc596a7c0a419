package admins

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"genius-backend/internal/shared/server/middleware"
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

// RegisterPublicRoutes attaches sign-in routes that need no session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.login)
}

// RegisterRoutes attaches session routes to an admin router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/logout", h.logout)
	rg.GET("/me", h.me)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
		case errors.Is(err, ErrStoreUnavailable):
			respond.StoreUnavailable(c, err)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign in", nil)
		}
		return
	}
	c.Set("adminId", sess.Admin.ID)
	respond.OK(c, sess)
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), middleware.SessionTokenFromContext(c)); err != nil {
		switch {
		case errors.Is(err, ErrUnauthorized):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		case errors.Is(err, ErrStoreUnavailable):
			respond.StoreUnavailable(c, err)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign out", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) me(c *gin.Context) {
	admin, err := h.Svc.Me(c.Request.Context(), middleware.AdminIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "admin account no longer exists", nil)
		case errors.Is(err, ErrStoreUnavailable):
			respond.StoreUnavailable(c, err)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load admin", nil)
		}
		return
	}
	respond.OK(c, admin)
}
