package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"genius-backend/internal/admins"
	"genius-backend/internal/candidates"
	"genius-backend/internal/dashboard"
	"genius-backend/internal/jobs"
	"genius-backend/internal/lookup"
	"genius-backend/internal/services/health"
	"genius-backend/internal/shared/config"
	"genius-backend/internal/shared/metrics"
	"genius-backend/internal/shared/server/middleware"
	"genius-backend/internal/shared/server/respond"
	"genius-backend/internal/shared/telemetry"
	"genius-backend/internal/tracking"
)

const (
	rateGroupLookup = "LOOKUP"
	rateGroupLogin  = "LOGIN"
)

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config     config.Config
	Sessions   middleware.SessionVerifier
	Health     *health.Service
	Admins     *admins.Handler
	Google     *admins.GoogleSignIn
	Candidates *candidates.Handler
	Tracking   *tracking.Handler
	Lookup     *lookup.Handler
	Jobs       *jobs.Handler
	Dashboard  *dashboard.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsDevLike() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// Client IPs key the public rate limits; forwarded headers count only from listed proxies.
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		telemetry.Warn("router.trusted_proxies_invalid", map[string]any{"proxies": deps.Config.TrustedProxies, "error": err})
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: rateGroup,
			Rules: map[string]middleware.RateLimitRule{
				rateGroupLookup: {Rate: deps.Config.LookupRatePerSecond, Burst: deps.Config.LookupBurst},
				rateGroupLogin:  {Rate: 0.2, Burst: 5},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		report := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	if deps.Lookup != nil {
		deps.Lookup.RegisterRoutes(api)
	}
	if deps.Jobs != nil {
		deps.Jobs.RegisterPublicRoutes(api)
	}
	if deps.Admins != nil {
		deps.Admins.RegisterPublicRoutes(api)
	}
	if deps.Google != nil {
		deps.Google.RegisterRoutes(api)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminSession(deps.Sessions))
	if deps.Admins != nil {
		deps.Admins.RegisterRoutes(admin)
	}
	if deps.Dashboard != nil {
		deps.Dashboard.RegisterRoutes(admin)
	}
	if deps.Candidates != nil {
		deps.Candidates.RegisterRoutes(admin)
	}
	if deps.Tracking != nil {
		deps.Tracking.RegisterRoutes(admin)
	}
	if deps.Jobs != nil {
		deps.Jobs.RegisterRoutes(admin)
	}

	return r
}

func rateGroup(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/v1/tracking/:code":
		return rateGroupLookup
	case "/api/v1/auth/login":
		return rateGroupLogin
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
