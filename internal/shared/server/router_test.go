package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"genius-backend/internal/services/health"
	"genius-backend/internal/shared/auth"
	"genius-backend/internal/shared/config"
)

type denyAll struct{}

func (denyAll) Verify(ctx context.Context, token string) (auth.Claims, error) {
	return auth.Claims{}, auth.ErrInvalidToken
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q)=%q want %q", in, got, want)
		}
	}
}

func TestHealthReflectsChecks(t *testing.T) {
	hs := health.NewService()
	hs.Register("postgres", func(ctx context.Context) error {
		return errors.New("dial tcp 10.1.2.3:5432: password authentication failed")
	})
	r := NewRouter(RouterDeps{Config: config.Config{Env: "test"}, Sessions: denyAll{}, Health: hs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"postgres":"unavailable"`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "10.1.2.3") || strings.Contains(w.Body.String(), "password") {
		t.Fatalf("health leaked connection details: %s", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewRouter(RouterDeps{Config: config.Config{Env: "test"}, Sessions: denyAll{}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRateGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var seen []string
	r := gin.New()
	r.Use(func(c *gin.Context) {
		seen = append(seen, rateGroup(c))
		c.Next()
	})
	r.GET("/api/v1/tracking/:code", func(c *gin.Context) {})
	r.POST("/api/v1/auth/login", func(c *gin.Context) {})
	r.GET("/api/v1/jobs", func(c *gin.Context) {})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/tracking/GEN-2025-1234", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil),
		httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	want := []string{rateGroupLookup, rateGroupLogin, ""}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("group %d = %q, want %q", i, seen[i], want[i])
		}
	}
}
