package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"genius-backend/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.InfoLevel)
	restore := telemetry.SetLogger(zap.New(core))
	defer restore()

	router := gin.New()
	router.Use(RequestID(), Logging(), AdminSession(stubVerifier{token: "good"}))
	router.PUT("/api/v1/admin/tracking/:id", func(c *gin.Context) {
		c.Set("trackingRecordId", "rec-1")
		c.Set("statusTransition", "Processing->Visa Approved")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/tracking/rec-1", nil)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("X-Request-Id", "req-42")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	entries := logs.FilterMessage("request.complete").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request.complete entry, got %d", len(entries))
	}
	payload := entries[0].ContextMap()

	required := []string{"request_id", "admin_id", "tracking_id", "duration_ms", "status", "status_transition", "route"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["request_id"] != "req-42" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["admin_id"] != "admin-1" {
		t.Fatalf("unexpected admin_id: %v", payload["admin_id"])
	}
	if payload["tracking_id"] != "rec-1" {
		t.Fatalf("unexpected tracking_id: %v", payload["tracking_id"])
	}
	if payload["status_transition"] != "Processing->Visa Approved" {
		t.Fatalf("unexpected status_transition: %v", payload["status_transition"])
	}
	if payload["route"] != "/api/v1/admin/tracking/:id" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
}
