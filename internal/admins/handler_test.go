package admins

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"genius-backend/internal/shared/server/middleware"
)

func newAdminRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	h.RegisterPublicRoutes(r.Group("/api/v1"))
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AdminSession(svc))
	h.RegisterRoutes(admin)
	return r
}

func login(t *testing.T, r http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func withBearer(method, path, token string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestLoginMeLogout(t *testing.T) {
	svc := newTestService(t)
	seedAdmin(t, svc)
	r := newAdminRouter(svc)

	resp := login(t, r, "admin@genius.example", "s3cret-pass")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var sess Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if sess.Token == "" {
		t.Fatalf("expected token")
	}
	if bytes.Contains(resp.Body.Bytes(), []byte("$2a$")) {
		t.Fatalf("password hash leaked in login response")
	}

	me := httptest.NewRecorder()
	r.ServeHTTP(me, withBearer(http.MethodGet, "/api/v1/admin/me", sess.Token))
	if me.Code != http.StatusOK {
		t.Fatalf("expected 200 on me, got %d", me.Code)
	}

	out := httptest.NewRecorder()
	r.ServeHTTP(out, withBearer(http.MethodPost, "/api/v1/admin/logout", sess.Token))
	if out.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on logout, got %d", out.Code)
	}

	after := httptest.NewRecorder()
	r.ServeHTTP(after, withBearer(http.MethodGet, "/api/v1/admin/me", sess.Token))
	if after.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", after.Code)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	seedAdmin(t, svc)
	r := newAdminRouter(svc)

	resp := login(t, r, "admin@genius.example", "nope-nope")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	malformed := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{"))
	malformed.Header.Set("Content-Type", "application/json")
	mresp := httptest.NewRecorder()
	r.ServeHTTP(mresp, malformed)
	if mresp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", mresp.Code)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	r := newAdminRouter(newTestService(t))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/admin/me", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestSessionCheckDuringRevocationOutageIs503(t *testing.T) {
	svc := newTestService(t)
	seedAdmin(t, svc)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	svc.Revoked = NewRedisRevocations(client)
	r := newAdminRouter(svc)

	resp := login(t, r, "admin@genius.example", "s3cret-pass")
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", resp.Code)
	}
	var sess Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		t.Fatalf("decode session: %v", err)
	}

	mr.Close()
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, withBearer(http.MethodGet, "/api/v1/admin/me", sess.Token))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", resp.Code, resp.Body.String())
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("store_unavailable")) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}
