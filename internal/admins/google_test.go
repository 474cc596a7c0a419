package admins

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

func newFakeGoogle(t *testing.T, email string, verified bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":             "g-1",
			"email":          email,
			"verified_email": verified,
			"name":           "Office Admin",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGoogleRouter(g *GoogleSignIn) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func pointAt(g *GoogleSignIn, srv *httptest.Server) {
	g.oauthConfig.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	g.userInfoURL = srv.URL + "/userinfo"
}

func startState(t *testing.T, r http.Handler) string {
	t.Helper()
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil))
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302 from start, got %d", resp.Code)
	}
	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Fatalf("expected state in %s", loc)
	}
	return state
}

func TestGoogleSignInIssuesSessionForRegisteredAdmin(t *testing.T) {
	svc := newTestService(t)
	seedAdmin(t, svc)
	srv := newFakeGoogle(t, "admin@genius.example", true)

	g := NewGoogleSignIn(svc, "client", "secret", "http://localhost:8080/api/v1/auth/google/callback", "http://localhost:5173/admin/auth")
	pointAt(g, srv)
	r := newGoogleRouter(g)

	state := startState(t, r)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state="+state+"&code=abc", nil))
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", resp.Code, resp.Body.String())
	}
	loc, err := url.Parse(resp.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	token := loc.Query().Get("token")
	if token == "" {
		t.Fatalf("expected token in redirect %s", loc)
	}
	if _, err := svc.Verify(context.Background(), token); err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}

	// States are single use.
	replay := httptest.NewRecorder()
	r.ServeHTTP(replay, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state="+state+"&code=abc", nil))
	if replay.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on replayed state, got %d", replay.Code)
	}
}

func TestGoogleSignInRejectsStrangers(t *testing.T) {
	svc := newTestService(t)
	seedAdmin(t, svc)
	srv := newFakeGoogle(t, "stranger@gmail.example", true)

	g := NewGoogleSignIn(svc, "client", "secret", "http://localhost:8080/cb", "http://localhost:5173/admin/auth")
	pointAt(g, srv)
	r := newGoogleRouter(g)

	state := startState(t, r)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state="+state+"&code=abc", nil))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestGoogleSignInNotConfigured(t *testing.T) {
	g := NewGoogleSignIn(newTestService(t), "", "", "", "")
	r := newGoogleRouter(g)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}
