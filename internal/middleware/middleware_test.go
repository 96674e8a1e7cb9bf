package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatalf("first two requests should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Errorf("third request should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Errorf("other clients should not be limited")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	r := gin.New()
	r.Use(RateLimit(rl))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 429]", codes)
	}
}

func newAuthRouter(secret string) *gin.Engine {
	r := gin.New()
	r.Use(AdminAuth(secret))
	r.GET("/admin", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SubjectKey))
	})
	return r
}

func TestAdminAuth(t *testing.T) {
	const secret = "test-secret"
	valid, err := IssueAdminToken(secret, "ops", time.Hour)
	if err != nil {
		t.Fatalf("IssueAdminToken failed: %v", err)
	}
	expired, err := IssueAdminToken(secret, "ops", -time.Hour)
	if err != nil {
		t.Fatalf("IssueAdminToken failed: %v", err)
	}
	foreign, err := IssueAdminToken("other-secret", "ops", time.Hour)
	if err != nil {
		t.Fatalf("IssueAdminToken failed: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"garbage", "Bearer not.a.token", http.StatusUnauthorized},
	}

	r := newAuthRouter(secret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusOK && w.Body.String() != "ops" {
				t.Errorf("subject = %q, want ops", w.Body.String())
			}
		})
	}
}

func TestAdminAuthDisabledWithoutSecret(t *testing.T) {
	w := httptest.NewRecorder()
	newAuthRouter("").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when auth is disabled", w.Code)
	}
}
