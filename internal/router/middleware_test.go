package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/market-next/internal/config"
	"github.com/market-next/internal/constants"
	"github.com/market-next/internal/security/csrf"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestCORSMiddlewareDebugDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{AllowCredentials: true}, false))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("debug default should allow local dev origin, got %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("credentials header should be set")
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req2.Header.Set("Origin", "http://localhost:5173")
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusNoContent {
		t.Fatalf("preflight want 204 got %d", w2.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestTransportGuardRedirectsInsecureProxyTraffic(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(TransportGuardMiddleware(true))
	r.GET("/api/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products?page=2", nil)
	req.Host = "shop.example.com"
	req.Header.Set(constants.ForwardedProtoHeader, "http")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMovedPermanently {
		t.Fatalf("status want 301 got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "https://shop.example.com/api/products?page=2" {
		t.Fatalf("redirect target wrong: %s", got)
	}

	// HTTPS 请求与预检请求不重定向
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req2.Header.Set(constants.ForwardedProtoHeader, "https")
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("https request want 200 got %d", w2.Code)
	}

	r.OPTIONS("/api/products", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req3.Header.Set(constants.ForwardedProtoHeader, "http")
	r.ServeHTTP(w3, req3)
	if w3.Code != http.StatusNoContent {
		t.Fatalf("preflight should pass the guard, got %d", w3.Code)
	}
}

func TestTransportGuardDisabledInDebug(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(TransportGuardMiddleware(false))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.ForwardedProtoHeader, "http")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("debug mode should not redirect, got %d", w.Code)
	}
}

func newCSRFTestRouter(t *testing.T) (*gin.Engine, *csrf.Manager) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	manager := csrf.NewManager("csrf-middleware-test-secret")
	r := gin.New()
	r.Use(CSRFMiddleware(manager, config.CSRFConfig{}, constants.SessionCookieDefault, false))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, manager
}

func TestCSRFMiddlewareIssuesCookieOnSafeMethod(t *testing.T) {
	r, manager := newCSRFTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	token := ""
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.CSRFCookieDefault {
			token = cookie.Value
		}
	}
	if token == "" {
		t.Fatalf("safe request should set the CSRF cookie")
	}
	if !manager.Verify(token, constants.CSRFAnonymousSubject) {
		t.Fatalf("issued token should verify for the anonymous subject")
	}
}

func TestCSRFMiddlewareRejectsUnsafeWithoutToken(t *testing.T) {
	r, _ := newCSRFTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing token want 400 got %d", w.Code)
	}
}

func TestCSRFMiddlewareAcceptsHeaderToken(t *testing.T) {
	r, manager := newCSRFTestRouter(t)

	token, err := manager.Issue(constants.CSRFAnonymousSubject)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	req.Header.Set(constants.CSRFHeaderDefault, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("valid token want 200 got %d", w.Code)
	}
}

func TestCSRFMiddlewareRejectsForeignSubjectToken(t *testing.T) {
	r, manager := newCSRFTestRouter(t)

	// 绑定到某个会话的令牌不能用于匿名请求
	token, err := manager.Issue("some-session-cookie-value")
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ping", nil)
	req.Header.Set(constants.CSRFHeaderDefault, token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("foreign-subject token want 400 got %d", w.Code)
	}
}
