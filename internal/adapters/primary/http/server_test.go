package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/admin/astro/kundali-engine/internal/adapters/primary/http/middlewares"
	"github.com/admin/astro/kundali-engine/internal/ports/metrics"
)

type pingController struct{}

func (pingController) RegisterRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func TestNewRouter(t *testing.T) {
	cfg := &Config{EnableLoggingMiddleware: true, RateLimit: 1, RateBurst: 1}
	r := NewRouter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), metrics.Noop{}, pingController{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get(middlewares.RequestIDHeader) == "" {
		t.Error("expected request id header")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", w.Code)
	}
}

func TestNewHTTPServerAddr(t *testing.T) {
	srv := NewHTTPServer(&Config{Host: "127.0.0.1", Port: "9090"}, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	if srv.Addr != "127.0.0.1:9090" {
		t.Errorf("addr = %q", srv.Addr)
	}
}
