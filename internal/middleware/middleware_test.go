package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(middlewares ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares...)
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

type observer struct {
	mu     sync.Mutex
	routes []string
}

func (o *observer) RateLimited(route string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.routes = append(o.routes, route)
}

func TestRateLimiterPerClient(t *testing.T) {
	obs := &observer{}
	r := newRouter(NewRateLimiter(0.001, 2, obs).Handler())

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2"))

	assert.Equal(t, []string{"/items/:id"}, obs.routes)
}

func TestRateLimiterIgnoresUntrustedForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(NewRateLimiter(0.001, 2, nil).Handler())
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	limited := 0
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Equal(t, 8, limited)
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, nil)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(5 * time.Minute)
	rl.getLimiter("10.0.0.2")
	require.Equal(t, 2, rl.Len())

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, rl.Cleanup(10*time.Minute))
	assert.Equal(t, 1, rl.Len())

	// A fresh bucket is handed out after eviction.
	assert.True(t, rl.getLimiter("10.0.0.1").Allow())
}

func TestRateLimiterStartCleanupStops(t *testing.T) {
	rl := NewRateLimiter(1, 1, nil)
	rl.getLimiter("10.0.0.1")

	ctx, cancel := context.WithCancel(context.Background())
	rl.StartCleanup(ctx, time.Millisecond, 0)
	assert.Eventually(t, func() bool { return rl.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
}

type recorder struct {
	started  int
	finished []string
}

func (r *recorder) RequestStarted() { r.started++ }

func (r *recorder) RequestFinished(method, route, status string, _ float64) {
	r.finished = append(r.finished, method+" "+route+" "+status)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	rec := &recorder{}
	r := newRouter(Metrics(rec))

	for _, path := range []string{"/items/1", "/items/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 3, rec.started)
	assert.Equal(t, []string{
		"GET /items/:id 204",
		"GET /items/:id 204",
		"GET unmatched 404",
	}, rec.finished)
}

func TestMetricsRecordsPanics(t *testing.T) {
	rec := &recorder{}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, _ any) {
		c.AbortWithStatus(http.StatusInternalServerError)
	}), Metrics(rec))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, rec.started)
	assert.Equal(t, []string{"GET /boom 500"}, rec.finished)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := newRouter(RequestLogger())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/1", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
