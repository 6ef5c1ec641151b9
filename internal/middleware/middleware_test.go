package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeVerifier map[string]string

func (f fakeVerifier) Verify(raw string) (string, error) {
	if id, ok := f[raw]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": []string{token}}
}

// ──────────────────────────────────────────────
// AUTH
// ──────────────────────────────────────────────

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.GET("/me", Authenticate(fakeVerifier{"good": "u1"}), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})

	tests := []struct {
		name   string
		header http.Header
		status int
		body   string
	}{
		{"no header", nil, http.StatusUnauthorized, "authentication required"},
		{"wrong scheme", bearer("Basic good"), http.StatusUnauthorized, "authentication required"},
		{"bad token", bearer("Bearer nope"), http.StatusUnauthorized, "invalid or expired token"},
		{"valid", bearer("Bearer good"), http.StatusOK, "u1"},
		{"lower-case scheme", bearer("bearer good"), http.StatusOK, "u1"},
	}

	for _, tt := range tests {
		rec := serve(r, http.MethodGet, "/me", tt.header)
		if rec.Code != tt.status {
			t.Errorf("%s: status %d, want %d", tt.name, rec.Code, tt.status)
		}
		if !strings.Contains(rec.Body.String(), tt.body) {
			t.Errorf("%s: body %q does not contain %q", tt.name, rec.Body.String(), tt.body)
		}
	}
}

func TestOptionalAuth(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.GET("/trips", OptionalAuth(fakeVerifier{"good": "u1"}), func(c *gin.Context) {
		c.String(http.StatusOK, "viewer="+UserID(c))
	})

	tests := []struct {
		header http.Header
		want   string
	}{
		{nil, "viewer="},
		{bearer("Bearer nope"), "viewer="},
		{bearer("Bearer good"), "viewer=u1"},
	}

	for _, tt := range tests {
		rec := serve(r, http.MethodGet, "/trips", tt.header)
		if rec.Code != http.StatusOK || rec.Body.String() != tt.want {
			t.Errorf("header %v: got %d %q, want 200 %q", tt.header, rec.Code, rec.Body.String(), tt.want)
		}
	}
}

// ──────────────────────────────────────────────
// RATE LIMIT
// ──────────────────────────────────────────────

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0.001, 3)
	r := gin.New()
	r.Use(rl.Middleware())
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		if rec := serve(r, http.MethodPost, "/login", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if rec := serve(r, http.MethodPost, "/login", nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", rec.Code)
	}
}

func TestRateLimiter_PrunesIdleVisitors(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(visitorIdle + time.Second)
	rl.getLimiter("10.0.0.2")

	if _, ok := rl.visitors["10.0.0.1"]; ok {
		t.Error("idle visitor should have been pruned")
	}
	if len(rl.visitors) != 1 {
		t.Errorf("expected 1 visitor, got %d", len(rl.visitors))
	}
}

func TestRateLimiter_SweepsAtMostOncePerWindow(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := start
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	if !rl.lastSweep.Equal(start) {
		t.Fatalf("expected first request to sweep, last sweep %v", rl.lastSweep)
	}

	// Requests inside the window leave the map alone.
	now = start.Add(visitorIdle / 2)
	rl.getLimiter("10.0.0.2")
	if !rl.lastSweep.Equal(start) {
		t.Errorf("expected no sweep inside the window, last sweep %v", rl.lastSweep)
	}

	// The next sweep drops only buckets idle longer than visitorIdle.
	now = start.Add(visitorIdle + time.Second)
	rl.getLimiter("10.0.0.3")
	if !rl.lastSweep.Equal(now) {
		t.Errorf("expected a sweep after the window, last sweep %v", rl.lastSweep)
	}
	if _, ok := rl.visitors["10.0.0.1"]; ok {
		t.Error("idle visitor should have been pruned")
	}
	if _, ok := rl.visitors["10.0.0.2"]; !ok {
		t.Error("recent visitor should have been kept")
	}
	if len(rl.visitors) != 2 {
		t.Errorf("expected 2 visitors, got %d", len(rl.visitors))
	}
}

// ──────────────────────────────────────────────
// IDEMPOTENCY
// ──────────────────────────────────────────────

func idempotentRouter(client *redis.Client, calls *atomic.Int32, status int) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-User"); id != "" {
			c.Set(userIDKey, id)
		}
		c.Next()
	})
	r.POST("/trips/:id/share", IdempotencyMiddleware(client), func(c *gin.Context) {
		n := calls.Add(1)
		c.JSON(status, gin.H{"shareCount": n})
	})
	return r
}

func TestIdempotency_ReplaysSameKey(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	var calls atomic.Int32
	r := idempotentRouter(client, &calls, http.StatusOK)
	h := http.Header{"Idempotency-Key": []string{"k1"}, "X-User": []string{"u1"}}

	first := serve(r, http.MethodPost, "/trips/eu1/share", h)
	second := serve(r, http.MethodPost, "/trips/eu1/share", h)

	if calls.Load() != 1 {
		t.Errorf("expected handler to run once, ran %d times", calls.Load())
	}
	if first.Body.String() != second.Body.String() || second.Code != http.StatusOK {
		t.Errorf("replay mismatch: %d %q vs %d %q", first.Code, first.Body.String(), second.Code, second.Body.String())
	}
	if first.Header().Get(replayedHeader) != "" || second.Header().Get(replayedHeader) != "true" {
		t.Errorf("expected only the retry to be marked as replayed")
	}
	if ct := second.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("expected replayed content type to be kept, got %q", ct)
	}

	// Another user with the same key gets its own response.
	other := http.Header{"Idempotency-Key": []string{"k1"}, "X-User": []string{"u2"}}
	serve(r, http.MethodPost, "/trips/eu1/share", other)
	if calls.Load() != 2 {
		t.Errorf("expected key to be user scoped, handler ran %d times", calls.Load())
	}

	// No key, no replay.
	serve(r, http.MethodPost, "/trips/eu1/share", nil)
	if calls.Load() != 3 {
		t.Errorf("expected request without key to run, handler ran %d times", calls.Load())
	}
}

func TestIdempotency_FailuresAreNotReplayed(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	var calls atomic.Int32
	r := idempotentRouter(client, &calls, http.StatusBadRequest)
	h := http.Header{"Idempotency-Key": []string{"k1"}}

	serve(r, http.MethodPost, "/trips/eu1/share", h)
	serve(r, http.MethodPost, "/trips/eu1/share", h)

	if calls.Load() != 2 {
		t.Errorf("expected failed responses to run again, handler ran %d times", calls.Load())
	}
}

func TestIdempotency_RejectsOverlongKey(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	var calls atomic.Int32
	r := idempotentRouter(client, &calls, http.StatusOK)
	h := http.Header{"Idempotency-Key": []string{strings.Repeat("k", maxIdempotencyKey+1)}}

	if rec := serve(r, http.MethodPost, "/trips/eu1/share", h); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if calls.Load() != 0 {
		t.Errorf("handler should not run, ran %d times", calls.Load())
	}
}

func TestIdempotency_NilClientPassesThrough(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	r := idempotentRouter(nil, &calls, http.StatusOK)
	h := http.Header{"Idempotency-Key": []string{"k1"}}

	serve(r, http.MethodPost, "/trips/eu1/share", h)
	serve(r, http.MethodPost, "/trips/eu1/share", h)

	if calls.Load() != 2 {
		t.Errorf("expected handler to run twice without redis, ran %d times", calls.Load())
	}
}
