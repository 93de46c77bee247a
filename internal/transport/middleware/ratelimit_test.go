package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(perMinute, burst int) (*RateLimiter, *time.Time) {
	rl := NewRateLimiter(perMinute, burst, 0)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func hit(h http.Handler, addr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/lookup?q=x", nil)
	req.RemoteAddr = addr
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl, _ := newTestLimiter(60, 10)
	defer rl.Stop()
	h := rl.Middleware()(okHandler())

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "1.2.3.4:1234").Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverBurst(t *testing.T) {
	rl, _ := newTestLimiter(60, 5)
	defer rl.Stop()
	h := rl.Middleware()(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "1.2.3.4:1234").Code)
	}

	rec := hit(h, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimiter_SameHostDifferentPorts(t *testing.T) {
	rl, _ := newTestLimiter(60, 1)
	defer rl.Stop()
	h := rl.Middleware()(okHandler())

	assert.Equal(t, http.StatusOK, hit(h, "5.5.5.5:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "5.5.5.5:2000").Code)
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl, _ := newTestLimiter(60, 2)
	defer rl.Stop()
	h := rl.Middleware()(okHandler())

	hit(h, "1.1.1.1:1234")
	hit(h, "1.1.1.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "1.1.1.1:1234").Code)
	assert.Equal(t, http.StatusOK, hit(h, "2.2.2.2:5678").Code)
}

func TestRateLimiter_Refill(t *testing.T) {
	rl, now := newTestLimiter(60, 1)
	defer rl.Stop()
	h := rl.Middleware()(okHandler())

	assert.Equal(t, http.StatusOK, hit(h, "3.3.3.3:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "3.3.3.3:1234").Code)

	*now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, hit(h, "3.3.3.3:1234").Code)
}

func TestRateLimiter_SweepDropsIdleClients(t *testing.T) {
	rl, now := newTestLimiter(60, 1)
	defer rl.Stop()
	h := rl.Middleware()(okHandler())

	hit(h, "4.4.4.4:1")
	*now = now.Add(idleTTL / 2)
	hit(h, "6.6.6.6:1")

	rl.sweep(now.Add(idleTTL/2 + time.Second))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "4.4.4.4")
	assert.Contains(t, rl.clients, "6.6.6.6")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(60, 1, time.Millisecond)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
