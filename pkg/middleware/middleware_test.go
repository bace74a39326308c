package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestLocalLimiterIsPerClient(t *testing.T) {
	ctx := context.Background()
	limiter := NewLocalLimiter(1, 1)

	allowed, _, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, retry, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, time.Second, retry)

	allowed, _, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLocalLimiterEvictsIdleClients(t *testing.T) {
	ctx := context.Background()
	limiter := NewLocalLimiter(1, 1)
	now := time.Now()
	limiter.now = func() time.Time { return now }

	for _, key := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		allowed, _, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	assert.Len(t, limiter.clients, 3)

	now = now.Add(30 * time.Second)
	_, _, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Len(t, limiter.clients, 3)

	now = now.Add(45 * time.Second)
	allowed, _, err := limiter.Allow(ctx, "10.0.0.4")
	require.NoError(t, err)
	assert.True(t, allowed)

	assert.Len(t, limiter.clients, 2)
	assert.Contains(t, limiter.clients, "10.0.0.1")
	assert.Contains(t, limiter.clients, "10.0.0.4")
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return false, 0, errors.New("redis: connection refused")
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(NewLocalLimiter(0.5, 1), zap.NewNop())(ok)

	req := httptest.NewRequest(http.MethodGet, "/movies/all", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))

	// a broken limiter does not take the API down
	rec = httptest.NewRecorder()
	RateLimit(failingLimiter{}, zap.NewNop())(ok).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecover(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	Recover(zap.NewNop())(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestCORSPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	CORS()(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/bookings", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggerRecordsStatus(t *testing.T) {
	teapot := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	rec := httptest.NewRecorder()
	Logger(zap.NewNop())(teapot).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}
