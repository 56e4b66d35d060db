package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"virtual-pet/internal/platform/logger"
	"virtual-pet/internal/ports/auth"

	"github.com/stretchr/testify/assert"
)

type verifierFunc func(ctx context.Context, token string) (auth.Claims, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (auth.Claims, error) {
	return f(ctx, token)
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	c, _ := GetClaims(r.Context())
	_, _ = w.Write([]byte(c.UserID))
}

func TestRequireAuth(t *testing.T) {
	verifier := verifierFunc(func(_ context.Context, token string) (auth.Claims, error) {
		switch token {
		case "good":
			return auth.Claims{UserID: "u1"}, nil
		case "ghost":
			return auth.Claims{}, auth.ErrUnknownSubject
		default:
			return auth.Claims{}, auth.ErrInvalidToken
		}
	})
	h := AuthContext(verifier)(RequireAuth(http.HandlerFunc(okHandler)))

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"no header", "", http.StatusUnauthorized, `{"error":"Access token required"}`},
		{"not bearer", "Basic abc", http.StatusUnauthorized, `{"error":"Access token required"}`},
		{"invalid", "Bearer nope", http.StatusForbidden, `{"error":"Invalid or expired token"}`},
		{"unknown subject", "Bearer ghost", http.StatusUnauthorized, `{"error":"Invalid token"}`},
		{"ok", "bearer good", http.StatusOK, "u1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/pet", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, tc.body, rec.Body.String())
			} else {
				assert.JSONEq(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestRecover_WritesJSON500(t *testing.T) {
	h := Recover(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1, logger.Nop())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1111"))
	// mismo IP, otro puerto: comparte limiter
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:2222"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2:1111"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1111"))
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1, logger.Nop())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("a")
	rl.allow("b")
	assert.Len(t, rl.limiters, 2)

	now = now.Add(idleTTL + time.Minute)
	rl.allow("c")
	assert.Len(t, rl.limiters, 1)
}
