package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAction_CountsByOutcome(t *testing.T) {
	m := New()

	m.RecordAction("eat", "ok")
	m.RecordAction("eat", "ok")
	m.RecordAction("eat", "InsufficientFood")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.petActions.WithLabelValues("eat", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.petActions.WithLabelValues("eat", "InsufficientFood")))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/pet", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/metrics", m.Handler().ServeHTTP)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pet", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/pet", "418")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "virtual_pet_http_requests_total"))
}
