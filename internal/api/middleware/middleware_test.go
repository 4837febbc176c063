package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct{ valid string }

func (a fakeAuth) IsAuthenticated(_ context.Context, token string) bool {
	return token == a.valid
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuth(t *testing.T) {
	var gotToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken, _ = GetToken(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := Auth(fakeAuth{valid: "good"})(next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer good", http.StatusOK},
		{"case insensitive scheme", "bearer good", http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"revoked", "Bearer stale", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotToken = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "good", gotToken)
			}
		})
	}
}

type recordedHTTP struct {
	method, route string
	status        int
}

type fakeHTTPMetrics struct{ calls []recordedHTTP }

func (m *fakeHTTPMetrics) ObserveHTTP(method, route string, status int, _ time.Duration) {
	m.calls = append(m.calls, recordedHTTP{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/admin/reservations/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations/res_42", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, recordedHTTP{http.MethodGet, "/api/v1/admin/reservations/{id}", http.StatusNotFound}, m.calls[0])
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Limit(http.HandlerFunc(okHandler))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5678"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:9999"))

	// другой IP со своим лимитом
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1234"))
}

func TestRateLimiter_SweepsStaleVisitors(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(visitorTTL + time.Minute)
	rl.getLimiter("10.0.0.2")

	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS([]string{"https://happystay.ma"})(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/reservations", nil)
	req.Header.Set("Origin", "https://happystay.ma")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://happystay.ma", rec.Header().Get("Access-Control-Allow-Origin"))
}
