package status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	router := NewRouter(Info{}, func(ctx context.Context) (int, error) { return 3, nil })

	rec := get(t, router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, float64(3), body["sessions"])
}

func TestRouter_HealthFailure(t *testing.T) {
	router := NewRouter(Info{}, func(ctx context.Context) (int, error) { return 0, errors.New("store down") })

	rec := get(t, router, "/health")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_Version(t *testing.T) {
	started := time.Date(2025, 11, 1, 8, 0, 0, 0, time.UTC)
	router := NewRouter(Info{Version: "1.2.3", Provider: "stub", Started: started}, nil)

	rec := get(t, router, "/version")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"version":"1.2.3","analyzer":"stub","started":"2025-11-01T08:00:00Z"}`, rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	router := NewRouter(Info{}, nil)

	rec := get(t, router, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}
