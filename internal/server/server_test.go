package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthy() HealthChecker {
	return pingFunc(func(context.Context) error { return nil })
}

func TestServer_Health(t *testing.T) {
	s := New(Options{
		Addr: ":0",
		HealthChecks: map[string]HealthChecker{
			"postgres": healthy(),
			"mongodb":  healthy(),
		},
	})

	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, map[string]string{"postgres": "connected", "mongodb": "connected"}, body.Components)
}

func TestServer_HealthUnreachable(t *testing.T) {
	s := New(Options{
		HealthChecks: map[string]HealthChecker{
			"postgres": healthy(),
			"redis":    pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }),
		},
	})

	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), "redis unreachable")
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	s := New(Options{Gatherer: reg})

	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "test_total 1")
}

func TestServer_NoMetricsWithoutGatherer(t *testing.T) {
	s := New(Options{})

	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestServer_BodyLimit(t *testing.T) {
	s := New(Options{MaxBodySizeMB: 1})
	s.Engine.POST("/form", func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, c.Request.FormValue("aggregate"))
	})

	small := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader("aggregate=w"))
	small.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, small)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "w", resp.Body.String())

	large := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader("aggregate="+strings.Repeat("w", 2*1024*1024)))
	large.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp = httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, large)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}
