package http_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ExponeContadores(t *testing.T) {
	app, _ := buildTestApp(t, appOptions{metrics: true})

	doRequest(t, app, http.MethodGet, "/admin/users", "", "")
	doRequest(t, app, http.MethodGet, "/admin/users", testAdminToken, "")

	resp := doRequest(t, app, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, `zamgas_edge_route_guard_total{outcome="redirect"} 1`)
	assert.Contains(t, body, `zamgas_edge_route_guard_total{outcome="pass"} 1`)
	assert.Contains(t, body, `zamgas_edge_identity_resolutions_total{outcome="backend"} 1`)
	assert.Contains(t, body, `zamgas_edge_access_decisions_total{granted="true",reason="admin_bypass"} 1`)
}

func TestHealth(t *testing.T) {
	app, _ := buildTestApp(t, appOptions{})

	resp := doRequest(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
