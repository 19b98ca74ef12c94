package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sqlfinance-backend/internal/config"
	"sqlfinance-backend/internal/response"
	"sqlfinance-backend/internal/router"
	"sqlfinance-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	testutil.NewDB(t)
	return router.New(&config.Config{
		CORSOrigins:  "*",
		QueryTimeout: 5 * time.Second,
	})
}

func get(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	app := newApp(t)

	resp := get(t, app, "/api/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestSearchValidationEnvelope(t *testing.T) {
	app := newApp(t)

	resp := get(t, app, "/api/dashboard/search?q=a")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var env response.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)
}

func TestSearchOKEnvelope(t *testing.T) {
	app := newApp(t)

	resp := get(t, app, "/api/dashboard/search?q=zz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env response.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Success)
	assert.NotNil(t, env.Data)
}

func TestDashboardStatsShape(t *testing.T) {
	app := newApp(t)

	resp := get(t, app, "/api/dashboard/stats")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env response.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.Success)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var data map[string]any
	require.NoError(t, json.Unmarshal(raw, &data))

	for _, key := range []string{"general", "invoices", "transactions", "platforms", "topClients", "recentInvoices", "recentTransactions"} {
		assert.Contains(t, data, key)
	}
}

func TestDashboardChartsShape(t *testing.T) {
	app := newApp(t)

	resp := get(t, app, "/api/dashboard/charts")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var env response.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.Success)

	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var data map[string]any
	require.NoError(t, json.Unmarshal(raw, &data))

	for _, key := range []string{"invoicesByPeriod", "transactionsByStatus", "clientsByPlatform", "transactionsByMonth"} {
		assert.Contains(t, data, key)
	}
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	app := newApp(t)

	resp := get(t, app, "/api/no-existe")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var env response.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.False(t, env.Success)
}

func TestFixedRoutesWinOverParams(t *testing.T) {
	app := newApp(t)

	// stats/summary no debe caer en el handler de :invoiceNumber
	resp := get(t, app, "/api/invoices/stats/summary")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = get(t, app, "/api/transactions/stats/summary")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
