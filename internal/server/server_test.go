package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-ledger/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerPort:    "0",
		ServiceName:   "account-ledger-test",
		LogLevel:      "info",
		Notifier:      config.NotifierNoop,
		NotifyTimeout: time.Second,
	}
}

func TestNewServer_AccountAndTransferRoutes(t *testing.T) {
	srv, err := NewServer(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	create := func(body string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/accounts", bytes.NewBufferString(body))
		srv.GetRouter().ServeHTTP(rec, req)
		return rec.Code
	}
	require.Equal(t, http.StatusCreated, create(`{"account_id":"a","balance":10}`))
	require.Equal(t, http.StatusCreated, create(`{"account_id":"b","balance":0}`))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/accounts/transfer",
		bytes.NewBufferString(`{"source_account_id":"a","destination_account_id":"b","amount":"4"}`))
	srv.GetRouter().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/accounts/b", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance":"4"`)
}

func TestNewServer_HealthAndMetrics(t *testing.T) {
	srv, err := NewServer(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = httptest.NewRecorder()
	srv.GetRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ledger_http_requests_total")
}

func TestNewServer_UnknownNotifier(t *testing.T) {
	cfg := testConfig()
	cfg.Notifier = "carrier-pigeon"

	_, err := NewServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestStartServer_ListensOnEphemeralPort(t *testing.T) {
	srv, port, err := StartServer(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Stop(ctx)
	})

	assert.NotEqual(t, "0", port)
	assert.Equal(t, "http://localhost:"+port, srv.GetBaseURL())

	resp, err := http.Get(srv.GetBaseURL() + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
