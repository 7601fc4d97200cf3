package callgw_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-bed-caller/internal/callgw"
	"github.com/central-university-dev/go-bed-caller/internal/config"
	domainerrors "github.com/central-university-dev/go-bed-caller/internal/domain/errors"
	"github.com/central-university-dev/go-bed-caller/pkg"
)

func gatewayConfig(url string) *config.Config {
	return &config.Config{
		CallGatewayURL:         url,
		ExternalRequestTimeout: 2 * time.Second,
		RetryCount:             0,
		RetryBackoff:           10 * time.Millisecond,

		CBSlidingWindowSize:        10,
		CBMinimumRequiredCalls:     100,
		CBFailureRateThreshold:     50,
		CBPermittedCallsInHalfOpen: 1,
		CBWaitDurationInOpenState:  time.Second,
	}
}

func TestClient_PlaceCall(t *testing.T) {
	var gotPath string

	var gotBody map[string]int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := callgw.NewClient(gatewayConfig(server.URL), pkg.NewDiscardLogger())

	err := client.PlaceCall(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, "/calls", gotPath)
	assert.Equal(t, map[string]int64{"user_id": 100}, gotBody)
}

func TestClient_DiscardCall(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := callgw.NewClient(gatewayConfig(server.URL), pkg.NewDiscardLogger())

	err := client.DiscardCall(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "/calls/7/discard", gotPath)
}

func TestClient_PlaceCall_ClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := callgw.NewClient(gatewayConfig(server.URL), pkg.NewDiscardLogger())

	err := client.PlaceCall(context.Background(), 100)

	var httpErr *domainerrors.HTTPError

	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestClient_PlaceCall_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := callgw.NewClient(gatewayConfig(server.URL), pkg.NewDiscardLogger())

	err := client.PlaceCall(context.Background(), 100)

	var httpErr *domainerrors.HTTPError

	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := gatewayConfig(server.URL)
	cfg.CBMinimumRequiredCalls = 2

	client := callgw.NewClient(cfg, pkg.NewDiscardLogger())

	ctx := context.Background()

	require.Error(t, client.PlaceCall(ctx, 100))
	require.Error(t, client.PlaceCall(ctx, 100))

	err := client.PlaceCall(ctx, 100)

	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
}
