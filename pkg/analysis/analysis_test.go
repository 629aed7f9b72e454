package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanreport/scanreport/pkg/retry"
)

func newTestClient(baseURL string) *AnthropicClient {
	c := NewAnthropicClient("test-key")
	c.BaseURL = baseURL
	return c
}

func messagesHandler(t *testing.T, reportText string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("Anthropic-Version"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(messagesResponse{
			Content: []contentBlock{{Type: "text", Text: reportText}},
		})
	}
}

func TestAnalyze_ReturnsReportUnmodified(t *testing.T) {
	const report = "# EXECUTIVE SUMMARY\n\nWeak posture.\n"
	srv := httptest.NewServer(messagesHandler(t, report))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Analyze(context.Background(), "analyze this")
	require.NoError(t, err)
	assert.Equal(t, report, got)
}

func TestAnalyze_MissingKeyFailsBeforeNetwork(t *testing.T) {
	var called atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.APIKey = ""
	_, err := c.Analyze(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, called.Load(), "no network call should happen without a credential")
}

func TestAnalyze_ServiceErrorCarriesUpstreamDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(529) // overloaded_error
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), "prompt")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 529, se.StatusCode)
}

func TestAnalyze_AuthFailureSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(messagesResponse{
			Error: &apiError{Type: "authentication_error", Message: "invalid x-api-key"},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), "prompt")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Contains(t, se.Detail, "invalid x-api-key")
}

func TestAnalyze_TransportFailureWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(srv.URL).Analyze(context.Background(), "prompt")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Error(t, se.Unwrap())
}

func TestAnalyze_EmptyContentIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(messagesResponse{})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), "prompt")
	var se *ServiceError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Detail, "no text content")
}

func TestAnalyze_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(messagesResponse{
			Content: []contentBlock{{Type: "text", Text: "recovered"}},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.Retry = retry.Config{MaxAttempts: 3, InitDelay: time.Millisecond, MaxDelay: time.Millisecond, Strategy: retry.Constant}

	got, err := c.Analyze(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestAnalyze_NeverRetriesAuthFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.Retry = retry.Config{MaxAttempts: 3, InitDelay: time.Millisecond, MaxDelay: time.Millisecond, Strategy: retry.Constant}

	_, err := c.Analyze(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx failures are permanent")
}

func TestValidate(t *testing.T) {
	c := NewAnthropicClient("")
	assert.ErrorIs(t, c.Validate(context.Background()), ErrMissingAPIKey)

	c.APIKey = "k"
	assert.NoError(t, c.Validate(context.Background()))
}
