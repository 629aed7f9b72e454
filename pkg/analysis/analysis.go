// Package analysis sends composed scan results to an external AI
// service and returns the generated assessment report.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/scanreport/scanreport/pkg/defaults"
	"github.com/scanreport/scanreport/pkg/retry"
)

// ErrMissingAPIKey indicates no service credential was supplied. This is
// checked before any network call is attempted.
var ErrMissingAPIKey = errors.New("analysis: missing API key")

// ServiceError carries the upstream failure detail from a transport,
// authentication, or service-side error. The pipeline driver decides
// whether it is fatal.
type ServiceError struct {
	StatusCode int    // HTTP status, 0 for transport failures
	Detail     string // upstream error message, if any
	Err        error  // wrapped transport error, if any
}

func (e *ServiceError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("analysis: service call failed: %v", e.Err)
	case e.Detail != "":
		return fmt.Sprintf("analysis: service returned %d: %s", e.StatusCode, e.Detail)
	default:
		return fmt.Sprintf("analysis: service returned %d", e.StatusCode)
	}
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Client interfaces with an analysis service.
type Client interface {
	// Analyze submits one composed prompt and returns the service's
	// textual report unmodified.
	Analyze(ctx context.Context, prompt string) (string, error)

	// Validate checks if credentials are present.
	Validate(ctx context.Context) error
}

// AnthropicClient implements Client against the Anthropic messages API.
type AnthropicClient struct {
	APIKey     string
	Model      string
	MaxTokens  int
	BaseURL    string
	Retry      retry.Config // MaxAttempts <= 1 disables retries
	httpClient *http.Client
}

// NewAnthropicClient creates a client with the default model and
// timeout. ANTHROPIC_BASE_URL overrides the endpoint for proxies and
// tests.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	baseURL := "https://api.anthropic.com"
	if v := os.Getenv("ANTHROPIC_BASE_URL"); v != "" {
		baseURL = v
	}
	return &AnthropicClient{
		APIKey:    apiKey,
		Model:     defaults.AnalysisModel,
		MaxTokens: defaults.AnalysisMaxTokens,
		BaseURL:   baseURL,
		Retry:     retry.Config{MaxAttempts: 1},
		httpClient: &http.Client{
			Timeout: defaults.AnalysisTimeout,
		},
	}
}

// SetTimeout overrides the HTTP exchange timeout.
func (c *AnthropicClient) SetTimeout(d time.Duration) {
	c.httpClient = &http.Client{Timeout: d}
}

func (c *AnthropicClient) Validate(ctx context.Context) error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// messagesRequest is the Anthropic messages API request body.
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse holds the subset of the API response we consume.
type messagesResponse struct {
	Content []contentBlock `json:"content"`
	Error   *apiError      `json:"error,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Analyze submits the prompt in a single exchange. A non-2xx status,
// transport failure, or empty response surfaces as *ServiceError.
// Retries only happen when c.Retry allows more than one attempt, and
// never on 4xx statuses (those are permanent).
func (c *AnthropicClient) Analyze(ctx context.Context, prompt string) (string, error) {
	if err := c.Validate(ctx); err != nil {
		return "", err
	}

	var report string
	cfg := c.Retry
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	err := retry.Do(ctx, cfg, func() error {
		r, err := c.exchange(ctx, prompt)
		if err != nil {
			var se *ServiceError
			if errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500 && se.StatusCode != http.StatusTooManyRequests {
				return retry.Stop(err)
			}
			return err
		}
		report = r
		return nil
	})
	if err != nil {
		return "", err
	}
	return report, nil
}

func (c *AnthropicClient) exchange(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &ServiceError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", &ServiceError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.APIKey)
	req.Header.Set("Anthropic-Version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ServiceError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return "", &ServiceError{StatusCode: resp.StatusCode, Err: err}
	}

	var parsed messagesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &ServiceError{StatusCode: resp.StatusCode, Detail: string(truncate(data, 200))}
		}
		return "", &ServiceError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		detail := ""
		if parsed.Error != nil {
			detail = parsed.Error.Message
		}
		return "", &ServiceError{StatusCode: resp.StatusCode, Detail: detail}
	}

	for _, block := range parsed.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", &ServiceError{StatusCode: resp.StatusCode, Detail: "response contained no text content"}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
