// Package verification is a Hunter.io-equivalent email verification client:
// given a predicted email address, it returns a deliverability status and
// confidence score. Disabled entirely when no API key is configured.
package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meridianiq/emailpredict/internal/pkg/httpx"
	"github.com/meridianiq/emailpredict/internal/platform/apierr"
	"github.com/meridianiq/emailpredict/internal/predictengine/config"
)

// Result is one verification lookup's outcome.
type Result struct {
	Email         string
	Status        string
	Score         int
	IsDeliverable bool
	RawJSON       string
}

// Client wraps the Hunter.io-equivalent email-verifier endpoint with the
// module's standard bounded-retry schedule.
type Client struct {
	baseURL string
	apiKey  string
	retry   config.RetryConfig
	http    *http.Client
}

// New constructs a Client. baseURL defaults to the Hunter.io email-verifier
// endpoint when empty.
func New(cfg config.VerificationConfig) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.hunter.io/v2/email-verifier"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		retry:   cfg.Retry,
		http:    &http.Client{Timeout: cfg.Retry.Timeout.Duration},
	}
}

type hunterEnvelope struct {
	Errors json.RawMessage `json:"errors"`
	Data   *hunterData     `json:"data"`
	hunterData
}

type hunterData struct {
	Result    string `json:"result"`
	Status    string `json:"status"`
	Score     int    `json:"score"`
	SMTPCheck bool   `json:"smtp_check"`
}

// VerifyEmail queries deliverability for email. A nil result with nil error
// means the provider returned a recognisable "no answer" payload (an errors
// envelope) rather than a hard failure; callers should treat it the same as
// a transport error — skip and move on.
func (c *Client) VerifyEmail(ctx context.Context, email string) (*Result, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("api_key", c.apiKey)
	fullURL := c.baseURL + "?" + q.Encode()

	body, err := c.getWithRetry(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	var env hunterEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("verification: parsing hunter response: %w", err)
	}
	if len(env.Errors) > 0 {
		return nil, nil
	}

	data := env.hunterData
	if env.Data != nil {
		data = *env.Data
	}

	status := data.Result
	if status == "" {
		status = data.Status
	}
	deliverable := status == "deliverable" || status == "valid" || data.SMTPCheck

	return &Result{
		Email:         email,
		Status:        status,
		Score:         data.Score,
		IsDeliverable: deliverable,
		RawJSON:       string(body),
	}, nil
}

func (c *Client) getWithRetry(ctx context.Context, fullURL string) ([]byte, error) {
	maxAttempts := c.retry.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	backoff := c.retry.InitialBackoff.Duration
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	maxBackoff := c.retry.MaxBackoff.Duration
	if maxBackoff <= 0 {
		maxBackoff = 8 * time.Second
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(httpx.JitterSleep(backoff)):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "emailpredict/1.0")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if httpx.IsRetryableError(err) {
				continue
			}
			return nil, err
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}

		apiErr := apierr.New(resp.StatusCode, "", fmt.Errorf("verification: upstream status %d", resp.StatusCode))
		lastErr = apiErr
		if !httpx.IsRetryableHTTPStatus(resp.StatusCode) {
			return nil, apiErr
		}
		backoff = httpx.RetryAfterDuration(resp, backoff, maxBackoff)
	}

	return nil, lastErr
}
