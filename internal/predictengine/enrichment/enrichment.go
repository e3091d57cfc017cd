// Package enrichment is a RocketReach-equivalent contact enrichment client:
// given a name, firm, and predicted email, it returns whatever public
// profile data the provider can attach. Disabled entirely when no API key is
// configured.
package enrichment

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

// Result is one enrichment lookup's outcome.
type Result struct {
	Email       string
	Name        string
	JobTitle    string
	LinkedInURL string
	Location    string
	Phone       string
	RawJSON     string
}

// Client wraps the RocketReach-equivalent profile-lookup endpoint with the
// module's standard bounded-retry schedule.
type Client struct {
	baseURL string
	apiKey  string
	retry   config.RetryConfig
	http    *http.Client
}

// New constructs a Client. baseURL defaults to the RocketReach-equivalent
// lookup endpoint when empty.
func New(cfg config.EnrichmentConfig) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.rocketreach.co/v1/api/lookupProfile"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		retry:   cfg.Retry,
		http:    &http.Client{Timeout: cfg.Retry.Timeout.Duration},
	}
}

type lookupResponse struct {
	Name         string   `json:"name"`
	JobTitle     string   `json:"job_title"`
	LinkedIn     string   `json:"linkedin"`
	Location     string   `json:"location"`
	PhoneNumbers []string `json:"phone_numbers"`
}

// EnrichContact looks up a profile for fullName at firm, attaching
// predictedEmail to the result regardless of what the provider returns for
// it (the caller already owns that value; this only adds context around it).
func (c *Client) EnrichContact(ctx context.Context, fullName, firm, predictedEmail string) (*Result, error) {
	q := url.Values{}
	q.Set("name", fullName)
	q.Set("company", firm)
	q.Set("email", predictedEmail)
	fullURL := c.baseURL + "?" + q.Encode()

	body, err := c.getWithRetry(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("enrichment: parsing response: %w", err)
	}

	name := resp.Name
	if name == "" {
		name = fullName
	}
	phone := ""
	if len(resp.PhoneNumbers) > 0 {
		phone = resp.PhoneNumbers[0]
	}

	return &Result{
		Email:       predictedEmail,
		Name:        name,
		JobTitle:    resp.JobTitle,
		LinkedInURL: resp.LinkedIn,
		Location:    resp.Location,
		Phone:       phone,
		RawJSON:     string(body),
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
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

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

		apiErr := apierr.New(resp.StatusCode, "", fmt.Errorf("enrichment: upstream status %d", resp.StatusCode))
		lastErr = apiErr
		if !httpx.IsRetryableHTTPStatus(resp.StatusCode) {
			return nil, apiErr
		}
		backoff = httpx.RetryAfterDuration(resp, backoff, maxBackoff)
	}

	return nil, lastErr
}
