package verification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridianiq/emailpredict/internal/predictengine/config"
)

func newTestConfig(baseURL string) config.VerificationConfig {
	return config.VerificationConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Retry: config.RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: config.Duration{Duration: time.Millisecond},
			MaxBackoff:     config.Duration{Duration: 5 * time.Millisecond},
			Timeout:        config.Duration{Duration: time.Second},
		},
	}
}

func TestVerifyEmail_TopLevelFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"deliverable","score":95,"smtp_check":true}`))
	}))
	defer srv.Close()

	c := New(newTestConfig(srv.URL))
	res, err := c.VerifyEmail(context.Background(), "alice@acme.com")
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, "deliverable", res.Status)
	require.Equal(t, 95, res.Score)
	require.True(t, res.IsDeliverable)
}

func TestVerifyEmail_DataWrappedFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"status":"valid","score":80}}`))
	}))
	defer srv.Close()

	c := New(newTestConfig(srv.URL))
	res, err := c.VerifyEmail(context.Background(), "bob@acme.com")
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, "valid", res.Status)
	require.True(t, res.IsDeliverable)
}

func TestVerifyEmail_ErrorsPayloadIsNilResultNoError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"id":"invalid_email"}]}`))
	}))
	defer srv.Close()

	c := New(newTestConfig(srv.URL))
	res, err := c.VerifyEmail(context.Background(), "not-an-email")
	require.NoError(t, err)
	require.Nil(t, res)
}

func TestVerifyEmail_RetriesOn5xxThenSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"valid","score":50}`))
	}))
	defer srv.Close()

	c := New(newTestConfig(srv.URL))
	res, err := c.VerifyEmail(context.Background(), "carol@acme.com")
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Equal(t, 3, attempts)
}

func TestVerifyEmail_NonRetryableStatusFailsImmediately(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(newTestConfig(srv.URL))
	_, err := c.VerifyEmail(context.Background(), "dave@acme.com")
	require.Error(t, err)
	require.Equal(t, 1, attempts)
}
