package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	predicterrors "github.com/meridianiq/emailpredict/internal/pkg/errors"
	"github.com/meridianiq/emailpredict/internal/platform/envutil"
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		d.Duration = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		if strings.TrimSpace(u) == "" {
			d.Duration = 0
			return nil
		}
		dd, err := time.ParseDuration(u)
		if err != nil {
			return err
		}
		d.Duration = dd
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("duration must be a JSON string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = time.Duration(n)
	return nil
}

func defaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts:    5,
		InitialBackoff: Duration{Duration: 500 * time.Millisecond},
		MaxBackoff:     Duration{Duration: 8 * time.Second},
		Timeout:        Duration{Duration: 10 * time.Second},
	}
}

func defaultConfig() *Config {
	return &Config{
		Env:         "development",
		TopKDefault: 3,
	}
}

// Load reads engine configuration from the JSON file at
// EMAILPREDICT_CONFIG_PATH (or ./config/config.json if unset), applies
// environment overrides, and validates required fields. Missing required
// metadata or predictor paths return a wrapped ErrConfiguration.
func Load() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("EMAILPREDICT_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.json")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}

	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("%w: reading config file: %v", predicterrors.ErrConfiguration, err)
		}
		var loaded Config
		if err := json.Unmarshal(b, &loaded); err != nil {
			return nil, fmt.Errorf("%w: parsing config file: %v", predicterrors.ErrConfiguration, err)
		}
		*cfg = loaded
	}

	if v := strings.TrimSpace(os.Getenv("LOG_MODE")); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("EMAILPREDICT_HUNTER_API_KEY")); v != "" {
		if cfg.Verification == nil {
			cfg.Verification = &VerificationConfig{}
		}
		cfg.Verification.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("EMAILPREDICT_ROCKETREACH_API_KEY")); v != "" {
		if cfg.Enrichment == nil {
			cfg.Enrichment = &EnrichmentConfig{}
		}
		cfg.Enrichment.APIKey = v
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	cfg.TopKDefault = envutil.Int("EMAILPREDICT_TOP_K_DEFAULT", cfg.TopKDefault)
	if cfg.TopKDefault <= 0 {
		cfg.TopKDefault = 3
	}

	if strings.TrimSpace(cfg.Metadata.StandardTemplatesPath) == "" {
		return nil, fmt.Errorf("%w: metadata.standard_templates_path is required", predicterrors.ErrConfiguration)
	}
	if strings.TrimSpace(cfg.Metadata.ComplexTemplatesPath) == "" {
		return nil, fmt.Errorf("%w: metadata.complex_templates_path is required", predicterrors.ErrConfiguration)
	}
	if strings.TrimSpace(cfg.Metadata.FirmTemplateMapPath) == "" {
		return nil, fmt.Errorf("%w: metadata.firm_template_map_path is required", predicterrors.ErrConfiguration)
	}
	hasCanonical := strings.TrimSpace(cfg.Metadata.CanonicalFirmsPath) != ""
	hasCache := strings.TrimSpace(cfg.Metadata.FirmCachePath) != ""
	if hasCanonical != hasCache {
		return nil, fmt.Errorf("%w: metadata.canonical_firms_path and metadata.firm_cache_path must be set together", predicterrors.ErrConfiguration)
	}

	if err := validatePredictor("standard_predictor", cfg.StandardPredictor); err != nil {
		return nil, err
	}
	if err := validatePredictor("complex_predictor", cfg.ComplexPredictor); err != nil {
		return nil, err
	}

	if cfg.Verification != nil && strings.TrimSpace(cfg.Verification.APIKey) != "" {
		cfg.Verification.Retry = fillRetryDefaults(cfg.Verification.Retry)
	}
	if cfg.Enrichment != nil && strings.TrimSpace(cfg.Enrichment.APIKey) != "" {
		cfg.Enrichment.Retry = fillRetryDefaults(cfg.Enrichment.Retry)
	}

	return cfg, nil
}

func validatePredictor(field string, p PredictorConfig) error {
	backend := strings.ToLower(strings.TrimSpace(p.Backend))
	switch backend {
	case "lightgbm", "catboost":
	default:
		return fmt.Errorf("%w: %s.backend must be \"lightgbm\" or \"catboost\", got %q", predicterrors.ErrConfiguration, field, p.Backend)
	}
	if strings.TrimSpace(p.ModelPath) == "" {
		return fmt.Errorf("%w: %s.model_path is required", predicterrors.ErrConfiguration, field)
	}
	return nil
}

func fillRetryDefaults(r RetryConfig) RetryConfig {
	def := defaultRetry()
	if r.MaxAttempts <= 0 {
		r.MaxAttempts = def.MaxAttempts
	}
	if r.InitialBackoff.Duration <= 0 {
		r.InitialBackoff = def.InitialBackoff
	}
	if r.MaxBackoff.Duration <= 0 {
		r.MaxBackoff = def.MaxBackoff
	}
	if r.Timeout.Duration <= 0 {
		r.Timeout = def.Timeout
	}
	return r
}
