package config

import "time"

// Duration unmarshals either a Go duration string ("500ms") or a raw
// integer nanosecond count from JSON.
type Duration struct {
	Duration time.Duration
}

// RetryConfig controls the bounded retry schedule used by the optional
// verification and enrichment hooks (spec §5): up to MaxAttempts calls,
// starting at InitialBackoff and doubling up to MaxBackoff.
type RetryConfig struct {
	MaxAttempts    int      `json:"max_attempts,omitempty"`
	InitialBackoff Duration `json:"initial_backoff,omitempty"`
	MaxBackoff     Duration `json:"max_backoff,omitempty"`
	Timeout        Duration `json:"timeout,omitempty"`
}

// VerificationConfig configures the optional Hunter-equivalent email
// verification hook. Absent (APIKey == "") disables the hook entirely.
type VerificationConfig struct {
	APIKey  string      `json:"api_key,omitempty"`
	BaseURL string      `json:"base_url,omitempty"`
	Retry   RetryConfig `json:"retry,omitempty"`
}

// EnrichmentConfig configures the optional RocketReach-equivalent contact
// enrichment hook. Absent (APIKey == "") disables the hook entirely.
type EnrichmentConfig struct {
	APIKey  string      `json:"api_key,omitempty"`
	BaseURL string      `json:"base_url,omitempty"`
	Retry   RetryConfig `json:"retry,omitempty"`
}

// PredictorConfig names the backend and model file used for one of the two
// template classes (standard or complex).
type PredictorConfig struct {
	// Backend selects the scoring implementation: "lightgbm" or "catboost".
	Backend   string `json:"backend"`
	ModelPath string `json:"model_path"`
}

// MetadataConfig points at the MessagePack blobs loaded once at startup
// (spec §4.4, §6). CanonicalFirmsPath and FirmCachePath are optional; when
// both are empty the engine is constructed without a domain resolver and
// every Predict call must supply an explicit domain.
type MetadataConfig struct {
	StandardTemplatesPath string `json:"standard_templates_path"`
	ComplexTemplatesPath  string `json:"complex_templates_path"`
	FirmTemplateMapPath   string `json:"firm_template_map_path"`
	CanonicalFirmsPath    string `json:"canonical_firms_path,omitempty"`
	FirmCachePath         string `json:"firm_cache_path,omitempty"`
}

// Config is the top-level configuration recognised at engine construction
// (spec §6).
type Config struct {
	Env string `json:"env"`

	Metadata MetadataConfig `json:"metadata"`

	StandardPredictor PredictorConfig `json:"standard_predictor"`
	ComplexPredictor  PredictorConfig `json:"complex_predictor"`

	TopKDefault int `json:"top_k_default,omitempty"`

	Verification *VerificationConfig `json:"verification,omitempty"`
	Enrichment   *EnrichmentConfig   `json:"enrichment,omitempty"`
}
