package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, cfg Config) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	b, err := json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func validConfig() Config {
	return Config{
		Metadata: MetadataConfig{
			StandardTemplatesPath: "std.msgpack",
			ComplexTemplatesPath:  "complex.msgpack",
			FirmTemplateMapPath:   "firms.msgpack",
		},
		StandardPredictor: PredictorConfig{Backend: "lightgbm", ModelPath: "std.model"},
		ComplexPredictor:  PredictorConfig{Backend: "catboost", ModelPath: "complex.model"},
	}
}

func TestLoad_ValidConfigDefaultsTopK(t *testing.T) {
	path := writeConfigFile(t, validConfig())
	t.Setenv("EMAILPREDICT_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.TopKDefault)
}

func TestLoad_MissingStandardTemplatesPathErrors(t *testing.T) {
	c := validConfig()
	c.Metadata.StandardTemplatesPath = ""
	path := writeConfigFile(t, c)
	t.Setenv("EMAILPREDICT_CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_UnknownPredictorBackendErrors(t *testing.T) {
	c := validConfig()
	c.StandardPredictor.Backend = "xgboost"
	path := writeConfigFile(t, c)
	t.Setenv("EMAILPREDICT_CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_CanonicalFirmsRequiresFirmCache(t *testing.T) {
	c := validConfig()
	c.Metadata.CanonicalFirmsPath = "firms.msgpack"
	path := writeConfigFile(t, c)
	t.Setenv("EMAILPREDICT_CONFIG_PATH", path)

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_EnvOverridesAPIKeys(t *testing.T) {
	path := writeConfigFile(t, validConfig())
	t.Setenv("EMAILPREDICT_CONFIG_PATH", path)
	t.Setenv("EMAILPREDICT_HUNTER_API_KEY", "hunter-key")
	t.Setenv("EMAILPREDICT_ROCKETREACH_API_KEY", "rocket-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "hunter-key", cfg.Verification.APIKey)
	require.Equal(t, "rocket-key", cfg.Enrichment.APIKey)
	require.Equal(t, 5, cfg.Verification.Retry.MaxAttempts)
}

func TestLoad_TopKDefaultEnvOverride(t *testing.T) {
	path := writeConfigFile(t, validConfig())
	t.Setenv("EMAILPREDICT_CONFIG_PATH", path)
	t.Setenv("EMAILPREDICT_TOP_K_DEFAULT", "7")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7, cfg.TopKDefault)
}

func TestDuration_UnmarshalJSON_StringAndInt(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"5s"`), &d))
	require.Equal(t, "5s", d.Duration.String())

	var d2 Duration
	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d2))
	require.Equal(t, "1s", d2.Duration.String())
}
