package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.False(t, cfg.IsProd)
	assert.False(t, cfg.Mock)
	assert.Equal(t, ProviderOpenAI, cfg.Code.Provider)
	assert.Equal(t, ProviderOpenAI, cfg.Image.Provider)
	assert.Equal(t, 3, cfg.Image.MaxAttempts)
	assert.Equal(t, 1, cfg.Image.Burst)
	assert.Zero(t, cfg.Image.Timeout)
	assert.False(t, cfg.Artifact.Enabled)
	assert.False(t, cfg.Artifact.UseSSL)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"PORT":                     "9000",
		"APP_ENV":                  "prod",
		"IS_PROD":                  "true",
		"MOCK":                     "1",
		"CODE_PROVIDER":            "Gemini",
		"IMAGE_PROVIDER":           "imagen",
		"IMAGE_TIMEOUT":            "45s",
		"IMAGE_CONCURRENCY":        "4",
		"IMAGE_RPS":                "2.5",
		"IMAGE_PLACEHOLDER_PREFIX": "https://dummyimage.com",
		"ARTIFACT_S3_ENDPOINT":     "s3.example.com",
		"ARTIFACT_S3_ACCESS_KEY":   "ak",
		"MINIO_ROOT_PASSWORD":      "sk",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Port)
	assert.True(t, cfg.IsProd)
	assert.True(t, cfg.Mock)
	assert.Equal(t, ProviderGemini, cfg.Code.Provider)
	assert.Equal(t, ProviderImagen, cfg.Image.Provider)
	assert.Equal(t, 45*time.Second, cfg.Image.Timeout)
	assert.Equal(t, 4, cfg.Image.Concurrency)
	assert.Equal(t, 2.5, cfg.Image.RPS)
	assert.Equal(t, "https://dummyimage.com", cfg.Image.PlaceholderPrefix)
	assert.True(t, cfg.Artifact.Enabled)
	assert.True(t, cfg.Artifact.UseSSL)
	assert.Equal(t, "sk", cfg.Artifact.SecretKey)
}

func TestFromEnvLocalMinio(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"ARTIFACT_MINIO_ENDPOINT": "minio:9000",
		"ARTIFACT_S3_USE_SSL":     "true",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.Artifact.Enabled)
	assert.Equal(t, "minio:9000", cfg.Artifact.Endpoint)
	assert.False(t, cfg.Artifact.UseSSL)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	for key, val := range map[string]string{
		"CODE_PROVIDER":      "claude",
		"IMAGE_PROVIDER":     "midjourney",
		"IMAGE_TIMEOUT":      "soon",
		"IMAGE_CONCURRENCY":  "many",
		"IMAGE_MAX_ATTEMPTS": "x",
		"IMAGE_RPS":          "fast",
	} {
		_, err := FromEnv(envMap(map[string]string{key: val}))
		assert.Error(t, err, key)
	}
}
