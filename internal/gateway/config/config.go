package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	Env       string
	IsProd    bool
	Mock      bool
	LogsPath  string
	RunLogDSN string

	Code       CodeConfig
	Image      ImageConfig
	Access     AccessConfig
	Artifact   ArtifactConfig
	Screenshot ScreenshotConfig
}

// CodeConfig selects the vision model that writes the markup.
type CodeConfig struct {
	Provider       string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	PlatformAPIKey string
	GeminiAPIKey   string
	GeminiModel    string
}

// ImageConfig selects the image model and the replacement policy.
type ImageConfig struct {
	Provider          string
	OpenAIModel       string
	ImagenModel       string
	PlaceholderPrefix string
	Timeout           time.Duration
	Concurrency       int
	RPS               float64
	Burst             int
	MaxAttempts       int
}

type AccessConfig struct {
	ValidateURL string
	Secret      string
}

type ArtifactConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type ScreenshotConfig struct {
	APIURL string
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderImagen = "imagen"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":7001", "server port")
	flag.Parse()

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}
	if cfg.Port == "" {
		cfg.Port = *port
	}
	return cfg, nil
}

// FromEnv builds a Config from getenv. Port is left empty when PORT is unset.
func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key string) string { return strings.TrimSpace(getenv(key)) }

	appEnv := firstNonEmpty(env("APP_ENV"), "local")
	cfg := &Config{
		Port:      normalizePort(env("PORT")),
		Env:       appEnv,
		IsProd:    parseBool(env("IS_PROD"), false),
		Mock:      parseBool(env("MOCK"), false),
		LogsPath:  firstNonEmpty(env("LOGS_PATH"), "."),
		RunLogDSN: env("RUN_LOG_PG_DSN"),
		Code: CodeConfig{
			Provider:       strings.ToLower(firstNonEmpty(env("CODE_PROVIDER"), ProviderOpenAI)),
			OpenAIAPIKey:   env("OPENAI_API_KEY"),
			OpenAIBaseURL:  env("OPENAI_BASE_URL"),
			OpenAIModel:    env("OPENAI_MODEL"),
			PlatformAPIKey: env("PLATFORM_OPENAI_API_KEY"),
			GeminiAPIKey:   env("GEMINI_API_KEY"),
			GeminiModel:    env("GEMINI_MODEL"),
		},
		Image: ImageConfig{
			Provider:          strings.ToLower(firstNonEmpty(env("IMAGE_PROVIDER"), ProviderOpenAI)),
			OpenAIModel:       env("OPENAI_IMAGE_MODEL"),
			ImagenModel:       env("GEMINI_IMAGE_MODEL"),
			PlaceholderPrefix: env("IMAGE_PLACEHOLDER_PREFIX"),
			Burst:             1,
			MaxAttempts:       3,
		},
		Access: AccessConfig{
			ValidateURL: env("ACCESS_TOKEN_VALIDATE_URL"),
			Secret:      env("ACCESS_TOKEN_SECRET"),
		},
		Artifact: loadArtifactConfig(env, appEnv),
		Screenshot: ScreenshotConfig{
			APIURL: firstNonEmpty(env("SCREENSHOT_API_URL"), "https://api.screenshotone.com/take"),
		},
	}

	switch cfg.Code.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return nil, fmt.Errorf("CODE_PROVIDER: unknown provider %q", cfg.Code.Provider)
	}
	switch cfg.Image.Provider {
	case ProviderOpenAI, ProviderImagen:
	default:
		return nil, fmt.Errorf("IMAGE_PROVIDER: unknown provider %q", cfg.Image.Provider)
	}

	var err error
	if raw := env("IMAGE_TIMEOUT"); raw != "" {
		if cfg.Image.Timeout, err = time.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("IMAGE_TIMEOUT: %w", err)
		}
	}
	if cfg.Image.Concurrency, err = parseInt(env("IMAGE_CONCURRENCY"), 0); err != nil {
		return nil, fmt.Errorf("IMAGE_CONCURRENCY: %w", err)
	}
	if cfg.Image.Burst, err = parseInt(env("IMAGE_BURST"), cfg.Image.Burst); err != nil {
		return nil, fmt.Errorf("IMAGE_BURST: %w", err)
	}
	if cfg.Image.MaxAttempts, err = parseInt(env("IMAGE_MAX_ATTEMPTS"), cfg.Image.MaxAttempts); err != nil {
		return nil, fmt.Errorf("IMAGE_MAX_ATTEMPTS: %w", err)
	}
	if raw := env("IMAGE_RPS"); raw != "" {
		if cfg.Image.RPS, err = strconv.ParseFloat(raw, 64); err != nil {
			return nil, fmt.Errorf("IMAGE_RPS: %w", err)
		}
	}
	return cfg, nil
}

func loadArtifactConfig(env func(string) string, appEnv string) ArtifactConfig {
	endpoint := resolveArtifactEndpoint(env, appEnv)
	local := strings.EqualFold(appEnv, "local")
	return ArtifactConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(env("ARTIFACT_S3_REGION"), "us-east-1"),
		AccessKey: firstNonEmpty(env("ARTIFACT_S3_ACCESS_KEY"), env("MINIO_ROOT_USER")),
		SecretKey: firstNonEmpty(env("ARTIFACT_S3_SECRET_KEY"), env("MINIO_ROOT_PASSWORD")),
		Bucket:    firstNonEmpty(env("ARTIFACT_S3_BUCKET"), "screencode-images"),
		UseSSL:    !local && parseBool(env("ARTIFACT_S3_USE_SSL"), true),
	}
}

func resolveArtifactEndpoint(env func(string) string, appEnv string) string {
	if strings.EqualFold(appEnv, "local") {
		return env("ARTIFACT_MINIO_ENDPOINT")
	}
	return env("ARTIFACT_S3_ENDPOINT")
}

func normalizePort(p string) string {
	if p == "" || strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}

func parseBool(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func parseInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
