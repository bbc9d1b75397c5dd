package app

import (
	"context"
	"fmt"
	"time"

	"screencode/internal/gateway/accesstoken"
	"screencode/internal/gateway/config"
	"screencode/internal/gateway/handler"
	"screencode/internal/gateway/handler/rpc"
	"screencode/internal/gateway/server"
	"screencode/internal/gateway/service/codegen"
	"screencode/internal/gateway/service/screenshot"
	"screencode/internal/imageclient"
	"screencode/internal/imagegen"
	llmclient "screencode/internal/llmClient"
)

type App struct {
	server  *server.Server
	limiter *imageclient.Limiter
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	stores := initStores(cfg)
	var access codegen.AccessValidator
	if cfg.Access.ValidateURL != "" {
		v, err := accesstoken.New(accesstoken.Config{
			Endpoint: cfg.Access.ValidateURL,
			Secret:   cfg.Access.Secret,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init access validator: %w", err)
		}
		access = v
	}
	limiter := imageclient.NewLimiter(cfg.Image.RPS, cfg.Image.Burst)

	codegenSvc := codegen.New(codegen.Config{
		IsProd:         cfg.IsProd,
		RequireAPIKey:  requiresOpenAIKey(cfg),
		EnvAPIKey:      cfg.Code.OpenAIAPIKey,
		EnvBaseURL:     cfg.Code.OpenAIBaseURL,
		PlatformAPIKey: cfg.Code.PlatformAPIKey,
	}, access, newStreamerFactory(cfg), newPipelineFactory(cfg, stores, limiter), stores.runs)
	screenshotSvc := screenshot.New(cfg.Screenshot.APIURL)

	generateHandler := rpc.NewGenerateCodeHandler(codegenSvc)
	screenshotHandler := handler.NewScreenshotHandler(screenshotSvc)
	traceHandler := handler.NewTraceHandler(stores.runs)

	// Routing & Server
	mux := server.NewMux(generateHandler, screenshotHandler, traceHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		server:  srv,
		limiter: limiter,
	}, nil
}

func requiresOpenAIKey(cfg *config.Config) bool {
	codeNeedsKey := cfg.Code.Provider == config.ProviderOpenAI && !cfg.Mock
	return codeNeedsKey || cfg.Image.Provider == config.ProviderOpenAI
}

func newStreamerFactory(cfg *config.Config) codegen.StreamerFactory {
	return func(ctx context.Context, creds codegen.Credentials) (llmclient.Streamer, error) {
		if cfg.Mock {
			return llmclient.NewMockClient(), nil
		}
		if cfg.Code.Provider == config.ProviderGemini {
			return llmclient.NewGeminiClient(ctx, cfg.Code.GeminiAPIKey, cfg.Code.GeminiModel)
		}
		return llmclient.NewOpenAIClient(creds.APIKey, creds.BaseURL, cfg.Code.OpenAIModel), nil
	}
}

func newPipelineFactory(cfg *config.Config, stores *gatewayStores, limiter *imageclient.Limiter) codegen.PipelineFactory {
	return func(ctx context.Context, creds codegen.Credentials) (*imagegen.Pipeline, error) {
		var base imageclient.Client
		if cfg.Image.Provider == config.ProviderImagen {
			c, err := imageclient.NewImagenClient(ctx, cfg.Code.GeminiAPIKey, cfg.Image.ImagenModel, stores.images)
			if err != nil {
				return nil, err
			}
			base = c
		} else {
			base = imageclient.NewOpenAIClient(creds.APIKey, creds.BaseURL, cfg.Image.OpenAIModel)
		}
		client := imageclient.Wrap(base,
			imageclient.Logging(),
			imageclient.Retry(cfg.Image.MaxAttempts, time.Second),
			imageclient.RateLimit(limiter),
		)
		return imagegen.New(client, imagegen.Config{
			PlaceholderPrefix: cfg.Image.PlaceholderPrefix,
			RequestTimeout:    cfg.Image.Timeout,
			MaxConcurrency:    cfg.Image.Concurrency,
		}), nil
	}
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	defer a.limiter.Stop()
	return a.server.Shutdown(ctx)
}
