// Package app wires the application together: configuration, database,
// Genkit, stores, the prompt assembler, the chat service, and the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"github.com/healthmate-ai/healthmate/db"
	"github.com/healthmate-ai/healthmate/internal/api"
	"github.com/healthmate-ai/healthmate/internal/catalog"
	"github.com/healthmate-ai/healthmate/internal/chat"
	"github.com/healthmate-ai/healthmate/internal/chatlog"
	"github.com/healthmate-ai/healthmate/internal/config"
	"github.com/healthmate-ai/healthmate/internal/knowledge"
	"github.com/healthmate-ai/healthmate/internal/llm"
	"github.com/healthmate-ai/healthmate/internal/log"
	"github.com/healthmate-ai/healthmate/internal/memory"
	"github.com/healthmate-ai/healthmate/internal/observability"
	"github.com/healthmate-ai/healthmate/internal/profile"
	"github.com/healthmate-ai/healthmate/internal/prompt"
)

// App is the application container.
type App struct {
	Config *config.Config
	Logger log.Logger

	Genkit *genkit.Genkit
	Pool   *pgxpool.Pool
	LLM    *llm.GoogleAI

	Turns     chatlog.Store
	Memory    memory.Store
	Knowledge *knowledge.Index
	Catalog   catalog.Catalog
	Profiles  profile.Provider

	Chat   *chat.Service
	Server *api.Server

	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

// Setup initializes the application. Call Close to release resources.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (_ *App, retErr error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	a := &App{Config: cfg, Logger: logger}

	// On error, release everything already initialized.
	defer func() {
		if retErr != nil {
			if err := a.Close(); err != nil {
				logger.Warn("cleanup during setup failure", "error", err)
			}
		}
	}()

	// Tracing must be registered before Genkit initialization so spans
	// from model calls reach the exporter.
	otelShutdown, err := observability.Setup(ctx, cfg.Tracing, logger)
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}
	a.otelShutdown = otelShutdown

	pool, err := providePool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.Pool = pool

	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	if g == nil {
		return nil, errors.New("initializing genkit")
	}
	a.Genkit = g

	client, err := llm.NewGoogleAI(g, llm.GoogleAIConfig{
		ModelName:     cfg.FullModelName(),
		EmbedderModel: cfg.EmbedderModel,
		Temperature:   cfg.Temperature,
		MaxTokens:     cfg.MaxTokens,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("creating model client: %w", err)
	}
	a.LLM = client

	if err := a.provideStores(ctx); err != nil {
		return nil, err
	}

	assembler, err := prompt.NewAssembler(prompt.Config{
		Memory:        a.Memory,
		Knowledge:     a.Knowledge,
		Profiles:      a.Profiles,
		Logger:        logger,
		MemoryTopK:    cfg.MemoryTopK,
		KnowledgeTopK: cfg.KnowledgeTopK,
	})
	if err != nil {
		return nil, fmt.Errorf("creating prompt assembler: %w", err)
	}

	bgCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	// Provider-side throttling is off unless a request budget is set.
	var limiter *rate.Limiter
	if cfg.ModelRequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.ModelRequestsPerMinute)), 1)
	}

	svc, err := chat.NewService(chat.Config{
		Logger:          logger,
		Turns:           a.Turns,
		Memory:          a.Memory,
		Builder:         assembler,
		LLM:             client,
		RateLimiter:     limiter,
		GenerateTimeout: cfg.GenerateTimeout(),
		BackgroundCtx:   bgCtx,
	})
	if err != nil {
		return nil, fmt.Errorf("creating chat service: %w", err)
	}
	a.Chat = svc

	server, err := api.NewServer(api.ServerConfig{
		Logger:      logger,
		Chat:        svc,
		Turns:       a.Turns,
		Memory:      a.Memory,
		Knowledge:   a.Knowledge,
		Catalog:     a.Catalog,
		DB:          pool,
		CORSOrigins: cfg.CORSOrigins,
		TrustProxy:  cfg.TrustProxy,
		RateBurst:   cfg.RateBurst,
	})
	if err != nil {
		return nil, fmt.Errorf("creating API server: %w", err)
	}
	a.Server = server

	return a, nil
}

// provideStores constructs the Postgres-backed stores and seeds the
// knowledge base.
func (a *App) provideStores(ctx context.Context) error {
	turns, err := chatlog.NewPostgresStore(a.Pool, a.Logger)
	if err != nil {
		return fmt.Errorf("creating conversation log: %w", err)
	}
	a.Turns = turns

	mem, err := memory.NewPostgresStore(a.Pool, a.LLM, a.Logger)
	if err != nil {
		return fmt.Errorf("creating vector memory: %w", err)
	}
	a.Memory = mem

	index, err := knowledge.NewPostgresIndex(a.LLM, a.Pool, a.Logger)
	if err != nil {
		return fmt.Errorf("creating knowledge index: %w", err)
	}
	if err := index.Populate(ctx); err != nil {
		return fmt.Errorf("populating knowledge base: %w", err)
	}
	a.Knowledge = index

	profiles, err := profile.NewPostgresProvider(a.Pool)
	if err != nil {
		return fmt.Errorf("creating profile provider: %w", err)
	}
	a.Profiles = profiles

	cat, err := catalog.NewPostgresCatalog(a.Pool)
	if err != nil {
		return fmt.Errorf("creating symptom catalog: %w", err)
	}
	a.Catalog = cat

	return nil
}

// providePool runs migrations and opens the connection pool.
func providePool(ctx context.Context, cfg *config.Config, logger log.Logger) (*pgxpool.Pool, error) {
	if err := db.Migrate(cfg.PostgresURL(), logger); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("parsing connection config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

// Close drains in-flight background persistence, then releases resources.
func (a *App) Close() error {
	a.Logger.Info("shutting down application")

	if a.Chat != nil {
		a.Chat.Wait()
	}
	if a.cancel != nil {
		a.cancel()
	}
	if a.Pool != nil {
		a.Pool.Close()
		a.Logger.Debug("database pool closed")
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Logger.Warn("shutting down tracer provider", "error", err)
		}
	}
	return nil
}
