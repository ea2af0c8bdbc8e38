package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/odontosys/ai-backend/internal/api"
	assistantapi "github.com/odontosys/ai-backend/internal/api/assistant"
	knowledgeapi "github.com/odontosys/ai-backend/internal/api/knowledge"
	"github.com/odontosys/ai-backend/internal/config"
	"github.com/odontosys/ai-backend/internal/integration/completion"
	"github.com/odontosys/ai-backend/internal/integration/embedding"
	"github.com/odontosys/ai-backend/internal/pkg/cost"
	"github.com/odontosys/ai-backend/internal/pkg/ratelimit"
	"github.com/odontosys/ai-backend/internal/pkg/validator"
	"github.com/odontosys/ai-backend/internal/rag"
	"github.com/odontosys/ai-backend/internal/repository"
	"github.com/odontosys/ai-backend/internal/usecase/assistant"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	knowledgeRepo := repository.NewKnowledgePostgres(db)
	logger.Info("Repositories initialized")

	// Initialize external providers (with mock support)
	var embedder rag.Embedder
	var provider assistant.CompletionProvider

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external AI providers")
		embedder = embedding.NewMockConnector(logger)
		provider = completion.NewMockConnector(logger)
	} else {
		logger.Info("Using real AI providers", zap.String("provider", cfg.AICfg.Provider))
		embedder = embedding.NewConnector(cfg.AICfg, logger)
		switch cfg.AICfg.Provider {
		case config.ProviderSelfHosted:
			provider = completion.NewSelfHostedConnector(cfg.AICfg, logger)
		default:
			provider = completion.NewOpenAIConnector(cfg.AICfg, logger)
		}
	}

	// Initialize RAG engine
	resultCache := rag.NewResultCache(cfg.RAGCfg.CacheTTL)
	engine := rag.NewEngine(embedder, knowledgeRepo, resultCache, logger)
	logger.Info("RAG engine initialized", zap.Duration("cache_ttl", cfg.RAGCfg.CacheTTL))

	// Initialize throttling and cost tracking
	limiter := ratelimit.NewLimiter(cfg.RateLimitCfg)
	costTracker := cost.NewTracker(cfg.CostCfg, logger)

	// Initialize validators
	requestValidator := validator.NewValidator()

	// Initialize use cases
	assistantUC := assistant.NewUsecase(
		engine,
		provider,
		limiter,
		costTracker,
		cfg.AICfg,
		cfg.RAGCfg,
		cfg.PromptCfg,
		cfg.FeatureCfg,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	assistantHandler := assistantapi.NewHandler(assistantUC, requestValidator)
	knowledgeHandler := knowledgeapi.NewHandler(engine, requestValidator)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(assistantHandler, knowledgeHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

func setupLogger(level string) (*zap.Logger, error) {
	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(parsedLevel)

	return zapCfg.Build()
}
