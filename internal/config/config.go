package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/odontosys/ai-backend/internal/pkg/retry"
)

// Provider names accepted by AI_PROVIDER.
const (
	ProviderOpenAI     = "openai"
	ProviderSelfHosted = "selfhosted"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// AI provider configuration
	AICfg AIConfig `envPrefix:"AI_"`

	// Retrieval configuration
	RAGCfg RAGConfig `envPrefix:"RAG_"`

	// Per-tenant throttling
	RateLimitCfg RateLimitConfig `envPrefix:"RATE_LIMIT_"`

	// Prompt shaping
	PromptCfg PromptConfig `envPrefix:"PROMPT_"`

	// Cost tracking
	CostCfg CostConfig `envPrefix:"COST_"`

	// Feature flags per use case
	FeatureCfg FeatureConfig `envPrefix:"FEATURE_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// AIConfig selects the completion/embedding providers and their knobs.
type AIConfig struct {
	Provider       string               `env:"PROVIDER" envDefault:"openai"`
	APIKey         string               `env:"API_KEY"`
	BaseURL        string               `env:"BASE_URL"`
	Model          string               `env:"MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel string               `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	MaxTokens      int                  `env:"MAX_TOKENS" envDefault:"2048"`
	Temperature    float64              `env:"TEMPERATURE" envDefault:"0.3"`
	RequestTimeout time.Duration        `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// RAGConfig tunes retrieval and the result cache.
type RAGConfig struct {
	SimilarityThreshold float64       `env:"SIMILARITY_THRESHOLD" envDefault:"0.3"`
	MaxResults          int           `env:"MAX_RESULTS" envDefault:"5"`
	CacheTTL            time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

// RateLimitConfig holds per-tenant request ceilings; zero disables a window.
type RateLimitConfig struct {
	PerMinute int `env:"PER_MINUTE" envDefault:"20"`
	PerHour   int `env:"PER_HOUR" envDefault:"200"`
	PerDay    int `env:"PER_DAY" envDefault:"1000"`
}

// PromptConfig shapes every generated prompt.
type PromptConfig struct {
	Locale           string `env:"LOCALE" envDefault:"pt-BR"`
	Tone             string `env:"TONE" envDefault:"profissional e acolhedor"`
	Disclaimer       string `env:"DISCLAIMER" envDefault:"Conteúdo gerado por IA; revisão profissional obrigatória."`
	MaxContextLength int    `env:"MAX_CONTEXT_LENGTH" envDefault:"6000"`
}

// CostConfig bounds monthly completion spend.
type CostConfig struct {
	MonthlyBudgetUSD float64 `env:"MONTHLY_BUDGET_USD" envDefault:"100"`
	AlertThreshold   float64 `env:"ALERT_THRESHOLD" envDefault:"0.8"`
}

// FeatureConfig enables/disables individual use cases.
type FeatureConfig struct {
	ClinicalEvolution   bool `env:"CLINICAL_EVOLUTION" envDefault:"true"`
	DiagnosisSuggestion bool `env:"DIAGNOSIS_SUGGESTION" envDefault:"true"`
	TreatmentPlan       bool `env:"TREATMENT_PLAN" envDefault:"true"`
	NoShowRisk          bool `env:"NO_SHOW_RISK" envDefault:"true"`
	FinancialInsight    bool `env:"FINANCIAL_INSIGHT" envDefault:"true"`
	Chat                bool `env:"CHAT" envDefault:"true"`
	MessageGeneration   bool `env:"MESSAGE_GENERATION" envDefault:"true"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}

	switch cfg.AICfg.Provider {
	case ProviderOpenAI:
		if !cfg.EnableMocks && cfg.AICfg.APIKey == "" {
			return fmt.Errorf("AI_API_KEY is required for provider %q", ProviderOpenAI)
		}
	case ProviderSelfHosted:
		if !cfg.EnableMocks && cfg.AICfg.BaseURL == "" {
			return fmt.Errorf("AI_BASE_URL is required for provider %q", ProviderSelfHosted)
		}
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", cfg.AICfg.Provider)
	}

	if cfg.RAGCfg.SimilarityThreshold < 0 || cfg.RAGCfg.SimilarityThreshold > 1 {
		return fmt.Errorf("RAG_SIMILARITY_THRESHOLD must be in [0, 1], got %g", cfg.RAGCfg.SimilarityThreshold)
	}

	if cfg.RAGCfg.MaxResults < 1 || cfg.RAGCfg.MaxResults > 50 {
		return fmt.Errorf("RAG_MAX_RESULTS must be between 1 and 50, got %d", cfg.RAGCfg.MaxResults)
	}

	if cfg.RAGCfg.CacheTTL < time.Second {
		return fmt.Errorf("RAG_CACHE_TTL must be at least 1s, got %s", cfg.RAGCfg.CacheTTL)
	}

	if cfg.CostCfg.AlertThreshold <= 0 || cfg.CostCfg.AlertThreshold > 1 {
		return fmt.Errorf("COST_ALERT_THRESHOLD must be in (0, 1], got %g", cfg.CostCfg.AlertThreshold)
	}

	if cfg.PromptCfg.MaxContextLength < 500 {
		return fmt.Errorf("PROMPT_MAX_CONTEXT_LENGTH must be at least 500, got %d", cfg.PromptCfg.MaxContextLength)
	}

	return nil
}

// Enabled reports whether the use case behind reqType is switched on.
func (f FeatureConfig) Enabled(reqType string) bool {
	switch reqType {
	case "clinical_evolution":
		return f.ClinicalEvolution
	case "diagnosis_suggestion":
		return f.DiagnosisSuggestion
	case "treatment_plan":
		return f.TreatmentPlan
	case "no_show_risk":
		return f.NoShowRisk
	case "financial_insight":
		return f.FinancialInsight
	case "chat":
		return f.Chat
	case "message_generation":
		return f.MessageGeneration
	default:
		return false
	}
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
