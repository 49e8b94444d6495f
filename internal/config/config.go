package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	LLM      LLMConfig
	Refine   RefineConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

type LLMConfig struct {
	OpenAIKey        string
	AnthropicKey     string
	OpenRouterKey    string
	DefaultProvider  string
	DefaultModel     string
	FallbackProvider string
	FallbackModel    string
	EmbeddingModel   string
	RequestTimeout   time.Duration
}

// RefineConfig carries the tunables of the refinement pipeline and the
// temporary-record retention policy.
type RefineConfig struct {
	MaxRetries           int
	InitialBackoff       time.Duration
	MaxInstructionLength int
	RetentionDays        int
	CacheTTL             time.Duration
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxRetries, err := getEnvInt("LLM_MAX_RETRIES", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_RETRIES: %w", err)
	}

	backoffMs, err := getEnvInt("LLM_INITIAL_BACKOFF_MS", 1000)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_INITIAL_BACKOFF_MS: %w", err)
	}

	timeoutMs, err := getEnvInt("LLM_REQUEST_TIMEOUT_MS", 30000)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_REQUEST_TIMEOUT_MS: %w", err)
	}

	maxLen, err := getEnvInt("REFINE_MAX_INSTRUCTION_LENGTH", 5000)
	if err != nil {
		return nil, fmt.Errorf("invalid REFINE_MAX_INSTRUCTION_LENGTH: %w", err)
	}

	retentionDays, err := getEnvInt("REFINE_RETENTION_DAYS", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid REFINE_RETENTION_DAYS: %w", err)
	}

	cacheTTLMin, err := getEnvInt("REFINE_CACHE_TTL_MIN", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid REFINE_CACHE_TTL_MIN: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		},
		LLM: LLMConfig{
			OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			OpenRouterKey:    getEnv("OPENROUTER_API_KEY", ""),
			DefaultProvider:  getEnv("LLM_DEFAULT_PROVIDER", "openai"),
			DefaultModel:     getEnv("LLM_DEFAULT_MODEL", "gpt-4o-mini"),
			FallbackProvider: getEnv("LLM_FALLBACK_PROVIDER", ""),
			FallbackModel:    getEnv("LLM_FALLBACK_MODEL", "mistralai/mistral-7b-instruct"),
			EmbeddingModel:   getEnv("LLM_EMBEDDING_MODEL", "text-embedding-3-small"),
			RequestTimeout:   time.Duration(timeoutMs) * time.Millisecond,
		},
		Refine: RefineConfig{
			MaxRetries:           maxRetries,
			InitialBackoff:       time.Duration(backoffMs) * time.Millisecond,
			MaxInstructionLength: maxLen,
			RetentionDays:        retentionDays,
			CacheTTL:             time.Duration(cacheTTLMin) * time.Minute,
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "SUPABASE_JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
