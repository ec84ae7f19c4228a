package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	CatalogSourceBackend = "backend"
	CatalogSourceStatic  = "static"

	LLMProviderGemini = "gemini"
	LLMProviderOpenAI = "openai"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Backend    BackendConfig    `yaml:"backend"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	LLM        LLMConfig        `yaml:"llm"`
	Classifier ClassifierConfig `yaml:"classifier"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
	CORS         CORSConfig      `yaml:"cors"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// BackendConfig points at the provider REST service.
type BackendConfig struct {
	Environment    string        `yaml:"environment"`
	DevelopmentURL string        `yaml:"developmentUrl"`
	ProductionURL  string        `yaml:"productionUrl"`
	BaseURL        string        `yaml:"baseUrl"`
	Timeout        time.Duration `yaml:"timeout"`
}

// ResolvedURL picks the explicit base URL, else the one matching the environment.
func (b BackendConfig) ResolvedURL() string {
	if v := strings.TrimSpace(b.BaseURL); v != "" {
		return v
	}
	if strings.EqualFold(strings.TrimSpace(b.Environment), EnvProduction) {
		return b.ProductionURL
	}
	return b.DevelopmentURL
}

// CatalogConfig selects where provider records come from and how long the list is cached.
type CatalogConfig struct {
	Source            string        `yaml:"source"`
	CacheTTL          time.Duration `yaml:"cacheTtl"`
	FeaturedMinRating float64       `yaml:"featuredMinRating"`
	Redis             RedisConfig   `yaml:"redis"`
}

// LLMConfig contains the model provider settings.
type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// ClassifierConfig controls the AI category matcher.
type ClassifierConfig struct {
	Prompt         string         `yaml:"prompt"`
	MaxQueryTokens int            `yaml:"maxQueryTokens"`
	TrendingLimit  int            `yaml:"trendingLimit"`
	HistoryLimit   int            `yaml:"historyLimit"`
	Redis          RedisConfig    `yaml:"redis"`
	Postgres       PostgresConfig `yaml:"postgres"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Backend.Environment = v
	}
	if v := os.Getenv("BACKEND_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("CATALOG_SOURCE"); v != "" {
		cfg.Catalog.Source = v
	}
	if v := os.Getenv("CATALOG_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Catalog.CacheTTL = parsed
		}
	}
	if v := os.Getenv("CATALOG_REDIS_ENABLED"); v != "" {
		cfg.Catalog.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("CATALOG_REDIS_ADDR"); v != "" {
		cfg.Catalog.Redis.Addr = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	for _, key := range []string{"LLM_API_KEY", "GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(key); v != "" {
			cfg.LLM.APIKey = v
			break
		}
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("CLASSIFIER_PROMPT"); v != "" {
		cfg.Classifier.Prompt = v
	}
	if v := os.Getenv("CLASSIFIER_MAX_QUERY_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Classifier.MaxQueryTokens = parsed
		}
	}
	if v := os.Getenv("CLASSIFIER_TRENDING_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Classifier.TrendingLimit = parsed
		}
	}
	if v := os.Getenv("CLASSIFIER_HISTORY_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Classifier.HistoryLimit = parsed
		}
	}
	if v := os.Getenv("CLASSIFIER_REDIS_ENABLED"); v != "" {
		cfg.Classifier.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("CLASSIFIER_REDIS_ADDR"); v != "" {
		cfg.Classifier.Redis.Addr = v
	}
	if v := os.Getenv("CLASSIFIER_POSTGRES_DSN"); v != "" {
		cfg.Classifier.Postgres.DSN = v
	}
	if v := os.Getenv("CLASSIFIER_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Classifier.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("CLASSIFIER_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Classifier.Postgres.MinConns = int32(parsed)
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 45 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
			CORS: CORSConfig{
				AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			},
		},
		Backend: BackendConfig{
			Environment:    EnvDevelopment,
			DevelopmentURL: "http://localhost:8000",
			ProductionURL:  "https://homesolutions-backend.onrender.com",
			Timeout:        10 * time.Second,
		},
		Catalog: CatalogConfig{
			Source:            CatalogSourceBackend,
			CacheTTL:          time.Minute,
			FeaturedMinRating: 4.7,
		},
		LLM: LLMConfig{
			Provider:    LLMProviderGemini,
			Temperature: 0.2,
			Timeout:     30 * time.Second,
		},
		Classifier: ClassifierConfig{
			Prompt:         "You help homeowners find the right kind of local service professional.",
			MaxQueryTokens: 256,
			TrendingLimit:  10,
			HistoryLimit:   50,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.Backend.Environment)) {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("backend.environment must be %q or %q", EnvDevelopment, EnvProduction)
	}
	switch c.Catalog.Source {
	case CatalogSourceBackend:
		if strings.TrimSpace(c.Backend.ResolvedURL()) == "" {
			return errors.New("backend url cannot be empty when catalog.source is backend")
		}
	case CatalogSourceStatic:
	default:
		return fmt.Errorf("catalog.source must be %q or %q", CatalogSourceBackend, CatalogSourceStatic)
	}
	if c.Catalog.CacheTTL < 0 {
		return errors.New("catalog.cacheTtl cannot be negative")
	}
	if c.Catalog.FeaturedMinRating < 0 || c.Catalog.FeaturedMinRating > 5 {
		return errors.New("catalog.featuredMinRating must be between 0 and 5")
	}
	if c.Catalog.Redis.Enabled && strings.TrimSpace(c.Catalog.Redis.Addr) == "" {
		return errors.New("catalog.redis.addr cannot be empty when redis cache is enabled")
	}
	switch c.LLM.Provider {
	case LLMProviderGemini, LLMProviderOpenAI:
	default:
		return fmt.Errorf("llm.provider must be %q or %q", LLMProviderGemini, LLMProviderOpenAI)
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.Classifier.MaxQueryTokens <= 0 {
		return errors.New("classifier.maxQueryTokens must be positive")
	}
	if c.Classifier.TrendingLimit <= 0 {
		return errors.New("classifier.trendingLimit must be positive")
	}
	if c.Classifier.HistoryLimit <= 0 {
		return errors.New("classifier.historyLimit must be positive")
	}
	if c.Classifier.Redis.Enabled && strings.TrimSpace(c.Classifier.Redis.Addr) == "" {
		return errors.New("classifier.redis.addr cannot be empty when redis is enabled")
	}
	return nil
}
