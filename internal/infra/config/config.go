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

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Recommend RecommendConfig `yaml:"recommend"`
	Profile   ProfileConfig   `yaml:"profile"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Valkey    ValkeyConfig    `yaml:"valkey"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// CatalogConfig points at the product table. When the object store is
// enabled it takes precedence over the local path.
type CatalogConfig struct {
	Path        string            `yaml:"path"`
	ObjectStore ObjectStoreConfig `yaml:"objectStore"`
}

// ObjectStoreConfig describes an S3-compatible bucket holding the catalog.
type ObjectStoreConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	Bucket          string `yaml:"bucket"`
	Key             string `yaml:"key"`
	Region          string `yaml:"region"`
	UseSSL          bool   `yaml:"useSsl"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	DefaultLimit              int     `yaml:"defaultLimit"`
	StepLimit                 int     `yaml:"stepLimit"`
	FallbackLimit             int     `yaml:"fallbackLimit"`
	MaxLimit                  int     `yaml:"maxLimit"`
	MaxTitleLength            int     `yaml:"maxTitleLength"`
	RateSourceToIntermediate  float64 `yaml:"rateSourceToIntermediate"`
	RateIntermediateToDisplay float64 `yaml:"rateIntermediateToDisplay"`
	ImageURLTemplate          string  `yaml:"imageUrlTemplate"`
	PlaceholderImageURL       string  `yaml:"placeholderImageUrl"`
	NoImageURL                string  `yaml:"noImageUrl"`
}

// ProfileConfig bounds accepted profile submissions.
type ProfileConfig struct {
	MinAge int `yaml:"minAge"`
	MaxAge int `yaml:"maxAge"`
}

// DashboardConfig sizes the dashboard aggregates.
type DashboardConfig struct {
	PriceBins  int `yaml:"priceBins"`
	TopBrands  int `yaml:"topBrands"`
	TopQueries int `yaml:"topQueries"`
}

// PostgresConfig contains DSN and pooling settings. An empty DSN keeps
// profiles in memory.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the popularity tally.
type ValkeyConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	KeyPrefix string `yaml:"keyPrefix"`
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
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
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
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("CATALOG_OBJECT_STORE_ENABLED"); v != "" {
		cfg.Catalog.ObjectStore.Enabled = parseBool(v)
	}
	if v := os.Getenv("CATALOG_OBJECT_STORE_ENDPOINT"); v != "" {
		cfg.Catalog.ObjectStore.Endpoint = v
	}
	if v := os.Getenv("CATALOG_OBJECT_STORE_ACCESS_KEY_ID"); v != "" {
		cfg.Catalog.ObjectStore.AccessKeyID = v
	}
	if v := os.Getenv("CATALOG_OBJECT_STORE_SECRET_ACCESS_KEY"); v != "" {
		cfg.Catalog.ObjectStore.SecretAccessKey = v
	}
	if v := os.Getenv("CATALOG_OBJECT_STORE_BUCKET"); v != "" {
		cfg.Catalog.ObjectStore.Bucket = v
	}
	if v := os.Getenv("CATALOG_OBJECT_STORE_KEY"); v != "" {
		cfg.Catalog.ObjectStore.Key = v
	}
	if v := os.Getenv("RECOMMEND_DEFAULT_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Recommend.DefaultLimit = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_RATE_SOURCE_TO_INTERMEDIATE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Recommend.RateSourceToIntermediate = parsed
		}
	}
	if v := os.Getenv("RECOMMEND_RATE_INTERMEDIATE_TO_DISPLAY"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Recommend.RateIntermediateToDisplay = parsed
		}
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Valkey.Addr = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/profiles",
				},
			},
		},
		Catalog: CatalogConfig{
			Path: "data/skincare_products.csv",
			ObjectStore: ObjectStoreConfig{
				Key:    "skincare_products.csv",
				Region: "auto",
				UseSSL: true,
			},
		},
		Recommend: RecommendConfig{
			DefaultLimit:              6,
			StepLimit:                 2,
			FallbackLimit:             6,
			MaxLimit:                  50,
			MaxTitleLength:            80,
			RateSourceToIntermediate:  0.012,
			RateIntermediateToDisplay: 17.5,
			ImageURLTemplate:          "https://images-na.ssl-images-amazon.com/images/P/{id}.01.LZZZZZZZ.jpg",
			PlaceholderImageURL:       "https://placehold.co/300x300?text=Producto",
			NoImageURL:                "https://placehold.co/300x300?text=Sin+imagen",
		},
		Profile: ProfileConfig{
			MinAge: 1,
			MaxAge: 120,
		},
		Dashboard: DashboardConfig{
			PriceBins:  15,
			TopBrands:  6,
			TopQueries: 5,
		},
		Postgres: PostgresConfig{
			DSN:      "",
			MaxConns: 4,
			MinConns: 0,
		},
		Valkey: ValkeyConfig{
			Enabled:   false,
			Addr:      "",
			KeyPrefix: "skinfit",
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
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if c.Catalog.ObjectStore.Enabled {
		if strings.TrimSpace(c.Catalog.ObjectStore.Endpoint) == "" || strings.TrimSpace(c.Catalog.ObjectStore.Bucket) == "" {
			return errors.New("catalog.objectStore.endpoint and bucket are required when the object store is enabled")
		}
		if strings.TrimSpace(c.Catalog.ObjectStore.Key) == "" {
			return errors.New("catalog.objectStore.key cannot be empty")
		}
	} else if strings.TrimSpace(c.Catalog.Path) == "" {
		return errors.New("catalog.path cannot be empty")
	}
	if c.Recommend.DefaultLimit <= 0 || c.Recommend.StepLimit <= 0 || c.Recommend.FallbackLimit <= 0 {
		return errors.New("recommend limits must be positive")
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return errors.New("recommend.maxLimit cannot be below recommend.defaultLimit")
	}
	if c.Recommend.MaxTitleLength <= 3 {
		return errors.New("recommend.maxTitleLength must be greater than 3")
	}
	if c.Recommend.RateSourceToIntermediate <= 0 || c.Recommend.RateIntermediateToDisplay <= 0 {
		return errors.New("recommend conversion rates must be positive")
	}
	if !strings.Contains(c.Recommend.ImageURLTemplate, "{id}") {
		return errors.New("recommend.imageUrlTemplate must contain {id}")
	}
	if c.Profile.MinAge <= 0 || c.Profile.MaxAge < c.Profile.MinAge {
		return errors.New("profile age bounds are invalid")
	}
	if c.Dashboard.PriceBins <= 0 {
		return errors.New("dashboard.priceBins must be positive")
	}
	if c.Dashboard.TopBrands < 0 || c.Dashboard.TopQueries < 0 {
		return errors.New("dashboard top sizes cannot be negative")
	}
	if c.Valkey.Enabled && strings.TrimSpace(c.Valkey.Addr) == "" {
		return errors.New("valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}
