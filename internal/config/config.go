package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Features  FeaturesConfig  `mapstructure:"features"`
	Affiliate AffiliateConfig `mapstructure:"affiliate"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	API       APIConfig       `mapstructure:"api"`
	Images    ImagesConfig    `mapstructure:"images"`
	Log       LogConfig       `mapstructure:"log"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // "postgres" or "sqlite"
	URL    string `mapstructure:"url"`
}

type RedisConfig struct {
	URL     string        `mapstructure:"url"`
	PageTTL time.Duration `mapstructure:"page_ttl"`
}

type CrawlerConfig struct {
	Delay     time.Duration `mapstructure:"delay"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type IngestConfig struct {
	Freshness time.Duration `mapstructure:"freshness"`
}

type ScoringConfig struct {
	ConfigPath string `mapstructure:"config_path"`
}

type FeaturesConfig struct {
	MaxPros int `mapstructure:"max_pros"`
	MaxCons int `mapstructure:"max_cons"`
}

type AffiliateConfig struct {
	Tag string `mapstructure:"tag"`
}

type MetricsConfig struct {
	Port string `mapstructure:"port"`
}

type APIConfig struct {
	Port string `mapstructure:"port"`
}

// ImagesConfig enables the GCS image copy when Bucket is set.
type ImagesConfig struct {
	Bucket    string        `mapstructure:"bucket"`
	CDNDomain string        `mapstructure:"cdn_domain"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// Load reads .env files, an optional config.yaml and ENRICH_* environment
// variables, in increasing order of precedence.
func Load() (*Config, error) {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if p := os.Getenv("ENRICH_CONFIG"); p != "" {
		v.SetConfigFile(p)
	}

	v.SetEnvPrefix("ENRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names kept from earlier deployments.
	_ = v.BindEnv("database.url", "ENRICH_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis.url", "ENRICH_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("metrics.port", "ENRICH_METRICS_PORT", "METRICS_PORT")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "file:catalog.db?_pragma=foreign_keys(1)")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.page_ttl", "24h")

	v.SetDefault("crawler.delay", "2s")
	v.SetDefault("crawler.timeout", "30s")
	v.SetDefault("crawler.user_agent", "Mozilla/5.0 (compatible; enrichprj/1.0)")

	v.SetDefault("ingest.freshness", "48h")

	v.SetDefault("scoring.config_path", "config/scoring.yaml")

	v.SetDefault("features.max_pros", 10)
	v.SetDefault("features.max_cons", 6)

	v.SetDefault("affiliate.tag", "homeprinciple-20")

	v.SetDefault("metrics.port", "9090")
	v.SetDefault("api.port", "8080")
	v.SetDefault("images.bucket", "")
	v.SetDefault("images.timeout", "30s")
	v.SetDefault("log.mode", "dev")
}

func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database driver must be 'postgres' or 'sqlite', got: %s", cfg.Database.Driver)
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database url is required (set ENRICH_DATABASE_URL or DATABASE_URL)")
	}
	if cfg.Crawler.Delay < 0 {
		return fmt.Errorf("crawler delay must not be negative")
	}
	if cfg.Features.MaxPros <= 0 || cfg.Features.MaxCons <= 0 {
		return fmt.Errorf("features max_pros/max_cons must be positive")
	}
	return nil
}
