package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/comparison-cli/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures run persistence.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// APIConfig configures the comparison data API client.
type APIConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// Timeout returns the per-request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// CacheConfig configures the view-model cache.
type CacheConfig struct {
	Driver     string `yaml:"driver" mapstructure:"driver"`
	TTLSecs    int    `yaml:"ttl_secs" mapstructure:"ttl_secs"`
	MaxEntries int    `yaml:"max_entries" mapstructure:"max_entries"`
	RedisURL   string `yaml:"redis_url" mapstructure:"redis_url"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSecs) * time.Second
}

// ScoringConfig holds the fallback weights for sections that enable scoring
// without their own.
type ScoringConfig struct {
	Weights model.ScoreWeights `yaml:"weights" mapstructure:"weights"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("COMPARISON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "comparison.db")
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.user_agent", "comparison-cli")
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.rate_per_sec", 5.0)
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.ttl_secs", 300)
	v.SetDefault("cache.max_entries", 10)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("scoring.weights.feature_coverage", 40.0)
	v.SetDefault("scoring.weights.price_competitiveness", 30.0)
	v.SetDefault("scoring.weights.value_ratio", 20.0)
	v.SetDefault("scoring.weights.transparency", 10.0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
