// Package config loads application configuration and initializes logging.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Roster     RosterConfig     `yaml:"roster" mapstructure:"roster"`
	Predictor  PredictorConfig  `yaml:"predictor" mapstructure:"predictor"`
	Avatar     AvatarConfig     `yaml:"avatar" mapstructure:"avatar"`
	ScoreCache ScoreCacheConfig `yaml:"score_cache" mapstructure:"score_cache"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// RosterConfig locates the durable customer table.
type RosterConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PredictorConfig configures the churn-model server client.
type PredictorConfig struct {
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateBurst    int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// AvatarConfig configures the cosmetic avatar assigner.
type AvatarConfig struct {
	Seed    uint64 `yaml:"seed" mapstructure:"seed"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Space   int    `yaml:"space" mapstructure:"space"`
}

// ScoreCacheConfig configures the prediction cache for the probability overlay.
type ScoreCacheConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // sqlite, postgres, or off
	DSN         string `yaml:"dsn" mapstructure:"dsn"`
	TTLHours    int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
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
	v.SetEnvPrefix("CRIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("roster.path", "data/Data_with_Churn_Probability.csv")
	v.SetDefault("predictor.base_url", "http://localhost:5000")
	v.SetDefault("predictor.timeout_secs", 60)
	v.SetDefault("predictor.rate_limit_rps", 10)
	v.SetDefault("predictor.rate_burst", 5)
	v.SetDefault("avatar.seed", 88)
	v.SetDefault("avatar.space", 1000)
	v.SetDefault("score_cache.driver", "sqlite")
	v.SetDefault("score_cache.dsn", "data/score_cache.db")
	v.SetDefault("score_cache.ttl_hours", 24)
	v.SetDefault("score_cache.concurrency", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
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
