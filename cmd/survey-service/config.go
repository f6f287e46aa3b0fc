package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"surveysvc/internal/common/cache"
	"surveysvc/internal/common/db"
	"surveysvc/internal/common/mq"
	"surveysvc/pkg/utils/logger"

	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr        = "0.0.0.0:8080"
	defaultReadTimeout     = 5 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
}

// EventsConfig holds survey lifecycle event publishing settings.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Topic   string `yaml:"topic"`
}

// IsEnabled reports whether lifecycle events should be published.
func (c EventsConfig) IsEnabled() bool {
	return c.Enabled && c.Topic != ""
}

// AppConfig holds the survey-service configuration.
type AppConfig struct {
	Server ServerConfig  `yaml:"server"`
	Logger logger.Config `yaml:"logger"`

	Database db.MySQLConfig    `yaml:"database"`
	Redis    cache.RedisConfig `yaml:"redis"`
	Kafka    mq.KafkaConfig    `yaml:"kafka"`
	Events   EventsConfig      `yaml:"events"`
}

func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse config file failed: %w", err)
	}
	return nil
}

func loadAppConfig(path string) (*AppConfig, error) {
	var cfg AppConfig
	if err := loadYAML(path, &cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(&cfg)

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database dsn is required")
	}
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	applyRedisDefaults(&cfg.Redis)

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultHTTPAddr
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = defaultIdleTimeout
	}

	if cfg.Events.IsEnabled() && len(cfg.Kafka.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required when events are enabled")
	}

	return &cfg, nil
}

// applyEnvOverrides lets deployment environments override connection
// settings without editing the config file.
func applyEnvOverrides(cfg *AppConfig) {
	if dsn := os.Getenv("SURVEY_DB_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if addr := os.Getenv("SURVEY_REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("SURVEY_REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if brokers := os.Getenv("SURVEY_KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
}

func applyRedisDefaults(cfg *cache.RedisConfig) {
	defaults := cache.DefaultRedisConfig()
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = defaults.DialTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = defaults.PoolSize
	}
	if cfg.MinIdleConns == 0 {
		cfg.MinIdleConns = defaults.MinIdleConns
	}
}
