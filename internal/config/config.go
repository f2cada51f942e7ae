// Package config loads runtime configuration from defaults, an optional
// YAML file and BOOKSTORE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Log         LogConfig         `mapstructure:"log"`
	Server      ServerConfig      `mapstructure:"server"`
	Eviction    EvictionConfig    `mapstructure:"eviction"`
	Orders      OrdersConfig      `mapstructure:"orders"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency"`
	MySQL       MySQLConfig       `mapstructure:"mysql"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"` // development, production
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

type ServerConfig struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	GRPCAddr        string        `mapstructure:"grpc_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// EvictionConfig is the default policy for pruning old books.
type EvictionConfig struct {
	ReferenceYear int `mapstructure:"reference_year"`
	MaxAgeYears   int `mapstructure:"max_age_years"`
}

type OrdersConfig struct {
	Store     string `mapstructure:"store"` // memory, mysql
	Workers   int    `mapstructure:"workers"`
	QueueSize int    `mapstructure:"queue_size"`
}

type IdempotencyConfig struct {
	Store string        `mapstructure:"store"` // memory, redis
	TTL   time.Duration `mapstructure:"ttl"`
}

type MySQLConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	PoolSize int    `mapstructure:"pool_size"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"` // host:port of an OTLP/HTTP collector
	ServiceName string `mapstructure:"service_name"`
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// Load reads configuration. An empty path looks for config.yaml in the
// working directory and ./config; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("BOOKSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Eviction.ReferenceYear < 1 || c.Eviction.ReferenceYear > 9999 {
		return fmt.Errorf("eviction.reference_year must be between 1 and 9999, got %d", c.Eviction.ReferenceYear)
	}
	if c.Eviction.MaxAgeYears < 0 {
		return fmt.Errorf("eviction.max_age_years must not be negative, got %d", c.Eviction.MaxAgeYears)
	}
	if c.Orders.Workers <= 0 {
		return fmt.Errorf("orders.workers must be positive, got %d", c.Orders.Workers)
	}
	if c.Orders.QueueSize <= 0 {
		return fmt.Errorf("orders.queue_size must be positive, got %d", c.Orders.QueueSize)
	}
	switch c.Orders.Store {
	case "memory", "mysql":
	default:
		return fmt.Errorf("unknown orders.store %q", c.Orders.Store)
	}
	switch c.Idempotency.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown idempotency.store %q", c.Idempotency.Store)
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return errors.New("tracing.endpoint is required when tracing is enabled")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "quantum-bookstore")
	v.SetDefault("app.env", "development")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.grpc_addr", ":50051")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("eviction.reference_year", 2025)
	v.SetDefault("eviction.max_age_years", 20)

	v.SetDefault("orders.store", "memory")
	v.SetDefault("orders.workers", 4)
	v.SetDefault("orders.queue_size", 1000)

	v.SetDefault("idempotency.store", "memory")
	v.SetDefault("idempotency.ttl", "24h")

	v.SetDefault("mysql.dsn", "root:root@tcp(localhost:3306)/bookstore?parseTime=true")
	v.SetDefault("mysql.max_open_conns", 20)
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("mysql.conn_max_lifetime", "5m")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "quantum-bookstore")
}
