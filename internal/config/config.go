package config

import (
	"github.com/taskhive/taskhive-backend/internal/logger"
)

type Config struct {
	App       AppConfig           `mapstructure:"app"`
	Logger    logger.LoggerConfig `mapstructure:"logger"`
	Postgres  PostgresConfig      `mapstructure:"postgres"`
	Redis     RedisConfig         `mapstructure:"redis"`
	Cache     CacheConfig         `mapstructure:"cache"`
	RateLimit RateLimitConfig     `mapstructure:"rate_limit"`
	Scheduler SchedulerConfig     `mapstructure:"scheduler"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    int    `mapstructure:"port" validate:"gte=0,lte=65535"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"required,gte=1,lte=65535"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname" validate:"required"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`    // seconds
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`   // seconds
	HealthCheckPeriod int    `mapstructure:"health_check_period"` // seconds
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds" validate:"gte=0"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps" validate:"gte=0"`
	Burst   int     `mapstructure:"burst" validate:"gte=0"`
}

type SchedulerConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	OverdueSpec string `mapstructure:"overdue_spec"` // cron expression for the overdue sweep
}
