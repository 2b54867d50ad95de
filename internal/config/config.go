package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

// Переменные окружения для секретов (перекрывают значения из файла)
const (
	EnvDBPassword    = "BARBERFLOW_DB_PASSWORD"
	EnvRedisPassword = "BARBERFLOW_REDIS_PASSWORD"
)

// ErrInvalidConfig некорректная конфигурация
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Redis     RedisConfig     `toml:"redis"`
	Login     LoginConfig     `toml:"login"`
	Events    EventsConfig    `toml:"events"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды

	// TrustedProxies адреса и подсети балансировщиков, которым разрешено
	// передавать IP клиента в X-Forwarded-For / X-Real-IP
	TrustedProxies []string `toml:"trusted_proxies"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BookingConfig struct {
	Timezone                      string `toml:"timezone"`
	DefaultIntervalMinutes        int    `toml:"default_interval_minutes"`
	DefaultServiceDurationMinutes int    `toml:"default_service_duration_minutes"`
	MaxIntervalMinutes            int    `toml:"max_interval_minutes"`
	StrictClosingTime             bool   `toml:"strict_closing_time"`
}

// Location часовой пояс салона
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type LoginConfig struct {
	MaxAttempts  int    `toml:"max_attempts"`
	BlockMinutes int    `toml:"block_minutes"`
	KeyPrefix    string `toml:"key_prefix"`
}

type EventsConfig struct {
	Enabled bool   `toml:"enabled"`
	Brokers string `toml:"brokers"`
	Topic   string `toml:"topic"`
	Timeout int    `toml:"timeout"` // секунды
}

type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 15)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "barberflow"
	}

	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "UTC"
	}
	setDefault(&c.Booking.DefaultIntervalMinutes, 30)
	setDefault(&c.Booking.DefaultServiceDurationMinutes, 30)
	setDefault(&c.Booking.MaxIntervalMinutes, 240)

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}

	setDefault(&c.Login.MaxAttempts, 5)
	setDefault(&c.Login.BlockMinutes, 30)
	if c.Login.KeyPrefix == "" {
		c.Login.KeyPrefix = "barberflow:login"
	}

	if c.Events.Topic == "" {
		c.Events.Topic = "barberflow.bookings"
	}
	setDefault(&c.Events.Timeout, 5)

	setDefault(&c.RateLimit.RequestsPerMinute, 30)
	setDefault(&c.RateLimit.Burst, 10)
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvDBPassword); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv(EnvRedisPassword); ok {
		c.Redis.Password = v
	}
}

// Validate проверяет значения, которые нельзя исправить значениями по умолчанию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Booking.DefaultIntervalMinutes > c.Booking.MaxIntervalMinutes {
		return fmt.Errorf("%w: booking.default_interval_minutes exceeds max_interval_minutes", ErrInvalidConfig)
	}
	if c.Events.Enabled && c.Events.Brokers == "" {
		return fmt.Errorf("%w: events.brokers is required when events are enabled", ErrInvalidConfig)
	}
	return nil
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
