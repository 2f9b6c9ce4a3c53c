package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
// (например TURF_DATABASE_PASSWORD, TURF_AUTH_JWTSECRET)
const EnvPrefix = "TURF"

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthMode способ проверки токена
type AuthMode string

const (
	// AuthModeJWT локальная проверка HS256 JWT
	AuthModeJWT AuthMode = "jwt"
	// AuthModeRemote запрос сессии у провайдера идентификации
	AuthModeRemote AuthMode = "remote"
)

// AuthConfig настройки провайдера идентификации
type AuthConfig struct {
	Mode        AuthMode `toml:"mode"`
	JWTSecret   string   `toml:"jwt_secret"`
	IdentityURL string   `toml:"identity_url"`
	APIKey      string   `toml:"api_key"`
	Timeout     int      `toml:"timeout"`
}

// RedisConfig настройки кэша поиска
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"`
	Prefix   string `toml:"prefix"`
}

// RabbitMQConfig настройки публикации доменных событий
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// BookingConfig параметры генерации слотов и повторов
type BookingConfig struct {
	DefaultWindowDays    int    `toml:"default_window_days"`
	MaxWindowDays        int    `toml:"max_window_days"`
	RetryInitialInterval int    `toml:"retry_initial_interval_ms"`
	RetryMaxInterval     int    `toml:"retry_max_interval_ms"`
	RetryMaxAttempts     uint64 `toml:"retry_max_attempts"`
}

// Load читает config.toml, затем .env (если есть) и переменные окружения с префиксом TURF.
// Переменные окружения имеют приоритет над файлом.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFile, path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFile, path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadFile, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "field-booking-service"
	}

	if c.Auth.Mode == "" {
		c.Auth.Mode = AuthModeJWT
	}
	if c.Auth.Timeout == 0 {
		c.Auth.Timeout = 5
	}

	if c.Redis.TTL == 0 {
		c.Redis.TTL = 60
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "turf"
	}

	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "turf.events"
	}

	if c.Booking.DefaultWindowDays == 0 {
		c.Booking.DefaultWindowDays = 30
	}
	if c.Booking.MaxWindowDays == 0 {
		c.Booking.MaxWindowDays = 90
	}
	if c.Booking.RetryInitialInterval == 0 {
		c.Booking.RetryInitialInterval = 50
	}
	if c.Booking.RetryMaxInterval == 0 {
		c.Booking.RetryMaxInterval = 1000
	}
	if c.Booking.RetryMaxAttempts == 0 {
		c.Booking.RetryMaxAttempts = 3
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}

	switch c.Auth.Mode {
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("%w: auth.jwt_secret is required for mode %q", ErrInvalidConfig, c.Auth.Mode)
		}
	case AuthModeRemote:
		if c.Auth.IdentityURL == "" {
			return fmt.Errorf("%w: auth.identity_url is required for mode %q", ErrInvalidConfig, c.Auth.Mode)
		}
	default:
		return fmt.Errorf("%w: unknown auth.mode %q", ErrInvalidConfig, c.Auth.Mode)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}

	if c.Booking.MaxWindowDays < 1 || c.Booking.MaxWindowDays > 90 {
		return fmt.Errorf("%w: booking.max_window_days must be in [1,90]", ErrInvalidConfig)
	}
	if c.Booking.DefaultWindowDays < 1 || c.Booking.DefaultWindowDays > c.Booking.MaxWindowDays {
		return fmt.Errorf("%w: booking.default_window_days must be in [1,max_window_days]", ErrInvalidConfig)
	}

	return nil
}
