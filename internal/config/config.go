package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих файл конфигурации
// (например SHAREIT_DATABASE_HOST, SHAREIT_SERVER_HTTP_PORT)
const EnvPrefix = "SHAREIT"

var (
	// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Logs     Logs     `toml:"logs"`
	Metrics  Metrics  `toml:"metrics"`
	Booking  Booking  `toml:"booking"`
	Events   Events   `toml:"events"`
}

// Server настройки HTTP сервера (таймауты в секундах)
type Server struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`

	// AdminUserIDs пользователи, которым разрешено удалять бронирования.
	// Пустой список отключает удаление.
	AdminUserIDs []int64 `toml:"admin_user_ids" split_words:"true"`
}

// Database настройки подключения к БД
type Database struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	Path            string `toml:"path"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
	AutoMigrate     bool   `toml:"auto_migrate" split_words:"true"`
}

// Logs настройки логирования
type Logs struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Metrics настройки prometheus
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// Booking бизнес-настройки бронирований
type Booking struct {
	// ForbidOverlap запрещает создавать бронирование, пересекающееся
	// с подтверждённым бронированием той же вещи
	ForbidOverlap bool `toml:"forbid_overlap" split_words:"true"`
}

// Events настройки публикации событий в RabbitMQ
type Events struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: Server{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: Database{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Logs: Logs{
			Level: "info",
		},
		Metrics: Metrics{
			Path:        "/metrics",
			ServiceName: "shareit_booking",
		},
		Booking: Booking{
			ForbidOverlap: true,
		},
		Events: Events{
			Exchange: "shareit.bookings",
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию, затем применяет
// переменные окружения с префиксом EnvPrefix
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalidConfig, path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: stat %s: %w", ErrInvalidConfig, path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("%w: env overrides: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalidConfig)
		}
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	for _, id := range c.Server.AdminUserIDs {
		if id <= 0 {
			return fmt.Errorf("%w: server.admin_user_ids contains %d", ErrInvalidConfig, id)
		}
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	if c.Events.Enabled && (c.Events.URL == "" || c.Events.Exchange == "") {
		return fmt.Errorf("%w: events.url and events.exchange are required when events are enabled", ErrInvalidConfig)
	}

	return nil
}

// DSN строка подключения для database/sql
func (d Database) DSN() string {
	if d.Driver == "sqlite" {
		return SQLiteDSN(d.Path)
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// SQLiteDSN DSN для modernc.org/sqlite с прагмами на каждое соединение
func SQLiteDSN(path string) string {
	return "file:" + path +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}
