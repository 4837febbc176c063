package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
// Например: HS_DATABASE_PASSWORD, HS_AUTH_JWT_SECRET, HS_BACKEND_MODE
const EnvPrefix = "HS"

// Режимы слоя данных
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация приложения
type Config struct {
	Server    ServerConfig    `toml:"server" split_words:"true"`
	Logs      LogsConfig      `toml:"logs" split_words:"true"`
	Metrics   MetricsConfig   `toml:"metrics" split_words:"true"`
	Backend   BackendConfig   `toml:"backend" split_words:"true"`
	Database  DatabaseConfig  `toml:"database" split_words:"true"`
	Local     LocalConfig     `toml:"local" split_words:"true"`
	Booking   BookingConfig   `toml:"booking" split_words:"true"`
	Auth      AuthConfig      `toml:"auth" split_words:"true"`
	Uploads   UploadsConfig   `toml:"uploads" split_words:"true"`
	Webhook   WebhookConfig   `toml:"webhook" split_words:"true"`
	CORS      CORSConfig      `toml:"cors" split_words:"true"`
	RateLimit RateLimitConfig `toml:"rate_limit" split_words:"true"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" split_words:"true"`
	File  string `toml:"file" split_words:"true"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// BackendConfig выбор реализации слоя данных: local | remote
type BackendConfig struct {
	Mode string `toml:"mode" split_words:"true"`
}

// DatabaseConfig настройки PostgreSQL (remote backend)
type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LocalConfig настройки локального хранилища
// Пустой StorePath - данные только в памяти
type LocalConfig struct {
	StorePath string `toml:"store_path" split_words:"true"`
}

// BookingConfig бизнес-настройки записи
type BookingConfig struct {
	TimeSlots       []string `toml:"time_slots" split_words:"true"`
	DayOff          string   `toml:"day_off" split_words:"true"`
	SlotCapacity    int      `toml:"slot_capacity" split_words:"true"`
	MinPhotos       int      `toml:"min_photos" split_words:"true"`
	MaxPhotos       int      `toml:"max_photos" split_words:"true"`
	MaxPhotoSizeMB  int      `toml:"max_photo_size_mb" split_words:"true"`
	MaxCartItems    int      `toml:"max_cart_items" split_words:"true"`
	AllowedServices []string `toml:"allowed_services" split_words:"true"`
	Timezone        string   `toml:"timezone" split_words:"true"`
}

// Location часовой пояс бизнеса
func (b BookingConfig) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

// Schedule расписание слотов
func (b BookingConfig) Schedule() (domain.Schedule, error) {
	loc, err := b.Location()
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, b.Timezone, err)
	}
	return domain.NewSchedule(b.TimeSlots, b.DayOff, b.SlotCapacity, loc)
}

// MaxPhotoSize максимальный размер фото в байтах
func (b BookingConfig) MaxPhotoSize() int64 {
	return int64(b.MaxPhotoSizeMB) * 1024 * 1024
}

// AuthConfig настройки входа администратора
// Если AdminPasswordHash пуст, хэш считается из AdminPassword при старте
type AuthConfig struct {
	AdminEmail        string `toml:"admin_email" split_words:"true"`
	AdminPassword     string `toml:"admin_password" split_words:"true"`
	AdminPasswordHash string `toml:"admin_password_hash" split_words:"true"`
	JWTSecret         string `toml:"jwt_secret" split_words:"true"`
	SessionTTLMinutes int    `toml:"session_ttl_minutes" split_words:"true"`
}

// SessionTTL время жизни сессии
func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.SessionTTLMinutes) * time.Minute
}

// UploadsConfig хранилище фото
type UploadsConfig struct {
	Dir           string `toml:"dir" split_words:"true"`
	PublicBaseURL string `toml:"public_base_url" split_words:"true"`
	ThumbnailSize int    `toml:"thumbnail_size" split_words:"true"`
}

// WebhookConfig уведомление об отправке сметы
// Пустой QuoteURL отключает уведомления
type WebhookConfig struct {
	QuoteURL string `toml:"quote_url" split_words:"true"`
	Timeout  int    `toml:"timeout" split_words:"true"`
}

// CORSConfig разрешенные источники
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" split_words:"true"`
}

// RateLimitConfig ограничение частоты публичных запросов на IP
type RateLimitConfig struct {
	Enabled           bool `toml:"enabled" split_words:"true"`
	RequestsPerMinute int  `toml:"requests_per_minute" split_words:"true"`
	Burst             int  `toml:"burst" split_words:"true"`
}

// Load читает config.toml, затем .env (если есть) и переменные окружения HS_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: process env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "happystay_booking",
		},
		Backend: BackendConfig{Mode: BackendLocal},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "happystay",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Local: LocalConfig{StorePath: "data/happystay.db"},
		Booking: BookingConfig{
			TimeSlots:       append([]string(nil), domain.DefaultTimeSlots...),
			DayOff:          "sunday",
			SlotCapacity:    domain.DefaultSlotCapacity,
			MinPhotos:       domain.DefaultMinPhotos,
			MaxPhotos:       domain.DefaultMaxPhotos,
			MaxPhotoSizeMB:  domain.DefaultMaxPhotoSize / (1024 * 1024),
			MaxCartItems:    domain.DefaultMaxCartItems,
			AllowedServices: append([]string(nil), domain.AllowedServices...),
			Timezone:        "Africa/Casablanca",
		},
		Auth: AuthConfig{
			AdminEmail:        "admin@happystay.com",
			SessionTTLMinutes: 12 * 60,
		},
		Uploads: UploadsConfig{
			Dir:           "data/uploads",
			PublicBaseURL: "/uploads",
			ThumbnailSize: 320,
		},
		Webhook: WebhookConfig{Timeout: 10},
		CORS:    CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 30,
			Burst:             10,
		},
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Backend.Mode {
	case BackendLocal, BackendRemote:
	default:
		return fmt.Errorf("%w: backend.mode must be %q or %q, got %q",
			ErrInvalidConfig, BackendLocal, BackendRemote, c.Backend.Mode)
	}

	if _, err := c.Booking.Schedule(); err != nil {
		return fmt.Errorf("%w: booking: %v", ErrInvalidConfig, err)
	}

	if len(c.Booking.TimeSlots) == 0 {
		return fmt.Errorf("%w: booking.time_slots is empty", ErrInvalidConfig)
	}

	if c.Booking.MinPhotos < 0 || c.Booking.MaxPhotos < c.Booking.MinPhotos || c.Booking.MaxPhotos == 0 {
		return fmt.Errorf("%w: booking photo limits min=%d max=%d",
			ErrInvalidConfig, c.Booking.MinPhotos, c.Booking.MaxPhotos)
	}

	if c.Booking.MaxPhotoSizeMB <= 0 {
		return fmt.Errorf("%w: booking.max_photo_size_mb must be positive", ErrInvalidConfig)
	}

	if c.Booking.MaxCartItems <= 0 {
		return fmt.Errorf("%w: booking.max_cart_items must be positive", ErrInvalidConfig)
	}

	if len(c.Booking.AllowedServices) == 0 {
		return fmt.Errorf("%w: booking.allowed_services is empty", ErrInvalidConfig)
	}

	if c.Auth.AdminEmail == "" {
		return fmt.Errorf("%w: auth.admin_email is required", ErrInvalidConfig)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required (set %s_AUTH_JWT_SECRET)", ErrInvalidConfig, EnvPrefix)
	}

	if c.Backend.Mode == BackendLocal && c.Auth.AdminPassword == "" && c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("%w: auth.admin_password or auth.admin_password_hash is required", ErrInvalidConfig)
	}

	if c.Auth.SessionTTLMinutes <= 0 {
		return fmt.Errorf("%w: auth.session_ttl_minutes must be positive", ErrInvalidConfig)
	}

	if c.Uploads.Dir == "" {
		return fmt.Errorf("%w: uploads.dir is required", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}

	return nil
}
